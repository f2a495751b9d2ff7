package db

import (
	"context"
	"errors"
	"log/slog"

	"github.com/apotekly/api/internal/account/entity"
	"github.com/apotekly/api/internal/pkg/goerror"
	"github.com/jackc/pgx/v5"
)

// IssueOTP stores a fresh code and resets the attempt counter.
func (s *DB) IssueOTP(ctx context.Context, id int64, issue entity.OTPIssue) (err error) {
	ctx, span := s.startSpan(ctx, "IssueOTP")
	defer func() { s.endSpan(span, err) }()

	query := `UPDATE accounts
		SET otp_code = $2, otp_created_at = $3, otp_attempts = 0, updated_at = now()
		WHERE id = $1`

	tag, err := s.conn.Exec(ctx, query, id, issue.Code, issue.IssuedAt)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	return nil
}

// ReissueOTP stores a fresh code like IssueOTP but runs the preCommit
// callback inside the same transaction, so a callback failure leaves the
// previous code in place.
func (s *DB) ReissueOTP(ctx context.Context, id int64, issue entity.OTPIssue, preCommit func(ctx context.Context) error) (err error) {
	ctx, span := s.startSpan(ctx, "ReissueOTP")
	defer func() { s.endSpan(span, err) }()

	tx, err := s.conn.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && !errors.Is(rErr, pgx.ErrTxClosed) {
			slog.ErrorContext(ctx, "failed to rolback", "error", rErr)
		}
	}()

	query := `UPDATE accounts
		SET otp_code = $2, otp_created_at = $3, otp_attempts = 0, updated_at = now()
		WHERE id = $1`

	tag, err := tx.Exec(ctx, query, id, issue.Code, issue.IssuedAt)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	if preCommit != nil {
		if err = preCommit(ctx); err != nil {
			return err
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return s.mapError(err)
	}

	return nil
}

func (s *DB) IncrementOTPAttempts(ctx context.Context, id int64) (err error) {
	ctx, span := s.startSpan(ctx, "IncrementOTPAttempts")
	defer func() { s.endSpan(span, err) }()

	query := `UPDATE accounts
		SET otp_attempts = otp_attempts + 1, updated_at = now()
		WHERE id = $1`

	tag, err := s.conn.Exec(ctx, query, id)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	return nil
}

// ActivateAccount flips the account active and clears all OTP state.
func (s *DB) ActivateAccount(ctx context.Context, id int64) (err error) {
	ctx, span := s.startSpan(ctx, "ActivateAccount")
	defer func() { s.endSpan(span, err) }()

	query := `UPDATE accounts
		SET is_active = true, otp_code = NULL, otp_created_at = NULL, otp_attempts = 0, updated_at = now()
		WHERE id = $1`

	tag, err := s.conn.Exec(ctx, query, id)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	return nil
}

// UpdatePassword replaces the credential and consumes the OTP state.
func (s *DB) UpdatePassword(ctx context.Context, id int64, passwordHash string) (err error) {
	ctx, span := s.startSpan(ctx, "UpdatePassword")
	defer func() { s.endSpan(span, err) }()

	query := `UPDATE accounts
		SET password = $2, otp_code = NULL, otp_created_at = NULL, otp_attempts = 0, updated_at = now()
		WHERE id = $1`

	tag, err := s.conn.Exec(ctx, query, id, passwordHash)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	return nil
}

func (s *DB) UpdateProfile(ctx context.Context, change entity.ProfileChange) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateProfile")
	defer func() { s.endSpan(span, err) }()

	query := `UPDATE accounts
		SET first_name = $2, last_name = $3, mobile = $4, updated_at = now()
		WHERE id = $1`

	tag, err := s.conn.Exec(ctx, query, change.ID, change.FirstName, change.LastName, change.Mobile)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	return nil
}

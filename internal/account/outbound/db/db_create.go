package db

import (
	"context"
	"errors"
	"log/slog"

	"github.com/apotekly/api/internal/account/entity"
	"github.com/jackc/pgx/v5"
)

// NewRegistration creates the account row with its initial OTP and runs the
// preCommit callback inside the same transaction. If preCommit fails the
// account is never persisted.
func (s *DB) NewRegistration(ctx context.Context, acc entity.NewAccount, passwordHash string, preCommit func(ctx context.Context) error) (err error) {
	ctx, span := s.startSpan(ctx, "NewRegistration")
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

	query := `INSERT INTO accounts
		(id, email, password, first_name, last_name, mobile, is_active, is_staff, otp_code, otp_created_at, otp_attempts)
		VALUES ($1, lower($2), $3, $4, $5, $6, false, false, $7, $8, 0)`

	if _, err = tx.Exec(ctx, query,
		acc.ID,
		acc.Email,
		passwordHash,
		acc.FirstName,
		acc.LastName,
		acc.Mobile,
		acc.OTP.Code,
		acc.OTP.IssuedAt,
	); err != nil {
		return s.mapError(err)
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

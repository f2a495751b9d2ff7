package db

import (
	"context"

	"github.com/apotekly/api/internal/account/entity"
	"github.com/jackc/pgx/v5"
)

const accountColumns = `id, email, password, first_name, last_name, mobile, is_active, is_staff,
	otp_code, otp_created_at, otp_attempts, created_at, updated_at`

func scanAccount(row pgx.Row) (*entity.Account, error) {
	var acc entity.Account
	err := row.Scan(
		&acc.ID,
		&acc.Email,
		&acc.Password,
		&acc.FirstName,
		&acc.LastName,
		&acc.Mobile,
		&acc.IsActive,
		&acc.IsStaff,
		&acc.OTPCode,
		&acc.OTPCreatedAt,
		&acc.OTPAttempts,
		&acc.CreatedAt,
		&acc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &acc, nil
}

func (s *DB) GetAccountByEmail(ctx context.Context, email string) (_ *entity.Account, err error) {
	ctx, span := s.startSpan(ctx, "GetAccountByEmail")
	defer func() { s.endSpan(span, err) }()

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE lower(email) = lower($1)`

	acc, err := scanAccount(s.conn.QueryRow(ctx, query, email))
	if err != nil {
		return nil, s.mapError(err)
	}

	return acc, nil
}

func (s *DB) GetAccountByID(ctx context.Context, id int64) (_ *entity.Account, err error) {
	ctx, span := s.startSpan(ctx, "GetAccountByID")
	defer func() { s.endSpan(span, err) }()

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`

	acc, err := scanAccount(s.conn.QueryRow(ctx, query, id))
	if err != nil {
		return nil, s.mapError(err)
	}

	return acc, nil
}

func (s *DB) GetAccountList(ctx context.Context, filter entity.ListFilter) (_ []entity.Account, _ int64, err error) {
	ctx, span := s.startSpan(ctx, "GetAccountList")
	defer func() { s.endSpan(span, err) }()

	search := "%" + filter.Search + "%"

	query := `SELECT ` + accountColumns + ` FROM accounts
		WHERE (NOT $1::bool OR email ILIKE $2 OR first_name ILIKE $2 OR last_name ILIKE $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`

	rows, err := s.conn.Query(ctx, query, filter.IsSearch, search, filter.Size, filter.Offset)
	if err != nil {
		return nil, 0, s.mapError(err)
	}
	defer rows.Close()

	accounts := make([]entity.Account, 0, filter.Size)
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, 0, s.mapError(err)
		}

		accounts = append(accounts, *acc)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, s.mapError(err)
	}

	countQuery := `SELECT count(*) FROM accounts
		WHERE (NOT $1::bool OR email ILIKE $2 OR first_name ILIKE $2 OR last_name ILIKE $2)`

	var count int64
	if err = s.conn.QueryRow(ctx, countQuery, filter.IsSearch, search).Scan(&count); err != nil {
		return nil, 0, s.mapError(err)
	}

	return accounts, count, nil
}

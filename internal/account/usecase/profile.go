package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/apotekly/api/internal/pkg/goerror"
	"github.com/apotekly/api/internal/pkg/jwt"
)

type ProfileOutput struct {
	ID        int64
	Email     string
	FirstName string
	LastName  string
	Mobile    string
	IsStaff   bool
	CreatedAt time.Time
}

// Profile returns the authenticated caller's own account.
func (s *Usecase) Profile(ctx context.Context) (*ProfileOutput, error) {
	ctx, span := s.startSpan(ctx, "Profile")
	defer span.End()

	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	acc, err := s.repoDB.GetAccountByID(ctx, clm.UserID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "account not found for valid token", "account_id", clm.UserID)
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get account by id", "account_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &ProfileOutput{
		ID:        acc.ID,
		Email:     acc.Email,
		FirstName: acc.FirstName,
		LastName:  acc.LastName,
		Mobile:    acc.Mobile,
		IsStaff:   acc.IsStaff,
		CreatedAt: acc.CreatedAt,
	}, nil
}

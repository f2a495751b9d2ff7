package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/apotekly/api/internal/pkg/goerror"
	"github.com/apotekly/api/internal/pkg/jwt"
)

type RefreshTokenInput struct {
	RefreshToken string `validate:"required"`
}

type RefreshTokenOutput struct {
	AccessToken  string
	RefreshToken string
}

// RefreshToken exchanges a valid refresh token for a new pair.
//
// Refresh tokens are stateless: validity rests on the signature, expiry, and
// token_use claim. The account is re-read so a deactivated account cannot
// keep minting access tokens for the refresh token's whole lifetime.
func (s *Usecase) RefreshToken(ctx context.Context, in RefreshTokenInput) (*RefreshTokenOutput, error) {
	ctx, span := s.startSpan(ctx, "RefreshToken")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	clm, err := s.jwt.Verify(in.RefreshToken, jwt.TokenUseRefresh)
	if err != nil {
		slog.WarnContext(ctx, "refresh token rejected", "error", err)
		return nil, goerror.NewBusiness("Invalid or expired refresh token.", goerror.CodeUnauthorized)
	}

	acc, err := s.repoDB.GetAccountByID(ctx, clm.UserID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "refresh token for unknown account", "account_id", clm.UserID)
		return nil, goerror.NewBusiness("Invalid or expired refresh token.", goerror.CodeUnauthorized)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get account by id", "account_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if !acc.IsActive {
		return nil, goerror.NewBusiness("Invalid or expired refresh token.", goerror.CodeUnauthorized)
	}

	pair, err := s.jwt.GeneratePair(acc.ID, acc.Email, acc.IsStaff)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate token pair", "account_id", acc.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &RefreshTokenOutput{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}

package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/apotekly/api/internal/account/entity"
	"github.com/apotekly/api/internal/pkg/goerror"
)

type PasswordResetRequestInput struct {
	Email string `validate:"required,email"`
}

// PasswordResetRequest issues a fresh OTP for an existing account and sends
// it to the account's email.
//
// Unlike registration, delivery here is soft-fail: a send error is logged
// but the request still succeeds, since the caller can simply retry.
// An unknown email is reported as not-found, which does leak account
// existence; kept as-is pending a product decision.
func (s *Usecase) PasswordResetRequest(ctx context.Context, in PasswordResetRequestInput) error {
	ctx, span := s.startSpan(ctx, "PasswordResetRequest")
	defer span.End()

	in.Email = entity.NormalizeEmail(in.Email)

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	acc, err := s.repoDB.GetAccountByEmail(ctx, in.Email)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "password reset for unknown account", "email", in.Email)
		return goerror.NewBusiness("No account found with this email.", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get account by email", "email", in.Email, "error", err)
		return goerror.NewServer(err)
	}

	code, err := s.reissueOTP(ctx, acc.ID)
	if err != nil {
		return err
	}

	s.goroutine.Go(context.WithoutCancel(ctx), func(ctx context.Context) error {
		if err := s.repoMailer.SendPasswordResetCode(ctx, acc.Email, code); err != nil {
			slog.WarnContext(ctx, "failed to send password reset code", "email", acc.Email, "error", err)
		}
		return nil
	})

	return nil
}

package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/apotekly/api/internal/account/entity"
	"github.com/apotekly/api/internal/pkg/goerror"
)

type PasswordResetConfirmInput struct {
	Email       string `validate:"required,email"`
	OTPCode     string `validate:"required,len=6,numeric"`
	NewPassword string `validate:"required,password"`
}

// PasswordResetConfirm validates a reset code and replaces the password.
//
// The code check deliberately applies no lockout and no active-account
// gate, and it compares the code before checking expiry; this asymmetry with
// Verify is intentional and must not be unified.
func (s *Usecase) PasswordResetConfirm(ctx context.Context, in PasswordResetConfirmInput) error {
	ctx, span := s.startSpan(ctx, "PasswordResetConfirm")
	defer span.End()

	in.Email = entity.NormalizeEmail(in.Email)

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	acc, err := s.repoDB.GetAccountByEmail(ctx, in.Email)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "password reset confirm for unknown account", "email", in.Email)
		return goerror.NewInvalidInput(nil, "email", "No account found with this email.")
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get account by email", "email", in.Email, "error", err)
		return goerror.NewServer(err)
	}

	if acc.OTPCode == nil || *acc.OTPCode != in.OTPCode {
		if err := s.repoDB.IncrementOTPAttempts(ctx, acc.ID); err != nil {
			slog.ErrorContext(ctx, "failed to repo increment otp attempts", "account_id", acc.ID, "error", err)
			return goerror.NewServer(err)
		}

		return goerror.NewInvalidInput(nil, "otp_code", "Invalid OTP.")
	}

	if acc.OTPExpired(s.clock.Now()) {
		return goerror.NewInvalidInput(nil, "otp_code", "OTP expired. Please request a new one.")
	}

	newHash, err := s.bcrypt.Hash(in.NewPassword)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash new password", "account_id", acc.ID, "error", err)
		return goerror.NewServer(err)
	}

	if err := s.repoDB.UpdatePassword(ctx, acc.ID, string(newHash)); err != nil {
		slog.ErrorContext(ctx, "failed to repo update password", "account_id", acc.ID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}

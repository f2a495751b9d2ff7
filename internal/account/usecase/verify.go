package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/apotekly/api/internal/account/entity"
	"github.com/apotekly/api/internal/pkg/goerror"
)

type VerifyInput struct {
	Email   string `validate:"required,email"`
	OTPCode string `validate:"required,len=6,numeric"`
}

// Verify runs the OTP state machine for account activation.
//
// Check order is existence, already-active, lockout, expiry, then code match.
// Each check short-circuits the later ones so every failure maps to exactly
// one caller-facing message.
func (s *Usecase) Verify(ctx context.Context, in VerifyInput) error {
	ctx, span := s.startSpan(ctx, "Verify")
	defer span.End()

	in.Email = entity.NormalizeEmail(in.Email)

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	acc, err := s.repoDB.GetAccountByEmail(ctx, in.Email)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "verification for unknown account", "email", in.Email)
		return goerror.NewInvalidInput(nil, "email", "No account found with this email.")
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get account by email", "email", in.Email, "error", err)
		return goerror.NewServer(err)
	}

	if acc.IsActive {
		return goerror.NewInvalidInput(nil, "email", "Account already verified.")
	}

	// Lockout applies regardless of whether the submitted code is correct.
	if acc.Locked() {
		slog.WarnContext(ctx, "otp verification locked", "account_id", acc.ID, "attempts", acc.OTPAttempts)
		return goerror.NewInvalidInput(nil, "otp_code", "Too many failed attempts. Please request a new OTP.")
	}

	if acc.OTPExpired(s.clock.Now()) {
		return goerror.NewInvalidInput(nil, "otp_code", "OTP expired. Please request a new one.")
	}

	if *acc.OTPCode != in.OTPCode {
		if err := s.repoDB.IncrementOTPAttempts(ctx, acc.ID); err != nil {
			slog.ErrorContext(ctx, "failed to repo increment otp attempts", "account_id", acc.ID, "error", err)
			return goerror.NewServer(err)
		}

		return goerror.NewInvalidInput(nil, "otp_code", "Invalid OTP.")
	}

	if err := s.repoDB.ActivateAccount(ctx, acc.ID); err != nil {
		slog.ErrorContext(ctx, "failed to repo activate account", "account_id", acc.ID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}

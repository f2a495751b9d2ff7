package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/apotekly/api/internal/account/entity"
	"github.com/apotekly/api/internal/pkg/goerror"
)

type LoginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type LoginOutput struct {
	AccessToken  string
	RefreshToken string
}

// Login authenticates credentials and issues a token pair.
//
// When the credentials are valid but the account has not completed
// verification, a fresh OTP is issued and sent before reporting a
// distinguishable "unverified" failure; any other failure stays generic so
// callers cannot probe which emails exist.
func (s *Usecase) Login(ctx context.Context, in LoginInput) (*LoginOutput, error) {
	ctx, span := s.startSpan(ctx, "Login")
	defer span.End()

	in.Email = entity.NormalizeEmail(in.Email)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	acc, err := s.repoDB.GetAccountByEmail(ctx, in.Email)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "login for unknown account", "email", in.Email)
		return nil, goerror.NewAuthentication(goerror.ReasonAuthenticationFailed, "Invalid email or password.")
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get account by email", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	if !s.bcrypt.Verify(acc.Password, in.Password) {
		slog.WarnContext(ctx, "login password mismatch", "account_id", acc.ID)
		return nil, goerror.NewAuthentication(goerror.ReasonAuthenticationFailed, "Invalid email or password.")
	}

	if !acc.IsActive {
		code, err := s.reissueOTP(ctx, acc.ID)
		if err != nil {
			return nil, err
		}

		s.sendVerificationAsync(ctx, acc.Email, code)

		return nil, goerror.NewAuthentication(
			goerror.ReasonUnverifiedUser,
			"Account not verified. A new OTP has been sent to your email.",
		)
	}

	pair, err := s.jwt.GeneratePair(acc.ID, acc.Email, acc.IsStaff)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate token pair", "account_id", acc.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &LoginOutput{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}

// sendVerificationAsync delivers a reissued code outside the request's
// critical path; delivery failure is logged, not surfaced.
func (s *Usecase) sendVerificationAsync(ctx context.Context, email, code string) {
	s.goroutine.Go(context.WithoutCancel(ctx), func(ctx context.Context) error {
		if err := s.repoMailer.SendVerificationCode(ctx, email, code); err != nil {
			slog.WarnContext(ctx, "failed to send verification code", "email", email, "error", err)
		}
		return nil
	})
}

package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/apotekly/api/internal/account/entity"
	"github.com/apotekly/api/internal/pkg/goerror"
)

type RegisterInput struct {
	Email     string `validate:"required,email"`
	Password  string `validate:"required,password"`
	FirstName string `validate:"required,max=100"`
	LastName  string `validate:"required,max=100"`
	Mobile    string `validate:"required,mobile"`
}

type RegisterOutput struct {
	Email string
}

// Register creates an inactive account, generates an OTP and sends it, all as
// one atomic unit: a send failure rolls the account creation back so no
// account ever exists without its holder having been sent a code.
func (s *Usecase) Register(ctx context.Context, in RegisterInput) (*RegisterOutput, error) {
	ctx, span := s.startSpan(ctx, "Register")
	defer span.End()

	in.Email = entity.NormalizeEmail(in.Email)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Mobile = strings.TrimSpace(in.Mobile)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	acc, err := s.repoDB.GetAccountByEmail(ctx, in.Email)
	if err == nil {
		if acc.IsActive {
			return nil, goerror.NewInvalidInput(nil, "email", "Email already registered")
		}

		// Inactive duplicate: no new row, just a fresh code for the
		// existing account, stored and delivered as one unit so a failed
		// send keeps the previous code valid.
		code, err := s.otp.Generate()
		if err != nil {
			slog.ErrorContext(ctx, "failed to generate otp code", "account_id", acc.ID, "error", err)
			return nil, goerror.NewServer(err)
		}

		err = s.repoDB.ReissueOTP(ctx, acc.ID, entity.OTPIssue{
			Code:     code,
			IssuedAt: s.clock.Now(),
		}, func(ctx context.Context) error {
			return s.repoMailer.SendVerificationCode(ctx, acc.Email, code)
		})
		if err != nil {
			slog.ErrorContext(ctx, "failed to resend verification code", "email", acc.Email, "error", err)
			return nil, goerror.NewServer(err)
		}

		return nil, goerror.NewBusiness(
			"Account exists but is not verified. A new OTP has been sent to your email.",
			goerror.CodeConflict,
		)
	}
	if !errors.Is(err, goerror.ErrNotFound) {
		slog.ErrorContext(ctx, "failed to repo get account by email", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	hashedPassword, err := s.bcrypt.Hash(in.Password)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash password", "error", err)
		return nil, goerror.NewServer(err)
	}

	code, err := s.otp.Generate()
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate otp code", "error", err)
		return nil, goerror.NewServer(err)
	}

	newAcc := entity.NewAccount{
		ID:        s.uid.Generate(),
		Email:     in.Email,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Mobile:    in.Mobile,
		OTP: entity.OTPIssue{
			Code:     code,
			IssuedAt: s.clock.Now(),
		},
	}

	err = s.repoDB.NewRegistration(ctx, newAcc, string(hashedPassword), func(ctx context.Context) error {
		return s.repoMailer.SendVerificationCode(ctx, newAcc.Email, code)
	})
	if errors.Is(err, goerror.ErrConflict) {
		return nil, goerror.NewInvalidInput(nil, "email", "Email already registered")
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo register account", "email", newAcc.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &RegisterOutput{Email: newAcc.Email}, nil
}

package usecase

import (
	"context"
	"log/slog"

	"github.com/apotekly/api/internal/account/entity"
	"github.com/apotekly/api/internal/pkg/clock"
	"github.com/apotekly/api/internal/pkg/config"
	"github.com/apotekly/api/internal/pkg/goerror"
	"github.com/apotekly/api/internal/pkg/goroutine"
	"github.com/apotekly/api/internal/pkg/hash"
	"github.com/apotekly/api/internal/pkg/instrument"
	"github.com/apotekly/api/internal/pkg/jwt"
	"github.com/apotekly/api/internal/pkg/otp"
	"github.com/apotekly/api/internal/pkg/uid"
	"github.com/apotekly/api/internal/pkg/validator"
	"github.com/casbin/casbin/v3"
	"go.opentelemetry.io/otel/trace"
)

// Authorization objects and actions enforced via casbin.
const (
	PermAccounts = "accounts"
	PermActList  = "list"
)

type repoDB interface {
	GetAccountByEmail(ctx context.Context, email string) (*entity.Account, error)
	GetAccountByID(ctx context.Context, id int64) (*entity.Account, error)
	GetAccountList(ctx context.Context, filter entity.ListFilter) ([]entity.Account, int64, error)

	// NewRegistration creates the account row and runs preCommit inside the
	// same transaction; a preCommit failure rolls the whole unit back.
	NewRegistration(ctx context.Context, acc entity.NewAccount, passwordHash string, preCommit func(ctx context.Context) error) error

	IssueOTP(ctx context.Context, id int64, issue entity.OTPIssue) error

	// ReissueOTP stores a fresh code and runs preCommit inside the same
	// transaction; a preCommit failure leaves the previous code in place.
	ReissueOTP(ctx context.Context, id int64, issue entity.OTPIssue, preCommit func(ctx context.Context) error) error
	IncrementOTPAttempts(ctx context.Context, id int64) error
	ActivateAccount(ctx context.Context, id int64) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	UpdateProfile(ctx context.Context, change entity.ProfileChange) error
}

type repoMailer interface {
	SendVerificationCode(ctx context.Context, email, code string) error
	SendPasswordResetCode(ctx context.Context, email, code string) error
}

type Usecase struct {
	repoDB     repoDB
	repoMailer repoMailer
	validator  validator.Validator
	cfg        config.Config
	bcrypt     hash.Hash
	uid        uid.NumberID
	otp        otp.Generator
	clock      clock.Clocker
	jwt        jwt.JWT
	ins        instrument.Instrumentation
	enforcer   *casbin.Enforcer
	goroutine  *goroutine.Manager
}

type Dependency struct {
	RepoDB     repoDB
	RepoMailer repoMailer
	Validator  validator.Validator
	Config     config.Config
	Bcrypt     hash.Hash
	UID        uid.NumberID
	OTP        otp.Generator
	Clock      clock.Clocker
	JWT        jwt.JWT
	Instrument instrument.Instrumentation
	Enforcer   *casbin.Enforcer
	Goroutine  *goroutine.Manager
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:     dep.RepoDB,
		repoMailer: dep.RepoMailer,
		validator:  dep.Validator,
		cfg:        dep.Config,
		bcrypt:     dep.Bcrypt,
		uid:        dep.UID,
		otp:        dep.OTP,
		clock:      dep.Clock,
		jwt:        dep.JWT,
		ins:        dep.Instrument,
		enforcer:   dep.Enforcer,
		goroutine:  dep.Goroutine,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("account.usecase").Start(ctx, name)
}

// reissueOTP generates a fresh code, persists it (resetting the attempt
// counter), and returns the code for sending.
func (s *Usecase) reissueOTP(ctx context.Context, accountID int64) (string, error) {
	code, err := s.otp.Generate()
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate otp code", "account_id", accountID, "error", err)
		return "", goerror.NewServer(err)
	}

	if err := s.repoDB.IssueOTP(ctx, accountID, entity.OTPIssue{
		Code:     code,
		IssuedAt: s.clock.Now(),
	}); err != nil {
		slog.ErrorContext(ctx, "failed to repo issue otp", "account_id", accountID, "error", err)
		return "", goerror.NewServer(err)
	}

	return code, nil
}

func (s *Usecase) authenticatedAndAuthorized(ctx context.Context, obj, act string) (*jwt.Claims, error) {
	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	ok, err := s.enforcer.Enforce(entity.RoleOf(clm.IsStaff).String(), obj, act)
	if err != nil {
		slog.ErrorContext(ctx, "failed to check authorization", "user_id", clm.Subject, "error", err)
		return nil, goerror.NewServer(err)
	}

	if !ok {
		return nil, goerror.NewBusiness("Account not allowed", goerror.CodeForbidden)
	}

	return clm, nil
}

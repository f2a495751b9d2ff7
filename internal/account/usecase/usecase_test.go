package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/apotekly/api/internal/account/entity"
	"github.com/apotekly/api/internal/pkg/goerror"
	"github.com/apotekly/api/internal/pkg/goroutine"
	"github.com/apotekly/api/internal/pkg/hash"
	"github.com/apotekly/api/internal/pkg/instrument"
	"github.com/apotekly/api/internal/pkg/jwt"
	"github.com/apotekly/api/internal/pkg/validator"
	"github.com/casbin/casbin/v3"
	"github.com/casbin/casbin/v3/model"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

type fakeClock struct{ now time.Time }

func (c fakeClock) Now() time.Time { return c.now }

type fakeDB struct {
	getByEmailFn   func(ctx context.Context, email string) (*entity.Account, error)
	getByIDFn      func(ctx context.Context, id int64) (*entity.Account, error)
	getListFn      func(ctx context.Context, filter entity.ListFilter) ([]entity.Account, int64, error)
	registrationFn func(ctx context.Context, acc entity.NewAccount, passwordHash string, preCommit func(ctx context.Context) error) error
	reissueFn      func(ctx context.Context, id int64, issue entity.OTPIssue, preCommit func(ctx context.Context) error) error

	issuedOTP  []entity.OTPIssue
	increments []int64
	activated  []int64
	passwords  map[int64]string
	profiles   []entity.ProfileChange

	issueErr     error
	incrementErr error
	activateErr  error
	passwordErr  error
	profileErr   error
}

func (f *fakeDB) GetAccountByEmail(ctx context.Context, email string) (*entity.Account, error) {
	if f.getByEmailFn == nil {
		return nil, goerror.ErrNotFound
	}
	return f.getByEmailFn(ctx, email)
}

func (f *fakeDB) GetAccountByID(ctx context.Context, id int64) (*entity.Account, error) {
	if f.getByIDFn == nil {
		return nil, goerror.ErrNotFound
	}
	return f.getByIDFn(ctx, id)
}

func (f *fakeDB) GetAccountList(ctx context.Context, filter entity.ListFilter) ([]entity.Account, int64, error) {
	if f.getListFn == nil {
		return nil, 0, nil
	}
	return f.getListFn(ctx, filter)
}

func (f *fakeDB) NewRegistration(ctx context.Context, acc entity.NewAccount, passwordHash string, preCommit func(ctx context.Context) error) error {
	if f.registrationFn == nil {
		if preCommit != nil {
			if err := preCommit(ctx); err != nil {
				return err
			}
		}
		return nil
	}
	return f.registrationFn(ctx, acc, passwordHash, preCommit)
}

func (f *fakeDB) IssueOTP(_ context.Context, id int64, issue entity.OTPIssue) error {
	if f.issueErr != nil {
		return f.issueErr
	}
	_ = id
	f.issuedOTP = append(f.issuedOTP, issue)
	return nil
}

func (f *fakeDB) ReissueOTP(ctx context.Context, id int64, issue entity.OTPIssue, preCommit func(ctx context.Context) error) error {
	if f.reissueFn != nil {
		return f.reissueFn(ctx, id, issue, preCommit)
	}
	if f.issueErr != nil {
		return f.issueErr
	}
	if preCommit != nil {
		if err := preCommit(ctx); err != nil {
			return err
		}
	}
	f.issuedOTP = append(f.issuedOTP, issue)
	return nil
}

func (f *fakeDB) IncrementOTPAttempts(_ context.Context, id int64) error {
	if f.incrementErr != nil {
		return f.incrementErr
	}
	f.increments = append(f.increments, id)
	return nil
}

func (f *fakeDB) ActivateAccount(_ context.Context, id int64) error {
	if f.activateErr != nil {
		return f.activateErr
	}
	f.activated = append(f.activated, id)
	return nil
}

func (f *fakeDB) UpdatePassword(_ context.Context, id int64, passwordHash string) error {
	if f.passwordErr != nil {
		return f.passwordErr
	}
	if f.passwords == nil {
		f.passwords = make(map[int64]string)
	}
	f.passwords[id] = passwordHash
	return nil
}

func (f *fakeDB) UpdateProfile(_ context.Context, change entity.ProfileChange) error {
	if f.profileErr != nil {
		return f.profileErr
	}
	f.profiles = append(f.profiles, change)
	return nil
}

type sentMail struct {
	email string
	code  string
}

type fakeMailer struct {
	verifyErr error
	resetErr  error

	verifications []sentMail
	resets        []sentMail
}

func (f *fakeMailer) SendVerificationCode(_ context.Context, email, code string) error {
	if f.verifyErr != nil {
		return f.verifyErr
	}
	f.verifications = append(f.verifications, sentMail{email: email, code: code})
	return nil
}

func (f *fakeMailer) SendPasswordResetCode(_ context.Context, email, code string) error {
	if f.resetErr != nil {
		return f.resetErr
	}
	f.resets = append(f.resets, sentMail{email: email, code: code})
	return nil
}

type staticUID struct{ id int64 }

func (s staticUID) Generate() int64 { return s.id }

type staticOTP struct{ code string }

func (s staticOTP) Generate() (string, error) { return s.code, nil }

func testEnforcer(t *testing.T) *casbin.Enforcer {
	t.Helper()

	const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && (p.obj == "*" || r.obj == p.obj) && (p.act == "*" || r.act == p.act)
`
	m, err := model.NewModelFromString(rbacModel)
	require.NoError(t, err)

	e, err := casbin.NewEnforcer(m)
	require.NoError(t, err)

	_, err = e.AddPolicies([][]string{{"staff", "accounts", "*"}})
	require.NoError(t, err)

	return e
}

func testJWT(t *testing.T) jwt.JWT {
	t.Helper()

	j, err := jwt.NewHS512(jwt.Config{
		Secret:     []byte("test-secret-test-secret-test-secret-test-secret-test-secret-1234"),
		Issuer:     "apotekly-test",
		Audiences:  []string{"apotekly-test"},
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 24 * time.Hour,
		Clock:      fakeClock{now: testNow},
		UUID:       staticStringID{},
	})
	require.NoError(t, err)

	return j
}

type staticStringID struct{}

func (staticStringID) Generate() string { return "test-jti" }

func newTestUsecase(t *testing.T, db *fakeDB, mailer *fakeMailer) *Usecase {
	t.Helper()

	v, err := validator.NewV10Validator()
	require.NoError(t, err)

	return New(Dependency{
		RepoDB:     db,
		RepoMailer: mailer,
		Validator:  v,
		Bcrypt:     hash.NewBcrypt(4, "test-pepper"),
		UID:        staticUID{id: 42},
		OTP:        staticOTP{code: "123456"},
		Clock:      fakeClock{now: testNow},
		JWT:        testJWT(t),
		Instrument: instrument.NewNoop(),
		Enforcer:   testEnforcer(t),
		Goroutine:  goroutine.NewManager(10),
	})
}

// waitAsync drains the usecase's background sends so assertions on the fake
// mailer are race-free.
func waitAsync(t *testing.T, s *Usecase) {
	t.Helper()
	require.NoError(t, s.goroutine.Wait())
}

func inactiveAccount(hashed string) *entity.Account {
	code := "123456"
	issued := testNow.Add(-time.Minute)
	return &entity.Account{
		ID:           7,
		Email:        "budi@example.com",
		Password:     hashed,
		FirstName:    "Budi",
		LastName:     "Santoso",
		Mobile:       "+6281234567890",
		IsActive:     false,
		OTPCode:      &code,
		OTPCreatedAt: &issued,
	}
}

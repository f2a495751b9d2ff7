package usecase

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/apotekly/api/internal/account/entity"
	"github.com/apotekly/api/internal/pkg/goerror"
	"github.com/apotekly/api/internal/pkg/hash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRegisterInput() RegisterInput {
	return RegisterInput{
		Email:     "Budi@Example.com",
		Password:  "Secret123!",
		FirstName: "Budi",
		LastName:  "Santoso",
		Mobile:    "+6281234567890",
	}
}

func TestRegister(t *testing.T) {
	t.Run("creates account and sends otp in one unit", func(t *testing.T) {
		var gotAcc entity.NewAccount
		var gotHash string
		db := &fakeDB{
			registrationFn: func(ctx context.Context, acc entity.NewAccount, passwordHash string, preCommit func(ctx context.Context) error) error {
				gotAcc = acc
				gotHash = passwordHash
				return preCommit(ctx)
			},
		}
		mailer := &fakeMailer{}
		s := newTestUsecase(t, db, mailer)

		out, err := s.Register(context.Background(), validRegisterInput())

		require.NoError(t, err)
		assert.Equal(t, "budi@example.com", out.Email)
		assert.Equal(t, int64(42), gotAcc.ID)
		assert.Equal(t, "123456", gotAcc.OTP.Code)
		assert.Equal(t, testNow, gotAcc.OTP.IssuedAt)
		assert.True(t, hash.NewBcrypt(4, "test-pepper").Verify(gotHash, "Secret123!"))
		require.Len(t, mailer.verifications, 1)
		assert.Equal(t, sentMail{email: "budi@example.com", code: "123456"}, mailer.verifications[0])
	})

	t.Run("email send failure aborts registration", func(t *testing.T) {
		committed := false
		db := &fakeDB{
			registrationFn: func(ctx context.Context, _ entity.NewAccount, _ string, preCommit func(ctx context.Context) error) error {
				if err := preCommit(ctx); err != nil {
					return err
				}
				committed = true
				return nil
			},
		}
		mailer := &fakeMailer{verifyErr: errors.New("smtp down")}
		s := newTestUsecase(t, db, mailer)

		_, err := s.Register(context.Background(), validRegisterInput())

		require.Error(t, err)
		assert.False(t, committed)
		var gerr *goerror.Error
		require.ErrorAs(t, err, &gerr)
		assert.Equal(t, http.StatusInternalServerError, gerr.StatusCode())
	})

	t.Run("active duplicate is a field error", func(t *testing.T) {
		db := &fakeDB{
			getByEmailFn: func(context.Context, string) (*entity.Account, error) {
				return &entity.Account{ID: 7, Email: "budi@example.com", IsActive: true}, nil
			},
		}
		s := newTestUsecase(t, db, &fakeMailer{})

		_, err := s.Register(context.Background(), validRegisterInput())

		var gerr *goerror.Error
		require.ErrorAs(t, err, &gerr)
		assert.Equal(t, http.StatusBadRequest, gerr.StatusCode())
		assert.Equal(t, "Email already registered", gerr.Fields()["email"])
	})

	t.Run("inactive duplicate reissues otp and conflicts", func(t *testing.T) {
		db := &fakeDB{
			getByEmailFn: func(context.Context, string) (*entity.Account, error) {
				return inactiveAccount(""), nil
			},
		}
		mailer := &fakeMailer{}
		s := newTestUsecase(t, db, mailer)

		_, err := s.Register(context.Background(), validRegisterInput())

		var gerr *goerror.Error
		require.ErrorAs(t, err, &gerr)
		assert.Equal(t, http.StatusConflict, gerr.StatusCode())
		require.Len(t, db.issuedOTP, 1)
		require.Len(t, mailer.verifications, 1)
		assert.Equal(t, "budi@example.com", mailer.verifications[0].email)
	})

	t.Run("resend failure on inactive duplicate is a server error", func(t *testing.T) {
		db := &fakeDB{
			getByEmailFn: func(context.Context, string) (*entity.Account, error) {
				return inactiveAccount(""), nil
			},
		}
		mailer := &fakeMailer{verifyErr: errors.New("smtp down")}
		s := newTestUsecase(t, db, mailer)

		_, err := s.Register(context.Background(), validRegisterInput())

		var gerr *goerror.Error
		require.ErrorAs(t, err, &gerr)
		assert.Equal(t, http.StatusInternalServerError, gerr.StatusCode())
		assert.Empty(t, db.issuedOTP)
		assert.Empty(t, mailer.verifications)
	})

	t.Run("unique violation race maps to field error", func(t *testing.T) {
		db := &fakeDB{
			registrationFn: func(context.Context, entity.NewAccount, string, func(ctx context.Context) error) error {
				return goerror.ErrConflict
			},
		}
		s := newTestUsecase(t, db, &fakeMailer{})

		_, err := s.Register(context.Background(), validRegisterInput())

		var gerr *goerror.Error
		require.ErrorAs(t, err, &gerr)
		assert.Equal(t, http.StatusBadRequest, gerr.StatusCode())
		assert.Equal(t, "Email already registered", gerr.Fields()["email"])
	})

	t.Run("rejects weak password", func(t *testing.T) {
		in := validRegisterInput()
		in.Password = "short"
		s := newTestUsecase(t, &fakeDB{}, &fakeMailer{})

		_, err := s.Register(context.Background(), in)

		var gerr *goerror.Error
		require.ErrorAs(t, err, &gerr)
		assert.Equal(t, http.StatusBadRequest, gerr.StatusCode())
	})
}

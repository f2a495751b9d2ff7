package usecase

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/apotekly/api/internal/account/entity"
	"github.com/apotekly/api/internal/pkg/goerror"
	"github.com/apotekly/api/internal/pkg/hash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordResetRequest(t *testing.T) {
	t.Run("reissues otp and sends reset email", func(t *testing.T) {
		db := &fakeDB{
			getByEmailFn: func(context.Context, string) (*entity.Account, error) {
				acc := inactiveAccount("")
				acc.IsActive = true
				return acc, nil
			},
		}
		mailer := &fakeMailer{}
		s := newTestUsecase(t, db, mailer)

		err := s.PasswordResetRequest(context.Background(), PasswordResetRequestInput{Email: "budi@example.com"})
		waitAsync(t, s)

		require.NoError(t, err)
		require.Len(t, db.issuedOTP, 1)
		assert.Equal(t, "123456", db.issuedOTP[0].Code)
		require.Len(t, mailer.resets, 1)
		assert.Equal(t, sentMail{email: "budi@example.com", code: "123456"}, mailer.resets[0])
	})

	t.Run("unknown email", func(t *testing.T) {
		s := newTestUsecase(t, &fakeDB{}, &fakeMailer{})

		err := s.PasswordResetRequest(context.Background(), PasswordResetRequestInput{Email: "nobody@example.com"})

		var gerr *goerror.Error
		require.ErrorAs(t, err, &gerr)
		assert.Equal(t, http.StatusNotFound, gerr.StatusCode())
	})

	t.Run("send failure does not fail the request", func(t *testing.T) {
		db := &fakeDB{
			getByEmailFn: func(context.Context, string) (*entity.Account, error) {
				acc := inactiveAccount("")
				acc.IsActive = true
				return acc, nil
			},
		}
		mailer := &fakeMailer{resetErr: errors.New("smtp down")}
		s := newTestUsecase(t, db, mailer)

		err := s.PasswordResetRequest(context.Background(), PasswordResetRequestInput{Email: "budi@example.com"})
		waitAsync(t, s)

		require.NoError(t, err)
		require.Len(t, db.issuedOTP, 1)
	})
}

func TestPasswordResetConfirm(t *testing.T) {
	validIn := PasswordResetConfirmInput{
		Email:       "budi@example.com",
		OTPCode:     "123456",
		NewPassword: "NewSecret123!",
	}

	activeWithOTP := func() *entity.Account {
		acc := inactiveAccount("")
		acc.IsActive = true
		return acc
	}

	t.Run("replaces password on matching code", func(t *testing.T) {
		db := &fakeDB{
			getByEmailFn: func(context.Context, string) (*entity.Account, error) {
				return activeWithOTP(), nil
			},
		}
		s := newTestUsecase(t, db, &fakeMailer{})

		err := s.PasswordResetConfirm(context.Background(), validIn)

		require.NoError(t, err)
		require.Contains(t, db.passwords, int64(7))
		assert.True(t, hash.NewBcrypt(4, "test-pepper").Verify(db.passwords[7], "NewSecret123!"))
	})

	t.Run("unknown email", func(t *testing.T) {
		s := newTestUsecase(t, &fakeDB{}, &fakeMailer{})

		err := s.PasswordResetConfirm(context.Background(), validIn)

		assert.Equal(t, "No account found with this email.", fieldError(t, err)["email"])
	})

	t.Run("wrong code increments attempts", func(t *testing.T) {
		db := &fakeDB{
			getByEmailFn: func(context.Context, string) (*entity.Account, error) {
				return activeWithOTP(), nil
			},
		}
		s := newTestUsecase(t, db, &fakeMailer{})

		in := validIn
		in.OTPCode = "654321"
		err := s.PasswordResetConfirm(context.Background(), in)

		assert.Equal(t, "Invalid OTP.", fieldError(t, err)["otp_code"])
		assert.Equal(t, []int64{7}, db.increments)
		assert.Empty(t, db.passwords)
	})

	t.Run("missing code counts as mismatch", func(t *testing.T) {
		db := &fakeDB{
			getByEmailFn: func(context.Context, string) (*entity.Account, error) {
				acc := activeWithOTP()
				acc.OTPCode = nil
				return acc, nil
			},
		}
		s := newTestUsecase(t, db, &fakeMailer{})

		err := s.PasswordResetConfirm(context.Background(), validIn)

		assert.Equal(t, "Invalid OTP.", fieldError(t, err)["otp_code"])
		assert.Equal(t, []int64{7}, db.increments)
	})

	t.Run("expired code", func(t *testing.T) {
		db := &fakeDB{
			getByEmailFn: func(context.Context, string) (*entity.Account, error) {
				acc := activeWithOTP()
				issued := testNow.Add(-entity.OTPLifetime - time.Second)
				acc.OTPCreatedAt = &issued
				return acc, nil
			},
		}
		s := newTestUsecase(t, db, &fakeMailer{})

		err := s.PasswordResetConfirm(context.Background(), validIn)

		assert.Equal(t, "OTP expired. Please request a new one.", fieldError(t, err)["otp_code"])
		assert.Empty(t, db.passwords)
	})

	t.Run("attempt counter does not lock reset confirmation", func(t *testing.T) {
		db := &fakeDB{
			getByEmailFn: func(context.Context, string) (*entity.Account, error) {
				acc := activeWithOTP()
				acc.OTPAttempts = entity.OTPMaxAttempts + 1
				return acc, nil
			},
		}
		s := newTestUsecase(t, db, &fakeMailer{})

		err := s.PasswordResetConfirm(context.Background(), validIn)

		require.NoError(t, err)
		require.Contains(t, db.passwords, int64(7))
	})
}

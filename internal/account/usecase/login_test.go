package usecase

import (
	"context"
	"net/http"
	"testing"

	"github.com/apotekly/api/internal/account/entity"
	"github.com/apotekly/api/internal/pkg/goerror"
	"github.com/apotekly/api/internal/pkg/hash"
	"github.com/apotekly/api/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hashedPassword(t *testing.T, plaintext string) string {
	t.Helper()
	h, err := hash.NewBcrypt(4, "test-pepper").Hash(plaintext)
	require.NoError(t, err)
	return string(h)
}

func authReason(t *testing.T, err error) goerror.AuthReason {
	t.Helper()
	var gerr *goerror.Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, http.StatusUnauthorized, gerr.StatusCode())
	return gerr.Reason()
}

func TestLogin(t *testing.T) {
	validIn := LoginInput{Email: "budi@example.com", Password: "Secret123!"}

	t.Run("returns token pair for active account", func(t *testing.T) {
		db := &fakeDB{
			getByEmailFn: func(context.Context, string) (*entity.Account, error) {
				acc := inactiveAccount(hashedPassword(t, "Secret123!"))
				acc.IsActive = true
				acc.IsStaff = true
				return acc, nil
			},
		}
		s := newTestUsecase(t, db, &fakeMailer{})

		out, err := s.Login(context.Background(), validIn)

		require.NoError(t, err)
		require.NotEmpty(t, out.AccessToken)
		require.NotEmpty(t, out.RefreshToken)

		clm, err := s.jwt.Verify(out.AccessToken, jwt.TokenUseAccess)
		require.NoError(t, err)
		assert.Equal(t, int64(7), clm.UserID)
		assert.Equal(t, "budi@example.com", clm.UserEmail)
		assert.True(t, clm.IsStaff)
	})

	t.Run("unknown email is generic failure", func(t *testing.T) {
		s := newTestUsecase(t, &fakeDB{}, &fakeMailer{})

		_, err := s.Login(context.Background(), validIn)

		assert.Equal(t, goerror.ReasonAuthenticationFailed, authReason(t, err))
	})

	t.Run("wrong password is generic failure without otp reissue", func(t *testing.T) {
		db := &fakeDB{
			getByEmailFn: func(context.Context, string) (*entity.Account, error) {
				return inactiveAccount(hashedPassword(t, "Secret123!")), nil
			},
		}
		mailer := &fakeMailer{}
		s := newTestUsecase(t, db, mailer)

		_, err := s.Login(context.Background(), LoginInput{Email: "budi@example.com", Password: "wrong-pass"})

		assert.Equal(t, goerror.ReasonAuthenticationFailed, authReason(t, err))
		assert.Empty(t, db.issuedOTP)
		assert.Empty(t, mailer.verifications)
	})

	t.Run("unverified account gets fresh otp", func(t *testing.T) {
		db := &fakeDB{
			getByEmailFn: func(context.Context, string) (*entity.Account, error) {
				return inactiveAccount(hashedPassword(t, "Secret123!")), nil
			},
		}
		mailer := &fakeMailer{}
		s := newTestUsecase(t, db, mailer)

		_, err := s.Login(context.Background(), validIn)
		waitAsync(t, s)

		assert.Equal(t, goerror.ReasonUnverifiedUser, authReason(t, err))
		require.Len(t, db.issuedOTP, 1)
		require.Len(t, mailer.verifications, 1)
		assert.Equal(t, sentMail{email: "budi@example.com", code: "123456"}, mailer.verifications[0])
	})
}

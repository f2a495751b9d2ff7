package usecase

import (
	"context"
	"net/http"
	"testing"

	"github.com/apotekly/api/internal/account/entity"
	"github.com/apotekly/api/internal/pkg/goerror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefreshToken(t *testing.T) {
	activeAcc := func() *entity.Account {
		acc := inactiveAccount("")
		acc.IsActive = true
		return acc
	}

	loginPair := func(t *testing.T, s *Usecase) string {
		t.Helper()
		pair, err := s.jwt.GeneratePair(7, "budi@example.com", false)
		require.NoError(t, err)
		return pair.RefreshToken
	}

	assertUnauthorized := func(t *testing.T, err error) {
		t.Helper()
		var gerr *goerror.Error
		require.ErrorAs(t, err, &gerr)
		assert.Equal(t, http.StatusUnauthorized, gerr.StatusCode())
		assert.Equal(t, "Invalid or expired refresh token.", gerr.Msg())
	}

	t.Run("issues new pair for valid refresh token", func(t *testing.T) {
		db := &fakeDB{
			getByIDFn: func(_ context.Context, id int64) (*entity.Account, error) {
				require.Equal(t, int64(7), id)
				return activeAcc(), nil
			},
		}
		s := newTestUsecase(t, db, &fakeMailer{})

		out, err := s.RefreshToken(context.Background(), RefreshTokenInput{RefreshToken: loginPair(t, s)})

		require.NoError(t, err)
		assert.NotEmpty(t, out.AccessToken)
		assert.NotEmpty(t, out.RefreshToken)
	})

	t.Run("rejects access token in refresh slot", func(t *testing.T) {
		s := newTestUsecase(t, &fakeDB{}, &fakeMailer{})
		pair, err := s.jwt.GeneratePair(7, "budi@example.com", false)
		require.NoError(t, err)

		_, err = s.RefreshToken(context.Background(), RefreshTokenInput{RefreshToken: pair.AccessToken})

		assertUnauthorized(t, err)
	})

	t.Run("rejects garbage token", func(t *testing.T) {
		s := newTestUsecase(t, &fakeDB{}, &fakeMailer{})

		_, err := s.RefreshToken(context.Background(), RefreshTokenInput{RefreshToken: "not-a-token"})

		assertUnauthorized(t, err)
	})

	t.Run("rejects token for deleted account", func(t *testing.T) {
		s := newTestUsecase(t, &fakeDB{}, &fakeMailer{})

		_, err := s.RefreshToken(context.Background(), RefreshTokenInput{RefreshToken: loginPair(t, s)})

		assertUnauthorized(t, err)
	})

	t.Run("rejects token for deactivated account", func(t *testing.T) {
		db := &fakeDB{
			getByIDFn: func(context.Context, int64) (*entity.Account, error) {
				return inactiveAccount(""), nil
			},
		}
		s := newTestUsecase(t, db, &fakeMailer{})

		_, err := s.RefreshToken(context.Background(), RefreshTokenInput{RefreshToken: loginPair(t, s)})

		assertUnauthorized(t, err)
	})
}

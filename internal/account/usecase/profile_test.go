package usecase

import (
	"context"
	"net/http"
	"testing"

	"github.com/apotekly/api/internal/account/entity"
	"github.com/apotekly/api/internal/pkg/goerror"
	"github.com/apotekly/api/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authContext(userID int64, staff bool) context.Context {
	return jwt.SetAuth(context.Background(), jwt.Claims{UserID: userID, IsStaff: staff})
}

func TestProfile(t *testing.T) {
	t.Run("returns own account", func(t *testing.T) {
		db := &fakeDB{
			getByIDFn: func(_ context.Context, id int64) (*entity.Account, error) {
				require.Equal(t, int64(7), id)
				acc := inactiveAccount("")
				acc.IsActive = true
				return acc, nil
			},
		}
		s := newTestUsecase(t, db, &fakeMailer{})

		out, err := s.Profile(authContext(7, false))

		require.NoError(t, err)
		assert.Equal(t, int64(7), out.ID)
		assert.Equal(t, "budi@example.com", out.Email)
		assert.Equal(t, "Budi", out.FirstName)
		assert.Equal(t, "Santoso", out.LastName)
	})

	t.Run("requires authentication", func(t *testing.T) {
		s := newTestUsecase(t, &fakeDB{}, &fakeMailer{})

		_, err := s.Profile(context.Background())

		var gerr *goerror.Error
		require.ErrorAs(t, err, &gerr)
		assert.Equal(t, http.StatusUnauthorized, gerr.StatusCode())
	})
}

func TestProfileUpdate(t *testing.T) {
	t.Run("updates profile fields", func(t *testing.T) {
		db := &fakeDB{}
		s := newTestUsecase(t, db, &fakeMailer{})

		err := s.ProfileUpdate(authContext(7, false), ProfileUpdateInput{
			FirstName: "Siti",
			LastName:  "Rahma",
			Mobile:    "+6289876543210",
		})

		require.NoError(t, err)
		require.Len(t, db.profiles, 1)
		assert.Equal(t, entity.ProfileChange{
			ID:        7,
			FirstName: "Siti",
			LastName:  "Rahma",
			Mobile:    "+6289876543210",
		}, db.profiles[0])
	})

	t.Run("rejects malformed mobile", func(t *testing.T) {
		s := newTestUsecase(t, &fakeDB{}, &fakeMailer{})

		err := s.ProfileUpdate(authContext(7, false), ProfileUpdateInput{
			FirstName: "Siti",
			LastName:  "Rahma",
			Mobile:    "not-a-number",
		})

		var gerr *goerror.Error
		require.ErrorAs(t, err, &gerr)
		assert.Equal(t, goerror.CodeInvalidInput, gerr.Code())
	})

	t.Run("requires authentication", func(t *testing.T) {
		s := newTestUsecase(t, &fakeDB{}, &fakeMailer{})

		err := s.ProfileUpdate(context.Background(), ProfileUpdateInput{
			FirstName: "Siti",
			LastName:  "Rahma",
			Mobile:    "+6289876543210",
		})

		var gerr *goerror.Error
		require.ErrorAs(t, err, &gerr)
		assert.Equal(t, http.StatusUnauthorized, gerr.StatusCode())
	})
}

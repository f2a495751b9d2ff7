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

func TestUserList(t *testing.T) {
	t.Run("returns page for staff", func(t *testing.T) {
		var gotFilter entity.ListFilter
		db := &fakeDB{
			getListFn: func(_ context.Context, filter entity.ListFilter) ([]entity.Account, int64, error) {
				gotFilter = filter
				return []entity.Account{*inactiveAccount("")}, 1, nil
			},
		}
		s := newTestUsecase(t, db, &fakeMailer{})

		out, err := s.UserList(authContext(1, true), UserListInput{Search: " budi ", Size: 20, Page: 3})

		require.NoError(t, err)
		assert.Equal(t, int64(1), out.Total)
		assert.Equal(t, int32(3), out.Page)
		require.Len(t, out.Accounts, 1)
		assert.Equal(t, "budi", gotFilter.Search)
		assert.True(t, gotFilter.IsSearch)
		assert.Equal(t, int32(20), gotFilter.Size)
		assert.Equal(t, int32(40), gotFilter.Offset)
	})

	t.Run("defaults size and page", func(t *testing.T) {
		var gotFilter entity.ListFilter
		db := &fakeDB{
			getListFn: func(_ context.Context, filter entity.ListFilter) ([]entity.Account, int64, error) {
				gotFilter = filter
				return nil, 0, nil
			},
		}
		s := newTestUsecase(t, db, &fakeMailer{})

		out, err := s.UserList(authContext(1, true), UserListInput{})

		require.NoError(t, err)
		assert.Equal(t, int32(10), gotFilter.Size)
		assert.Equal(t, int32(0), gotFilter.Offset)
		assert.False(t, gotFilter.IsSearch)
		assert.Equal(t, int32(1), out.Page)
	})

	t.Run("caps oversized page size", func(t *testing.T) {
		var gotFilter entity.ListFilter
		db := &fakeDB{
			getListFn: func(_ context.Context, filter entity.ListFilter) ([]entity.Account, int64, error) {
				gotFilter = filter
				return nil, 0, nil
			},
		}
		s := newTestUsecase(t, db, &fakeMailer{})

		_, err := s.UserList(authContext(1, true), UserListInput{Size: 500})

		require.NoError(t, err)
		assert.Equal(t, int32(10), gotFilter.Size)
	})

	t.Run("forbidden for regular users", func(t *testing.T) {
		s := newTestUsecase(t, &fakeDB{}, &fakeMailer{})

		_, err := s.UserList(authContext(1, false), UserListInput{})

		var gerr *goerror.Error
		require.ErrorAs(t, err, &gerr)
		assert.Equal(t, http.StatusForbidden, gerr.StatusCode())
	})

	t.Run("requires authentication", func(t *testing.T) {
		s := newTestUsecase(t, &fakeDB{}, &fakeMailer{})

		_, err := s.UserList(context.Background(), UserListInput{})

		var gerr *goerror.Error
		require.ErrorAs(t, err, &gerr)
		assert.Equal(t, http.StatusUnauthorized, gerr.StatusCode())
	})
}

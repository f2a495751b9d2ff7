package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/apotekly/api/internal/account/entity"
	"github.com/apotekly/api/internal/pkg/goerror"
)

type UserListInput struct {
	Search string
	Size   int32
	Page   int32
}

type UserListOutput struct {
	Page     int32
	Size     int32
	Total    int64
	Accounts []entity.Account
}

// UserList returns a page of accounts. Staff only.
func (s *Usecase) UserList(ctx context.Context, in UserListInput) (*UserListOutput, error) {
	ctx, span := s.startSpan(ctx, "UserList")
	defer span.End()

	if _, err := s.authenticatedAndAuthorized(ctx, PermAccounts, PermActList); err != nil {
		return nil, err
	}

	if in.Size <= 0 || in.Size > 100 {
		in.Size = 10 // default limit
	}

	filter := entity.ListFilter{
		Search: strings.TrimSpace(in.Search),
		Size:   in.Size,
		Offset: (max(in.Page, 1) - 1) * in.Size,
	}
	filter.IsSearch = filter.Search != ""

	accounts, count, err := s.repoDB.GetAccountList(ctx, filter)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list accounts", "error", err)
		return nil, goerror.NewServer(err)
	}

	return &UserListOutput{
		Page:     max(in.Page, 1),
		Size:     in.Size,
		Total:    count,
		Accounts: accounts,
	}, nil
}

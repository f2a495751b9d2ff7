package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/apotekly/api/internal/account/entity"
	"github.com/apotekly/api/internal/pkg/goerror"
	"github.com/apotekly/api/internal/pkg/jwt"
)

type ProfileUpdateInput struct {
	FirstName string `validate:"required,max=100"`
	LastName  string `validate:"required,max=100"`
	Mobile    string `validate:"required,mobile"`
}

// ProfileUpdate changes the caller's own profile fields. Email and password
// are not changeable here.
func (s *Usecase) ProfileUpdate(ctx context.Context, in ProfileUpdateInput) error {
	ctx, span := s.startSpan(ctx, "ProfileUpdate")
	defer span.End()

	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Mobile = strings.TrimSpace(in.Mobile)

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	if err := s.repoDB.UpdateProfile(ctx, entity.ProfileChange{
		ID:        clm.UserID,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Mobile:    in.Mobile,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to repo update profile", "account_id", clm.UserID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}

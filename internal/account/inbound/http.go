package inbound

import (
	"context"

	"github.com/apotekly/api/internal/account/usecase"
	"github.com/apotekly/api/internal/pkg/ratelimit"
	"github.com/apotekly/api/internal/pkg/router"
)

type uc interface {
	Register(ctx context.Context, in usecase.RegisterInput) (*usecase.RegisterOutput, error)
	Verify(ctx context.Context, in usecase.VerifyInput) error
	Login(ctx context.Context, in usecase.LoginInput) (*usecase.LoginOutput, error)
	RefreshToken(ctx context.Context, in usecase.RefreshTokenInput) (*usecase.RefreshTokenOutput, error)

	PasswordResetRequest(ctx context.Context, in usecase.PasswordResetRequestInput) error
	PasswordResetConfirm(ctx context.Context, in usecase.PasswordResetConfirmInput) error

	Profile(ctx context.Context) (*usecase.ProfileOutput, error)
	ProfileUpdate(ctx context.Context, in usecase.ProfileUpdateInput) error

	UserList(ctx context.Context, in usecase.UserListInput) (*usecase.UserListOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc, limiter ratelimit.Limiter) {
	end := &HTTPEndpoint{uc: uc}

	// Authentication (OTP issuing endpoints are rate limited per client IP)
	r.POST("/api/v1/auth/register", end.Register, router.RateLimit(limiter, "register"))
	r.POST("/api/v1/auth/verify", end.Verify)
	r.POST("/api/v1/auth/login", end.Login, router.RateLimit(limiter, "login"))
	r.POST("/api/v1/auth/refresh", end.RefreshToken)

	// Password Management
	r.POST("/api/v1/auth/password/reset", end.PasswordResetRequest, router.RateLimit(limiter, "password-reset"))
	r.POST("/api/v1/auth/password/reset/confirm", end.PasswordResetConfirm)

	// User Profile (need authenticated)
	r.GET("/api/v1/users/profile", end.Profile)
	r.PUT("/api/v1/users/profile", end.ProfileUpdate)

	// User Directory (need authenticated & authorization)
	r.GET("/api/v1/users", end.UserList)
}

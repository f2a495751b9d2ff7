package inbound

import (
	"github.com/apotekly/api/internal/account/entity"
	"github.com/apotekly/api/internal/account/usecase"
	"github.com/apotekly/api/internal/pkg/router"
	"github.com/samber/lo"
)

// HTTPEndpoint exposes HTTP handlers for authentication and profile workflows.
type HTTPEndpoint struct {
	uc uc
}

// Register creates a new account and sends a verification OTP by email.
// @Summary Register user
// @Description Creates an inactive account and emails a one-time verification code.
// @Tags Account, Authentication
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration payload"
// @Success 201 {object} router.successResponse{data=RegisterResponse} "Registration result"
// @Failure 400 {object} router.errorResponse "Invalid request body or validation error"
// @Failure 409 {object} router.errorResponse "Unverified account already exists"
// @Failure 429 {object} router.errorResponse "Too many requests"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/auth/register [post]
func (h *HTTPEndpoint) Register(r *router.Request) (any, error) {
	var req RegisterRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Register(r.Context(), usecase.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Mobile:    req.Mobile,
	})
	if err != nil {
		return nil, err
	}

	return RegisterResponse{Email: resp.Email}, nil
}

// Verify activates an account using the emailed OTP.
// @Summary Verify account
// @Description Confirms the one-time code sent by email and activates the account.
// @Tags Account, Authentication
// @Accept json
// @Produce json
// @Param request body VerifyRequest true "Verification payload"
// @Success 200 {object} router.successResponse{data=VerifyResponse} "Verification result"
// @Failure 400 {object} router.errorResponse "Invalid, expired, or locked OTP"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/auth/verify [post]
func (h *HTTPEndpoint) Verify(r *router.Request) (any, error) {
	var req VerifyRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.Verify(r.Context(), usecase.VerifyInput{
		Email:   req.Email,
		OTPCode: req.OTPCode,
	}); err != nil {
		return nil, err
	}

	return VerifyResponse{}, nil
}

// Login authenticates a user and returns an access/refresh token pair.
// @Summary Authenticate user
// @Description Validates credentials and returns tokens. Unverified accounts get a fresh OTP instead.
// @Tags Account, Authentication
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login payload"
// @Success 200 {object} router.successResponse{data=LoginResponse} "Authentication result"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Invalid credentials or unverified account"
// @Failure 429 {object} router.errorResponse "Too many requests"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/auth/login [post]
func (h *HTTPEndpoint) Login(r *router.Request) (any, error) {
	var req LoginRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Login(r.Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}

	return LoginResponse{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
	}, nil
}

// RefreshToken exchanges a refresh token for a new token pair.
// @Summary Refresh access token
// @Description Exchanges a valid refresh token for a new access/refresh token pair.
// @Tags Account, Authentication
// @Accept json
// @Produce json
// @Param request body RefreshTokenRequest true "Refresh token payload"
// @Success 200 {object} router.successResponse{data=RefreshTokenResponse} "Token refresh result"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Invalid refresh token"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/auth/refresh [post]
func (h *HTTPEndpoint) RefreshToken(r *router.Request) (any, error) {
	var req RefreshTokenRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.RefreshToken(r.Context(), usecase.RefreshTokenInput{RefreshToken: req.RefreshToken})
	if err != nil {
		return nil, err
	}

	return RefreshTokenResponse{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
	}, nil
}

// PasswordResetRequest emails a password reset OTP.
// @Summary Request password reset
// @Description Sends a one-time reset code to the account's email address.
// @Tags Account, Password
// @Accept json
// @Produce json
// @Param request body PasswordResetRequest true "Password reset payload"
// @Success 200 {object} router.successResponse{data=PasswordResetResponse} "Reset request result"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 404 {object} router.errorResponse "Account not found"
// @Failure 429 {object} router.errorResponse "Too many requests"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/auth/password/reset [post]
func (h *HTTPEndpoint) PasswordResetRequest(r *router.Request) (any, error) {
	var req PasswordResetRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.PasswordResetRequest(r.Context(), usecase.PasswordResetRequestInput{
		Email: req.Email,
	}); err != nil {
		return nil, err
	}

	return PasswordResetResponse{}, nil
}

// PasswordResetConfirm sets a new password using the emailed OTP.
// @Summary Confirm password reset
// @Description Validates the reset code and replaces the account password.
// @Tags Account, Password
// @Accept json
// @Produce json
// @Param request body PasswordResetConfirmRequest true "Password reset confirmation payload"
// @Success 200 {object} router.successResponse{data=PasswordResetConfirmResponse} "Reset result"
// @Failure 400 {object} router.errorResponse "Invalid or expired OTP"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/auth/password/reset/confirm [post]
func (h *HTTPEndpoint) PasswordResetConfirm(r *router.Request) (any, error) {
	var req PasswordResetConfirmRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.PasswordResetConfirm(r.Context(), usecase.PasswordResetConfirmInput{
		Email:       req.Email,
		OTPCode:     req.OTPCode,
		NewPassword: req.NewPassword,
	}); err != nil {
		return nil, err
	}

	return PasswordResetConfirmResponse{}, nil
}

// Profile returns the authenticated user's profile.
// @Summary Get own profile
// @Description Returns the profile of the authenticated account.
// @Tags Account, Profile
// @Security BearerAuth
// @Produce json
// @Success 200 {object} router.successResponse{data=ProfileResponse} "Profile data"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/users/profile [get]
func (h *HTTPEndpoint) Profile(r *router.Request) (any, error) {
	resp, err := h.uc.Profile(r.Context())
	if err != nil {
		return nil, err
	}

	return ProfileResponse{
		ID:        resp.ID,
		Email:     resp.Email,
		FirstName: resp.FirstName,
		LastName:  resp.LastName,
		Mobile:    resp.Mobile,
		IsStaff:   resp.IsStaff,
		CreatedAt: resp.CreatedAt,
	}, nil
}

// ProfileUpdate updates the authenticated user's profile fields.
// @Summary Update own profile
// @Description Updates first name, last name, and mobile number of the authenticated account.
// @Tags Account, Profile
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body ProfileUpdateRequest true "Profile payload"
// @Success 200 {object} router.successResponse{data=ProfileUpdateResponse} "Update result"
// @Failure 400 {object} router.errorResponse "Validation error"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/users/profile [put]
func (h *HTTPEndpoint) ProfileUpdate(r *router.Request) (any, error) {
	var req ProfileUpdateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.ProfileUpdate(r.Context(), usecase.ProfileUpdateInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Mobile:    req.Mobile,
	}); err != nil {
		return nil, err
	}

	return ProfileUpdateResponse{}, nil
}

// UserList returns a page of accounts for staff users.
// @Summary List users
// @Description Returns a paged account listing. Staff only.
// @Tags Account, Management Users
// @Security BearerAuth
// @Produce json
// @Param search query string false "Search by email or name"
// @Param size query int false "Page size"
// @Param page query int false "Page number"
// @Success 200 {object} router.successResponse{data=UsersResponse} "User listing"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/users [get]
func (h *HTTPEndpoint) UserList(r *router.Request) (any, error) {
	size, err := r.GetQueryInt32("size")
	if err != nil {
		return nil, err
	}

	page, err := r.GetQueryInt32("page")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.UserList(r.Context(), usecase.UserListInput{
		Search: r.GetQuery("search"),
		Size:   size,
		Page:   page,
	})
	if err != nil {
		return nil, err
	}

	return UsersResponse{
		total: resp.Total,
		size:  resp.Size,
		page:  resp.Page,
		Users: lo.Map(resp.Accounts, func(acc entity.Account, _ int) UserResponse {
			return UserResponse{
				ID:        acc.ID,
				Email:     acc.Email,
				FirstName: acc.FirstName,
				LastName:  acc.LastName,
				Mobile:    acc.Mobile,
				IsActive:  acc.IsActive,
				IsStaff:   acc.IsStaff,
				CreatedAt: acc.CreatedAt,
			}
		}),
	}, nil
}

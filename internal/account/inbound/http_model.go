package inbound

import (
	"net/http"
	"time"
)

type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Mobile    string `json:"mobile"`
}

type RegisterResponse struct {
	Email string `json:"email"`
}

func (RegisterResponse) Message() string {
	return "Registration successful. Please check your email for the OTP."
}

func (RegisterResponse) StatusCode() int {
	return http.StatusCreated
}

type VerifyRequest struct {
	Email   string `json:"email"`
	OTPCode string `json:"otp_code"`
}

type VerifyResponse struct{}

func (VerifyResponse) Message() string {
	return "Account verified successfully."
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type PasswordResetRequest struct {
	Email string `json:"email"`
}

type PasswordResetResponse struct{}

func (PasswordResetResponse) Message() string {
	return "A password reset OTP has been sent to your email."
}

type PasswordResetConfirmRequest struct {
	Email       string `json:"email"`
	OTPCode     string `json:"otp_code"`
	NewPassword string `json:"new_password"`
}

type PasswordResetConfirmResponse struct{}

func (PasswordResetConfirmResponse) Message() string {
	return "Password has been reset successfully."
}

type ProfileResponse struct {
	ID        int64     `json:"id,string"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Mobile    string    `json:"mobile"`
	IsStaff   bool      `json:"is_staff"`
	CreatedAt time.Time `json:"created_at"`
}

type ProfileUpdateRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Mobile    string `json:"mobile"`
}

type ProfileUpdateResponse struct{}

func (ProfileUpdateResponse) Message() string {
	return "Profile updated successfully."
}

type UserResponse struct {
	ID        int64     `json:"id,string"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Mobile    string    `json:"mobile"`
	IsActive  bool      `json:"is_active"`
	IsStaff   bool      `json:"is_staff"`
	CreatedAt time.Time `json:"created_at"`
}

type UsersResponse struct {
	Users []UserResponse `json:"users"`
	// meta
	total int64
	size  int32
	page  int32
}

func (r UsersResponse) Meta() map[string]any {
	return map[string]any{
		"total": r.total,
		"size":  r.size,
		"page":  r.page,
	}
}

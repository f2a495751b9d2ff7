package goerror

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"server", NewServer(errors.New("boom")), http.StatusInternalServerError},
		{"invalid input", NewInvalidInput(errors.New("bad")), http.StatusBadRequest},
		{"invalid input fields", NewInvalidInput(nil, "email", "taken"), http.StatusBadRequest},
		{"invalid format", NewInvalidFormat(), http.StatusBadRequest},
		{"not found", NewBusiness("missing", CodeNotFound), http.StatusNotFound},
		{"conflict", NewBusiness("exists", CodeConflict), http.StatusConflict},
		{"unauthorized", NewBusiness("nope", CodeUnauthorized), http.StatusUnauthorized},
		{"forbidden", NewBusiness("nope", CodeForbidden), http.StatusForbidden},
		{"too many requests", NewBusiness("slow down", CodeTooManyRequest), http.StatusTooManyRequests},
		{"authentication", NewAuthentication(ReasonAuthenticationFailed, "nope"), http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gerr *Error
			require.ErrorAs(t, tt.err, &gerr)
			assert.Equal(t, tt.want, gerr.StatusCode())
		})
	}
}

func TestNewAuthentication(t *testing.T) {
	err := NewAuthentication(ReasonUnverifiedUser, "Account not verified.")

	var gerr *Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, ReasonUnverifiedUser, gerr.Reason())
	assert.Equal(t, "Account not verified.", gerr.Msg())
	assert.Equal(t, CodeUnauthorized, gerr.Code())
}

func TestNewInvalidInputFields(t *testing.T) {
	err := NewInvalidInput(nil, "email", "Email already registered", "otp_code", "Invalid OTP.")

	var gerr *Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, map[string]string{
		"email":    "Email already registered",
		"otp_code": "Invalid OTP.",
	}, gerr.Fields())
}

func TestNewInvalidInputWrapped(t *testing.T) {
	underlying := errors.New("field broken")
	err := NewInvalidInput(underlying)

	var gerr *Error
	require.ErrorAs(t, err, &gerr)
	assert.ErrorIs(t, err, underlying)
	assert.Empty(t, gerr.Fields())
	assert.Empty(t, gerr.Reason())
}

func TestErrorMessageFallbacks(t *testing.T) {
	assert.Equal(t, "boom", NewServer(errors.New("boom")).Error())
	assert.Equal(t, "exists", NewBusiness("exists", CodeConflict).Error())
	assert.Equal(t, "Validation violation", (&Error{errType: TypeValidation}).Error())
	assert.Equal(t, "Business rule violation", (&Error{errType: TypeBusiness}).Error())
	assert.Equal(t, "Internal error", (&Error{}).Error())
}

package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type registerForm struct {
	Email     string `validate:"required,email"`
	Password  string `validate:"required,password"`
	FirstName string `validate:"required,max=100"`
	Mobile    string `validate:"required,mobile"`
}

func validForm() registerForm {
	return registerForm{
		Email:     "budi@example.com",
		Password:  "Secret123!",
		FirstName: "Budi",
		Mobile:    "+6281234567890",
	}
}

func TestV10ValidatorValidate(t *testing.T) {
	v, err := NewV10Validator()
	require.NoError(t, err)

	t.Run("accepts valid struct", func(t *testing.T) {
		assert.NoError(t, v.Validate(validForm()))
	})

	t.Run("field keys are snake_case", func(t *testing.T) {
		form := validForm()
		form.FirstName = ""

		err := v.Validate(form)

		var verr V10ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Values(), "first_name")
	})

	t.Run("password rule", func(t *testing.T) {
		tests := []struct {
			password string
			ok       bool
		}{
			{"Secret123!", true},
			{"12345678", true},
			{strings.Repeat("a", 72), true},
			{"short", false},
			{strings.Repeat("a", 73), false},
			{"", false},
		}

		for _, tt := range tests {
			form := validForm()
			form.Password = tt.password

			err := v.Validate(form)
			if tt.ok {
				assert.NoError(t, err, "password %q", tt.password)
				continue
			}

			var verr V10ValidationError
			require.ErrorAs(t, err, &verr, "password %q", tt.password)
			assert.Contains(t, verr.Values(), "password")
		}
	})

	t.Run("mobile rule", func(t *testing.T) {
		tests := []struct {
			mobile string
			ok     bool
		}{
			{"+6281234567890", true},
			{"081234567890", true},
			{"123456789", true},
			{"12345678", false},
			{"+62-812-3456", false},
			{"not-a-number", false},
		}

		for _, tt := range tests {
			form := validForm()
			form.Mobile = tt.mobile

			err := v.Validate(form)
			if tt.ok {
				assert.NoError(t, err, "mobile %q", tt.mobile)
				continue
			}

			var verr V10ValidationError
			require.ErrorAs(t, err, &verr, "mobile %q", tt.mobile)
			assert.Contains(t, verr.Values(), "mobile")
		}
	})
}

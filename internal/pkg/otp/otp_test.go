package otp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateDigits(t *testing.T) {
	t.Run("produces only digits of the requested length", func(t *testing.T) {
		for range 100 {
			code, err := GenerateDigits(DefaultLength)
			require.NoError(t, err)
			require.Len(t, code, DefaultLength)
			for _, c := range code {
				assert.True(t, c >= '0' && c <= '9', "unexpected character %q in %q", c, code)
			}
		}
	})

	t.Run("rejects non-positive length", func(t *testing.T) {
		_, err := GenerateDigits(0)
		assert.ErrorIs(t, err, ErrInvalidLength)

		_, err = GenerateDigits(-1)
		assert.ErrorIs(t, err, ErrInvalidLength)
	})
}

func TestNumeric(t *testing.T) {
	t.Run("uses configured length", func(t *testing.T) {
		code, err := NewNumeric(8).Generate()
		require.NoError(t, err)
		assert.Len(t, code, 8)
	})

	t.Run("falls back to default length", func(t *testing.T) {
		code, err := NewNumeric(0).Generate()
		require.NoError(t, err)
		assert.Len(t, code, DefaultLength)
	})
}

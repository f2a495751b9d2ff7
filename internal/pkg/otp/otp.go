package otp

import (
	"crypto/rand"
	"errors"
	"math/big"
)

// DefaultLength is the number of digits in a generated code.
const DefaultLength = 6

// ErrInvalidLength is returned when the requested code length is not positive.
var ErrInvalidLength = errors.New("otp length must be positive")

// Generator produces one-time numeric passcodes.
type Generator interface {
	// Generate returns a code of the configured length.
	Generate() (string, error)
}

// Numeric implements Generator with digits drawn independently and uniformly
// from crypto/rand.
type Numeric struct {
	length int
}

// NewNumeric returns a Numeric generator. A non-positive length falls back to
// DefaultLength.
func NewNumeric(length int) *Numeric {
	if length <= 0 {
		length = DefaultLength
	}

	return &Numeric{length: length}
}

// Generate returns a random numeric code.
func (n *Numeric) Generate() (string, error) {
	return GenerateDigits(n.length)
}

// GenerateDigits returns a random code of the given number of digits.
//
// Each digit is drawn uniformly, so leading zeros are possible and the code
// must be treated as a string, never an integer.
func GenerateDigits(length int) (string, error) {
	if length <= 0 {
		return "", ErrInvalidLength
	}

	const digits = "0123456789"

	buf := make([]byte, length)
	for i := range buf {
		idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
		if err != nil {
			return "", err
		}
		buf[i] = digits[idx.Int64()]
	}

	return string(buf), nil
}

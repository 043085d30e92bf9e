package otp

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
)

// DefaultDigits is the common SMS OTP length.
const DefaultDigits = 6

// ErrInvalidDigits is returned when the configured code length is unusable.
var ErrInvalidDigits = errors.New("otp: digits must be between 4 and 10")

// Generator produces one-time codes.
type Generator interface {
	// Generate returns a fresh numeric code.
	Generate() (string, error)
}

// NumericCode implements Generator with fixed-length decimal codes.
//
// Codes are zero-padded so "004213" is a valid six-digit code.
type NumericCode struct {
	digits int
}

// NewNumericCode constructs a NumericCode generator.
func NewNumericCode(digits int) (*NumericCode, error) {
	if digits < 4 || digits > 10 {
		return nil, ErrInvalidDigits
	}

	return &NumericCode{digits: digits}, nil
}

// Generate returns a fresh numeric code.
func (g *NumericCode) Generate() (string, error) {
	var b strings.Builder
	b.Grow(g.digits)

	for range g.digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		b.WriteByte(byte('0' + n.Int64()))
	}

	return b.String(), nil
}

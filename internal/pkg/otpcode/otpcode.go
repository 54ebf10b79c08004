// Package otpcode generates the short numeric codes delivered to members
// out-of-band (text message) during the easy-login flow.
package otpcode

import (
	"crypto/rand"
	"math/big"
	"strconv"
)

const (
	codeMin = 100000
	codeMax = 999999
)

// Generator produces one-time numeric codes.
type Generator interface {
	// Generate returns a new 6-digit code as a string.
	Generate() (string, error)
}

// SixDigit generates uniformly distributed 6-digit decimal codes.
//
// The range is 100000-999999 inclusive: a leading zero is never produced, so
// the code survives any string/number round trip with a fixed width.
type SixDigit struct{}

// NewSixDigit returns a 6-digit code generator backed by crypto/rand.
func NewSixDigit() *SixDigit {
	return &SixDigit{}
}

// Generate returns a new 6-digit code.
func (*SixDigit) Generate() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeMax-codeMin+1))
	if err != nil {
		return "", err
	}

	return strconv.FormatInt(codeMin+n.Int64(), 10), nil
}

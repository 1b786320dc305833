// Package otp generates numeric one-time passcodes.
package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	// Min and Max bound every generated code, both inclusive.
	Min = 100000
	Max = 999999
)

var span = big.NewInt(Max - Min + 1)

// NewCode returns a 6-digit code drawn uniformly from [Min, Max].
func NewCode() (string, error) {
	n, err := rand.Int(rand.Reader, span)
	if err != nil {
		return "", fmt.Errorf("err when generating random OTP %w", err)
	}
	return fmt.Sprintf("%d", n.Int64()+Min), nil
}

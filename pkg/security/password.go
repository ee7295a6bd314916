// Package security implements the demo-grade credential scheme: passwords
// are stored and compared in plaintext. This is intentional for a local
// demonstration dashboard and must be replaced wholesale before any
// production use.
package security

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
)

var tempPasswordCharset = []rune("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789")

// DefaultTempPasswordLength is used when callers pass a non-positive length.
const DefaultTempPasswordLength = 10

// Matches compares a candidate password against the stored value in
// constant time. Empty stored values never match.
func Matches(candidate, stored string) bool {
	if stored == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(stored)) == 1
}

// GenerateTempPassword returns a random one-time password drawn from an
// unambiguous alphanumeric charset.
func GenerateTempPassword(length int) (string, error) {
	if length <= 0 {
		length = DefaultTempPasswordLength
	}
	result := make([]rune, length)
	for i := range result {
		idx, err := randInt(len(tempPasswordCharset))
		if err != nil {
			return "", err
		}
		result[i] = tempPasswordCharset[idx]
	}
	return string(result), nil
}

func randInt(max int) (int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		return 0, fmt.Errorf("generate random index: %w", err)
	}
	return int(n.Int64()), nil
}

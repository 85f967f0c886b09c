// Package token creates the seat tokens handed out when a player joins a table
package token

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
)

// DefaultLength is the token length used when none is configured
const DefaultLength = 24

// ErrInvalidLength is returned if a token length is less than one
var ErrInvalidLength = errors.New("token length must be positive")

// Generate returns a crypto-secure random string of length n
// The random string only contains characters that are safe in a URL:
// ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_
func Generate(n int) (string, error) {
	if n < 1 {
		return "", ErrInvalidLength
	}

	// every 3 bytes encode to 4 characters
	b := make([]byte, (n*3+3)/4)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(b)[0:n], nil
}

// IsWellFormed returns true if s could have come from Generate
func IsWellFormed(s string) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}

	return true
}

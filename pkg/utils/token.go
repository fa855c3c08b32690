package utils

import (
	"crypto/rand"
	"encoding/hex"
)

const tokenBytes = 64

// GenerateToken returns a 128-character hex API token.
func GenerateToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

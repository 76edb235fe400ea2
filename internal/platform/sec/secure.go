// Copyright (c) 2026 TrendHive. All rights reserved.

package sec

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// GenerateSecureToken returns byteCount cryptographically random bytes,
// hex-encoded.
//
// # Usage
//
// This is the plaintext half of a password-reset credential. It exists
// unhashed only in the reset email; storage keeps the [HashToken] digest.
func GenerateSecureToken(byteCount int) (string, error) {
	buffer := make([]byte, byteCount)
	if _, err := rand.Read(buffer); err != nil {
		return "", fmt.Errorf("sec: failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(buffer), nil
}

// HashToken returns the SHA-256 hex digest of a token.
//
// Reset tokens are stored only in this one-way form so a database leak does
// not expose usable credentials.
func HashToken(token string) string {
	digest := sha256.Sum256([]byte(token))
	return hex.EncodeToString(digest[:])
}

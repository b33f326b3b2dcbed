package utils

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// HashPassword returns the hex SHA-256 digest of a password. Access is gated
// by a single shared secret, not per-user credentials, so the stored value is
// one digest configured via env.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// CheckPasswordHash compares a candidate password against a stored hex
// digest in constant time.
func CheckPasswordHash(password, storedHex string) bool {
	candidate := HashPassword(password)
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(storedHex)) == 1
}

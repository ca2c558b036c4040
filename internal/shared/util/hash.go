package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashKey returns a path-safe hex digest of s.
func HashKey(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

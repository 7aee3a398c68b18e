// internal/matching/cachekey/cachekey.go

// Package cachekey turns arbitrary free-text criteria into collision-resistant,
// bounded-length cache key components.
package cachekey

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

const (
	// SentinelUnknown marks inputs that were not strings at all.
	SentinelUnknown = "unknown"
	// SentinelEmpty marks strings that were empty or whitespace-only. Kept
	// distinct from SentinelUnknown so two different failure causes never
	// share a cache bucket.
	SentinelEmpty = "empty"

	maxPlainLength = 50
	prefixLength   = 20
	hashHexLength  = 16
)

// Sanitize normalizes a free-text criteria value into a safe cache key
// component. Non-string input returns SentinelUnknown; empty or
// whitespace-only input returns SentinelEmpty. Short lowercase alphanumeric
// values (the common case: city names) pass through unchanged so keys stay
// human-readable. Everything else becomes a short alphanumeric prefix joined
// to a truncated SHA-256 of the full normalized value, so distinct inputs
// sharing a prefix cannot collide.
func Sanitize(value interface{}) string {
	s, ok := value.(string)
	if !ok {
		return SentinelUnknown
	}

	normalized := strings.ToLower(strings.TrimSpace(s))
	if normalized == "" {
		return SentinelEmpty
	}

	if len(normalized) <= maxPlainLength && isLowerAlnum(normalized) {
		return normalized
	}

	sum := sha256.Sum256([]byte(normalized))
	return alnumPrefix(normalized, prefixLength) + "-" + hex.EncodeToString(sum[:])[:hashHexLength]
}

func isLowerAlnum(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}

func alnumPrefix(s string, n int) string {
	var b strings.Builder
	for i := 0; i < len(s) && b.Len() < n; i++ {
		c := s[i]
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			b.WriteByte(c)
		}
	}
	return b.String()
}

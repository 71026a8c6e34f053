package util

import (
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// fingerprintBytes is how much of the blake2b digest is kept.
const fingerprintBytes = 8

// SafeTruncate safely truncates a string to maxLen bytes without panicking.
// Returns the original string if it's shorter than maxLen, otherwise returns
// the first maxLen bytes. Used to bound provider response bodies kept for
// diagnostics.
//
// If maxLen is negative, it's treated as 0 and returns an empty string.
//
// Example:
//
//	SafeTruncate("<html>502 Bad Gateway</html>", 6) // Returns: "<html>"
//	SafeTruncate("short", 10)                        // Returns: "short"
//	SafeTruncate("test", -1)                         // Returns: ""
func SafeTruncate(s string, maxLen int) string {
	if maxLen < 0 {
		return ""
	}
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen]
}

// NormalizeURL removes trailing slashes so endpoint overrides can be joined
// with sub-paths.
//
// Example:
//
//	NormalizeURL("https://github.example.com/api/v3/user/") // Returns: "https://github.example.com/api/v3/user"
func NormalizeURL(url string) string {
	return strings.TrimRight(url, "/")
}

// TokenFingerprint returns a short, stable, non-reversible identifier for an
// access token: the hex encoding of the first 8 bytes of its BLAKE2b-256 digest.
// It lets logs and traces correlate calls made with the same token without
// recording the token. Returns "" for an empty token.
func TokenFingerprint(token string) string {
	if token == "" {
		return ""
	}
	sum := blake2b.Sum256([]byte(token))
	return hex.EncodeToString(sum[:fingerprintBytes])
}

// File: internal/platform/crypto/generator.go
package crypto

import (
	"crypto/rand"
	"encoding/base64"
)

// BrowserIDBytes is the amount of randomness behind a browser identifier.
const BrowserIDBytes = 32

// GenerateSecureRandomString creates a cryptographically secure random string.
// n is the number of bytes of randomness; the result is unpadded base64url.
func GenerateSecureRandomString(n int) (string, error) {
	b := make([]byte, n)
	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// GenerateBrowserID returns a fresh identifier for a browser's persisted state.
func GenerateBrowserID() (string, error) {
	return GenerateSecureRandomString(BrowserIDBytes)
}

// IsValidBrowserID reports whether id looks like a value produced by GenerateBrowserID.
func IsValidBrowserID(id string) bool {
	if len(id) != base64.RawURLEncoding.EncodedLen(BrowserIDBytes) {
		return false
	}
	_, err := base64.RawURLEncoding.DecodeString(id)
	return err == nil
}

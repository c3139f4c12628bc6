// Package secrets generates opaque random tokens. Refresh tokens are plain
// high-entropy strings, never structured data, so rotation and storage stay
// format-agnostic.
package secrets

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// Generate creates a cryptographically secure random secret.
// Returns a base64-encoded string suitable for refresh tokens and API keys.
func Generate() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("could not generate secret: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

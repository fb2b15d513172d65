package random

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// Token returns n cryptographically random bytes encoded as unpadded base64url,
// safe to embed in a query string.
func Token(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate random token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

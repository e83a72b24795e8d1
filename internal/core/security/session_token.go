package security

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// GenerateSessionToken creates a new login session token and its hash.
// The raw token is returned to the caller exactly once; only the SHA256
// hash is ever stored.
func GenerateSessionToken() (string, string, error) {
	// 1. Generate 32 random bytes
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	// 2. Convert to Hex string
	randomString := hex.EncodeToString(bytes)

	// 3. Add Prefix so leaked tokens are recognizable in logs
	token := fmt.Sprintf("dc_sess_%s", randomString)

	// 4. Hash it (SHA256) - this is what we save to the store
	hash := sha256.Sum256([]byte(token))
	tokenHash := hex.EncodeToString(hash[:])

	return token, tokenHash, nil
}

// HashToken maps a presented token to its stored hash form.
func HashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

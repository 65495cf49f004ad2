package lib

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// GenerateRandomToken generates a cryptographically secure random token
func GenerateRandomToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return base64.URLEncoding.EncodeToString(bytes), nil
}

// OrderReference renders an order id as the short customer-facing reference, e.g. BS-1A2B3C4D
func OrderReference(id uuid.UUID) string {
	return "BS-" + strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")[:8])
}

// LikeEscapeChar is the ESCAPE character paired with EscapeLike
const LikeEscapeChar = "!"

// EscapeLike escapes LIKE wildcards so term is matched literally with ESCAPE '!'
func EscapeLike(term string) string {
	return strings.NewReplacer("!", "!!", "%", "!%", "_", "!_").Replace(term)
}

// internal/utils/crypto.go
package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateSessionToken returns an opaque token value for the cookie
// transport. The value carries no claims; the access_tokens table is the
// source of truth.
func GenerateSessionToken() string {
	return strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")
}

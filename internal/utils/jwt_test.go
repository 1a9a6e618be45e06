// internal/utils/jwt_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	SetTokenSecrets("auth-secret", "reset-secret", "verify-secret")

	token, err := GenerateToken(42, "buyer", "buyer", ScopeAuth, 3600)
	require.NoError(t, err)

	claims, err := ValidateToken(token, ScopeAuth)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "buyer", claims.Username)
	assert.Equal(t, ScopeAuth, claims.Scope)
}

func TestTokenScopeIsolation(t *testing.T) {
	SetTokenSecrets("auth-secret", "reset-secret", "verify-secret")

	resetToken, err := GenerateToken(42, "buyer", "buyer", ScopeResetPass, 3600)
	require.NoError(t, err)

	// Each scope has its own secret, so cross-scope validation already
	// fails at the signature.
	_, err = ValidateToken(resetToken, ScopeAuth)
	assert.Error(t, err)

	_, err = ValidateToken(resetToken, ScopeVerification)
	assert.Error(t, err)

	_, err = ValidateToken(resetToken, ScopeResetPass)
	assert.NoError(t, err)
}

func TestExpiredTokenRejected(t *testing.T) {
	SetTokenSecrets("auth-secret", "reset-secret", "verify-secret")

	token, err := GenerateToken(42, "buyer", "buyer", ScopeAuth, -60)
	require.NoError(t, err)

	_, err = ValidateToken(token, ScopeAuth)
	assert.Error(t, err)
}

func TestUnknownScopeRejected(t *testing.T) {
	_, err := GenerateToken(42, "buyer", "buyer", "elevator", 3600)
	assert.Error(t, err)
}

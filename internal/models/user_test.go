// internal/models/user_test.go
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	user := &User{}
	require.NoError(t, user.SetPassword("Passw0rd!"))
	assert.NotEqual(t, "Passw0rd!", user.PasswordHash)

	assert.NoError(t, user.CheckPassword("Passw0rd!"))
	assert.Error(t, user.CheckPassword("wrong"))
}

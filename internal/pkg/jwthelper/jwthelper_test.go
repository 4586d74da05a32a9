package jwthelper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	signingKey := []byte("test-signing-key")

	t.Run("round trip", func(t *testing.T) {
		token, err := GenerateToken(signingKey, 42, RoleVendor, "test-agent/1.0")
		require.NoError(t, err)

		claims, err := ParseToken(signingKey, token)
		require.NoError(t, err)

		assert.Equal(t, uint(42), claims.UserID)
		assert.Equal(t, RoleVendor, claims.Role)
		assert.Equal(t, "test-agent/1.0", claims.UserAgent)
	})

	t.Run("wrong key", func(t *testing.T) {
		token, err := GenerateToken(signingKey, 42, RoleEmployee, "test-agent/1.0")
		require.NoError(t, err)

		_, err = ParseToken([]byte("another-key"), token)
		assert.Error(t, err)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := ParseToken(signingKey, "not.a.jwt")
		assert.Error(t, err)
	})
}

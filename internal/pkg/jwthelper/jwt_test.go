package jwthelper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var signingKey = []byte("test-signing-key")

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateToken(signingKey, 42, "clerk", time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(signingKey, token)

	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "clerk", claims.Role)
}

func TestParseToken_WrongKey(t *testing.T) {
	token, err := GenerateToken(signingKey, 42, "visitor", time.Minute)
	require.NoError(t, err)

	_, err = ParseToken([]byte("another-key"), token)

	assert.Error(t, err)
}

func TestParseToken_Expired(t *testing.T) {
	token, err := GenerateToken(signingKey, 42, "visitor", -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(signingKey, token)

	assert.Error(t, err)
}

func TestParseToken_Garbage(t *testing.T) {
	_, err := ParseToken(signingKey, "not.a.token")

	assert.Error(t, err)
}

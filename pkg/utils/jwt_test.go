package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	InitJWT("test-secret")

	token, err := GenerateJWT("42", "seller")
	require.NoError(t, err)

	claims, err := ParseJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.UserID)
	assert.Equal(t, "seller", claims.Role)
	assert.NotNil(t, claims.ExpiresAt)
}

func TestParseJWTRejectsWrongSecret(t *testing.T) {
	InitJWT("test-secret")
	token, err := GenerateJWT("42", "customer")
	require.NoError(t, err)

	InitJWT("other-secret")
	_, err = ParseJWT(token)
	assert.Error(t, err)
}

func TestParseJWTRejectsGarbage(t *testing.T) {
	InitJWT("test-secret")

	_, err := ParseJWT("not.a.token")
	assert.Error(t, err)
}

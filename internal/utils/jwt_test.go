// internal/utils/jwt_test.go
package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenSignerRoundTrip(t *testing.T) {
	signer := NewTokenSigner("secret", time.Hour)

	token, err := signer.Sign("sid-1", 7, true)
	require.NoError(t, err)

	claims, err := signer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "sid-1", claims.SessionID)
	assert.Equal(t, uint(7), claims.UserID)
	assert.True(t, claims.IsStaff)
	assert.Equal(t, "7", claims.Subject)
}

func TestTokenSignerRejects(t *testing.T) {
	signer := NewTokenSigner("secret", time.Hour)

	foreign, err := NewTokenSigner("other", time.Hour).Sign("sid", 1, false)
	require.NoError(t, err)
	_, err = signer.Parse(foreign)
	assert.Error(t, err)

	expired, err := NewTokenSigner("secret", -time.Minute).Sign("sid", 1, false)
	require.NoError(t, err)
	_, err = signer.Parse(expired)
	assert.Error(t, err)

	_, err = signer.Parse("garbage")
	assert.Error(t, err)
}

func TestHashString(t *testing.T) {
	assert.Equal(t, HashString("abc"), HashString("abc"))
	assert.NotEqual(t, HashString("abc"), HashString("abd"))
	assert.Len(t, HashString("abc"), 64)
}

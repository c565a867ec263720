package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestAccessTokenRoundtrip(t *testing.T) {
	tok, err := NewAccessToken(testSecret, 42, "alice", true, 120)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC().Add(2*time.Hour), tok.Exp, 5*time.Second)

	claims, err := ParseAccessToken(testSecret, tok.Token)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.True(t, claims.IsAdmin)
}

func TestParseAccessTokenRejects(t *testing.T) {
	valid, err := NewAccessToken(testSecret, 1, "bob", false, 120)
	require.NoError(t, err)

	expired, err := NewAccessToken(testSecret, 1, "bob", false, -1)
	require.NoError(t, err)

	tests := []struct {
		name   string
		secret string
		raw    string
	}{
		{name: "wrong secret", secret: "other-secret", raw: valid.Token},
		{name: "garbage token", secret: testSecret, raw: "not.a.jwt"},
		{name: "tampered token", secret: testSecret, raw: valid.Token + "x"},
		{name: "expired token", secret: testSecret, raw: expired.Token},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAccessToken(tt.secret, tt.raw)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestParseAccessTokenNonAdminClaims(t *testing.T) {
	tok, err := NewAccessToken(testSecret, 7, "carol", false, 120)
	require.NoError(t, err)

	claims, err := ParseAccessToken(testSecret, tok.Token)
	require.NoError(t, err)
	assert.False(t, claims.IsAdmin)
	assert.Equal(t, "carol", claims.Username)
}

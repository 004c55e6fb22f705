package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "oscahub/pkg/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	tokens := NewTokenService("test-signing-key", "oscahub", 12*time.Hour)
	userID := id.NewUserID()
	sessionID := id.NewSessionID()

	signed, err := tokens.Generate(userID, sessionID, "citizen", time.Now())
	require.NoError(t, err)

	claims, err := tokens.Validate(signed)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, sessionID.String(), claims.SessionID)
	assert.Equal(t, "citizen", claims.Role)
	assert.Equal(t, "oscahub", claims.Issuer)
}

func TestTokenExpired(t *testing.T) {
	tokens := NewTokenService("test-signing-key", "oscahub", time.Hour)
	signed, err := tokens.Generate(id.NewUserID(), id.NewSessionID(), "admin", time.Now().Add(-2*time.Hour))
	require.NoError(t, err)

	_, err = tokens.Validate(signed)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expired")
}

func TestTokenWrongKey(t *testing.T) {
	issuer := NewTokenService("key-one", "oscahub", time.Hour)
	verifier := NewTokenService("key-two", "oscahub", time.Hour)

	signed, err := issuer.Generate(id.NewUserID(), id.NewSessionID(), "admin", time.Now())
	require.NoError(t, err)

	_, err = verifier.Validate(signed)
	assert.Error(t, err)
}

func TestTokenGarbage(t *testing.T) {
	tokens := NewTokenService("test-signing-key", "oscahub", time.Hour)
	_, err := tokens.Validate("not.a.jwt")
	assert.Error(t, err)
}

package auth

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewJWTService(JWTConfig{Secret: "test-secret", ExpiryHours: 1})

	clientID := uuid.New()
	token, err := svc.GenerateToken(clientID, "familia@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	session, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, clientID, session.ClientID)
	assert.Equal(t, "familia@example.com", session.Email)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	issuer := NewJWTService(JWTConfig{Secret: "secret-a", ExpiryHours: 1})
	verifier := NewJWTService(JWTConfig{Secret: "secret-b", ExpiryHours: 1})

	token, err := issuer.GenerateToken(uuid.New(), "familia@example.com")
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := NewJWTService(JWTConfig{Secret: "test-secret", ExpiryHours: 1})

	_, err := svc.ValidateToken("not-a-token")
	assert.Error(t, err)

	_, err = svc.ValidateToken("")
	assert.Error(t, err)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	// zero expiry makes the token expired at issue time
	svc := NewJWTService(JWTConfig{Secret: "test-secret", ExpiryHours: -1})

	token, err := svc.GenerateToken(uuid.New(), "familia@example.com")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTServiceRoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret")

	token, err := svc.GenerateAccessToken(&TokenClaims{
		UserID: "7c9e6679-7425-40de-944b-e07fc1f90ae7",
		Email:  "ravi@example.com",
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "7c9e6679-7425-40de-944b-e07fc1f90ae7", claims.UserID)
	assert.Equal(t, "ravi@example.com", claims.Email)
}

func TestJWTServiceRejectsWrongSecret(t *testing.T) {
	token, err := NewJWTService("secret-a").GenerateAccessToken(&TokenClaims{UserID: "u1"})
	require.NoError(t, err)

	_, err = NewJWTService("secret-b").ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestJWTServiceRejectsGarbage(t *testing.T) {
	_, err := NewJWTService("test-secret").ValidateAccessToken("not.a.token")
	assert.Error(t, err)
}

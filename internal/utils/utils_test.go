package utils

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hashed, err := HashPassword("secret123")
	require.NoError(t, err)
	require.NotEqual(t, "secret123", hashed)

	require.True(t, CheckPassword(hashed, "secret123"))
	require.False(t, CheckPassword(hashed, "secret124"))
	require.False(t, CheckPassword("not-a-hash", "secret123"))
}

func TestSignJWTRoundTrip(t *testing.T) {
	const secret = "test-secret"

	tokenStr, err := SignJWT(secret, 42, true, 60)
	require.NoError(t, err)

	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(*Claims)
	require.True(t, ok)
	require.Equal(t, uint(42), claims.UserID)
	require.True(t, claims.IsFreelancer)
	require.NotEmpty(t, claims.ID)
}

func TestSignJWTRejectsWrongSecret(t *testing.T) {
	tokenStr, err := SignJWT("right-secret", 7, false, 60)
	require.NoError(t, err)

	_, err = jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte("wrong-secret"), nil
	})
	require.Error(t, err)
}

package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndDecodeJWT(t *testing.T) {
	secret := []byte("test-secret")

	token, err := GenerateJWT(jwt.MapClaims{"id": "abc"}, secret, time.Minute)
	require.NoError(t, err)

	claims, err := DecodeJWT(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "abc", claims["id"])
}

func TestDecodeJWTWrongSecret(t *testing.T) {
	token, err := GenerateJWT(jwt.MapClaims{"id": "abc"}, []byte("right"), time.Minute)
	require.NoError(t, err)

	_, err = DecodeJWT(token, []byte("wrong"))
	assert.Error(t, err)
}

func TestDecodeJWTExpired(t *testing.T) {
	token, err := GenerateJWT(jwt.MapClaims{"id": "abc"}, []byte("s"), -time.Minute)
	require.NoError(t, err)

	_, err = DecodeJWT(token, []byte("s"))
	assert.Error(t, err)
}

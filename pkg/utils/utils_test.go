//go:build !integration

package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseJWT(t *testing.T) {
	InitJWT("test-secret", time.Hour)

	token, err := GenerateJWT("42", "admin")
	require.NoError(t, err)

	claims, err := ParseJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.UserID)
	assert.Equal(t, "admin", claims.Role)

	expAt, err := claims.GetExpirationTime()
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expAt.Time, 5*time.Second)
}

func TestParseJWTRejectsForeignSecret(t *testing.T) {
	InitJWT("first-secret", time.Hour)
	token, err := GenerateJWT("1", "player")
	require.NoError(t, err)

	InitJWT("second-secret", time.Hour)
	_, err = ParseJWT(token)
	assert.Error(t, err)
}

func TestParseJWTRejectsNoneAlgorithm(t *testing.T) {
	InitJWT("test-secret", time.Hour)
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: "1"})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ParseJWT(token)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)

	assert.True(t, CheckPassword("hunter22", string(hash)))
	assert.False(t, CheckPassword("hunter23", string(hash)))
}

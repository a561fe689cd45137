package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSignAndParseJWT(t *testing.T) {
	token, err := SignJWT("secret", "user-123", "freelancer", 60)
	require.NoError(t, err)

	claims, err := ParseJWT("secret", token)
	require.NoError(t, err)
	require.Equal(t, "user-123", claims.UserID)
	require.Equal(t, "freelancer", claims.Role)
}

func TestParseJWTRejectsWrongSecret(t *testing.T) {
	token, err := SignJWT("secret", "user-123", "client", 60)
	require.NoError(t, err)

	_, err = ParseJWT("other-secret", token)
	require.Error(t, err)
}

func TestParseJWTRejectsExpired(t *testing.T) {
	token, err := SignJWT("secret", "user-123", "client", -1)
	require.NoError(t, err)

	_, err = ParseJWT("secret", token)
	require.Error(t, err)
}

func TestPasswordRoundTrip(t *testing.T) {
	hashed, err := HashPassword("hunter22")
	require.NoError(t, err)
	require.NotEqual(t, "hunter22", hashed)

	require.True(t, CheckPassword(hashed, "hunter22"))
	require.False(t, CheckPassword(hashed, "hunter23"))
}

func TestGenerateOTP(t *testing.T) {
	for i := 0; i < 20; i++ {
		code := GenerateOTP()
		require.Len(t, code, 6)
		require.NotEqual(t, "000000", code)
	}
}

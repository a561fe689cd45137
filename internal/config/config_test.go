package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://localhost/gigflow_test")
	t.Setenv("JWT_SECRET", "test-secret")

	cfg := Load()

	require.Equal(t, "8080", cfg.AppPort)
	require.Equal(t, "localhost:6379", cfg.RedisAddr)
	require.Equal(t, "gf_token", cfg.CookieName)
	require.Equal(t, 10080, cfg.JWTExpiresMin)
	require.Equal(t, 10, cfg.OTPExpiresMin)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://localhost/gigflow_test")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("APP_PORT", "9000")
	t.Setenv("JWT_EXPIRES_MIN", "60")
	t.Setenv("OTP_EXPIRES_MIN", "5")

	cfg := Load()

	require.Equal(t, "9000", cfg.AppPort)
	require.Equal(t, 60, cfg.JWTExpiresMin)
	require.Equal(t, 5, cfg.OTPExpiresMin)
}

func TestLoadPanicsWithoutSecret(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://localhost/gigflow_test")
	t.Setenv("JWT_SECRET", "")

	require.Panics(t, func() { Load() })
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, 24*time.Hour, cfg.Security.TokenTTL)
	assert.Equal(t, 12, cfg.Security.BcryptCost)
	assert.Equal(t, "127.0.0.1:6379", cfg.Redis.Addr)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("AUTHGATE_SECURITY_JWTSECRET", "from-env")
	t.Setenv("AUTHGATE_SECURITY_TOKENTTL", "2h")
	t.Setenv("AUTHGATE_SECURITY_BCRYPTCOST", "10")
	t.Setenv("AUTHGATE_HTTP_PORT", "9999")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Security.JWTSecret)
	assert.Equal(t, 2*time.Hour, cfg.Security.TokenTTL)
	assert.Equal(t, 10, cfg.Security.BcryptCost)
	assert.Equal(t, 9999, cfg.HTTP.Port)
}

func TestLoadRequiresSecretInProduction(t *testing.T) {
	t.Setenv("AUTHGATE_ENVIRONMENT", "production")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwtsecret")
}

func TestLoadProductionWithSecret(t *testing.T) {
	t.Setenv("AUTHGATE_ENVIRONMENT", "production")
	t.Setenv("AUTHGATE_SECURITY_JWTSECRET", "prod-secret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "prod-secret", cfg.Security.JWTSecret)
}

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

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 168*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "shopmart", cfg.Redis.KeyPrefix)
	assert.Equal(t, "shopmart", cfg.Metrics.Prefix)
	assert.Contains(t, cfg.DB.DSN(), "sslmode=disable")
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("REDIS_KEY_PREFIX", "staging")
	t.Setenv("METRICS_PREFIX", "shopmart_staging")
	t.Setenv("DB_NAME", "shopmart_staging")

	cfg, err := Load()
	require.NoError(t, err)

	// cache namespace and metrics namespace move independently
	assert.Equal(t, "staging", cfg.Redis.KeyPrefix)
	assert.Equal(t, "shopmart_staging", cfg.Metrics.Prefix)
	assert.Contains(t, cfg.DB.DSN(), "/shopmart_staging?")
}

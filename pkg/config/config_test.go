package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyatlas/studyatlas/pkg/observability"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("TEST_VAR", "custom")

	assert.Equal(t, "custom", getEnv("TEST_VAR", "default"))
	assert.Equal(t, "default", getEnv("TEST_VAR_NOT_SET", "default"))
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("TEST_BOOL", "true")
	t.Setenv("TEST_INT", "42")
	t.Setenv("TEST_DURATION", "90s")
	t.Setenv("TEST_BAD_INT", "nope")

	assert.True(t, getEnvBool("TEST_BOOL", false))
	assert.False(t, getEnvBool("TEST_BOOL_NOT_SET", false))
	assert.Equal(t, 42, getEnvInt("TEST_INT", 0))
	assert.Equal(t, 7, getEnvInt("TEST_BAD_INT", 7))
	assert.Equal(t, 90*time.Second, getEnvDuration("TEST_DURATION", time.Second))
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Environment)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, observability.InfoLevel, cfg.Observability.LogLevel)
	assert.False(t, cfg.Storage.CacheEnabled)
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("ATLAS_ENVIRONMENT", "production")
	t.Setenv("ATLAS_PORT", "9000")
	t.Setenv("ATLAS_POSTGRES_URL", "postgres://localhost/atlas")
	t.Setenv("ATLAS_REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("ATLAS_CORS_ORIGINS", "https://studyatlas.example, https://admin.example")
	t.Setenv("ATLAS_TOKEN_TTL", "2h")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "postgres://localhost/atlas", cfg.Storage.PostgresURL)
	assert.True(t, cfg.Storage.CacheEnabled)
	assert.Equal(t, []string{"https://studyatlas.example", "https://admin.example"}, cfg.Server.CORSOrigins)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
}

func TestValidateRejectsBadEnvironment(t *testing.T) {
	t.Setenv("ATLAS_ENVIRONMENT", "staging")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestValidateProductionRequiresPostgres(t *testing.T) {
	t.Setenv("ATLAS_ENVIRONMENT", "production")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "postgres URL is required")
}

func TestValidateCacheRequiresRedis(t *testing.T) {
	t.Setenv("ATLAS_CACHE_ENABLED", "true")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis URL is required")
}

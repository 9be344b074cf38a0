package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "  s3cret  ")

	cfg := LoadConfig()

	assert.Equal(t, 3001, cfg.ServerPort)
	assert.Equal(t, StoreMemory, cfg.StoreBackend)
	assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, MQNone, cfg.MQ.Backend)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "k")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("TOKEN_TTL", "90m")
	t.Setenv("STORE_BACKEND", "Postgres")
	t.Setenv("DB_USE_SSL", "true")
	t.Setenv("SEED_DEMO_DATA", "1")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:5173, https://photos.example.com,")

	cfg := LoadConfig()

	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, 90*time.Minute, cfg.Auth.TokenTTL)
	assert.Equal(t, StorePostgres, cfg.StoreBackend)
	assert.True(t, cfg.Database.UseSSL)
	assert.True(t, cfg.SeedDemo)
	assert.Equal(t, []string{"http://localhost:5173", "https://photos.example.com"}, cfg.CORSAllowedOrigins)
}

func TestLoadConfigBadDurationFallsBack(t *testing.T) {
	t.Setenv("TOKEN_TTL", "tomorrow")

	cfg := LoadConfig()
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
}

func TestValidate(t *testing.T) {
	base := Config{
		StoreBackend: StoreMemory,
		Auth:         AuthConfig{JWTSecret: "k", TokenTTL: time.Hour},
		MQ:           MQConfig{Backend: MQNone},
	}
	require.NoError(t, base.Validate())

	noSecret := base
	noSecret.Auth.JWTSecret = ""
	assert.Error(t, noSecret.Validate())

	badStore := base
	badStore.StoreBackend = "redis"
	assert.Error(t, badStore.Validate())

	badMQ := base
	badMQ.MQ.Backend = "kafka"
	assert.Error(t, badMQ.Validate())

	badTTL := base
	badTTL.Auth.TokenTTL = 0
	assert.Error(t, badTTL.Validate())
}

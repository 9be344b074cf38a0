package db

import (
	"net/url"
	"testing"

	"github.com/photoshare/apiserver/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresURL(t *testing.T) {
	cfg := config.DatabaseConfig{
		Host:     "db.internal",
		Port:     5433,
		User:     "photo",
		Password: "p@ss word",
		DBName:   "photos",
	}

	parsed, err := url.Parse(PostgresURL(cfg))
	require.NoError(t, err)
	assert.Equal(t, "postgres", parsed.Scheme)
	assert.Equal(t, "db.internal:5433", parsed.Host)
	assert.Equal(t, "/photos", parsed.Path)
	assert.Equal(t, "photo", parsed.User.Username())
	password, _ := parsed.User.Password()
	assert.Equal(t, "p@ss word", password)
	assert.Equal(t, "disable", parsed.Query().Get("sslmode"))

	cfg.UseSSL = true
	assert.Contains(t, PostgresURL(cfg), "sslmode=require")
}

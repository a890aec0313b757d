package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":5000", c.EndpointAddrHTTP)
	assert.Empty(t, c.DatabaseDSN)
	assert.Equal(t, "bazaarbuddy", c.DatabaseName)
	assert.Empty(t, c.SecretKey)
	assert.Equal(t, time.Hour, c.TokenValidityDuration)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, []string{"*"}, c.CORSAllowedOrigins)
	assert.Equal(t, "us-east-1", c.S3Region)
	assert.Empty(t, c.S3Bucket)
}

func TestValidate(t *testing.T) {
	c := &Config{}
	err := c.Validate()
	assert.ErrorIs(t, err, ErrNoDatabaseDSN)
	assert.ErrorIs(t, err, ErrNoSecretKey)

	c.DatabaseDSN = "postgres://localhost/bazaar"
	err = c.Validate()
	assert.NotErrorIs(t, err, ErrNoDatabaseDSN)
	assert.ErrorIs(t, err, ErrNoSecretKey)

	c.SecretKey = "k"
	assert.NoError(t, c.Validate())
}

func TestLoadConfig_UsesDefaultsWithoutSources(t *testing.T) {
	for _, k := range []string{"PORT", "DATABASE_DSN", "MONGO_URI", "JWT_SECRET", "TOKEN_VALIDITY", "LOG_LEVEL"} {
		t.Setenv(k, "")
	}

	c, err := LoadConfig(nil)
	require.NoError(t, err)
	require.NotNil(t, c)

	assert.Equal(t, ":5000", c.EndpointAddrHTTP)
	assert.Equal(t, time.Hour, c.TokenValidityDuration)
	assert.Empty(t, c.DatabaseDSN)
}

func TestLoadConfig_Precedence(t *testing.T) {
	path := writeTempJSON(t, t.TempDir(), "cfg.json", map[string]any{
		"endpoint_addr_http": ":7000",
		"database_dsn":       "postgres://json/db",
		"secret_key":         "json-secret",
		"log_level":          "debug",
	})
	t.Setenv("DATABASE_DSN", "")
	t.Setenv("MONGO_URI", "mongodb://env:27017")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("PORT", "")

	c, err := LoadConfig([]string{"-c", path, "-s", "flag-secret"})
	require.NoError(t, err)

	assert.Equal(t, ":7000", c.EndpointAddrHTTP, "json over defaults")
	assert.Equal(t, "mongodb://env:27017", c.DatabaseDSN, "env over json")
	assert.Equal(t, "flag-secret", c.SecretKey, "flags over json")
	assert.Equal(t, "debug", c.LogLevel)
}

func TestLoadConfig_BadJSON(t *testing.T) {
	_, err := LoadConfig([]string{"-c", t.TempDir() + "/missing.json"})
	assert.Error(t, err)
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("API_BASE_URL", "http://localhost:3001")
	t.Setenv("HTTP_TIMEOUT", "")
	t.Setenv("SESSION_STORE", "")
	t.Setenv("SESSION_FILE", "")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("REDIS_PASSWORD", "")
	t.Setenv("REDIS_DB", "")
	t.Setenv("LOG_LEVEL", "")
}

func TestLoadFromEnv_Defaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3001", cfg.APIBaseURL)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "file", cfg.SessionStore)
	assert.NotEmpty(t, cfg.SessionFile)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadFromEnv_MissingBaseURL(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("API_BASE_URL", "")

	_, err := LoadFromEnv()
	assert.Error(t, err)
}

func TestLoadFromEnv_InvalidTimeout(t *testing.T) {
	setBaseEnv(t)

	for _, bad := range []string{"abc", "0", "-3"} {
		t.Setenv("HTTP_TIMEOUT", bad)
		_, err := LoadFromEnv()
		assert.Error(t, err, "HTTP_TIMEOUT=%s should be rejected", bad)
	}
}

func TestLoadFromEnv_RedisStore(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("SESSION_STORE", "redis")

	_, err := LoadFromEnv()
	require.Error(t, err, "REDIS_ADDR is required for the redis driver")

	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "2")
	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "redis", cfg.SessionStore)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 2, cfg.RedisDB)
}

func TestLoadFromEnv_InvalidSessionStore(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("SESSION_STORE", "clipboard")

	_, err := LoadFromEnv()
	assert.Error(t, err)
}

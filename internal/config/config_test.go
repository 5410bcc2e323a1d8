package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "GEMINI_MODEL", "GEMINI_TEMPERATURE", "GEMINI_TIMEOUT", "MAX_FILE_SIZE", "WORKER_CONCURRENCY"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "gemini-2.5-flash", cfg.Gemini.Model)
	assert.Equal(t, float32(0.6), cfg.Gemini.Temperature)
	assert.Equal(t, 60*time.Second, cfg.Gemini.Timeout)
	assert.Equal(t, int64(10485760), cfg.Storage.MaxFileSize)
	assert.Equal(t, 3, cfg.Worker.Concurrency)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("GEMINI_TIMEOUT", "15s")
	t.Setenv("WORKER_CONCURRENCY", "8")
	t.Setenv("MAX_FILE_SIZE", "1024")

	cfg := Load()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Gemini.Timeout)
	assert.Equal(t, 8, cfg.Worker.Concurrency)
	assert.Equal(t, int64(1024), cfg.Storage.MaxFileSize)
}

func TestValidateRequiresAPIKey(t *testing.T) {
	cfg := &Config{}
	require.Error(t, cfg.Validate())

	cfg.Gemini.APIKey = "test-key"
	require.NoError(t, cfg.Validate())
}

package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "ENVIRONMENT", "LOG_LEVEL", "REDIS_URL", "DATA_DIR", "LLM_PROVIDER", "LLM_URL", "CONTENT_RATING", "LLM_TIMEOUT_SECONDS"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, "localhost:6379", cfg.RedisURL)
	assert.Equal(t, "./data", cfg.DataDir)
	assert.Equal(t, ProviderLlama, cfg.LLMProvider)
	assert.Equal(t, "http://localhost:5005/generate", cfg.LLMURL)
	assert.Equal(t, "PG-13", cfg.ContentRating)
	assert.Equal(t, 30*time.Second, cfg.LLMTimeout)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LLM_PROVIDER", "OpenAI")
	t.Setenv("LLM_TIMEOUT_SECONDS", "5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, ProviderOpenAI, cfg.LLMProvider)
	assert.Equal(t, 5*time.Second, cfg.LLMTimeout)
}

func TestLoadRejectsUnknownProvider(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "carrier-pigeon")

	_, err := Load()
	assert.Error(t, err)
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelWarn, parseLogLevel("warning"))
	assert.Equal(t, slog.LevelError, parseLogLevel("ERROR"))
	assert.Equal(t, slog.LevelInfo, parseLogLevel("nonsense"))
}

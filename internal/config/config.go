package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Supported LLM providers.
const (
	ProviderLlama     = "llama"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    slog.Level

	RedisURL string
	DataDir  string

	LLMProvider     string
	LLMURL          string
	ModelName       string
	OpenAIAPIKey    string
	AnthropicAPIKey string
	LLMTimeout      time.Duration

	ContentRating string
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    parseLogLevel(getEnv("LOG_LEVEL", "info")),

		RedisURL: getEnv("REDIS_URL", "localhost:6379"),
		DataDir:  getEnv("DATA_DIR", "./data"),

		LLMProvider:     strings.ToLower(getEnv("LLM_PROVIDER", ProviderLlama)),
		LLMURL:          getEnv("LLM_URL", "http://localhost:5005/generate"),
		ModelName:       getEnv("MODEL_NAME", ""),
		OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
		AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
		LLMTimeout:      time.Duration(getEnvInt("LLM_TIMEOUT_SECONDS", 30)) * time.Second,

		ContentRating: getEnv("CONTENT_RATING", "PG-13"),
	}

	switch cfg.LLMProvider {
	case ProviderLlama, ProviderOpenAI, ProviderAnthropic:
	default:
		return nil, fmt.Errorf("invalid LLM_PROVIDER %q (supported: llama, openai, anthropic)", cfg.LLMProvider)
	}

	return cfg, nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}

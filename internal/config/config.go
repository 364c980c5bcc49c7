package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// LLM provider names accepted in LLM_PROVIDER.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    slog.Level

	LLMProvider      string
	AnthropicAPIKey  string
	OpenRouterAPIKey string
	ModelName        string

	RedisURL string
	DataDir  string

	// SessionID, when set, resumes an existing session from storage
	SessionID uuid.UUID

	// CapabilityTimeout bounds each Actor/Director invocation within a turn
	CapabilityTimeout time.Duration

	// DiceSeed, when set, makes dice deterministic for the whole session
	DiceSeed    int64
	DiceSeedSet bool
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:              getEnv("PORT", "8080"),
		Environment:       getEnv("ENVIRONMENT", "development"),
		LogLevel:          parseLogLevel(getEnv("LOG_LEVEL", "info")),
		LLMProvider:       strings.ToLower(getEnv("LLM_PROVIDER", ProviderAnthropic)),
		AnthropicAPIKey:   getEnv("ANTHROPIC_API_KEY", ""),
		OpenRouterAPIKey:  getEnv("OPENROUTER_API_KEY", ""),
		ModelName:         getEnv("MODEL_NAME", "claude-sonnet-4-20250514"),
		RedisURL:          getEnv("REDIS_URL", "redis://localhost:6379"),
		DataDir:           getEnv("DATA_DIR", "./data"),
		CapabilityTimeout: 60 * time.Second,
	}

	if v := os.Getenv("CAPABILITY_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid CAPABILITY_TIMEOUT %q: %w", v, err)
		}
		cfg.CapabilityTimeout = d
	}

	if v := os.Getenv("SESSION_ID"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return nil, fmt.Errorf("invalid SESSION_ID %q: %w", v, err)
		}
		cfg.SessionID = id
	}

	if v := os.Getenv("DICE_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid DICE_SEED %q: %w", v, err)
		}
		cfg.DiceSeed = seed
		cfg.DiceSeedSet = true
	}

	switch cfg.LLMProvider {
	case ProviderAnthropic:
		if cfg.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY is required when LLM_PROVIDER=%s", ProviderAnthropic)
		}
	case ProviderOpenRouter:
		if cfg.OpenRouterAPIKey == "" {
			return nil, fmt.Errorf("OPENROUTER_API_KEY is required when LLM_PROVIDER=%s", ProviderOpenRouter)
		}
	case ProviderMock:
		// no credentials needed
	default:
		return nil, fmt.Errorf("unknown LLM_PROVIDER %q", cfg.LLMProvider)
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

package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port              int
	DatabaseURL       string
	LogLevel          string
	AnthropicAPIKey   string
	AnthropicModel    string
	SummaryMaxTokens  int
	NatsURL           string
	NatsToken         string
	CORSOrigins       []string
	RateLimitRequests int
	RateLimitWindow   time.Duration
	RetentionDays     int
	CleanupSchedule   string
	MaxContextBytes   int64
}

func Load() Config {
	return Config{
		Port:              envInt("BRIDGE_PORT", 8600),
		DatabaseURL:       envStr("DATABASE_URL", ""),
		LogLevel:          envStr("LOG_LEVEL", "info"),
		AnthropicAPIKey:   envStr("ANTHROPIC_API_KEY", ""),
		AnthropicModel:    envStr("BRIDGE_MODEL", "claude-sonnet-4-20250514"),
		SummaryMaxTokens:  envInt("SUMMARY_MAX_TOKENS", 150),
		NatsURL:           envStr("NATS_URL", ""),
		NatsToken:         envStr("NATS_TOKEN", ""),
		CORSOrigins:       envList("CORS_ORIGINS", []string{"*"}),
		RateLimitRequests: envInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   envDuration("RATE_LIMIT_WINDOW", time.Hour),
		RetentionDays:     envInt("RETENTION_DAYS", 30),
		CleanupSchedule:   envStr("CLEANUP_SCHEDULE", "0 3 * * *"),
		MaxContextBytes:   int64(envInt("MAX_CONTEXT_BYTES", 1000000)),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	// Application
	LogLevel string
	HTTPPort string

	// Chain
	BettingModerator string
	ResolveDelay     time.Duration
	BlockInterval    time.Duration

	// Game snapshot cache
	CacheNumCounters int64
	CacheMaxCost     int64

	// Journal
	JournalMode  string // "postgres" or "console"
	PostgresHost string
	PostgresPort string
	PostgresUser string
	PostgresPass string
	PostgresDB   string
	PostgresSSL  string
}

// LoadFromEnv loads configuration from environment variables with defaults.
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		// Application defaults
		LogLevel: getEnvOrDefault("LOG_LEVEL", "info"),
		HTTPPort: getEnvOrDefault("HTTP_PORT", "8080"),

		// Chain defaults
		BettingModerator: os.Getenv("BETTING_MODERATOR"),
		ResolveDelay:     getDurationOrDefault("RESOLVE_DELAY", 24*time.Hour),
		BlockInterval:    getDurationOrDefault("BLOCK_INTERVAL", 3*time.Second),

		// Cache defaults
		CacheNumCounters: getInt64OrDefault("CACHE_NUM_COUNTERS", 10_000),
		CacheMaxCost:     getInt64OrDefault("CACHE_MAX_COST", 1<<24),

		// Journal defaults
		JournalMode:  getEnvOrDefault("JOURNAL_MODE", "console"),
		PostgresHost: getEnvOrDefault("POSTGRES_HOST", "localhost"),
		PostgresPort: getEnvOrDefault("POSTGRES_PORT", "5432"),
		PostgresUser: getEnvOrDefault("POSTGRES_USER", "betchain"),
		PostgresPass: getEnvOrDefault("POSTGRES_PASSWORD", "betchain123"),
		PostgresDB:   getEnvOrDefault("POSTGRES_DB", "betchain"),
		PostgresSSL:  getEnvOrDefault("POSTGRES_SSLMODE", "disable"),
	}

	err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// Validate checks that configuration values are valid.
func (c *Config) Validate() error {
	if c.HTTPPort == "" {
		return fmt.Errorf("HTTP_PORT cannot be empty")
	}

	if c.BettingModerator == "" {
		return fmt.Errorf("BETTING_MODERATOR cannot be empty")
	}

	if c.ResolveDelay <= 0 {
		return fmt.Errorf("RESOLVE_DELAY must be positive, got %s", c.ResolveDelay)
	}

	if c.BlockInterval <= 0 {
		return fmt.Errorf("BLOCK_INTERVAL must be positive, got %s", c.BlockInterval)
	}

	if c.JournalMode != "postgres" && c.JournalMode != "console" {
		return fmt.Errorf("JOURNAL_MODE must be 'postgres' or 'console', got %q", c.JournalMode)
	}

	return nil
}

func getEnvOrDefault(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getInt64OrDefault(key string, defaultValue int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	intVal, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return defaultValue
	}

	return intVal
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}

	return duration
}

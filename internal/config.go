package internal

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration, sourced from the environment.
type Config struct {
	Env      string
	LogLevel string
	Port     uint16

	// DatabaseUrl points the record store at Postgres. When empty the
	// server runs on the in-memory store.
	DatabaseUrl string

	// NatsUrl enables the event publisher. When empty events are dropped.
	NatsUrl string

	// MetricsNamespace prefixes all Prometheus metrics.
	MetricsNamespace string
}

// NewConfig loads configuration from .env (if present) and the environment.
func NewConfig() (*Config, error) {
	// Try to load .env from current directory, then walk up to find it (max 2 levels)
	err := godotenv.Load()
	if err != nil {
		dir, _ := os.Getwd()
		found := false
		for i := 0; i < 2; i++ {
			dir = filepath.Join(dir, "..")
			if err := godotenv.Load(filepath.Join(dir, ".env")); err == nil {
				found = true
				break
			}
		}
		if !found {
			slog.Default().Warn("Warning: .env file not found, using environment variables and defaults")
		}
	}

	cfg := &Config{
		Env:              getEnv("ENV", "dev"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		Port:             getEnvInt("PORT", 3000),
		DatabaseUrl:      getEnv("DATABASE_URL", ""),
		NatsUrl:          getEnv("NATS_URL", ""),
		MetricsNamespace: getEnv("METRICS_NAMESPACE", "shopcore"),
	}

	// Validate env
	validEnv := cfg.Env == "dev" || cfg.Env == "prod"
	if !validEnv {
		slog.Default().Warn("Invalid environment. Using default: prod", slog.String("env", cfg.Env))
		cfg.Env = "prod"
	}

	// Validate log level
	validLevel := cfg.LogLevel == "info" || cfg.LogLevel == "debug" || cfg.LogLevel == "warn" || cfg.LogLevel == "error"
	if !validLevel {
		slog.Default().Warn("Invalid log level. Using default: info", slog.String("value", cfg.LogLevel))
		cfg.LogLevel = "info"
	}

	if cfg.Env == "prod" && cfg.DatabaseUrl == "" {
		return nil, fmt.Errorf("DATABASE_URL must be set in production environment")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue uint16) uint16 {
	if value := os.Getenv(key); value != "" {
		var intValue uint16
		if _, err := fmt.Sscanf(value, "%d", &intValue); err == nil {
			return intValue
		}
	}
	return defaultValue
}

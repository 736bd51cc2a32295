// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	DataDir              string  // Base directory for the SQLite databases (always absolute)
	Port                 int     // HTTP listen port
	LogLevel             string  // debug, info, warn, error
	DevMode              bool    // Disables response compression, enables debug conveniences
	DefaultExchangeRate  float64 // Last-resort USD/KRW rate when every live source fails
	ExchangeRateOverride float64 // When > 0, bypasses the resolver chain entirely
	RateSnapshotCron     string  // Cron expression for the daily exchange-rate snapshot job
}

// Load reads configuration from environment variables.
// A .env file in the working directory is honored when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	dataDir := getEnv("DATA_DIR", "")
	if dataDir == "" {
		dataDir = "./data"
	}

	absDataDir, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory path: %w", err)
	}
	if err := os.MkdirAll(absDataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	cfg := &Config{
		DataDir:              absDataDir,
		Port:                 getEnvAsInt("PORT", 8000),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		DevMode:              getEnvAsBool("DEV_MODE", false),
		DefaultExchangeRate:  getEnvAsFloat("DEFAULT_EXCHANGE_RATE", 1400.0),
		ExchangeRateOverride: getEnvAsFloat("EXCHANGE_RATE_OVERRIDE", 0),
		RateSnapshotCron:     getEnv("RATE_SNAPSHOT_CRON", "0 9 * * *"),
	}

	if cfg.DefaultExchangeRate <= 0 {
		return nil, fmt.Errorf("DEFAULT_EXCHANGE_RATE must be positive, got %v", cfg.DefaultExchangeRate)
	}

	return cfg, nil
}

// getEnv retrieves an environment variable, returning a fallback when unset or empty.
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

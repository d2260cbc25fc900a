// Package config loads application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Storage   StorageConfig
	Reconcile ReconcileConfig
	Sweep     SweepConfig
}

type ServerConfig struct {
	Host               string
	Port               int
	APIKey             string
	RateLimitPerSecond int
	RateLimitBurst     int
}

type StorageConfig struct {
	Path string
}

type ReconcileConfig struct {
	// Tolerance is the maximum absolute difference between summed row costs
	// and the reported invoice total still considered a match.
	Tolerance decimal.Decimal
}

type SweepConfig struct {
	// Schedule is a standard 5-field cron spec; empty disables the sweep.
	Schedule   string
	InboxDir   string
	OutputDir  string
	ArchiveDir string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", getEnvAsInt("PORT", 5000)),
			// Deployments have historically set the key under either name.
			APIKey:             strings.TrimSpace(getEnv("API_KEY", os.Getenv("api"))),
			RateLimitPerSecond: getEnvAsInt("SERVER_RATE_LIMIT_PER_SECOND", 20),
			RateLimitBurst:     getEnvAsInt("SERVER_RATE_LIMIT_BURST", 40),
		},
		Storage: StorageConfig{
			Path: getEnv("STORAGE_LOCAL_PATH", "./uploads"),
		},
		Sweep: SweepConfig{
			Schedule:   getEnv("SWEEP_SCHEDULE", ""),
			InboxDir:   getEnv("SWEEP_INBOX_DIR", "./inbox"),
			OutputDir:  getEnv("SWEEP_OUTPUT_DIR", "./outbox"),
			ArchiveDir: getEnv("SWEEP_ARCHIVE_DIR", "./archive"),
		},
	}

	tolStr := getEnv("RECONCILE_TOLERANCE", "0.01")
	tol, err := decimal.NewFromString(tolStr)
	if err != nil {
		return nil, fmt.Errorf("invalid RECONCILE_TOLERANCE %q: %w", tolStr, err)
	}
	if tol.Sign() <= 0 {
		return nil, errors.New("RECONCILE_TOLERANCE must be positive")
	}
	cfg.Reconcile.Tolerance = tol

	return cfg, nil
}

// Addr returns the listen address for the HTTP server
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	DataDir  string // Base directory for all databases (always absolute)
	Port     int
	LogLevel string
	DevMode  bool

	// External collaborators
	MarketDataURL  string        // OHLCV + fundamentals provider
	AdvisorURL     string        // Narrative generator service
	AdvisorAPIKey  string        // Optional bearer token for the advisor
	AdvisorTimeout time.Duration // Per-request budget before falling back

	// Analysis calibration. These are estimation inputs, not laws; they are
	// surfaced here so operators can tune them without a rebuild.
	IncomeMultiplier      float64 // Estimated income = monthly expenses * this
	HouseIncomeMultiplier float64 // House affordability uses a higher estimate
	RiskFreeRate          float64 // Annualized, used by Sharpe ratio

	SummaryCacheTTL time.Duration // Monthly summary cache lifetime

	Backup *BackupConfig
}

// BackupConfig holds S3-compatible backup settings.
// Works with AWS S3 and with R2/MinIO style endpoints.
type BackupConfig struct {
	Enabled         bool
	Endpoint        string // Empty = default AWS endpoint
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	RetentionDays   int    // 0 = keep forever
	Schedule        string // Cron expression for the nightly job
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	// Determine data directory, resolve to absolute, ensure it exists
	dataDir := getEnv("FINOBAI_DATA_DIR", "")
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
		DataDir:  absDataDir,
		Port:     getEnvAsInt("FINOBAI_PORT", 8000),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		DevMode:  getEnvAsBool("DEV_MODE", false),

		MarketDataURL:  getEnv("MARKET_DATA_URL", "http://localhost:9100"),
		AdvisorURL:     getEnv("ADVISOR_URL", ""),
		AdvisorAPIKey:  getEnv("ADVISOR_API_KEY", ""),
		AdvisorTimeout: getEnvAsDuration("ADVISOR_TIMEOUT", 20*time.Second),

		IncomeMultiplier:      getEnvAsFloat("INCOME_MULTIPLIER", 1.3),
		HouseIncomeMultiplier: getEnvAsFloat("HOUSE_INCOME_MULTIPLIER", 1.4),
		RiskFreeRate:          getEnvAsFloat("RISK_FREE_RATE", 0.12),

		SummaryCacheTTL: getEnvAsDuration("SUMMARY_CACHE_TTL", time.Hour),

		Backup: loadBackupConfig(),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.IncomeMultiplier <= 0 || c.HouseIncomeMultiplier <= 0 {
		return fmt.Errorf("income multipliers must be positive")
	}
	if c.Backup != nil && c.Backup.Enabled && c.Backup.Bucket == "" {
		return fmt.Errorf("BACKUP_BUCKET is required when backups are enabled")
	}
	return nil
}

func loadBackupConfig() *BackupConfig {
	return &BackupConfig{
		Enabled:         getEnvAsBool("BACKUP_ENABLED", false),
		Endpoint:        getEnv("BACKUP_ENDPOINT", ""),
		Region:          getEnv("BACKUP_REGION", "auto"),
		Bucket:          getEnv("BACKUP_BUCKET", ""),
		AccessKeyID:     getEnv("BACKUP_ACCESS_KEY_ID", ""),
		SecretAccessKey: getEnv("BACKUP_SECRET_ACCESS_KEY", ""),
		RetentionDays:   getEnvAsInt("BACKUP_RETENTION_DAYS", 30),
		Schedule:        getEnv("BACKUP_SCHEDULE", "0 3 * * *"),
	}
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

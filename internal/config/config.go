package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"motorvault/internal/core/domain"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	AppMode  string
	Port     string
	Database DatabaseConfig
	JWT      JWTConfig
	Transfer TransferConfig
	Notify   NotifyConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret          string
	AccessTokenMins int
}

// TransferConfig holds the transfer/quarantine policy.
// These are business policy values, not state-machine constants, so they
// live in configuration and can change without a code change.
type TransferConfig struct {
	GracePeriod    time.Duration
	ResponseWindow time.Duration
	SweepSchedule  string
	// QuarantineCountsTowardLimit controls whether a vehicle inside its
	// quarantine window still counts against its owner's vehicle ceiling.
	QuarantineCountsTowardLimit bool
	Tiers                       map[domain.SubscriptionTier]domain.Entitlement
}

// NotifyConfig holds the lifecycle webhook configuration
type NotifyConfig struct {
	WebhookURL string
}

// Global config instance
var AppConfig *Config

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	// Get APP_MODE (default to "dev") - trim spaces for Windows compatibility
	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	config := &Config{
		AppMode:  appMode,
		Port:     getEnv("PORT", "3000"),
		Database: loadDatabaseConfig(appMode),
		JWT:      loadJWTConfig(appMode),
		Transfer: loadTransferConfig(),
		Notify: NotifyConfig{
			WebhookURL: getEnv("LIFECYCLE_WEBHOOK_URL", ""),
		},
	}

	// Set global config
	AppConfig = config

	log.Printf("✅ Configuration loaded successfully [MODE: %s]", appMode)
	return config, nil
}

// loadDatabaseConfig loads database config based on mode
func loadDatabaseConfig(mode string) DatabaseConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	return DatabaseConfig{
		Host:     getEnv(prefix+"DB_HOST", "localhost"),
		Port:     getEnv(prefix+"DB_PORT", "3306"),
		User:     getEnv(prefix+"DB_USER", "root"),
		Password: getEnv(prefix+"DB_PASS", ""),
		DBName:   getEnv(prefix+"DB_NAME", "motorvault"),
	}
}

// loadJWTConfig loads JWT config based on mode
func loadJWTConfig(mode string) JWTConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	accessMins, _ := strconv.Atoi(getEnv("ACCESS_TOKEN_MINUTES", "15"))

	return JWTConfig{
		Secret:          getEnv(prefix+"JWT_SECRET", "default_secret"),
		AccessTokenMins: accessMins,
	}
}

// loadTransferConfig loads the transfer/quarantine policy
func loadTransferConfig() TransferConfig {
	graceDays := getEnvInt("QUARANTINE_GRACE_DAYS", 30)
	windowDays := getEnvInt("TRANSFER_RESPONSE_DAYS", 7)
	countsTowardLimit, _ := strconv.ParseBool(getEnv("QUARANTINE_COUNTS_TOWARD_LIMIT", "true"))

	return TransferConfig{
		GracePeriod:                 time.Duration(graceDays) * 24 * time.Hour,
		ResponseWindow:              time.Duration(windowDays) * 24 * time.Hour,
		SweepSchedule:               getEnv("SWEEP_SCHEDULE", "@daily"),
		QuarantineCountsTowardLimit: countsTowardLimit,
		Tiers: map[domain.SubscriptionTier]domain.Entitlement{
			domain.TierBasic: {
				TransferEnabled: false,
				MaxVehicles:     getEnvInt("BASIC_MAX_VEHICLES", 1),
			},
			domain.TierPremiumMonthly: {
				TransferEnabled: true,
				MaxVehicles:     getEnvInt("PREMIUM_MONTHLY_MAX_VEHICLES", 4),
			},
			domain.TierPremiumAnnual: {
				TransferEnabled: true,
				MaxVehicles:     getEnvInt("PREMIUM_ANNUAL_MAX_VEHICLES", 6),
			},
		},
	}
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer environment variable with default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" {
		if c.IsDev() {
			return "*"
		}
		// Default production origins
		return "https://app.motorvault.com.au"
	}
	return origins
}

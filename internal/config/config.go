package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Env       string
	Port      string
	BaseURL   string
	JWTSecret string
	Database  DatabaseConfig
	Badges    BadgeConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Database string
	Quiet    bool
}

// BadgeConfig controls badge catalog loading and backfill behaviour
type BadgeConfig struct {
	CatalogPath     string // empty = embedded default catalog
	BackfillOnStart bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return &Config{
		Env:       getEnv("NET_ENV", "development"),
		Port:      getEnv("PORT", "3220"),
		BaseURL:   getEnv("BASE_URL", "http://localhost:3220"),
		JWTSecret: jwtSecret,
		Database: DatabaseConfig{
			Host:     getEnv("PG_HOST", "localhost"),
			Port:     getEnv("PG_PORT", "5432"),
			Username: getEnv("PG_USERNAME", "postgres"),
			Password: os.Getenv("PG_PASSWORD"),
			Database: getEnv("PG_DATABASE", "netcontrol"),
			Quiet:    getBool("DB_QUIET", false),
		},
		Badges: BadgeConfig{
			CatalogPath:     os.Getenv("BADGE_CATALOG"),
			BackfillOnStart: getBool("BADGE_BACKFILL", false),
		},
	}, nil
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}

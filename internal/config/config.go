// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime settings for the server process.
type Config struct {
	// HTTP server
	Port string

	// Database
	DBPath string

	// Sessions
	JWTSecret string
	TokenTTL  time.Duration
}

const devFallbackSecret = "dev-insecure-secret-change"

// Load reads configuration from the environment, after merging in a local
// .env file if one exists. Variables already set in the environment win.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:      getEnv("PORT", "8080"),
		DBPath:    getEnv("DB_PATH", "./data/lifeplanner.db"),
		JWTSecret: getEnv("JWT_SECRET", devFallbackSecret),
		TokenTTL:  getEnvDuration("TOKEN_TTL", 24*time.Hour),
	}
}

// Validate returns an error describing any invalid setting.
func (c *Config) Validate() error {
	if port, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("invalid port %q: must be a number", c.Port)
	} else if port < 1 || port > 65535 {
		return fmt.Errorf("invalid port %d: must be between 1 and 65535", port)
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must not be empty")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("invalid token TTL %s: must be positive", c.TokenTTL)
	}
	return nil
}

// UsingFallbackSecret reports whether the insecure development secret is in
// use, so the caller can log a warning.
func (c *Config) UsingFallbackSecret() bool {
	return c.JWTSecret == devFallbackSecret
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

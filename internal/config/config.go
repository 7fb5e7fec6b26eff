// Package config loads runtime configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port      string
	DBPath    string
	LogLevel  string
	LogFormat string

	// Rate limiting for the unauthenticated write endpoints
	// (registration, tribe joining).
	RateLimit       int
	RateLimitWindow time.Duration
}

// Load reads configuration from a .env file (if present) and the
// environment. Every knob has a sensible default for local use.
func Load() *Config {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	return &Config{
		Port:            getEnv("CHORETRIBE_PORT", "8080"),
		DBPath:          getEnv("CHORETRIBE_DB_PATH", "choretribe.db"),
		LogLevel:        getEnv("CHORETRIBE_LOG_LEVEL", "info"),
		LogFormat:       getEnv("CHORETRIBE_LOG_FORMAT", "text"),
		RateLimit:       getEnvInt("CHORETRIBE_RATE_LIMIT", 10),
		RateLimitWindow: getEnvDuration("CHORETRIBE_RATE_LIMIT_WINDOW", time.Minute),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the application configuration.
type Config struct {
	ServerPort   int
	DatabasePath string
	CORSOrigin   string

	// JWTSecret signs session tokens. It must come from the environment;
	// there is no baked-in default.
	JWTSecret string

	// TokenTTL bounds the validity of issued tokens. Zero disables the
	// expiry claim entirely, which keeps tokens valid forever; deployments
	// that care should set TOKEN_TTL.
	TokenTTL time.Duration

	// EventRetention controls how long activity-log entries are kept.
	EventRetention time.Duration
	// PruneSchedule is a standard cron expression for the event janitor.
	PruneSchedule string
}

// Load loads configuration from environment variables or sets defaults.
func Load() (*Config, error) {
	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT %q: %w", portStr, err)
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set")
	}

	ttlStr := getEnv("TOKEN_TTL", "0")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL %q: %w", ttlStr, err)
	}

	retentionStr := getEnv("EVENT_RETENTION_DAYS", "30")
	retentionDays, err := strconv.Atoi(retentionStr)
	if err != nil {
		return nil, fmt.Errorf("invalid EVENT_RETENTION_DAYS %q: %w", retentionStr, err)
	}

	return &Config{
		ServerPort:     port,
		DatabasePath:   getEnv("DATABASE_PATH", "./blogit.db"),
		CORSOrigin:     getEnv("CORS_ORIGIN", "http://localhost:3000"),
		JWTSecret:      secret,
		TokenTTL:       ttl,
		EventRetention: time.Duration(retentionDays) * 24 * time.Hour,
		PruneSchedule:  getEnv("EVENT_PRUNE_SCHEDULE", "0 3 * * *"),
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

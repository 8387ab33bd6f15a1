// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"].
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// APIBaseURL is the externally reachable base URL of this API. It is
	// embedded in confirmation links sent by email, so it must resolve from
	// the recipient's network, not just locally. Defaults to
	// "http://localhost:8080".
	APIBaseURL string

	// WebBaseURL is the base URL of the web frontend. Trip confirmation
	// redirects land on "{WebBaseURL}/trips/{id}". Defaults to
	// "http://localhost:5173".
	WebBaseURL string

	// Mail configures the outbound email provider.
	Mail MailConfig
}

// MailConfig holds configuration for the outbound email provider.
// Provider "ses" sends through AWS SES; "noop" (the default) logs instead of
// sending, which is what you want in development.
type MailConfig struct {
	Provider           string
	FromAddress        string
	FromName           string
	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
}

// Load reads configuration from environment variables and returns a Config.
// Outside production it first loads a .env file if one exists, so local
// development does not require exporting variables by hand.
// Returns an error listing any required variables that are not set.
func Load() (Config, error) {
	if os.Getenv("GO_ENV") != "production" {
		// Missing .env is fine — the variables may be set in the environment.
		_ = godotenv.Load()
	}

	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		APIBaseURL:  strings.TrimRight(getEnv("API_BASE_URL", "http://localhost:8080"), "/"),
		WebBaseURL:  strings.TrimRight(getEnv("WEB_BASE_URL", "http://localhost:5173"), "/"),
		Mail: MailConfig{
			Provider:           getEnv("MAIL_PROVIDER", "noop"),
			FromAddress:        getEnv("MAIL_FROM_ADDRESS", "noreply@plann.er"),
			FromName:           getEnv("MAIL_FROM_NAME", "Equipe plann.er"),
			AWSRegion:          os.Getenv("AWS_REGION"),
			AWSAccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
			AWSSecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		},
	}

	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	if cfg.Mail.Provider == "ses" {
		for _, v := range []string{"AWS_REGION", "AWS_ACCESS_KEY_ID", "AWS_SECRET_ACCESS_KEY"} {
			if os.Getenv(v) == "" {
				missing = append(missing, v)
			}
		}
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// Package config loads and validates application configuration from
// environment variables. A .env file in the working directory is loaded
// first when present, which keeps local development setup to one file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultMaxBodyBytes bounds incoming request bodies. The largest legitimate
// payload is a pricing document, which is a few kilobytes.
const DefaultMaxBodyBytes = 1 << 20 // 1 MiB

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
	// Defaults to ["http://localhost:3000"] (Next.js dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// MaxBodyBytes caps incoming request body sizes.
	MaxBodyBytes int64

	// AppURL is the public site origin used in email tracking links.
	AppURL string

	// AdminEmail receives the operations copy of every lifecycle email.
	// When empty, admin copies are skipped.
	AdminEmail string

	// BrevoAPIKey authenticates against the Brevo transactional email API.
	// When empty, the server runs with email delivery disabled.
	BrevoAPIKey string

	// BrevoSenderEmail and BrevoSenderName identify the From address.
	BrevoSenderEmail string
	BrevoSenderName  string
}

// Load reads configuration from the environment (and a .env file, if one
// exists) and returns a Config.
// Returns an error listing any required variables that are not set.
func Load() (Config, error) {
	// Missing .env is the normal case in production; only a parse failure
	// of an existing file is worth surfacing.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("config.Load: .env: %w", err)
	}

	cfg := Config{
		Port:             getEnv("PORT", "8080"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		CORSOrigins:      splitCSV(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		AppURL:           getEnv("APP_URL", "http://localhost:3000"),
		AdminEmail:       os.Getenv("ADMIN_EMAIL"),
		BrevoAPIKey:      os.Getenv("BREVO_API_KEY"),
		BrevoSenderEmail: getEnv("BREVO_SENDER_EMAIL", "noreply@modestcargo.com"),
		BrevoSenderName:  getEnv("BREVO_SENDER_NAME", "ModestCargo"),
		MaxBodyBytes:     DefaultMaxBodyBytes,
	}

	if v := os.Getenv("MAX_BODY_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("config.Load: invalid MAX_BODY_BYTES %q", v)
		}
		cfg.MaxBodyBytes = n
	}

	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
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

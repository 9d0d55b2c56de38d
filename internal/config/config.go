// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
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
	// Defaults to ["http://localhost:3000"] (Next.js dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// StateDir is the directory holding demo-mode state (the identity marker
	// and the demo destination blob). Defaults to "./data".
	StateDir string

	// MaxPhotos caps the photo array per destination. Defaults to 5.
	MaxPhotos int

	// MaxBodyBytes caps an HTTP request body. Destination payloads carry
	// inline-encoded photos, so the default is a generous 32 MiB.
	MaxBodyBytes int64

	// AuthTimeout bounds the session check on startup so a slow auth
	// collaborator can never wedge the server. Defaults to 3s.
	AuthTimeout time.Duration

	// NominatimURL overrides the location-search endpoint (used in tests).
	// Empty means the public OpenStreetMap instance.
	NominatimURL string
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set, or
// describing the first invalid value.
func Load() (Config, error) {
	cfg := Config{
		Port:         getEnv("PORT", "8080"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		CORSOrigins:  splitCSV(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		StateDir:     getEnv("STATE_DIR", "./data"),
		NominatimURL: os.Getenv("NOMINATIM_URL"),
	}

	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	var err error
	if cfg.MaxPhotos, err = getEnvInt("MAX_PHOTOS", 5); err != nil {
		return Config{}, err
	}
	maxBody, err := getEnvInt("MAX_BODY_BYTES", 32<<20)
	if err != nil {
		return Config{}, err
	}
	cfg.MaxBodyBytes = int64(maxBody)

	authTimeout, err := getEnvInt("AUTH_TIMEOUT_SECONDS", 3)
	if err != nil {
		return Config{}, err
	}
	cfg.AuthTimeout = time.Duration(authTimeout) * time.Second

	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// validate enforces value-level rules on top of the presence checks in Load.
func (c Config) validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.LogLevel, validation.In("debug", "info", "warn", "error")),
		validation.Field(&c.MaxPhotos, validation.Min(1), validation.Max(20)),
		validation.Field(&c.MaxBodyBytes, validation.Min(int64(1))),
		validation.Field(&c.StateDir, validation.Required),
	)
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getEnvInt reads an integer environment variable with a fallback.
func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
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

// Package config loads and validates application configuration.
// Values come from environment variables, optionally overlaid with a YAML
// file named by CONFIG_FILE — env vars win wherever both are set.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration values for the API server.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string `yaml:"port"`

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string `yaml:"database_url"`

	// JWTSecret is the HMAC secret shared with the auth provider. Required.
	JWTSecret string `yaml:"jwt_secret"`

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string `yaml:"cors_origins"`

	// MaxBodyBytes caps the size of incoming request bodies. Defaults to 1 MiB.
	MaxBodyBytes int64 `yaml:"max_body_bytes"`

	// AllowDuplicateMatches controls whether a second match between the same
	// two users may be created. Defaults to true, preserving the historical
	// behavior of allowing multiple pending proposals per pair. Set
	// ALLOW_DUPLICATE_MATCHES=false to reject repeats with HTTP 409.
	AllowDuplicateMatches bool `yaml:"allow_duplicate_matches"`
}

// Load reads configuration from the optional CONFIG_FILE YAML overlay and
// the environment, and returns a Config.
// Returns an error listing any required values that are not set.
func Load() (Config, error) {
	cfg := Config{
		Port:                  "8080",
		LogLevel:              "info",
		CORSOrigins:           []string{"http://localhost:5173"},
		MaxBodyBytes:          1 << 20,
		AllowDuplicateMatches: true,
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}

	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		cfg.CORSOrigins = splitCSV(v)
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
	if v := os.Getenv("ALLOW_DUPLICATE_MATCHES"); v != "" {
		cfg.AllowDuplicateMatches = !strings.EqualFold(v, "false")
	}

	var missing []string
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if cfg.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
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

// Package config loads service configuration from environment variables,
// with an optional .env file for local development.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config carries every runtime setting for the API server.
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Auth       AuthConfig
	Newsletter NewsletterConfig
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Addr           string
	AllowedOrigins []string
}

// DatabaseConfig selects the SQL driver and its DSN.
// Driver is "pgx" in production and "sqlite" for local runs.
type DatabaseConfig struct {
	Driver string
	DSN    string
}

// AuthConfig holds token signing settings.
type AuthConfig struct {
	Secret    string
	AccessTTL time.Duration
}

// NewsletterConfig holds the outbound email settings. An empty APIKey
// disables real sends.
type NewsletterConfig struct {
	APIKey    string
	FromEmail string
}

// Load builds Config from VILLORYA_* environment variables. A .env file in
// the working directory is applied first when present.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Server: ServerConfig{
			Addr:           getEnv("VILLORYA_ADDR", ":8080"),
			AllowedOrigins: splitList(getEnv("VILLORYA_ALLOWED_ORIGINS", "")),
		},
		Database: DatabaseConfig{
			Driver: getEnv("VILLORYA_DB_DRIVER", "sqlite"),
			DSN:    getEnv("VILLORYA_DB_DSN", "file:villorya.db?_pragma=busy_timeout(5000)"),
		},
		Auth: AuthConfig{
			Secret: os.Getenv("VILLORYA_AUTH_SECRET"),
		},
		Newsletter: NewsletterConfig{
			APIKey:    os.Getenv("VILLORYA_RESEND_API_KEY"),
			FromEmail: getEnv("VILLORYA_NEWSLETTER_FROM", "newsletter@villorya.com"),
		},
	}

	ttlMinutes, err := getInt("VILLORYA_ACCESS_TTL_MINUTES", 60)
	if err != nil {
		return Config{}, err
	}
	cfg.Auth.AccessTTL = time.Duration(ttlMinutes) * time.Minute

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if strings.TrimSpace(c.Auth.Secret) == "" {
		return errors.New("config: VILLORYA_AUTH_SECRET is required")
	}
	switch c.Database.Driver {
	case "pgx", "sqlite":
	default:
		return fmt.Errorf("config: unsupported db driver %q", c.Database.Driver)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("config: %s must be an integer: %w", key, err)
	}
	return v, nil
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("VILLORYA_AUTH_SECRET", "test-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Fatalf("addr = %q", cfg.Server.Addr)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Fatalf("driver = %q", cfg.Database.Driver)
	}
	if cfg.Auth.AccessTTL != time.Hour {
		t.Fatalf("ttl = %v", cfg.Auth.AccessTTL)
	}
	if cfg.Newsletter.FromEmail == "" {
		t.Fatal("missing default sender")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("VILLORYA_AUTH_SECRET", "test-secret")
	t.Setenv("VILLORYA_ADDR", ":9191")
	t.Setenv("VILLORYA_DB_DRIVER", "pgx")
	t.Setenv("VILLORYA_DB_DSN", "postgres://app@db/villorya")
	t.Setenv("VILLORYA_ACCESS_TTL_MINUTES", "15")
	t.Setenv("VILLORYA_ALLOWED_ORIGINS", "https://admin.villorya.com, https://staging.villorya.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != ":9191" || cfg.Database.Driver != "pgx" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.Auth.AccessTTL != 15*time.Minute {
		t.Fatalf("ttl = %v", cfg.Auth.AccessTTL)
	}
	if len(cfg.Server.AllowedOrigins) != 2 || cfg.Server.AllowedOrigins[1] != "https://staging.villorya.com" {
		t.Fatalf("origins = %v", cfg.Server.AllowedOrigins)
	}
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("VILLORYA_AUTH_SECRET", "")
	if _, err := Load(); err == nil {
		t.Fatal("expected error without auth secret")
	}
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("VILLORYA_AUTH_SECRET", "test-secret")
	t.Setenv("VILLORYA_DB_DRIVER", "oracle")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestLoadRejectsBadTTL(t *testing.T) {
	t.Setenv("VILLORYA_AUTH_SECRET", "test-secret")
	t.Setenv("VILLORYA_ACCESS_TTL_MINUTES", "soon")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for non-integer ttl")
	}
}

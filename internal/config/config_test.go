package config

import (
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cfg.Port != "8080" {
			t.Fatalf("expected default port 8080, got %s", cfg.Port)
		}
		if cfg.TokenTTL != 24*time.Hour {
			t.Fatalf("expected default TTL 24h, got %s", cfg.TokenTTL)
		}
		if len(cfg.CORSOrigins) != 2 {
			t.Fatalf("expected 2 default origins, got %v", cfg.CORSOrigins)
		}
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("PORT", "9090")
		t.Setenv("TOKEN_TTL", "30m")
		t.Setenv("CORS_ORIGINS", "https://a.example,https://b.example,https://c.example")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cfg.Port != "9090" {
			t.Fatalf("expected port 9090, got %s", cfg.Port)
		}
		if cfg.TokenTTL != 30*time.Minute {
			t.Fatalf("expected TTL 30m, got %s", cfg.TokenTTL)
		}
		if len(cfg.CORSOrigins) != 3 || cfg.CORSOrigins[2] != "https://c.example" {
			t.Fatalf("unexpected origins: %v", cfg.CORSOrigins)
		}
	})

	t.Run("malformed duration fails", func(t *testing.T) {
		t.Setenv("TOKEN_TTL", "soon")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for malformed TOKEN_TTL")
		}
	})
}

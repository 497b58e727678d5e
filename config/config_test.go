package config

import (
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("MONGODB_URI", "mongodb://127.0.0.1:27017")
	t.Setenv("JWT_SECRET", "secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Port != "8080" {
		t.Fatalf("unexpected default port %q", cfg.Port)
	}
	if cfg.Addr() != ":8080" {
		t.Fatalf("unexpected addr %q", cfg.Addr())
	}
	if cfg.MongoDatabase != "sparked" {
		t.Fatalf("unexpected default database %q", cfg.MongoDatabase)
	}
	if cfg.JWTTTL != 24*time.Hour {
		t.Fatalf("unexpected default jwt ttl %v", cfg.JWTTTL)
	}
	if cfg.RateLimit != 60 || cfg.RateWindow != time.Minute {
		t.Fatalf("unexpected rate defaults: %d per %v", cfg.RateLimit, cfg.RateWindow)
	}
	if len(cfg.CORSOrigins) == 0 {
		t.Fatal("expected default CORS origins")
	}
}

func TestLoadRequiresMongoURI(t *testing.T) {
	t.Setenv("MONGODB_URI", "")
	t.Setenv("JWT_SECRET", "secret")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing MONGODB_URI")
	}
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://127.0.0.1:27017")
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing JWT_SECRET")
	}
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "9999")
	t.Setenv("JWT_TTL", "2h")
	t.Setenv("RATE_LIMIT", "5")
	t.Setenv("RATE_WINDOW", "30s")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Port != "9999" {
		t.Fatalf("unexpected port %q", cfg.Port)
	}
	if cfg.JWTTTL != 2*time.Hour {
		t.Fatalf("unexpected jwt ttl %v", cfg.JWTTTL)
	}
	if cfg.RateLimit != 5 || cfg.RateWindow != 30*time.Second {
		t.Fatalf("unexpected rate config: %d per %v", cfg.RateLimit, cfg.RateWindow)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected CORS origins %v", cfg.CORSOrigins)
	}
}

func TestLoadIgnoresBadNumericValues(t *testing.T) {
	setRequired(t)
	t.Setenv("RATE_LIMIT", "lots")
	t.Setenv("JWT_TTL", "soon")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.RateLimit != 60 {
		t.Fatalf("bad RATE_LIMIT should fall back to default, got %d", cfg.RateLimit)
	}
	if cfg.JWTTTL != 24*time.Hour {
		t.Fatalf("bad JWT_TTL should fall back to default, got %v", cfg.JWTTTL)
	}
}

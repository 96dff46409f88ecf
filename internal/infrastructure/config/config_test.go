package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "s3cret",
	}))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}

	if cfg.Port != "8080" || cfg.Env != "development" || cfg.LogLevel != "info" {
		t.Fatalf("unexpected base defaults: %+v", cfg)
	}
	if cfg.TokenTTL != 7*24*time.Hour {
		t.Fatalf("expected 7 day token ttl, got %s", cfg.TokenTTL)
	}
	if cfg.Mongo.Database != "placement_portal" || cfg.Redis.Addr != "localhost:6379" {
		t.Fatalf("unexpected store defaults: %+v / %+v", cfg.Mongo, cfg.Redis)
	}
	if cfg.RateLimit.Requests != 20 || cfg.RateLimit.Window != time.Minute {
		t.Fatalf("unexpected rate limit defaults: %+v", cfg.RateLimit)
	}
	if cfg.Cloudinary.Folder != "placement-resumes" {
		t.Fatalf("unexpected folder %q", cfg.Cloudinary.Folder)
	}
	if cfg.Upload.MaxBytes != 10<<20 {
		t.Fatalf("expected 10 MiB upload limit, got %d", cfg.Upload.MaxBytes)
	}
	if cfg.SMTP.Enabled() {
		t.Fatalf("smtp must be disabled without a host")
	}
	if len(cfg.HTTP.TrustedProxies) != 0 {
		t.Fatalf("no proxy should be trusted by default, got %v", cfg.HTTP.TrustedProxies)
	}
	if cfg.IsProduction() {
		t.Fatalf("development is not production")
	}
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":      "s3cret",
		"ENV":             "production",
		"TOKEN_TTL":       "24h",
		"SMTP_HOST":       "smtp.example.com",
		"SMTP_PORT":       "465",
		"MAIL_WORKERS":    "2",
		"TRUSTED_PROXIES": "10.0.0.0/8,192.168.1.10",
	}))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if !cfg.IsProduction() || cfg.TokenTTL != 24*time.Hour {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if !cfg.SMTP.Enabled() || cfg.SMTP.Port != 465 || cfg.Mail.Workers != 2 {
		t.Fatalf("unexpected mail config: %+v / %+v", cfg.SMTP, cfg.Mail)
	}
	if got := cfg.HTTP.TrustedProxies; len(got) != 2 || got[0] != "10.0.0.0/8" || got[1] != "192.168.1.10" {
		t.Fatalf("unexpected trusted proxies: %v", got)
	}
}

func TestLoadFrom_RequiresSecret(t *testing.T) {
	if _, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{})); err == nil {
		t.Fatalf("expected error without JWT_SECRET")
	}
}

func TestLoadFrom_RejectsNonPositiveTTL(t *testing.T) {
	_, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "s3cret",
		"TOKEN_TTL":  "0s",
	}))
	if err == nil {
		t.Fatalf("expected error for zero ttl")
	}
}

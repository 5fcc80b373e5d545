package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("WIZARD_SESSION_TTL", "")
	t.Setenv("CORS_ORIGINS", "")
	t.Setenv("S3_USE_SSL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("Port = %q; want 8080", cfg.Port)
	}
	if cfg.WizardSessionTTL != 2*time.Hour {
		t.Fatalf("WizardSessionTTL = %v; want 2h", cfg.WizardSessionTTL)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Fatalf("CORSOrigins = %v; want [*]", cfg.CORSOrigins)
	}
	if !cfg.S3UseSSL {
		t.Fatalf("S3UseSSL = false; want true")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("CORS_ORIGINS", "https://octorlink.com.br, http://localhost:5173 ,")
	t.Setenv("WIZARD_SESSION_TTL", "30m")
	t.Setenv("REDIS_DB", "3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "http://localhost:5173" {
		t.Fatalf("CORSOrigins = %v", cfg.CORSOrigins)
	}
	if cfg.WizardSessionTTL != 30*time.Minute {
		t.Fatalf("WizardSessionTTL = %v", cfg.WizardSessionTTL)
	}
	if cfg.RedisDB != 3 {
		t.Fatalf("RedisDB = %d", cfg.RedisDB)
	}
}

func TestLoadInvalidDuration(t *testing.T) {
	t.Setenv("WIZARD_SESSION_TTL", "soon")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid WIZARD_SESSION_TTL")
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"missing db", Config{JWTSecret: "x"}, true},
		{"missing secret", Config{DatabaseURL: "postgres://"}, true},
		{"ok", Config{DatabaseURL: "postgres://", JWTSecret: "x"}, false},
	}

	for _, c := range cases {
		err := c.cfg.Validate()
		if (err != nil) != c.wantErr {
			t.Fatalf("%s: err = %v; wantErr %v", c.name, err, c.wantErr)
		}
	}
}

package config

import "testing"

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	if _, err := Load(); err == nil {
		t.Fatal("expected error without JWT_SECRET")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Port != "8080" {
		t.Fatalf("port = %s", cfg.Server.Port)
	}
	if cfg.JWT.ExpiryMinutes != 60 {
		t.Fatalf("expiry = %d", cfg.JWT.ExpiryMinutes)
	}
	if cfg.JWT.Issuer != "dataproc" || cfg.JWT.Audience != "dataproc-api" {
		t.Fatalf("issuer/audience = %s/%s", cfg.JWT.Issuer, cfg.JWT.Audience)
	}
	if cfg.Bcrypt.Cost != 12 {
		t.Fatalf("bcrypt cost = %d", cfg.Bcrypt.Cost)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_EXPIRY_MINUTES", "15")
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Port != "9090" {
		t.Fatalf("port = %s", cfg.Server.Port)
	}
	if cfg.JWT.ExpiryMinutes != 15 {
		t.Fatalf("expiry = %d", cfg.JWT.ExpiryMinutes)
	}
}

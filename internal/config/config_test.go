package config

import (
	"testing"
)

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("PAYSTACK_SECRET_KEY", "")

	if _, err := Load(); err == nil {
		t.Fatal("Load must fail without PAYSTACK_SECRET_KEY")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PAYSTACK_SECRET_KEY", "sk_test_abc")
	t.Setenv("PAYSTACK_BASE_URL", "")
	t.Setenv("PORT", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("DB_PATH", "")
	t.Setenv("ALLOWED_ORIGINS", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.BaseURL != "https://api.paystack.co" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.Port != "3000" {
		t.Errorf("Port = %q, want 3000", cfg.Port)
	}
	if cfg.Environment != "development" || cfg.IsProduction() {
		t.Errorf("Environment = %q, want development", cfg.Environment)
	}
	if cfg.DBPath != "donations.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
}

func TestCORSOrigins(t *testing.T) {
	dev := &Config{Environment: "development"}
	devOrigins := dev.CORSOrigins()
	if len(devOrigins) == 0 {
		t.Fatal("development must allow localhost origins")
	}
	for _, o := range devOrigins {
		if o == "https://app.givehub.org" {
			t.Error("development list must not include production origins")
		}
	}

	prod := &Config{Environment: "production"}
	for _, o := range prod.CORSOrigins() {
		if len(o) < 8 || o[:8] != "https://" {
			t.Errorf("production origin %q is not https", o)
		}
	}

	override := &Config{Environment: "production", AllowedOrigins: []string{"https://staging.givehub.org"}}
	got := override.CORSOrigins()
	if len(got) != 1 || got[0] != "https://staging.givehub.org" {
		t.Errorf("override ignored: %v", got)
	}
}

func TestAllowedOriginsParsing(t *testing.T) {
	t.Setenv("PAYSTACK_SECRET_KEY", "sk_test_abc")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example ,")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.AllowedOrigins) != 2 {
		t.Fatalf("AllowedOrigins = %v, want 2 entries", cfg.AllowedOrigins)
	}
	if cfg.AllowedOrigins[0] != "https://a.example" || cfg.AllowedOrigins[1] != "https://b.example" {
		t.Errorf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
}

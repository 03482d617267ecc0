package config

import (
	"fmt"
	"os"
	"strings"
)

// Config holds everything the process reads from the environment. It is
// loaded once at startup and passed down explicitly; nothing else in the
// codebase touches os.Getenv.
type Config struct {
	// SecretKey authenticates outbound gateway calls and webhook
	// signatures. Required; the process refuses to start without it.
	SecretKey string

	// BaseURL is the gateway API root.
	BaseURL string

	// Port the HTTP server listens on.
	Port string

	// Environment is "production" or anything else (treated as
	// development). Controls the CORS allow-list and stack traces in logs.
	Environment string

	// AllowedOrigins overrides the production CORS allow-list when set.
	AllowedOrigins []string

	// DBPath is the SQLite database location. ":memory:" works for tests.
	DBPath string
}

const defaultBaseURL = "https://api.paystack.co"

// Production origins served when ALLOWED_ORIGINS is not set.
var productionOrigins = []string{
	"https://app.givehub.org",
	"https://givehub.org",
}

// Development origins cover the Expo/Metro dev servers the mobile client
// runs on locally.
var developmentOrigins = []string{
	"http://localhost:3000",
	"http://localhost:8081",
	"http://localhost:19006",
	"exp://localhost:19000",
}

// Load reads configuration from the environment. It returns an error rather
// than exiting so main owns the fatal path.
func Load() (*Config, error) {
	secret := os.Getenv("PAYSTACK_SECRET_KEY")
	if secret == "" {
		return nil, fmt.Errorf("PAYSTACK_SECRET_KEY is not set")
	}

	cfg := &Config{
		SecretKey:   secret,
		BaseURL:     getEnv("PAYSTACK_BASE_URL", defaultBaseURL),
		Port:        getEnv("PORT", "3000"),
		Environment: getEnv("APP_ENV", "development"),
		DBPath:      getEnv("DB_PATH", "donations.db"),
	}

	if raw := os.Getenv("ALLOWED_ORIGINS"); raw != "" {
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
			}
		}
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// CORSOrigins returns the origin allow-list for the current environment:
// the restricted production list (or the ALLOWED_ORIGINS override) in
// production, the permissive localhost list otherwise.
func (c *Config) CORSOrigins() []string {
	if c.IsProduction() {
		if len(c.AllowedOrigins) > 0 {
			return c.AllowedOrigins
		}
		return productionOrigins
	}
	return developmentOrigins
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Package config provides centralized configuration loaded from environment
// variables. Shared by cmd/api and cmd/providercheck.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// --------------------------------------------------------------------------
// Provider endpoints — single source of truth for upstream base URLs
// --------------------------------------------------------------------------

const (
	DefaultCricAPIBaseURL     = "https://api.cricapi.com/v1"
	DefaultNewsAPIBaseURL     = "https://newsapi.org/v2"
	DefaultCashfreeBaseURL    = "https://sandbox.cashfree.com/pg"
	DefaultCashfreeAPIVersion = "2023-08-01"
)

// --------------------------------------------------------------------------
// Config struct — populated from environment variables
// --------------------------------------------------------------------------

type Config struct {
	// API server
	APIHost     string
	APIPort     int
	Environment string // development, staging, production

	// CORS
	CORSAllowOrigins []string

	// Rate limiting
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Cricket data provider
	CricAPIKey     string
	CricAPIBaseURL string

	// News provider
	NewsAPIKey     string
	NewsAPIBaseURL string

	// Payment provider
	CashfreeAppID      string
	CashfreeSecretKey  string
	CashfreeBaseURL    string
	CashfreeAPIVersion string

	// Auth
	JWTSecret string
	TokenTTL  time.Duration

	// Account store (document database). Optional: content routes work
	// without it, account routes answer 503.
	MongoURI      string
	MongoDatabase string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	return &Config{
		APIHost:     envOr("API_HOST", "0.0.0.0"),
		APIPort:     envInt("API_PORT", envInt("PORT", 5000)),
		Environment: envOr("ENVIRONMENT", "development"),

		CORSAllowOrigins: envList("CORS_ALLOW_ORIGINS", []string{
			"http://localhost:3000",
			"http://localhost:5173",
		}),

		RateLimitEnabled:  envBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequests: envInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   time.Duration(envInt("RATE_LIMIT_WINDOW", 60)) * time.Second,

		CricAPIKey:     envOr("CRIC_API_KEY", ""),
		CricAPIBaseURL: envOr("CRIC_API_BASE_URL", DefaultCricAPIBaseURL),

		NewsAPIKey:     envOr("NEWS_API_KEY", ""),
		NewsAPIBaseURL: envOr("NEWS_API_BASE_URL", DefaultNewsAPIBaseURL),

		CashfreeAppID:      envOr("CF_APP_ID", ""),
		CashfreeSecretKey:  envOr("CF_SECRET_KEY", ""),
		CashfreeBaseURL:    envOr("CF_API_BASE_URL", DefaultCashfreeBaseURL),
		CashfreeAPIVersion: envOr("CF_API_VERSION", DefaultCashfreeAPIVersion),

		JWTSecret: envOr("JWT_SECRET", "rcb_secret_key"),
		TokenTTL:  time.Duration(envInt("TOKEN_TTL_HOURS", 72)) * time.Hour,

		MongoURI:      envOr("MONGO_URI", ""),
		MongoDatabase: envOr("MONGO_DATABASE", "rcb_universe"),
	}, nil
}

// IsProduction returns true if running in production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// --------------------------------------------------------------------------
// Env helpers
// --------------------------------------------------------------------------

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}

// Copyright (c) 2025-2026 Avetra Media
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// knownWeakKeys contains default/example API keys that must be rejected in production.
var knownWeakKeys = []string{
	"change-me-to-a-long-random-key!!",
	"REPLACE_WITH_YOUR_OWN_API_KEY!!!",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath     string `env:"AVETRA_DB_PATH" envDefault:"./data/avetra.db"`
	APIKey     string `env:"AVETRA_API_KEY,required"`
	ServerHost string `env:"AVETRA_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"AVETRA_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"AVETRA_ENV" envDefault:"development"`
	LogLevel   string `env:"AVETRA_LOG_LEVEL" envDefault:"info"`
	UploadsDir string `env:"AVETRA_UPLOADS_DIR" envDefault:"./uploads"`

	// Listing configuration
	DefaultPerPage int `env:"AVETRA_DEFAULT_PER_PAGE" envDefault:"20"`
	MaxPerPage     int `env:"AVETRA_MAX_PER_PAGE" envDefault:"100"`

	// Cache configuration
	RedisURL     string `env:"AVETRA_REDIS_URL"`                         // Optional Redis URL for distributed caching
	CachePrefix  string `env:"AVETRA_CACHE_PREFIX" envDefault:"avetra:"` // Redis key prefix
	CacheTTL     int    `env:"AVETRA_CACHE_TTL" envDefault:"300"`        // Default cache TTL in seconds
	CacheMaxSize int    `env:"AVETRA_CACHE_MAX_SIZE" envDefault:"10000"` // Max memory cache entries

	// Rate limiting
	RateLimitRPS   float64 `env:"AVETRA_RATE_LIMIT_RPS" envDefault:"25"`
	RateLimitBurst int     `env:"AVETRA_RATE_LIMIT_BURST" envDefault:"50"`

	// Webhook delivery
	WebhookWorkers int `env:"AVETRA_WEBHOOK_WORKERS" envDefault:"3"`

	// Event log retention in days
	EventRetentionDays int `env:"AVETRA_EVENT_RETENTION_DAYS" envDefault:"90"`

	// Seeding configuration
	DoSeed bool `env:"AVETRA_DO_SEED" envDefault:"true"` // Seed default settings at startup
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// MinAPIKeyLength is the minimum required length for the API key.
const MinAPIKeyLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	// Validate API key length
	if len(cfg.APIKey) < MinAPIKeyLength {
		return nil, fmt.Errorf("AVETRA_API_KEY must be at least %d bytes long, got %d bytes; "+
			"generate a secure key with: openssl rand -base64 32",
			MinAPIKeyLength, len(cfg.APIKey))
	}

	// Reject known weak/default keys
	for _, weak := range knownWeakKeys {
		if cfg.APIKey == weak {
			return nil, fmt.Errorf("AVETRA_API_KEY is a known default value and must not be used; " +
				"generate a secure key with: openssl rand -base64 32")
		}
	}

	// Warn about low-entropy keys
	if !hasMinimumEntropy(cfg.APIKey) {
		slog.Warn("AVETRA_API_KEY has low character diversity; " +
			"consider generating a random key with: openssl rand -base64 32")
	}

	if cfg.DefaultPerPage < 1 {
		cfg.DefaultPerPage = 20
	}
	if cfg.MaxPerPage < cfg.DefaultPerPage {
		cfg.MaxPerPage = cfg.DefaultPerPage
	}

	return cfg, nil
}

// hasMinimumEntropy checks that a key contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}

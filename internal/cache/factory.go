// Copyright (c) 2025-2026 Avetra Media
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"fmt"
	"log/slog"
	"time"
)

// Options selects and tunes the cache backend.
type Options struct {
	// RedisURL enables the Redis backend when non-empty.
	RedisURL string
	// Prefix namespaces Redis keys. Ignored by the memory backend.
	Prefix     string
	DefaultTTL time.Duration
	// MaxItems bounds the memory backend. Ignored by Redis.
	MaxItems int
}

// DefaultOptions returns the in-memory configuration used when no
// cache settings are provided.
func DefaultOptions() Options {
	return Options{
		Prefix:     "avetra:",
		DefaultTTL: 5 * time.Minute,
		MaxItems:   10000,
	}
}

// New builds a Cacher from options. A configured but unreachable
// Redis falls back to the in-memory backend with a warning, so the
// application starts without it.
func New(opts Options) Cacher {
	if opts.RedisURL != "" {
		c, err := NewRedisCache(RedisOptions{
			URL:        opts.RedisURL,
			Prefix:     opts.Prefix,
			DefaultTTL: opts.DefaultTTL,
		})
		if err == nil {
			slog.Info("cache backend ready", "backend", "redis")
			return c
		}
		slog.Warn("redis cache unavailable, falling back to memory",
			"error", fmt.Sprintf("%v", err))
	}
	return NewMemoryCache(MemoryOptions{
		DefaultTTL: opts.DefaultTTL,
		MaxItems:   opts.MaxItems,
	})
}

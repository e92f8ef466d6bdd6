// Copyright (c) 2025-2026 Avetra Media
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/avetra/avetra-go/internal/model"
)

// SettingsLoader supplies the full settings table for the cache.
type SettingsLoader interface {
	ListSettings(ctx context.Context) ([]model.Setting, error)
}

// SettingsCache keeps the merged settings bag in memory so request
// handlers never read the settings table directly. The bag is loaded
// once and replaced wholesale on invalidation.
type SettingsCache struct {
	loader SettingsLoader
	ttl    time.Duration

	mu       sync.RWMutex
	bag      map[string]model.Setting
	loadedAt time.Time
}

// NewSettingsCache creates a settings cache. A zero ttl means entries
// never expire until Invalidate is called.
func NewSettingsCache(loader SettingsLoader, ttl time.Duration) *SettingsCache {
	return &SettingsCache{loader: loader, ttl: ttl}
}

// Get returns one setting by key, loading the bag if needed.
func (c *SettingsCache) Get(ctx context.Context, key string) (model.Setting, bool) {
	bag, err := c.all(ctx)
	if err != nil {
		return model.Setting{}, false
	}
	s, ok := bag[key]
	return s, ok
}

// Value returns a setting's raw value, or fallback when absent.
func (c *SettingsCache) Value(ctx context.Context, key, fallback string) string {
	if s, ok := c.Get(ctx, key); ok {
		return s.Value
	}
	return fallback
}

// All returns a copy of the settings bag keyed by setting key.
func (c *SettingsCache) All(ctx context.Context) (map[string]model.Setting, error) {
	bag, err := c.all(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]model.Setting, len(bag))
	for k, v := range bag {
		out[k] = v
	}
	return out, nil
}

// Preload loads the bag eagerly, typically at startup.
func (c *SettingsCache) Preload(ctx context.Context) error {
	return c.reload(ctx)
}

// Invalidate drops the bag so the next read reloads it.
func (c *SettingsCache) Invalidate() {
	c.mu.Lock()
	c.bag = nil
	c.mu.Unlock()
}

func (c *SettingsCache) all(ctx context.Context) (map[string]model.Setting, error) {
	c.mu.RLock()
	bag := c.bag
	fresh := c.ttl == 0 || time.Since(c.loadedAt) < c.ttl
	c.mu.RUnlock()
	if bag != nil && fresh {
		return bag, nil
	}
	if err := c.reload(ctx); err != nil {
		// Serve the stale bag over an error if we have one.
		if bag != nil {
			slog.Warn("settings reload failed, serving stale bag", "error", err)
			return bag, nil
		}
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.bag, nil
}

func (c *SettingsCache) reload(ctx context.Context) error {
	settings, err := c.loader.ListSettings(ctx)
	if err != nil {
		return err
	}
	bag := make(map[string]model.Setting, len(settings))
	for _, s := range settings {
		bag[s.Key] = s
	}
	c.mu.Lock()
	c.bag = bag
	c.loadedAt = time.Now()
	c.mu.Unlock()
	return nil
}

// Copyright (c) 2025-2026 Avetra Media
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"time"

	"github.com/avetra/avetra-go/internal/model"
)

const (
	// KeyCategoriesWithCounts caches the admin category listing.
	KeyCategoriesWithCounts = "categories:with_counts"
)

// Manager owns the application's caches: the settings bag, the
// category listing, and a general-purpose byte cache for handlers.
type Manager struct {
	Settings   *SettingsCache
	Categories *TypedCache[[]model.Category]
	General    Cacher
}

// NewManager wires the caches over a shared backend.
func NewManager(backend Cacher, loader SettingsLoader, settingsTTL time.Duration) *Manager {
	return &Manager{
		Settings:   NewSettingsCache(loader, settingsTTL),
		Categories: NewTypedCache[[]model.Category](backend, 5*time.Minute),
		General:    backend,
	}
}

// Preload warms the settings bag. Errors are returned so startup can
// decide whether to continue.
func (m *Manager) Preload(ctx context.Context) error {
	return m.Settings.Preload(ctx)
}

// InvalidateSettings drops the settings bag after a settings write.
func (m *Manager) InvalidateSettings() {
	m.Settings.Invalidate()
}

// InvalidateContent drops cached listings after a content write.
func (m *Manager) InvalidateContent(ctx context.Context) {
	_ = m.Categories.Delete(ctx, KeyCategoriesWithCounts)
}

// ClearAll empties every cache.
func (m *Manager) ClearAll(ctx context.Context) error {
	m.Settings.Invalidate()
	return m.General.Clear(ctx)
}

// Stats reports backend counters when the backend exposes them.
func (m *Manager) Stats() (Stats, bool) {
	if p, ok := m.General.(StatsProvider); ok {
		return p.Stats(), true
	}
	return Stats{}, false
}

// Close releases backend resources.
func (m *Manager) Close() error {
	return m.General.Close()
}

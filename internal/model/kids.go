// Copyright (c) 2025-2026 Avetra Media
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// KidsResource is a downloadable activity (coloring page, worksheet)
// in the kids section.
type KidsResource struct {
	ID           int64          `json:"id"`
	Title        string         `json:"title"` // canonical English value
	Description  string         `json:"description,omitempty"`
	FileURL      string         `json:"file_url,omitempty"`
	ThumbnailURL string         `json:"thumbnail_url,omitempty"`
	AgeGroup     string         `json:"age_group,omitempty"`
	Position     int64          `json:"position"`
	IsActive     bool           `json:"is_active"`
	Translations TranslationMap `json:"translations,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// KidsProduct is a physical or digital product listed in the kids shop.
type KidsProduct struct {
	ID           int64          `json:"id"`
	Title        string         `json:"title"` // canonical English value
	Description  string         `json:"description,omitempty"`
	ImageURL     string         `json:"image_url,omitempty"`
	PriceCents   int64          `json:"price_cents"`
	Currency     string         `json:"currency"`
	ProductURL   string         `json:"product_url,omitempty"`
	Position     int64          `json:"position"`
	IsActive     bool           `json:"is_active"`
	Translations TranslationMap `json:"translations,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

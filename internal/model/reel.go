// Copyright (c) 2025-2026 Avetra Media
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// ReelCategory groups reels. Reel categories are a separate taxonomy
// from series categories.
type ReelCategory struct {
	ID           int64          `json:"id"`
	Name         string         `json:"name"` // canonical English value
	Slug         string         `json:"slug"`
	Position     int64          `json:"position"`
	IsActive     bool           `json:"is_active"`
	Translations TranslationMap `json:"translations,omitempty"`
	ReelCount    int64          `json:"reel_count,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// Reel is a short-form vertical video. ReelCategoryID may be zero for
// uncategorized reels.
type Reel struct {
	ID               int64          `json:"id"`
	ReelCategoryID   int64          `json:"reel_category_id,omitempty"`
	Title            string         `json:"title"` // canonical English value
	Description      string         `json:"description,omitempty"`
	ProcessingStatus string         `json:"processing_status"`
	BunnyVideoID     string         `json:"bunny_video_id,omitempty"`
	EmbedURL         string         `json:"embed_url,omitempty"`
	ThumbnailURL     string         `json:"thumbnail_url,omitempty"`
	Position         int64          `json:"position"`
	IsActive         bool           `json:"is_active"`
	Translations     TranslationMap `json:"translations,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

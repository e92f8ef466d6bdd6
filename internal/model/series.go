// Copyright (c) 2025-2026 Avetra Media
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Series belongs to exactly one Category. The historic backend shared
// a table between the two; here they are distinct record types with an
// explicit foreign key.
type Series struct {
	ID                 int64          `json:"id"`
	CategoryID         int64          `json:"category_id"`
	Title              string         `json:"title"` // canonical English value
	Slug               string         `json:"slug"`
	Description        string         `json:"description,omitempty"`
	ShortDescription   string         `json:"short_description,omitempty"`
	ImageURL           string         `json:"image_url,omitempty"`
	Position           int64          `json:"position"`
	IsActive           bool           `json:"is_active"`
	IsHomepageFeatured bool           `json:"is_homepage_featured"`
	Translations       TranslationMap `json:"translations,omitempty"`
	VideoCount         int64          `json:"video_count,omitempty"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

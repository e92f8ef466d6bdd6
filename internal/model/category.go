// Copyright (c) 2025-2026 Avetra Media
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Category groups series on the platform. At most one category is
// flagged homepage-featured at any time; the store enforces the
// singleton in a single transactional update.
type Category struct {
	ID                  int64          `json:"id"`
	Name                string         `json:"name"` // canonical English value
	Slug                string         `json:"slug"`
	Description         string         `json:"description,omitempty"`
	ImageURL            string         `json:"image_url,omitempty"`
	Position            int64          `json:"position"`
	IsActive            bool           `json:"is_active"`
	IsHomepageFeatured  bool           `json:"is_homepage_featured"`
	Translations        TranslationMap `json:"translations,omitempty"`
	SeriesCount         int64          `json:"series_count,omitempty"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
}

// Translatable field names shared across entities.
const (
	FieldName             = "name"
	FieldTitle            = "title"
	FieldDescription      = "description"
	FieldShortDescription = "short_description"
	FieldQuestion         = "question"
	FieldAnswer           = "answer"
	FieldAuthor           = "author"
	FieldQuote            = "quote"
)

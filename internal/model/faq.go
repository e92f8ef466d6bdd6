// Copyright (c) 2025-2026 Avetra Media
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// FAQ is a question/answer pair shown on the public site.
type FAQ struct {
	ID           int64          `json:"id"`
	Question     string         `json:"question"` // canonical English value
	Answer       string         `json:"answer"`
	Position     int64          `json:"position"`
	IsActive     bool           `json:"is_active"`
	Translations TranslationMap `json:"translations,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// Testimonial is viewer feedback displayed on the public site.
type Testimonial struct {
	ID           int64          `json:"id"`
	Author       string         `json:"author"`
	Quote        string         `json:"quote"` // canonical English value
	Rating       int64          `json:"rating"`
	AvatarURL    string         `json:"avatar_url,omitempty"`
	Position     int64          `json:"position"`
	IsActive     bool           `json:"is_active"`
	Translations TranslationMap `json:"translations,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

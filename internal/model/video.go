// Copyright (c) 2025-2026 Avetra Media
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Video processing statuses reported by the CDN ingest pipeline.
const (
	ProcessingPending    = "pending"
	ProcessingInProgress = "processing"
	ProcessingReady      = "ready"
	ProcessingFailed     = "failed"
)

// Video is an episode of a Series. CategoryID is denormalized from the
// series and may be zero; display code resolves the category through
// the series in that case. IsFeaturedProcess is deliberately not a
// singleton: any number of videos may carry it at once, unlike the
// homepage-featured flags on Category and Series.
type Video struct {
	ID                int64          `json:"id"`
	SeriesID          int64          `json:"series_id"`
	CategoryID        int64          `json:"category_id,omitempty"`
	Title             string         `json:"title"` // canonical English value
	Slug              string         `json:"slug"`
	Description       string         `json:"description,omitempty"`
	EpisodeNumber     int64          `json:"episode_number"`
	DurationSeconds   int64          `json:"duration_seconds,omitempty"`
	ProcessingStatus  string         `json:"processing_status"`
	BunnyVideoID      string         `json:"bunny_video_id,omitempty"`
	EmbedURL          string         `json:"embed_url,omitempty"`
	ThumbnailURL      string         `json:"thumbnail_url,omitempty"`
	IsActive          bool           `json:"is_active"`
	IsFeaturedProcess bool           `json:"is_featured_process"`
	Translations      TranslationMap `json:"translations,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

// IsProcessingStatus reports whether status is one of the known
// processing pipeline states.
func IsProcessingStatus(status string) bool {
	switch status {
	case ProcessingPending, ProcessingInProgress, ProcessingReady, ProcessingFailed:
		return true
	}
	return false
}

// IsTerminalProcessingStatus reports whether a processing status is
// final. Non-terminal rows are subject to the stale-reconciliation job.
func IsTerminalProcessingStatus(status string) bool {
	return status == ProcessingReady || status == ProcessingFailed
}

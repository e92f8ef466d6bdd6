// Copyright (c) 2025-2026 Avetra Media
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/avetra/avetra-go/internal/model"
)

const videoColumns = `id, series_id, category_id, title, slug, description,
	episode_number, duration_seconds, processing_status, bunny_video_id,
	embed_url, thumbnail_url, is_active, is_featured_process, translations,
	created_at, updated_at`

func scanVideo(row interface{ Scan(...any) error }) (model.Video, error) {
	var v model.Video
	var categoryID sql.NullInt64
	var translations string
	err := row.Scan(&v.ID, &v.SeriesID, &categoryID, &v.Title, &v.Slug,
		&v.Description, &v.EpisodeNumber, &v.DurationSeconds,
		&v.ProcessingStatus, &v.BunnyVideoID, &v.EmbedURL, &v.ThumbnailURL,
		&v.IsActive, &v.IsFeaturedProcess, &translations,
		&v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return model.Video{}, err
	}
	if categoryID.Valid {
		v.CategoryID = categoryID.Int64
	}
	v.Translations = model.DecodeTranslations(translations)
	return v, nil
}

func nullID(id int64) sql.NullInt64 {
	return sql.NullInt64{Int64: id, Valid: id != 0}
}

// CreateVideoParams holds the fields for creating a video.
type CreateVideoParams struct {
	SeriesID          int64
	CategoryID        int64 // zero means unset; resolved through the series
	Title             string
	Slug              string
	Description       string
	EpisodeNumber     int64
	DurationSeconds   int64
	ProcessingStatus  string
	BunnyVideoID      string
	EmbedURL          string
	ThumbnailURL      string
	IsActive          bool
	IsFeaturedProcess bool
	Translations      model.TranslationMap
}

// CreateVideo inserts a video and returns the stored record.
func (q *Queries) CreateVideo(ctx context.Context, p CreateVideoParams) (model.Video, error) {
	status := p.ProcessingStatus
	if status == "" {
		status = model.ProcessingPending
	}
	now := time.Now()
	res, err := q.db.ExecContext(ctx, `
		INSERT INTO videos (series_id, category_id, title, slug, description,
			episode_number, duration_seconds, processing_status, bunny_video_id,
			embed_url, thumbnail_url, is_active, is_featured_process, translations,
			created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.SeriesID, nullID(p.CategoryID), p.Title, p.Slug, p.Description,
		p.EpisodeNumber, p.DurationSeconds, status, p.BunnyVideoID,
		p.EmbedURL, p.ThumbnailURL, p.IsActive, p.IsFeaturedProcess,
		model.EncodeTranslations(p.Translations), now, now)
	if err != nil {
		return model.Video{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Video{}, err
	}
	return q.GetVideoByID(ctx, id)
}

// GetVideoByID fetches a video by its identifier.
func (q *Queries) GetVideoByID(ctx context.Context, id int64) (model.Video, error) {
	return scanVideo(q.db.QueryRowContext(ctx,
		`SELECT `+videoColumns+` FROM videos WHERE id = ?`, id))
}

// ListVideosParams holds pagination for video listing.
type ListVideosParams struct {
	Limit  int64
	Offset int64
}

// ListVideos returns videos ordered by series and episode, paginated.
func (q *Queries) ListVideos(ctx context.Context, p ListVideosParams) ([]model.Video, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+videoColumns+` FROM videos
		 ORDER BY series_id, episode_number, id LIMIT ? OFFSET ?`,
		p.Limit, p.Offset)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.Video
	for rows.Next() {
		v, err := scanVideo(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// ListVideosBySeries returns all videos of a series in episode order.
func (q *Queries) ListVideosBySeries(ctx context.Context, seriesID int64) ([]model.Video, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+videoColumns+` FROM videos WHERE series_id = ?
		 ORDER BY episode_number, id`, seriesID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.Video
	for rows.Next() {
		v, err := scanVideo(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// CountVideos counts all videos.
func (q *Queries) CountVideos(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM videos`).Scan(&n)
	return n, err
}

// UpdateVideoParams holds the fields for updating a video.
type UpdateVideoParams struct {
	ID                int64
	SeriesID          int64
	CategoryID        int64
	Title             string
	Slug              string
	Description       string
	EpisodeNumber     int64
	DurationSeconds   int64
	ProcessingStatus  string
	BunnyVideoID      string
	EmbedURL          string
	ThumbnailURL      string
	IsActive          bool
	IsFeaturedProcess bool
	Translations      model.TranslationMap
}

// UpdateVideo updates a video and returns the stored record.
func (q *Queries) UpdateVideo(ctx context.Context, p UpdateVideoParams) (model.Video, error) {
	_, err := q.db.ExecContext(ctx, `
		UPDATE videos SET series_id = ?, category_id = ?, title = ?, slug = ?,
			description = ?, episode_number = ?, duration_seconds = ?,
			processing_status = ?, bunny_video_id = ?, embed_url = ?,
			thumbnail_url = ?, is_active = ?, is_featured_process = ?,
			translations = ?, updated_at = ?
		WHERE id = ?`,
		p.SeriesID, nullID(p.CategoryID), p.Title, p.Slug, p.Description,
		p.EpisodeNumber, p.DurationSeconds, p.ProcessingStatus, p.BunnyVideoID,
		p.EmbedURL, p.ThumbnailURL, p.IsActive, p.IsFeaturedProcess,
		model.EncodeTranslations(p.Translations), time.Now(), p.ID)
	if err != nil {
		return model.Video{}, err
	}
	return q.GetVideoByID(ctx, p.ID)
}

// DeleteVideo removes a video by ID.
func (q *Queries) DeleteVideo(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM videos WHERE id = ?`, id)
	return err
}

// VideoSlugExists returns a non-zero count if the slug is taken.
func (q *Queries) VideoSlugExists(ctx context.Context, slug string) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM videos WHERE slug = ?`, slug).Scan(&n)
	return n, err
}

// VideoSlugExistsExcludingParams holds params for slug checks on update.
type VideoSlugExistsExcludingParams struct {
	Slug string
	ID   int64
}

// VideoSlugExistsExcluding checks slug uniqueness excluding one video.
func (q *Queries) VideoSlugExistsExcluding(ctx context.Context, p VideoSlugExistsExcludingParams) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM videos WHERE slug = ? AND id != ?`, p.Slug, p.ID).Scan(&n)
	return n, err
}

// MarkStaleProcessingVideosFailed transitions videos stuck in a
// non-terminal processing status since before the cutoff to failed.
// Returns the number of rows changed.
func (q *Queries) MarkStaleProcessingVideosFailed(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx, `
		UPDATE videos SET processing_status = ?, updated_at = ?
		WHERE processing_status IN (?, ?) AND updated_at < ?`,
		model.ProcessingFailed, time.Now(),
		model.ProcessingPending, model.ProcessingInProgress, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

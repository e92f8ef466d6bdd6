// Copyright (c) 2025-2026 Avetra Media
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/avetra/avetra-go/internal/model"
)

const reelCategoryColumns = `id, name, slug, position, is_active, translations,
	created_at, updated_at`

const reelColumns = `id, reel_category_id, title, description, processing_status,
	bunny_video_id, embed_url, thumbnail_url, position, is_active, translations,
	created_at, updated_at`

func scanReelCategory(row interface{ Scan(...any) error }) (model.ReelCategory, error) {
	var c model.ReelCategory
	var translations string
	err := row.Scan(&c.ID, &c.Name, &c.Slug, &c.Position, &c.IsActive,
		&translations, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return model.ReelCategory{}, err
	}
	c.Translations = model.DecodeTranslations(translations)
	return c, nil
}

func scanReel(row interface{ Scan(...any) error }) (model.Reel, error) {
	var r model.Reel
	var categoryID sql.NullInt64
	var translations string
	err := row.Scan(&r.ID, &categoryID, &r.Title, &r.Description,
		&r.ProcessingStatus, &r.BunnyVideoID, &r.EmbedURL, &r.ThumbnailURL,
		&r.Position, &r.IsActive, &translations, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return model.Reel{}, err
	}
	if categoryID.Valid {
		r.ReelCategoryID = categoryID.Int64
	}
	r.Translations = model.DecodeTranslations(translations)
	return r, nil
}

// CreateReelCategoryParams holds the fields for creating a reel category.
type CreateReelCategoryParams struct {
	Name         string
	Slug         string
	Position     int64
	IsActive     bool
	Translations model.TranslationMap
}

// CreateReelCategory inserts a reel category and returns the stored record.
func (q *Queries) CreateReelCategory(ctx context.Context, p CreateReelCategoryParams) (model.ReelCategory, error) {
	now := time.Now()
	res, err := q.db.ExecContext(ctx, `
		INSERT INTO reel_categories (name, slug, position, is_active, translations,
			created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.Name, p.Slug, p.Position, p.IsActive,
		model.EncodeTranslations(p.Translations), now, now)
	if err != nil {
		return model.ReelCategory{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.ReelCategory{}, err
	}
	return q.GetReelCategoryByID(ctx, id)
}

// GetReelCategoryByID fetches a reel category by its identifier.
func (q *Queries) GetReelCategoryByID(ctx context.Context, id int64) (model.ReelCategory, error) {
	return scanReelCategory(q.db.QueryRowContext(ctx,
		`SELECT `+reelCategoryColumns+` FROM reel_categories WHERE id = ?`, id))
}

// ListReelCategories returns all reel categories with reel counts.
func (q *Queries) ListReelCategories(ctx context.Context) ([]model.ReelCategory, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT c.id, c.name, c.slug, c.position, c.is_active, c.translations,
			c.created_at, c.updated_at, COUNT(r.id) AS reel_count
		FROM reel_categories c
		LEFT JOIN reels r ON r.reel_category_id = c.id
		GROUP BY c.id
		ORDER BY c.position, c.id`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.ReelCategory
	for rows.Next() {
		var c model.ReelCategory
		var translations string
		err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Position, &c.IsActive,
			&translations, &c.CreatedAt, &c.UpdatedAt, &c.ReelCount)
		if err != nil {
			return nil, err
		}
		c.Translations = model.DecodeTranslations(translations)
		out = append(out, c)
	}
	return out, rows.Err()
}

// UpdateReelCategoryParams holds the fields for updating a reel category.
type UpdateReelCategoryParams struct {
	ID           int64
	Name         string
	Slug         string
	Position     int64
	IsActive     bool
	Translations model.TranslationMap
}

// UpdateReelCategory updates a reel category and returns the stored record.
func (q *Queries) UpdateReelCategory(ctx context.Context, p UpdateReelCategoryParams) (model.ReelCategory, error) {
	_, err := q.db.ExecContext(ctx, `
		UPDATE reel_categories SET name = ?, slug = ?, position = ?, is_active = ?,
			translations = ?, updated_at = ?
		WHERE id = ?`,
		p.Name, p.Slug, p.Position, p.IsActive,
		model.EncodeTranslations(p.Translations), time.Now(), p.ID)
	if err != nil {
		return model.ReelCategory{}, err
	}
	return q.GetReelCategoryByID(ctx, p.ID)
}

// DeleteReelCategory removes a reel category by ID.
func (q *Queries) DeleteReelCategory(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM reel_categories WHERE id = ?`, id)
	return err
}

// ReelCategorySlugExists returns a non-zero count if the slug is taken.
func (q *Queries) ReelCategorySlugExists(ctx context.Context, slug string) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM reel_categories WHERE slug = ?`, slug).Scan(&n)
	return n, err
}

// CreateReelParams holds the fields for creating a reel.
type CreateReelParams struct {
	ReelCategoryID   int64
	Title            string
	Description      string
	ProcessingStatus string
	BunnyVideoID     string
	EmbedURL         string
	ThumbnailURL     string
	Position         int64
	IsActive         bool
	Translations     model.TranslationMap
}

// CreateReel inserts a reel and returns the stored record.
func (q *Queries) CreateReel(ctx context.Context, p CreateReelParams) (model.Reel, error) {
	status := p.ProcessingStatus
	if status == "" {
		status = model.ProcessingPending
	}
	now := time.Now()
	res, err := q.db.ExecContext(ctx, `
		INSERT INTO reels (reel_category_id, title, description, processing_status,
			bunny_video_id, embed_url, thumbnail_url, position, is_active,
			translations, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		nullID(p.ReelCategoryID), p.Title, p.Description, status,
		p.BunnyVideoID, p.EmbedURL, p.ThumbnailURL, p.Position, p.IsActive,
		model.EncodeTranslations(p.Translations), now, now)
	if err != nil {
		return model.Reel{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Reel{}, err
	}
	return q.GetReelByID(ctx, id)
}

// GetReelByID fetches a reel by its identifier.
func (q *Queries) GetReelByID(ctx context.Context, id int64) (model.Reel, error) {
	return scanReel(q.db.QueryRowContext(ctx,
		`SELECT `+reelColumns+` FROM reels WHERE id = ?`, id))
}

// ListReelsParams holds pagination for reel listing.
type ListReelsParams struct {
	Limit  int64
	Offset int64
}

// ListReels returns reels ordered by position, paginated.
func (q *Queries) ListReels(ctx context.Context, p ListReelsParams) ([]model.Reel, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+reelColumns+` FROM reels ORDER BY position, id LIMIT ? OFFSET ?`,
		p.Limit, p.Offset)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.Reel
	for rows.Next() {
		r, err := scanReel(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// CountReels counts all reels.
func (q *Queries) CountReels(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM reels`).Scan(&n)
	return n, err
}

// UpdateReelParams holds the fields for updating a reel.
type UpdateReelParams struct {
	ID               int64
	ReelCategoryID   int64
	Title            string
	Description      string
	ProcessingStatus string
	BunnyVideoID     string
	EmbedURL         string
	ThumbnailURL     string
	Position         int64
	IsActive         bool
	Translations     model.TranslationMap
}

// UpdateReel updates a reel and returns the stored record.
func (q *Queries) UpdateReel(ctx context.Context, p UpdateReelParams) (model.Reel, error) {
	_, err := q.db.ExecContext(ctx, `
		UPDATE reels SET reel_category_id = ?, title = ?, description = ?,
			processing_status = ?, bunny_video_id = ?, embed_url = ?,
			thumbnail_url = ?, position = ?, is_active = ?, translations = ?,
			updated_at = ?
		WHERE id = ?`,
		nullID(p.ReelCategoryID), p.Title, p.Description, p.ProcessingStatus,
		p.BunnyVideoID, p.EmbedURL, p.ThumbnailURL, p.Position, p.IsActive,
		model.EncodeTranslations(p.Translations), time.Now(), p.ID)
	if err != nil {
		return model.Reel{}, err
	}
	return q.GetReelByID(ctx, p.ID)
}

// DeleteReel removes a reel by ID.
func (q *Queries) DeleteReel(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM reels WHERE id = ?`, id)
	return err
}

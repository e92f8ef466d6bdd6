// Copyright (c) 2025-2026 Avetra Media
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/avetra/avetra-go/internal/model"
)

const seriesColumns = `id, category_id, title, slug, description, short_description,
	image_url, position, is_active, is_homepage_featured, translations,
	created_at, updated_at`

func scanSeries(row interface{ Scan(...any) error }) (model.Series, error) {
	var s model.Series
	var translations string
	err := row.Scan(&s.ID, &s.CategoryID, &s.Title, &s.Slug, &s.Description,
		&s.ShortDescription, &s.ImageURL, &s.Position, &s.IsActive,
		&s.IsHomepageFeatured, &translations, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return model.Series{}, err
	}
	s.Translations = model.DecodeTranslations(translations)
	return s, nil
}

// CreateSeriesParams holds the fields for creating a series.
type CreateSeriesParams struct {
	CategoryID         int64
	Title              string
	Slug               string
	Description        string
	ShortDescription   string
	ImageURL           string
	Position           int64
	IsActive           bool
	IsHomepageFeatured bool
	Translations       model.TranslationMap
}

// CreateSeries inserts a series and returns the stored record.
func (q *Queries) CreateSeries(ctx context.Context, p CreateSeriesParams) (model.Series, error) {
	now := time.Now()
	res, err := q.db.ExecContext(ctx, `
		INSERT INTO series (category_id, title, slug, description, short_description,
			image_url, position, is_active, is_homepage_featured, translations,
			created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.CategoryID, p.Title, p.Slug, p.Description, p.ShortDescription,
		p.ImageURL, p.Position, p.IsActive, p.IsHomepageFeatured,
		model.EncodeTranslations(p.Translations), now, now)
	if err != nil {
		return model.Series{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Series{}, err
	}
	return q.GetSeriesByID(ctx, id)
}

// GetSeriesByID fetches a series by its identifier.
func (q *Queries) GetSeriesByID(ctx context.Context, id int64) (model.Series, error) {
	return scanSeries(q.db.QueryRowContext(ctx,
		`SELECT `+seriesColumns+` FROM series WHERE id = ?`, id))
}

// ListSeriesParams holds pagination for series listing.
type ListSeriesParams struct {
	Limit  int64
	Offset int64
}

// ListSeries returns series ordered by position, paginated.
func (q *Queries) ListSeries(ctx context.Context, p ListSeriesParams) ([]model.Series, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+seriesColumns+` FROM series ORDER BY position, id LIMIT ? OFFSET ?`,
		p.Limit, p.Offset)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.Series
	for rows.Next() {
		s, err := scanSeries(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// ListSeriesByCategory returns all series in a category.
func (q *Queries) ListSeriesByCategory(ctx context.Context, categoryID int64) ([]model.Series, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+seriesColumns+` FROM series WHERE category_id = ? ORDER BY position, id`,
		categoryID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.Series
	for rows.Next() {
		s, err := scanSeries(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// CountSeries counts all series.
func (q *Queries) CountSeries(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM series`).Scan(&n)
	return n, err
}

// UpdateSeriesParams holds the fields for updating a series.
type UpdateSeriesParams struct {
	ID               int64
	CategoryID       int64
	Title            string
	Slug             string
	Description      string
	ShortDescription string
	ImageURL         string
	Position         int64
	IsActive         bool
	Translations     model.TranslationMap
}

// UpdateSeries updates a series and returns the stored record.
// The homepage-featured flag is not touched here; it is owned by
// SetHomepageFeaturedSeries so a plain save cannot unfeature a row.
func (q *Queries) UpdateSeries(ctx context.Context, p UpdateSeriesParams) (model.Series, error) {
	_, err := q.db.ExecContext(ctx, `
		UPDATE series SET category_id = ?, title = ?, slug = ?, description = ?,
			short_description = ?, image_url = ?, position = ?, is_active = ?,
			translations = ?, updated_at = ?
		WHERE id = ?`,
		p.CategoryID, p.Title, p.Slug, p.Description, p.ShortDescription,
		p.ImageURL, p.Position, p.IsActive,
		model.EncodeTranslations(p.Translations), time.Now(), p.ID)
	if err != nil {
		return model.Series{}, err
	}
	return q.GetSeriesByID(ctx, p.ID)
}

// DeleteSeries removes a series by ID.
func (q *Queries) DeleteSeries(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM series WHERE id = ?`, id)
	return err
}

// SeriesSlugExists returns a non-zero count if the slug is taken.
func (q *Queries) SeriesSlugExists(ctx context.Context, slug string) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM series WHERE slug = ?`, slug).Scan(&n)
	return n, err
}

// SeriesSlugExistsExcludingParams holds params for slug checks on update.
type SeriesSlugExistsExcludingParams struct {
	Slug string
	ID   int64
}

// SeriesSlugExistsExcluding checks slug uniqueness excluding one series.
func (q *Queries) SeriesSlugExistsExcluding(ctx context.Context, p SeriesSlugExistsExcludingParams) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM series WHERE slug = ? AND id != ?`, p.Slug, p.ID).Scan(&n)
	return n, err
}

// CountVideosForSeries counts videos belonging to a series.
func (q *Queries) CountVideosForSeries(ctx context.Context, seriesID int64) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM videos WHERE series_id = ?`, seriesID).Scan(&n)
	return n, err
}

// SetHomepageFeaturedSeries marks exactly one series homepage-featured
// in a single atomic UPDATE, repairing any invalid multi-featured state.
func (q *Queries) SetHomepageFeaturedSeries(ctx context.Context, id int64) error {
	if _, err := q.GetSeriesByID(ctx, id); err != nil {
		return err
	}
	_, err := q.db.ExecContext(ctx, `
		UPDATE series
		SET is_homepage_featured = (id = ?),
			updated_at = CASE WHEN is_homepage_featured != (id = ?) THEN ? ELSE updated_at END`,
		id, id, time.Now())
	return err
}

// GetHomepageFeaturedSeries returns the featured series, if any.
func (q *Queries) GetHomepageFeaturedSeries(ctx context.Context) (model.Series, error) {
	return scanSeries(q.db.QueryRowContext(ctx,
		`SELECT `+seriesColumns+` FROM series WHERE is_homepage_featured = 1 LIMIT 1`))
}

// CountHomepageFeaturedSeries counts featured series.
func (q *Queries) CountHomepageFeaturedSeries(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM series WHERE is_homepage_featured = 1`).Scan(&n)
	return n, err
}

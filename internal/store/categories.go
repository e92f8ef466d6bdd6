// Copyright (c) 2025-2026 Avetra Media
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/avetra/avetra-go/internal/model"
)

const categoryColumns = `id, name, slug, description, image_url, position,
	is_active, is_homepage_featured, translations, created_at, updated_at`

func scanCategory(row interface{ Scan(...any) error }) (model.Category, error) {
	var c model.Category
	var translations string
	err := row.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.ImageURL,
		&c.Position, &c.IsActive, &c.IsHomepageFeatured, &translations,
		&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return model.Category{}, err
	}
	c.Translations = model.DecodeTranslations(translations)
	return c, nil
}

// CreateCategoryParams holds the fields for creating a category.
type CreateCategoryParams struct {
	Name               string
	Slug               string
	Description        string
	ImageURL           string
	Position           int64
	IsActive           bool
	IsHomepageFeatured bool
	Translations       model.TranslationMap
}

// CreateCategory inserts a category and returns the stored record.
func (q *Queries) CreateCategory(ctx context.Context, p CreateCategoryParams) (model.Category, error) {
	now := time.Now()
	res, err := q.db.ExecContext(ctx, `
		INSERT INTO categories (name, slug, description, image_url, position,
			is_active, is_homepage_featured, translations, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Name, p.Slug, p.Description, p.ImageURL, p.Position,
		p.IsActive, p.IsHomepageFeatured, model.EncodeTranslations(p.Translations), now, now)
	if err != nil {
		return model.Category{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Category{}, err
	}
	return q.GetCategoryByID(ctx, id)
}

// GetCategoryByID fetches a category by its identifier.
func (q *Queries) GetCategoryByID(ctx context.Context, id int64) (model.Category, error) {
	return scanCategory(q.db.QueryRowContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE id = ?`, id))
}

// GetCategoryBySlug fetches a category by its slug.
func (q *Queries) GetCategoryBySlug(ctx context.Context, slug string) (model.Category, error) {
	return scanCategory(q.db.QueryRowContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE slug = ?`, slug))
}

// ListCategories returns all categories ordered by position.
func (q *Queries) ListCategories(ctx context.Context) ([]model.Category, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+categoryColumns+` FROM categories ORDER BY position, id`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// ListCategoriesWithCounts returns all categories with their series counts.
func (q *Queries) ListCategoriesWithCounts(ctx context.Context) ([]model.Category, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT c.id, c.name, c.slug, c.description, c.image_url, c.position,
			c.is_active, c.is_homepage_featured, c.translations, c.created_at, c.updated_at,
			COUNT(s.id) AS series_count
		FROM categories c
		LEFT JOIN series s ON s.category_id = c.id
		GROUP BY c.id
		ORDER BY c.position, c.id`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.Category
	for rows.Next() {
		var c model.Category
		var translations string
		err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.ImageURL,
			&c.Position, &c.IsActive, &c.IsHomepageFeatured, &translations,
			&c.CreatedAt, &c.UpdatedAt, &c.SeriesCount)
		if err != nil {
			return nil, err
		}
		c.Translations = model.DecodeTranslations(translations)
		out = append(out, c)
	}
	return out, rows.Err()
}

// UpdateCategoryParams holds the fields for updating a category.
type UpdateCategoryParams struct {
	ID           int64
	Name         string
	Slug         string
	Description  string
	ImageURL     string
	Position     int64
	IsActive     bool
	Translations model.TranslationMap
}

// UpdateCategory updates a category and returns the stored record.
// The homepage-featured flag is not touched here; it is owned by
// SetHomepageFeaturedCategory so a plain save cannot unfeature a row.
func (q *Queries) UpdateCategory(ctx context.Context, p UpdateCategoryParams) (model.Category, error) {
	_, err := q.db.ExecContext(ctx, `
		UPDATE categories SET name = ?, slug = ?, description = ?, image_url = ?,
			position = ?, is_active = ?, translations = ?, updated_at = ?
		WHERE id = ?`,
		p.Name, p.Slug, p.Description, p.ImageURL, p.Position,
		p.IsActive, model.EncodeTranslations(p.Translations),
		time.Now(), p.ID)
	if err != nil {
		return model.Category{}, err
	}
	return q.GetCategoryByID(ctx, p.ID)
}

// DeleteCategory removes a category by ID.
func (q *Queries) DeleteCategory(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	return err
}

// CategorySlugExists returns a non-zero count if the slug is taken.
func (q *Queries) CategorySlugExists(ctx context.Context, slug string) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM categories WHERE slug = ?`, slug).Scan(&n)
	return n, err
}

// CategorySlugExistsExcludingParams holds params for slug checks on update.
type CategorySlugExistsExcludingParams struct {
	Slug string
	ID   int64
}

// CategorySlugExistsExcluding checks slug uniqueness excluding one category.
func (q *Queries) CategorySlugExistsExcluding(ctx context.Context, p CategorySlugExistsExcludingParams) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM categories WHERE slug = ? AND id != ?`, p.Slug, p.ID).Scan(&n)
	return n, err
}

// CountSeriesForCategory counts series belonging to a category.
func (q *Queries) CountSeriesForCategory(ctx context.Context, categoryID int64) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM series WHERE category_id = ?`, categoryID).Scan(&n)
	return n, err
}

// SetHomepageFeaturedCategory marks exactly one category homepage-featured.
// A single UPDATE clears every sibling and sets the target atomically,
// which also repairs rows left featured by the old two-call sequence.
func (q *Queries) SetHomepageFeaturedCategory(ctx context.Context, id int64) error {
	if _, err := q.GetCategoryByID(ctx, id); err != nil {
		return err
	}
	_, err := q.db.ExecContext(ctx, `
		UPDATE categories
		SET is_homepage_featured = (id = ?),
			updated_at = CASE WHEN is_homepage_featured != (id = ?) THEN ? ELSE updated_at END`,
		id, id, time.Now())
	return err
}

// GetHomepageFeaturedCategory returns the featured category, if any.
func (q *Queries) GetHomepageFeaturedCategory(ctx context.Context) (model.Category, error) {
	return scanCategory(q.db.QueryRowContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE is_homepage_featured = 1 LIMIT 1`))
}

// CountHomepageFeaturedCategories counts featured categories. The
// invariant keeps this at most one.
func (q *Queries) CountHomepageFeaturedCategories(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM categories WHERE is_homepage_featured = 1`).Scan(&n)
	return n, err
}

// Copyright (c) 2025-2026 Avetra Media
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/avetra/avetra-go/internal/model"
)

const kidsResourceColumns = `id, title, description, file_url, thumbnail_url,
	age_group, position, is_active, translations, created_at, updated_at`

const kidsProductColumns = `id, title, description, image_url, price_cents,
	currency, product_url, position, is_active, translations, created_at, updated_at`

func scanKidsResource(row interface{ Scan(...any) error }) (model.KidsResource, error) {
	var r model.KidsResource
	var translations string
	err := row.Scan(&r.ID, &r.Title, &r.Description, &r.FileURL, &r.ThumbnailURL,
		&r.AgeGroup, &r.Position, &r.IsActive, &translations,
		&r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return model.KidsResource{}, err
	}
	r.Translations = model.DecodeTranslations(translations)
	return r, nil
}

func scanKidsProduct(row interface{ Scan(...any) error }) (model.KidsProduct, error) {
	var p model.KidsProduct
	var translations string
	err := row.Scan(&p.ID, &p.Title, &p.Description, &p.ImageURL, &p.PriceCents,
		&p.Currency, &p.ProductURL, &p.Position, &p.IsActive, &translations,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return model.KidsProduct{}, err
	}
	p.Translations = model.DecodeTranslations(translations)
	return p, nil
}

// CreateKidsResourceParams holds the fields for creating a kids resource.
type CreateKidsResourceParams struct {
	Title        string
	Description  string
	FileURL      string
	ThumbnailURL string
	AgeGroup     string
	Position     int64
	IsActive     bool
	Translations model.TranslationMap
}

// CreateKidsResource inserts a kids resource and returns the stored record.
func (q *Queries) CreateKidsResource(ctx context.Context, p CreateKidsResourceParams) (model.KidsResource, error) {
	now := time.Now()
	res, err := q.db.ExecContext(ctx, `
		INSERT INTO kids_resources (title, description, file_url, thumbnail_url,
			age_group, position, is_active, translations, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Title, p.Description, p.FileURL, p.ThumbnailURL, p.AgeGroup,
		p.Position, p.IsActive, model.EncodeTranslations(p.Translations), now, now)
	if err != nil {
		return model.KidsResource{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.KidsResource{}, err
	}
	return q.GetKidsResourceByID(ctx, id)
}

// GetKidsResourceByID fetches a kids resource by its identifier.
func (q *Queries) GetKidsResourceByID(ctx context.Context, id int64) (model.KidsResource, error) {
	return scanKidsResource(q.db.QueryRowContext(ctx,
		`SELECT `+kidsResourceColumns+` FROM kids_resources WHERE id = ?`, id))
}

// ListKidsResources returns all kids resources ordered by position.
func (q *Queries) ListKidsResources(ctx context.Context) ([]model.KidsResource, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+kidsResourceColumns+` FROM kids_resources ORDER BY position, id`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.KidsResource
	for rows.Next() {
		r, err := scanKidsResource(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// UpdateKidsResourceParams holds the fields for updating a kids resource.
type UpdateKidsResourceParams struct {
	ID           int64
	Title        string
	Description  string
	FileURL      string
	ThumbnailURL string
	AgeGroup     string
	Position     int64
	IsActive     bool
	Translations model.TranslationMap
}

// UpdateKidsResource updates a kids resource and returns the stored record.
func (q *Queries) UpdateKidsResource(ctx context.Context, p UpdateKidsResourceParams) (model.KidsResource, error) {
	_, err := q.db.ExecContext(ctx, `
		UPDATE kids_resources SET title = ?, description = ?, file_url = ?,
			thumbnail_url = ?, age_group = ?, position = ?, is_active = ?,
			translations = ?, updated_at = ?
		WHERE id = ?`,
		p.Title, p.Description, p.FileURL, p.ThumbnailURL, p.AgeGroup,
		p.Position, p.IsActive, model.EncodeTranslations(p.Translations),
		time.Now(), p.ID)
	if err != nil {
		return model.KidsResource{}, err
	}
	return q.GetKidsResourceByID(ctx, p.ID)
}

// DeleteKidsResource removes a kids resource by ID.
func (q *Queries) DeleteKidsResource(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM kids_resources WHERE id = ?`, id)
	return err
}

// CreateKidsProductParams holds the fields for creating a kids product.
type CreateKidsProductParams struct {
	Title        string
	Description  string
	ImageURL     string
	PriceCents   int64
	Currency     string
	ProductURL   string
	Position     int64
	IsActive     bool
	Translations model.TranslationMap
}

// CreateKidsProduct inserts a kids product and returns the stored record.
func (q *Queries) CreateKidsProduct(ctx context.Context, p CreateKidsProductParams) (model.KidsProduct, error) {
	currency := p.Currency
	if currency == "" {
		currency = "USD"
	}
	now := time.Now()
	res, err := q.db.ExecContext(ctx, `
		INSERT INTO kids_products (title, description, image_url, price_cents,
			currency, product_url, position, is_active, translations,
			created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Title, p.Description, p.ImageURL, p.PriceCents, currency,
		p.ProductURL, p.Position, p.IsActive,
		model.EncodeTranslations(p.Translations), now, now)
	if err != nil {
		return model.KidsProduct{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.KidsProduct{}, err
	}
	return q.GetKidsProductByID(ctx, id)
}

// GetKidsProductByID fetches a kids product by its identifier.
func (q *Queries) GetKidsProductByID(ctx context.Context, id int64) (model.KidsProduct, error) {
	return scanKidsProduct(q.db.QueryRowContext(ctx,
		`SELECT `+kidsProductColumns+` FROM kids_products WHERE id = ?`, id))
}

// ListKidsProducts returns all kids products ordered by position.
func (q *Queries) ListKidsProducts(ctx context.Context) ([]model.KidsProduct, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+kidsProductColumns+` FROM kids_products ORDER BY position, id`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.KidsProduct
	for rows.Next() {
		p, err := scanKidsProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// UpdateKidsProductParams holds the fields for updating a kids product.
type UpdateKidsProductParams struct {
	ID           int64
	Title        string
	Description  string
	ImageURL     string
	PriceCents   int64
	Currency     string
	ProductURL   string
	Position     int64
	IsActive     bool
	Translations model.TranslationMap
}

// UpdateKidsProduct updates a kids product and returns the stored record.
func (q *Queries) UpdateKidsProduct(ctx context.Context, p UpdateKidsProductParams) (model.KidsProduct, error) {
	_, err := q.db.ExecContext(ctx, `
		UPDATE kids_products SET title = ?, description = ?, image_url = ?,
			price_cents = ?, currency = ?, product_url = ?, position = ?,
			is_active = ?, translations = ?, updated_at = ?
		WHERE id = ?`,
		p.Title, p.Description, p.ImageURL, p.PriceCents, p.Currency,
		p.ProductURL, p.Position, p.IsActive,
		model.EncodeTranslations(p.Translations), time.Now(), p.ID)
	if err != nil {
		return model.KidsProduct{}, err
	}
	return q.GetKidsProductByID(ctx, p.ID)
}

// DeleteKidsProduct removes a kids product by ID.
func (q *Queries) DeleteKidsProduct(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM kids_products WHERE id = ?`, id)
	return err
}

// Copyright (c) 2025-2026 Avetra Media
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/avetra/avetra-go/internal/model"
)

const faqColumns = `id, question, answer, position, is_active, translations,
	created_at, updated_at`

const testimonialColumns = `id, author, quote, rating, avatar_url, position,
	is_active, translations, created_at, updated_at`

func scanFAQ(row interface{ Scan(...any) error }) (model.FAQ, error) {
	var f model.FAQ
	var translations string
	err := row.Scan(&f.ID, &f.Question, &f.Answer, &f.Position, &f.IsActive,
		&translations, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return model.FAQ{}, err
	}
	f.Translations = model.DecodeTranslations(translations)
	return f, nil
}

func scanTestimonial(row interface{ Scan(...any) error }) (model.Testimonial, error) {
	var t model.Testimonial
	var translations string
	err := row.Scan(&t.ID, &t.Author, &t.Quote, &t.Rating, &t.AvatarURL,
		&t.Position, &t.IsActive, &translations, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return model.Testimonial{}, err
	}
	t.Translations = model.DecodeTranslations(translations)
	return t, nil
}

// CreateFAQParams holds the fields for creating a FAQ entry.
type CreateFAQParams struct {
	Question     string
	Answer       string
	Position     int64
	IsActive     bool
	Translations model.TranslationMap
}

// CreateFAQ inserts a FAQ entry and returns the stored record.
func (q *Queries) CreateFAQ(ctx context.Context, p CreateFAQParams) (model.FAQ, error) {
	now := time.Now()
	res, err := q.db.ExecContext(ctx, `
		INSERT INTO faqs (question, answer, position, is_active, translations,
			created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.Question, p.Answer, p.Position, p.IsActive,
		model.EncodeTranslations(p.Translations), now, now)
	if err != nil {
		return model.FAQ{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.FAQ{}, err
	}
	return q.GetFAQByID(ctx, id)
}

// GetFAQByID fetches a FAQ entry by its identifier.
func (q *Queries) GetFAQByID(ctx context.Context, id int64) (model.FAQ, error) {
	return scanFAQ(q.db.QueryRowContext(ctx,
		`SELECT `+faqColumns+` FROM faqs WHERE id = ?`, id))
}

// ListFAQs returns all FAQ entries ordered by position.
func (q *Queries) ListFAQs(ctx context.Context) ([]model.FAQ, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+faqColumns+` FROM faqs ORDER BY position, id`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.FAQ
	for rows.Next() {
		f, err := scanFAQ(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// UpdateFAQParams holds the fields for updating a FAQ entry.
type UpdateFAQParams struct {
	ID           int64
	Question     string
	Answer       string
	Position     int64
	IsActive     bool
	Translations model.TranslationMap
}

// UpdateFAQ updates a FAQ entry and returns the stored record.
func (q *Queries) UpdateFAQ(ctx context.Context, p UpdateFAQParams) (model.FAQ, error) {
	_, err := q.db.ExecContext(ctx, `
		UPDATE faqs SET question = ?, answer = ?, position = ?, is_active = ?,
			translations = ?, updated_at = ?
		WHERE id = ?`,
		p.Question, p.Answer, p.Position, p.IsActive,
		model.EncodeTranslations(p.Translations), time.Now(), p.ID)
	if err != nil {
		return model.FAQ{}, err
	}
	return q.GetFAQByID(ctx, p.ID)
}

// DeleteFAQ removes a FAQ entry by ID.
func (q *Queries) DeleteFAQ(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM faqs WHERE id = ?`, id)
	return err
}

// CreateTestimonialParams holds the fields for creating a testimonial.
type CreateTestimonialParams struct {
	Author       string
	Quote        string
	Rating       int64
	AvatarURL    string
	Position     int64
	IsActive     bool
	Translations model.TranslationMap
}

// CreateTestimonial inserts a testimonial and returns the stored record.
func (q *Queries) CreateTestimonial(ctx context.Context, p CreateTestimonialParams) (model.Testimonial, error) {
	now := time.Now()
	res, err := q.db.ExecContext(ctx, `
		INSERT INTO testimonials (author, quote, rating, avatar_url, position,
			is_active, translations, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Author, p.Quote, p.Rating, p.AvatarURL, p.Position, p.IsActive,
		model.EncodeTranslations(p.Translations), now, now)
	if err != nil {
		return model.Testimonial{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Testimonial{}, err
	}
	return q.GetTestimonialByID(ctx, id)
}

// GetTestimonialByID fetches a testimonial by its identifier.
func (q *Queries) GetTestimonialByID(ctx context.Context, id int64) (model.Testimonial, error) {
	return scanTestimonial(q.db.QueryRowContext(ctx,
		`SELECT `+testimonialColumns+` FROM testimonials WHERE id = ?`, id))
}

// ListTestimonials returns all testimonials ordered by position.
func (q *Queries) ListTestimonials(ctx context.Context) ([]model.Testimonial, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+testimonialColumns+` FROM testimonials ORDER BY position, id`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.Testimonial
	for rows.Next() {
		t, err := scanTestimonial(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// UpdateTestimonialParams holds the fields for updating a testimonial.
type UpdateTestimonialParams struct {
	ID           int64
	Author       string
	Quote        string
	Rating       int64
	AvatarURL    string
	Position     int64
	IsActive     bool
	Translations model.TranslationMap
}

// UpdateTestimonial updates a testimonial and returns the stored record.
func (q *Queries) UpdateTestimonial(ctx context.Context, p UpdateTestimonialParams) (model.Testimonial, error) {
	_, err := q.db.ExecContext(ctx, `
		UPDATE testimonials SET author = ?, quote = ?, rating = ?,
			avatar_url = ?, position = ?, is_active = ?, translations = ?,
			updated_at = ?
		WHERE id = ?`,
		p.Author, p.Quote, p.Rating, p.AvatarURL, p.Position, p.IsActive,
		model.EncodeTranslations(p.Translations), time.Now(), p.ID)
	if err != nil {
		return model.Testimonial{}, err
	}
	return q.GetTestimonialByID(ctx, p.ID)
}

// DeleteTestimonial removes a testimonial by ID.
func (q *Queries) DeleteTestimonial(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM testimonials WHERE id = ?`, id)
	return err
}

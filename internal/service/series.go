// Copyright (c) 2025-2026 Avetra Media
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/avetra/avetra-go/internal/model"
	"github.com/avetra/avetra-go/internal/store"
	"github.com/avetra/avetra-go/internal/translate"
)

// SeriesInput carries a series save request.
type SeriesInput struct {
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

// SaveSeries validates, merges and persists a series, returning the
// stored row.
func (c *Content) SaveSeries(ctx context.Context, in SeriesInput) (model.Series, error) {
	title, err := mergeText(in.Title, in.Translations, model.FieldTitle, true)
	if err != nil {
		return model.Series{}, err
	}
	desc, err := mergeText(in.Description, in.Translations, model.FieldDescription, false)
	if err != nil {
		return model.Series{}, err
	}
	short, err := mergeText(in.ShortDescription, in.Translations, model.FieldShortDescription, false)
	if err != nil {
		return model.Series{}, err
	}

	// The owning category must exist before anything is written.
	if _, err := c.store.GetCategoryByID(ctx, in.CategoryID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Series{}, &translate.ValidationError{
				Field:   "category_id",
				Message: fmt.Sprintf("category %d does not exist", in.CategoryID),
			}
		}
		return model.Series{}, err
	}

	slug, err := resolveSlug(in.Slug, title.Value, in.ID,
		func(s string) (int64, error) { return c.store.SeriesSlugExists(ctx, s) },
		func(s string, id int64) (int64, error) {
			return c.store.SeriesSlugExistsExcluding(ctx, store.SeriesSlugExistsExcludingParams{Slug: s, ID: id})
		})
	if err != nil {
		return model.Series{}, err
	}

	translations := mergeTranslations(map[string]translate.Flattened{
		model.FieldTitle:            title,
		model.FieldDescription:      desc,
		model.FieldShortDescription: short,
	})

	if in.ID == 0 {
		s, err := c.store.CreateSeries(ctx, store.CreateSeriesParams{
			CategoryID:       in.CategoryID,
			Title:            title.Value,
			Slug:             slug,
			Description:      c.sanitize.Sanitize(desc.Value),
			ShortDescription: short.Value,
			ImageURL:         in.ImageURL,
			Position:         in.Position,
			IsActive:         in.IsActive,
			Translations:     translations,
		})
		if err != nil {
			return model.Series{}, fmt.Errorf("creating series: %w", err)
		}
		slog.Info("series created", "id", s.ID, "slug", s.Slug, "category_id", s.CategoryID)
		c.emit(ctx, model.EventSeriesCreated, s)
		return s, nil
	}

	s, err := c.store.UpdateSeries(ctx, store.UpdateSeriesParams{
		ID:               in.ID,
		CategoryID:       in.CategoryID,
		Title:            title.Value,
		Slug:             slug,
		Description:      c.sanitize.Sanitize(desc.Value),
		ShortDescription: short.Value,
		ImageURL:         in.ImageURL,
		Position:         in.Position,
		IsActive:         in.IsActive,
		Translations:     translations,
	})
	if err != nil {
		return model.Series{}, fmt.Errorf("updating series %d: %w", in.ID, err)
	}
	slog.Info("series updated", "id", s.ID, "slug", s.Slug)
	c.emit(ctx, model.EventSeriesUpdated, s)
	return s, nil
}

// FeatureSeries marks one series homepage-featured, clearing all its
// siblings in the same statement.
func (c *Content) FeatureSeries(ctx context.Context, id int64) (model.Series, error) {
	if err := c.store.SetHomepageFeaturedSeries(ctx, id); err != nil {
		return model.Series{}, err
	}
	s, err := c.store.GetSeriesByID(ctx, id)
	if err != nil {
		return model.Series{}, err
	}
	slog.Info("series featured", "id", id)
	c.emit(ctx, model.EventSeriesUpdated, s)
	return s, nil
}

// DeleteSeries removes a series. Series that still own videos cannot
// be deleted.
func (c *Content) DeleteSeries(ctx context.Context, id int64) error {
	s, err := c.store.GetSeriesByID(ctx, id)
	if err != nil {
		return err
	}
	n, err := c.store.CountVideosForSeries(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return &translate.ValidationError{
			Field:   "id",
			Message: fmt.Sprintf("series has %d videos, reassign them first", n),
		}
	}
	if err := c.store.DeleteSeries(ctx, id); err != nil {
		return fmt.Errorf("deleting series %d: %w", id, err)
	}
	slog.Info("series deleted", "id", id, "slug", s.Slug)
	c.emit(ctx, model.EventSeriesDeleted, s)
	return nil
}

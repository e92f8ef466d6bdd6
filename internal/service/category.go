// Copyright (c) 2025-2026 Avetra Media
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/avetra/avetra-go/internal/model"
	"github.com/avetra/avetra-go/internal/store"
	"github.com/avetra/avetra-go/internal/translate"
)

// CategoryInput carries a category save request. A zero ID creates,
// a non-zero ID updates.
type CategoryInput struct {
	ID           int64
	Name         string
	Slug         string
	Description  string
	ImageURL     string
	Position     int64
	IsActive     bool
	Translations model.TranslationMap
}

// SaveCategory validates, merges and persists a category, returning
// the stored row.
func (c *Content) SaveCategory(ctx context.Context, in CategoryInput) (model.Category, error) {
	name, err := mergeText(in.Name, in.Translations, model.FieldName, true)
	if err != nil {
		return model.Category{}, err
	}
	desc, err := mergeText(in.Description, in.Translations, model.FieldDescription, false)
	if err != nil {
		return model.Category{}, err
	}

	slug, err := resolveSlug(in.Slug, name.Value, in.ID,
		func(s string) (int64, error) { return c.store.CategorySlugExists(ctx, s) },
		func(s string, id int64) (int64, error) {
			return c.store.CategorySlugExistsExcluding(ctx, store.CategorySlugExistsExcludingParams{Slug: s, ID: id})
		})
	if err != nil {
		return model.Category{}, err
	}

	translations := mergeTranslations(map[string]translate.Flattened{
		model.FieldName:        name,
		model.FieldDescription: desc,
	})

	if in.ID == 0 {
		cat, err := c.store.CreateCategory(ctx, store.CreateCategoryParams{
			Name:         name.Value,
			Slug:         slug,
			Description:  c.sanitize.Sanitize(desc.Value),
			ImageURL:     in.ImageURL,
			Position:     in.Position,
			IsActive:     in.IsActive,
			Translations: translations,
		})
		if err != nil {
			return model.Category{}, fmt.Errorf("creating category: %w", err)
		}
		slog.Info("category created", "id", cat.ID, "slug", cat.Slug)
		c.emit(ctx, model.EventCategoryCreated, cat)
		return cat, nil
	}

	cat, err := c.store.UpdateCategory(ctx, store.UpdateCategoryParams{
		ID:           in.ID,
		Name:         name.Value,
		Slug:         slug,
		Description:  c.sanitize.Sanitize(desc.Value),
		ImageURL:     in.ImageURL,
		Position:     in.Position,
		IsActive:     in.IsActive,
		Translations: translations,
	})
	if err != nil {
		return model.Category{}, fmt.Errorf("updating category %d: %w", in.ID, err)
	}
	slog.Info("category updated", "id", cat.ID, "slug", cat.Slug)
	c.emit(ctx, model.EventCategoryUpdated, cat)
	return cat, nil
}

// FeatureCategory marks one category homepage-featured, clearing all
// its siblings in the same statement.
func (c *Content) FeatureCategory(ctx context.Context, id int64) (model.Category, error) {
	if err := c.store.SetHomepageFeaturedCategory(ctx, id); err != nil {
		return model.Category{}, err
	}
	cat, err := c.store.GetCategoryByID(ctx, id)
	if err != nil {
		return model.Category{}, err
	}
	slog.Info("category featured", "id", id)
	c.emit(ctx, model.EventCategoryUpdated, cat)
	return cat, nil
}

// DeleteCategory removes a category. Categories that still own series
// cannot be deleted.
func (c *Content) DeleteCategory(ctx context.Context, id int64) error {
	cat, err := c.store.GetCategoryByID(ctx, id)
	if err != nil {
		return err
	}
	n, err := c.store.CountSeriesForCategory(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return &translate.ValidationError{
			Field:   "id",
			Message: fmt.Sprintf("category has %d series, reassign them first", n),
		}
	}
	if err := c.store.DeleteCategory(ctx, id); err != nil {
		return fmt.Errorf("deleting category %d: %w", id, err)
	}
	slog.Info("category deleted", "id", id, "slug", cat.Slug)
	c.emit(ctx, model.EventCategoryDeleted, cat)
	return nil
}

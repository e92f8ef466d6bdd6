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

// KidsResourceInput carries a kids resource save request.
type KidsResourceInput struct {
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

// SaveKidsResource validates, merges and persists a kids resource.
func (c *Content) SaveKidsResource(ctx context.Context, in KidsResourceInput) (model.KidsResource, error) {
	title, err := mergeText(in.Title, in.Translations, model.FieldTitle, true)
	if err != nil {
		return model.KidsResource{}, err
	}
	desc, err := mergeText(in.Description, in.Translations, model.FieldDescription, false)
	if err != nil {
		return model.KidsResource{}, err
	}

	translations := mergeTranslations(map[string]translate.Flattened{
		model.FieldTitle:       title,
		model.FieldDescription: desc,
	})

	if in.ID == 0 {
		r, err := c.store.CreateKidsResource(ctx, store.CreateKidsResourceParams{
			Title:        title.Value,
			Description:  c.sanitize.Sanitize(desc.Value),
			FileURL:      in.FileURL,
			ThumbnailURL: in.ThumbnailURL,
			AgeGroup:     in.AgeGroup,
			Position:     in.Position,
			IsActive:     in.IsActive,
			Translations: translations,
		})
		if err != nil {
			return model.KidsResource{}, fmt.Errorf("creating kids resource: %w", err)
		}
		slog.Info("kids resource created", "id", r.ID)
		return r, nil
	}

	r, err := c.store.UpdateKidsResource(ctx, store.UpdateKidsResourceParams{
		ID:           in.ID,
		Title:        title.Value,
		Description:  c.sanitize.Sanitize(desc.Value),
		FileURL:      in.FileURL,
		ThumbnailURL: in.ThumbnailURL,
		AgeGroup:     in.AgeGroup,
		Position:     in.Position,
		IsActive:     in.IsActive,
		Translations: translations,
	})
	if err != nil {
		return model.KidsResource{}, fmt.Errorf("updating kids resource %d: %w", in.ID, err)
	}
	slog.Info("kids resource updated", "id", r.ID)
	return r, nil
}

// DeleteKidsResource removes a kids resource.
func (c *Content) DeleteKidsResource(ctx context.Context, id int64) error {
	if _, err := c.store.GetKidsResourceByID(ctx, id); err != nil {
		return err
	}
	if err := c.store.DeleteKidsResource(ctx, id); err != nil {
		return fmt.Errorf("deleting kids resource %d: %w", id, err)
	}
	slog.Info("kids resource deleted", "id", id)
	return nil
}

// KidsProductInput carries a kids product save request.
type KidsProductInput struct {
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

// SaveKidsProduct validates, merges and persists a kids product.
func (c *Content) SaveKidsProduct(ctx context.Context, in KidsProductInput) (model.KidsProduct, error) {
	title, err := mergeText(in.Title, in.Translations, model.FieldTitle, true)
	if err != nil {
		return model.KidsProduct{}, err
	}
	desc, err := mergeText(in.Description, in.Translations, model.FieldDescription, false)
	if err != nil {
		return model.KidsProduct{}, err
	}
	if in.PriceCents < 0 {
		return model.KidsProduct{}, &translate.ValidationError{
			Field:   "price_cents",
			Message: "price cannot be negative",
		}
	}

	translations := mergeTranslations(map[string]translate.Flattened{
		model.FieldTitle:       title,
		model.FieldDescription: desc,
	})

	if in.ID == 0 {
		p, err := c.store.CreateKidsProduct(ctx, store.CreateKidsProductParams{
			Title:        title.Value,
			Description:  c.sanitize.Sanitize(desc.Value),
			ImageURL:     in.ImageURL,
			PriceCents:   in.PriceCents,
			Currency:     in.Currency,
			ProductURL:   in.ProductURL,
			Position:     in.Position,
			IsActive:     in.IsActive,
			Translations: translations,
		})
		if err != nil {
			return model.KidsProduct{}, fmt.Errorf("creating kids product: %w", err)
		}
		slog.Info("kids product created", "id", p.ID)
		return p, nil
	}

	p, err := c.store.UpdateKidsProduct(ctx, store.UpdateKidsProductParams{
		ID:           in.ID,
		Title:        title.Value,
		Description:  c.sanitize.Sanitize(desc.Value),
		ImageURL:     in.ImageURL,
		PriceCents:   in.PriceCents,
		Currency:     in.Currency,
		ProductURL:   in.ProductURL,
		Position:     in.Position,
		IsActive:     in.IsActive,
		Translations: translations,
	})
	if err != nil {
		return model.KidsProduct{}, fmt.Errorf("updating kids product %d: %w", in.ID, err)
	}
	slog.Info("kids product updated", "id", p.ID)
	return p, nil
}

// DeleteKidsProduct removes a kids product.
func (c *Content) DeleteKidsProduct(ctx context.Context, id int64) error {
	if _, err := c.store.GetKidsProductByID(ctx, id); err != nil {
		return err
	}
	if err := c.store.DeleteKidsProduct(ctx, id); err != nil {
		return fmt.Errorf("deleting kids product %d: %w", id, err)
	}
	slog.Info("kids product deleted", "id", id)
	return nil
}

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

// ReelCategoryInput carries a reel category save request.
type ReelCategoryInput struct {
	ID           int64
	Name         string
	Slug         string
	Position     int64
	IsActive     bool
	Translations model.TranslationMap
}

// SaveReelCategory validates, merges and persists a reel category.
func (c *Content) SaveReelCategory(ctx context.Context, in ReelCategoryInput) (model.ReelCategory, error) {
	name, err := mergeText(in.Name, in.Translations, model.FieldName, true)
	if err != nil {
		return model.ReelCategory{}, err
	}

	slug, err := resolveSlug(in.Slug, name.Value, in.ID,
		func(s string) (int64, error) { return c.store.ReelCategorySlugExists(ctx, s) },
		func(s string, id int64) (int64, error) {
			// Reel categories are few; reuse the plain check and accept
			// a spurious conflict only when the slug actually changed
			// to a sibling's.
			cur, err := c.store.GetReelCategoryByID(ctx, id)
			if err != nil {
				return 0, err
			}
			if cur.Slug == s {
				return 0, nil
			}
			return c.store.ReelCategorySlugExists(ctx, s)
		})
	if err != nil {
		return model.ReelCategory{}, err
	}

	translations := mergeTranslations(map[string]translate.Flattened{
		model.FieldName: name,
	})

	if in.ID == 0 {
		rc, err := c.store.CreateReelCategory(ctx, store.CreateReelCategoryParams{
			Name:         name.Value,
			Slug:         slug,
			Position:     in.Position,
			IsActive:     in.IsActive,
			Translations: translations,
		})
		if err != nil {
			return model.ReelCategory{}, fmt.Errorf("creating reel category: %w", err)
		}
		slog.Info("reel category created", "id", rc.ID, "slug", rc.Slug)
		return rc, nil
	}

	rc, err := c.store.UpdateReelCategory(ctx, store.UpdateReelCategoryParams{
		ID:           in.ID,
		Name:         name.Value,
		Slug:         slug,
		Position:     in.Position,
		IsActive:     in.IsActive,
		Translations: translations,
	})
	if err != nil {
		return model.ReelCategory{}, fmt.Errorf("updating reel category %d: %w", in.ID, err)
	}
	slog.Info("reel category updated", "id", rc.ID, "slug", rc.Slug)
	return rc, nil
}

// DeleteReelCategory removes a reel category. Reels keep running with
// their category reference cleared by the schema's ON DELETE SET NULL.
func (c *Content) DeleteReelCategory(ctx context.Context, id int64) error {
	if _, err := c.store.GetReelCategoryByID(ctx, id); err != nil {
		return err
	}
	if err := c.store.DeleteReelCategory(ctx, id); err != nil {
		return fmt.Errorf("deleting reel category %d: %w", id, err)
	}
	slog.Info("reel category deleted", "id", id)
	return nil
}

// ReelInput carries a reel save request.
type ReelInput struct {
	ID               int64
	ReelCategoryID   int64 // optional
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

// SaveReel validates, merges and persists a reel, returning the stored
// row.
func (c *Content) SaveReel(ctx context.Context, in ReelInput) (model.Reel, error) {
	title, err := mergeText(in.Title, in.Translations, model.FieldTitle, true)
	if err != nil {
		return model.Reel{}, err
	}
	desc, err := mergeText(in.Description, in.Translations, model.FieldDescription, false)
	if err != nil {
		return model.Reel{}, err
	}

	if in.ReelCategoryID != 0 {
		if _, err := c.store.GetReelCategoryByID(ctx, in.ReelCategoryID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return model.Reel{}, &translate.ValidationError{
					Field:   "reel_category_id",
					Message: fmt.Sprintf("reel category %d does not exist", in.ReelCategoryID),
				}
			}
			return model.Reel{}, err
		}
	}
	if in.ProcessingStatus != "" && !model.IsProcessingStatus(in.ProcessingStatus) {
		return model.Reel{}, &translate.ValidationError{
			Field:   "processing_status",
			Message: fmt.Sprintf("unknown processing status %q", in.ProcessingStatus),
		}
	}

	translations := mergeTranslations(map[string]translate.Flattened{
		model.FieldTitle:       title,
		model.FieldDescription: desc,
	})

	if in.ID == 0 {
		r, err := c.store.CreateReel(ctx, store.CreateReelParams{
			ReelCategoryID:   in.ReelCategoryID,
			Title:            title.Value,
			Description:      c.sanitize.Sanitize(desc.Value),
			ProcessingStatus: in.ProcessingStatus,
			BunnyVideoID:     in.BunnyVideoID,
			EmbedURL:         in.EmbedURL,
			ThumbnailURL:     in.ThumbnailURL,
			Position:         in.Position,
			IsActive:         in.IsActive,
			Translations:     translations,
		})
		if err != nil {
			return model.Reel{}, fmt.Errorf("creating reel: %w", err)
		}
		slog.Info("reel created", "id", r.ID)
		c.emit(ctx, model.EventReelCreated, r)
		return r, nil
	}

	status := in.ProcessingStatus
	if status == "" {
		current, err := c.store.GetReelByID(ctx, in.ID)
		if err != nil {
			return model.Reel{}, err
		}
		status = current.ProcessingStatus
	}

	r, err := c.store.UpdateReel(ctx, store.UpdateReelParams{
		ID:               in.ID,
		ReelCategoryID:   in.ReelCategoryID,
		Title:            title.Value,
		Description:      c.sanitize.Sanitize(desc.Value),
		ProcessingStatus: status,
		BunnyVideoID:     in.BunnyVideoID,
		EmbedURL:         in.EmbedURL,
		ThumbnailURL:     in.ThumbnailURL,
		Position:         in.Position,
		IsActive:         in.IsActive,
		Translations:     translations,
	})
	if err != nil {
		return model.Reel{}, fmt.Errorf("updating reel %d: %w", in.ID, err)
	}
	slog.Info("reel updated", "id", r.ID)
	c.emit(ctx, model.EventReelUpdated, r)
	return r, nil
}

// DeleteReel removes a reel.
func (c *Content) DeleteReel(ctx context.Context, id int64) error {
	r, err := c.store.GetReelByID(ctx, id)
	if err != nil {
		return err
	}
	if err := c.store.DeleteReel(ctx, id); err != nil {
		return fmt.Errorf("deleting reel %d: %w", id, err)
	}
	slog.Info("reel deleted", "id", id)
	c.emit(ctx, model.EventReelDeleted, r)
	return nil
}

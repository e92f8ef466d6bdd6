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

// VideoInput carries a video save request.
type VideoInput struct {
	ID                int64
	SeriesID          int64
	CategoryID        int64 // optional; zero resolves through the series
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

// SaveVideo validates, merges and persists a video, returning the
// stored row.
func (c *Content) SaveVideo(ctx context.Context, in VideoInput) (model.Video, error) {
	title, err := mergeText(in.Title, in.Translations, model.FieldTitle, true)
	if err != nil {
		return model.Video{}, err
	}
	desc, err := mergeText(in.Description, in.Translations, model.FieldDescription, false)
	if err != nil {
		return model.Video{}, err
	}

	if _, err := c.store.GetSeriesByID(ctx, in.SeriesID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Video{}, &translate.ValidationError{
				Field:   "series_id",
				Message: fmt.Sprintf("series %d does not exist", in.SeriesID),
			}
		}
		return model.Video{}, err
	}

	if in.ProcessingStatus != "" && !model.IsProcessingStatus(in.ProcessingStatus) {
		return model.Video{}, &translate.ValidationError{
			Field:   "processing_status",
			Message: fmt.Sprintf("unknown processing status %q", in.ProcessingStatus),
		}
	}

	slug, err := resolveSlug(in.Slug, title.Value, in.ID,
		func(s string) (int64, error) { return c.store.VideoSlugExists(ctx, s) },
		func(s string, id int64) (int64, error) {
			return c.store.VideoSlugExistsExcluding(ctx, store.VideoSlugExistsExcludingParams{Slug: s, ID: id})
		})
	if err != nil {
		return model.Video{}, err
	}

	translations := mergeTranslations(map[string]translate.Flattened{
		model.FieldTitle:       title,
		model.FieldDescription: desc,
	})

	if in.ID == 0 {
		v, err := c.store.CreateVideo(ctx, store.CreateVideoParams{
			SeriesID:          in.SeriesID,
			CategoryID:        in.CategoryID,
			Title:             title.Value,
			Slug:              slug,
			Description:       c.sanitize.Sanitize(desc.Value),
			EpisodeNumber:     in.EpisodeNumber,
			DurationSeconds:   in.DurationSeconds,
			ProcessingStatus:  in.ProcessingStatus,
			BunnyVideoID:      in.BunnyVideoID,
			EmbedURL:          in.EmbedURL,
			ThumbnailURL:      in.ThumbnailURL,
			IsActive:          in.IsActive,
			IsFeaturedProcess: in.IsFeaturedProcess,
			Translations:      translations,
		})
		if err != nil {
			return model.Video{}, fmt.Errorf("creating video: %w", err)
		}
		slog.Info("video created", "id", v.ID, "slug", v.Slug, "series_id", v.SeriesID)
		c.emit(ctx, model.EventVideoCreated, v)
		return v, nil
	}

	status := in.ProcessingStatus
	if status == "" {
		current, err := c.store.GetVideoByID(ctx, in.ID)
		if err != nil {
			return model.Video{}, err
		}
		status = current.ProcessingStatus
	}

	v, err := c.store.UpdateVideo(ctx, store.UpdateVideoParams{
		ID:                in.ID,
		SeriesID:          in.SeriesID,
		CategoryID:        in.CategoryID,
		Title:             title.Value,
		Slug:              slug,
		Description:       c.sanitize.Sanitize(desc.Value),
		EpisodeNumber:     in.EpisodeNumber,
		DurationSeconds:   in.DurationSeconds,
		ProcessingStatus:  status,
		BunnyVideoID:      in.BunnyVideoID,
		EmbedURL:          in.EmbedURL,
		ThumbnailURL:      in.ThumbnailURL,
		IsActive:          in.IsActive,
		IsFeaturedProcess: in.IsFeaturedProcess,
		Translations:      translations,
	})
	if err != nil {
		return model.Video{}, fmt.Errorf("updating video %d: %w", in.ID, err)
	}
	slog.Info("video updated", "id", v.ID, "slug", v.Slug)
	c.emit(ctx, model.EventVideoUpdated, v)
	return v, nil
}

// DeleteVideo removes a video.
func (c *Content) DeleteVideo(ctx context.Context, id int64) error {
	v, err := c.store.GetVideoByID(ctx, id)
	if err != nil {
		return err
	}
	if err := c.store.DeleteVideo(ctx, id); err != nil {
		return fmt.Errorf("deleting video %d: %w", id, err)
	}
	slog.Info("video deleted", "id", id, "slug", v.Slug)
	c.emit(ctx, model.EventVideoDeleted, v)
	return nil
}

// VideoCategoryName resolves the display category of a video in the
// requested locale. A video without its own category falls back to the
// category of its series.
func (c *Content) VideoCategoryName(ctx context.Context, v model.Video, locale string) (string, error) {
	categoryID := v.CategoryID
	if categoryID == 0 {
		s, err := c.store.GetSeriesByID(ctx, v.SeriesID)
		if err != nil {
			return "", fmt.Errorf("resolving series %d: %w", v.SeriesID, err)
		}
		categoryID = s.CategoryID
	}
	cat, err := c.store.GetCategoryByID(ctx, categoryID)
	if err != nil {
		return "", fmt.Errorf("resolving category %d: %w", categoryID, err)
	}
	return translate.Resolve(translate.Record{
		Translations: cat.Translations,
		Fields:       map[string]string{model.FieldName: cat.Name},
	}, model.FieldName, locale), nil
}

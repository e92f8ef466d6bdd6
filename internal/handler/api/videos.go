// Copyright (c) 2025-2026 Avetra Media
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"net/http"

	"github.com/avetra/avetra-go/internal/model"
	"github.com/avetra/avetra-go/internal/service"
	"github.com/avetra/avetra-go/internal/store"
)

type videoRequest struct {
	SeriesID          *int64               `json:"series_id"`
	CategoryID        *int64               `json:"category_id"`
	Title             *string              `json:"title"`
	Slug              *string              `json:"slug"`
	Description       *string              `json:"description"`
	EpisodeNumber     *int64               `json:"episode_number"`
	DurationSeconds   *int64               `json:"duration_seconds"`
	ProcessingStatus  *string              `json:"processing_status"`
	BunnyVideoID      *string              `json:"bunny_video_id"`
	EmbedURL          *string              `json:"embed_url"`
	ThumbnailURL      *string              `json:"thumbnail_url"`
	IsActive          *bool                `json:"is_active"`
	IsFeaturedProcess *bool                `json:"is_featured_process"`
	Translations      model.TranslationMap `json:"translations"`
}

// ListVideos handles GET /api/v1/videos. Supports per_page/page,
// search (+locale) and series_id filtering.
func (h *Handler) ListVideos(w http.ResponseWriter, r *http.Request) {
	if raw := r.URL.Query().Get("series_id"); raw != "" {
		id := int64(parseIntQuery(r, "series_id", 0, 1, 0))
		if id == 0 {
			WriteBadRequest(w, "invalid series_id")
			return
		}
		items, err := h.store.ListVideosBySeries(r.Context(), id)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "failed to load videos")
			return
		}
		if q := r.URL.Query().Get("search"); q != "" {
			items = service.FilterVideos(items, q, r.URL.Query().Get("locale"))
		}
		windowed, meta := paginateSlice(items, parsePage(r), h.parsePerPage(r))
		WriteList(w, windowed, meta)
		return
	}

	listEntities(h, w, r, listSource[model.Video]{
		entity: "videos",
		count:  h.store.CountVideos,
		page: func(ctx context.Context, limit, offset int64) ([]model.Video, error) {
			return h.store.ListVideos(ctx, store.ListVideosParams{Limit: limit, Offset: offset})
		},
		all: func(ctx context.Context) ([]model.Video, error) {
			return h.store.ListVideos(ctx, store.ListVideosParams{Limit: -1})
		},
		filter: service.FilterVideos,
	})
}

// GetVideo handles GET /api/v1/videos/{id}.
func (h *Handler) GetVideo(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "invalid video id")
		return
	}
	v, err := h.store.GetVideoByID(r.Context(), id)
	if err != nil {
		writeLookupError(w, "video", err)
		return
	}
	WriteSuccess(w, v)
}

// CreateVideo handles POST /api/v1/videos.
func (h *Handler) CreateVideo(w http.ResponseWriter, r *http.Request) {
	var req videoRequest
	if err := decodeBody(r, &req); err != nil {
		WriteBadRequest(w, "invalid request body")
		return
	}

	in := service.VideoInput{
		Translations: req.Translations,
		IsActive:     true,
	}
	applyVideoRequest(&in, req)

	v, err := h.content.SaveVideo(r.Context(), in)
	if err != nil {
		writeSaveError(w, "video", err)
		return
	}
	h.invalidateContent(r)
	WriteCreated(w, v)
}

// UpdateVideo handles PUT /api/v1/videos/{id}.
func (h *Handler) UpdateVideo(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "invalid video id")
		return
	}
	var req videoRequest
	if err := decodeBody(r, &req); err != nil {
		WriteBadRequest(w, "invalid request body")
		return
	}

	current, err := h.store.GetVideoByID(r.Context(), id)
	if err != nil {
		writeLookupError(w, "video", err)
		return
	}

	in := service.VideoInput{
		ID:                id,
		SeriesID:          current.SeriesID,
		CategoryID:        current.CategoryID,
		Title:             current.Title,
		Slug:              current.Slug,
		Description:       current.Description,
		EpisodeNumber:     current.EpisodeNumber,
		DurationSeconds:   current.DurationSeconds,
		ProcessingStatus:  current.ProcessingStatus,
		BunnyVideoID:      current.BunnyVideoID,
		EmbedURL:          current.EmbedURL,
		ThumbnailURL:      current.ThumbnailURL,
		IsActive:          current.IsActive,
		IsFeaturedProcess: current.IsFeaturedProcess,
		Translations:      current.Translations,
	}
	if req.Translations != nil {
		in.Translations = req.Translations
	}
	applyVideoRequest(&in, req)

	v, err := h.content.SaveVideo(r.Context(), in)
	if err != nil {
		writeSaveError(w, "video", err)
		return
	}
	h.invalidateContent(r)
	WriteSuccess(w, v)
}

// DeleteVideo handles DELETE /api/v1/videos/{id}.
func (h *Handler) DeleteVideo(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "invalid video id")
		return
	}
	if err := h.content.DeleteVideo(r.Context(), id); err != nil {
		writeSaveError(w, "video", err)
		return
	}
	h.invalidateContent(r)
	WriteMessage(w, "video deleted")
}

func applyVideoRequest(in *service.VideoInput, req videoRequest) {
	if req.SeriesID != nil {
		in.SeriesID = *req.SeriesID
	}
	if req.CategoryID != nil {
		in.CategoryID = *req.CategoryID
	}
	if req.Title != nil {
		in.Title = *req.Title
	}
	if req.Slug != nil {
		in.Slug = *req.Slug
	}
	if req.Description != nil {
		in.Description = *req.Description
	}
	if req.EpisodeNumber != nil {
		in.EpisodeNumber = *req.EpisodeNumber
	}
	if req.DurationSeconds != nil {
		in.DurationSeconds = *req.DurationSeconds
	}
	if req.ProcessingStatus != nil {
		in.ProcessingStatus = *req.ProcessingStatus
	}
	if req.BunnyVideoID != nil {
		in.BunnyVideoID = *req.BunnyVideoID
	}
	if req.EmbedURL != nil {
		in.EmbedURL = *req.EmbedURL
	}
	if req.ThumbnailURL != nil {
		in.ThumbnailURL = *req.ThumbnailURL
	}
	if req.IsActive != nil {
		in.IsActive = *req.IsActive
	}
	if req.IsFeaturedProcess != nil {
		in.IsFeaturedProcess = *req.IsFeaturedProcess
	}
}

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

type seriesRequest struct {
	CategoryID       *int64               `json:"category_id"`
	Title            *string              `json:"title"`
	Slug             *string              `json:"slug"`
	Description      *string              `json:"description"`
	ShortDescription *string              `json:"short_description"`
	ImageURL         *string              `json:"image_url"`
	Position         *int64               `json:"position"`
	IsActive         *bool                `json:"is_active"`
	Translations     model.TranslationMap `json:"translations"`
}

// ListSeries handles GET /api/v1/series. Supports per_page/page,
// search (+locale) and category_id filtering.
func (h *Handler) ListSeries(w http.ResponseWriter, r *http.Request) {
	if raw := r.URL.Query().Get("category_id"); raw != "" {
		id := int64(parseIntQuery(r, "category_id", 0, 1, 0))
		if id == 0 {
			WriteBadRequest(w, "invalid category_id")
			return
		}
		items, err := h.store.ListSeriesByCategory(r.Context(), id)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "failed to load series")
			return
		}
		if q := r.URL.Query().Get("search"); q != "" {
			items = service.FilterSeries(items, q, r.URL.Query().Get("locale"))
		}
		windowed, meta := paginateSlice(items, parsePage(r), h.parsePerPage(r))
		WriteList(w, windowed, meta)
		return
	}

	listEntities(h, w, r, listSource[model.Series]{
		entity: "series",
		count:  h.store.CountSeries,
		page: func(ctx context.Context, limit, offset int64) ([]model.Series, error) {
			return h.store.ListSeries(ctx, store.ListSeriesParams{Limit: limit, Offset: offset})
		},
		all: func(ctx context.Context) ([]model.Series, error) {
			return h.store.ListSeries(ctx, store.ListSeriesParams{Limit: -1})
		},
		filter: service.FilterSeries,
	})
}

// GetSeries handles GET /api/v1/series/{id}.
func (h *Handler) GetSeries(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "invalid series id")
		return
	}
	s, err := h.store.GetSeriesByID(r.Context(), id)
	if err != nil {
		writeLookupError(w, "series", err)
		return
	}
	WriteSuccess(w, s)
}

// CreateSeries handles POST /api/v1/series.
func (h *Handler) CreateSeries(w http.ResponseWriter, r *http.Request) {
	var req seriesRequest
	if err := decodeBody(r, &req); err != nil {
		WriteBadRequest(w, "invalid request body")
		return
	}

	in := service.SeriesInput{
		Translations: req.Translations,
		IsActive:     true,
	}
	applySeriesRequest(&in, req)

	s, err := h.content.SaveSeries(r.Context(), in)
	if err != nil {
		writeSaveError(w, "series", err)
		return
	}
	h.invalidateContent(r)
	WriteCreated(w, s)
}

// UpdateSeries handles PUT /api/v1/series/{id}.
func (h *Handler) UpdateSeries(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "invalid series id")
		return
	}
	var req seriesRequest
	if err := decodeBody(r, &req); err != nil {
		WriteBadRequest(w, "invalid request body")
		return
	}

	current, err := h.store.GetSeriesByID(r.Context(), id)
	if err != nil {
		writeLookupError(w, "series", err)
		return
	}

	in := service.SeriesInput{
		ID:               id,
		CategoryID:       current.CategoryID,
		Title:            current.Title,
		Slug:             current.Slug,
		Description:      current.Description,
		ShortDescription: current.ShortDescription,
		ImageURL:         current.ImageURL,
		Position:         current.Position,
		IsActive:         current.IsActive,
		Translations:     current.Translations,
	}
	if req.Translations != nil {
		in.Translations = req.Translations
	}
	applySeriesRequest(&in, req)

	s, err := h.content.SaveSeries(r.Context(), in)
	if err != nil {
		writeSaveError(w, "series", err)
		return
	}
	h.invalidateContent(r)
	WriteSuccess(w, s)
}

// DeleteSeries handles DELETE /api/v1/series/{id}. Series that still
// own videos are rejected with a validation error.
func (h *Handler) DeleteSeries(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "invalid series id")
		return
	}
	if err := h.content.DeleteSeries(r.Context(), id); err != nil {
		writeSaveError(w, "series", err)
		return
	}
	h.invalidateContent(r)
	WriteMessage(w, "series deleted")
}

// FeatureSeries handles POST /api/v1/series/{id}/feature, atomically
// making this the only homepage-featured series.
func (h *Handler) FeatureSeries(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "invalid series id")
		return
	}
	s, err := h.content.FeatureSeries(r.Context(), id)
	if err != nil {
		writeLookupError(w, "series", err)
		return
	}
	h.invalidateContent(r)
	WriteSuccess(w, s)
}

func applySeriesRequest(in *service.SeriesInput, req seriesRequest) {
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
	if req.ShortDescription != nil {
		in.ShortDescription = *req.ShortDescription
	}
	if req.ImageURL != nil {
		in.ImageURL = *req.ImageURL
	}
	if req.Position != nil {
		in.Position = *req.Position
	}
	if req.IsActive != nil {
		in.IsActive = *req.IsActive
	}
}

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

type reelCategoryRequest struct {
	Name         *string              `json:"name"`
	Slug         *string              `json:"slug"`
	Position     *int64               `json:"position"`
	IsActive     *bool                `json:"is_active"`
	Translations model.TranslationMap `json:"translations"`
}

type reelRequest struct {
	ReelCategoryID   *int64               `json:"reel_category_id"`
	Title            *string              `json:"title"`
	Description      *string              `json:"description"`
	ProcessingStatus *string              `json:"processing_status"`
	BunnyVideoID     *string              `json:"bunny_video_id"`
	EmbedURL         *string              `json:"embed_url"`
	ThumbnailURL     *string              `json:"thumbnail_url"`
	Position         *int64               `json:"position"`
	IsActive         *bool                `json:"is_active"`
	Translations     model.TranslationMap `json:"translations"`
}

// ListReelCategories handles GET /api/v1/reel-categories. Counts ride
// along on every row; the set is small enough to window in memory.
func (h *Handler) ListReelCategories(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.ListReelCategories(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "failed to load reel categories")
		return
	}
	if q := r.URL.Query().Get("search"); q != "" {
		items = service.FilterReelCategories(items, q, r.URL.Query().Get("locale"))
	}
	windowed, meta := paginateSlice(items, parsePage(r), h.parsePerPage(r))
	WriteList(w, windowed, meta)
}

// GetReelCategory handles GET /api/v1/reel-categories/{id}.
func (h *Handler) GetReelCategory(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "invalid reel category id")
		return
	}
	rc, err := h.store.GetReelCategoryByID(r.Context(), id)
	if err != nil {
		writeLookupError(w, "reel category", err)
		return
	}
	WriteSuccess(w, rc)
}

// CreateReelCategory handles POST /api/v1/reel-categories.
func (h *Handler) CreateReelCategory(w http.ResponseWriter, r *http.Request) {
	var req reelCategoryRequest
	if err := decodeBody(r, &req); err != nil {
		WriteBadRequest(w, "invalid request body")
		return
	}

	in := service.ReelCategoryInput{
		Translations: req.Translations,
		IsActive:     true,
	}
	applyReelCategoryRequest(&in, req)

	rc, err := h.content.SaveReelCategory(r.Context(), in)
	if err != nil {
		writeSaveError(w, "reel category", err)
		return
	}
	h.invalidateContent(r)
	WriteCreated(w, rc)
}

// UpdateReelCategory handles PUT /api/v1/reel-categories/{id}.
func (h *Handler) UpdateReelCategory(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "invalid reel category id")
		return
	}
	var req reelCategoryRequest
	if err := decodeBody(r, &req); err != nil {
		WriteBadRequest(w, "invalid request body")
		return
	}

	current, err := h.store.GetReelCategoryByID(r.Context(), id)
	if err != nil {
		writeLookupError(w, "reel category", err)
		return
	}

	in := service.ReelCategoryInput{
		ID:           id,
		Name:         current.Name,
		Slug:         current.Slug,
		Position:     current.Position,
		IsActive:     current.IsActive,
		Translations: current.Translations,
	}
	if req.Translations != nil {
		in.Translations = req.Translations
	}
	applyReelCategoryRequest(&in, req)

	rc, err := h.content.SaveReelCategory(r.Context(), in)
	if err != nil {
		writeSaveError(w, "reel category", err)
		return
	}
	h.invalidateContent(r)
	WriteSuccess(w, rc)
}

// DeleteReelCategory handles DELETE /api/v1/reel-categories/{id}.
func (h *Handler) DeleteReelCategory(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "invalid reel category id")
		return
	}
	if err := h.content.DeleteReelCategory(r.Context(), id); err != nil {
		writeSaveError(w, "reel category", err)
		return
	}
	h.invalidateContent(r)
	WriteMessage(w, "reel category deleted")
}

// ListReels handles GET /api/v1/reels.
func (h *Handler) ListReels(w http.ResponseWriter, r *http.Request) {
	listEntities(h, w, r, listSource[model.Reel]{
		entity: "reels",
		count:  h.store.CountReels,
		page: func(ctx context.Context, limit, offset int64) ([]model.Reel, error) {
			return h.store.ListReels(ctx, store.ListReelsParams{Limit: limit, Offset: offset})
		},
		all: func(ctx context.Context) ([]model.Reel, error) {
			return h.store.ListReels(ctx, store.ListReelsParams{Limit: -1})
		},
		filter: service.FilterReels,
	})
}

// GetReel handles GET /api/v1/reels/{id}.
func (h *Handler) GetReel(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "invalid reel id")
		return
	}
	reel, err := h.store.GetReelByID(r.Context(), id)
	if err != nil {
		writeLookupError(w, "reel", err)
		return
	}
	WriteSuccess(w, reel)
}

// CreateReel handles POST /api/v1/reels.
func (h *Handler) CreateReel(w http.ResponseWriter, r *http.Request) {
	var req reelRequest
	if err := decodeBody(r, &req); err != nil {
		WriteBadRequest(w, "invalid request body")
		return
	}

	in := service.ReelInput{
		Translations: req.Translations,
		IsActive:     true,
	}
	applyReelRequest(&in, req)

	reel, err := h.content.SaveReel(r.Context(), in)
	if err != nil {
		writeSaveError(w, "reel", err)
		return
	}
	h.invalidateContent(r)
	WriteCreated(w, reel)
}

// UpdateReel handles PUT /api/v1/reels/{id}.
func (h *Handler) UpdateReel(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "invalid reel id")
		return
	}
	var req reelRequest
	if err := decodeBody(r, &req); err != nil {
		WriteBadRequest(w, "invalid request body")
		return
	}

	current, err := h.store.GetReelByID(r.Context(), id)
	if err != nil {
		writeLookupError(w, "reel", err)
		return
	}

	in := service.ReelInput{
		ID:               id,
		ReelCategoryID:   current.ReelCategoryID,
		Title:            current.Title,
		Description:      current.Description,
		ProcessingStatus: current.ProcessingStatus,
		BunnyVideoID:     current.BunnyVideoID,
		EmbedURL:         current.EmbedURL,
		ThumbnailURL:     current.ThumbnailURL,
		Position:         current.Position,
		IsActive:         current.IsActive,
		Translations:     current.Translations,
	}
	if req.Translations != nil {
		in.Translations = req.Translations
	}
	applyReelRequest(&in, req)

	reel, err := h.content.SaveReel(r.Context(), in)
	if err != nil {
		writeSaveError(w, "reel", err)
		return
	}
	h.invalidateContent(r)
	WriteSuccess(w, reel)
}

// DeleteReel handles DELETE /api/v1/reels/{id}.
func (h *Handler) DeleteReel(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "invalid reel id")
		return
	}
	if err := h.content.DeleteReel(r.Context(), id); err != nil {
		writeSaveError(w, "reel", err)
		return
	}
	h.invalidateContent(r)
	WriteMessage(w, "reel deleted")
}

func applyReelCategoryRequest(in *service.ReelCategoryInput, req reelCategoryRequest) {
	if req.Name != nil {
		in.Name = *req.Name
	}
	if req.Slug != nil {
		in.Slug = *req.Slug
	}
	if req.Position != nil {
		in.Position = *req.Position
	}
	if req.IsActive != nil {
		in.IsActive = *req.IsActive
	}
}

func applyReelRequest(in *service.ReelInput, req reelRequest) {
	if req.ReelCategoryID != nil {
		in.ReelCategoryID = *req.ReelCategoryID
	}
	if req.Title != nil {
		in.Title = *req.Title
	}
	if req.Description != nil {
		in.Description = *req.Description
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
	if req.Position != nil {
		in.Position = *req.Position
	}
	if req.IsActive != nil {
		in.IsActive = *req.IsActive
	}
}

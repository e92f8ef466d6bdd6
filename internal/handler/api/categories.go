// Copyright (c) 2025-2026 Avetra Media
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/avetra/avetra-go/internal/cache"
	"github.com/avetra/avetra-go/internal/model"
	"github.com/avetra/avetra-go/internal/service"
)

// categoryRequest is the write payload for categories. Pointer fields
// distinguish "absent" from "zero" so updates can be partial.
type categoryRequest struct {
	Name         *string             `json:"name"`
	Slug         *string             `json:"slug"`
	Description  *string             `json:"description"`
	ImageURL     *string             `json:"image_url"`
	Position     *int64              `json:"position"`
	IsActive     *bool               `json:"is_active"`
	Translations model.TranslationMap `json:"translations"`
}

// ListCategories handles GET /api/v1/categories. With with_counts=1
// each category carries its series count; that variant is served from
// cache and rebuilt on demand after content writes.
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	withCounts := r.URL.Query().Get("with_counts") == "1"

	var (
		cats []model.Category
		err  error
	)
	switch {
	case withCounts && h.cache != nil:
		var cached *[]model.Category
		cached, err = h.cache.Categories.GetOrSet(r.Context(), cache.KeyCategoriesWithCounts, func() (*[]model.Category, error) {
			rows, lerr := h.store.ListCategoriesWithCounts(r.Context())
			if lerr != nil {
				return nil, lerr
			}
			return &rows, nil
		})
		if cached != nil {
			cats = *cached
		}
	case withCounts:
		cats, err = h.store.ListCategoriesWithCounts(r.Context())
	default:
		cats, err = h.store.ListCategories(r.Context())
	}
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "failed to load categories")
		return
	}

	if q := r.URL.Query().Get("search"); q != "" {
		cats = service.FilterCategories(cats, q, r.URL.Query().Get("locale"))
	}
	if cats == nil {
		cats = []model.Category{}
	}
	WriteSuccess(w, cats)
}

// GetCategory handles GET /api/v1/categories/{id}.
func (h *Handler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "invalid category id")
		return
	}
	cat, err := h.store.GetCategoryByID(r.Context(), id)
	if err != nil {
		writeLookupError(w, "category", err)
		return
	}
	WriteSuccess(w, cat)
}

// CreateCategory handles POST /api/v1/categories.
func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeBody(r, &req); err != nil {
		WriteBadRequest(w, "invalid request body")
		return
	}

	in := service.CategoryInput{
		Translations: req.Translations,
		IsActive:     true,
	}
	applyCategoryRequest(&in, req)

	cat, err := h.content.SaveCategory(r.Context(), in)
	if err != nil {
		writeSaveError(w, "category", err)
		return
	}
	h.invalidateContent(r)
	WriteCreated(w, cat)
}

// UpdateCategory handles PUT /api/v1/categories/{id}. Fields absent
// from the payload keep their stored values.
func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "invalid category id")
		return
	}
	var req categoryRequest
	if err := decodeBody(r, &req); err != nil {
		WriteBadRequest(w, "invalid request body")
		return
	}

	current, err := h.store.GetCategoryByID(r.Context(), id)
	if err != nil {
		writeLookupError(w, "category", err)
		return
	}

	in := service.CategoryInput{
		ID:           id,
		Name:         current.Name,
		Slug:         current.Slug,
		Description:  current.Description,
		ImageURL:     current.ImageURL,
		Position:     current.Position,
		IsActive:     current.IsActive,
		Translations: current.Translations,
	}
	if req.Translations != nil {
		in.Translations = req.Translations
	}
	applyCategoryRequest(&in, req)

	cat, err := h.content.SaveCategory(r.Context(), in)
	if err != nil {
		writeSaveError(w, "category", err)
		return
	}
	h.invalidateContent(r)
	WriteSuccess(w, cat)
}

// DeleteCategory handles DELETE /api/v1/categories/{id}. Categories
// that still own series are rejected with a validation error.
func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "invalid category id")
		return
	}
	if err := h.content.DeleteCategory(r.Context(), id); err != nil {
		writeSaveError(w, "category", err)
		return
	}
	h.invalidateContent(r)
	WriteMessage(w, "category deleted")
}

// FeatureCategory handles POST /api/v1/categories/{id}/feature,
// atomically making this the only homepage-featured category.
func (h *Handler) FeatureCategory(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "invalid category id")
		return
	}
	cat, err := h.content.FeatureCategory(r.Context(), id)
	if err != nil {
		writeLookupError(w, "category", err)
		return
	}
	h.invalidateContent(r)
	WriteSuccess(w, cat)
}

func applyCategoryRequest(in *service.CategoryInput, req categoryRequest) {
	if req.Name != nil {
		in.Name = *req.Name
	}
	if req.Slug != nil {
		in.Slug = *req.Slug
	}
	if req.Description != nil {
		in.Description = *req.Description
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

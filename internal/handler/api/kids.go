// Copyright (c) 2025-2026 Avetra Media
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/avetra/avetra-go/internal/model"
	"github.com/avetra/avetra-go/internal/service"
)

type kidsResourceRequest struct {
	Title        *string              `json:"title"`
	Description  *string              `json:"description"`
	FileURL      *string              `json:"file_url"`
	ThumbnailURL *string              `json:"thumbnail_url"`
	AgeGroup     *string              `json:"age_group"`
	Position     *int64               `json:"position"`
	IsActive     *bool                `json:"is_active"`
	Translations model.TranslationMap `json:"translations"`
}

type kidsProductRequest struct {
	Title        *string              `json:"title"`
	Description  *string              `json:"description"`
	ImageURL     *string              `json:"image_url"`
	PriceCents   *int64               `json:"price_cents"`
	Currency     *string              `json:"currency"`
	ProductURL   *string              `json:"product_url"`
	Position     *int64               `json:"position"`
	IsActive     *bool                `json:"is_active"`
	Translations model.TranslationMap `json:"translations"`
}

// ListKidsResources handles GET /api/v1/kids/resources.
func (h *Handler) ListKidsResources(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.ListKidsResources(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "failed to load kids resources")
		return
	}
	if q := r.URL.Query().Get("search"); q != "" {
		items = service.FilterKidsResources(items, q, r.URL.Query().Get("locale"))
	}
	windowed, meta := paginateSlice(items, parsePage(r), h.parsePerPage(r))
	WriteList(w, windowed, meta)
}

// GetKidsResource handles GET /api/v1/kids/resources/{id}.
func (h *Handler) GetKidsResource(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "invalid kids resource id")
		return
	}
	res, err := h.store.GetKidsResourceByID(r.Context(), id)
	if err != nil {
		writeLookupError(w, "kids resource", err)
		return
	}
	WriteSuccess(w, res)
}

// CreateKidsResource handles POST /api/v1/kids/resources.
func (h *Handler) CreateKidsResource(w http.ResponseWriter, r *http.Request) {
	var req kidsResourceRequest
	if err := decodeBody(r, &req); err != nil {
		WriteBadRequest(w, "invalid request body")
		return
	}

	in := service.KidsResourceInput{
		Translations: req.Translations,
		IsActive:     true,
	}
	applyKidsResourceRequest(&in, req)

	res, err := h.content.SaveKidsResource(r.Context(), in)
	if err != nil {
		writeSaveError(w, "kids resource", err)
		return
	}
	h.invalidateContent(r)
	WriteCreated(w, res)
}

// UpdateKidsResource handles PUT /api/v1/kids/resources/{id}.
func (h *Handler) UpdateKidsResource(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "invalid kids resource id")
		return
	}
	var req kidsResourceRequest
	if err := decodeBody(r, &req); err != nil {
		WriteBadRequest(w, "invalid request body")
		return
	}

	current, err := h.store.GetKidsResourceByID(r.Context(), id)
	if err != nil {
		writeLookupError(w, "kids resource", err)
		return
	}

	in := service.KidsResourceInput{
		ID:           id,
		Title:        current.Title,
		Description:  current.Description,
		FileURL:      current.FileURL,
		ThumbnailURL: current.ThumbnailURL,
		AgeGroup:     current.AgeGroup,
		Position:     current.Position,
		IsActive:     current.IsActive,
		Translations: current.Translations,
	}
	if req.Translations != nil {
		in.Translations = req.Translations
	}
	applyKidsResourceRequest(&in, req)

	res, err := h.content.SaveKidsResource(r.Context(), in)
	if err != nil {
		writeSaveError(w, "kids resource", err)
		return
	}
	h.invalidateContent(r)
	WriteSuccess(w, res)
}

// DeleteKidsResource handles DELETE /api/v1/kids/resources/{id}.
func (h *Handler) DeleteKidsResource(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "invalid kids resource id")
		return
	}
	if err := h.content.DeleteKidsResource(r.Context(), id); err != nil {
		writeSaveError(w, "kids resource", err)
		return
	}
	h.invalidateContent(r)
	WriteMessage(w, "kids resource deleted")
}

// ListKidsProducts handles GET /api/v1/kids/products.
func (h *Handler) ListKidsProducts(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.ListKidsProducts(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "failed to load kids products")
		return
	}
	if q := r.URL.Query().Get("search"); q != "" {
		items = service.FilterKidsProducts(items, q, r.URL.Query().Get("locale"))
	}
	windowed, meta := paginateSlice(items, parsePage(r), h.parsePerPage(r))
	WriteList(w, windowed, meta)
}

// GetKidsProduct handles GET /api/v1/kids/products/{id}.
func (h *Handler) GetKidsProduct(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "invalid kids product id")
		return
	}
	p, err := h.store.GetKidsProductByID(r.Context(), id)
	if err != nil {
		writeLookupError(w, "kids product", err)
		return
	}
	WriteSuccess(w, p)
}

// CreateKidsProduct handles POST /api/v1/kids/products.
func (h *Handler) CreateKidsProduct(w http.ResponseWriter, r *http.Request) {
	var req kidsProductRequest
	if err := decodeBody(r, &req); err != nil {
		WriteBadRequest(w, "invalid request body")
		return
	}

	in := service.KidsProductInput{
		Translations: req.Translations,
		IsActive:     true,
	}
	applyKidsProductRequest(&in, req)

	p, err := h.content.SaveKidsProduct(r.Context(), in)
	if err != nil {
		writeSaveError(w, "kids product", err)
		return
	}
	h.invalidateContent(r)
	WriteCreated(w, p)
}

// UpdateKidsProduct handles PUT /api/v1/kids/products/{id}.
func (h *Handler) UpdateKidsProduct(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "invalid kids product id")
		return
	}
	var req kidsProductRequest
	if err := decodeBody(r, &req); err != nil {
		WriteBadRequest(w, "invalid request body")
		return
	}

	current, err := h.store.GetKidsProductByID(r.Context(), id)
	if err != nil {
		writeLookupError(w, "kids product", err)
		return
	}

	in := service.KidsProductInput{
		ID:           id,
		Title:        current.Title,
		Description:  current.Description,
		ImageURL:     current.ImageURL,
		PriceCents:   current.PriceCents,
		Currency:     current.Currency,
		ProductURL:   current.ProductURL,
		Position:     current.Position,
		IsActive:     current.IsActive,
		Translations: current.Translations,
	}
	if req.Translations != nil {
		in.Translations = req.Translations
	}
	applyKidsProductRequest(&in, req)

	p, err := h.content.SaveKidsProduct(r.Context(), in)
	if err != nil {
		writeSaveError(w, "kids product", err)
		return
	}
	h.invalidateContent(r)
	WriteSuccess(w, p)
}

// DeleteKidsProduct handles DELETE /api/v1/kids/products/{id}.
func (h *Handler) DeleteKidsProduct(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "invalid kids product id")
		return
	}
	if err := h.content.DeleteKidsProduct(r.Context(), id); err != nil {
		writeSaveError(w, "kids product", err)
		return
	}
	h.invalidateContent(r)
	WriteMessage(w, "kids product deleted")
}

func applyKidsResourceRequest(in *service.KidsResourceInput, req kidsResourceRequest) {
	if req.Title != nil {
		in.Title = *req.Title
	}
	if req.Description != nil {
		in.Description = *req.Description
	}
	if req.FileURL != nil {
		in.FileURL = *req.FileURL
	}
	if req.ThumbnailURL != nil {
		in.ThumbnailURL = *req.ThumbnailURL
	}
	if req.AgeGroup != nil {
		in.AgeGroup = *req.AgeGroup
	}
	if req.Position != nil {
		in.Position = *req.Position
	}
	if req.IsActive != nil {
		in.IsActive = *req.IsActive
	}
}

func applyKidsProductRequest(in *service.KidsProductInput, req kidsProductRequest) {
	if req.Title != nil {
		in.Title = *req.Title
	}
	if req.Description != nil {
		in.Description = *req.Description
	}
	if req.ImageURL != nil {
		in.ImageURL = *req.ImageURL
	}
	if req.PriceCents != nil {
		in.PriceCents = *req.PriceCents
	}
	if req.Currency != nil {
		in.Currency = *req.Currency
	}
	if req.ProductURL != nil {
		in.ProductURL = *req.ProductURL
	}
	if req.Position != nil {
		in.Position = *req.Position
	}
	if req.IsActive != nil {
		in.IsActive = *req.IsActive
	}
}

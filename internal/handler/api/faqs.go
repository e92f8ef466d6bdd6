// Copyright (c) 2025-2026 Avetra Media
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/avetra/avetra-go/internal/model"
	"github.com/avetra/avetra-go/internal/service"
)

type faqRequest struct {
	Question     *string              `json:"question"`
	Answer       *string              `json:"answer"`
	Position     *int64               `json:"position"`
	IsActive     *bool                `json:"is_active"`
	Translations model.TranslationMap `json:"translations"`
}

type testimonialRequest struct {
	Author       *string              `json:"author"`
	Quote        *string              `json:"quote"`
	Rating       *int64               `json:"rating"`
	AvatarURL    *string              `json:"avatar_url"`
	Position     *int64               `json:"position"`
	IsActive     *bool                `json:"is_active"`
	Translations model.TranslationMap `json:"translations"`
}

// ListFAQs handles GET /api/v1/faqs.
func (h *Handler) ListFAQs(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.ListFAQs(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "failed to load faqs")
		return
	}
	if q := r.URL.Query().Get("search"); q != "" {
		items = service.FilterFAQs(items, q, r.URL.Query().Get("locale"))
	}
	windowed, meta := paginateSlice(items, parsePage(r), h.parsePerPage(r))
	WriteList(w, windowed, meta)
}

// GetFAQ handles GET /api/v1/faqs/{id}.
func (h *Handler) GetFAQ(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "invalid faq id")
		return
	}
	f, err := h.store.GetFAQByID(r.Context(), id)
	if err != nil {
		writeLookupError(w, "faq", err)
		return
	}
	WriteSuccess(w, f)
}

// CreateFAQ handles POST /api/v1/faqs.
func (h *Handler) CreateFAQ(w http.ResponseWriter, r *http.Request) {
	var req faqRequest
	if err := decodeBody(r, &req); err != nil {
		WriteBadRequest(w, "invalid request body")
		return
	}

	in := service.FAQInput{
		Translations: req.Translations,
		IsActive:     true,
	}
	applyFAQRequest(&in, req)

	f, err := h.content.SaveFAQ(r.Context(), in)
	if err != nil {
		writeSaveError(w, "faq", err)
		return
	}
	h.invalidateContent(r)
	WriteCreated(w, f)
}

// UpdateFAQ handles PUT /api/v1/faqs/{id}.
func (h *Handler) UpdateFAQ(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "invalid faq id")
		return
	}
	var req faqRequest
	if err := decodeBody(r, &req); err != nil {
		WriteBadRequest(w, "invalid request body")
		return
	}

	current, err := h.store.GetFAQByID(r.Context(), id)
	if err != nil {
		writeLookupError(w, "faq", err)
		return
	}

	in := service.FAQInput{
		ID:           id,
		Question:     current.Question,
		Answer:       current.Answer,
		Position:     current.Position,
		IsActive:     current.IsActive,
		Translations: current.Translations,
	}
	if req.Translations != nil {
		in.Translations = req.Translations
	}
	applyFAQRequest(&in, req)

	f, err := h.content.SaveFAQ(r.Context(), in)
	if err != nil {
		writeSaveError(w, "faq", err)
		return
	}
	h.invalidateContent(r)
	WriteSuccess(w, f)
}

// DeleteFAQ handles DELETE /api/v1/faqs/{id}.
func (h *Handler) DeleteFAQ(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "invalid faq id")
		return
	}
	if err := h.content.DeleteFAQ(r.Context(), id); err != nil {
		writeSaveError(w, "faq", err)
		return
	}
	h.invalidateContent(r)
	WriteMessage(w, "faq deleted")
}

// ListTestimonials handles GET /api/v1/testimonials.
func (h *Handler) ListTestimonials(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.ListTestimonials(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "failed to load testimonials")
		return
	}
	if q := r.URL.Query().Get("search"); q != "" {
		items = service.FilterTestimonials(items, q, r.URL.Query().Get("locale"))
	}
	windowed, meta := paginateSlice(items, parsePage(r), h.parsePerPage(r))
	WriteList(w, windowed, meta)
}

// GetTestimonial handles GET /api/v1/testimonials/{id}.
func (h *Handler) GetTestimonial(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "invalid testimonial id")
		return
	}
	tm, err := h.store.GetTestimonialByID(r.Context(), id)
	if err != nil {
		writeLookupError(w, "testimonial", err)
		return
	}
	WriteSuccess(w, tm)
}

// CreateTestimonial handles POST /api/v1/testimonials.
func (h *Handler) CreateTestimonial(w http.ResponseWriter, r *http.Request) {
	var req testimonialRequest
	if err := decodeBody(r, &req); err != nil {
		WriteBadRequest(w, "invalid request body")
		return
	}

	in := service.TestimonialInput{
		Translations: req.Translations,
		IsActive:     true,
	}
	applyTestimonialRequest(&in, req)

	tm, err := h.content.SaveTestimonial(r.Context(), in)
	if err != nil {
		writeSaveError(w, "testimonial", err)
		return
	}
	h.invalidateContent(r)
	WriteCreated(w, tm)
}

// UpdateTestimonial handles PUT /api/v1/testimonials/{id}.
func (h *Handler) UpdateTestimonial(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "invalid testimonial id")
		return
	}
	var req testimonialRequest
	if err := decodeBody(r, &req); err != nil {
		WriteBadRequest(w, "invalid request body")
		return
	}

	current, err := h.store.GetTestimonialByID(r.Context(), id)
	if err != nil {
		writeLookupError(w, "testimonial", err)
		return
	}

	in := service.TestimonialInput{
		ID:           id,
		Author:       current.Author,
		Quote:        current.Quote,
		Rating:       current.Rating,
		AvatarURL:    current.AvatarURL,
		Position:     current.Position,
		IsActive:     current.IsActive,
		Translations: current.Translations,
	}
	if req.Translations != nil {
		in.Translations = req.Translations
	}
	applyTestimonialRequest(&in, req)

	tm, err := h.content.SaveTestimonial(r.Context(), in)
	if err != nil {
		writeSaveError(w, "testimonial", err)
		return
	}
	h.invalidateContent(r)
	WriteSuccess(w, tm)
}

// DeleteTestimonial handles DELETE /api/v1/testimonials/{id}.
func (h *Handler) DeleteTestimonial(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "invalid testimonial id")
		return
	}
	if err := h.content.DeleteTestimonial(r.Context(), id); err != nil {
		writeSaveError(w, "testimonial", err)
		return
	}
	h.invalidateContent(r)
	WriteMessage(w, "testimonial deleted")
}

func applyFAQRequest(in *service.FAQInput, req faqRequest) {
	if req.Question != nil {
		in.Question = *req.Question
	}
	if req.Answer != nil {
		in.Answer = *req.Answer
	}
	if req.Position != nil {
		in.Position = *req.Position
	}
	if req.IsActive != nil {
		in.IsActive = *req.IsActive
	}
}

func applyTestimonialRequest(in *service.TestimonialInput, req testimonialRequest) {
	if req.Author != nil {
		in.Author = *req.Author
	}
	if req.Quote != nil {
		in.Quote = *req.Quote
	}
	if req.Rating != nil {
		in.Rating = *req.Rating
	}
	if req.AvatarURL != nil {
		in.AvatarURL = *req.AvatarURL
	}
	if req.Position != nil {
		in.Position = *req.Position
	}
	if req.IsActive != nil {
		in.IsActive = *req.IsActive
	}
}

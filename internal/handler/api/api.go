// Copyright (c) 2025-2026 Avetra Media
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api implements the /api/v1 REST surface for the admin panel
// and any other authenticated consumer. Every response uses the same
// JSON envelope: {"success": bool, "data": ..., "message": ...}.
package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/avetra/avetra-go/internal/cache"
	"github.com/avetra/avetra-go/internal/service"
	"github.com/avetra/avetra-go/internal/store"
	"github.com/avetra/avetra-go/internal/translate"
)

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	store    *store.Store
	content  *service.Content
	settings *service.Settings
	cache    *cache.Manager

	defaultPerPage int
	maxPerPage     int
}

// Options tunes handler behavior. Zero values fall back to sensible
// defaults.
type Options struct {
	DefaultPerPage int
	MaxPerPage     int
}

// NewHandler creates the API handler. cacheMgr may be nil; cache
// invalidation then becomes a no-op.
func NewHandler(st *store.Store, content *service.Content, settings *service.Settings, cacheMgr *cache.Manager, opts Options) *Handler {
	if opts.DefaultPerPage <= 0 {
		opts.DefaultPerPage = 20
	}
	if opts.MaxPerPage < opts.DefaultPerPage {
		opts.MaxPerPage = 100
	}
	return &Handler{
		store:          st,
		content:        content,
		settings:       settings,
		cache:          cacheMgr,
		defaultPerPage: opts.DefaultPerPage,
		maxPerPage:     opts.MaxPerPage,
	}
}

// Meta carries pagination info for list responses.
type Meta struct {
	Total   int64 `json:"total"`
	Page    int   `json:"page"`
	PerPage int   `json:"per_page"`
	Pages   int   `json:"pages"`
}

// Envelope is the uniform response shape. Success is always present;
// the other fields are omitted when empty.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Meta    *Meta  `json:"meta,omitempty"`
	Message string `json:"message,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

// WriteJSON writes an arbitrary envelope with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(env)
}

// WriteSuccess writes a 200 success envelope wrapping data.
func WriteSuccess(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusOK, Envelope{Success: true, Data: data})
}

// WriteList writes a 200 success envelope with pagination meta.
func WriteList(w http.ResponseWriter, data any, meta Meta) {
	WriteJSON(w, http.StatusOK, Envelope{Success: true, Data: data, Meta: &meta})
}

// WriteCreated writes a 201 success envelope wrapping data.
func WriteCreated(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusCreated, Envelope{Success: true, Data: data})
}

// WriteMessage writes a 200 success envelope with only a message,
// used by deletes and other operations with no payload.
func WriteMessage(w http.ResponseWriter, message string) {
	WriteJSON(w, http.StatusOK, Envelope{Success: true, Message: message})
}

// WriteError writes a failure envelope with the given status code.
func WriteError(w http.ResponseWriter, statusCode int, message string) {
	WriteJSON(w, statusCode, Envelope{Message: message})
}

// WriteBadRequest writes a 400 failure envelope.
func WriteBadRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, message)
}

// WriteNotFound writes a 404 failure envelope.
func WriteNotFound(w http.ResponseWriter, entity string) {
	WriteError(w, http.StatusNotFound, entity+" not found")
}

// WriteValidationError writes a 422 failure envelope with per-field
// messages.
func WriteValidationError(w http.ResponseWriter, fields map[string]string) {
	WriteJSON(w, http.StatusUnprocessableEntity, Envelope{
		Message: "validation failed",
		Errors:  fields,
	})
}

// writeSaveError maps service errors onto the envelope taxonomy:
// validation failures become 422, missing rows 404, anything else 500.
func writeSaveError(w http.ResponseWriter, entity string, err error) {
	var ve *translate.ValidationError
	switch {
	case errors.As(err, &ve):
		WriteValidationError(w, map[string]string{ve.Field: ve.Message})
	case errors.Is(err, sql.ErrNoRows):
		WriteNotFound(w, entity)
	default:
		WriteError(w, http.StatusInternalServerError, "failed to save "+entity)
	}
}

// writeLookupError maps read-path errors: missing rows 404, else 500.
func writeLookupError(w http.ResponseWriter, entity string, err error) {
	if errors.Is(err, sql.ErrNoRows) {
		WriteNotFound(w, entity)
		return
	}
	WriteError(w, http.StatusInternalServerError, "failed to load "+entity)
}

// ParseIDParam parses the {id} chi URL parameter as a positive int64.
func ParseIDParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

// parsePage reads the "page" query parameter, defaulting to 1.
func parsePage(r *http.Request) int {
	return parseIntQuery(r, "page", 1, 1, 0)
}

// parsePerPage reads the "per_page" query parameter clamped to the
// configured maximum.
func (h *Handler) parsePerPage(r *http.Request) int {
	return parseIntQuery(r, "per_page", h.defaultPerPage, 1, h.maxPerPage)
}

// parseIntQuery parses a named integer query parameter. Missing,
// malformed, or out-of-range values return defaultVal. A maxVal of 0
// means unbounded.
func parseIntQuery(r *http.Request, name string, defaultVal, minVal, maxVal int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return defaultVal
	}
	if val < minVal {
		return defaultVal
	}
	if maxVal > 0 && val > maxVal {
		return defaultVal
	}
	return val
}

// listWindow converts page/per_page into a limit/offset pair, clamping
// the page into range and computing the page count for the meta block.
func listWindow(page, perPage int, total int64) (limit, offset int64, clampedPage, pages int) {
	pages = int((total + int64(perPage) - 1) / int64(perPage))
	if pages < 1 {
		pages = 1
	}
	if page > pages {
		page = pages
	}
	return int64(perPage), int64((page - 1) * perPage), page, pages
}

// invalidateContent drops content list caches after a write.
func (h *Handler) invalidateContent(r *http.Request) {
	if h.cache != nil {
		h.cache.InvalidateContent(r.Context())
	}
}

// invalidateSettings drops the settings cache after a write.
func (h *Handler) invalidateSettings() {
	if h.cache != nil {
		h.cache.InvalidateSettings()
	}
}

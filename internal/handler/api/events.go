// Copyright (c) 2025-2026 Avetra Media
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/avetra/avetra-go/internal/model"
	"github.com/avetra/avetra-go/internal/store"
)

// ListEvents handles GET /api/v1/events, the system audit trail.
// Supports level/category filters and pagination, newest first.
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	page := parsePage(r)
	perPage := h.parsePerPage(r)

	total, err := h.store.CountEvents(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "failed to load events")
		return
	}
	_, offset, page, pages := listWindow(page, perPage, total)

	events, err := h.store.ListEvents(r.Context(), store.ListEventsParams{
		Level:    r.URL.Query().Get("level"),
		Category: r.URL.Query().Get("category"),
		Limit:    int64(perPage),
		Offset:   offset,
	})
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "failed to load events")
		return
	}
	if events == nil {
		events = []model.Event{}
	}
	WriteList(w, events, Meta{Total: total, Page: page, PerPage: perPage, Pages: pages})
}

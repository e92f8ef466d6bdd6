// Copyright (c) 2025-2026 Avetra Media
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"net/http"
)

// listSource abstracts one entity's list queries for listEntities.
// count and page serve the plain paginated path; all feeds the search
// path, which has to filter over locale-resolved text in memory.
type listSource[T any] struct {
	entity string
	count  func(ctx context.Context) (int64, error)
	page   func(ctx context.Context, limit, offset int64) ([]T, error)
	all    func(ctx context.Context) ([]T, error)
	filter func(items []T, query, locale string) []T
}

// listEntities serves a paginated list endpoint. Without a search
// query the window is pushed down to SQL; with one, the full set is
// loaded, filtered against the requested locale, and paginated in
// memory.
func listEntities[T any](h *Handler, w http.ResponseWriter, r *http.Request, src listSource[T]) {
	ctx := r.Context()
	page := parsePage(r)
	perPage := h.parsePerPage(r)
	query := r.URL.Query().Get("search")

	if query != "" {
		items, err := src.all(ctx)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "failed to load "+src.entity)
			return
		}
		items = src.filter(items, query, r.URL.Query().Get("locale"))
		windowed, meta := paginateSlice(items, page, perPage)
		WriteList(w, windowed, meta)
		return
	}

	total, err := src.count(ctx)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "failed to load "+src.entity)
		return
	}
	limit, offset, page, pages := listWindow(page, perPage, total)
	items, err := src.page(ctx, limit, offset)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "failed to load "+src.entity)
		return
	}
	if items == nil {
		items = []T{}
	}
	WriteList(w, items, Meta{Total: total, Page: page, PerPage: perPage, Pages: pages})
}

// paginateSlice windows an in-memory result set the same way SQL
// limit/offset would.
func paginateSlice[T any](items []T, page, perPage int) ([]T, Meta) {
	total := int64(len(items))
	_, offset, page, pages := listWindow(page, perPage, total)
	start := int(offset)
	if start > len(items) {
		start = len(items)
	}
	end := start + perPage
	if end > len(items) {
		end = len(items)
	}
	out := items[start:end]
	if out == nil {
		out = []T{}
	}
	return out, Meta{Total: total, Page: page, PerPage: perPage, Pages: pages}
}

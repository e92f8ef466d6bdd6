// Copyright (c) 2025-2026 Avetra Media
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"

	"github.com/avetra/avetra-go/internal/model"
	"github.com/avetra/avetra-go/internal/store"
)

// settingKeyParam extracts the {key} URL parameter.
func settingKeyParam(r *http.Request) string {
	return chi.URLParam(r, "key")
}

type settingRequest struct {
	Key          string               `json:"key"`
	Value        string               `json:"value"`
	Type         string               `json:"type"`
	Group        string               `json:"group"`
	Label        string               `json:"label"`
	Description  string               `json:"description"`
	Translations model.TranslationMap `json:"translations"`
}

type bulkSettingsRequest struct {
	Settings []settingValueRequest `json:"settings"`
}

type settingValueRequest struct {
	Key          string               `json:"key"`
	Value        string               `json:"value"`
	Translations model.TranslationMap `json:"translations"`
}

// ListSettings handles GET /api/v1/settings, optionally restricted to
// one group via ?group=. Reads are served from the cached settings bag
// when a cache is wired; writes invalidate it.
func (h *Handler) ListSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.loadSettings(r.Context(), r.URL.Query().Get("group"))
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "failed to load settings")
		return
	}
	if settings == nil {
		settings = []model.Setting{}
	}
	WriteSuccess(w, settings)
}

// loadSettings reads the settings bag from cache, filtering to one
// group when requested. A nil cache or a failed bag load falls back to
// the store.
func (h *Handler) loadSettings(ctx context.Context, group string) ([]model.Setting, error) {
	if h.cache == nil {
		return h.settings.List(ctx, group)
	}
	bag, err := h.cache.Settings.All(ctx)
	if err != nil {
		return h.settings.List(ctx, group)
	}
	out := make([]model.Setting, 0, len(bag))
	for _, s := range bag {
		if group == "" || s.Group == group {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Group != out[j].Group {
			return out[i].Group < out[j].Group
		}
		return out[i].Key < out[j].Key
	})
	return out, nil
}

// GetSetting handles GET /api/v1/settings/{key}. Hits come out of the
// settings bag; a miss falls through to the store so the 404 path
// stays authoritative.
func (h *Handler) GetSetting(w http.ResponseWriter, r *http.Request) {
	key := settingKeyParam(r)
	if key == "" {
		WriteBadRequest(w, "invalid setting key")
		return
	}
	if h.cache != nil {
		if s, ok := h.cache.Settings.Get(r.Context(), key); ok {
			WriteSuccess(w, s)
			return
		}
	}
	s, err := h.store.GetSetting(r.Context(), key)
	if err != nil {
		writeLookupError(w, "setting", err)
		return
	}
	WriteSuccess(w, s)
}

// UpsertSetting handles PUT /api/v1/settings/{key}, creating or
// replacing one setting.
func (h *Handler) UpsertSetting(w http.ResponseWriter, r *http.Request) {
	key := settingKeyParam(r)
	if key == "" {
		WriteBadRequest(w, "invalid setting key")
		return
	}
	var req settingRequest
	if err := decodeBody(r, &req); err != nil {
		WriteBadRequest(w, "invalid request body")
		return
	}

	s, err := h.settings.Upsert(r.Context(), store.UpsertSettingParams{
		Key:          key,
		Value:        req.Value,
		Type:         req.Type,
		Group:        req.Group,
		Label:        req.Label,
		Description:  req.Description,
		Translations: req.Translations,
	})
	if err != nil {
		writeSaveError(w, "setting", err)
		return
	}
	h.invalidateSettings()
	WriteSuccess(w, s)
}

// BulkUpdateSettings handles POST /api/v1/settings/bulk. The whole
// batch is applied in one transaction; an unknown key rolls everything
// back.
func (h *Handler) BulkUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req bulkSettingsRequest
	if err := decodeBody(r, &req); err != nil {
		WriteBadRequest(w, "invalid request body")
		return
	}
	if len(req.Settings) == 0 {
		WriteBadRequest(w, "no settings provided")
		return
	}

	updates := make([]store.SettingValueUpdate, len(req.Settings))
	for i, s := range req.Settings {
		updates[i] = store.SettingValueUpdate{
			Key:          s.Key,
			Value:        s.Value,
			Translations: s.Translations,
		}
	}
	if err := h.settings.BulkUpdate(r.Context(), updates); err != nil {
		writeSaveError(w, "settings", err)
		return
	}
	h.invalidateSettings()
	WriteMessage(w, "settings updated")
}

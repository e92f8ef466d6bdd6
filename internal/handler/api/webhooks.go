// Copyright (c) 2025-2026 Avetra Media
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/avetra/avetra-go/internal/model"
	"github.com/avetra/avetra-go/internal/store"
	"github.com/avetra/avetra-go/internal/webhook"
)

type webhookRequest struct {
	Name     *string  `json:"name"`
	URL      *string  `json:"url"`
	Events   []string `json:"events"`
	IsActive *bool    `json:"is_active"`
}

// webhookResponse hides the signing secret on list/get; the secret is
// shown exactly once, in the create and rotate responses.
type webhookResponse struct {
	model.Webhook
	Secret string `json:"secret,omitempty"`
}

func webhookView(wh model.Webhook, includeSecret bool) webhookResponse {
	resp := webhookResponse{Webhook: wh}
	if includeSecret {
		resp.Secret = wh.Secret
	} else {
		resp.Webhook.Secret = ""
	}
	return resp
}

// ListWebhooks handles GET /api/v1/webhooks.
func (h *Handler) ListWebhooks(w http.ResponseWriter, r *http.Request) {
	hooks, err := h.store.ListWebhooks(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "failed to load webhooks")
		return
	}
	out := make([]webhookResponse, len(hooks))
	for i, wh := range hooks {
		out[i] = webhookView(wh, false)
	}
	WriteSuccess(w, out)
}

// GetWebhook handles GET /api/v1/webhooks/{id}.
func (h *Handler) GetWebhook(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "invalid webhook id")
		return
	}
	wh, err := h.store.GetWebhookByID(r.Context(), id)
	if err != nil {
		writeLookupError(w, "webhook", err)
		return
	}
	WriteSuccess(w, webhookView(wh, false))
}

// CreateWebhook handles POST /api/v1/webhooks. A fresh signing secret
// is generated and returned once in the response.
func (h *Handler) CreateWebhook(w http.ResponseWriter, r *http.Request) {
	var req webhookRequest
	if err := decodeBody(r, &req); err != nil {
		WriteBadRequest(w, "invalid request body")
		return
	}
	fields := map[string]string{}
	if req.Name == nil || *req.Name == "" {
		fields["name"] = "name is required"
	}
	if req.URL == nil || *req.URL == "" {
		fields["url"] = "url is required"
	}
	if len(fields) > 0 {
		WriteValidationError(w, fields)
		return
	}

	secret, err := model.GenerateWebhookSecret()
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "failed to generate secret")
		return
	}
	events, _ := json.Marshal(req.Events)
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	wh, err := h.store.CreateWebhook(r.Context(), store.CreateWebhookParams{
		Name:     *req.Name,
		URL:      *req.URL,
		Secret:   secret,
		Events:   string(events),
		IsActive: active,
	})
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "failed to create webhook")
		return
	}
	WriteCreated(w, webhookView(wh, true))
}

// UpdateWebhook handles PUT /api/v1/webhooks/{id}. The signing secret
// cannot be changed here; use the rotate-secret endpoint.
func (h *Handler) UpdateWebhook(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "invalid webhook id")
		return
	}
	var req webhookRequest
	if err := decodeBody(r, &req); err != nil {
		WriteBadRequest(w, "invalid request body")
		return
	}

	current, err := h.store.GetWebhookByID(r.Context(), id)
	if err != nil {
		writeLookupError(w, "webhook", err)
		return
	}

	p := store.UpdateWebhookParams{
		ID:       id,
		Name:     current.Name,
		URL:      current.URL,
		Events:   current.Events,
		IsActive: current.IsActive,
	}
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.URL != nil {
		p.URL = *req.URL
	}
	if req.Events != nil {
		events, _ := json.Marshal(req.Events)
		p.Events = string(events)
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}

	wh, err := h.store.UpdateWebhook(r.Context(), p)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "failed to update webhook")
		return
	}
	WriteSuccess(w, webhookView(wh, false))
}

// DeleteWebhook handles DELETE /api/v1/webhooks/{id}.
func (h *Handler) DeleteWebhook(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "invalid webhook id")
		return
	}
	if _, err := h.store.GetWebhookByID(r.Context(), id); err != nil {
		writeLookupError(w, "webhook", err)
		return
	}
	if err := h.store.DeleteWebhook(r.Context(), id); err != nil {
		WriteError(w, http.StatusInternalServerError, "failed to delete webhook")
		return
	}
	WriteMessage(w, "webhook deleted")
}

// RotateWebhookSecret handles POST /api/v1/webhooks/{id}/rotate-secret.
// The new secret is returned once.
func (h *Handler) RotateWebhookSecret(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "invalid webhook id")
		return
	}
	if _, err := h.store.GetWebhookByID(r.Context(), id); err != nil {
		writeLookupError(w, "webhook", err)
		return
	}
	secret, err := model.GenerateWebhookSecret()
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "failed to generate secret")
		return
	}
	if err := h.store.RotateWebhookSecret(r.Context(), id, secret); err != nil {
		WriteError(w, http.StatusInternalServerError, "failed to rotate secret")
		return
	}
	wh, err := h.store.GetWebhookByID(r.Context(), id)
	if err != nil {
		writeLookupError(w, "webhook", err)
		return
	}
	WriteSuccess(w, webhookView(wh, true))
}

// ListWebhookDeliveries handles GET /api/v1/webhooks/{id}/deliveries,
// returning the most recent delivery attempts.
func (h *Handler) ListWebhookDeliveries(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "invalid webhook id")
		return
	}
	if _, err := h.store.GetWebhookByID(r.Context(), id); err != nil {
		writeLookupError(w, "webhook", err)
		return
	}
	limit := int64(parseIntQuery(r, "limit", 50, 1, 200))
	deliveries, err := h.store.ListDeliveriesForWebhook(r.Context(), id, limit)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "failed to load deliveries")
		return
	}
	if deliveries == nil {
		deliveries = []model.WebhookDelivery{}
	}
	WriteSuccess(w, deliveries)
}

// TestWebhook handles POST /api/v1/webhooks/{id}/test. A webhook.test
// delivery is queued for this hook regardless of its subscriptions;
// the delivery worker picks it up on its next pass.
func (h *Handler) TestWebhook(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "invalid webhook id")
		return
	}
	wh, err := h.store.GetWebhookByID(r.Context(), id)
	if err != nil {
		writeLookupError(w, "webhook", err)
		return
	}

	event := webhook.NewEvent(model.EventWebhookTest, webhook.TestEventData{
		Message:   "test delivery from " + wh.Name,
		Timestamp: time.Now().UTC(),
	})
	payload, err := json.Marshal(event)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "failed to encode test event")
		return
	}
	delivery, err := h.store.CreateDelivery(r.Context(), store.CreateDeliveryParams{
		WebhookID: wh.ID,
		Event:     event.Type,
		Payload:   string(payload),
	})
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "failed to queue test event")
		return
	}
	WriteSuccess(w, delivery)
}

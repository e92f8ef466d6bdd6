// Copyright (c) 2025-2026 Avetra Media
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"time"
)

// Webhook event types dispatched on content changes.
const (
	EventCategoryCreated    = "category.created"
	EventCategoryUpdated    = "category.updated"
	EventCategoryDeleted    = "category.deleted"
	EventSeriesCreated      = "series.created"
	EventSeriesUpdated      = "series.updated"
	EventSeriesDeleted      = "series.deleted"
	EventVideoCreated       = "video.created"
	EventVideoUpdated       = "video.updated"
	EventVideoDeleted       = "video.deleted"
	EventReelCreated        = "reel.created"
	EventReelUpdated        = "reel.updated"
	EventReelDeleted        = "reel.deleted"
	EventSettingsBulkUpdate = "settings.bulk_updated"
	EventWebhookTest        = "webhook.test"
)

// Webhook delivery statuses
const (
	DeliveryStatusPending   = "pending"
	DeliveryStatusDelivered = "delivered"
	DeliveryStatusFailed    = "failed"
	DeliveryStatusDead      = "dead"
)

// Webhook represents a webhook subscription.
type Webhook struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	Secret    string    `json:"-"` // Never expose in JSON
	Events    string    `json:"-"` // JSON array stored as string
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WebhookDelivery represents a webhook delivery attempt.
type WebhookDelivery struct {
	ID           int64         `json:"id"`
	WebhookID    int64         `json:"webhook_id"`
	Event        string        `json:"event"`
	Payload      string        `json:"payload"`
	ResponseCode sql.NullInt64 `json:"response_code,omitempty"`
	Attempts     int64         `json:"attempts"`
	NextRetryAt  sql.NullTime  `json:"next_retry_at,omitempty"`
	DeliveredAt  sql.NullTime  `json:"delivered_at,omitempty"`
	Status       string        `json:"status"`
	ErrorMessage string        `json:"error_message,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
}

// GenerateWebhookSecret generates a random secret for webhook signing.
func GenerateWebhookSecret() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// GetEvents parses the JSON events string into a slice.
func (w *Webhook) GetEvents() []string {
	var events []string
	if w.Events == "" || w.Events == "[]" {
		return events
	}
	_ = json.Unmarshal([]byte(w.Events), &events)
	return events
}

// SetEvents sets the events from a slice to JSON string.
func (w *Webhook) SetEvents(events []string) {
	if len(events) == 0 {
		w.Events = "[]"
		return
	}
	data, _ := json.Marshal(events)
	w.Events = string(data)
}

// HasEvent checks if the webhook is subscribed to a specific event.
func (w *Webhook) HasEvent(event string) bool {
	for _, e := range w.GetEvents() {
		if e == event {
			return true
		}
	}
	return false
}

// IsDead returns true if the delivery has exhausted all retries.
func (d *WebhookDelivery) IsDead() bool {
	return d.Status == DeliveryStatusDead
}

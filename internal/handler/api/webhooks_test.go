// Copyright (c) 2025-2026 Avetra Media
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/avetra/avetra-go/internal/model"
)

func TestCreateWebhookReturnsSecretOnce(t *testing.T) {
	_, router := testRouter(t)

	rec, env := doJSON(t, router, http.MethodPost, "/api/v1/webhooks",
		`{"name": "sync", "url": "https://example.com/hook", "events": ["video.created"]}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d (%s)", rec.Code, rec.Body.String())
	}
	created := dataAs[webhookResponse](t, env)
	if created.Secret == "" {
		t.Error("create response should include the generated secret")
	}

	_, env = doJSON(t, router, http.MethodGet,
		fmt.Sprintf("/api/v1/webhooks/%d", created.ID), "")
	fetched := dataAs[webhookResponse](t, env)
	if fetched.Secret != "" {
		t.Error("get response should hide the secret")
	}

	_, env = doJSON(t, router, http.MethodGet, "/api/v1/webhooks", "")
	list := dataAs[[]webhookResponse](t, env)
	if len(list) != 1 || list[0].Secret != "" {
		t.Errorf("list should hide secrets, got %+v", list)
	}
}

func TestCreateWebhookValidation(t *testing.T) {
	_, router := testRouter(t)

	rec, _ := doJSON(t, router, http.MethodPost, "/api/v1/webhooks", `{"name": "sync"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
}

func TestRotateWebhookSecret(t *testing.T) {
	st, router := testRouter(t)

	_, env := doJSON(t, router, http.MethodPost, "/api/v1/webhooks",
		`{"name": "sync", "url": "https://example.com/hook"}`)
	created := dataAs[webhookResponse](t, env)

	rec, env := doJSON(t, router, http.MethodPost,
		fmt.Sprintf("/api/v1/webhooks/%d/rotate-secret", created.ID), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d (%s)", rec.Code, rec.Body.String())
	}
	rotated := dataAs[webhookResponse](t, env)
	if rotated.Secret == "" || rotated.Secret == created.Secret {
		t.Error("rotation should return a fresh secret")
	}

	stored, err := st.GetWebhookByID(context.Background(), created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.Secret != rotated.Secret {
		t.Error("stored secret should match the rotated one")
	}
}

func TestTestWebhookQueuesDelivery(t *testing.T) {
	st, router := testRouter(t)

	_, env := doJSON(t, router, http.MethodPost, "/api/v1/webhooks",
		`{"name": "sync", "url": "https://example.com/hook", "events": ["video.created"]}`)
	created := dataAs[webhookResponse](t, env)

	rec, env := doJSON(t, router, http.MethodPost,
		fmt.Sprintf("/api/v1/webhooks/%d/test", created.ID), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d (%s)", rec.Code, rec.Body.String())
	}
	delivery := dataAs[model.WebhookDelivery](t, env)
	if delivery.Event != model.EventWebhookTest {
		t.Errorf("Event = %q, want %q", delivery.Event, model.EventWebhookTest)
	}
	if delivery.Status != model.DeliveryStatusPending {
		t.Errorf("Status = %q, want pending", delivery.Status)
	}

	due, err := st.ListDueDeliveries(context.Background(), time.Now().Add(time.Minute), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(due) != 1 {
		t.Errorf("due deliveries = %d, want 1", len(due))
	}
}

func TestUpdateWebhookKeepsSecret(t *testing.T) {
	st, router := testRouter(t)

	_, env := doJSON(t, router, http.MethodPost, "/api/v1/webhooks",
		`{"name": "sync", "url": "https://example.com/hook"}`)
	created := dataAs[webhookResponse](t, env)

	rec, env := doJSON(t, router, http.MethodPut,
		fmt.Sprintf("/api/v1/webhooks/%d", created.ID), `{"is_active": false}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d (%s)", rec.Code, rec.Body.String())
	}
	updated := dataAs[webhookResponse](t, env)
	if updated.IsActive {
		t.Error("IsActive should be false after update")
	}
	if updated.Name != "sync" {
		t.Errorf("Name = %q, want unchanged", updated.Name)
	}

	stored, err := st.GetWebhookByID(context.Background(), created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.Secret != created.Secret {
		t.Error("update must not touch the secret")
	}
}

func TestDeleteWebhook(t *testing.T) {
	_, router := testRouter(t)

	_, env := doJSON(t, router, http.MethodPost, "/api/v1/webhooks",
		`{"name": "sync", "url": "https://example.com/hook"}`)
	created := dataAs[webhookResponse](t, env)

	rec, _ := doJSON(t, router, http.MethodDelete,
		fmt.Sprintf("/api/v1/webhooks/%d", created.ID), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	rec, _ = doJSON(t, router, http.MethodGet,
		fmt.Sprintf("/api/v1/webhooks/%d", created.ID), "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status after delete = %d, want 404", rec.Code)
	}
}

// Copyright (c) 2025-2026 Avetra Media
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/avetra/avetra-go/internal/model"
)

const webhookColumns = `id, name, url, secret, events, is_active,
	created_at, updated_at`

const deliveryColumns = `id, webhook_id, event, payload, response_code,
	attempts, next_retry_at, delivered_at, status, error_message, created_at`

func scanWebhook(row interface{ Scan(...any) error }) (model.Webhook, error) {
	var w model.Webhook
	err := row.Scan(&w.ID, &w.Name, &w.URL, &w.Secret, &w.Events, &w.IsActive,
		&w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return model.Webhook{}, err
	}
	return w, nil
}

func scanDelivery(row interface{ Scan(...any) error }) (model.WebhookDelivery, error) {
	var d model.WebhookDelivery
	err := row.Scan(&d.ID, &d.WebhookID, &d.Event, &d.Payload, &d.ResponseCode,
		&d.Attempts, &d.NextRetryAt, &d.DeliveredAt, &d.Status,
		&d.ErrorMessage, &d.CreatedAt)
	if err != nil {
		return model.WebhookDelivery{}, err
	}
	return d, nil
}

// CreateWebhookParams holds the fields for registering a webhook.
type CreateWebhookParams struct {
	Name     string
	URL      string
	Secret   string
	Events   string
	IsActive bool
}

// CreateWebhook registers a webhook subscription.
func (q *Queries) CreateWebhook(ctx context.Context, p CreateWebhookParams) (model.Webhook, error) {
	events := p.Events
	if events == "" {
		events = "[]"
	}
	now := time.Now()
	res, err := q.db.ExecContext(ctx, `
		INSERT INTO webhooks (name, url, secret, events, is_active,
			created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.Name, p.URL, p.Secret, events, p.IsActive, now, now)
	if err != nil {
		return model.Webhook{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Webhook{}, err
	}
	return q.GetWebhookByID(ctx, id)
}

// GetWebhookByID fetches a webhook by its identifier.
func (q *Queries) GetWebhookByID(ctx context.Context, id int64) (model.Webhook, error) {
	return scanWebhook(q.db.QueryRowContext(ctx,
		`SELECT `+webhookColumns+` FROM webhooks WHERE id = ?`, id))
}

// ListWebhooks returns all registered webhooks.
func (q *Queries) ListWebhooks(ctx context.Context) ([]model.Webhook, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+webhookColumns+` FROM webhooks ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	return collectWebhooks(rows)
}

// ListActiveWebhooks returns webhooks eligible for dispatch.
func (q *Queries) ListActiveWebhooks(ctx context.Context) ([]model.Webhook, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+webhookColumns+` FROM webhooks WHERE is_active = 1 ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	return collectWebhooks(rows)
}

func collectWebhooks(rows *sql.Rows) ([]model.Webhook, error) {
	var out []model.Webhook
	for rows.Next() {
		w, err := scanWebhook(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// UpdateWebhookParams holds the fields for updating a webhook.
type UpdateWebhookParams struct {
	ID       int64
	Name     string
	URL      string
	Events   string
	IsActive bool
}

// UpdateWebhook updates a webhook subscription. The secret is never
// changed here; rotate it with RotateWebhookSecret.
func (q *Queries) UpdateWebhook(ctx context.Context, p UpdateWebhookParams) (model.Webhook, error) {
	_, err := q.db.ExecContext(ctx, `
		UPDATE webhooks SET name = ?, url = ?, events = ?, is_active = ?,
			updated_at = ?
		WHERE id = ?`,
		p.Name, p.URL, p.Events, p.IsActive, time.Now(), p.ID)
	if err != nil {
		return model.Webhook{}, err
	}
	return q.GetWebhookByID(ctx, p.ID)
}

// RotateWebhookSecret replaces the signing secret for a webhook.
func (q *Queries) RotateWebhookSecret(ctx context.Context, id int64, secret string) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE webhooks SET secret = ?, updated_at = ? WHERE id = ?`,
		secret, time.Now(), id)
	return err
}

// DeleteWebhook removes a webhook and (via cascade) its deliveries.
func (q *Queries) DeleteWebhook(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM webhooks WHERE id = ?`, id)
	return err
}

// CreateDeliveryParams holds the fields for enqueueing a delivery.
type CreateDeliveryParams struct {
	WebhookID int64
	Event     string
	Payload   string
}

// CreateDelivery enqueues a pending delivery attempt.
func (q *Queries) CreateDelivery(ctx context.Context, p CreateDeliveryParams) (model.WebhookDelivery, error) {
	res, err := q.db.ExecContext(ctx, `
		INSERT INTO webhook_deliveries (webhook_id, event, payload, status,
			created_at)
		VALUES (?, ?, ?, ?, ?)`,
		p.WebhookID, p.Event, p.Payload, model.DeliveryStatusPending, time.Now())
	if err != nil {
		return model.WebhookDelivery{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.WebhookDelivery{}, err
	}
	return q.GetDeliveryByID(ctx, id)
}

// GetDeliveryByID fetches a delivery by its identifier.
func (q *Queries) GetDeliveryByID(ctx context.Context, id int64) (model.WebhookDelivery, error) {
	return scanDelivery(q.db.QueryRowContext(ctx,
		`SELECT `+deliveryColumns+` FROM webhook_deliveries WHERE id = ?`, id))
}

// ListDueDeliveries returns pending or failed deliveries whose retry time
// has passed, oldest first.
func (q *Queries) ListDueDeliveries(ctx context.Context, now time.Time, limit int64) ([]model.WebhookDelivery, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := q.db.QueryContext(ctx, `
		SELECT `+deliveryColumns+` FROM webhook_deliveries
		WHERE status IN (?, ?)
		  AND (next_retry_at IS NULL OR next_retry_at <= ?)
		ORDER BY created_at, id
		LIMIT ?`,
		model.DeliveryStatusPending, model.DeliveryStatusFailed, now, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.WebhookDelivery
	for rows.Next() {
		d, err := scanDelivery(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// ListDeliveriesForWebhook returns recent deliveries for one webhook.
func (q *Queries) ListDeliveriesForWebhook(ctx context.Context, webhookID, limit int64) ([]model.WebhookDelivery, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := q.db.QueryContext(ctx, `
		SELECT `+deliveryColumns+` FROM webhook_deliveries
		WHERE webhook_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, webhookID, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.WebhookDelivery
	for rows.Next() {
		d, err := scanDelivery(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// MarkDeliveryDelivered records a successful delivery attempt.
func (q *Queries) MarkDeliveryDelivered(ctx context.Context, id int64, responseCode int64) error {
	_, err := q.db.ExecContext(ctx, `
		UPDATE webhook_deliveries
		SET status = ?, response_code = ?, attempts = attempts + 1,
			delivered_at = ?, next_retry_at = NULL, error_message = ''
		WHERE id = ?`,
		model.DeliveryStatusDelivered, responseCode, time.Now(), id)
	return err
}

// MarkDeliveryFailedParams records a failed attempt. A zero NextRetryAt
// marks the delivery dead instead of scheduling another try.
type MarkDeliveryFailedParams struct {
	ID           int64
	ResponseCode sql.NullInt64
	ErrorMessage string
	NextRetryAt  time.Time
}

// MarkDeliveryFailed records a failed delivery attempt.
func (q *Queries) MarkDeliveryFailed(ctx context.Context, p MarkDeliveryFailedParams) error {
	status := model.DeliveryStatusFailed
	nextRetry := sql.NullTime{Time: p.NextRetryAt, Valid: !p.NextRetryAt.IsZero()}
	if !nextRetry.Valid {
		status = model.DeliveryStatusDead
	}
	_, err := q.db.ExecContext(ctx, `
		UPDATE webhook_deliveries
		SET status = ?, response_code = ?, attempts = attempts + 1,
			next_retry_at = ?, error_message = ?
		WHERE id = ?`,
		status, p.ResponseCode, nextRetry, p.ErrorMessage, p.ID)
	return err
}

// PruneDeliveriesBefore deletes finished deliveries older than the cutoff.
func (q *Queries) PruneDeliveriesBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx, `
		DELETE FROM webhook_deliveries
		WHERE created_at < ? AND status IN (?, ?)`,
		cutoff, model.DeliveryStatusDelivered, model.DeliveryStatusDead)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

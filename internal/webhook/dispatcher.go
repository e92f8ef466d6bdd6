// Copyright (c) 2025-2026 Avetra Media
// SPDX-License-Identifier: GPL-3.0-or-later

package webhook

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/avetra/avetra-go/internal/store"
)

// Dispatcher handles webhook event dispatching and queuing.
type Dispatcher struct {
	db      *sql.DB
	queries *store.Queries
	logger  *slog.Logger
	queue   chan *QueuedDelivery
	workers int
	wg      sync.WaitGroup
	done    chan struct{}
	mu      sync.RWMutex
	running bool
}

// QueuedDelivery represents a delivery queued for processing.
type QueuedDelivery struct {
	DeliveryID int64
	WebhookID  int64
	Event      string
	Payload    []byte
	URL        string
	Secret     string
}

// Config holds dispatcher configuration.
type Config struct {
	Workers int // Number of concurrent delivery workers
}

// DefaultConfig returns default dispatcher configuration.
func DefaultConfig() Config {
	return Config{
		Workers: 3,
	}
}

// NewDispatcher creates a new webhook dispatcher.
func NewDispatcher(db *sql.DB, logger *slog.Logger, cfg Config) *Dispatcher {
	if cfg.Workers <= 0 {
		cfg.Workers = 3
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Dispatcher{
		db:      db,
		queries: store.New(db),
		logger:  logger,
		queue:   make(chan *QueuedDelivery, 100),
		workers: cfg.Workers,
		done:    make(chan struct{}),
	}
}

// Start starts the dispatcher workers.
func (d *Dispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	if d.running {
		d.mu.Unlock()
		return
	}
	d.running = true
	d.mu.Unlock()

	d.logger.Info("starting webhook dispatcher", "workers", d.workers)

	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker(ctx, i)
	}
}

// Stop stops the dispatcher and waits for workers to finish.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		return
	}
	d.running = false
	d.mu.Unlock()

	d.logger.Info("stopping webhook dispatcher")
	close(d.done)
	d.wg.Wait()
	d.logger.Info("webhook dispatcher stopped")
}

// worker processes queued deliveries.
func (d *Dispatcher) worker(ctx context.Context, id int) {
	defer d.wg.Done()
	d.logger.Debug("webhook worker started", "worker_id", id)

	for {
		select {
		case <-d.done:
			d.logger.Debug("webhook worker stopping", "worker_id", id)
			return
		case <-ctx.Done():
			d.logger.Debug("webhook worker context cancelled", "worker_id", id)
			return
		case delivery := <-d.queue:
			d.processDelivery(ctx, delivery)
		}
	}
}

// Dispatch dispatches an event to all subscribed webhooks.
func (d *Dispatcher) Dispatch(ctx context.Context, event *Event) error {
	d.mu.RLock()
	running := d.running
	d.mu.RUnlock()

	if !running {
		d.logger.Warn("dispatcher not running, cannot dispatch event", "event_type", event.Type)
		return nil
	}

	webhooks, err := d.queries.ListActiveWebhooks(ctx)
	if err != nil {
		d.logger.Error("failed to list webhooks for event", "error", err, "event_type", event.Type)
		return err
	}

	payload, err := json.Marshal(event)
	if err != nil {
		d.logger.Error("failed to marshal event payload", "error", err, "event_type", event.Type)
		return err
	}

	for _, wh := range webhooks {
		if !wh.HasEvent(event.Type) {
			continue
		}

		delivery, err := d.queries.CreateDelivery(ctx, store.CreateDeliveryParams{
			WebhookID: wh.ID,
			Event:     event.Type,
			Payload:   string(payload),
		})
		if err != nil {
			d.logger.Error("failed to create delivery record",
				"error", err,
				"webhook_id", wh.ID,
				"event_type", event.Type)
			continue
		}

		d.logger.Info("webhook delivery created",
			"delivery_id", delivery.ID,
			"webhook_id", wh.ID,
			"webhook_name", wh.Name,
			"event_type", event.Type)

		d.enqueue(&QueuedDelivery{
			DeliveryID: delivery.ID,
			WebhookID:  wh.ID,
			Event:      event.Type,
			Payload:    payload,
			URL:        wh.URL,
			Secret:     wh.Secret,
		})
	}

	return nil
}

// enqueue queues a delivery for async processing. A full queue is not
// an error: the scheduler requeues due deliveries later.
func (d *Dispatcher) enqueue(qd *QueuedDelivery) {
	select {
	case d.queue <- qd:
		d.logger.Debug("delivery queued", "delivery_id", qd.DeliveryID)
	default:
		d.logger.Warn("delivery queue full, delivery will be retried later", "delivery_id", qd.DeliveryID)
	}
}

// DispatchEvent is a convenience method to dispatch an event with the given type and data.
func (d *Dispatcher) DispatchEvent(ctx context.Context, eventType string, data any) error {
	return d.Dispatch(ctx, NewEvent(eventType, data))
}

// Emit implements the event sink used by the service layer.
func (d *Dispatcher) Emit(ctx context.Context, eventType string, data any) {
	if err := d.DispatchEvent(ctx, eventType, data); err != nil {
		d.logger.Error("failed to dispatch event", "error", err, "event_type", eventType)
	}
}

// RequeueDueDeliveries loads deliveries that are pending or due for a
// retry and queues them for processing. Returns the number queued.
// Called periodically by the scheduler.
func (d *Dispatcher) RequeueDueDeliveries(ctx context.Context, limit int64) (int, error) {
	d.mu.RLock()
	running := d.running
	d.mu.RUnlock()
	if !running {
		return 0, nil
	}

	due, err := d.queries.ListDueDeliveries(ctx, time.Now(), limit)
	if err != nil {
		return 0, err
	}

	queued := 0
	for _, del := range due {
		wh, err := d.queries.GetWebhookByID(ctx, del.WebhookID)
		if err != nil {
			d.logger.Error("failed to load webhook for due delivery",
				"error", err, "delivery_id", del.ID, "webhook_id", del.WebhookID)
			continue
		}
		if !wh.IsActive {
			continue
		}
		d.enqueue(&QueuedDelivery{
			DeliveryID: del.ID,
			WebhookID:  wh.ID,
			Event:      del.Event,
			Payload:    []byte(del.Payload),
			URL:        wh.URL,
			Secret:     wh.Secret,
		})
		queued++
	}
	return queued, nil
}

// GenerateSignature generates an HMAC-SHA256 signature for the payload.
func GenerateSignature(payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature verifies an HMAC-SHA256 signature.
func VerifySignature(payload []byte, signature, secret string) bool {
	expectedSig := GenerateSignature(payload, secret)
	return hmac.Equal([]byte(signature), []byte(expectedSig))
}

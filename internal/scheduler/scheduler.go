// Copyright (c) 2025-2026 Avetra Media
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs the periodic maintenance jobs: sweeping stale
// video transcodes, retrying webhook deliveries, and pruning old rows.
package scheduler

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/avetra/avetra-go/internal/store"
	"github.com/avetra/avetra-go/internal/webhook"
)

// StaleProcessingCutoff is how long a video may sit in a non-terminal
// processing state before it is marked failed.
const StaleProcessingCutoff = 6 * time.Hour

// Options tunes the scheduler jobs.
type Options struct {
	// EventRetention is how long event log rows are kept.
	EventRetention time.Duration
	// DeliveryRetention is how long finished webhook deliveries are kept.
	DeliveryRetention time.Duration
	// RequeueBatch caps how many due deliveries are requeued per tick.
	RequeueBatch int64
}

// DefaultOptions returns the retention windows used when none are configured.
func DefaultOptions() Options {
	return Options{
		EventRetention:    90 * 24 * time.Hour,
		DeliveryRetention: 30 * 24 * time.Hour,
		RequeueBatch:      50,
	}
}

// Scheduler owns the cron instance and its registered jobs.
type Scheduler struct {
	db         *sql.DB
	queries    *store.Queries
	cron       *cron.Cron
	logger     *slog.Logger
	dispatcher *webhook.Dispatcher
	opts       Options
}

// New creates a new scheduler instance. The dispatcher may be nil when
// webhook delivery is disabled.
func New(db *sql.DB, logger *slog.Logger, dispatcher *webhook.Dispatcher, opts Options) *Scheduler {
	if opts.EventRetention <= 0 {
		opts.EventRetention = DefaultOptions().EventRetention
	}
	if opts.DeliveryRetention <= 0 {
		opts.DeliveryRetention = DefaultOptions().DeliveryRetention
	}
	if opts.RequeueBatch <= 0 {
		opts.RequeueBatch = DefaultOptions().RequeueBatch
	}
	return &Scheduler{
		db:         db,
		queries:    store.New(db),
		cron:       cron.New(),
		logger:     logger,
		dispatcher: dispatcher,
		opts:       opts,
	}
}

// Start registers the jobs and begins the cron loop.
func (s *Scheduler) Start() error {
	// Requeue due webhook deliveries every minute.
	if s.dispatcher != nil {
		if _, err := s.cron.AddFunc("* * * * *", s.requeueDeliveries); err != nil {
			return err
		}
	}

	// Sweep stale video transcodes every 5 minutes.
	if _, err := s.cron.AddFunc("*/5 * * * *", s.sweepStaleVideos); err != nil {
		return err
	}

	// Prune old events and finished deliveries nightly at 03:10.
	if _, err := s.cron.AddFunc("10 3 * * *", s.pruneOldRows); err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

// Stop gracefully stops the scheduler.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// requeueDeliveries pushes due webhook deliveries back onto the
// dispatcher's queue.
func (s *Scheduler) requeueDeliveries() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	queued, err := s.dispatcher.RequeueDueDeliveries(ctx, s.opts.RequeueBatch)
	if err != nil {
		s.logger.Error("failed to requeue webhook deliveries", "error", err)
		return
	}
	if queued > 0 {
		s.logger.Info("requeued webhook deliveries", "count", queued)
	}
}

// sweepStaleVideos marks videos stuck in a processing state as failed.
func (s *Scheduler) sweepStaleVideos() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cutoff := time.Now().Add(-StaleProcessingCutoff)
	n, err := s.queries.MarkStaleProcessingVideosFailed(ctx, cutoff)
	if err != nil {
		s.logger.Error("failed to sweep stale processing videos", "error", err)
		return
	}
	if n > 0 {
		s.logger.Warn("marked stale processing videos as failed",
			"count", n, "cutoff", cutoff.Format(time.RFC3339))
	}
}

// pruneOldRows deletes event log rows and finished webhook deliveries
// past their retention windows.
func (s *Scheduler) pruneOldRows() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	now := time.Now()

	events, err := s.queries.PruneEventsBefore(ctx, now.Add(-s.opts.EventRetention))
	if err != nil {
		s.logger.Error("failed to prune events", "error", err)
	} else if events > 0 {
		s.logger.Info("pruned old events", "count", events)
	}

	deliveries, err := s.queries.PruneDeliveriesBefore(ctx, now.Add(-s.opts.DeliveryRetention))
	if err != nil {
		s.logger.Error("failed to prune webhook deliveries", "error", err)
	} else if deliveries > 0 {
		s.logger.Info("pruned finished webhook deliveries", "count", deliveries)
	}
}

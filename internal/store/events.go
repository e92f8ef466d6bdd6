// Copyright (c) 2025-2026 Avetra Media
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/avetra/avetra-go/internal/model"
)

const eventColumns = `id, level, category, message, metadata, created_at`

func scanEvent(row interface{ Scan(...any) error }) (model.Event, error) {
	var e model.Event
	err := row.Scan(&e.ID, &e.Level, &e.Category, &e.Message, &e.Metadata,
		&e.CreatedAt)
	if err != nil {
		return model.Event{}, err
	}
	return e, nil
}

// CreateEventParams holds the fields for recording a system event.
type CreateEventParams struct {
	Level    string
	Category string
	Message  string
	Metadata string
}

// CreateEvent records a system event.
func (q *Queries) CreateEvent(ctx context.Context, p CreateEventParams) error {
	metadata := p.Metadata
	if metadata == "" {
		metadata = "{}"
	}
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO events (level, category, message, metadata, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		p.Level, p.Category, p.Message, metadata, time.Now())
	return err
}

// ListEventsParams filters the event log listing.
type ListEventsParams struct {
	Level    string
	Category string
	Limit    int64
	Offset   int64
}

// ListEvents returns recent events, newest first. Empty Level or
// Category match everything.
func (q *Queries) ListEvents(ctx context.Context, p ListEventsParams) ([]model.Event, error) {
	limit := p.Limit
	if limit <= 0 {
		limit = 50
	}
	rows, err := q.db.QueryContext(ctx, `
		SELECT `+eventColumns+` FROM events
		WHERE (? = '' OR level = ?) AND (? = '' OR category = ?)
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?`,
		p.Level, p.Level, p.Category, p.Category, limit, p.Offset)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// CountEvents returns the total number of recorded events.
func (q *Queries) CountEvents(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`).Scan(&n)
	return n, err
}

// PruneEventsBefore deletes events older than the cutoff and reports how
// many rows were removed.
func (q *Queries) PruneEventsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx,
		`DELETE FROM events WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Copyright (c) 2025-2026 Avetra Media
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/avetra/avetra-go/internal/cache"
	"github.com/avetra/avetra-go/internal/version"
)

// HealthStatus is the authenticated health report.
type HealthStatus struct {
	Status    string       `json:"status"`
	Timestamp time.Time    `json:"timestamp"`
	Uptime    string       `json:"uptime"`
	Version   version.Info `json:"version"`
	Database  string       `json:"database"`
	Cache     *cache.Stats `json:"cache,omitempty"`
}

// HealthHandler reports process and dependency health.
type HealthHandler struct {
	db        *sql.DB
	cache     *cache.Manager
	startTime time.Time
}

// NewHealthHandler creates a health handler. cacheMgr may be nil.
func NewHealthHandler(db *sql.DB, cacheMgr *cache.Manager) *HealthHandler {
	return &HealthHandler{db: db, cache: cacheMgr, startTime: time.Now()}
}

// Public handles GET /healthz, the unauthenticated liveness probe.
func (h *HealthHandler) Public(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, map[string]string{"status": "ok"})
}

// Detailed handles GET /api/v1/health, including dependency checks.
func (h *HealthHandler) Detailed(w http.ResponseWriter, r *http.Request) {
	status := HealthStatus{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Version:   version.Get(),
		Database:  "ok",
	}

	code := http.StatusOK
	if err := h.db.PingContext(r.Context()); err != nil {
		status.Status = "degraded"
		status.Database = "unreachable"
		code = http.StatusServiceUnavailable
	}
	if h.cache != nil {
		if stats, ok := h.cache.Stats(); ok {
			status.Cache = &stats
		}
	}
	WriteJSON(w, code, Envelope{Success: code == http.StatusOK, Data: status})
}

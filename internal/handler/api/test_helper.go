// Copyright (c) 2025-2026 Avetra Media
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/avetra/avetra-go/internal/cache"
	"github.com/avetra/avetra-go/internal/model"
	"github.com/avetra/avetra-go/internal/service"
	"github.com/avetra/avetra-go/internal/store"
)

// testDB creates a migrated temp-file SQLite database.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	f, err := os.CreateTemp("", "avetra-api-test-*.db")
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	dbPath := f.Name()
	_ = f.Close()

	db, err := store.NewDB(dbPath)
	if err != nil {
		_ = os.Remove(dbPath)
		t.Fatalf("NewDB: %v", err)
	}
	if err := store.Migrate(db); err != nil {
		_ = db.Close()
		_ = os.Remove(dbPath)
		t.Fatalf("Migrate: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Close()
		_ = os.Remove(dbPath)
	})
	return db
}

// testSetup wires a handler over a fresh database with a memory cache
// and no event sink.
func testSetup(t *testing.T) (*store.Store, *Handler) {
	t.Helper()
	st := store.NewStore(testDB(t))
	content := service.NewContent(st, nil)
	settings := service.NewSettings(st, nil, nil)
	mgr := cache.NewManager(cache.New(cache.Options{}), st, 0)
	t.Cleanup(func() { _ = mgr.Close() })
	h := NewHandler(st, content, settings, mgr, Options{DefaultPerPage: 20, MaxPerPage: 100})
	return st, h
}

// testRouter mounts the full route table for request-level tests.
func testRouter(t *testing.T) (*store.Store, http.Handler) {
	t.Helper()
	st, h := testSetup(t)
	r := chi.NewRouter()
	r.Route("/api/v1", h.Routes)
	return st, r
}

// doJSON performs a request with a JSON body against the router and
// decodes the response envelope.
func doJSON(t *testing.T, router http.Handler, method, path, body string) (*httptest.ResponseRecorder, Envelope) {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decoding envelope from %q: %v", rec.Body.String(), err)
	}
	return rec, env
}

// dataAs re-marshals the envelope's data field into a typed value.
func dataAs[T any](t *testing.T, env Envelope) T {
	t.Helper()
	raw, err := json.Marshal(env.Data)
	if err != nil {
		t.Fatalf("encoding data: %v", err)
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("decoding data: %v", err)
	}
	return out
}

// createTestCategory inserts a category through the service layer.
func createTestCategory(t *testing.T, st *store.Store, name, slug string) model.Category {
	t.Helper()
	cat, err := st.CreateCategory(context.Background(), store.CreateCategoryParams{
		Name:     name,
		Slug:     slug,
		IsActive: true,
	})
	if err != nil {
		t.Fatalf("creating test category: %v", err)
	}
	return cat
}

// createTestSeries inserts a series owned by the given category.
func createTestSeries(t *testing.T, st *store.Store, categoryID int64, title, slug string) model.Series {
	t.Helper()
	s, err := st.CreateSeries(context.Background(), store.CreateSeriesParams{
		CategoryID: categoryID,
		Title:      title,
		Slug:       slug,
		IsActive:   true,
	})
	if err != nil {
		t.Fatalf("creating test series: %v", err)
	}
	return s
}

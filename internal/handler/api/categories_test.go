// Copyright (c) 2025-2026 Avetra Media
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/avetra/avetra-go/internal/model"
)

func TestCreateCategory(t *testing.T) {
	_, router := testRouter(t)

	rec, env := doJSON(t, router, http.MethodPost, "/api/v1/categories",
		`{"name": "Shows", "description": "All shows", "position": 3}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d (%s)", rec.Code, http.StatusCreated, rec.Body.String())
	}
	if !env.Success {
		t.Fatal("expected success envelope")
	}
	cat := dataAs[model.Category](t, env)
	if cat.Name != "Shows" {
		t.Errorf("Name = %q, want %q", cat.Name, "Shows")
	}
	if cat.Slug != "shows" {
		t.Errorf("Slug = %q, want generated %q", cat.Slug, "shows")
	}
	if cat.Position != 3 {
		t.Errorf("Position = %d, want 3", cat.Position)
	}
	if !cat.IsActive {
		t.Error("new categories should default to active")
	}
}

func TestCreateCategoryMissingName(t *testing.T) {
	_, router := testRouter(t)

	rec, env := doJSON(t, router, http.MethodPost, "/api/v1/categories", `{"description": "no name"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnprocessableEntity)
	}
	if env.Success {
		t.Error("expected failure envelope")
	}
}

func TestCreateCategoryBadJSON(t *testing.T) {
	_, router := testRouter(t)

	rec, env := doJSON(t, router, http.MethodPost, "/api/v1/categories", `{not json`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if env.Success {
		t.Error("expected failure envelope")
	}
}

func TestCreateCategoryWithTranslations(t *testing.T) {
	_, router := testRouter(t)

	rec, env := doJSON(t, router, http.MethodPost, "/api/v1/categories",
		`{"name": "Shows", "translations": {"name": {"es": "Programas", "pt": "Programas"}}}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d (%s)", rec.Code, rec.Body.String())
	}
	cat := dataAs[model.Category](t, env)
	if got := cat.Translations["name"].ES; got != "Programas" {
		t.Errorf("es translation = %q, want %q", got, "Programas")
	}
	if got := cat.Translations["name"].EN; got != "Shows" {
		t.Errorf("en translation = %q, want canonical %q", got, "Shows")
	}
}

func TestGetCategoryNotFound(t *testing.T) {
	_, router := testRouter(t)

	rec, env := doJSON(t, router, http.MethodGet, "/api/v1/categories/999", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	if env.Success {
		t.Error("expected failure envelope")
	}
}

func TestGetCategoryInvalidID(t *testing.T) {
	_, router := testRouter(t)

	rec, _ := doJSON(t, router, http.MethodGet, "/api/v1/categories/abc", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestUpdateCategoryPartial(t *testing.T) {
	st, router := testRouter(t)
	cat := createTestCategory(t, st, "Shows", "shows")

	rec, env := doJSON(t, router, http.MethodPut,
		fmt.Sprintf("/api/v1/categories/%d", cat.ID), `{"position": 7}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d (%s)", rec.Code, rec.Body.String())
	}
	got := dataAs[model.Category](t, env)
	if got.Position != 7 {
		t.Errorf("Position = %d, want 7", got.Position)
	}
	if got.Name != "Shows" {
		t.Errorf("Name = %q, want unchanged %q", got.Name, "Shows")
	}
	if got.Slug != "shows" {
		t.Errorf("Slug = %q, want unchanged %q", got.Slug, "shows")
	}
}

func TestDeleteCategoryWithSeriesRejected(t *testing.T) {
	st, router := testRouter(t)
	cat := createTestCategory(t, st, "Shows", "shows")
	createTestSeries(t, st, cat.ID, "Morning Show", "morning-show")

	rec, env := doJSON(t, router, http.MethodDelete,
		fmt.Sprintf("/api/v1/categories/%d", cat.ID), "")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnprocessableEntity)
	}
	if env.Success {
		t.Error("expected failure envelope")
	}

	if _, err := st.GetCategoryByID(context.Background(), cat.ID); err != nil {
		t.Errorf("category should still exist: %v", err)
	}
}

func TestDeleteCategory(t *testing.T) {
	st, router := testRouter(t)
	cat := createTestCategory(t, st, "Shows", "shows")

	rec, env := doJSON(t, router, http.MethodDelete,
		fmt.Sprintf("/api/v1/categories/%d", cat.ID), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d (%s)", rec.Code, rec.Body.String())
	}
	if !env.Success {
		t.Error("expected success envelope")
	}
}

func TestFeatureCategorySingleton(t *testing.T) {
	st, router := testRouter(t)
	first := createTestCategory(t, st, "Shows", "shows")
	second := createTestCategory(t, st, "Movies", "movies")

	for _, id := range []int64{first.ID, second.ID} {
		rec, _ := doJSON(t, router, http.MethodPost,
			fmt.Sprintf("/api/v1/categories/%d/feature", id), "")
		if rec.Code != http.StatusOK {
			t.Fatalf("feature status = %d (%s)", rec.Code, rec.Body.String())
		}
	}

	n, err := st.CountHomepageFeaturedCategories(context.Background())
	if err != nil {
		t.Fatalf("counting featured: %v", err)
	}
	if n != 1 {
		t.Errorf("featured count = %d, want 1", n)
	}
	got, err := st.GetCategoryByID(context.Background(), second.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !got.IsHomepageFeatured {
		t.Error("most recently featured category should carry the flag")
	}
}

func TestListCategoriesWithCounts(t *testing.T) {
	st, router := testRouter(t)
	cat := createTestCategory(t, st, "Shows", "shows")
	createTestSeries(t, st, cat.ID, "Morning Show", "morning-show")
	createTestSeries(t, st, cat.ID, "Evening Show", "evening-show")

	rec, env := doJSON(t, router, http.MethodGet, "/api/v1/categories?with_counts=1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d (%s)", rec.Code, rec.Body.String())
	}
	cats := dataAs[[]model.Category](t, env)
	if len(cats) != 1 {
		t.Fatalf("len = %d, want 1", len(cats))
	}
	if cats[0].SeriesCount != 2 {
		t.Errorf("SeriesCount = %d, want 2", cats[0].SeriesCount)
	}
}

func TestListCategoriesSearchLocale(t *testing.T) {
	st, router := testRouter(t)
	createTestCategory(t, st, "Shows", "shows")

	rec, env := doJSON(t, router, http.MethodPost, "/api/v1/categories",
		`{"name": "Movies", "translations": {"name": {"es": "Peliculas"}}}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d (%s)", rec.Code, rec.Body.String())
	}
	_ = env

	_, env = doJSON(t, router, http.MethodGet, "/api/v1/categories?search=pelicu&locale=es", "")
	cats := dataAs[[]model.Category](t, env)
	if len(cats) != 1 || cats[0].Name != "Movies" {
		t.Fatalf("search by es locale returned %v, want just Movies", cats)
	}
}

func TestDuplicateSlugGetsSuffix(t *testing.T) {
	st, router := testRouter(t)
	createTestCategory(t, st, "Shows", "shows")

	rec, env := doJSON(t, router, http.MethodPost, "/api/v1/categories", `{"name": "Shows"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d (%s)", rec.Code, rec.Body.String())
	}
	cat := dataAs[model.Category](t, env)
	if cat.Slug == "shows" || cat.Slug == "" {
		t.Errorf("Slug = %q, want deduplicated variant", cat.Slug)
	}
}

// Copyright (c) 2025-2026 Avetra Media
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http/httptest"
	"testing"
)

func TestListWindow(t *testing.T) {
	tests := []struct {
		name        string
		page        int
		perPage     int
		total       int64
		wantOffset  int64
		wantPage    int
		wantPages   int
	}{
		{"first page", 1, 20, 45, 0, 1, 3},
		{"middle page", 2, 20, 45, 20, 2, 3},
		{"page past end clamps", 9, 20, 45, 40, 3, 3},
		{"empty set", 1, 20, 0, 0, 1, 1},
		{"exact multiple", 2, 10, 20, 10, 2, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limit, offset, page, pages := listWindow(tt.page, tt.perPage, tt.total)
			if limit != int64(tt.perPage) {
				t.Errorf("limit = %d, want %d", limit, tt.perPage)
			}
			if offset != tt.wantOffset {
				t.Errorf("offset = %d, want %d", offset, tt.wantOffset)
			}
			if page != tt.wantPage {
				t.Errorf("page = %d, want %d", page, tt.wantPage)
			}
			if pages != tt.wantPages {
				t.Errorf("pages = %d, want %d", pages, tt.wantPages)
			}
		})
	}
}

func TestPaginateSlice(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	out, meta := paginateSlice(items, 2, 2)
	if len(out) != 2 || out[0] != 3 || out[1] != 4 {
		t.Errorf("page 2 = %v, want [3 4]", out)
	}
	if meta.Total != 5 || meta.Pages != 3 {
		t.Errorf("meta = %+v", meta)
	}

	out, meta = paginateSlice(items, 99, 2)
	if len(out) != 1 || out[0] != 5 {
		t.Errorf("clamped page = %v, want [5]", out)
	}
	if meta.Page != 3 {
		t.Errorf("Page = %d, want 3", meta.Page)
	}

	out, _ = paginateSlice([]int(nil), 1, 10)
	if out == nil {
		t.Error("empty input should yield a non-nil slice")
	}
}

func TestParseIntQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"missing", "", 20},
		{"valid", "per_page=50", 50},
		{"garbage", "per_page=abc", 20},
		{"below min", "per_page=0", 20},
		{"above max", "per_page=500", 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/?"+tt.query, nil)
			if got := parseIntQuery(r, "per_page", 20, 1, 100); got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestNewHandlerDefaults(t *testing.T) {
	h := NewHandler(nil, nil, nil, nil, Options{})
	if h.defaultPerPage != 20 || h.maxPerPage != 100 {
		t.Errorf("defaults = %d/%d, want 20/100", h.defaultPerPage, h.maxPerPage)
	}
}

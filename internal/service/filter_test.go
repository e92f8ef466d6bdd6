// Copyright (c) 2025-2026 Avetra Media
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"reflect"
	"testing"

	"github.com/avetra/avetra-go/internal/model"
)

func sampleCategories() []model.Category {
	return []model.Category{
		{ID: 1, Name: "Bible Stories", Description: "Animated retellings"},
		{ID: 2, Name: "Music", Translations: model.TranslationMap{
			model.FieldName: {EN: "Music", ES: "Música"},
		}},
		{ID: 3, Name: "Kids Corner"},
	}
}

func TestFilterCategoriesCaseInsensitive(t *testing.T) {
	got := FilterCategories(sampleCategories(), "MUSIC", model.LocaleEN)
	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("got %d results, want only category 2", len(got))
	}
}

func TestFilterCategoriesLocaleResolved(t *testing.T) {
	// The Spanish query only matches through the resolved ES name.
	got := FilterCategories(sampleCategories(), "música", model.LocaleES)
	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("got %d results, want only category 2", len(got))
	}

	// Same query against English falls back to the EN name and misses.
	got = FilterCategories(sampleCategories(), "música", model.LocaleEN)
	if len(got) != 0 {
		t.Fatalf("got %d results, want 0", len(got))
	}
}

func TestFilterMatchesDescription(t *testing.T) {
	got := FilterCategories(sampleCategories(), "animated", model.LocaleEN)
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("got %d results, want only category 1", len(got))
	}
}

func TestFilterEmptyQueryReturnsAll(t *testing.T) {
	in := sampleCategories()
	got := FilterCategories(in, "  ", model.LocaleEN)
	if len(got) != len(in) {
		t.Fatalf("got %d results, want %d", len(got), len(in))
	}
}

func TestFilterIdempotent(t *testing.T) {
	in := sampleCategories()
	once := FilterCategories(in, "s", model.LocaleEN)
	twice := FilterCategories(once, "s", model.LocaleEN)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("second application changed the result: %v vs %v", once, twice)
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	in := sampleCategories()
	snapshot := make([]model.Category, len(in))
	copy(snapshot, in)

	_ = FilterCategories(in, "music", model.LocaleEN)
	if !reflect.DeepEqual(in, snapshot) {
		t.Error("input slice was mutated")
	}
}

// Copyright (c) 2025-2026 Avetra Media
// SPDX-License-Identifier: GPL-3.0-or-later

package translate

import (
	"errors"
	"testing"

	"github.com/avetra/avetra-go/internal/model"
)

func TestResolveFallbackOrder(t *testing.T) {
	tests := []struct {
		name   string
		rec    Record
		field  string
		locale string
		want   string
	}{
		{
			name: "explicit locale wins",
			rec: Record{
				Translations: model.TranslationMap{
					"title": {EN: "Hello", ES: "Hola", PT: "Olá"},
				},
				Fields: map[string]string{"title": "Bare"},
			},
			field:  "title",
			locale: "es",
			want:   "Hola",
		},
		{
			name: "empty locale cell falls back to en",
			rec: Record{
				Translations: model.TranslationMap{
					"title": {EN: "Hello", ES: ""},
				},
			},
			field:  "title",
			locale: "es",
			want:   "Hello",
		},
		{
			name: "legacy flat locale column",
			rec: Record{
				Fields: map[string]string{"title_es": "Hola"},
			},
			field:  "title",
			locale: "es",
			want:   "Hola",
		},
		{
			name: "legacy flat en column",
			rec: Record{
				Fields: map[string]string{"title_en": "Hello"},
			},
			field:  "title",
			locale: "pt",
			want:   "Hello",
		},
		{
			name: "bare field last",
			rec: Record{
				Fields: map[string]string{"title": "Bare"},
			},
			field:  "title",
			locale: "en",
			want:   "Bare",
		},
		{
			name:   "missing everything degrades to empty",
			rec:    Record{},
			field:  "title",
			locale: "en",
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(tt.rec, tt.field, tt.locale); got != tt.want {
				t.Errorf("Resolve(%q, %q) = %q, want %q", tt.field, tt.locale, got, tt.want)
			}
		})
	}
}

// A record with only title_es set must resolve to "" for en and to the
// Spanish value for es: the flat es column never leaks into English.
func TestResolveSpanishOnlyRecord(t *testing.T) {
	rec := Record{Fields: map[string]string{"title_es": "Solo"}}

	if got := Resolve(rec, "title", "en"); got != "" {
		t.Errorf("Resolve(en) = %q, want empty", got)
	}
	if got := Resolve(rec, "title", "es"); got != "Solo" {
		t.Errorf("Resolve(es) = %q, want %q", got, "Solo")
	}
}

func TestBufferSeedFlattenRoundTrip(t *testing.T) {
	rec := Record{
		Translations: model.TranslationMap{
			"title": {EN: "A", ES: "B", PT: ""},
		},
	}

	buf := NewBuffer("title")
	buf.Seed(rec)

	flat := buf.Flatten("title")
	if flat.Value != "A" {
		t.Errorf("Value = %q, want %q", flat.Value, "A")
	}
	want := model.LocaleText{EN: "A", ES: "B", PT: ""}
	if flat.Translations != want {
		t.Errorf("Translations = %+v, want %+v", flat.Translations, want)
	}
}

func TestBufferSeedFromLegacyColumns(t *testing.T) {
	rec := Record{
		Fields: map[string]string{
			"title_en": "Hello",
			"title_pt": "Olá",
		},
	}

	buf := NewBuffer("title")
	buf.Seed(rec)

	got := buf.Get("title")
	want := model.LocaleText{EN: "Hello", ES: "", PT: "Olá"}
	if got != want {
		t.Errorf("seeded = %+v, want %+v", got, want)
	}
}

func TestBufferSeedBareFieldDefaultsEnglish(t *testing.T) {
	rec := Record{Fields: map[string]string{"name": "Art"}}

	buf := NewBuffer("name")
	buf.Seed(rec)

	got := buf.Get("name")
	want := model.LocaleText{EN: "Art"}
	if got != want {
		t.Errorf("seeded = %+v, want %+v", got, want)
	}
}

func TestBufferSeedNestedBagWithoutEnglish(t *testing.T) {
	rec := Record{
		Translations: model.TranslationMap{
			"name": {ES: "Programas", PT: "Programas"},
		},
		Fields: map[string]string{"name": "Shows"},
	}

	buf := NewBuffer("name")
	buf.Seed(rec)

	got := buf.Get("name")
	want := model.LocaleText{EN: "Shows", ES: "Programas", PT: "Programas"}
	if got != want {
		t.Errorf("seeded = %+v, want %+v", got, want)
	}
	if err := buf.Validate("name"); err != nil {
		t.Errorf("bare field should satisfy the English requirement: %v", err)
	}
}

func TestBufferSetTouchesOneCell(t *testing.T) {
	buf := NewBuffer("title")
	buf.Set("title", "en", "Hello")
	buf.Set("title", "pt", "Olá")
	buf.Set("title", "es", "Hola")
	buf.Set("title", "es", "Hola!")

	got := buf.Get("title")
	want := model.LocaleText{EN: "Hello", ES: "Hola!", PT: "Olá"}
	if got != want {
		t.Errorf("buffer = %+v, want %+v", got, want)
	}

	// Unknown field and unknown locale are no-ops.
	buf.Set("missing", "en", "x")
	buf.Set("title", "fr", "Bonjour")
	if buf.Get("title") != want {
		t.Errorf("buffer mutated by invalid Set")
	}
}

func TestBufferValidateRequiresEnglish(t *testing.T) {
	buf := NewBuffer("title")
	buf.Set("title", "es", "X")

	err := buf.Validate("title")
	if err == nil {
		t.Fatal("expected validation error for empty English title")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if verr.Field != "title" {
		t.Errorf("Field = %q, want %q", verr.Field, "title")
	}

	buf.Set("title", "en", "X")
	if err := buf.Validate("title"); err != nil {
		t.Errorf("unexpected error after setting English: %v", err)
	}
}

func TestBufferReset(t *testing.T) {
	buf := NewBuffer("title", "description")
	buf.Set("title", "en", "A")
	buf.Set("description", "pt", "B")

	buf.Reset()

	if !buf.Get("title").IsZero() || !buf.Get("description").IsZero() {
		t.Error("expected all fields empty after Reset")
	}
}

func TestBufferTranslationMapSkipsEmptyFields(t *testing.T) {
	buf := NewBuffer("title", "description")
	buf.Set("title", "en", "A")

	m := buf.TranslationMap()
	if len(m) != 1 {
		t.Fatalf("len = %d, want 1", len(m))
	}
	if m["title"].EN != "A" {
		t.Errorf("title = %+v", m["title"])
	}
}

// Copyright (c) 2025-2026 Avetra Media
// SPDX-License-Identifier: GPL-3.0-or-later

// Package translate implements the multilingual field handling shared
// by every content entity: display-time locale resolution with
// fallback, and the edit buffer that entities are saved through.
package translate

import "github.com/avetra/avetra-go/internal/model"

// Record is the resolver's view of a translatable entity. Translations
// holds the nested per-field bag; Fields holds the entity's flat
// columns, including legacy "{field}_{locale}" columns imported from
// the old backend and the bare canonical field.
type Record struct {
	Translations model.TranslationMap
	Fields       map[string]string
}

// Resolve returns the best available display string for a field in the
// given locale. Probe order, first non-empty wins:
//
//	translations[field][locale]
//	translations[field][en]
//	fields["{field}_{locale}"]
//	fields["{field}_en"]
//	fields[field]
//
// Missing data degrades silently to the empty string; save-time
// validation is separate and stricter.
func Resolve(rec Record, field, locale string) string {
	if t, ok := rec.Translations[field]; ok {
		if v := t.Get(locale); v != "" {
			return v
		}
		if v := t.EN; v != "" {
			return v
		}
	}
	if v := rec.Fields[field+"_"+locale]; v != "" {
		return v
	}
	if v := rec.Fields[field+"_"+model.LocaleEN]; v != "" {
		return v
	}
	return rec.Fields[field]
}

// localeText assembles a LocaleText for a field from a record, reading
// the nested bag first and legacy flat columns second. The EN cell
// additionally falls back to the flat columns and the bare field
// value, so a save carrying a plain English value plus es/pt-only
// translations keeps its canonical cell.
func localeText(rec Record, field string) model.LocaleText {
	t, ok := rec.Translations[field]
	if !ok || t.IsZero() {
		t = model.LocaleText{
			ES: rec.Fields[field+"_"+model.LocaleES],
			PT: rec.Fields[field+"_"+model.LocalePT],
		}
	}
	if t.EN == "" {
		t.EN = rec.Fields[field+"_"+model.LocaleEN]
	}
	if t.EN == "" {
		t.EN = rec.Fields[field]
	}
	return t
}

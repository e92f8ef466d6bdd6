// Copyright (c) 2025-2026 Avetra Media
// SPDX-License-Identifier: GPL-3.0-or-later

package translate

import (
	"fmt"

	"github.com/avetra/avetra-go/internal/model"
)

// Flattened is the save payload for one field: the canonical English
// value plus the full locale dictionary submitted alongside.
type Flattened struct {
	Value        string
	Translations model.LocaleText
}

// ValidationError reports a field that failed the save-time gate.
// Saves that fail validation never reach the store.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Buffer is the per-edit dictionary of locale cells, one LocaleText per
// tracked field. It is seeded from an existing record when an edit
// begins, mutated one cell at a time, and flattened into the save
// payload. Buffers are not safe for concurrent use; each edit owns one.
type Buffer struct {
	fields map[string]model.LocaleText
	order  []string
}

// NewBuffer creates an empty buffer tracking the given fields.
func NewBuffer(fields ...string) *Buffer {
	b := &Buffer{
		fields: make(map[string]model.LocaleText, len(fields)),
		order:  fields,
	}
	for _, f := range fields {
		b.fields[f] = model.LocaleText{}
	}
	return b
}

// Seed populates every tracked field from a record: the nested
// translations bag if present, else legacy flat columns, else the bare
// field value as English with empty ES/PT.
func (b *Buffer) Seed(rec Record) {
	for _, f := range b.order {
		b.fields[f] = localeText(rec, f)
	}
}

// Set replaces one locale cell of one field. Other locales are never
// touched. Unknown fields and locales are ignored.
func (b *Buffer) Set(field, locale, value string) {
	t, ok := b.fields[field]
	if !ok || !model.IsLocale(locale) {
		return
	}
	t.Set(locale, value)
	b.fields[field] = t
}

// Get returns the locale dictionary for a tracked field.
func (b *Buffer) Get(field string) model.LocaleText {
	return b.fields[field]
}

// Flatten produces the save payload for one field: Value is always the
// English cell, Translations the full dictionary.
func (b *Buffer) Flatten(field string) Flattened {
	t := b.fields[field]
	return Flattened{Value: t.EN, Translations: t}
}

// TranslationMap returns the full bag of non-empty tracked fields in
// the shape submitted to the store.
func (b *Buffer) TranslationMap() model.TranslationMap {
	m := make(model.TranslationMap, len(b.order))
	for _, f := range b.order {
		if t := b.fields[f]; !t.IsZero() {
			m[f] = t
		}
	}
	return m
}

// Validate enforces the save-time gate: the English cell of the
// primary title/name field must be non-empty. The returned error is a
// *ValidationError the caller surfaces without issuing any store call.
func (b *Buffer) Validate(primaryField string) error {
	if b.fields[primaryField].EN == "" {
		return &ValidationError{
			Field:   primaryField,
			Message: "English value is required",
		}
	}
	return nil
}

// Reset restores all tracked fields to empty dictionaries. Called when
// an edit ends, both on cancel and after a successful save.
func (b *Buffer) Reset() {
	for _, f := range b.order {
		b.fields[f] = model.LocaleText{}
	}
}

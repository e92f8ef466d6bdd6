// Copyright (c) 2025-2026 Avetra Media
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service provides business logic coordinating stores,
// translations and change notifications.
package service

import (
	"context"

	"github.com/microcosm-cc/bluemonday"

	"github.com/avetra/avetra-go/internal/model"
	"github.com/avetra/avetra-go/internal/store"
	"github.com/avetra/avetra-go/internal/translate"
	"github.com/avetra/avetra-go/internal/util"
)

// EventSink receives content change notifications. The webhook
// dispatcher implements it; a nil sink disables notifications.
type EventSink interface {
	Emit(ctx context.Context, eventType string, data any)
}

// Content coordinates saves across all content entities. Every save
// runs the same pipeline: translation buffer validation, slug
// assignment, sanitization, then create-or-update dispatch on the ID.
// The stored row is returned as the single authoritative copy.
type Content struct {
	store    *store.Store
	sink     EventSink
	sanitize *bluemonday.Policy
}

// NewContent creates the content service.
func NewContent(st *store.Store, sink EventSink) *Content {
	return &Content{
		store:    st,
		sink:     sink,
		sanitize: bluemonday.UGCPolicy(),
	}
}

func (c *Content) emit(ctx context.Context, eventType string, data any) {
	if c.sink != nil {
		c.sink.Emit(ctx, eventType, data)
	}
}

// mergeText runs one field through the translation buffer: the plain
// column value and the per-locale bag are seeded together, validated
// when required, and flattened back to a canonical value plus
// translations. Empty locale cells fall back at display time and are
// never stored.
func mergeText(plain string, translations model.TranslationMap, field string, required bool) (translate.Flattened, error) {
	buf := translate.NewBuffer(field)
	buf.Seed(translate.Record{
		Translations: translations,
		Fields:       map[string]string{field: plain},
	})
	if required {
		if err := buf.Validate(field); err != nil {
			return translate.Flattened{}, err
		}
	}
	return buf.Flatten(field), nil
}

// mergeTranslations folds the flattened per-field results of a save
// back into one translation map for storage.
func mergeTranslations(fields map[string]translate.Flattened) model.TranslationMap {
	out := model.TranslationMap{}
	for name, f := range fields {
		if f.Translations.IsZero() {
			continue
		}
		out[name] = f.Translations
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// resolveSlug returns the slug for a save: an explicit slug is
// validated, an empty one is derived from the canonical title. Either
// way the result is made unique among siblings.
func resolveSlug(explicit, title string, id int64, exists func(string) (int64, error), existsExcluding func(string, int64) (int64, error)) (string, error) {
	base := explicit
	if base == "" {
		base = util.Slugify(title)
	} else if !util.IsValidSlug(base) {
		return "", &translate.ValidationError{Field: "slug", Message: "invalid slug format"}
	}
	return util.UniqueSlug(base, func(s string) (bool, error) {
		var n int64
		var err error
		if id != 0 {
			n, err = existsExcluding(s, id)
		} else {
			n, err = exists(s)
		}
		return n > 0, err
	})
}

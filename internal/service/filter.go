// Copyright (c) 2025-2026 Avetra Media
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"strings"

	"github.com/avetra/avetra-go/internal/model"
	"github.com/avetra/avetra-go/internal/translate"
)

// Filter projects a list down to the items whose locale-resolved text
// fields contain the query, case-insensitively. It is pure: the input
// slice is never mutated, and filtering an already-filtered result with
// the same query returns it unchanged. An empty query matches all.
func Filter[T any](items []T, query, locale string, record func(T) translate.Record, fields ...string) []T {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		out := make([]T, len(items))
		copy(out, items)
		return out
	}

	out := make([]T, 0, len(items))
	for _, item := range items {
		rec := record(item)
		for _, field := range fields {
			resolved := translate.Resolve(rec, field, locale)
			if strings.Contains(strings.ToLower(resolved), query) {
				out = append(out, item)
				break
			}
		}
	}
	return out
}

// FilterCategories filters categories by resolved name and description.
func FilterCategories(items []model.Category, query, locale string) []model.Category {
	return Filter(items, query, locale, func(c model.Category) translate.Record {
		return translate.Record{
			Translations: c.Translations,
			Fields: map[string]string{
				model.FieldName:        c.Name,
				model.FieldDescription: c.Description,
			},
		}
	}, model.FieldName, model.FieldDescription)
}

// FilterSeries filters series by resolved title and description.
func FilterSeries(items []model.Series, query, locale string) []model.Series {
	return Filter(items, query, locale, func(s model.Series) translate.Record {
		return translate.Record{
			Translations: s.Translations,
			Fields: map[string]string{
				model.FieldTitle:       s.Title,
				model.FieldDescription: s.Description,
			},
		}
	}, model.FieldTitle, model.FieldDescription)
}

// FilterVideos filters videos by resolved title and description.
func FilterVideos(items []model.Video, query, locale string) []model.Video {
	return Filter(items, query, locale, func(v model.Video) translate.Record {
		return translate.Record{
			Translations: v.Translations,
			Fields: map[string]string{
				model.FieldTitle:       v.Title,
				model.FieldDescription: v.Description,
			},
		}
	}, model.FieldTitle, model.FieldDescription)
}

// FilterReels filters reels by resolved title and description.
func FilterReels(items []model.Reel, query, locale string) []model.Reel {
	return Filter(items, query, locale, func(r model.Reel) translate.Record {
		return translate.Record{
			Translations: r.Translations,
			Fields: map[string]string{
				model.FieldTitle:       r.Title,
				model.FieldDescription: r.Description,
			},
		}
	}, model.FieldTitle, model.FieldDescription)
}

// FilterReelCategories filters reel categories by resolved name.
func FilterReelCategories(items []model.ReelCategory, query, locale string) []model.ReelCategory {
	return Filter(items, query, locale, func(c model.ReelCategory) translate.Record {
		return translate.Record{
			Translations: c.Translations,
			Fields: map[string]string{
				model.FieldName: c.Name,
			},
		}
	}, model.FieldName)
}

// FilterKidsResources filters kids resources by resolved title and
// description.
func FilterKidsResources(items []model.KidsResource, query, locale string) []model.KidsResource {
	return Filter(items, query, locale, func(k model.KidsResource) translate.Record {
		return translate.Record{
			Translations: k.Translations,
			Fields: map[string]string{
				model.FieldTitle:       k.Title,
				model.FieldDescription: k.Description,
			},
		}
	}, model.FieldTitle, model.FieldDescription)
}

// FilterKidsProducts filters kids products by resolved title and
// description.
func FilterKidsProducts(items []model.KidsProduct, query, locale string) []model.KidsProduct {
	return Filter(items, query, locale, func(k model.KidsProduct) translate.Record {
		return translate.Record{
			Translations: k.Translations,
			Fields: map[string]string{
				model.FieldTitle:       k.Title,
				model.FieldDescription: k.Description,
			},
		}
	}, model.FieldTitle, model.FieldDescription)
}

// FilterTestimonials filters testimonials by resolved quote and author.
func FilterTestimonials(items []model.Testimonial, query, locale string) []model.Testimonial {
	return Filter(items, query, locale, func(t model.Testimonial) translate.Record {
		return translate.Record{
			Translations: t.Translations,
			Fields: map[string]string{
				model.FieldQuote:  t.Quote,
				model.FieldAuthor: t.Author,
			},
		}
	}, model.FieldQuote, model.FieldAuthor)
}

// FilterFAQs filters FAQ entries by resolved question and answer.
func FilterFAQs(items []model.FAQ, query, locale string) []model.FAQ {
	return Filter(items, query, locale, func(f model.FAQ) translate.Record {
		return translate.Record{
			Translations: f.Translations,
			Fields: map[string]string{
				model.FieldQuestion: f.Question,
				model.FieldAnswer:   f.Answer,
			},
		}
	}, model.FieldQuestion, model.FieldAnswer)
}

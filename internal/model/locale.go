// Copyright (c) 2025-2026 Avetra Media
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the content entities of the Avetra platform.
package model

import "encoding/json"

// Content locales. English is the canonical source-of-truth language
// for every translatable field; Spanish and Portuguese fall back to it
// at display time when empty.
const (
	LocaleEN = "en"
	LocaleES = "es"
	LocalePT = "pt"
)

// Locales lists the supported content locales in display order.
var Locales = []string{LocaleEN, LocaleES, LocalePT}

// IsLocale reports whether code is a supported content locale.
func IsLocale(code string) bool {
	for _, l := range Locales {
		if l == code {
			return true
		}
	}
	return false
}

// LocaleText holds one translatable text field in all supported
// locales. EN is required on save; ES and PT may be empty, which means
// "fall back to EN", never "delete".
type LocaleText struct {
	EN string `json:"en"`
	ES string `json:"es"`
	PT string `json:"pt"`
}

// Get returns the cell for the given locale code. Unknown locales
// return the empty string.
func (t LocaleText) Get(locale string) string {
	switch locale {
	case LocaleEN:
		return t.EN
	case LocaleES:
		return t.ES
	case LocalePT:
		return t.PT
	}
	return ""
}

// Set replaces the cell for the given locale code. Unknown locales are
// ignored.
func (t *LocaleText) Set(locale, value string) {
	switch locale {
	case LocaleEN:
		t.EN = value
	case LocaleES:
		t.ES = value
	case LocalePT:
		t.PT = value
	}
}

// IsZero reports whether every cell is empty.
func (t LocaleText) IsZero() bool {
	return t.EN == "" && t.ES == "" && t.PT == ""
}

// TranslationMap is the per-entity translations bag, keyed by logical
// field name (e.g. "title", "description").
type TranslationMap map[string]LocaleText

// EncodeTranslations serializes a translation map for storage. A nil
// map encodes as the empty object so the column is never NULL.
func EncodeTranslations(m TranslationMap) string {
	if len(m) == 0 {
		return "{}"
	}
	data, err := json.Marshal(m)
	if err != nil {
		return "{}"
	}
	return string(data)
}

// DecodeTranslations parses a stored translations column. Invalid or
// empty input yields an empty, non-nil map.
func DecodeTranslations(raw string) TranslationMap {
	m := make(TranslationMap)
	if raw == "" {
		return m
	}
	_ = json.Unmarshal([]byte(raw), &m)
	return m
}

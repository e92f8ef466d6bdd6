// Copyright (c) 2025-2026 Avetra Media
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"encoding/json"
	"strconv"
	"time"
)

// Setting value types.
const (
	SettingTypeString = "string"
	SettingTypeInt    = "int"
	SettingTypeBool   = "bool"
	SettingTypeJSON   = "json"
)

// Setting groups used by the admin panel tabs.
const (
	SettingGroupGeneral  = "general"
	SettingGroupHomepage = "homepage"
	SettingGroupContact  = "contact"
	SettingGroupKids     = "kids"
)

// Well-known setting keys.
const (
	SettingKeySiteName             = "site_name"
	SettingKeySiteDescription      = "site_description"
	SettingKeyHeroTitle            = "hero_title"
	SettingKeyHeroSubtitle         = "hero_subtitle"
	SettingKeyHeroBackgroundImages = "hero_background_images"
	SettingKeyHomepageVideoIDs     = "homepage_video_ids"
	SettingKeyContactEmail         = "contact_email"
	SettingKeyVideosPerPage        = "videos_per_page"
	SettingKeyKidsModeEnabled      = "kids_mode_enabled"
)

// TranslatableSettingKeys is the fixed allow-list of setting keys that
// carry per-locale translations. Every other key is a plain scalar.
var TranslatableSettingKeys = []string{
	SettingKeySiteName,
	SettingKeySiteDescription,
	SettingKeyHeroTitle,
	SettingKeyHeroSubtitle,
}

// IsTranslatableSettingKey checks if a setting key supports translations.
func IsTranslatableSettingKey(key string) bool {
	for _, k := range TranslatableSettingKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Setting is one key in the site settings store. Value holds the
// canonical (English) representation; Translations is populated only
// for keys in the allow-list.
type Setting struct {
	Key          string         `json:"key"`
	Value        string         `json:"value"`
	Type         string         `json:"type"`
	Group        string         `json:"group"`
	Label        string         `json:"label,omitempty"`
	Description  string         `json:"description,omitempty"`
	Translations TranslationMap `json:"translations,omitempty"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// IntValue parses the value as an integer, returning def on failure.
func (s Setting) IntValue(def int64) int64 {
	v, err := strconv.ParseInt(s.Value, 10, 64)
	if err != nil {
		return def
	}
	return v
}

// BoolValue parses the value as a boolean ("true"/"1" are true).
func (s Setting) BoolValue() bool {
	return s.Value == "true" || s.Value == "1"
}

// StringSliceValue parses a JSON-encoded array value such as
// hero_background_images or homepage_video_ids.
func (s Setting) StringSliceValue() []string {
	var out []string
	if s.Value == "" {
		return out
	}
	_ = json.Unmarshal([]byte(s.Value), &out)
	return out
}

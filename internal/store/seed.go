// Copyright (c) 2025-2026 Avetra Media
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/avetra/avetra-go/internal/model"
)

// defaultSettings are created on first boot so the admin panel always
// has a complete set of keys to edit.
var defaultSettings = []UpsertSettingParams{
	{
		Key:         model.SettingKeySiteName,
		Value:       "Avetra",
		Type:        model.SettingTypeString,
		Group:       model.SettingGroupGeneral,
		Label:       "Site name",
		Description: "Shown in the header and page titles.",
	},
	{
		Key:         model.SettingKeySiteDescription,
		Value:       "Faith-based video streaming for the whole family.",
		Type:        model.SettingTypeString,
		Group:       model.SettingGroupGeneral,
		Label:       "Site description",
		Description: "Used for SEO meta tags.",
	},
	{
		Key:         model.SettingKeyHeroTitle,
		Value:       "Watch. Learn. Grow.",
		Type:        model.SettingTypeString,
		Group:       model.SettingGroupHomepage,
		Label:       "Hero title",
		Description: "Headline on the homepage hero section.",
	},
	{
		Key:         model.SettingKeyHeroSubtitle,
		Value:       "Series and videos in English, Spanish and Portuguese.",
		Type:        model.SettingTypeString,
		Group:       model.SettingGroupHomepage,
		Label:       "Hero subtitle",
		Description: "Supporting line under the hero title.",
	},
	{
		Key:         model.SettingKeyHeroBackgroundImages,
		Value:       "[]",
		Type:        model.SettingTypeJSON,
		Group:       model.SettingGroupHomepage,
		Label:       "Hero background images",
		Description: "JSON array of image URLs rotated in the hero.",
	},
	{
		Key:         model.SettingKeyHomepageVideoIDs,
		Value:       "[]",
		Type:        model.SettingTypeJSON,
		Group:       model.SettingGroupHomepage,
		Label:       "Homepage video IDs",
		Description: "JSON array of video IDs pinned to the homepage.",
	},
	{
		Key:         model.SettingKeyContactEmail,
		Value:       "hello@avetra.example",
		Type:        model.SettingTypeString,
		Group:       model.SettingGroupContact,
		Label:       "Contact email",
		Description: "Address shown on the contact page.",
	},
	{
		Key:         model.SettingKeyVideosPerPage,
		Value:       "12",
		Type:        model.SettingTypeInt,
		Group:       model.SettingGroupGeneral,
		Label:       "Videos per page",
		Description: "Default page size for public video listings.",
	},
	{
		Key:         model.SettingKeyKidsModeEnabled,
		Value:       "true",
		Type:        model.SettingTypeBool,
		Group:       model.SettingGroupKids,
		Label:       "Kids mode enabled",
		Description: "Toggles the kids corner section.",
	},
}

// Seed creates the default settings rows. Existing keys are left alone
// so operator edits survive restarts.
func Seed(ctx context.Context, db *sql.DB) error {
	queries := New(db)

	var created int
	for _, p := range defaultSettings {
		_, err := queries.GetSetting(ctx, p.Key)
		if err == nil {
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("checking setting %q: %w", p.Key, err)
		}
		if _, err := queries.UpsertSetting(ctx, p); err != nil {
			return fmt.Errorf("seeding setting %q: %w", p.Key, err)
		}
		created++
	}

	if created > 0 {
		slog.Info("seeded default settings", "created", created)
	}
	return nil
}

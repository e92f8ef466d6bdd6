// Copyright (c) 2025-2026 Avetra Media
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/avetra/avetra-go/internal/model"
	"github.com/avetra/avetra-go/internal/store"
	"github.com/avetra/avetra-go/internal/translate"
)

// Settings manages the site settings store. All writes flow through
// here so values are type-checked, translations are gated by the
// allow-list, and caches are invalidated exactly once per change.
type Settings struct {
	store    *store.Store
	sink     EventSink
	onChange func(ctx context.Context)
}

// NewSettings creates the settings service. onChange is invoked after
// every successful write; nil disables it.
func NewSettings(st *store.Store, sink EventSink, onChange func(ctx context.Context)) *Settings {
	return &Settings{store: st, sink: sink, onChange: onChange}
}

// List returns all settings, optionally restricted to one group.
func (s *Settings) List(ctx context.Context, group string) ([]model.Setting, error) {
	if group == "" {
		return s.store.ListSettings(ctx)
	}
	return s.store.ListSettingsByGroup(ctx, group)
}

// Bag returns every setting keyed by name, the shape consumed by the
// cache layer and merged once per change rather than per admin tab.
func (s *Settings) Bag(ctx context.Context) (map[string]model.Setting, error) {
	all, err := s.store.ListSettings(ctx)
	if err != nil {
		return nil, err
	}
	bag := make(map[string]model.Setting, len(all))
	for _, st := range all {
		bag[st.Key] = st
	}
	return bag, nil
}

// Upsert writes one setting after validating its value against the
// declared type.
func (s *Settings) Upsert(ctx context.Context, p store.UpsertSettingParams) (model.Setting, error) {
	if p.Key == "" {
		return model.Setting{}, &translate.ValidationError{Field: "key", Message: "key is required"}
	}
	if err := validateSettingValue(p.Type, p.Value); err != nil {
		return model.Setting{}, err
	}
	setting, err := s.store.UpsertSetting(ctx, p)
	if err != nil {
		return model.Setting{}, fmt.Errorf("upserting setting %q: %w", p.Key, err)
	}
	slog.Info("setting updated", "key", p.Key, "group", setting.Group)
	if s.onChange != nil {
		s.onChange(ctx)
	}
	return setting, nil
}

// BulkUpdate applies a batch of value updates atomically. Every key
// must already exist; unknown keys fail the whole batch before any
// reader can observe a partial write.
func (s *Settings) BulkUpdate(ctx context.Context, updates []store.SettingValueUpdate) error {
	if len(updates) == 0 {
		return nil
	}
	for _, u := range updates {
		if u.Key == "" {
			return &translate.ValidationError{Field: "key", Message: "key is required"}
		}
	}
	if err := s.store.BulkUpdateSettings(ctx, updates); err != nil {
		return err
	}
	keys := make([]string, len(updates))
	for i, u := range updates {
		keys[i] = u.Key
	}
	slog.Info("settings bulk updated", "count", len(updates))
	if s.sink != nil {
		s.sink.Emit(ctx, model.EventSettingsBulkUpdate, map[string]any{"keys": keys})
	}
	if s.onChange != nil {
		s.onChange(ctx)
	}
	return nil
}

// validateSettingValue checks a raw value against a declared type.
func validateSettingValue(typ, value string) error {
	switch typ {
	case "", model.SettingTypeString:
		return nil
	case model.SettingTypeInt:
		if _, err := strconv.ParseInt(value, 10, 64); err != nil {
			return &translate.ValidationError{Field: "value", Message: "value must be an integer"}
		}
	case model.SettingTypeBool:
		switch value {
		case "true", "false", "1", "0":
		default:
			return &translate.ValidationError{Field: "value", Message: "value must be a boolean"}
		}
	case model.SettingTypeJSON:
		if !json.Valid([]byte(value)) {
			return &translate.ValidationError{Field: "value", Message: "value must be valid JSON"}
		}
	default:
		return &translate.ValidationError{Field: "type", Message: fmt.Sprintf("unknown setting type %q", typ)}
	}
	return nil
}

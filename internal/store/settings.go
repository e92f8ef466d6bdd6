// Copyright (c) 2025-2026 Avetra Media
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/avetra/avetra-go/internal/model"
)

const settingColumns = `key, value, type, "group", label, description,
	translations, updated_at`

func scanSetting(row interface{ Scan(...any) error }) (model.Setting, error) {
	var s model.Setting
	var translations string
	err := row.Scan(&s.Key, &s.Value, &s.Type, &s.Group, &s.Label,
		&s.Description, &translations, &s.UpdatedAt)
	if err != nil {
		return model.Setting{}, err
	}
	s.Translations = model.DecodeTranslations(translations)
	return s, nil
}

// GetSetting fetches a single setting by key.
func (q *Queries) GetSetting(ctx context.Context, key string) (model.Setting, error) {
	return scanSetting(q.db.QueryRowContext(ctx,
		`SELECT `+settingColumns+` FROM settings WHERE key = ?`, key))
}

// ListSettings returns all settings ordered by group and key.
func (q *Queries) ListSettings(ctx context.Context) ([]model.Setting, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+settingColumns+` FROM settings ORDER BY "group", key`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	return collectSettings(rows)
}

// ListSettingsByGroup returns the settings in one admin group.
func (q *Queries) ListSettingsByGroup(ctx context.Context, group string) ([]model.Setting, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+settingColumns+` FROM settings WHERE "group" = ? ORDER BY key`, group)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	return collectSettings(rows)
}

func collectSettings(rows *sql.Rows) ([]model.Setting, error) {
	var out []model.Setting
	for rows.Next() {
		s, err := scanSetting(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// UpsertSettingParams holds the fields for writing one setting.
type UpsertSettingParams struct {
	Key          string
	Value        string
	Type         string
	Group        string
	Label        string
	Description  string
	Translations model.TranslationMap
}

// UpsertSetting inserts or replaces a setting. Translations are persisted
// only for keys in the translatable allow-list; other keys always store
// an empty map regardless of input.
func (q *Queries) UpsertSetting(ctx context.Context, p UpsertSettingParams) (model.Setting, error) {
	translations := p.Translations
	if !model.IsTranslatableSettingKey(p.Key) {
		translations = nil
	}
	typ := p.Type
	if typ == "" {
		typ = model.SettingTypeString
	}
	group := p.Group
	if group == "" {
		group = model.SettingGroupGeneral
	}
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO settings (key, value, type, "group", label, description,
			translations, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			type = excluded.type,
			"group" = excluded."group",
			label = excluded.label,
			description = excluded.description,
			translations = excluded.translations,
			updated_at = excluded.updated_at`,
		p.Key, p.Value, typ, group, p.Label, p.Description,
		model.EncodeTranslations(translations), time.Now())
	if err != nil {
		return model.Setting{}, err
	}
	return q.GetSetting(ctx, p.Key)
}

// SettingValueUpdate is one key's new value in a bulk write.
type SettingValueUpdate struct {
	Key          string
	Value        string
	Translations model.TranslationMap
}

// BulkUpdateSettings applies a batch of value updates in one transaction.
// Keys that do not already exist cause the whole batch to roll back, so
// a partial write never reaches readers. Updates that omit translations
// leave the stored per-locale values untouched.
func (s *Store) BulkUpdateSettings(ctx context.Context, updates []SettingValueUpdate) error {
	now := time.Now()
	return s.ExecTx(ctx, func(q *Queries) error {
		for _, u := range updates {
			var (
				res sql.Result
				err error
			)
			switch {
			case !model.IsTranslatableSettingKey(u.Key):
				res, err = q.db.ExecContext(ctx, `
					UPDATE settings SET value = ?, translations = '{}', updated_at = ?
					WHERE key = ?`,
					u.Value, now, u.Key)
			case u.Translations == nil:
				res, err = q.db.ExecContext(ctx, `
					UPDATE settings SET value = ?, updated_at = ?
					WHERE key = ?`,
					u.Value, now, u.Key)
			default:
				res, err = q.db.ExecContext(ctx, `
					UPDATE settings SET value = ?, translations = ?, updated_at = ?
					WHERE key = ?`,
					u.Value, model.EncodeTranslations(u.Translations), now, u.Key)
			}
			if err != nil {
				return fmt.Errorf("update setting %q: %w", u.Key, err)
			}
			n, err := res.RowsAffected()
			if err != nil {
				return err
			}
			if n == 0 {
				return fmt.Errorf("update setting %q: %w", u.Key, sql.ErrNoRows)
			}
		}
		return nil
	})
}

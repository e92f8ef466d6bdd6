// Copyright (c) 2025-2026 Avetra Media
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/avetra/avetra-go/internal/model"
)

// testDB creates a temporary test database.
func testDB(t *testing.T) (*sql.DB, func()) {
	t.Helper()

	f, err := os.CreateTemp("", "avetra-test-*.db")
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	dbPath := f.Name()
	f.Close()

	db, err := NewDB(dbPath)
	if err != nil {
		os.Remove(dbPath)
		t.Fatalf("NewDB: %v", err)
	}

	if err := Migrate(db); err != nil {
		db.Close()
		os.Remove(dbPath)
		t.Fatalf("Migrate: %v", err)
	}

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}

	return db, cleanup
}

func createTestCategory(t *testing.T, q *Queries, name, slug string) model.Category {
	t.Helper()
	cat, err := q.CreateCategory(context.Background(), CreateCategoryParams{
		Name:     name,
		Slug:     slug,
		IsActive: true,
	})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	return cat
}

func createTestSeries(t *testing.T, q *Queries, categoryID int64, title, slug string) model.Series {
	t.Helper()
	s, err := q.CreateSeries(context.Background(), CreateSeriesParams{
		CategoryID: categoryID,
		Title:      title,
		Slug:       slug,
		IsActive:   true,
	})
	if err != nil {
		t.Fatalf("CreateSeries: %v", err)
	}
	return s
}

func TestCreateCategory(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	cat, err := q.CreateCategory(ctx, CreateCategoryParams{
		Name:     "Bible Stories",
		Slug:     "bible-stories",
		IsActive: true,
		Translations: model.TranslationMap{
			model.FieldName: {EN: "Bible Stories", ES: "Historias Bíblicas"},
		},
	})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}

	if cat.ID == 0 {
		t.Error("cat.ID should not be 0")
	}
	if cat.Name != "Bible Stories" {
		t.Errorf("Name = %q, want %q", cat.Name, "Bible Stories")
	}
	if got := cat.Translations[model.FieldName].ES; got != "Historias Bíblicas" {
		t.Errorf("Translations[name].ES = %q, want %q", got, "Historias Bíblicas")
	}
}

func TestCategorySlugExists(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)
	cat := createTestCategory(t, q, "Music", "music")

	n, err := q.CategorySlugExists(ctx, "music")
	if err != nil {
		t.Fatalf("CategorySlugExists: %v", err)
	}
	if n == 0 {
		t.Error("slug should exist")
	}

	// Excluding the owner itself must not report a conflict.
	n, err = q.CategorySlugExistsExcluding(ctx, CategorySlugExistsExcludingParams{
		Slug: "music",
		ID:   cat.ID,
	})
	if err != nil {
		t.Fatalf("CategorySlugExistsExcluding: %v", err)
	}
	if n != 0 {
		t.Error("slug owned by excluded ID should not count as a conflict")
	}
}

func TestListCategoriesWithCounts(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	music := createTestCategory(t, q, "Music", "music")
	empty := createTestCategory(t, q, "Empty", "empty")
	createTestSeries(t, q, music.ID, "Worship Vol 1", "worship-vol-1")
	createTestSeries(t, q, music.ID, "Worship Vol 2", "worship-vol-2")

	cats, err := q.ListCategoriesWithCounts(ctx)
	if err != nil {
		t.Fatalf("ListCategoriesWithCounts: %v", err)
	}

	counts := map[int64]int64{}
	for _, c := range cats {
		counts[c.ID] = c.SeriesCount
	}
	if counts[music.ID] != 2 {
		t.Errorf("SeriesCount for music = %d, want 2", counts[music.ID])
	}
	if counts[empty.ID] != 0 {
		t.Errorf("SeriesCount for empty = %d, want 0", counts[empty.ID])
	}
}

func TestSetHomepageFeaturedCategory(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	a := createTestCategory(t, q, "A", "a")
	b := createTestCategory(t, q, "B", "b")
	c := createTestCategory(t, q, "C", "c")

	if err := q.SetHomepageFeaturedCategory(ctx, a.ID); err != nil {
		t.Fatalf("SetHomepageFeaturedCategory(a): %v", err)
	}
	if err := q.SetHomepageFeaturedCategory(ctx, b.ID); err != nil {
		t.Fatalf("SetHomepageFeaturedCategory(b): %v", err)
	}

	n, err := q.CountHomepageFeaturedCategories(ctx)
	if err != nil {
		t.Fatalf("CountHomepageFeaturedCategories: %v", err)
	}
	if n != 1 {
		t.Fatalf("featured count = %d, want 1", n)
	}

	featured, err := q.GetHomepageFeaturedCategory(ctx)
	if err != nil {
		t.Fatalf("GetHomepageFeaturedCategory: %v", err)
	}
	if featured.ID != b.ID {
		t.Errorf("featured ID = %d, want %d", featured.ID, b.ID)
	}
	_ = c
}

// A database corrupted by earlier non-atomic writes can hold several
// featured rows. A single feature call must repair it back to one.
func TestSetHomepageFeaturedCategoryRepairsCorruptState(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	a := createTestCategory(t, q, "A", "a")
	b := createTestCategory(t, q, "B", "b")
	c := createTestCategory(t, q, "C", "c")

	_, err := db.ExecContext(ctx,
		`UPDATE categories SET is_homepage_featured = 1 WHERE id IN (?, ?)`,
		a.ID, b.ID)
	if err != nil {
		t.Fatalf("corrupting state: %v", err)
	}

	if err := q.SetHomepageFeaturedCategory(ctx, c.ID); err != nil {
		t.Fatalf("SetHomepageFeaturedCategory: %v", err)
	}

	n, err := q.CountHomepageFeaturedCategories(ctx)
	if err != nil {
		t.Fatalf("CountHomepageFeaturedCategories: %v", err)
	}
	if n != 1 {
		t.Errorf("featured count after repair = %d, want 1", n)
	}
	featured, err := q.GetHomepageFeaturedCategory(ctx)
	if err != nil {
		t.Fatalf("GetHomepageFeaturedCategory: %v", err)
	}
	if featured.ID != c.ID {
		t.Errorf("featured ID = %d, want %d", featured.ID, c.ID)
	}
}

func TestSetHomepageFeaturedCategoryMissing(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	q := New(db)
	err := q.SetHomepageFeaturedCategory(context.Background(), 999)
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("err = %v, want sql.ErrNoRows", err)
	}
}

func TestVideoNullableCategory(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	cat := createTestCategory(t, q, "Kids", "kids")
	series := createTestSeries(t, q, cat.ID, "Adventures", "adventures")

	v, err := q.CreateVideo(ctx, CreateVideoParams{
		SeriesID:      series.ID,
		Title:         "Episode 1",
		Slug:          "episode-1",
		EpisodeNumber: 1,
		IsActive:      true,
	})
	if err != nil {
		t.Fatalf("CreateVideo: %v", err)
	}
	if v.CategoryID != 0 {
		t.Errorf("CategoryID = %d, want 0 for unset denormalized category", v.CategoryID)
	}
	if v.ProcessingStatus != model.ProcessingPending {
		t.Errorf("ProcessingStatus = %q, want %q", v.ProcessingStatus, model.ProcessingPending)
	}
}

func TestMarkStaleProcessingVideosFailed(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	cat := createTestCategory(t, q, "Kids", "kids")
	series := createTestSeries(t, q, cat.ID, "Adventures", "adventures")

	stale, err := q.CreateVideo(ctx, CreateVideoParams{
		SeriesID: series.ID,
		Title:    "Stuck",
		Slug:     "stuck",
	})
	if err != nil {
		t.Fatalf("CreateVideo: %v", err)
	}
	ready, err := q.CreateVideo(ctx, CreateVideoParams{
		SeriesID:         series.ID,
		Title:            "Done",
		Slug:             "done",
		ProcessingStatus: model.ProcessingReady,
	})
	if err != nil {
		t.Fatalf("CreateVideo: %v", err)
	}

	// Backdate the pending video past the cutoff.
	_, err = db.ExecContext(ctx,
		`UPDATE videos SET updated_at = ? WHERE id = ?`,
		time.Now().Add(-48*time.Hour), stale.ID)
	if err != nil {
		t.Fatalf("backdating video: %v", err)
	}

	n, err := q.MarkStaleProcessingVideosFailed(ctx, time.Now().Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("MarkStaleProcessingVideosFailed: %v", err)
	}
	if n != 1 {
		t.Errorf("marked = %d, want 1", n)
	}

	got, err := q.GetVideoByID(ctx, stale.ID)
	if err != nil {
		t.Fatalf("GetVideoByID: %v", err)
	}
	if got.ProcessingStatus != model.ProcessingFailed {
		t.Errorf("stale status = %q, want %q", got.ProcessingStatus, model.ProcessingFailed)
	}

	got, err = q.GetVideoByID(ctx, ready.ID)
	if err != nil {
		t.Fatalf("GetVideoByID: %v", err)
	}
	if got.ProcessingStatus != model.ProcessingReady {
		t.Errorf("ready status = %q, want untouched %q", got.ProcessingStatus, model.ProcessingReady)
	}
}

func TestSeedSettingsIdempotent(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()

	if err := Seed(ctx, db); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	q := New(db)
	_, err := q.UpsertSetting(ctx, UpsertSettingParams{
		Key:   model.SettingKeySiteName,
		Value: "Edited Name",
		Group: model.SettingGroupGeneral,
	})
	if err != nil {
		t.Fatalf("UpsertSetting: %v", err)
	}

	// A second seed must not clobber operator edits.
	if err := Seed(ctx, db); err != nil {
		t.Fatalf("Seed (second run): %v", err)
	}

	s, err := q.GetSetting(ctx, model.SettingKeySiteName)
	if err != nil {
		t.Fatalf("GetSetting: %v", err)
	}
	if s.Value != "Edited Name" {
		t.Errorf("Value = %q, want edit preserved", s.Value)
	}
}

func TestUpsertSettingDropsTranslationsForPlainKeys(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	s, err := q.UpsertSetting(ctx, UpsertSettingParams{
		Key:   model.SettingKeyContactEmail,
		Value: "hi@example.com",
		Group: model.SettingGroupContact,
		Translations: model.TranslationMap{
			"value": {EN: "hi@example.com", ES: "hola@example.com"},
		},
	})
	if err != nil {
		t.Fatalf("UpsertSetting: %v", err)
	}
	if len(s.Translations) != 0 {
		t.Errorf("Translations = %v, want empty for non-translatable key", s.Translations)
	}
}

func TestBulkUpdateSettingsRollsBackOnUnknownKey(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	if err := Seed(ctx, db); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	s := NewStore(db)
	err := s.BulkUpdateSettings(ctx, []SettingValueUpdate{
		{Key: model.SettingKeySiteName, Value: "New Name"},
		{Key: "no_such_key", Value: "x"},
	})
	if !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("err = %v, want sql.ErrNoRows", err)
	}

	got, err := s.GetSetting(ctx, model.SettingKeySiteName)
	if err != nil {
		t.Fatalf("GetSetting: %v", err)
	}
	if got.Value == "New Name" {
		t.Error("partial batch must roll back, site_name was written")
	}
}

func TestPruneEventsBefore(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	for i := 0; i < 3; i++ {
		err := q.CreateEvent(ctx, CreateEventParams{
			Level:    model.EventLevelInfo,
			Category: model.EventCategorySystem,
			Message:  "boot",
		})
		if err != nil {
			t.Fatalf("CreateEvent: %v", err)
		}
	}
	_, err := db.ExecContext(ctx,
		`UPDATE events SET created_at = ? WHERE id = 1`,
		time.Now().Add(-30*24*time.Hour))
	if err != nil {
		t.Fatalf("backdating event: %v", err)
	}

	n, err := q.PruneEventsBefore(ctx, time.Now().Add(-7*24*time.Hour))
	if err != nil {
		t.Fatalf("PruneEventsBefore: %v", err)
	}
	if n != 1 {
		t.Errorf("pruned = %d, want 1", n)
	}
	total, err := q.CountEvents(ctx)
	if err != nil {
		t.Fatalf("CountEvents: %v", err)
	}
	if total != 2 {
		t.Errorf("remaining = %d, want 2", total)
	}
}

func TestDeliveryRetryLifecycle(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	secret, err := model.GenerateWebhookSecret()
	if err != nil {
		t.Fatalf("GenerateWebhookSecret: %v", err)
	}
	hook, err := q.CreateWebhook(ctx, CreateWebhookParams{
		Name:     "notify",
		URL:      "https://example.com/hook",
		Secret:   secret,
		Events:   `["video.created"]`,
		IsActive: true,
	})
	if err != nil {
		t.Fatalf("CreateWebhook: %v", err)
	}

	d, err := q.CreateDelivery(ctx, CreateDeliveryParams{
		WebhookID: hook.ID,
		Event:     model.EventVideoCreated,
		Payload:   `{"id":1}`,
	})
	if err != nil {
		t.Fatalf("CreateDelivery: %v", err)
	}
	if d.Status != model.DeliveryStatusPending {
		t.Fatalf("Status = %q, want pending", d.Status)
	}

	due, err := q.ListDueDeliveries(ctx, time.Now(), 10)
	if err != nil {
		t.Fatalf("ListDueDeliveries: %v", err)
	}
	if len(due) != 1 {
		t.Fatalf("due = %d, want 1", len(due))
	}

	// First failure schedules a retry in the future.
	err = q.MarkDeliveryFailed(ctx, MarkDeliveryFailedParams{
		ID:           d.ID,
		ResponseCode: sql.NullInt64{Int64: 500, Valid: true},
		ErrorMessage: "upstream 500",
		NextRetryAt:  time.Now().Add(time.Minute),
	})
	if err != nil {
		t.Fatalf("MarkDeliveryFailed: %v", err)
	}
	due, err = q.ListDueDeliveries(ctx, time.Now(), 10)
	if err != nil {
		t.Fatalf("ListDueDeliveries: %v", err)
	}
	if len(due) != 0 {
		t.Fatalf("due before retry time = %d, want 0", len(due))
	}

	// Exhausted retries mark it dead.
	err = q.MarkDeliveryFailed(ctx, MarkDeliveryFailedParams{
		ID:           d.ID,
		ErrorMessage: "gave up",
	})
	if err != nil {
		t.Fatalf("MarkDeliveryFailed (dead): %v", err)
	}
	got, err := q.GetDeliveryByID(ctx, d.ID)
	if err != nil {
		t.Fatalf("GetDeliveryByID: %v", err)
	}
	if !got.IsDead() {
		t.Errorf("Status = %q, want dead", got.Status)
	}
	if got.Attempts != 2 {
		t.Errorf("Attempts = %d, want 2", got.Attempts)
	}
}

func TestDeleteWebhookCascadesDeliveries(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	hook, err := q.CreateWebhook(ctx, CreateWebhookParams{
		Name: "n", URL: "https://example.com", IsActive: true,
	})
	if err != nil {
		t.Fatalf("CreateWebhook: %v", err)
	}
	if _, err := q.CreateDelivery(ctx, CreateDeliveryParams{
		WebhookID: hook.ID, Event: model.EventVideoCreated, Payload: "{}",
	}); err != nil {
		t.Fatalf("CreateDelivery: %v", err)
	}

	if err := q.DeleteWebhook(ctx, hook.ID); err != nil {
		t.Fatalf("DeleteWebhook: %v", err)
	}

	var n int64
	if err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM webhook_deliveries`).Scan(&n); err != nil {
		t.Fatalf("counting deliveries: %v", err)
	}
	if n != 0 {
		t.Errorf("deliveries after cascade = %d, want 0", n)
	}
}

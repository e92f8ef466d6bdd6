// Copyright (c) 2025-2026 Avetra Media
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"sync"
	"testing"

	"github.com/avetra/avetra-go/internal/model"
	"github.com/avetra/avetra-go/internal/store"
	"github.com/avetra/avetra-go/internal/translate"
)

// recordingSink captures emitted events for assertions.
type recordingSink struct {
	mu     sync.Mutex
	events []string
}

func (r *recordingSink) Emit(_ context.Context, eventType string, _ any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, eventType)
}

func (r *recordingSink) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

func testContent(t *testing.T) (*Content, *store.Store, *recordingSink) {
	t.Helper()

	f, err := os.CreateTemp("", "avetra-service-*.db")
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	dbPath := f.Name()
	f.Close()

	db, err := store.NewDB(dbPath)
	if err != nil {
		os.Remove(dbPath)
		t.Fatalf("NewDB: %v", err)
	}
	if err := store.Migrate(db); err != nil {
		db.Close()
		os.Remove(dbPath)
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
		os.Remove(dbPath)
	})

	st := store.NewStore(db)
	sink := &recordingSink{}
	return NewContent(st, sink), st, sink
}

func TestSaveCategoryCreateThenUpdate(t *testing.T) {
	c, st, sink := testContent(t)
	ctx := context.Background()

	created, err := c.SaveCategory(ctx, CategoryInput{
		Name:     "Bible Stories",
		IsActive: true,
		Translations: model.TranslationMap{
			model.FieldName: {ES: "Historias Bíblicas"},
		},
	})
	if err != nil {
		t.Fatalf("SaveCategory (create): %v", err)
	}
	if created.ID == 0 {
		t.Fatal("created.ID should not be 0")
	}
	if created.Slug != "bible-stories" {
		t.Errorf("Slug = %q, want derived %q", created.Slug, "bible-stories")
	}
	if got := created.Translations[model.FieldName].ES; got != "Historias Bíblicas" {
		t.Errorf("ES translation = %q, want preserved", got)
	}

	// Saving again with the ID set must update the same row, not fork
	// a second one.
	updated, err := c.SaveCategory(ctx, CategoryInput{
		ID:       created.ID,
		Name:     "Bible Stories",
		Slug:     created.Slug,
		IsActive: false,
	})
	if err != nil {
		t.Fatalf("SaveCategory (update): %v", err)
	}
	if updated.ID != created.ID {
		t.Errorf("updated.ID = %d, want %d", updated.ID, created.ID)
	}
	if updated.IsActive {
		t.Error("IsActive should be false after update")
	}

	all, err := st.ListCategories(ctx)
	if err != nil {
		t.Fatalf("ListCategories: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("row count = %d, want 1", len(all))
	}

	events := sink.all()
	if len(events) != 2 || events[0] != model.EventCategoryCreated || events[1] != model.EventCategoryUpdated {
		t.Errorf("events = %v, want [category.created category.updated]", events)
	}
}

func TestSaveCategoryRequiresEnglishName(t *testing.T) {
	c, st, _ := testContent(t)
	ctx := context.Background()

	_, err := c.SaveCategory(ctx, CategoryInput{
		Translations: model.TranslationMap{
			model.FieldName: {ES: "Solo Español"},
		},
	})
	var verr *translate.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}

	// The gate fires before any store call.
	all, err := st.ListCategories(ctx)
	if err != nil {
		t.Fatalf("ListCategories: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("row count = %d, want 0 after rejected save", len(all))
	}
}

func TestSaveCategorySlugCollision(t *testing.T) {
	c, _, _ := testContent(t)
	ctx := context.Background()

	first, err := c.SaveCategory(ctx, CategoryInput{Name: "Music", IsActive: true})
	if err != nil {
		t.Fatalf("SaveCategory: %v", err)
	}
	second, err := c.SaveCategory(ctx, CategoryInput{Name: "Music", IsActive: true})
	if err != nil {
		t.Fatalf("SaveCategory (duplicate name): %v", err)
	}
	if first.Slug == second.Slug {
		t.Errorf("both slugs are %q, want suffix on the second", first.Slug)
	}
	if second.Slug != "music-2" {
		t.Errorf("second.Slug = %q, want %q", second.Slug, "music-2")
	}
}

func TestDeleteCategoryBlockedBySeries(t *testing.T) {
	c, _, _ := testContent(t)
	ctx := context.Background()

	cat, err := c.SaveCategory(ctx, CategoryInput{Name: "Music", IsActive: true})
	if err != nil {
		t.Fatalf("SaveCategory: %v", err)
	}
	if _, err := c.SaveSeries(ctx, SeriesInput{
		CategoryID: cat.ID,
		Title:      "Worship",
		IsActive:   true,
	}); err != nil {
		t.Fatalf("SaveSeries: %v", err)
	}

	err = c.DeleteCategory(ctx, cat.ID)
	var verr *translate.ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("err = %v, want ValidationError for non-empty category", err)
	}
}

func TestSaveSeriesUnknownCategory(t *testing.T) {
	c, _, _ := testContent(t)

	_, err := c.SaveSeries(context.Background(), SeriesInput{
		CategoryID: 42,
		Title:      "Orphan",
	})
	var verr *translate.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if verr.Field != "category_id" {
		t.Errorf("Field = %q, want category_id", verr.Field)
	}
}

func TestFeatureSeriesSingleton(t *testing.T) {
	c, st, _ := testContent(t)
	ctx := context.Background()

	cat, err := c.SaveCategory(ctx, CategoryInput{Name: "Music", IsActive: true})
	if err != nil {
		t.Fatalf("SaveCategory: %v", err)
	}
	s1, err := c.SaveSeries(ctx, SeriesInput{CategoryID: cat.ID, Title: "One", IsActive: true})
	if err != nil {
		t.Fatalf("SaveSeries: %v", err)
	}
	s2, err := c.SaveSeries(ctx, SeriesInput{CategoryID: cat.ID, Title: "Two", IsActive: true})
	if err != nil {
		t.Fatalf("SaveSeries: %v", err)
	}

	if _, err := c.FeatureSeries(ctx, s1.ID); err != nil {
		t.Fatalf("FeatureSeries(s1): %v", err)
	}
	if _, err := c.FeatureSeries(ctx, s2.ID); err != nil {
		t.Fatalf("FeatureSeries(s2): %v", err)
	}

	n, err := st.CountHomepageFeaturedSeries(ctx)
	if err != nil {
		t.Fatalf("CountHomepageFeaturedSeries: %v", err)
	}
	if n != 1 {
		t.Errorf("featured count = %d, want 1", n)
	}
	featured, err := st.GetHomepageFeaturedSeries(ctx)
	if err != nil {
		t.Fatalf("GetHomepageFeaturedSeries: %v", err)
	}
	if featured.ID != s2.ID {
		t.Errorf("featured = %d, want %d", featured.ID, s2.ID)
	}
}

func TestFeatureSeriesRepairsMultiFeatured(t *testing.T) {
	c, st, _ := testContent(t)
	ctx := context.Background()

	cat, err := c.SaveCategory(ctx, CategoryInput{Name: "Music", IsActive: true})
	if err != nil {
		t.Fatalf("SaveCategory: %v", err)
	}

	// Two rows already flagged, an invalid starting state.
	for _, title := range []string{"One", "Two"} {
		_, err := st.CreateSeries(ctx, store.CreateSeriesParams{
			CategoryID:         cat.ID,
			Title:              title,
			Slug:               "bad-" + title,
			IsActive:           true,
			IsHomepageFeatured: true,
		})
		if err != nil {
			t.Fatalf("CreateSeries(%s): %v", title, err)
		}
	}
	s3, err := c.SaveSeries(ctx, SeriesInput{CategoryID: cat.ID, Title: "Three", IsActive: true})
	if err != nil {
		t.Fatalf("SaveSeries: %v", err)
	}

	if _, err := c.FeatureSeries(ctx, s3.ID); err != nil {
		t.Fatalf("FeatureSeries: %v", err)
	}

	n, err := st.CountHomepageFeaturedSeries(ctx)
	if err != nil {
		t.Fatalf("CountHomepageFeaturedSeries: %v", err)
	}
	if n != 1 {
		t.Errorf("featured count = %d, want 1", n)
	}
	featured, err := st.GetHomepageFeaturedSeries(ctx)
	if err != nil {
		t.Fatalf("GetHomepageFeaturedSeries: %v", err)
	}
	if featured.ID != s3.ID {
		t.Errorf("featured = %d, want %d", featured.ID, s3.ID)
	}
}

func TestSaveCategoryKeepsFeaturedFlag(t *testing.T) {
	c, st, _ := testContent(t)
	ctx := context.Background()

	cat, err := c.SaveCategory(ctx, CategoryInput{Name: "Music", IsActive: true})
	if err != nil {
		t.Fatalf("SaveCategory: %v", err)
	}
	if _, err := c.FeatureCategory(ctx, cat.ID); err != nil {
		t.Fatalf("FeatureCategory: %v", err)
	}

	// A plain re-save must not unfeature the row.
	updated, err := c.SaveCategory(ctx, CategoryInput{
		ID:       cat.ID,
		Name:     "Music",
		Slug:     cat.Slug,
		IsActive: false,
	})
	if err != nil {
		t.Fatalf("SaveCategory (update): %v", err)
	}
	if !updated.IsHomepageFeatured {
		t.Error("IsHomepageFeatured should survive a plain update")
	}

	n, err := st.CountHomepageFeaturedCategories(ctx)
	if err != nil {
		t.Fatalf("CountHomepageFeaturedCategories: %v", err)
	}
	if n != 1 {
		t.Errorf("featured count = %d, want 1", n)
	}
}

func TestSaveSeriesKeepsFeaturedFlag(t *testing.T) {
	c, st, _ := testContent(t)
	ctx := context.Background()

	cat, err := c.SaveCategory(ctx, CategoryInput{Name: "Music", IsActive: true})
	if err != nil {
		t.Fatalf("SaveCategory: %v", err)
	}
	s, err := c.SaveSeries(ctx, SeriesInput{CategoryID: cat.ID, Title: "One", IsActive: true})
	if err != nil {
		t.Fatalf("SaveSeries: %v", err)
	}
	if _, err := c.FeatureSeries(ctx, s.ID); err != nil {
		t.Fatalf("FeatureSeries: %v", err)
	}

	updated, err := c.SaveSeries(ctx, SeriesInput{
		ID:         s.ID,
		CategoryID: cat.ID,
		Title:      "One Renamed",
		Slug:       s.Slug,
		IsActive:   true,
	})
	if err != nil {
		t.Fatalf("SaveSeries (update): %v", err)
	}
	if !updated.IsHomepageFeatured {
		t.Error("IsHomepageFeatured should survive a plain update")
	}

	n, err := st.CountHomepageFeaturedSeries(ctx)
	if err != nil {
		t.Fatalf("CountHomepageFeaturedSeries: %v", err)
	}
	if n != 1 {
		t.Errorf("featured count = %d, want 1", n)
	}
}

func TestFeatureCategoryMissing(t *testing.T) {
	c, _, _ := testContent(t)
	_, err := c.FeatureCategory(context.Background(), 999)
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("err = %v, want sql.ErrNoRows", err)
	}
}

// Category "Art" owns series "Baroque" which owns video "Ep1". The
// video has no category of its own, so its category name resolves
// through the series, in every locale.
func TestVideoCategoryNameTransitive(t *testing.T) {
	c, _, _ := testContent(t)
	ctx := context.Background()

	art, err := c.SaveCategory(ctx, CategoryInput{
		Name:     "Art",
		IsActive: true,
		Translations: model.TranslationMap{
			model.FieldName: {ES: "Arte", PT: "Arte"},
		},
	})
	if err != nil {
		t.Fatalf("SaveCategory: %v", err)
	}
	baroque, err := c.SaveSeries(ctx, SeriesInput{
		CategoryID: art.ID,
		Title:      "Baroque",
		IsActive:   true,
	})
	if err != nil {
		t.Fatalf("SaveSeries: %v", err)
	}
	ep1, err := c.SaveVideo(ctx, VideoInput{
		SeriesID:      baroque.ID,
		Title:         "Ep1",
		EpisodeNumber: 1,
		IsActive:      true,
	})
	if err != nil {
		t.Fatalf("SaveVideo: %v", err)
	}
	if ep1.CategoryID != 0 {
		t.Fatalf("video CategoryID = %d, want 0", ep1.CategoryID)
	}

	name, err := c.VideoCategoryName(ctx, ep1, model.LocaleEN)
	if err != nil {
		t.Fatalf("VideoCategoryName(en): %v", err)
	}
	if name != "Art" {
		t.Errorf("en name = %q, want Art", name)
	}
	name, err = c.VideoCategoryName(ctx, ep1, model.LocaleES)
	if err != nil {
		t.Fatalf("VideoCategoryName(es): %v", err)
	}
	if name != "Arte" {
		t.Errorf("es name = %q, want Arte", name)
	}
}

func TestSaveVideoPreservesStatusOnUpdate(t *testing.T) {
	c, _, _ := testContent(t)
	ctx := context.Background()

	cat, err := c.SaveCategory(ctx, CategoryInput{Name: "Music", IsActive: true})
	if err != nil {
		t.Fatalf("SaveCategory: %v", err)
	}
	s, err := c.SaveSeries(ctx, SeriesInput{CategoryID: cat.ID, Title: "S", IsActive: true})
	if err != nil {
		t.Fatalf("SaveSeries: %v", err)
	}
	v, err := c.SaveVideo(ctx, VideoInput{
		SeriesID:         s.ID,
		Title:            "Clip",
		ProcessingStatus: model.ProcessingReady,
		IsActive:         true,
	})
	if err != nil {
		t.Fatalf("SaveVideo: %v", err)
	}

	// An update without a status keeps the stored one.
	updated, err := c.SaveVideo(ctx, VideoInput{
		ID:       v.ID,
		SeriesID: s.ID,
		Title:    "Clip (renamed)",
		Slug:     v.Slug,
		IsActive: true,
	})
	if err != nil {
		t.Fatalf("SaveVideo (update): %v", err)
	}
	if updated.ProcessingStatus != model.ProcessingReady {
		t.Errorf("status = %q, want preserved %q", updated.ProcessingStatus, model.ProcessingReady)
	}
}

func TestSettingsBulkUpdateEmitsEvent(t *testing.T) {
	_, st, sink := testContent(t)
	ctx := context.Background()

	if err := seedSettings(t, st); err != nil {
		t.Fatalf("seed: %v", err)
	}

	var invalidated bool
	settings := NewSettings(st, sink, func(context.Context) { invalidated = true })
	err := settings.BulkUpdate(ctx, []store.SettingValueUpdate{
		{Key: model.SettingKeySiteName, Value: "Renamed"},
		{Key: model.SettingKeyVideosPerPage, Value: "24"},
	})
	if err != nil {
		t.Fatalf("BulkUpdate: %v", err)
	}
	if !invalidated {
		t.Error("onChange not invoked")
	}

	got, err := st.GetSetting(ctx, model.SettingKeySiteName)
	if err != nil {
		t.Fatalf("GetSetting: %v", err)
	}
	if got.Value != "Renamed" {
		t.Errorf("Value = %q, want Renamed", got.Value)
	}

	events := sink.all()
	if len(events) == 0 || events[len(events)-1] != model.EventSettingsBulkUpdate {
		t.Errorf("events = %v, want settings.bulk_updated last", events)
	}
}

func TestSettingsUpsertTypeValidation(t *testing.T) {
	_, st, _ := testContent(t)
	settings := NewSettings(st, nil, nil)

	_, err := settings.Upsert(context.Background(), store.UpsertSettingParams{
		Key:   model.SettingKeyVideosPerPage,
		Value: "not-a-number",
		Type:  model.SettingTypeInt,
	})
	var verr *translate.ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("err = %v, want ValidationError", err)
	}
}

func seedSettings(t *testing.T, st *store.Store) error {
	t.Helper()
	ctx := context.Background()
	for _, p := range []store.UpsertSettingParams{
		{Key: model.SettingKeySiteName, Value: "Avetra"},
		{Key: model.SettingKeyVideosPerPage, Value: "12", Type: model.SettingTypeInt},
	} {
		if _, err := st.UpsertSetting(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

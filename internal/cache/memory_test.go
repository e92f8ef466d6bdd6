// Copyright (c) 2025-2026 Avetra Media
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestMemoryCache(t *testing.T, opts MemoryOptions) *MemoryCache {
	t.Helper()
	c := NewMemoryCache(opts)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestMemoryCacheSetGet(t *testing.T) {
	c := newTestMemoryCache(t, MemoryOptions{DefaultTTL: time.Minute})
	ctx := context.Background()

	if err := c.Set(ctx, "greeting", []byte("hola"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := c.Get(ctx, "greeting")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != "hola" {
		t.Errorf("got %q, want %q", got, "hola")
	}
}

func TestMemoryCacheMiss(t *testing.T) {
	c := newTestMemoryCache(t, MemoryOptions{})
	if _, err := c.Get(context.Background(), "absent"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expected ErrCacheMiss, got %v", err)
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := newTestMemoryCache(t, MemoryOptions{})
	ctx := context.Background()

	if err := c.Set(ctx, "ephemeral", []byte("x"), 10*time.Millisecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(25 * time.Millisecond)
	if _, err := c.Get(ctx, "ephemeral"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expected expired entry to miss, got %v", err)
	}
}

func TestMemoryCacheDeleteAndClear(t *testing.T) {
	c := newTestMemoryCache(t, MemoryOptions{DefaultTTL: time.Minute})
	ctx := context.Background()

	for _, key := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, key, []byte(key), 0); err != nil {
			t.Fatalf("Set %s: %v", key, err)
		}
	}
	if err := c.Delete(ctx, "a"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if ok, _ := c.Has(ctx, "a"); ok {
		t.Error("deleted key still present")
	}
	if err := c.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if ok, _ := c.Has(ctx, "b"); ok {
		t.Error("cleared key still present")
	}
}

func TestMemoryCacheCopySemantics(t *testing.T) {
	c := newTestMemoryCache(t, MemoryOptions{DefaultTTL: time.Minute})
	ctx := context.Background()

	src := []byte("original")
	if err := c.Set(ctx, "k", src, 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	src[0] = 'X'

	got, err := c.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != "original" {
		t.Errorf("stored value mutated via caller slice: %q", got)
	}
	got[0] = 'Y'
	again, _ := c.Get(ctx, "k")
	if string(again) != "original" {
		t.Errorf("stored value mutated via returned slice: %q", again)
	}
}

func TestMemoryCacheMaxItemsSweep(t *testing.T) {
	c := newTestMemoryCache(t, MemoryOptions{DefaultTTL: time.Minute, MaxItems: 3})
	ctx := context.Background()

	for _, key := range []string{"a", "b", "c", "d"} {
		if err := c.Set(ctx, key, []byte(key), 0); err != nil {
			t.Fatalf("Set %s: %v", key, err)
		}
	}
	if items := c.Stats().Items; items > 3 {
		t.Errorf("sweep did not bound the cache: %d items", items)
	}
}

func TestMemoryCacheClosed(t *testing.T) {
	c := NewMemoryCache(MemoryOptions{})
	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := c.Set(context.Background(), "k", []byte("v"), 0); !errors.Is(err, ErrCacheClosed) {
		t.Errorf("expected ErrCacheClosed, got %v", err)
	}
	// Closing twice is a no-op.
	if err := c.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}

func TestMemoryCacheStats(t *testing.T) {
	c := newTestMemoryCache(t, MemoryOptions{DefaultTTL: time.Minute})
	ctx := context.Background()

	_ = c.Set(ctx, "k", []byte("v"), 0)
	_, _ = c.Get(ctx, "k")
	_, _ = c.Get(ctx, "missing")

	stats := c.Stats()
	if stats.Hits != 1 || stats.Misses != 1 || stats.Sets != 1 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if stats.HitRate != 50 {
		t.Errorf("hit rate = %v, want 50", stats.HitRate)
	}
}

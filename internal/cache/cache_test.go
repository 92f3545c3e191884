package cache

import (
	"log/slog"
	"testing"
	"time"

	"hiresight/internal/config"
	"hiresight/internal/errors"
)

func newTestCache(t *testing.T, ttl time.Duration, maxSize int) *Cache {
	t.Helper()
	c := New(config.CacheConfig{Enabled: true, TTL: ttl, MaxSize: maxSize},
		errors.NewLogger(slog.LevelError))
	if c == nil {
		t.Fatal("New() returned nil for enabled cache")
	}
	return c
}

func TestCacheDisabled(t *testing.T) {
	c := New(config.CacheConfig{Enabled: false}, nil)
	if c != nil {
		t.Fatal("New() should return nil when disabled")
	}

	// nil cache is safe to use
	c.Set("k", 1)
	if _, ok := c.Get("k"); ok {
		t.Error("nil cache must never hit")
	}
	stats := c.Stats()
	if enabled, _ := stats["enabled"].(bool); enabled {
		t.Error("nil cache must report enabled=false")
	}
}

func TestCacheGetSet(t *testing.T) {
	c := newTestCache(t, time.Minute, 10)

	if _, ok := c.Get("missing"); ok {
		t.Error("Get() hit on missing key")
	}

	c.Set("k", "value")
	got, ok := c.Get("k")
	if !ok || got != "value" {
		t.Errorf("Get() = %v, %v, want value, true", got, ok)
	}

	c.Delete("k")
	if _, ok := c.Get("k"); ok {
		t.Error("Get() hit after Delete()")
	}
}

func TestCacheExpiry(t *testing.T) {
	c := newTestCache(t, 10*time.Millisecond, 10)

	c.Set("k", 1)
	time.Sleep(20 * time.Millisecond)
	if _, ok := c.Get("k"); ok {
		t.Error("Get() hit on expired entry")
	}
}

func TestCacheEviction(t *testing.T) {
	c := newTestCache(t, time.Minute, 2)

	c.Set("a", 1)
	time.Sleep(2 * time.Millisecond)
	c.Set("b", 2)
	time.Sleep(2 * time.Millisecond)
	c.Set("c", 3)

	if _, ok := c.Get("a"); ok {
		t.Error("oldest entry should have been evicted")
	}
	if _, ok := c.Get("b"); !ok {
		t.Error("entry b should survive eviction")
	}
	if _, ok := c.Get("c"); !ok {
		t.Error("entry c should survive eviction")
	}
}

func TestCacheStats(t *testing.T) {
	c := newTestCache(t, time.Minute, 10)

	c.Set("k", 1)
	c.Get("k")
	c.Get("nope")

	stats := c.Stats()
	if stats["hits"].(uint64) != 1 || stats["misses"].(uint64) != 1 {
		t.Errorf("stats = %v, want 1 hit and 1 miss", stats)
	}
	if stats["size"].(int) != 1 {
		t.Errorf("size = %v, want 1", stats["size"])
	}
}

func TestKeyDeterministic(t *testing.T) {
	a := Key("analyze", "posting text", true)
	b := Key("analyze", "posting text", true)
	if a != b {
		t.Errorf("Key() not deterministic: %q vs %q", a, b)
	}
	if a == Key("analyze", "other text", true) {
		t.Error("Key() should differ for different inputs")
	}
	if len(a) != 32 {
		t.Errorf("Key() length = %d, want 32 hex chars", len(a))
	}
}

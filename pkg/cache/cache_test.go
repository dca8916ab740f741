package cache

import (
	"context"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("NullCache should not store data")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	// Miss on unknown key
	if _, hit, err := c.Get(ctx, "missing"); err != nil || hit {
		t.Errorf("Get(missing) = hit %v, err %v; want miss", hit, err)
	}

	// Roundtrip
	if err := c.Set(ctx, "layout:abc", []byte("blocks"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "layout:abc")
	if err != nil || !hit {
		t.Fatalf("Get = hit %v, err %v; want hit", hit, err)
	}
	if string(data) != "blocks" {
		t.Errorf("Get data = %q, want %q", data, "blocks")
	}

	// Expired entries turn into misses
	if err := c.Set(ctx, "layout:old", []byte("stale"), -time.Second); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "layout:old"); hit {
		t.Error("expired entry should miss")
	}

	// Delete
	if err := c.Delete(ctx, "layout:abc"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "layout:abc"); hit {
		t.Error("deleted entry should miss")
	}
	if err := c.Delete(ctx, "layout:abc"); err != nil {
		t.Errorf("Delete of missing key should not error: %v", err)
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}
	if h3 := Hash([]byte("world")); h1 == h3 {
		t.Error("different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("hash length = %d, want 64", len(h1))
	}
}

func TestLayoutKey(t *testing.T) {
	keyer := NewDefaultKeyer()

	a := keyer.LayoutKey("treehash", LayoutKeyOpts{Iterations: 50, Seed: 42})
	b := keyer.LayoutKey("treehash", LayoutKeyOpts{Iterations: 50, Seed: 42})
	if a != b {
		t.Error("identical inputs should produce identical keys")
	}

	// Any option change must change the key.
	variants := []LayoutKeyOpts{
		{Iterations: 51, Seed: 42},
		{Iterations: 50, Seed: 43},
	}
	for _, opts := range variants {
		if keyer.LayoutKey("treehash", opts) == a {
			t.Errorf("opts %+v should produce a distinct key", opts)
		}
	}
	if keyer.LayoutKey("otherhash", LayoutKeyOpts{Iterations: 50, Seed: 42}) == a {
		t.Error("different tree hashes should produce distinct keys")
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "tenant:a:")

	key := scoped.LayoutKey("h", LayoutKeyOpts{Iterations: 50})
	if want := "tenant:a:" + inner.LayoutKey("h", LayoutKeyOpts{Iterations: 50}); key != want {
		t.Errorf("scoped key = %q, want %q", key, want)
	}
}

package store

import (
	"context"
	"errors"
	"testing"

	"github.com/skylinehq/skyline/pkg/layout"
)

func testLayout() layout.Layout {
	return layout.Layout{
		Blocks: []layout.Block{
			{
				ID:       "repo",
				Type:     "folder",
				Position: layout.Vec3{X: 0, Y: 0.5, Z: 0},
				Size:     layout.Vec3{X: 15, Y: 1, Z: 15},
			},
		},
		Seed:      42,
		NodeCount: 1,
	}
}

func TestMemoryStoreSaveAndGet(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()

	ctx := context.Background()
	id, err := s.Save(ctx, testLayout(), "hash123")
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if id == "" {
		t.Fatal("Save returned empty ID")
	}

	rec, err := s.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if rec.ID != id {
		t.Errorf("ID = %q, want %q", rec.ID, id)
	}
	if rec.TreeHash != "hash123" {
		t.Errorf("TreeHash = %q, want %q", rec.TreeHash, "hash123")
	}
	if len(rec.Layout.Blocks) != 1 || rec.Layout.Blocks[0].ID != "repo" {
		t.Errorf("Layout not preserved: %+v", rec.Layout)
	}
	if rec.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
}

func TestMemoryStoreNotFound(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()

	_, err := s.Get(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreUniqueIDs(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()

	ctx := context.Background()
	seen := make(map[string]bool)
	for range 10 {
		id, err := s.Save(ctx, testLayout(), "h")
		if err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		if seen[id] {
			t.Fatalf("Duplicate ID %q", id)
		}
		seen[id] = true
	}
}

func TestMemoryStoreGetReturnsCopy(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()

	ctx := context.Background()
	id, err := s.Save(ctx, testLayout(), "h")
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	first, err := s.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	first.TreeHash = "mutated"

	second, err := s.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if second.TreeHash != "h" {
		t.Error("Mutating a returned record should not affect the store")
	}
}

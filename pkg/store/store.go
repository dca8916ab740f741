// Package store provides persistence for solved layouts.
//
// The API server uses a Store to keep finished layouts addressable by ID,
// so a client can solve once and fetch the result again later (or share
// the link). Two backends are provided:
//
//   - [MemoryStore]: in-process, for tests and single-instance deployments
//   - [MongoStore]: MongoDB-backed, for deployments that need durability
package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/skylinehq/skyline/pkg/layout"
)

// ErrNotFound is returned when no record exists for the requested ID.
var ErrNotFound = errors.New("layout not found")

// Record is a persisted layout with its metadata.
type Record struct {
	ID        string        `json:"id" bson:"_id"`
	Layout    layout.Layout `json:"layout" bson:"layout"`
	TreeHash  string        `json:"tree_hash" bson:"tree_hash"`
	CreatedAt time.Time     `json:"created_at" bson:"created_at"`
}

// Store persists solved layouts by ID.
// Implementations must be safe for concurrent use.
type Store interface {
	// Save persists a layout and returns its assigned ID.
	Save(ctx context.Context, l layout.Layout, treeHash string) (string, error)

	// Get retrieves a record by ID. Returns ErrNotFound if absent.
	Get(ctx context.Context, id string) (*Record, error)

	// Close releases any resources held by the store.
	Close() error
}

// MemoryStore is an in-process store backed by a map.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
}

// NewMemoryStore creates an empty in-process store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]Record)}
}

// Save persists a layout under a fresh UUID.
func (s *MemoryStore) Save(ctx context.Context, l layout.Layout, treeHash string) (string, error) {
	rec := Record{
		ID:        uuid.NewString(),
		Layout:    l,
		TreeHash:  treeHash,
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.ID] = rec
	return rec.ID, nil
}

// Get retrieves a record by ID.
func (s *MemoryStore) Get(ctx context.Context, id string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &rec, nil
}

// Close is a no-op for the in-process store.
func (s *MemoryStore) Close() error {
	return nil
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)

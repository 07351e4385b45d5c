// Package memory holds the authoritative entry collection in process
// memory. It is the default backend: created empty at startup, discarded at
// shutdown, nothing persisted.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"jizhang/internal/core"
)

type Store struct {
	mu    sync.Mutex
	items []core.Entry
}

func New() *Store {
	return &Store{}
}

// Append stores the entry at the end of the collection and assigns its id.
// Ids are UUIDs, so a deleted id can never come back. The entry is trusted:
// validation happened at the form boundary.
func (s *Store) Append(_ context.Context, e core.Entry) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = uuid.NewString()
	s.items = append(s.items, e)
	return e.ID, nil
}

// Remove deletes the entry with the matching id, preserving the relative
// order of the rest. An unknown id leaves the collection unchanged.
func (s *Store) Remove(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.items {
		if e.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return nil
}

// List returns a fresh snapshot in insertion order.
func (s *Store) List(_ context.Context) ([]core.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Entry, len(s.items))
	copy(out, s.items)
	return out, nil
}

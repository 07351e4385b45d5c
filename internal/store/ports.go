package store

import (
	"context"

	"jizhang/internal/core"
)

// Ports for entry storage backends.
type (
	// EntryWriter appends a validated entry and assigns its identity.
	// The returned id is unique for the lifetime of the backend and is
	// never reused, even after the entry is deleted.
	EntryWriter interface {
		Append(ctx context.Context, e core.Entry) (id string, err error)
	}

	// EntryRemover deletes the entry with the matching id. Removing an
	// unknown id is a no-op, not an error.
	EntryRemover interface {
		Remove(ctx context.Context, id string) error
	}

	// EntryLister returns an ordered snapshot of all entries, oldest
	// first. Callers receive a copy and must not assume it stays current.
	EntryLister interface {
		List(ctx context.Context) ([]core.Entry, error)
	}
)

// Backend bundles the three ports every storage implementation provides.
type Backend interface {
	EntryWriter
	EntryRemover
	EntryLister
}

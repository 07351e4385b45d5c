package storage

import (
	"context"
	"path/filepath"
	"testing"

	"jizhang/internal/core"
)

func openTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "entries.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestSQLiteRoundTrip(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	id1, err := repo.Append(ctx, core.Entry{Description: "咖啡", Amount: core.Money{Cents: 450}, Category: core.CategoryFood})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	id2, err := repo.Append(ctx, core.Entry{Description: "地铁", Amount: core.Money{Cents: 300}, Category: core.CategoryTransport})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if id1 == id2 {
		t.Fatalf("ids must be unique, both %q", id1)
	}

	entries, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 2 || entries[0].ID != id1 || entries[1].ID != id2 {
		t.Fatalf("unexpected listing: %v", entries)
	}
	if entries[0].Description != "咖啡" || entries[0].Amount.Cents != 450 || entries[0].Category != core.CategoryFood {
		t.Fatalf("fields not round-tripped: %+v", entries[0])
	}
}

func TestSQLiteRemove(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	id1, _ := repo.Append(ctx, core.Entry{Description: "早饭", Amount: core.Money{Cents: 1200}, Category: core.CategoryFood})
	id2, _ := repo.Append(ctx, core.Entry{Description: "晚饭", Amount: core.Money{Cents: 3600}, Category: core.CategoryFood})

	if err := repo.Remove(ctx, id1); err != nil {
		t.Fatalf("remove: %v", err)
	}
	entries, _ := repo.List(ctx)
	if len(entries) != 1 || entries[0].ID != id2 {
		t.Fatalf("unexpected listing after remove: %v", entries)
	}

	// Unknown and malformed ids are no-ops.
	if err := repo.Remove(ctx, "999999"); err != nil {
		t.Fatalf("remove unknown: %v", err)
	}
	if err := repo.Remove(ctx, "not-a-number"); err != nil {
		t.Fatalf("remove malformed: %v", err)
	}
	entries, _ = repo.List(ctx)
	if len(entries) != 1 {
		t.Fatalf("no-op removes changed the collection: %v", entries)
	}
}

func TestSQLiteIDsNotReused(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	id, _ := repo.Append(ctx, core.Entry{Description: "电影票", Amount: core.Money{Cents: 5500}, Category: core.CategoryEntertainment})
	if err := repo.Remove(ctx, id); err != nil {
		t.Fatalf("remove: %v", err)
	}
	next, _ := repo.Append(ctx, core.Entry{Description: "爆米花", Amount: core.Money{Cents: 1800}, Category: core.CategoryFood})
	if next == id {
		t.Fatalf("id %q reused after deletion", id)
	}
}

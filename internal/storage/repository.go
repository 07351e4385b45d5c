// Package storage provides the SQLite persistence backend. It implements
// the same ports as the in-memory store, so the rest of the application
// never knows which one it talks to.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	_ "modernc.org/sqlite"

	"jizhang/internal/core"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Append implements store.EntryWriter. The id is the AUTOINCREMENT rowid
// rendered as a decimal string.
func (r *SQLiteRepository) Append(ctx context.Context, e core.Entry) (string, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO entries (description, amount_cents, category) VALUES (?, ?, ?)`,
		e.Description, e.Amount.Cents, string(e.Category))
	if err != nil {
		return "", fmt.Errorf("insert entry: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return "", fmt.Errorf("entry id: %w", err)
	}

	slog.InfoContext(ctx, "Entry saved to SQLite",
		"id", id,
		"description", e.Description,
		"amount_cents", e.Amount.Cents,
		"category", e.Category)

	return strconv.FormatInt(id, 10), nil
}

// Remove implements store.EntryRemover. An unknown id deletes zero rows and
// is not an error.
func (r *SQLiteRepository) Remove(ctx context.Context, id string) error {
	numeric, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		// Ids this backend never issued cannot match anything.
		return nil
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM entries WHERE id = ?`, numeric)
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		slog.DebugContext(ctx, "Remove of unknown entry id ignored", "id", id)
	}
	return nil
}

// List implements store.EntryLister, oldest first.
func (r *SQLiteRepository) List(ctx context.Context) ([]core.Entry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, description, amount_cents, category FROM entries ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var entries []core.Entry
	for rows.Next() {
		var (
			id       int64
			e        core.Entry
			category string
		)
		if err := rows.Scan(&id, &e.Description, &e.Amount.Cents, &category); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		e.ID = strconv.FormatInt(id, 10)
		e.Category = core.Category(category)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return entries, nil
}

// Package directory is a sqlite-backed read model of registered accounts,
// used for display-name enrichment. It stands in, at the same boundary, for
// the relational user store owned by the CRUD API.
package directory

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id       TEXT PRIMARY KEY,
	username TEXT NOT NULL
);`

type Store struct {
	db *sql.DB
}

// Open opens (or creates) the directory database at path and ensures the
// schema exists. Path may be a sqlite URI, including the in-memory form.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("directory: open %s: %w", path, err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("directory: ensure schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Username returns the display name registered for id. An unknown id is not
// an error; it resolves to the empty string.
func (s *Store) Username(ctx context.Context, id string) (string, error) {
	var name string
	err := s.db.QueryRowContext(ctx, `SELECT username FROM users WHERE id = ?`, id).Scan(&name)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("directory: lookup %s: %w", id, err)
	}
	return name, nil
}

// UpsertUser records or updates the display name for id. Called by the sync
// job that mirrors the account store into this gateway.
func (s *Store) UpsertUser(ctx context.Context, id, username string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, username) VALUES (?, ?)
		 ON CONFLICT(id) DO UPDATE SET username = excluded.username`,
		id, username,
	)
	if err != nil {
		return fmt.Errorf("directory: upsert %s: %w", id, err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

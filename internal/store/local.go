package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Local is the on-device backend: a single SQLite table of string keys to
// JSON values, one key per persisted entity.
type Local struct {
	db *sql.DB
}

// DefaultDBPath returns the default on-device database location.
func DefaultDBPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(homeDir, ".arise", "arise.db"), nil
}

// OpenLocal opens (and creates if missing) the local store at path.
func OpenLocal(ctx context.Context, path string) (*Local, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS records (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate records: %w", err)
	}
	return &Local{db: db}, nil
}

func (l *Local) Close() error { return l.db.Close() }

// Get unmarshals the value stored under key into v. Returns ErrNotFound
// when the key has never been set.
func (l *Local) Get(ctx context.Context, key string, v any) error {
	row := l.db.QueryRowContext(ctx, `SELECT value FROM records WHERE key = ?`, key)
	var raw string
	if err := row.Scan(&raw); err != nil {
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		return fmt.Errorf("record get %q: %w", key, err)
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return fmt.Errorf("record decode %q: %w", key, err)
	}
	return nil
}

func (l *Local) Set(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("record encode %q: %w", key, err)
	}
	_, err = l.db.ExecContext(ctx, `
		INSERT INTO records (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, string(raw))
	if err != nil {
		return fmt.Errorf("record set %q: %w", key, err)
	}
	return nil
}

func (l *Local) Remove(ctx context.Context, key string) error {
	if _, err := l.db.ExecContext(ctx, `DELETE FROM records WHERE key = ?`, key); err != nil {
		return fmt.Errorf("record remove %q: %w", key, err)
	}
	return nil
}

// Clear wipes every record. Used by the factory reset.
func (l *Local) Clear(ctx context.Context) error {
	if _, err := l.db.ExecContext(ctx, `DELETE FROM records`); err != nil {
		return fmt.Errorf("records clear: %w", err)
	}
	return nil
}

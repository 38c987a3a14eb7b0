// Package kvstore keeps the persistent menu cache in a local SQLite key/value table.
package kvstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "modernc.org/sqlite"

	"wasup-chucks/internal/domain/menus"
)

const currentVersion = 1

// Keys under which the cached document and its fetch time are stored.
const (
	KeyMenuJSON  = "menu_json"
	KeyCacheTime = "cache_time"
)

// Store is a SQLite-backed persistent cache tier.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the SQLite database at dbPath and runs migrations.
func New(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// NewMemory creates an in-memory store for testing.
func NewMemory() (*Store, error) {
	return New(":memory:")
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	var version int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}
	if version >= currentVersion {
		return nil
	}

	if version < 1 {
		const ddl = `
		CREATE TABLE IF NOT EXISTS menu_cache (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
		);`
		if _, err := s.db.Exec(ddl); err != nil {
			return fmt.Errorf("migrate v1: %w", err)
		}
	}

	_, err := s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentVersion))
	return err
}

// Load returns the stored snapshot. Missing keys are a miss, not an error.
func (s *Store) Load(ctx context.Context) (menus.Snapshot, bool, error) {
	body, ok, err := s.get(ctx, KeyMenuJSON)
	if err != nil || !ok {
		return menus.Snapshot{}, false, err
	}
	rawTime, ok, err := s.get(ctx, KeyCacheTime)
	if err != nil || !ok {
		return menus.Snapshot{}, false, err
	}

	millis, err := strconv.ParseInt(rawTime, 10, 64)
	if err != nil {
		return menus.Snapshot{}, false, fmt.Errorf("parse %s: %w", KeyCacheTime, err)
	}
	resp, err := menus.Unmarshal([]byte(body))
	if err != nil {
		return menus.Snapshot{}, false, fmt.Errorf("decode %s: %w", KeyMenuJSON, err)
	}
	return menus.Snapshot{Menu: resp, FetchedAt: time.UnixMilli(millis)}, true, nil
}

// Save writes the document and its fetch time in one transaction.
func (s *Store) Save(ctx context.Context, snap menus.Snapshot) error {
	data, err := menus.Marshal(snap.Menu)
	if err != nil {
		return fmt.Errorf("encode menu: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	const upsert = `INSERT INTO menu_cache (key, value, updated_at) VALUES (?, ?, strftime('%Y-%m-%dT%H:%M:%SZ','now'))
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	if _, err := tx.ExecContext(ctx, upsert, KeyMenuJSON, string(data)); err != nil {
		return fmt.Errorf("set %s: %w", KeyMenuJSON, err)
	}
	if _, err := tx.ExecContext(ctx, upsert, KeyCacheTime, strconv.FormatInt(snap.FetchedAt.UnixMilli(), 10)); err != nil {
		return fmt.Errorf("set %s: %w", KeyCacheTime, err)
	}
	return tx.Commit()
}

// Clear deletes both keys.
func (s *Store) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM menu_cache WHERE key IN (?, ?)`, KeyMenuJSON, KeyCacheTime)
	if err != nil {
		return fmt.Errorf("clear menu cache: %w", err)
	}
	return nil
}

func (s *Store) get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM menu_cache WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return value, true, nil
}

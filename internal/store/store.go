// Package store handles SQLite persistence of downloaded assets.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver.
)

// busyTimeout bounds how long a write waits for a lock held elsewhere.
const busyTimeout = 5 * time.Second

// ErrNotFound is returned when no cached asset has the requested name.
var ErrNotFound = errors.New("asset not cached")

// Asset is one cached upstream file.
type Asset struct {
	Name      string
	Body      []byte
	Size      int64
	FetchedAt time.Time
}

// Store wraps SQLite access for cached assets.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// Concurrent loads write through one connection and wait out locks held
	// by other processes.
	db.SetMaxOpenConns(1)
	store := &Store{db: db, now: time.Now}
	if err := store.configure(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on configuration failure.
			_ = cerr
		}
		return nil, err
	}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) configure() error {
	if _, err := s.db.Exec(fmt.Sprintf("PRAGMA busy_timeout = %d", busyTimeout.Milliseconds())); err != nil {
		return fmt.Errorf("failed to set busy timeout: %w", err)
	}
	return nil
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS assets (
			name TEXT PRIMARY KEY,
			body BLOB NOT NULL,
			size INTEGER NOT NULL,
			fetched_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_assets_fetched_at ON assets(fetched_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

const upsertAsset = `INSERT INTO assets (name, body, size, fetched_at)
	VALUES (?, ?, ?, ?)
	ON CONFLICT(name) DO UPDATE SET body = excluded.body, size = excluded.size, fetched_at = excluded.fetched_at`

// PutAsset stores or replaces one asset body.
func (s *Store) PutAsset(ctx context.Context, name string, body []byte) error {
	if name == "" {
		return fmt.Errorf("asset name is required")
	}
	if body == nil {
		body = []byte{}
	}
	_, err := s.db.ExecContext(ctx, upsertAsset, name, body, len(body), s.now().UTC().Format(time.RFC3339Nano))
	return err
}

// PutAssets stores several assets in one transaction.
func (s *Store) PutAssets(ctx context.Context, assets map[string][]byte) (err error) {
	if len(assets) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	stmt, err := tx.PrepareContext(ctx, upsertAsset)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := stmt.Close(); cerr != nil {
			// Best-effort statement close.
			_ = cerr
		}
	}()
	fetchedAt := s.now().UTC().Format(time.RFC3339Nano)
	for name, body := range assets {
		if body == nil {
			body = []byte{}
		}
		if _, err = stmt.ExecContext(ctx, name, body, len(body), fetchedAt); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// GetAsset returns a cached asset including its body.
func (s *Store) GetAsset(ctx context.Context, name string) (Asset, error) {
	var asset Asset
	var fetchedAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT name, body, size, fetched_at FROM assets WHERE name = ?`, name,
	).Scan(&asset.Name, &asset.Body, &asset.Size, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Asset{}, ErrNotFound
	}
	if err != nil {
		return Asset{}, err
	}
	asset.FetchedAt, err = time.Parse(time.RFC3339Nano, fetchedAt)
	if err != nil {
		return Asset{}, err
	}
	return asset, nil
}

// ListAssets returns metadata for cached assets, optionally restricted to the
// given names, ordered by name. Bodies are not loaded.
func (s *Store) ListAssets(ctx context.Context, names ...string) ([]Asset, error) {
	query := `SELECT name, size, fetched_at FROM assets`
	args := make([]any, 0, len(names))
	if len(names) > 0 {
		placeholders := make([]string, len(names))
		for i, name := range names {
			placeholders[i] = "?"
			args = append(args, name)
		}
		query += fmt.Sprintf(" WHERE name IN (%s)", strings.Join(placeholders, ","))
	}
	query += " ORDER BY name ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []Asset
	for rows.Next() {
		var asset Asset
		var fetchedAt string
		if err := rows.Scan(&asset.Name, &asset.Size, &fetchedAt); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, fetchedAt)
		if err != nil {
			return nil, err
		}
		asset.FetchedAt = parsed
		result = append(result, asset)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteAssets removes cached assets. With no names every asset is removed.
// It returns the number of deleted rows.
func (s *Store) DeleteAssets(ctx context.Context, names ...string) (int64, error) {
	query := `DELETE FROM assets`
	args := make([]any, 0, len(names))
	if len(names) > 0 {
		placeholders := make([]string, len(names))
		for i, name := range names {
			placeholders[i] = "?"
			args = append(args, name)
		}
		query += fmt.Sprintf(" WHERE name IN (%s)", strings.Join(placeholders, ","))
	}
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

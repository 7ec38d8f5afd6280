// ABOUTME: EntryStore implements storage.Backend on the entries table
// ABOUTME: Upserts on write; prefix listing uses a range scan on the primary key
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/harper/tubescribe/internal/storage"
)

// EntryStore handles key-value persistence
type EntryStore struct {
	db *DB
}

var _ storage.Backend = (*EntryStore)(nil)

// NewEntryStore creates a new EntryStore
func NewEntryStore(db *DB) *EntryStore {
	return &EntryStore{db: db}
}

// Get returns the value for key or storage.ErrNotFound
func (s *EntryStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, "SELECT value FROM entries WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return value, nil
}

// Set stores value under key, replacing any previous value
func (s *EntryStore) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO entries (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, key, value, time.Now())
	if err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

// Exists reports whether key has a value
func (s *EntryStore) Exists(ctx context.Context, key string) (bool, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM entries WHERE key = ?", key).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// Keys lists every key starting with prefix, in key order
func (s *EntryStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT key FROM entries WHERE substr(key, 1, ?) = ? ORDER BY key", len(prefix), prefix)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// Delete removes key; deleting an absent key is not an error
func (s *EntryStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM entries WHERE key = ?", key)
	return err
}

// Close is a no-op; the owning Storage closes the database
func (s *EntryStore) Close() error {
	return nil
}

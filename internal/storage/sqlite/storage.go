// ABOUTME: Unified SQLite storage bundling the entry backend and the embedding index
// ABOUTME: The default tubescribe store; one database file holds both
package sqlite

import (
	"fmt"
)

// Storage is a storage.Backend whose Close also closes the database
type Storage struct {
	*EntryStore
	db         *DB
	embeddings *EmbeddingStore
}

// NewStorage opens the database at DefaultDBPath
func NewStorage() (*Storage, error) {
	return NewStorageWithPath(DefaultDBPath())
}

// NewStorageWithPath initializes storage with a custom database path
func NewStorageWithPath(dbPath string) (*Storage, error) {
	db, err := Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return newStorage(db), nil
}

// NewStorageInMemory creates an in-memory storage (for testing)
func NewStorageInMemory() (*Storage, error) {
	db, err := OpenInMemory()
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}
	return newStorage(db), nil
}

func newStorage(db *DB) *Storage {
	return &Storage{
		EntryStore: NewEntryStore(db),
		db:         db,
		embeddings: NewEmbeddingStore(db),
	}
}

// Embeddings returns the vector index sharing this database
func (s *Storage) Embeddings() *EmbeddingStore {
	return s.embeddings
}

// DB returns the underlying database
func (s *Storage) DB() *DB {
	return s.db
}

// Close closes the database
func (s *Storage) Close() error {
	return s.db.Close()
}

// ABOUTME: Opens the configured chunk store backend and its matching vector index
// ABOUTME: sqlite keeps vectors in a table; redis and charm keep them as JSON records
package backend

import (
	"context"
	"fmt"

	"github.com/harper/tubescribe/internal/charm"
	"github.com/harper/tubescribe/internal/config"
	"github.com/harper/tubescribe/internal/storage"
	"github.com/harper/tubescribe/internal/storage/redis"
	"github.com/harper/tubescribe/internal/storage/sqlite"
)

// Stores bundles the chunk store and vector index sharing one backend
type Stores struct {
	Chunks  *storage.Store
	Vectors storage.VectorIndex
}

// Close closes the shared backend
func (s *Stores) Close() error {
	return s.Chunks.Close()
}

// Open connects to the backend named by cfg.StoreBackend
func Open(ctx context.Context, cfg *config.Config) (*Stores, error) {
	switch cfg.StoreBackend {
	case config.BackendSQLite, "":
		path := cfg.DBPath
		if path == "" {
			path = sqlite.DefaultDBPath()
		}
		s, err := sqlite.NewStorageWithPath(path)
		if err != nil {
			return nil, err
		}
		return &Stores{Chunks: storage.New(s), Vectors: s.Embeddings()}, nil

	case config.BackendRedis:
		b, err := redis.New(ctx, redis.Config{Addr: cfg.RedisAddr})
		if err != nil {
			return nil, err
		}
		return FromBackend(b), nil

	case config.BackendCharm:
		c, err := charm.NewClient(&charm.Config{
			Host:     cfg.CharmHost,
			DBName:   cfg.CharmDBName,
			AutoSync: cfg.AutoSync,
		})
		if err != nil {
			return nil, err
		}
		return FromBackend(c), nil

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

// FromBackend pairs a key-value backend with a JSON vector index on the same keys
func FromBackend(b storage.Backend) *Stores {
	return &Stores{Chunks: storage.New(b), Vectors: storage.NewVectorStorage(b)}
}

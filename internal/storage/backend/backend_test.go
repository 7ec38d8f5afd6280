// ABOUTME: Tests for backend selection
// ABOUTME: Uses sqlite files in a temp dir and the in-memory backend
package backend

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/harper/tubescribe/internal/config"
	"github.com/harper/tubescribe/internal/models"
	"github.com/harper/tubescribe/internal/storage"
	"github.com/harper/tubescribe/internal/storage/sqlite"
)

func TestOpen_SQLite(t *testing.T) {
	ctx := context.Background()
	cfg := config.Defaults()
	cfg.DBPath = filepath.Join(t.TempDir(), "tubescribe.db")

	stores, err := Open(ctx, cfg)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer func() { _ = stores.Close() }()

	if _, ok := stores.Vectors.(*sqlite.EmbeddingStore); !ok {
		t.Errorf("Vectors = %T, want *sqlite.EmbeddingStore", stores.Vectors)
	}

	tr := &models.Transcript{VideoID: "abc", Snippets: []models.Snippet{{Text: "hi"}}}
	if err := stores.Chunks.SaveTranscript(ctx, tr); err != nil {
		t.Fatalf("SaveTranscript() error = %v", err)
	}
}

func TestOpen_UnknownBackend(t *testing.T) {
	cfg := config.Defaults()
	cfg.StoreBackend = "etcd"
	if _, err := Open(context.Background(), cfg); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestFromBackend_SharesKeys(t *testing.T) {
	ctx := context.Background()
	b := storage.NewMemoryBackend()
	stores := FromBackend(b)

	emb := []models.Embedding{{VideoID: "abc", Text: "t", Vector: []float64{1, 0}}}
	if err := stores.Vectors.SaveEmbeddings(ctx, "abc", emb); err != nil {
		t.Fatalf("SaveEmbeddings() error = %v", err)
	}
	ok, err := b.Exists(ctx, storage.EmbeddingKey("abc"))
	if err != nil || !ok {
		t.Errorf("embedding key missing from backend: %v, %v", ok, err)
	}
}

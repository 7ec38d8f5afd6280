// ABOUTME: Tests for the Redis backend
// ABOUTME: Live tests run only when TUBESCRIBE_TEST_REDIS names a server
package redis

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/harper/tubescribe/internal/models"
	"github.com/harper/tubescribe/internal/storage"
)

func TestEscapeGlob(t *testing.T) {
	got := escapeGlob(`tubescribe:chunks:a*b?[c]`)
	want := `tubescribe:chunks:a\*b\?\[c\]`
	if got != want {
		t.Errorf("escapeGlob() = %s, want %s", got, want)
	}
}

func TestNew_UnreachableServer(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if _, err := New(ctx, Config{Addr: "127.0.0.1:1", DialTimeout: 200 * time.Millisecond}); err == nil {
		t.Error("expected error connecting to a closed port")
	}
}

func TestBackend_Live(t *testing.T) {
	addr := os.Getenv("TUBESCRIBE_TEST_REDIS")
	if addr == "" {
		t.Skip("TUBESCRIBE_TEST_REDIS not set")
	}

	ctx := context.Background()
	ns := "tubescribe-test-" + uuid.New().String() + ":"
	b, err := New(ctx, Config{Addr: addr, Namespace: ns})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer func() { _ = b.Close() }()

	store := storage.New(b)
	defer func() { _ = store.DeleteVideo(ctx, "vid") }()

	if _, err := store.LoadTranscript(ctx, "vid"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("LoadTranscript() error = %v, want ErrNotFound", err)
	}

	tr := &models.Transcript{VideoID: "vid", Language: "French", LanguageCode: "fr",
		Snippets: []models.Snippet{{Text: "bonjour", Start: 0, Duration: 1}}}
	if err := store.SaveTranscript(ctx, tr); err != nil {
		t.Fatalf("SaveTranscript() error = %v", err)
	}

	videos, err := store.ListVideos(ctx)
	if err != nil {
		t.Fatalf("ListVideos() error = %v", err)
	}
	if len(videos) != 1 || videos[0].VideoID != "vid" {
		t.Errorf("ListVideos() = %+v", videos)
	}
}

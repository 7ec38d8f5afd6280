// ABOUTME: Tests for application wiring over an in-memory backend
// ABOUTME: Checks ingest invalidates the search index and remove clears everything
package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/harper/tubescribe/internal/config"
	"github.com/harper/tubescribe/internal/llm/llmtest"
	"github.com/harper/tubescribe/internal/models"
	"github.com/harper/tubescribe/internal/storage"
	"github.com/harper/tubescribe/internal/storage/backend"
)

func newTestApp(t *testing.T) (*App, *llmtest.Client) {
	t.Helper()
	client := llmtest.New("recipe", "garden")
	stores := backend.FromBackend(storage.NewMemoryBackend())
	a := Assemble(config.Defaults(), nil, stores, client, nil)
	t.Cleanup(func() { _ = a.Close() })
	return a, client
}

func spanishTranscript(text string) *models.Transcript {
	return &models.Transcript{
		VideoID:  "esvideo0001",
		Language: "Spanish",
		Snippets: []models.Snippet{
			{Text: text, Start: 0, Duration: 4},
			{Text: "garden tour", Start: 400, Duration: 4},
		},
	}
}

func TestApp_IngestAndSearch(t *testing.T) {
	ctx := context.Background()
	a, client := newTestApp(t)

	if _, err := a.Ingest(ctx, spanishTranscript("recipe intro")); err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}

	results, err := a.SearchVideo(ctx, "esvideo0001", "garden", 1)
	if err != nil {
		t.Fatalf("SearchVideo() error = %v", err)
	}
	if len(results) != 1 || results[0].Text != "GARDEN TOUR" || results[0].Start != 400 {
		t.Errorf("SearchVideo() = %+v", results)
	}

	if _, err := a.SearchVideo(ctx, "esvideo0001", "recipe", 1); err != nil {
		t.Fatal(err)
	}
	// index built once, plus one embed per query
	if _, embeds := client.Calls(); embeds != 3 {
		t.Errorf("embed calls = %d, want 3", embeds)
	}
}

func TestApp_IngestDropsStaleIndex(t *testing.T) {
	ctx := context.Background()
	a, _ := newTestApp(t)

	if _, err := a.Ingest(ctx, spanishTranscript("recipe intro")); err != nil {
		t.Fatal(err)
	}
	if _, err := a.SearchVideo(ctx, "esvideo0001", "garden", 1); err != nil {
		t.Fatal(err)
	}
	if ok, _ := a.Stores.Vectors.HasVideo(ctx, "esvideo0001"); !ok {
		t.Fatal("index not built")
	}

	if _, err := a.Ingest(ctx, spanishTranscript("updated recipe")); err != nil {
		t.Fatal(err)
	}
	if ok, _ := a.Stores.Vectors.HasVideo(ctx, "esvideo0001"); ok {
		t.Error("stale index survived re-ingest")
	}
}

func TestApp_Remove(t *testing.T) {
	ctx := context.Background()
	a, _ := newTestApp(t)

	if _, err := a.Ingest(ctx, spanishTranscript("recipe intro")); err != nil {
		t.Fatal(err)
	}
	if _, err := a.SearchVideo(ctx, "esvideo0001", "garden", 1); err != nil {
		t.Fatal(err)
	}
	if err := a.Remove(ctx, "esvideo0001"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}

	videos, err := a.Stores.Chunks.ListVideos(ctx)
	if err != nil || len(videos) != 0 {
		t.Errorf("ListVideos() = %+v, %v", videos, err)
	}
	if ok, _ := a.Stores.Vectors.HasVideo(ctx, "esvideo0001"); ok {
		t.Error("index survived Remove()")
	}
}

func TestApp_IngestFile(t *testing.T) {
	ctx := context.Background()
	a, _ := newTestApp(t)

	path := filepath.Join(t.TempDir(), "srtvideo001.srt")
	srt := "1\n00:00:00,000 --> 00:00:02,000\nhola\n\n2\n00:00:10,000 --> 00:00:12,000\nmundo\n"
	if err := os.WriteFile(path, []byte(srt), 0o644); err != nil {
		t.Fatal(err)
	}

	prepared, err := a.IngestFile(ctx, path)
	if err != nil {
		t.Fatalf("IngestFile() error = %v", err)
	}
	if prepared.Transcript.VideoID != "srtvideo001" || !prepared.Translated {
		t.Errorf("IngestFile() = %+v", prepared)
	}
	if len(prepared.Chunks) != 1 || prepared.Chunks[0].Text != "HOLA MUNDO" {
		t.Errorf("chunks = %+v", prepared.Chunks)
	}
}

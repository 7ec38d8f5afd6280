// ABOUTME: Tests for the cached ingest pipeline over an in-memory chunk store
// ABOUTME: Checks stage caching, the English shortcut and that failures store nothing
package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/harper/tubescribe/internal/config"
	"github.com/harper/tubescribe/internal/models"
	"github.com/harper/tubescribe/internal/storage"
	"github.com/harper/tubescribe/internal/transcript"
)

func frenchTranscript() *models.Transcript {
	return &models.Transcript{
		VideoID:      "frvideo0001",
		Language:     "French",
		LanguageCode: "fr",
		Snippets: []models.Snippet{
			{Text: "un", Start: 0, Duration: 5},
			{Text: "deux", Start: 30, Duration: 5},
			{Text: "trois", Start: 70, Duration: 5},
		},
	}
}

func englishTranscript() *models.Transcript {
	return &models.Transcript{
		VideoID:      "envideo0001",
		Language:     "English (auto-generated)",
		LanguageCode: "en",
		Snippets: []models.Snippet{
			{Text: "hello", Start: 0, Duration: 5},
			{Text: "world", Start: 90, Duration: 5},
		},
	}
}

type pipelineFixture struct {
	store    *storage.Store
	source   *fakeSource
	rewriter *fakeRewriter
	pipeline *Pipeline
}

func newPipelineFixture(rw *fakeRewriter) *pipelineFixture {
	store := storage.New(storage.NewMemoryBackend())
	src := &fakeSource{transcripts: map[string]*models.Transcript{
		"frvideo0001": frenchTranscript(),
		"envideo0001": englishTranscript(),
	}}
	tr := NewTranslator(rw, TranslatorConfig{BatchSpan: 180, Workers: 1, Timeout: time.Second}, nil)
	p := NewPipeline(store, src, tr, PipelineConfig{GroupSpan: 60, TranslationMode: config.ModeSegments}, nil)
	return &pipelineFixture{store: store, source: src, rewriter: rw, pipeline: p}
}

func TestPipeline_PrepareTranslates(t *testing.T) {
	ctx := context.Background()
	f := newPipelineFixture(upperRewriter())

	got, err := f.pipeline.Prepare(ctx, "frvideo0001")
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if !got.Translated {
		t.Error("Translated = false for a French transcript")
	}
	want := []models.Chunk{{Start: 0, End: 30, Text: "UN DEUX"}, {Start: 70, End: 70, Text: "TROIS"}}
	if len(got.Chunks) != len(want) {
		t.Fatalf("Chunks = %+v", got.Chunks)
	}
	for i := range want {
		c := got.Chunks[i]
		if c.Start != want[i].Start || c.End != want[i].End || c.Text != want[i].Text {
			t.Errorf("chunk %d = %+v, want %+v", i, c, want[i])
		}
	}

	for _, key := range []string{storage.TranscriptKey("frvideo0001"), storage.GroupedKey("frvideo0001", 60), storage.TranslatedKey("frvideo0001", 60)} {
		if ok, _ := f.store.Exists(ctx, key); !ok {
			t.Errorf("%s not cached", key)
		}
	}
}

func TestPipeline_PrepareUsesCache(t *testing.T) {
	ctx := context.Background()
	f := newPipelineFixture(upperRewriter())

	if _, err := f.pipeline.Prepare(ctx, "frvideo0001"); err != nil {
		t.Fatal(err)
	}
	if _, err := f.pipeline.Prepare(ctx, "frvideo0001"); err != nil {
		t.Fatal(err)
	}

	if f.source.fetches != 1 {
		t.Errorf("source fetches = %d, want 1", f.source.fetches)
	}
	if f.rewriter.count() != 1 {
		t.Errorf("rewriter calls = %d, want 1", f.rewriter.count())
	}
}

func TestPipeline_EnglishSkipsTranslation(t *testing.T) {
	ctx := context.Background()
	f := newPipelineFixture(upperRewriter())

	got, err := f.pipeline.Prepare(ctx, "envideo0001")
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if got.Translated || len(got.Chunks) != 2 || got.Chunks[0].Text != "hello" {
		t.Errorf("Prepare() = %+v", got)
	}
	if f.rewriter.count() != 0 {
		t.Error("rewriter called for an English transcript")
	}
	if ok, _ := f.store.Exists(ctx, storage.TranslatedKey("envideo0001", 60)); ok {
		t.Error("translated chunks stored for an English transcript")
	}
}

func TestPipeline_TranslationFailureStoresNothing(t *testing.T) {
	ctx := context.Background()
	f := newPipelineFixture(dropRewriter("<SEG_2>"))

	if _, err := f.pipeline.Prepare(ctx, "frvideo0001"); !errors.Is(err, ErrIncompleteTranslation) {
		t.Fatalf("error = %v, want ErrIncompleteTranslation", err)
	}
	if ok, _ := f.store.Exists(ctx, storage.TranslatedKey("frvideo0001", 60)); ok {
		t.Error("partial translation was cached")
	}
	if ok, _ := f.store.Exists(ctx, storage.GroupedKey("frvideo0001", 60)); !ok {
		t.Error("grouped chunks should still be cached")
	}
}

func TestPipeline_GroupSpanChangeRegroups(t *testing.T) {
	ctx := context.Background()
	f := newPipelineFixture(upperRewriter())

	narrow, err := f.pipeline.Prepare(ctx, "envideo0001")
	if err != nil {
		t.Fatal(err)
	}
	if len(narrow.Chunks) != 2 {
		t.Fatalf("span 60 chunks = %+v", narrow.Chunks)
	}

	wide := NewPipeline(f.store, f.source, nil, PipelineConfig{GroupSpan: 120}, nil)
	got, err := wide.Prepare(ctx, "envideo0001")
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if len(got.Chunks) != 1 || got.Chunks[0].Text != "hello world" {
		t.Errorf("span 120 chunks = %+v, want one chunk", got.Chunks)
	}
	if f.source.fetches != 1 {
		t.Errorf("source fetches = %d, want the stored transcript reused", f.source.fetches)
	}

	for _, span := range []float64{60, 120} {
		if ok, _ := f.store.Exists(ctx, storage.GroupedKey("envideo0001", span)); !ok {
			t.Errorf("grouping at span %v not cached", span)
		}
	}
}

func TestPipeline_MissingTranscript(t *testing.T) {
	ctx := context.Background()
	f := newPipelineFixture(upperRewriter())

	if _, err := f.pipeline.Prepare(ctx, "nosuchvideo"); !errors.Is(err, transcript.ErrNotFound) {
		t.Errorf("error = %v, want transcript.ErrNotFound", err)
	}

	noSource := NewPipeline(f.store, nil, nil, PipelineConfig{GroupSpan: 60}, nil)
	if _, err := noSource.Prepare(ctx, "nosuchvideo"); !errors.Is(err, transcript.ErrNotFound) {
		t.Errorf("nil source: error = %v, want transcript.ErrNotFound", err)
	}
}

func TestPipeline_IngestRebuilds(t *testing.T) {
	ctx := context.Background()
	f := newPipelineFixture(upperRewriter())

	if _, err := f.pipeline.Prepare(ctx, "frvideo0001"); err != nil {
		t.Fatal(err)
	}

	updated := frenchTranscript()
	updated.Snippets = []models.Snippet{{Text: "quatre", Start: 0, Duration: 1}}
	got, err := f.pipeline.Ingest(ctx, updated)
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	if len(got.Chunks) != 1 || got.Chunks[0].Text != "QUATRE" {
		t.Errorf("Ingest() chunks = %+v", got.Chunks)
	}

	cached, err := f.store.LoadChunks(ctx, storage.TranslatedKey("frvideo0001", 60))
	if err != nil || len(cached) != 1 {
		t.Errorf("cached translation = %+v, %v", cached, err)
	}
}

func TestPipeline_IngestRejectsEmpty(t *testing.T) {
	f := newPipelineFixture(upperRewriter())
	ctx := context.Background()

	if _, err := f.pipeline.Ingest(ctx, &models.Transcript{}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("no id: error = %v", err)
	}
	if _, err := f.pipeline.Ingest(ctx, &models.Transcript{VideoID: "x"}); !errors.Is(err, transcript.ErrNoTranscript) {
		t.Errorf("no snippets: error = %v", err)
	}
}

func TestPipeline_Lookup(t *testing.T) {
	f := newPipelineFixture(upperRewriter())

	w, err := f.pipeline.Lookup(context.Background(), "frvideo0001", 20)
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if w.Kind != models.MatchExact || w.Match.Text != "UN DEUX" || w.Next == nil || w.Next.Text != "TROIS" {
		t.Errorf("Lookup() = %+v", w)
	}
}

// ABOUTME: Unit tests for vector storage functionality
// ABOUTME: Tests embedding save/load, ranking and cosine similarity
package storage

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/harper/tubescribe/internal/models"
)

func TestVectorStorage_SaveAndSearch(t *testing.T) {
	ctx := context.Background()
	vs := NewVectorStorage(NewMemoryBackend())

	embeddings := []models.Embedding{
		{VideoID: "v", Start: 0, End: 100, Text: "intro", Vector: []float64{1.0, 0.0, 0.0}},
		{VideoID: "v", Start: 120, End: 230, Text: "cooking", Vector: []float64{0.0, 1.0, 0.0}},
		{VideoID: "v", Start: 240, End: 350, Text: "wrap up", Vector: []float64{0.9, 0.1, 0.0}},
	}
	if err := vs.SaveEmbeddings(ctx, "v", embeddings); err != nil {
		t.Fatalf("SaveEmbeddings() error = %v", err)
	}

	ok, err := vs.HasVideo(ctx, "v")
	if err != nil || !ok {
		t.Fatalf("HasVideo() = %v, %v", ok, err)
	}

	// "intro" ~ 0.9986, "wrap up" ~ 0.9983, "cooking" ~ 0.05
	results, err := vs.SearchSimilar(ctx, "v", []float64{0.95, 0.05, 0.0}, 2)
	if err != nil {
		t.Fatalf("SearchSimilar() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Text != "intro" || results[1].Text != "wrap up" {
		t.Errorf("unexpected ranking: %+v", results)
	}
	if results[1].Start != 240 || results[1].End != 350 {
		t.Errorf("result bounds lost: %+v", results[1])
	}
}

func TestVectorStorage_MissingVideo(t *testing.T) {
	vs := NewVectorStorage(NewMemoryBackend())
	_, err := vs.SearchSimilar(context.Background(), "nope", []float64{1}, 3)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestVectorStorage_RejectsMixedDimensions(t *testing.T) {
	vs := NewVectorStorage(NewMemoryBackend())
	err := vs.SaveEmbeddings(context.Background(), "v", []models.Embedding{
		{Vector: []float64{1, 0}},
		{Vector: []float64{1, 0, 0}},
	})
	if err == nil {
		t.Error("expected dimension mismatch error")
	}
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{"identical", []float64{1, 2, 3}, []float64{1, 2, 3}, 1},
		{"orthogonal", []float64{1, 0}, []float64{0, 1}, 0},
		{"opposite", []float64{1, 0}, []float64{-1, 0}, -1},
		{"length mismatch", []float64{1, 0}, []float64{1}, 0},
		{"zero vector", []float64{0, 0}, []float64{1, 1}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CosineSimilarity(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("CosineSimilarity() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRankResults_StableOnTies(t *testing.T) {
	results := []models.SearchResult{
		{Start: 0, SimilarityScore: 0.5},
		{Start: 10, SimilarityScore: 0.9},
		{Start: 20, SimilarityScore: 0.5},
	}
	got := RankResults(results, 0)
	if got[0].Start != 10 || got[1].Start != 0 || got[2].Start != 20 {
		t.Errorf("RankResults() = %+v", got)
	}
}

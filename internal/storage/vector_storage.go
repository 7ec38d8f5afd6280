// ABOUTME: Per-video vector storage on any Backend with cosine similarity search
// ABOUTME: Used for the redis and charm backends; sqlite keeps vectors in its own table
package storage

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/harper/tubescribe/internal/models"
)

// VectorIndex stores and searches per-video embedding sets
type VectorIndex interface {
	HasVideo(ctx context.Context, videoID string) (bool, error)
	SaveEmbeddings(ctx context.Context, videoID string, embeddings []models.Embedding) error
	SearchSimilar(ctx context.Context, videoID string, query []float64, maxResults int) ([]models.SearchResult, error)
	DeleteVideo(ctx context.Context, videoID string) error
}

var _ VectorIndex = (*VectorStorage)(nil)

// VectorStorage keeps each video's embeddings as one JSON record
type VectorStorage struct {
	store *Store
}

// NewVectorStorage creates a VectorStorage on backend
func NewVectorStorage(backend Backend) *VectorStorage {
	return &VectorStorage{store: New(backend)}
}

// EmbeddingKey is the key for a video's embedding set
func EmbeddingKey(videoID string) string {
	return EmbeddingPrefix + videoID
}

// HasVideo reports whether an index exists for videoID
func (vs *VectorStorage) HasVideo(ctx context.Context, videoID string) (bool, error) {
	return vs.store.Exists(ctx, EmbeddingKey(videoID))
}

// SaveEmbeddings replaces the embedding set for videoID
func (vs *VectorStorage) SaveEmbeddings(ctx context.Context, videoID string, embeddings []models.Embedding) error {
	if len(embeddings) == 0 {
		return fmt.Errorf("no embeddings to save for %s", videoID)
	}
	dim := len(embeddings[0].Vector)
	for _, e := range embeddings {
		if err := e.ValidateDimension(dim); err != nil {
			return err
		}
	}
	return vs.store.put(ctx, EmbeddingKey(videoID), embeddings)
}

// SearchSimilar ranks videoID's embeddings by cosine similarity to query
func (vs *VectorStorage) SearchSimilar(ctx context.Context, videoID string, query []float64, maxResults int) ([]models.SearchResult, error) {
	var embeddings []models.Embedding
	if err := vs.store.get(ctx, EmbeddingKey(videoID), &embeddings); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("no index for video %s: %w", videoID, err)
		}
		return nil, err
	}

	results := make([]models.SearchResult, 0, len(embeddings))
	for _, e := range embeddings {
		results = append(results, models.SearchResult{
			VideoID:         videoID,
			Start:           e.Start,
			End:             e.End,
			Text:            e.Text,
			SimilarityScore: CosineSimilarity(query, e.Vector),
		})
	}
	return RankResults(results, maxResults), nil
}

// DeleteVideo removes the embedding set for videoID
func (vs *VectorStorage) DeleteVideo(ctx context.Context, videoID string) error {
	err := vs.store.Backend().Delete(ctx, EmbeddingKey(videoID))
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	return nil
}

// RankResults sorts by similarity descending, keeping temporal order on ties, and truncates
func RankResults(results []models.SearchResult, maxResults int) []models.SearchResult {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].SimilarityScore > results[j].SimilarityScore
	})
	if maxResults > 0 && len(results) > maxResults {
		results = results[:maxResults]
	}
	return results
}

// CosineSimilarity calculates cosine similarity between two vectors
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0.0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}

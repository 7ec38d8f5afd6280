// ABOUTME: Semantic search over a video's transcript using embedded, regrouped chunks
// ABOUTME: An index is built once per video and reused until the video is re-ingested
package search

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/harper/tubescribe/internal/core"
	"github.com/harper/tubescribe/internal/llm"
	"github.com/harper/tubescribe/internal/logger"
	"github.com/harper/tubescribe/internal/models"
	"github.com/harper/tubescribe/internal/storage"
)

// embedBatchSize caps the texts sent in one embedding request
const embedBatchSize = 64

// DefaultMaxResults is used when a caller asks for zero results
const DefaultMaxResults = 5

// ErrEmptyQuery is returned for blank search queries
var ErrEmptyQuery = errors.New("search query cannot be empty")

// Index embeds chunk groups into a vector index and answers similarity queries
type Index struct {
	embedder  llm.Embedder
	vectors   storage.VectorIndex
	groupSpan float64
	log       logger.Logger
}

// New creates an Index that regroups chunks at groupSpan seconds before embedding
func New(embedder llm.Embedder, vectors storage.VectorIndex, groupSpan float64, log logger.Logger) *Index {
	if log == nil {
		log = logger.Nop()
	}
	return &Index{
		embedder:  embedder,
		vectors:   vectors,
		groupSpan: groupSpan,
		log:       log,
	}
}

// Build indexes chunks for videoID unless an index already exists.
// It reports whether a new index was written.
func (ix *Index) Build(ctx context.Context, videoID string, chunks []models.Chunk) (bool, error) {
	exists, err := ix.vectors.HasVideo(ctx, videoID)
	if err != nil {
		return false, fmt.Errorf("check index: %w", err)
	}
	if exists {
		ix.log.Debug(ctx, "index exists", "video_id", videoID)
		return false, nil
	}
	return true, ix.Rebuild(ctx, videoID, chunks)
}

// Rebuild replaces the index for videoID
func (ix *Index) Rebuild(ctx context.Context, videoID string, chunks []models.Chunk) error {
	groups, err := core.GroupChunks(chunks, ix.groupSpan)
	if err != nil {
		return err
	}

	texts := make([]string, len(groups))
	for i, g := range groups {
		texts[i] = g.Text
	}
	vectors, err := ix.embedAll(ctx, texts)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	embeddings := make([]models.Embedding, len(groups))
	for i, g := range groups {
		embeddings[i] = models.Embedding{
			ID:        uuid.New().String(),
			VideoID:   videoID,
			Start:     g.Start,
			End:       g.End,
			Text:      g.Text,
			Vector:    vectors[i],
			CreatedAt: now,
		}
	}

	if err := ix.vectors.SaveEmbeddings(ctx, videoID, embeddings); err != nil {
		return fmt.Errorf("save index: %w", err)
	}
	ix.log.Info(ctx, "index built", "video_id", videoID, "chunks", len(embeddings))
	return nil
}

// Search returns the maxResults chunks most similar to query, best first
func (ix *Index) Search(ctx context.Context, videoID, query string, maxResults int) ([]models.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	vectors, err := ix.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if len(vectors) != 1 {
		return nil, fmt.Errorf("embed query: got %d vectors, want 1", len(vectors))
	}

	return ix.vectors.SearchSimilar(ctx, videoID, vectors[0], maxResults)
}

// Delete drops the index for videoID
func (ix *Index) Delete(ctx context.Context, videoID string) error {
	return ix.vectors.DeleteVideo(ctx, videoID)
}

func (ix *Index) embedAll(ctx context.Context, texts []string) ([][]float64, error) {
	out := make([][]float64, 0, len(texts))
	for start := 0; start < len(texts); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(texts) {
			end = len(texts)
		}
		vectors, err := ix.embedder.Embed(ctx, texts[start:end])
		if err != nil {
			return nil, fmt.Errorf("embed chunks %d-%d: %w", start, end-1, err)
		}
		if len(vectors) != end-start {
			return nil, fmt.Errorf("embed chunks %d-%d: got %d vectors, want %d", start, end-1, len(vectors), end-start)
		}
		out = append(out, vectors...)
	}
	return out, nil
}

// ABOUTME: Embedding storage operations for SQLite
// ABOUTME: Implements per-video vector storage as BLOB and cosine similarity search
package sqlite

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/harper/tubescribe/internal/models"
	"github.com/harper/tubescribe/internal/storage"
)

// EmbeddingStore handles embedding persistence
type EmbeddingStore struct {
	db *DB
}

var _ storage.VectorIndex = (*EmbeddingStore)(nil)

// NewEmbeddingStore creates a new EmbeddingStore
func NewEmbeddingStore(db *DB) *EmbeddingStore {
	return &EmbeddingStore{db: db}
}

// HasVideo reports whether any embeddings exist for videoID
func (s *EmbeddingStore) HasVideo(ctx context.Context, videoID string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM embeddings WHERE video_id = ?", videoID).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// SaveEmbeddings replaces the embedding set for videoID in one transaction
func (s *EmbeddingStore) SaveEmbeddings(ctx context.Context, videoID string, embeddings []models.Embedding) error {
	if len(embeddings) == 0 {
		return fmt.Errorf("no embeddings to save for %s", videoID)
	}
	dim := len(embeddings[0].Vector)
	for _, e := range embeddings {
		if err := e.ValidateDimension(dim); err != nil {
			return err
		}
	}

	tx, err := s.db.Conn().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM embeddings WHERE video_id = ?", videoID); err != nil {
		return fmt.Errorf("failed to clear embeddings: %w", err)
	}

	for _, e := range embeddings {
		id := e.ID
		if id == "" {
			id = uuid.New().String()
		}
		createdAt := e.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now()
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO embeddings (id, video_id, start_time, end_time, text, vector, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, id, videoID, e.Start, e.End, e.Text, vectorToBlob(e.Vector), createdAt); err != nil {
			return fmt.Errorf("failed to insert embedding: %w", err)
		}
	}

	return tx.Commit()
}

// GetByVideo retrieves all embeddings for a video in temporal order
func (s *EmbeddingStore) GetByVideo(ctx context.Context, videoID string) ([]models.Embedding, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, video_id, start_time, end_time, text, vector, created_at
		FROM embeddings
		WHERE video_id = ?
		ORDER BY start_time ASC
	`, videoID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var embeddings []models.Embedding
	for rows.Next() {
		var (
			emb  models.Embedding
			blob []byte
		)
		if err := rows.Scan(&emb.ID, &emb.VideoID, &emb.Start, &emb.End, &emb.Text, &blob, &emb.CreatedAt); err != nil {
			return nil, err
		}
		emb.Vector = blobToVector(blob)
		embeddings = append(embeddings, emb)
	}
	return embeddings, rows.Err()
}

// SearchSimilar performs cosine similarity search over one video
func (s *EmbeddingStore) SearchSimilar(ctx context.Context, videoID string, query []float64, maxResults int) ([]models.SearchResult, error) {
	embeddings, err := s.GetByVideo(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if len(embeddings) == 0 {
		return nil, fmt.Errorf("no index for video %s: %w", videoID, storage.ErrNotFound)
	}

	results := make([]models.SearchResult, 0, len(embeddings))
	for _, e := range embeddings {
		results = append(results, models.SearchResult{
			VideoID:         videoID,
			Start:           e.Start,
			End:             e.End,
			Text:            e.Text,
			SimilarityScore: storage.CosineSimilarity(query, e.Vector),
		})
	}
	return storage.RankResults(results, maxResults), nil
}

// DeleteVideo removes every embedding for videoID
func (s *EmbeddingStore) DeleteVideo(ctx context.Context, videoID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM embeddings WHERE video_id = ?", videoID)
	return err
}

// vectorToBlob converts a float64 slice to binary blob
func vectorToBlob(vector []float64) []byte {
	blob := make([]byte, len(vector)*8)
	for i, v := range vector {
		binary.LittleEndian.PutUint64(blob[i*8:], math.Float64bits(v))
	}
	return blob
}

// blobToVector converts a binary blob to float64 slice
func blobToVector(blob []byte) []float64 {
	count := len(blob) / 8
	vector := make([]float64, count)
	for i := 0; i < count; i++ {
		bits := binary.LittleEndian.Uint64(blob[i*8:])
		vector[i] = math.Float64frombits(bits)
	}
	return vector
}

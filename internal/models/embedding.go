// ABOUTME: Embedding models for the per-video semantic search index
// ABOUTME: Defines Embedding and SearchResult structures
package models

import (
	"fmt"
	"time"
)

// Embedding is a stored vector for one regrouped chunk of a video
type Embedding struct {
	ID        string    `json:"id"`
	VideoID   string    `json:"video_id"`
	Start     float64   `json:"start"`
	End       float64   `json:"end"`
	Text      string    `json:"text"`
	Vector    []float64 `json:"vector"`
	CreatedAt time.Time `json:"created_at"`
}

// SearchResult is a chunk ranked by similarity to a query
type SearchResult struct {
	VideoID         string  `json:"video_id"`
	Start           float64 `json:"start"`
	End             float64 `json:"end"`
	Text            string  `json:"text"`
	SimilarityScore float64 `json:"similarity_score"`
}

// ValidateDimension checks the vector against the index's expected dimension
func (e Embedding) ValidateDimension(expected int) error {
	if len(e.Vector) == 0 {
		return fmt.Errorf("embedding vector cannot be empty")
	}
	if len(e.Vector) != expected {
		return fmt.Errorf("embedding dimension mismatch: got %d, want %d", len(e.Vector), expected)
	}
	return nil
}

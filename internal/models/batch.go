// ABOUTME: Batch is a contiguous run of chunks sent to an external rewriter together
// ABOUTME: Batches partition a chunk sequence in order without gaps or overlaps
package models

import "time"

// Batch is a contiguous sub-sequence of a chunk sequence
type Batch struct {
	Index  int     `json:"index"`
	Chunks []Chunk `json:"chunks"`
}

// Start returns the anchor start of the batch
func (b Batch) Start() float64 {
	if len(b.Chunks) == 0 {
		return 0
	}
	return b.Chunks[0].Start
}

// End returns the end of the last chunk in the batch
func (b Batch) End() float64 {
	if len(b.Chunks) == 0 {
		return 0
	}
	return b.Chunks[len(b.Chunks)-1].End
}

// SegIDs lists the segment ids carried by the batch, in order
func (b Batch) SegIDs() []int {
	ids := make([]int, 0, len(b.Chunks))
	for _, c := range b.Chunks {
		ids = append(ids, c.SegID)
	}
	return ids
}

// VideoInfo summarizes what the store holds for one video
type VideoInfo struct {
	VideoID      string    `json:"video_id"`
	Language     string    `json:"language"`
	LanguageCode string    `json:"language_code"`
	SnippetCount int       `json:"snippet_count"`
	Translated   bool      `json:"translated"`
	FetchedAt    time.Time `json:"fetched_at"`
}

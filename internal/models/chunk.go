// ABOUTME: Chunk represents a time-bounded block of transcript text
// ABOUTME: Produced by grouping snippets, optionally tagged with a segment id for translation
package models

import (
	"fmt"
	"strings"
)

// Chunk is a time-bounded, possibly merged unit of transcript text.
// Start and End are seconds from the beginning of the video.
// SegID is zero until a segment codec assigns it.
type Chunk struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
	SegID int     `json:"seg_id,omitempty"`
}

// Validate checks the start <= end invariant
func (c Chunk) Validate() error {
	if c.Start < 0 {
		return fmt.Errorf("chunk start must be non-negative, got %v", c.Start)
	}
	if c.Start > c.End {
		return fmt.Errorf("chunk start %v is after end %v", c.Start, c.End)
	}
	return nil
}

// Contains reports whether ts falls inside [Start, End]
func (c Chunk) Contains(ts float64) bool {
	return c.Start <= ts && ts <= c.End
}

// Duration returns End - Start in seconds
func (c Chunk) Duration() float64 {
	return c.End - c.Start
}

// WithText returns a copy of the chunk carrying different text
func (c Chunk) WithText(text string) Chunk {
	c.Text = text
	return c
}

// Label renders the chunk bounds as "mm:ss - mm:ss"
func (c Chunk) Label() string {
	return FormatTimestamp(c.Start) + " - " + FormatTimestamp(c.End)
}

// CloneChunks returns a copy of the slice so callers never share backing arrays
func CloneChunks(chunks []Chunk) []Chunk {
	if chunks == nil {
		return nil
	}
	out := make([]Chunk, len(chunks))
	copy(out, chunks)
	return out
}

// JoinText concatenates chunk text in order with single spaces
func JoinText(chunks []Chunk) string {
	parts := make([]string, 0, len(chunks))
	for _, c := range chunks {
		parts = append(parts, c.Text)
	}
	return strings.Join(parts, " ")
}

// FormatTimestamp renders seconds as mm:ss, or h:mm:ss past the hour
func FormatTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

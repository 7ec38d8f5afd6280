// ABOUTME: Transcript and Snippet model raw speech-to-text output for a video
// ABOUTME: Snippets are immutable inputs to the grouping stage
package models

import (
	"strings"
	"time"
)

// Snippet is a raw timestamped unit of transcribed text
type Snippet struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// End returns Start + Duration
func (s Snippet) End() float64 {
	return s.Start + s.Duration
}

// AsChunk lifts a snippet into a zero-width chunk anchored at its start.
// Raw grouping only knows each snippet's start, so End is Start here.
func (s Snippet) AsChunk() Chunk {
	return Chunk{Start: s.Start, End: s.Start, Text: s.Text}
}

// Transcript is the full snippet sequence for one video
type Transcript struct {
	VideoID      string    `json:"video_id"`
	Language     string    `json:"language"`
	LanguageCode string    `json:"language_code"`
	Snippets     []Snippet `json:"data"`
	FetchedAt    time.Time `json:"fetched_at"`
}

// IsEnglish reports whether the transcript needs no translation
func (t *Transcript) IsEnglish() bool {
	if strings.Contains(strings.ToLower(t.Language), "english") {
		return true
	}
	code := strings.ToLower(t.LanguageCode)
	return code == "en" || strings.HasPrefix(code, "en-")
}

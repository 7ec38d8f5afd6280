// ABOUTME: ContextWindow is the result of a point-in-time transcript lookup
// ABOUTME: Encodes exact, nearest-following and no-data outcomes with explicit nulls
package models

import "encoding/json"

// MatchKind describes how a lookup resolved
type MatchKind string

const (
	MatchExact            MatchKind = "exact"
	MatchNearestFollowing MatchKind = "nearest_following"
	MatchNone             MatchKind = "none"
)

// NoDataMessage is reported when no chunk contains or follows the timestamp
const NoDataMessage = "no data found"

// ContextWindow holds the chunk found for a timestamp and its neighbors.
// Next is never populated for MatchNearestFollowing.
type ContextWindow struct {
	Kind     MatchKind
	Previous *Chunk
	Match    *Chunk
	Next     *Chunk
}

// Found reports whether any chunk was located
func (w ContextWindow) Found() bool {
	return w.Kind == MatchExact || w.Kind == MatchNearestFollowing
}

// MarshalJSON renders each outcome with its own shape. Absent neighbors are
// explicit nulls rather than missing keys.
func (w ContextWindow) MarshalJSON() ([]byte, error) {
	switch w.Kind {
	case MatchExact:
		return json.Marshal(struct {
			Kind     MatchKind `json:"kind"`
			Previous *Chunk    `json:"previous"`
			Match    *Chunk    `json:"match"`
			Next     *Chunk    `json:"next"`
		}{w.Kind, w.Previous, w.Match, w.Next})
	case MatchNearestFollowing:
		return json.Marshal(struct {
			Kind             MatchKind `json:"kind"`
			Previous         *Chunk    `json:"previous"`
			NearestFollowing *Chunk    `json:"nearest_following"`
		}{w.Kind, w.Previous, w.Match})
	default:
		return json.Marshal(struct {
			Kind    MatchKind `json:"kind"`
			Message string    `json:"message"`
		}{MatchNone, NoDataMessage})
	}
}

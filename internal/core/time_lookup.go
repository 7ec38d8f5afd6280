// ABOUTME: TimeIndexLookup resolves a timestamp to its chunk and neighbors
// ABOUTME: Falls back to the nearest following chunk when the timestamp lands in a gap
package core

import (
	"fmt"
	"math"

	"github.com/harper/tubescribe/internal/models"
)

// Lookup finds the chunk enclosing timestamp and returns it with its previous
// and next neighbors. When no chunk encloses it, the first chunk starting at or
// after timestamp is returned with its predecessor only. When nothing contains
// or follows timestamp the window has Kind MatchNone and no error.
func Lookup(chunks []models.Chunk, timestamp float64) (models.ContextWindow, error) {
	if math.IsNaN(timestamp) || timestamp < 0 {
		return models.ContextWindow{}, fmt.Errorf("%w: timestamp must be >= 0, got %v", ErrInvalidTimestamp, timestamp)
	}
	if len(chunks) == 0 {
		return models.ContextWindow{}, fmt.Errorf("%w: no chunks to search", ErrInvalidInput)
	}

	for i := range chunks {
		if !chunks[i].Contains(timestamp) {
			continue
		}
		return models.ContextWindow{
			Kind:     models.MatchExact,
			Previous: chunkAt(chunks, i-1),
			Match:    chunkAt(chunks, i),
			Next:     chunkAt(chunks, i+1),
		}, nil
	}

	// Gap path reports no next neighbor.
	// TODO: revisit whether the gap path should also carry Next once MCP callers depend on it.
	for i := range chunks {
		if timestamp > chunks[i].Start {
			continue
		}
		return models.ContextWindow{
			Kind:     models.MatchNearestFollowing,
			Previous: chunkAt(chunks, i-1),
			Match:    chunkAt(chunks, i),
		}, nil
	}

	return models.ContextWindow{Kind: models.MatchNone}, nil
}

// chunkAt returns a copy of chunks[i], or nil when i is out of range
func chunkAt(chunks []models.Chunk, i int) *models.Chunk {
	if i < 0 || i >= len(chunks) {
		return nil
	}
	c := chunks[i]
	return &c
}

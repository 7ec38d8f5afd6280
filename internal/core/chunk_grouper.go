// ABOUTME: ChunkGrouper folds timestamped snippets into coarser fixed-span chunks
// ABOUTME: Span is measured from each chunk's anchor (first member start), never its last member
package core

import (
	"fmt"
	"math"
	"strings"

	"github.com/harper/tubescribe/internal/models"
)

// GroupSnippets groups raw snippets, where only each snippet's start is known.
// A chunk's End is the start of its last member.
func GroupSnippets(snippets []models.Snippet, maxSpan float64) ([]models.Chunk, error) {
	if len(snippets) == 0 {
		return nil, fmt.Errorf("%w: cannot group empty snippet sequence", ErrInvalidInput)
	}

	records := make([]models.Chunk, len(snippets))
	for i, s := range snippets {
		records[i] = s.AsChunk()
	}
	return group(records, maxSpan)
}

// GroupChunks regroups already-chunked records whose start and end are both known.
// A chunk's End is the end of its last member.
func GroupChunks(chunks []models.Chunk, maxSpan float64) ([]models.Chunk, error) {
	if len(chunks) == 0 {
		return nil, fmt.Errorf("%w: cannot group empty chunk sequence", ErrInvalidInput)
	}
	return group(chunks, maxSpan)
}

// group runs the anchored fold. Each output chunk is built fresh from its
// members; input records are never mutated.
func group(records []models.Chunk, maxSpan float64) ([]models.Chunk, error) {
	if math.IsNaN(maxSpan) || maxSpan <= 0 {
		return nil, fmt.Errorf("%w: max span must be positive, got %v", ErrInvalidInput, maxSpan)
	}
	if err := checkOrdered(records); err != nil {
		return nil, err
	}

	var output []models.Chunk

	anchor := records[0].Start
	end := records[0].End
	parts := []string{records[0].Text}

	flush := func() {
		output = append(output, models.Chunk{
			Start: anchor,
			End:   end,
			Text:  strings.Join(parts, " "),
		})
	}

	for _, rec := range records[1:] {
		if rec.Start-anchor <= maxSpan {
			parts = append(parts, rec.Text)
			end = rec.End
			continue
		}

		flush()
		anchor = rec.Start
		end = rec.End
		parts = []string{rec.Text}
	}
	flush()

	return output, nil
}

// checkOrdered enforces the ascending-start precondition and per-record bounds
func checkOrdered(records []models.Chunk) error {
	for i, rec := range records {
		if math.IsNaN(rec.Start) || math.IsNaN(rec.End) {
			return fmt.Errorf("%w: record %d has NaN bounds", ErrInvalidInput, i)
		}
		if rec.Start > rec.End {
			return fmt.Errorf("%w: record %d starts at %v after its end %v", ErrInvalidInput, i, rec.Start, rec.End)
		}
		if i > 0 && rec.Start < records[i-1].Start {
			return fmt.Errorf("%w: record %d starts at %v before record %d at %v",
				ErrInvalidInput, i, rec.Start, i-1, records[i-1].Start)
		}
	}
	return nil
}

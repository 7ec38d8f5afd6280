// ABOUTME: SegmentCodec round-trips chunk batches through an untrusted text rewriter
// ABOUTME: Chunks are rendered as <SEG_n> marker lines and decoded back into an id -> text map
package core

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/harper/tubescribe/internal/models"
)

const (
	segmentDelimiter = "<SEG_"
	segmentCloser    = ">"
)

// AssignIDs returns a copy of chunks with SegID set to 1..n in input order
func AssignIDs(chunks []models.Chunk) []models.Chunk {
	out := models.CloneChunks(chunks)
	for i := range out {
		out[i].SegID = i + 1
	}
	return out
}

// Encode renders chunks as a segment block, one "<SEG_{id}> {text}" line per chunk
func Encode(chunks []models.Chunk) string {
	var b strings.Builder
	for _, c := range chunks {
		fmt.Fprintf(&b, "%s%d%s %s\n", segmentDelimiter, c.SegID, segmentCloser, c.Text)
	}
	return b.String()
}

// Decode parses a rewritten segment block into an id -> text map.
// Anything before the first marker is discarded. A piece without ">" or with a
// non-integer id is a protocol violation. A repeated id keeps its last text.
// Ids are not range-checked here; Validate reports any the chunks still lack.
func Decode(block string) (map[int]string, error) {
	pieces := strings.Split(block, segmentDelimiter)
	result := make(map[int]string, len(pieces))

	for _, piece := range pieces[1:] {
		piece = strings.TrimSpace(piece)
		if piece == "" {
			continue
		}

		idText, content, ok := strings.Cut(piece, segmentCloser)
		if !ok {
			return nil, &MalformedSegmentError{Piece: piece, Reason: "missing '>' after segment id"}
		}

		id, err := strconv.Atoi(strings.TrimSpace(idText))
		if err != nil {
			return nil, &MalformedSegmentError{Piece: piece, Reason: fmt.Sprintf("segment id %q is not an integer", idText)}
		}
		result[id] = strings.TrimSpace(content)
	}

	return result, nil
}

// Validate checks that every seg id in chunks is present in decoded
func Validate(chunks []models.Chunk, decoded map[int]string) error {
	var missing []int
	for _, c := range chunks {
		if _, ok := decoded[c.SegID]; !ok {
			missing = append(missing, c.SegID)
		}
	}
	if len(missing) > 0 {
		sort.Ints(missing)
		return &IncompleteTranslationError{Missing: missing}
	}
	return nil
}

// Reconstruct replaces each chunk's text with decoded[SegID], keeping bounds.
// It validates first, so a partially decoded map never yields a result.
func Reconstruct(chunks []models.Chunk, decoded map[int]string) ([]models.Chunk, error) {
	for i, c := range chunks {
		if c.SegID <= 0 {
			return nil, fmt.Errorf("%w: chunk %d has no segment id", ErrInvalidInput, i)
		}
	}
	if err := Validate(chunks, decoded); err != nil {
		return nil, err
	}

	out := make([]models.Chunk, len(chunks))
	for i, c := range chunks {
		out[i] = c.WithText(decoded[c.SegID])
	}
	return out, nil
}

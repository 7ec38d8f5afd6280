// ABOUTME: Error taxonomy for grouping, segment round-trips and time lookups
// ABOUTME: Typed errors carry detail and match their sentinel via errors.Is
package core

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrInvalidInput is returned for empty or malformed snippet/chunk sequences
	ErrInvalidInput = errors.New("invalid input")
	// ErrMalformedSegment is returned when a segment block cannot be parsed
	ErrMalformedSegment = errors.New("malformed segment block")
	// ErrIncompleteTranslation is returned when decoded segments miss expected ids
	ErrIncompleteTranslation = errors.New("incomplete translation")
	// ErrInvalidTimestamp is returned for negative or NaN query timestamps
	ErrInvalidTimestamp = errors.New("invalid timestamp")
)

// MalformedSegmentError reports a piece of a segment block that broke the marker protocol
type MalformedSegmentError struct {
	Piece  string
	Reason string
}

func (e *MalformedSegmentError) Error() string {
	piece := e.Piece
	if len(piece) > 40 {
		piece = piece[:40] + "..."
	}
	return fmt.Sprintf("%s: %s (piece %q)", ErrMalformedSegment, e.Reason, piece)
}

// Is lets errors.Is match ErrMalformedSegment
func (e *MalformedSegmentError) Is(target error) bool {
	return target == ErrMalformedSegment
}

// IncompleteTranslationError lists segment ids the rewriter dropped
type IncompleteTranslationError struct {
	Missing []int
}

func (e *IncompleteTranslationError) Error() string {
	ids := make([]string, len(e.Missing))
	for i, id := range e.Missing {
		ids[i] = strconv.Itoa(id)
	}
	return fmt.Sprintf("%s: missing segment ids [%s]", ErrIncompleteTranslation, strings.Join(ids, ", "))
}

// Is lets errors.Is match ErrIncompleteTranslation
func (e *IncompleteTranslationError) Is(target error) bool {
	return target == ErrIncompleteTranslation
}

// ABOUTME: BlockBatcher partitions chunks into duration-bounded batches for the rewriter
// ABOUTME: Uses the same anchored span rule as grouping; chunks and their seg ids pass through untouched
package core

import (
	"fmt"
	"math"

	"github.com/harper/tubescribe/internal/models"
)

// Batch splits chunks into contiguous batches. A batch keeps accepting chunks
// while chunk.Start - anchor.Start <= maxBatchSpan. An empty input yields no batches.
func Batch(chunks []models.Chunk, maxBatchSpan float64) ([]models.Batch, error) {
	if math.IsNaN(maxBatchSpan) || maxBatchSpan <= 0 {
		return nil, fmt.Errorf("%w: max batch span must be positive, got %v", ErrInvalidInput, maxBatchSpan)
	}
	if len(chunks) == 0 {
		return []models.Batch{}, nil
	}

	var batches []models.Batch
	first := 0
	for i := 1; i < len(chunks); i++ {
		if chunks[i].Start-chunks[first].Start <= maxBatchSpan {
			continue
		}
		batches = append(batches, models.Batch{
			Index:  len(batches),
			Chunks: models.CloneChunks(chunks[first:i]),
		})
		first = i
	}
	batches = append(batches, models.Batch{
		Index:  len(batches),
		Chunks: models.CloneChunks(chunks[first:]),
	})

	return batches, nil
}

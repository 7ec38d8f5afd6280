// ABOUTME: Translator sends chunk batches through the rewriter and rebuilds the chunk sequence
// ABOUTME: Any batch failure aborts the whole translation; results merge by seg id after all batches finish
package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/harper/tubescribe/internal/config"
	"github.com/harper/tubescribe/internal/llm"
	"github.com/harper/tubescribe/internal/logger"
	"github.com/harper/tubescribe/internal/models"
	"golang.org/x/sync/errgroup"
)

// TranslatorConfig controls batching, parallelism and per-call timeouts
type TranslatorConfig struct {
	BatchSpan float64
	Workers   int
	Timeout   time.Duration
}

// Translator translates chunk sequences to English
type Translator struct {
	rewriter  llm.Rewriter
	batchSpan float64
	workers   int
	timeout   time.Duration
	log       logger.Logger
}

// NewTranslator creates a Translator. Workers below 1 means sequential.
func NewTranslator(rewriter llm.Rewriter, cfg TranslatorConfig, log logger.Logger) *Translator {
	if log == nil {
		log = logger.Nop()
	}
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	return &Translator{
		rewriter:  rewriter,
		batchSpan: cfg.BatchSpan,
		workers:   workers,
		timeout:   cfg.Timeout,
		log:       log,
	}
}

// TranslateSegments assigns seg ids, batches the chunks and round-trips each
// batch through the <SEG_n> protocol. The result has the same length and time
// bounds as chunks; only text differs.
func (t *Translator) TranslateSegments(ctx context.Context, chunks []models.Chunk, fromLang string) ([]models.Chunk, error) {
	if len(chunks) == 0 {
		return nil, fmt.Errorf("%w: nothing to translate", ErrInvalidInput)
	}

	tagged := AssignIDs(chunks)
	batches, err := Batch(tagged, t.batchSpan)
	if err != nil {
		return nil, err
	}

	instructions := segmentInstructions(fromLang)
	t.log.Info(ctx, "translation started", "chunks", len(tagged), "batches", len(batches), "workers", t.workers)

	results := make([]map[int]string, len(batches))
	if t.workers == 1 {
		for i, b := range batches {
			m, err := t.translateBatch(ctx, instructions, b)
			if err != nil {
				return nil, err
			}
			results[i] = m
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(t.workers)
		for i, b := range batches {
			g.Go(func() error {
				m, err := t.translateBatch(gctx, instructions, b)
				if err != nil {
					return err
				}
				results[i] = m
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	merged := make(map[int]string, len(tagged))
	for _, m := range results {
		for id, text := range m {
			merged[id] = text
		}
	}

	out, err := Reconstruct(tagged, merged)
	if err != nil {
		return nil, err
	}
	t.log.Info(ctx, "translation finished", "chunks", len(out))
	return out, nil
}

// translateBatch returns the decoded texts for exactly the batch's seg ids
func (t *Translator) translateBatch(ctx context.Context, instructions string, b models.Batch) (map[int]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	block := Encode(b.Chunks)
	t.log.Debug(ctx, "translating batch", "batch", b.Index, "segments", len(b.Chunks), "start", b.Start(), "end", b.End())

	rewritten, err := t.rewrite(ctx, instructions, block)
	if err != nil {
		return nil, fmt.Errorf("batch %d: rewrite: %w", b.Index, err)
	}

	decoded, err := Decode(rewritten)
	if err != nil {
		return nil, fmt.Errorf("batch %d: %w", b.Index, err)
	}
	if err := Validate(b.Chunks, decoded); err != nil {
		t.log.Warn(ctx, "rewriter dropped segments", "batch", b.Index, "error", err)
		return nil, fmt.Errorf("batch %d: %w", b.Index, err)
	}

	// Extra ids the rewriter invented are ignored so they cannot collide with other batches.
	out := make(map[int]string, len(b.Chunks))
	for _, c := range b.Chunks {
		out[c.SegID] = decoded[c.SegID]
	}
	return out, nil
}

// TranslateWithContext translates one chunk per call, passing the previous and
// next chunk text as context only.
func (t *Translator) TranslateWithContext(ctx context.Context, chunks []models.Chunk, fromLang string) ([]models.Chunk, error) {
	if len(chunks) == 0 {
		return nil, fmt.Errorf("%w: nothing to translate", ErrInvalidInput)
	}

	instructions := contextInstructions(fromLang)
	t.log.Info(ctx, "context translation started", "chunks", len(chunks), "workers", t.workers)

	out := make([]models.Chunk, len(chunks))
	translate := func(ctx context.Context, i int) error {
		var prev, next string
		if i > 0 {
			prev = chunks[i-1].Text
		}
		if i < len(chunks)-1 {
			next = chunks[i+1].Text
		}

		text, err := t.rewrite(ctx, instructions, fmt.Sprintf(contextTranslationInput, prev, chunks[i].Text, next))
		if err != nil {
			return fmt.Errorf("chunk %d: rewrite: %w", i, err)
		}
		out[i] = chunks[i].WithText(strings.TrimSpace(text))
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(t.workers)
	for i := range chunks {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return translate(gctx, i)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	t.log.Info(ctx, "context translation finished", "chunks", len(out))
	return out, nil
}

// Translate dispatches on the configured translation mode
func (t *Translator) Translate(ctx context.Context, mode string, chunks []models.Chunk, fromLang string) ([]models.Chunk, error) {
	switch mode {
	case "", config.ModeSegments:
		return t.TranslateSegments(ctx, chunks, fromLang)
	case config.ModeContext:
		return t.TranslateWithContext(ctx, chunks, fromLang)
	default:
		return nil, fmt.Errorf("unknown translation mode %q", mode)
	}
}

func (t *Translator) rewrite(ctx context.Context, instructions, text string) (string, error) {
	return callRewriter(ctx, t.rewriter, t.timeout, instructions, text)
}

// callRewriter runs one external call under the per-call timeout
func callRewriter(ctx context.Context, rw llm.Rewriter, timeout time.Duration, instructions, text string) (string, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return rw.Rewrite(ctx, instructions, text)
}

// ABOUTME: Summarizer produces whole-video and per-interval summaries with map-reduce rewrites
// ABOUTME: Also answers a question about the chunks surrounding a looked-up timestamp
package core

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/harper/tubescribe/internal/llm"
	"github.com/harper/tubescribe/internal/logger"
	"github.com/harper/tubescribe/internal/models"
)

// Summarizer runs summaries over translated or English chunk sequences
type Summarizer struct {
	rewriter  llm.Rewriter
	groupSpan float64
	timeout   time.Duration
	log       logger.Logger
}

// NewSummarizer creates a Summarizer that regroups chunks at groupSpan before the map step
func NewSummarizer(rewriter llm.Rewriter, groupSpan float64, timeout time.Duration, log logger.Logger) *Summarizer {
	if log == nil {
		log = logger.Nop()
	}
	return &Summarizer{
		rewriter:  rewriter,
		groupSpan: groupSpan,
		timeout:   timeout,
		log:       log,
	}
}

// SummarizeVideo summarizes each regrouped chunk, then summarizes the ordered partial summaries
func (s *Summarizer) SummarizeVideo(ctx context.Context, chunks []models.Chunk) (string, error) {
	partials, err := s.summarizeGroups(ctx, chunks, s.groupSpan)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, p := range partials {
		fmt.Fprintf(&b, "[%s] %s\n\n", p.Label(), p.Summary)
	}

	summary, err := callRewriter(ctx, s.rewriter, s.timeout, videoSummaryPrompt, b.String())
	if err != nil {
		return "", fmt.Errorf("reduce summaries: %w", err)
	}
	s.log.Info(ctx, "video summarized", "parts", len(partials))
	return strings.TrimSpace(summary), nil
}

// SummarizeIntervals regroups chunks into interval-second windows and summarizes each in order
func (s *Summarizer) SummarizeIntervals(ctx context.Context, chunks []models.Chunk, interval float64) ([]models.IntervalSummary, error) {
	if math.IsNaN(interval) || interval <= 0 {
		return nil, fmt.Errorf("%w: interval must be positive, got %v", ErrInvalidInput, interval)
	}
	return s.summarizeGroups(ctx, chunks, interval)
}

func (s *Summarizer) summarizeGroups(ctx context.Context, chunks []models.Chunk, span float64) ([]models.IntervalSummary, error) {
	groups, err := GroupChunks(chunks, span)
	if err != nil {
		return nil, err
	}

	out := make([]models.IntervalSummary, 0, len(groups))
	for i, g := range groups {
		summary, err := callRewriter(ctx, s.rewriter, s.timeout, chunkSummaryPrompt, g.Text)
		if err != nil {
			return nil, fmt.Errorf("summarize part %d (%s): %w", i, g.Label(), err)
		}
		out = append(out, models.IntervalSummary{
			Start:   g.Start,
			End:     g.End,
			Summary: strings.TrimSpace(summary),
		})
	}
	return out, nil
}

// Answer responds to question from the chunks in window. A window with no
// match yields NoDataMessage without calling the rewriter.
func (s *Summarizer) Answer(ctx context.Context, question string, window models.ContextWindow) (string, error) {
	if !window.Found() {
		return models.NoDataMessage, nil
	}

	var b strings.Builder
	if window.Previous != nil {
		fmt.Fprintf(&b, "PREVIOUS [%s]: %s\n\n", window.Previous.Label(), window.Previous.Text)
	}
	fmt.Fprintf(&b, "CURRENT [%s]: %s\n\n", window.Match.Label(), window.Match.Text)
	if window.Next != nil {
		fmt.Fprintf(&b, "NEXT [%s]: %s\n\n", window.Next.Label(), window.Next.Text)
	}
	fmt.Fprintf(&b, "QUESTION: %s", question)

	answer, err := callRewriter(ctx, s.rewriter, s.timeout, answerPrompt, b.String())
	if err != nil {
		return "", fmt.Errorf("answer: %w", err)
	}
	return strings.TrimSpace(answer), nil
}

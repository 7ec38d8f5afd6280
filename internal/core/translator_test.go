// ABOUTME: Tests for batched segment translation and context translation
// ABOUTME: Uses fake rewriters to exercise drops, malformed output, timeouts and parallel batches
package core

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/harper/tubescribe/internal/config"
	"github.com/harper/tubescribe/internal/logger"
	"github.com/harper/tubescribe/internal/models"
)

func newTestTranslator(rw *fakeRewriter, workers int) *Translator {
	return NewTranslator(rw, TranslatorConfig{BatchSpan: 180, Workers: workers, Timeout: time.Second}, logger.Nop())
}

func assertSameBounds(t *testing.T, in, out []models.Chunk) {
	t.Helper()
	if len(out) != len(in) {
		t.Fatalf("len = %d, want %d", len(out), len(in))
	}
	for i := range in {
		if out[i].Start != in[i].Start || out[i].End != in[i].End {
			t.Errorf("chunk %d bounds = [%v, %v], want [%v, %v]", i, out[i].Start, out[i].End, in[i].Start, in[i].End)
		}
	}
}

func TestTranslateSegments(t *testing.T) {
	for _, workers := range []int{1, 4} {
		rw := upperRewriter()
		in := minuteChunks(11)

		out, err := newTestTranslator(rw, workers).TranslateSegments(context.Background(), in, "French")
		if err != nil {
			t.Fatalf("workers=%d: TranslateSegments() error = %v", workers, err)
		}

		assertSameBounds(t, in, out)
		for i := range in {
			if out[i].Text != strings.ToUpper(in[i].Text) {
				t.Errorf("workers=%d: chunk %d text = %q, want %q", workers, i, out[i].Text, strings.ToUpper(in[i].Text))
			}
		}
		if rw.count() != 3 {
			t.Errorf("workers=%d: rewriter calls = %d, want 3 batches", workers, rw.count())
		}
		if !strings.Contains(rw.calls[0].instructions, "French") {
			t.Errorf("instructions do not name the source language: %q", rw.calls[0].instructions)
		}
	}
}

func TestTranslateSegments_EmptyInput(t *testing.T) {
	if _, err := newTestTranslator(upperRewriter(), 1).TranslateSegments(context.Background(), nil, "French"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("error = %v, want ErrInvalidInput", err)
	}
}

func TestTranslateSegments_DroppedSegment(t *testing.T) {
	_, err := newTestTranslator(dropRewriter("<SEG_2>"), 1).TranslateSegments(context.Background(), minuteChunks(3), "French")

	var incomplete *IncompleteTranslationError
	if !errors.As(err, &incomplete) {
		t.Fatalf("error = %v, want IncompleteTranslationError", err)
	}
	if len(incomplete.Missing) != 1 || incomplete.Missing[0] != 2 {
		t.Errorf("Missing = %v, want [2]", incomplete.Missing)
	}
}

func TestTranslateSegments_MalformedResponse(t *testing.T) {
	rw := &fakeRewriter{respond: func(context.Context, string, string) (string, error) {
		return "<SEG_one> bonjour", nil
	}}
	_, err := newTestTranslator(rw, 1).TranslateSegments(context.Background(), minuteChunks(2), "French")
	if !errors.Is(err, ErrMalformedSegment) {
		t.Errorf("error = %v, want ErrMalformedSegment", err)
	}
}

func TestTranslateSegments_ExtraIDsIgnored(t *testing.T) {
	rw := &fakeRewriter{respond: func(_ context.Context, _, text string) (string, error) {
		return text + "<SEG_99> invented\n", nil
	}}
	in := minuteChunks(5)
	out, err := newTestTranslator(rw, 2).TranslateSegments(context.Background(), in, "French")
	if err != nil {
		t.Fatalf("TranslateSegments() error = %v", err)
	}
	assertSameBounds(t, in, out)
	for _, c := range out {
		if strings.Contains(c.Text, "invented") {
			t.Errorf("extra segment leaked into %+v", c)
		}
	}
}

func TestTranslateSegments_FailsFast(t *testing.T) {
	for _, workers := range []int{1, 3} {
		rw := &fakeRewriter{respond: func(_ context.Context, _, text string) (string, error) {
			if strings.Contains(text, "<SEG_5>") {
				return "", errBoom
			}
			return text, nil
		}}
		out, err := newTestTranslator(rw, workers).TranslateSegments(context.Background(), minuteChunks(11), "French")
		if !errors.Is(err, errBoom) {
			t.Errorf("workers=%d: error = %v, want errBoom", workers, err)
		}
		if out != nil {
			t.Errorf("workers=%d: partial result returned: %+v", workers, out)
		}
	}
}

func TestTranslateSegments_Timeout(t *testing.T) {
	rw := &fakeRewriter{respond: func(ctx context.Context, _, _ string) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	}}
	tr := NewTranslator(rw, TranslatorConfig{BatchSpan: 180, Workers: 1, Timeout: 10 * time.Millisecond}, nil)

	_, err := tr.TranslateSegments(context.Background(), minuteChunks(2), "French")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("error = %v, want DeadlineExceeded", err)
	}
}

func TestTranslateSegments_InvalidBatchSpan(t *testing.T) {
	tr := NewTranslator(upperRewriter(), TranslatorConfig{BatchSpan: 0}, nil)
	if _, err := tr.TranslateSegments(context.Background(), minuteChunks(2), "French"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("error = %v, want ErrInvalidInput", err)
	}
}

// contextRewriter uppercases only the chunk marked for translation
func contextRewriter() *fakeRewriter {
	return &fakeRewriter{respond: func(_ context.Context, _, text string) (string, error) {
		_, rest, _ := strings.Cut(text, "TRANSLATE THIS CHUNK: ")
		current, _, _ := strings.Cut(rest, "\n\nNEXT CHUNK:")
		return " " + strings.ToUpper(current) + " ", nil
	}}
}

func TestTranslateWithContext(t *testing.T) {
	rw := contextRewriter()
	in := minuteChunks(3)

	out, err := newTestTranslator(rw, 1).TranslateWithContext(context.Background(), in, "Hindi")
	if err != nil {
		t.Fatalf("TranslateWithContext() error = %v", err)
	}
	assertSameBounds(t, in, out)
	for i := range in {
		if out[i].Text != strings.ToUpper(in[i].Text) {
			t.Errorf("chunk %d text = %q", i, out[i].Text)
		}
	}

	if rw.count() != 3 {
		t.Fatalf("calls = %d, want 3", rw.count())
	}
	first := rw.calls[0].text
	if !strings.HasPrefix(first, "PREV CHUNK: \n\n") || !strings.HasSuffix(first, "NEXT CHUNK: b") {
		t.Errorf("first chunk input = %q", first)
	}
}

func TestTranslateWithContext_Failure(t *testing.T) {
	_, err := newTestTranslator(failingRewriter(), 2).TranslateWithContext(context.Background(), minuteChunks(4), "Hindi")
	if !errors.Is(err, errBoom) {
		t.Errorf("error = %v, want errBoom", err)
	}
}

func TestTranslate_Modes(t *testing.T) {
	tr := newTestTranslator(contextRewriter(), 1)
	ctx := context.Background()

	if _, err := tr.Translate(ctx, config.ModeContext, minuteChunks(2), "Hindi"); err != nil {
		t.Errorf("context mode error = %v", err)
	}
	if _, err := newTestTranslator(upperRewriter(), 1).Translate(ctx, config.ModeSegments, minuteChunks(2), "Hindi"); err != nil {
		t.Errorf("segments mode error = %v", err)
	}
	if _, err := tr.Translate(ctx, "word-by-word", minuteChunks(2), "Hindi"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

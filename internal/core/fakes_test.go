// ABOUTME: Fake rewriters and sources shared by the translator, summarizer and pipeline tests
// ABOUTME: Behaviors cover identity, uppercase translation, dropped segments and failures
package core

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/harper/tubescribe/internal/models"
	"github.com/harper/tubescribe/internal/transcript"
)

var errBoom = errors.New("boom")

type rewriteCall struct {
	instructions string
	text         string
}

// fakeRewriter records every call and answers with respond
type fakeRewriter struct {
	mu      sync.Mutex
	calls   []rewriteCall
	respond func(ctx context.Context, instructions, text string) (string, error)
}

func (f *fakeRewriter) Rewrite(ctx context.Context, instructions, text string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, rewriteCall{instructions, text})
	f.mu.Unlock()
	return f.respond(ctx, instructions, text)
}

func (f *fakeRewriter) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func upperRewriter() *fakeRewriter {
	return &fakeRewriter{respond: func(_ context.Context, _, text string) (string, error) {
		return strings.ToUpper(text), nil
	}}
}

func failingRewriter() *fakeRewriter {
	return &fakeRewriter{respond: func(context.Context, string, string) (string, error) {
		return "", errBoom
	}}
}

// dropRewriter echoes the block without the line carrying marker
func dropRewriter(marker string) *fakeRewriter {
	return &fakeRewriter{respond: func(_ context.Context, _, text string) (string, error) {
		var kept []string
		for _, line := range strings.Split(text, "\n") {
			if !strings.HasPrefix(line, marker) {
				kept = append(kept, line)
			}
		}
		return strings.Join(kept, "\n"), nil
	}}
}

// fakeSource serves fixed transcripts and counts fetches
type fakeSource struct {
	mu          sync.Mutex
	transcripts map[string]*models.Transcript
	fetches     int
}

func (s *fakeSource) Fetch(_ context.Context, videoID string) (*models.Transcript, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetches++
	t, ok := s.transcripts[videoID]
	if !ok {
		return nil, transcript.ErrNotFound
	}
	cp := *t
	cp.Snippets = append([]models.Snippet(nil), t.Snippets...)
	return &cp, nil
}

// ABOUTME: Deterministic fake LLM client for tests in other packages
// ABOUTME: Uppercases rewrites and embeds text as keyword counts
package llmtest

import (
	"context"
	"strings"
	"sync"
)

// Client implements llm.Client with canned behavior and call counting
type Client struct {
	mu         sync.Mutex
	Vocabulary []string
	RewriteErr error
	EmbedErr   error
	Rewrites   int
	Embeds     int
}

// New returns a Client embedding over vocabulary
func New(vocabulary ...string) *Client {
	return &Client{Vocabulary: vocabulary}
}

// Rewrite uppercases text, which keeps <SEG_n> markers intact
func (c *Client) Rewrite(_ context.Context, _, text string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Rewrites++
	if c.RewriteErr != nil {
		return "", c.RewriteErr
	}
	return strings.ToUpper(text), nil
}

// Embed counts case-insensitive vocabulary hits, plus a small constant so no vector is zero
func (c *Client) Embed(_ context.Context, texts []string) ([][]float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Embeds++
	if c.EmbedErr != nil {
		return nil, c.EmbedErr
	}
	out := make([][]float64, len(texts))
	for i, text := range texts {
		lower := strings.ToLower(text)
		v := make([]float64, len(c.Vocabulary)+1)
		for j, word := range c.Vocabulary {
			v[j] = float64(strings.Count(lower, strings.ToLower(word)))
		}
		v[len(c.Vocabulary)] = 0.01
		out[i] = v
	}
	return out, nil
}

// Calls returns the rewrite and embed call counts
func (c *Client) Calls() (rewrites, embeds int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Rewrites, c.Embeds
}

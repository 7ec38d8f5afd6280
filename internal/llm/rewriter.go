// ABOUTME: Rewriter and Embedder are the opaque LLM collaborators used by the pipeline
// ABOUTME: Func adapters let callers and tests supply plain functions
package llm

import "context"

// Rewriter turns text into other text under the given instructions.
// Implementations are unreliable and non-deterministic by assumption.
type Rewriter interface {
	Rewrite(ctx context.Context, instructions, text string) (string, error)
}

// Embedder turns texts into vectors, one per input, in order
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float64, error)
}

// RewriterFunc adapts a function to Rewriter
type RewriterFunc func(ctx context.Context, instructions, text string) (string, error)

// Rewrite calls f
func (f RewriterFunc) Rewrite(ctx context.Context, instructions, text string) (string, error) {
	return f(ctx, instructions, text)
}

// EmbedderFunc adapts a function to Embedder
type EmbedderFunc func(ctx context.Context, texts []string) ([][]float64, error)

// Embed calls f
func (f EmbedderFunc) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	return f(ctx, texts)
}

func toFloat64(v []float32) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = float64(x)
	}
	return out
}

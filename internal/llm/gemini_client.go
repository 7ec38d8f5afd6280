// ABOUTME: Gemini client implementing Rewriter and Embedder over google.golang.org/genai
// ABOUTME: Rotates through API keys when a key is rate limited or out of quota
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"google.golang.org/genai"
)

const (
	// DefaultGeminiModel is the default Gemini chat model
	DefaultGeminiModel = "gemini-2.5-flash"
	// DefaultGeminiEmbeddingModel is the default Gemini embedding model
	DefaultGeminiEmbeddingModel = "gemini-embedding-001"
)

// GeminiConfig holds configuration for the Gemini client
type GeminiConfig struct {
	APIKeys        []string
	Model          string
	EmbeddingModel string
	Temperature    float32
	Timeout        time.Duration
}

// GeminiClient calls Gemini with one genai client per API key
type GeminiClient struct {
	apiKeys        []string
	model          string
	embeddingModel string
	temperature    float32
	timeout        time.Duration

	mu         sync.Mutex
	clients    map[string]*genai.Client
	currentKey int
}

var (
	_ Rewriter = (*GeminiClient)(nil)
	_ Embedder = (*GeminiClient)(nil)
)

// NewGeminiClient validates the configuration; genai clients are created on first use
func NewGeminiClient(config GeminiConfig) (*GeminiClient, error) {
	if len(config.APIKeys) == 0 {
		return nil, fmt.Errorf("at least one Gemini API key is required")
	}

	model := config.Model
	if model == "" {
		model = DefaultGeminiModel
	}
	embeddingModel := config.EmbeddingModel
	if embeddingModel == "" {
		embeddingModel = DefaultGeminiEmbeddingModel
	}
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &GeminiClient{
		apiKeys:        append([]string(nil), config.APIKeys...),
		model:          model,
		embeddingModel: embeddingModel,
		temperature:    config.Temperature,
		timeout:        timeout,
		clients:        make(map[string]*genai.Client),
	}, nil
}

// Rewrite sends instructions as the system instruction and text as the content
func (g *GeminiClient) Rewrite(ctx context.Context, instructions, text string) (string, error) {
	temperature := g.temperature
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: instructions}}},
		Temperature:       &temperature,
	}

	var out string
	err := g.withKeyRotation(ctx, func(ctx context.Context, client *genai.Client) error {
		result, err := client.Models.GenerateContent(ctx, g.model, genai.Text(text), cfg)
		if err != nil {
			return err
		}
		if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
			return errors.New("empty response from Gemini")
		}

		var sb strings.Builder
		for _, part := range result.Candidates[0].Content.Parts {
			if part.Text != "" {
				sb.WriteString(part.Text)
			}
		}
		out = sb.String()
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return out, nil
}

// Embed generates one embedding per input text
func (g *GeminiClient) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	contents := make([]*genai.Content, len(texts))
	for i, t := range texts {
		contents[i] = &genai.Content{Parts: []*genai.Part{{Text: t}}}
	}

	var vectors [][]float64
	err := g.withKeyRotation(ctx, func(ctx context.Context, client *genai.Client) error {
		resp, err := client.Models.EmbedContent(ctx, g.embeddingModel, contents, nil)
		if err != nil {
			return err
		}
		if resp == nil || len(resp.Embeddings) != len(texts) {
			return fmt.Errorf("expected %d embeddings from Gemini", len(texts))
		}

		vectors = make([][]float64, len(texts))
		for i, e := range resp.Embeddings {
			vectors[i] = toFloat64(e.Values)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("embed content: %w", err)
	}
	return vectors, nil
}

// withKeyRotation tries each key at most once, moving on only for quota errors
func (g *GeminiClient) withKeyRotation(ctx context.Context, fn func(ctx context.Context, client *genai.Client) error) error {
	var lastErr error

	for range len(g.apiKeys) {
		client, idx, err := g.client(ctx)
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			g.rotateFrom(idx)
			continue
		}

		callCtx, cancel := context.WithTimeout(ctx, g.timeout)
		err = fn(callCtx, client)
		cancel()
		if err == nil {
			return nil
		}
		if !isQuotaError(err) {
			return err
		}
		lastErr = err
		g.rotateFrom(idx)
	}

	return fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func (g *GeminiClient) client(ctx context.Context) (*genai.Client, int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	idx := g.currentKey
	key := g.apiKeys[idx]
	if c, ok := g.clients[key]; ok {
		return c, idx, nil
	}

	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  key,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, idx, err
	}
	g.clients[key] = c
	return c, idx, nil
}

// rotateFrom advances past idx unless another caller already rotated
func (g *GeminiClient) rotateFrom(idx int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.currentKey == idx {
		g.currentKey = (g.currentKey + 1) % len(g.apiKeys)
	}
}

func isQuotaError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "RESOURCE_EXHAUSTED")
}

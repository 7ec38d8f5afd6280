// ABOUTME: OpenAI client implementing Rewriter (chat completions) and Embedder
// ABOUTME: Each attempt runs under its own timeout; 4xx other than 429 is not retried
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/harper/tubescribe/internal/util"
	openai "github.com/sashabaranov/go-openai"
)

const (
	// DefaultChatModel is the default model for chat completions
	DefaultChatModel = "gpt-4o-mini"
	// DefaultEmbeddingModel is the default model for embeddings
	DefaultEmbeddingModel = string(openai.SmallEmbedding3)
)

// ClientConfig holds configuration for the OpenAI client
type ClientConfig struct {
	APIKey         string
	BaseURL        string
	ChatModel      string
	EmbeddingModel string
	Temperature    float32
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration
}

// DefaultConfig returns the default client configuration
func DefaultConfig(apiKey string) *ClientConfig {
	return &ClientConfig{
		APIKey:         apiKey,
		ChatModel:      DefaultChatModel,
		EmbeddingModel: DefaultEmbeddingModel,
		Temperature:    0.2,
		Timeout:        60 * time.Second,
		MaxRetries:     3,
		RetryDelay:     2 * time.Second,
	}
}

// OpenAIClient wraps the OpenAI API client with retry logic
type OpenAIClient struct {
	client         *openai.Client
	chatModel      string
	embeddingModel openai.EmbeddingModel
	temperature    float32
	timeout        time.Duration
	maxRetries     int
	retryDelay     time.Duration
}

var (
	_ Rewriter = (*OpenAIClient)(nil)
	_ Embedder = (*OpenAIClient)(nil)
)

// NewOpenAIClient creates a new OpenAI client with the given API key using default configuration
func NewOpenAIClient(apiKey string) (*OpenAIClient, error) {
	return NewOpenAIClientWithConfig(DefaultConfig(apiKey))
}

// NewOpenAIClientWithConfig creates a new OpenAI client with custom configuration
func NewOpenAIClientWithConfig(config *ClientConfig) (*OpenAIClient, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	oc := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		oc.BaseURL = config.BaseURL
	}

	chatModel := config.ChatModel
	if chatModel == "" {
		chatModel = DefaultChatModel
	}
	embeddingModel := config.EmbeddingModel
	if embeddingModel == "" {
		embeddingModel = DefaultEmbeddingModel
	}
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &OpenAIClient{
		client:         openai.NewClientWithConfig(oc),
		chatModel:      chatModel,
		embeddingModel: openai.EmbeddingModel(embeddingModel),
		temperature:    config.Temperature,
		timeout:        timeout,
		maxRetries:     config.MaxRetries,
		retryDelay:     config.RetryDelay,
	}, nil
}

// Rewrite sends instructions as the system message and text as the user message
func (c *OpenAIClient) Rewrite(ctx context.Context, instructions, text string) (string, error) {
	var out string

	err := util.Retry(ctx, c.maxRetries, c.retryDelay, func(ctx context.Context, attempt int) error {
		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()

		resp, err := c.client.CreateChatCompletion(callCtx, openai.ChatCompletionRequest{
			Model: c.chatModel,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: instructions,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: text,
				},
			},
			Temperature: c.temperature,
		})
		if err != nil {
			return classify(err)
		}
		if len(resp.Choices) == 0 {
			return errors.New("no completion choices returned")
		}

		out = resp.Choices[0].Message.Content
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	return out, nil
}

// Embed generates one embedding per input text
func (c *OpenAIClient) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	var vectors [][]float64

	err := util.Retry(ctx, c.maxRetries, c.retryDelay, func(ctx context.Context, attempt int) error {
		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()

		resp, err := c.client.CreateEmbeddings(callCtx, openai.EmbeddingRequestStrings{
			Input: texts,
			Model: c.embeddingModel,
		})
		if err != nil {
			return classify(err)
		}
		if len(resp.Data) != len(texts) {
			return fmt.Errorf("expected %d embeddings, got %d", len(texts), len(resp.Data))
		}

		vectors = make([][]float64, len(texts))
		for _, d := range resp.Data {
			if d.Index < 0 || d.Index >= len(texts) {
				return fmt.Errorf("embedding index %d out of range", d.Index)
			}
			vectors[d.Index] = toFloat64(d.Embedding)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("create embeddings: %w", err)
	}
	return vectors, nil
}

// classify marks client errors that retrying cannot fix as permanent
func classify(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.HTTPStatusCode
		if code >= 400 && code < 500 && code != http.StatusTooManyRequests && code != http.StatusRequestTimeout {
			return util.Permanent(err)
		}
	}
	return err
}

// ABOUTME: Builds the configured rewriter and embedder from tubescribe configuration
// ABOUTME: The same client serves both roles for a given provider
package llm

import (
	"errors"
	"fmt"

	"github.com/harper/tubescribe/internal/config"
)

// ErrMissingAPIKey is returned when the configured provider has no credential
var ErrMissingAPIKey = errors.New("missing API key")

// Client is both a Rewriter and an Embedder
type Client interface {
	Rewriter
	Embedder
}

// NewFromConfig returns the client for cfg.Provider
func NewFromConfig(cfg *config.Config) (Client, error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		if len(cfg.GeminiKeys) == 0 {
			return nil, fmt.Errorf("%w: set GEMINI_API_KEYS", ErrMissingAPIKey)
		}
		embeddingModel := cfg.EmbeddingModel
		if embeddingModel == DefaultEmbeddingModel {
			embeddingModel = DefaultGeminiEmbeddingModel
		}
		return NewGeminiClient(GeminiConfig{
			APIKeys:        cfg.GeminiKeys,
			Model:          cfg.ChatModel,
			EmbeddingModel: embeddingModel,
			Temperature:    float32(cfg.Temperature),
			Timeout:        cfg.Timeout,
		})
	case config.ProviderOpenAI:
		if cfg.OpenAIKey == "" {
			return nil, fmt.Errorf("%w: set OPENAI_API_KEY", ErrMissingAPIKey)
		}
		return NewOpenAIClientWithConfig(&ClientConfig{
			APIKey:         cfg.OpenAIKey,
			ChatModel:      cfg.ChatModel,
			EmbeddingModel: cfg.EmbeddingModel,
			Temperature:    float32(cfg.Temperature),
			Timeout:        cfg.Timeout,
			MaxRetries:     cfg.MaxRetries,
			RetryDelay:     cfg.RetryDelay,
		})
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}

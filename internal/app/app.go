// ABOUTME: Wires config, stores, LLM clients and services into one application value
// ABOUTME: Shared by the CLI commands, the watcher and the stdio MCP server
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/harper/tubescribe/internal/config"
	"github.com/harper/tubescribe/internal/core"
	"github.com/harper/tubescribe/internal/llm"
	"github.com/harper/tubescribe/internal/logger"
	"github.com/harper/tubescribe/internal/models"
	"github.com/harper/tubescribe/internal/search"
	"github.com/harper/tubescribe/internal/storage"
	"github.com/harper/tubescribe/internal/storage/backend"
	"github.com/harper/tubescribe/internal/transcript"
)

// App holds every long-lived service
type App struct {
	Config     *config.Config
	Log        logger.Logger
	Stores     *backend.Stores
	Pipeline   *core.Pipeline
	Summarizer *core.Summarizer
	Search     *search.Index
}

// New opens the configured backend and builds the services. The LLM client is
// required because translation, summaries and search all depend on it.
func New(ctx context.Context, cfg *config.Config, log logger.Logger) (*App, error) {
	if log == nil {
		log = logger.Nop()
	}

	client, err := llm.NewFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM client: %w", err)
	}

	stores, err := backend.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	return Assemble(cfg, log, stores, client, transcript.NewFileSource(cfg.TranscriptDir)), nil
}

// Assemble builds the services from already-opened collaborators
func Assemble(cfg *config.Config, log logger.Logger, stores *backend.Stores, client llm.Client, source transcript.Source) *App {
	if log == nil {
		log = logger.Nop()
	}
	translator := core.NewTranslator(client, core.TranslatorConfig{
		BatchSpan: cfg.TranslationBatchSpan,
		Workers:   cfg.TranslationWorkers,
		Timeout:   cfg.Timeout,
	}, log.With("component", "translator"))

	pipeline := core.NewPipeline(stores.Chunks, source, translator, core.PipelineConfig{
		GroupSpan:       cfg.GroupSpan,
		TranslationMode: cfg.TranslationMode,
	}, log.With("component", "pipeline"))

	return &App{
		Config:     cfg,
		Log:        log,
		Stores:     stores,
		Pipeline:   pipeline,
		Summarizer: core.NewSummarizer(client, cfg.SummaryGroupSpan, cfg.Timeout, log.With("component", "summarizer")),
		Search:     search.New(client, stores.Vectors, cfg.SearchGroupSpan, log.With("component", "search")),
	}
}

// Close releases the store
func (a *App) Close() error {
	return a.Stores.Close()
}

// Ingest stores a transcript from outside the source directory and drops any stale search index
func (a *App) Ingest(ctx context.Context, t *models.Transcript) (*core.Prepared, error) {
	prepared, err := a.Pipeline.Ingest(ctx, t)
	if err != nil {
		return nil, err
	}
	if err := a.Search.Delete(ctx, t.VideoID); err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("drop stale index: %w", err)
	}
	return prepared, nil
}

// SearchVideo prepares videoID, builds its index when missing and runs query
func (a *App) SearchVideo(ctx context.Context, videoID, query string, maxResults int) ([]models.SearchResult, error) {
	prepared, err := a.Pipeline.Prepare(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if _, err := a.Search.Build(ctx, videoID, prepared.Chunks); err != nil {
		return nil, fmt.Errorf("build index: %w", err)
	}
	return a.Search.Search(ctx, videoID, query, maxResults)
}

// Remove deletes every stored record and the search index for videoID
func (a *App) Remove(ctx context.Context, videoID string) error {
	if err := a.Stores.Chunks.DeleteVideo(ctx, videoID); err != nil {
		return err
	}
	if err := a.Search.Delete(ctx, videoID); err != nil && !errors.Is(err, storage.ErrNotFound) {
		return err
	}
	return nil
}

// IngestFile parses a transcript file and ingests it under the id it carries or its file name
func (a *App) IngestFile(ctx context.Context, path string) (*core.Prepared, error) {
	t, err := transcript.ParseFile(path)
	if err != nil {
		return nil, err
	}
	return a.Ingest(ctx, t)
}

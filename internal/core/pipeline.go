// ABOUTME: Pipeline turns a video id into the chunk sequence queries are served from
// ABOUTME: Each stage (transcript, grouped chunks, translated chunks) is cached in the chunk store
package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/harper/tubescribe/internal/logger"
	"github.com/harper/tubescribe/internal/models"
	"github.com/harper/tubescribe/internal/storage"
	"github.com/harper/tubescribe/internal/transcript"
)

// ChunkStore persists transcripts and chunk sequences by key
type ChunkStore interface {
	LoadTranscript(ctx context.Context, videoID string) (*models.Transcript, error)
	SaveTranscript(ctx context.Context, t *models.Transcript) error
	LoadChunks(ctx context.Context, key string) ([]models.Chunk, error)
	SaveChunks(ctx context.Context, key string, chunks []models.Chunk) error
}

var _ ChunkStore = (*storage.Store)(nil)

// PipelineConfig holds the grouping span and translation mode
type PipelineConfig struct {
	GroupSpan       float64
	TranslationMode string
}

// Pipeline fetches, groups and translates transcripts on demand
type Pipeline struct {
	store      ChunkStore
	source     transcript.Source
	translator *Translator
	cfg        PipelineConfig
	log        logger.Logger
}

// Prepared is the chunk sequence for one video and how it was produced
type Prepared struct {
	Transcript *models.Transcript
	Chunks     []models.Chunk
	Translated bool
}

// NewPipeline wires the stages. source may be nil when transcripts only arrive through Ingest.
func NewPipeline(store ChunkStore, source transcript.Source, translator *Translator, cfg PipelineConfig, log logger.Logger) *Pipeline {
	if log == nil {
		log = logger.Nop()
	}
	return &Pipeline{
		store:      store,
		source:     source,
		translator: translator,
		cfg:        cfg,
		log:        log,
	}
}

// Prepare returns the chunks for videoID, reusing every cached stage
func (p *Pipeline) Prepare(ctx context.Context, videoID string) (*Prepared, error) {
	t, err := p.transcript(ctx, videoID)
	if err != nil {
		return nil, err
	}
	return p.prepare(ctx, t, false)
}

// Ingest stores t and rebuilds its grouped and translated chunks
func (p *Pipeline) Ingest(ctx context.Context, t *models.Transcript) (*Prepared, error) {
	if t == nil || t.VideoID == "" {
		return nil, fmt.Errorf("%w: transcript requires a video id", ErrInvalidInput)
	}
	if len(t.Snippets) == 0 {
		return nil, fmt.Errorf("%s: %w", t.VideoID, transcript.ErrNoTranscript)
	}
	if err := p.store.SaveTranscript(ctx, t); err != nil {
		return nil, fmt.Errorf("save transcript: %w", err)
	}
	p.log.Info(ctx, "transcript ingested", "video_id", t.VideoID, "snippets", len(t.Snippets), "language", t.Language)
	return p.prepare(ctx, t, true)
}

// Lookup prepares videoID and finds the chunk window around timestamp
func (p *Pipeline) Lookup(ctx context.Context, videoID string, timestamp float64) (models.ContextWindow, error) {
	prepared, err := p.Prepare(ctx, videoID)
	if err != nil {
		return models.ContextWindow{}, err
	}
	return Lookup(prepared.Chunks, timestamp)
}

func (p *Pipeline) transcript(ctx context.Context, videoID string) (*models.Transcript, error) {
	t, err := p.store.LoadTranscript(ctx, videoID)
	if err == nil {
		return t, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("load transcript: %w", err)
	}
	if p.source == nil {
		return nil, fmt.Errorf("%s: %w", videoID, transcript.ErrNotFound)
	}

	t, err = p.source.Fetch(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if len(t.Snippets) == 0 {
		return nil, fmt.Errorf("%s: %w", videoID, transcript.ErrNoTranscript)
	}
	t.VideoID = videoID
	if err := p.store.SaveTranscript(ctx, t); err != nil {
		return nil, fmt.Errorf("save transcript: %w", err)
	}
	p.log.Info(ctx, "transcript fetched", "video_id", videoID, "snippets", len(t.Snippets), "language", t.Language)
	return t, nil
}

func (p *Pipeline) prepare(ctx context.Context, t *models.Transcript, rebuild bool) (*Prepared, error) {
	grouped, err := p.cached(ctx, storage.GroupedKey(t.VideoID, p.cfg.GroupSpan), rebuild, func() ([]models.Chunk, error) {
		return GroupSnippets(t.Snippets, p.cfg.GroupSpan)
	})
	if err != nil {
		return nil, fmt.Errorf("group %s: %w", t.VideoID, err)
	}

	if t.IsEnglish() {
		return &Prepared{Transcript: t, Chunks: grouped}, nil
	}

	translated, err := p.cached(ctx, storage.TranslatedKey(t.VideoID, p.cfg.GroupSpan), rebuild, func() ([]models.Chunk, error) {
		if p.translator == nil {
			return nil, fmt.Errorf("no translator configured for %s transcript", t.Language)
		}
		return p.translator.Translate(ctx, p.cfg.TranslationMode, grouped, t.Language)
	})
	if err != nil {
		return nil, fmt.Errorf("translate %s: %w", t.VideoID, err)
	}
	return &Prepared{Transcript: t, Chunks: translated, Translated: true}, nil
}

// cached returns the chunks under key, building and saving them when absent or when rebuild is set.
// A build failure saves nothing.
func (p *Pipeline) cached(ctx context.Context, key string, rebuild bool, build func() ([]models.Chunk, error)) ([]models.Chunk, error) {
	if !rebuild {
		chunks, err := p.store.LoadChunks(ctx, key)
		if err == nil {
			p.log.Debug(ctx, "cache hit", "key", key, "chunks", len(chunks))
			return chunks, nil
		}
		if !errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("load %s: %w", key, err)
		}
	}

	chunks, err := build()
	if err != nil {
		return nil, err
	}
	if err := p.store.SaveChunks(ctx, key, chunks); err != nil {
		return nil, fmt.Errorf("save %s: %w", key, err)
	}
	p.log.Debug(ctx, "cache stored", "key", key, "chunks", len(chunks))
	return chunks, nil
}

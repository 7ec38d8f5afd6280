// ABOUTME: Chunk store for transcripts and grouped or translated chunk sequences
// ABOUTME: Typed JSON records over a byte-level Backend (sqlite, redis, charm or memory)
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/harper/tubescribe/internal/models"
)

// ErrNotFound is returned when a key has no stored value
var ErrNotFound = errors.New("not found")

// Key prefixes for different entity types
const (
	TranscriptPrefix = "transcript:"
	ChunksPrefix     = "chunks:"
	EmbeddingPrefix  = "embeddings:"
)

// Backend is a byte-level key-value store. Get returns ErrNotFound for absent keys.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Exists(ctx context.Context, key string) (bool, error)
	Keys(ctx context.Context, prefix string) ([]string, error)
	Delete(ctx context.Context, key string) error
	Close() error
}

// TranscriptKey is the key for a video's raw transcript
func TranscriptKey(videoID string) string {
	return TranscriptPrefix + videoID
}

// GroupedKey is the key for a video's chunks grouped at span seconds
func GroupedKey(videoID string, span float64) string {
	return ChunksPrefix + videoID + ":grouped:" + spanSuffix(span)
}

// TranslatedKey is the key for a video's translated chunks, grouped at span seconds
func TranslatedKey(videoID string, span float64) string {
	return translatedPrefix(videoID) + spanSuffix(span)
}

// videoChunksPrefix covers every chunk sequence cached for videoID
func videoChunksPrefix(videoID string) string {
	return ChunksPrefix + videoID + ":"
}

func translatedPrefix(videoID string) string {
	return videoChunksPrefix(videoID) + "translated:"
}

func spanSuffix(span float64) string {
	return strconv.FormatFloat(span, 'f', -1, 64)
}

// Store reads and writes typed records on a Backend
type Store struct {
	backend Backend
}

// New wraps a Backend
func New(backend Backend) *Store {
	return &Store{backend: backend}
}

// Backend returns the underlying backend
func (s *Store) Backend() Backend {
	return s.backend
}

// Exists reports whether key has a stored value
func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	return s.backend.Exists(ctx, key)
}

// SaveTranscript stores t under its video id
func (s *Store) SaveTranscript(ctx context.Context, t *models.Transcript) error {
	if t == nil || t.VideoID == "" {
		return fmt.Errorf("transcript requires a video id")
	}
	return s.put(ctx, TranscriptKey(t.VideoID), t)
}

// LoadTranscript returns the stored transcript or ErrNotFound
func (s *Store) LoadTranscript(ctx context.Context, videoID string) (*models.Transcript, error) {
	var t models.Transcript
	if err := s.get(ctx, TranscriptKey(videoID), &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// SaveChunks stores a chunk sequence under key
func (s *Store) SaveChunks(ctx context.Context, key string, chunks []models.Chunk) error {
	return s.put(ctx, key, chunks)
}

// LoadChunks returns the chunk sequence under key or ErrNotFound
func (s *Store) LoadChunks(ctx context.Context, key string) ([]models.Chunk, error) {
	var chunks []models.Chunk
	if err := s.get(ctx, key, &chunks); err != nil {
		return nil, err
	}
	return chunks, nil
}

// DeleteVideo removes the transcript and every chunk sequence stored for videoID
func (s *Store) DeleteVideo(ctx context.Context, videoID string) error {
	chunkKeys, err := s.backend.Keys(ctx, videoChunksPrefix(videoID))
	if err != nil {
		return fmt.Errorf("list chunks for %s: %w", videoID, err)
	}
	keys := append([]string{TranscriptKey(videoID)}, chunkKeys...)
	for _, k := range keys {
		if err := s.backend.Delete(ctx, k); err != nil && !errors.Is(err, ErrNotFound) {
			return fmt.Errorf("delete %s: %w", k, err)
		}
	}
	return nil
}

// ListVideos describes every stored transcript, sorted by video id
func (s *Store) ListVideos(ctx context.Context) ([]models.VideoInfo, error) {
	keys, err := s.backend.Keys(ctx, TranscriptPrefix)
	if err != nil {
		return nil, fmt.Errorf("list transcripts: %w", err)
	}
	sort.Strings(keys)

	videos := make([]models.VideoInfo, 0, len(keys))
	for _, k := range keys {
		id := strings.TrimPrefix(k, TranscriptPrefix)
		t, err := s.LoadTranscript(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("load transcript %s: %w", id, err)
		}
		translatedKeys, err := s.backend.Keys(ctx, translatedPrefix(id))
		if err != nil {
			return nil, err
		}
		videos = append(videos, models.VideoInfo{
			VideoID:      id,
			Language:     t.Language,
			LanguageCode: t.LanguageCode,
			SnippetCount: len(t.Snippets),
			Translated:   len(translatedKeys) > 0,
			FetchedAt:    t.FetchedAt,
		})
	}
	return videos, nil
}

// Close closes the backend
func (s *Store) Close() error {
	return s.backend.Close()
}

func (s *Store) put(ctx context.Context, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := s.backend.Set(ctx, key, data); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (s *Store) get(ctx context.Context, key string, v interface{}) error {
	data, err := s.backend.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("unmarshal %s: %w", key, err)
	}
	return nil
}

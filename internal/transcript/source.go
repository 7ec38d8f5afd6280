// ABOUTME: Transcript sources keyed by video id
// ABOUTME: FileSource reads <id>.json, <id>.srt or <id>.vtt from a directory
package transcript

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/harper/tubescribe/internal/models"
)

var (
	// ErrNotFound is returned when no transcript file exists for a video
	ErrNotFound = errors.New("transcript not found")
	// ErrNoTranscript is returned when a transcript exists but has no snippets
	ErrNoTranscript = errors.New("transcript has no snippets")
)

// UnknownLanguage marks transcripts whose file format carries no language
const UnknownLanguage = "unknown"

// Extensions lists the file types a FileSource understands, in lookup order
var Extensions = []string{".json", ".srt", ".vtt"}

// Source fetches the raw transcript for a video
type Source interface {
	Fetch(ctx context.Context, videoID string) (*models.Transcript, error)
}

// FileSource loads transcripts from files named after the video id
type FileSource struct {
	Dir string
}

// NewFileSource creates a FileSource rooted at dir
func NewFileSource(dir string) *FileSource {
	return &FileSource{Dir: dir}
}

// Fetch returns the first matching transcript file for videoID
func (s *FileSource) Fetch(ctx context.Context, videoID string) (*models.Transcript, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if videoID == "" || strings.ContainsAny(videoID, `/\`) {
		return nil, fmt.Errorf("invalid video id %q", videoID)
	}

	for _, ext := range Extensions {
		path := filepath.Join(s.Dir, videoID+ext)
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}
		t, err := ParseFile(path)
		if err != nil {
			return nil, err
		}
		t.VideoID = videoID
		return t, nil
	}
	return nil, fmt.Errorf("%s in %s: %w", videoID, s.Dir, ErrNotFound)
}

// IsTranscriptFile reports whether path has a supported extension
func IsTranscriptFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// VideoIDFromPath derives the video id from a transcript file name
func VideoIDFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ParseFile reads and parses a transcript file by extension. The video id
// defaults to the file name when the content does not carry one.
func ParseFile(path string) (*models.Transcript, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read transcript: %w", err)
	}

	var t *models.Transcript
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		t, err = ParseJSON(data)
	case ".srt":
		var snippets []models.Snippet
		snippets, err = ParseSRT(data)
		t = &models.Transcript{Snippets: snippets}
	case ".vtt":
		var (
			snippets []models.Snippet
			lang     string
		)
		snippets, lang, err = ParseVTT(data)
		t = &models.Transcript{Snippets: snippets, LanguageCode: lang}
	default:
		return nil, fmt.Errorf("unsupported transcript format: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if len(t.Snippets) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoTranscript)
	}
	if t.VideoID == "" {
		t.VideoID = VideoIDFromPath(path)
	}
	if t.Language == "" {
		t.Language = languageName(t.LanguageCode)
	}
	if t.FetchedAt.IsZero() {
		t.FetchedAt = time.Now().UTC()
	}
	return t, nil
}

func languageName(code string) string {
	switch strings.ToLower(code) {
	case "":
		return UnknownLanguage
	case "en", "en-us", "en-gb":
		return "English"
	default:
		return code
	}
}

// ABOUTME: Export of a prepared video transcript and its summaries
// ABOUTME: Supports YAML and Markdown export formats
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/harper/tubescribe/internal/models"
)

// FormatVersion is written into every export
const FormatVersion = "1.0"

// Formats accepted by Write
const (
	FormatYAML     = "yaml"
	FormatMarkdown = "markdown"
	FormatDocx     = "docx"
)

// VideoExport is the complete exportable view of one video
type VideoExport struct {
	Version    string           `yaml:"version" json:"version"`
	ExportedAt string           `yaml:"exported_at" json:"exported_at"`
	Tool       string           `yaml:"tool" json:"tool"`
	VideoID    string           `yaml:"video_id" json:"video_id"`
	Language   string           `yaml:"language" json:"language"`
	Translated bool             `yaml:"translated" json:"translated"`
	Summary    string           `yaml:"summary,omitempty" json:"summary,omitempty"`
	Intervals  []ExportInterval `yaml:"intervals,omitempty" json:"intervals,omitempty"`
	Chunks     []ExportChunk    `yaml:"chunks" json:"chunks"`
}

// ExportChunk is one transcript chunk for export
type ExportChunk struct {
	Start float64 `yaml:"start" json:"start"`
	End   float64 `yaml:"end" json:"end"`
	Label string  `yaml:"label" json:"label"`
	Text  string  `yaml:"text" json:"text"`
}

// ExportInterval is one per-interval summary for export
type ExportInterval struct {
	Label   string `yaml:"label" json:"label"`
	Summary string `yaml:"summary" json:"summary"`
}

// NewVideoExport assembles the export view. summary and intervals are optional.
func NewVideoExport(t *models.Transcript, chunks []models.Chunk, translated bool, summary string, intervals []models.IntervalSummary) *VideoExport {
	data := &VideoExport{
		Version:    FormatVersion,
		ExportedAt: time.Now().Format(time.RFC3339),
		Tool:       "tubescribe",
		VideoID:    t.VideoID,
		Language:   t.Language,
		Translated: translated,
		Summary:    summary,
		Chunks:     make([]ExportChunk, 0, len(chunks)),
	}
	for _, c := range chunks {
		data.Chunks = append(data.Chunks, ExportChunk{Start: c.Start, End: c.End, Label: c.Label(), Text: c.Text})
	}
	for _, s := range intervals {
		data.Intervals = append(data.Intervals, ExportInterval{Label: s.Label(), Summary: s.Summary})
	}
	return data
}

// Write saves data to outputPath in the given format
func Write(data *VideoExport, format, outputPath string) error {
	switch strings.ToLower(format) {
	case FormatYAML, "yml":
		return writeFile(outputPath, func(w io.Writer) error { return EncodeYAML(w, data) })
	case FormatMarkdown, "md":
		return writeFile(outputPath, func(w io.Writer) error { return EncodeMarkdown(w, data) })
	case FormatDocx:
		return WriteVideoDocx(data, outputPath)
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}

// FormatFromPath guesses the export format from a file extension
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return FormatMarkdown
	case ".docx":
		return FormatDocx
	default:
		return FormatYAML
	}
}

// EncodeYAML writes data as YAML
func EncodeYAML(w io.Writer, data *VideoExport) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return encoder.Close()
}

// EncodeMarkdown writes data as a Markdown document
func EncodeMarkdown(w io.Writer, data *VideoExport) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Transcript Export - %s\n\n", data.VideoID)
	fmt.Fprintf(&b, "Generated: %s\n\n", data.ExportedAt)
	fmt.Fprintf(&b, "- **Language:** %s\n", data.Language)
	fmt.Fprintf(&b, "- **Translated:** %t\n\n", data.Translated)

	if data.Summary != "" {
		b.WriteString("## Summary\n\n")
		b.WriteString(data.Summary)
		b.WriteString("\n\n")
	}

	if len(data.Intervals) > 0 {
		b.WriteString("## Summary by Interval\n\n")
		for _, iv := range data.Intervals {
			fmt.Fprintf(&b, "### %s\n\n%s\n\n", iv.Label, iv.Summary)
		}
	}

	b.WriteString("## Transcript\n\n")
	for _, c := range data.Chunks {
		fmt.Fprintf(&b, "**[%s]** %s\n\n", c.Label, c.Text)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeFile(outputPath string, encode func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(outputPath) // #nosec G304
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := encode(file); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

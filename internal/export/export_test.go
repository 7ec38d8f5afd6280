// ABOUTME: Tests for YAML, Markdown and docx export of a video
// ABOUTME: Writes into temp dirs and inspects the produced files
package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/harper/tubescribe/internal/models"
)

func sampleExport() *VideoExport {
	t := &models.Transcript{VideoID: "abcDEF12345", Language: "Hindi", LanguageCode: "hi"}
	chunks := []models.Chunk{
		{Start: 0, End: 30, Text: "HELLO THERE"},
		{Start: 60, End: 95, Text: "COOKING RICE"},
	}
	intervals := []models.IntervalSummary{{Start: 0, End: 95, Summary: "Greeting and rice."}}
	return NewVideoExport(t, chunks, true, "# Overview\n\n- **Rice** is cooked\nPlain line", intervals)
}

func TestNewVideoExport(t *testing.T) {
	data := sampleExport()

	if data.Version != FormatVersion || data.Tool != "tubescribe" {
		t.Errorf("header = %q %q", data.Version, data.Tool)
	}
	if len(data.Chunks) != 2 || data.Chunks[1].Label != "01:00 - 01:35" {
		t.Errorf("Chunks = %+v", data.Chunks)
	}
	if len(data.Intervals) != 1 || data.Intervals[0].Label != "00:00 - 01:35" {
		t.Errorf("Intervals = %+v", data.Intervals)
	}
}

func TestEncodeYAML_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodeYAML(&buf, sampleExport()); err != nil {
		t.Fatalf("EncodeYAML() error = %v", err)
	}

	var decoded VideoExport
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("yaml.Unmarshal() error = %v", err)
	}
	if decoded.VideoID != "abcDEF12345" || !decoded.Translated || decoded.Language != "Hindi" {
		t.Errorf("decoded header = %+v", decoded)
	}
	if len(decoded.Chunks) != 2 || decoded.Chunks[0].Text != "HELLO THERE" || decoded.Chunks[1].Start != 60 {
		t.Errorf("decoded chunks = %+v", decoded.Chunks)
	}
}

func TestEncodeMarkdown(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodeMarkdown(&buf, sampleExport()); err != nil {
		t.Fatalf("EncodeMarkdown() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"# Transcript Export - abcDEF12345",
		"## Summary\n",
		"### 00:00 - 01:35",
		"**[00:00 - 00:30]** HELLO THERE",
		"**[01:00 - 01:35]** COOKING RICE",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q\n%s", want, out)
		}
	}
}

func TestEncodeMarkdown_OmitsEmptySummaries(t *testing.T) {
	data := NewVideoExport(&models.Transcript{VideoID: "v"}, []models.Chunk{{Start: 0, End: 1, Text: "x"}}, false, "", nil)

	var buf bytes.Buffer
	if err := EncodeMarkdown(&buf, data); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "## Summary") {
		t.Errorf("unexpected summary section:\n%s", buf.String())
	}
}

func TestWrite_Formats(t *testing.T) {
	dir := t.TempDir()
	data := sampleExport()

	tests := []struct {
		format string
		file   string
		prefix string
	}{
		{FormatYAML, "out.yaml", "version:"},
		{FormatMarkdown, "out.md", "# Transcript Export"},
		{FormatDocx, "out.docx", "PK"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			path := filepath.Join(dir, "nested", tt.file)
			if err := Write(data, tt.format, path); err != nil {
				t.Fatalf("Write() error = %v", err)
			}
			content, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.HasPrefix(content, []byte(tt.prefix)) {
				t.Errorf("file starts with %q, want prefix %q", content[:min(len(content), 16)], tt.prefix)
			}
		})
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	if err := Write(sampleExport(), "pdf", filepath.Join(t.TempDir(), "x.pdf")); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]string{
		"a.md":       FormatMarkdown,
		"a.MARKDOWN": FormatMarkdown,
		"a.docx":     FormatDocx,
		"a.yaml":     FormatYAML,
		"a":          FormatYAML,
	}
	for path, want := range tests {
		if got := FormatFromPath(path); got != want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", path, got, want)
		}
	}
}

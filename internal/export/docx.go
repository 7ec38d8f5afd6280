// ABOUTME: Word document export of summaries and time-labelled transcripts
// ABOUTME: Light markdown (headings, bullets, bold) in summaries is rendered as styled runs
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"

	"github.com/harper/tubescribe/internal/models"
)

const (
	fontName = "Times New Roman"
	fontSize = 13
)

var (
	reHeading = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	reBold    = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reBullet  = regexp.MustCompile(`^[\-\*]\s+(.+)$`)
)

// WriteSummaryDocx renders a markdown-ish summary into a docx file
func WriteSummaryDocx(title, summary, outputPath string) error {
	doc, err := newDocument(title, outputPath)
	if err != nil {
		return err
	}
	addMarkdown(doc, summary)
	return doc.SaveTo(outputPath)
}

// WriteTranscriptDocx writes one paragraph per chunk prefixed with its [mm:ss - mm:ss] label
func WriteTranscriptDocx(title string, chunks []models.Chunk, outputPath string) error {
	doc, err := newDocument(title, outputPath)
	if err != nil {
		return err
	}
	addChunks(doc, chunks)
	return doc.SaveTo(outputPath)
}

// WriteVideoDocx writes the summaries followed by the transcript
func WriteVideoDocx(data *VideoExport, outputPath string) error {
	doc, err := newDocument("Transcript "+data.VideoID, outputPath)
	if err != nil {
		return err
	}

	if data.Summary != "" {
		addStyledRun(doc.AddParagraph(""), "Summary", true, headingSize(2))
		addMarkdown(doc, data.Summary)
	}
	if len(data.Intervals) > 0 {
		addStyledRun(doc.AddParagraph(""), "Summary by Interval", true, headingSize(2))
		for _, iv := range data.Intervals {
			addStyledRun(doc.AddParagraph(""), iv.Label, true, headingSize(3))
			addMarkdown(doc, iv.Summary)
		}
	}

	addStyledRun(doc.AddParagraph(""), "Transcript", true, headingSize(2))
	for _, c := range data.Chunks {
		addChunk(doc, c.Label, c.Text)
	}
	return doc.SaveTo(outputPath)
}

func newDocument(title, outputPath string) (*docx.RootDoc, error) {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	doc, err := godocx.NewDocument()
	if err != nil {
		return nil, fmt.Errorf("failed to create document: %w", err)
	}
	addStyledRun(doc.AddParagraph(""), title, true, 16)
	return doc, nil
}

func addChunks(doc *docx.RootDoc, chunks []models.Chunk) {
	for _, c := range chunks {
		addChunk(doc, c.Label(), c.Text)
	}
}

func addChunk(doc *docx.RootDoc, label, text string) {
	p := doc.AddParagraph("")
	p.AddText("["+label+"] ").Font(fontName).Size(fontSize).Color("555555").Bold(true)
	p.AddText(text).Font(fontName).Size(fontSize).Color("000000")
}

func addMarkdown(doc *docx.RootDoc, markdown string) {
	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || trimmed == "---" {
			continue
		}

		if m := reHeading.FindStringSubmatch(trimmed); m != nil {
			addStyledRun(doc.AddParagraph(""), m[2], true, headingSize(len(m[1])))
			continue
		}
		if m := reBullet.FindStringSubmatch(trimmed); m != nil {
			addRichText(doc.AddParagraph(""), "• "+m[1])
			continue
		}
		addRichText(doc.AddParagraph(""), trimmed)
	}
}

func headingSize(level int) uint64 {
	switch level {
	case 1:
		return 16
	case 2:
		return 15
	case 3:
		return 14
	default:
		return fontSize
	}
}

func addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	run := p.AddText(cleanMarkdownInline(text)).Font(fontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}

func addRichText(p *docx.Paragraph, text string) {
	parts := reBold.Split(text, -1)
	matches := reBold.FindAllStringSubmatch(text, -1)

	for i, part := range parts {
		if part != "" {
			p.AddText(cleanMarkdownInline(part)).Font(fontName).Size(fontSize).Color("000000")
		}
		if i < len(matches) {
			p.AddText(cleanMarkdownInline(matches[i][1])).Font(fontName).Size(fontSize).Color("000000").Bold(true)
		}
	}
}

func cleanMarkdownInline(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "__", "")
	s = strings.ReplaceAll(s, "`", "")
	return s
}

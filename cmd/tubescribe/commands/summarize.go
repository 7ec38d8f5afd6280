// ABOUTME: CLI command to summarize a video, whole or per fixed interval
// ABOUTME: Optionally writes the summary to a Word document
package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harper/tubescribe/internal/export"
	"github.com/harper/tubescribe/internal/models"
)

var (
	summarizeInterval float64
	summarizeDocx     string
)

// NewSummarizeCmd creates summarize command
func NewSummarizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summarize <url|id>",
		Short: "Summarize a video",
		Long: `Summarize a video with the LLM. The transcript is regrouped into larger
blocks, each block is summarized, and the partial summaries are merged.

With --interval N the video is instead summarized every N seconds.

Examples:
  tubescribe summarize dQw4w9WgXcQ
  tubescribe summarize dQw4w9WgXcQ --interval 300
  tubescribe summarize dQw4w9WgXcQ --docx summary.docx`,
		Args: cobra.ExactArgs(1),
		RunE: runSummarize,
	}

	cmd.Flags().Float64Var(&summarizeInterval, "interval", 0, "Summarize every N seconds instead of the whole video")
	cmd.Flags().StringVar(&summarizeDocx, "docx", "", "Also write the summary to this .docx file")

	return cmd
}

func runSummarize(cmd *cobra.Command, args []string) error {
	videoID, err := videoIDArg(args[0])
	if err != nil {
		return err
	}
	if summarizeInterval < 0 {
		return fmt.Errorf("interval must be positive, got %v", summarizeInterval)
	}

	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	prepared, err := a.Pipeline.Prepare(cmd.Context(), videoID)
	if err != nil {
		return fmt.Errorf("loading transcript: %w", err)
	}

	var (
		summary   string
		intervals []models.IntervalSummary
	)
	if summarizeInterval > 0 {
		intervals, err = a.Summarizer.SummarizeIntervals(cmd.Context(), prepared.Chunks, summarizeInterval)
		summary = intervalsMarkdown(intervals)
	} else {
		summary, err = a.Summarizer.SummarizeVideo(cmd.Context(), prepared.Chunks)
	}
	if err != nil {
		return fmt.Errorf("summary failed: %w", err)
	}

	if summarizeDocx != "" {
		if err := export.WriteSummaryDocx("Summary "+videoID, summary, summarizeDocx); err != nil {
			return fmt.Errorf("writing %s: %w", summarizeDocx, err)
		}
		if !quiet {
			fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", summarizeDocx)
		}
	}

	if outputFormat == "json" {
		if intervals != nil {
			return writeJSON(cmd.OutOrStdout(), map[string]interface{}{"video_id": videoID, "intervals": intervals})
		}
		return writeJSON(cmd.OutOrStdout(), map[string]interface{}{"video_id": videoID, "summary": summary})
	}

	fmt.Fprintln(cmd.OutOrStdout(), summary)
	return nil
}

// intervalsMarkdown renders per-interval summaries with one heading per interval
func intervalsMarkdown(intervals []models.IntervalSummary) string {
	var b strings.Builder
	for i, s := range intervals {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "## %s\n%s\n", s.Label(), s.Summary)
	}
	return b.String()
}

// ABOUTME: CLI command to export a video transcript with optional summaries
// ABOUTME: Writes YAML, Markdown or a Word document
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/tubescribe/internal/export"
	"github.com/harper/tubescribe/internal/models"
)

var (
	exportOutput    string
	exportTo        string
	exportSummary   bool
	exportIntervals float64
)

// NewExportCmd creates export command
func NewExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <url|id>",
		Short: "Export a video transcript",
		Long: `Export a prepared transcript as YAML, Markdown or a Word document.

Each chunk is written with its [mm:ss - mm:ss] label. The format follows
the output file extension unless --to is given. Without -o, YAML and
Markdown go to stdout.

Examples:
  tubescribe export dQw4w9WgXcQ
  tubescribe export dQw4w9WgXcQ -o talk.md
  tubescribe export dQw4w9WgXcQ -o talk.docx --summary
  tubescribe export dQw4w9WgXcQ --to markdown --intervals 300`,
		Args: cobra.ExactArgs(1),
		RunE: runExport,
	}

	cmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default stdout)")
	cmd.Flags().StringVar(&exportTo, "to", "", "Export format: yaml, markdown or docx")
	cmd.Flags().BoolVar(&exportSummary, "summary", false, "Include a whole-video summary")
	cmd.Flags().Float64Var(&exportIntervals, "intervals", 0, "Include summaries every N seconds")

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	videoID, err := videoIDArg(args[0])
	if err != nil {
		return err
	}

	format := exportTo
	if format == "" {
		format = export.FormatFromPath(exportOutput)
	}
	if format == export.FormatDocx && exportOutput == "" {
		return fmt.Errorf("docx export needs an output file (-o)")
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

	var summary string
	if exportSummary {
		summary, err = a.Summarizer.SummarizeVideo(cmd.Context(), prepared.Chunks)
		if err != nil {
			return fmt.Errorf("summary failed: %w", err)
		}
	}
	var intervals []models.IntervalSummary
	if exportIntervals > 0 {
		intervals, err = a.Summarizer.SummarizeIntervals(cmd.Context(), prepared.Chunks, exportIntervals)
		if err != nil {
			return fmt.Errorf("interval summary failed: %w", err)
		}
	}

	data := export.NewVideoExport(prepared.Transcript, prepared.Chunks, prepared.Translated, summary, intervals)

	if exportOutput == "" {
		switch format {
		case export.FormatMarkdown, "md":
			return export.EncodeMarkdown(cmd.OutOrStdout(), data)
		default:
			return export.EncodeYAML(cmd.OutOrStdout(), data)
		}
	}

	if err := export.Write(data, format, exportOutput); err != nil {
		return err
	}
	if !quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "Exported %s to %s\n", videoID, exportOutput)
	}
	return nil
}

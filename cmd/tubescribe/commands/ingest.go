// ABOUTME: CLI command to ingest a transcript and build its cached chunks
// ABOUTME: Reads from TRANSCRIPT_DIR by video id, or from an explicit file
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/tubescribe/internal/core"
	"github.com/harper/tubescribe/internal/transcript"
)

var (
	ingestFile string
)

// NewIngestCmd creates ingest command
func NewIngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest [url|id]",
		Short: "Ingest a transcript and cache its chunks",
		Long: `Ingest a transcript, group it into chunks and translate it to English
when needed. Every stage is cached so later lookups are instant.

Without --file the transcript is read from TRANSCRIPT_DIR as <id>.json,
<id>.srt or <id>.vtt. With --file the given file is stored under the
video id from the argument, or the file name when no argument is given.

Examples:
  tubescribe ingest dQw4w9WgXcQ
  tubescribe ingest "https://youtu.be/dQw4w9WgXcQ"
  tubescribe ingest --file ./talk.srt
  tubescribe ingest dQw4w9WgXcQ --file ./captions.vtt`,
		Args: cobra.MaximumNArgs(1),
		RunE: runIngest,
	}

	cmd.Flags().StringVar(&ingestFile, "file", "", "Transcript file to ingest (.json, .srt or .vtt)")

	return cmd
}

func runIngest(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && ingestFile == "" {
		return fmt.Errorf("a video id or --file is required")
	}

	var videoID string
	if len(args) == 1 {
		id, err := videoIDArg(args[0])
		if err != nil {
			return err
		}
		videoID = id
	}

	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	var prepared *core.Prepared
	if ingestFile != "" {
		t, err := transcript.ParseFile(ingestFile)
		if err != nil {
			return fmt.Errorf("reading %s: %w", ingestFile, err)
		}
		if videoID != "" {
			t.VideoID = videoID
		}
		prepared, err = a.Ingest(cmd.Context(), t)
		if err != nil {
			return fmt.Errorf("ingesting %s: %w", t.VideoID, err)
		}
	} else {
		prepared, err = a.Pipeline.Prepare(cmd.Context(), videoID)
		if err != nil {
			return fmt.Errorf("ingesting %s: %w", videoID, err)
		}
	}

	if outputFormat == "json" {
		return writeJSON(cmd.OutOrStdout(), map[string]interface{}{
			"video_id":   prepared.Transcript.VideoID,
			"language":   prepared.Transcript.Language,
			"snippets":   len(prepared.Transcript.Snippets),
			"chunks":     len(prepared.Chunks),
			"translated": prepared.Translated,
		})
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Ingested %s (%s): %d snippets, %d chunks\n",
		prepared.Transcript.VideoID, prepared.Transcript.Language,
		len(prepared.Transcript.Snippets), len(prepared.Chunks))
	if prepared.Translated && !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Translated to English\n")
	}
	return nil
}

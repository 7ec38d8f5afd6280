// ABOUTME: CLI command to show what is said at a point in a video
// ABOUTME: Prints the previous, matching and next chunks, and optionally answers a question
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/tubescribe/internal/models"
)

var (
	lookupQuestion string
)

// NewLookupCmd creates lookup command
func NewLookupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lookup <url|id> <timestamp>",
		Short: "Show the transcript around a timestamp",
		Long: `Show the transcript chunk playing at a timestamp, with the chunk before
and after it for context. A timestamp inside a gap between chunks resolves
to the next chunk. Past the end of the video "no data found" is printed.

Timestamps are seconds (95.5) or a clock (1:35, 1:01:35).

Examples:
  tubescribe lookup dQw4w9WgXcQ 95
  tubescribe lookup dQw4w9WgXcQ 1:35 --question "what ingredient is added?"
  tubescribe lookup --format json dQw4w9WgXcQ 300`,
		Args: cobra.ExactArgs(2),
		RunE: runLookup,
	}

	cmd.Flags().StringVar(&lookupQuestion, "question", "", "Ask the LLM a question about this moment")

	return cmd
}

func runLookup(cmd *cobra.Command, args []string) error {
	videoID, err := videoIDArg(args[0])
	if err != nil {
		return err
	}
	timestamp, err := parseTimestamp(args[1])
	if err != nil {
		return err
	}

	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	window, err := a.Pipeline.Lookup(cmd.Context(), videoID, timestamp)
	if err != nil {
		return fmt.Errorf("lookup failed: %w", err)
	}

	var answer string
	if lookupQuestion != "" {
		answer, err = a.Summarizer.Answer(cmd.Context(), lookupQuestion, window)
		if err != nil {
			return fmt.Errorf("answer failed: %w", err)
		}
	}

	if outputFormat == "json" {
		return writeJSON(cmd.OutOrStdout(), map[string]interface{}{
			"video_id":  videoID,
			"timestamp": timestamp,
			"window":    window,
			"answer":    answer,
		})
	}

	out := cmd.OutOrStdout()
	if !window.Found() {
		fmt.Fprintln(out, models.NoDataMessage)
	} else {
		printChunk(cmd, "previous", window.Previous)
		printChunk(cmd, matchRole(window), window.Match)
		printChunk(cmd, "next", window.Next)
	}
	if answer != "" {
		fmt.Fprintf(out, "\n%s\n", answer)
	}
	return nil
}

// matchRole labels the matched chunk, flagging a gap fallback as "nearest".
func matchRole(window models.ContextWindow) string {
	if window.Kind == models.MatchNearestFollowing {
		return "nearest"
	}
	return "match"
}

func printChunk(cmd *cobra.Command, role string, c *models.Chunk) {
	if c == nil {
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%-8s [%s] %s\n", role, c.Label(), c.Text)
}

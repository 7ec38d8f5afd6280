// ABOUTME: CLI command to search one video's transcript by meaning
// ABOUTME: Builds the embedding index on first use and prints ranked passages
package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/harper/tubescribe/internal/models"
)

var (
	searchLimit int
)

// NewSearchCmd creates search command
func NewSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <url|id> <query>",
		Short: "Search a video transcript",
		Long: `Search a video transcript with semantic similarity.

The first search of a video embeds its transcript and stores the index;
later searches reuse it until the transcript is re-ingested.

Examples:
  tubescribe search dQw4w9WgXcQ "travel plans"
  tubescribe search --limit 10 dQw4w9WgXcQ "recipe"
  tubescribe search --format json dQw4w9WgXcQ "pricing"`,
		Args: cobra.ExactArgs(2),
		RunE: runSearch,
	}

	cmd.Flags().IntVar(&searchLimit, "limit", 5, "Maximum results to return")

	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	if err := validatePositiveInt(searchLimit, "limit"); err != nil {
		return err
	}
	videoID, err := videoIDArg(args[0])
	if err != nil {
		return err
	}
	query := args[1]

	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	results, err := a.SearchVideo(cmd.Context(), videoID, query, searchLimit)
	if err != nil {
		return fmt.Errorf("searching %s: %w", videoID, err)
	}

	if len(results) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No passages found for query: %s\n", query)
		}
		return nil
	}

	if outputFormat == "json" {
		return writeJSON(cmd.OutOrStdout(), results)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "SCORE\tTIME\tPREVIEW\n")
	fmt.Fprintf(w, "-----\t----\t-------\n")
	for _, r := range results {
		fmt.Fprintf(w, "%.3f\t%s\t%s\n",
			r.SimilarityScore,
			resultLabel(r),
			truncate(r.Text, 70))
	}
	w.Flush()

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\nFound %d result(s)\n", len(results))
	}
	return nil
}

func resultLabel(r models.SearchResult) string {
	return models.FormatTimestamp(r.Start) + " - " + models.FormatTimestamp(r.End)
}

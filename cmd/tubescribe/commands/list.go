// ABOUTME: CLI command to list stored videos
// ABOUTME: Shows language, snippet count and translation state per video
package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/harper/tubescribe/internal/models"
)

var (
	listTranslated bool
)

// NewListCmd creates list command
func NewListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored videos",
		Long: `List every video whose transcript is stored.

Shows the transcript language, how many snippets it has, whether an
English translation is cached and when it was fetched.

Examples:
  tubescribe list
  tubescribe list --translated
  tubescribe list --format json`,
		Args: cobra.NoArgs,
		RunE: runList,
	}

	cmd.Flags().BoolVar(&listTranslated, "translated", false, "Only show videos with a cached translation")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	all, err := a.Stores.Chunks.ListVideos(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing videos: %w", err)
	}

	videos := make([]models.VideoInfo, 0, len(all))
	for _, v := range all {
		if listTranslated && !v.Translated {
			continue
		}
		videos = append(videos, v)
	}

	if len(videos) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No videos found\n")
		}
		return nil
	}

	if outputFormat == "json" {
		return writeJSON(cmd.OutOrStdout(), videos)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "VIDEO ID\tLANGUAGE\tSNIPPETS\tTRANSLATED\tFETCHED\n")
	fmt.Fprintf(w, "--------\t--------\t--------\t----------\t-------\n")
	for _, v := range videos {
		fmt.Fprintf(w, "%s\t%s\t%d\t%t\t%s\n",
			v.VideoID,
			truncate(v.Language, 20),
			v.SnippetCount,
			v.Translated,
			formatTime(v.FetchedAt))
	}
	w.Flush()

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\nTotal: %d video(s)\n", len(videos))
	}
	return nil
}

// ABOUTME: CLI command to delete a stored video
// ABOUTME: Removes the transcript, cached chunks and search index
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRemoveCmd creates remove command
func NewRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <url|id>",
		Short: "Delete a stored video",
		Long: `Delete the stored transcript, its cached grouped and translated chunks
and its search index. The next lookup rebuilds everything from the source.

Examples:
  tubescribe remove dQw4w9WgXcQ`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			videoID, err := videoIDArg(args[0])
			if err != nil {
				return err
			}

			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.Remove(cmd.Context(), videoID); err != nil {
				return fmt.Errorf("removing %s: %w", videoID, err)
			}
			if !quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", videoID)
			}
			return nil
		},
	}
}

// ABOUTME: CLI command to watch an inbox directory for new transcript files
// ABOUTME: Each dropped .json, .srt or .vtt file is ingested until interrupted
package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/harper/tubescribe/internal/watcher"
)

var (
	watchDir         string
	watchConcurrency int
)

// NewWatchCmd creates watch command
func NewWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Ingest transcript files dropped into an inbox",
		Long: `Watch INBOX_DIR (or --dir) and ingest every .json, .srt or .vtt file
created there. The file name is used as the video id unless the file
carries one. Stops on Ctrl-C after in-flight files finish.

Examples:
  tubescribe watch
  tubescribe watch --dir ~/Downloads/captions --concurrency 4`,
		Args: cobra.NoArgs,
		RunE: runWatch,
	}

	cmd.Flags().StringVar(&watchDir, "dir", "", "Directory to watch (default INBOX_DIR)")
	cmd.Flags().IntVar(&watchConcurrency, "concurrency", watcher.DefaultMaxConcurrent, "Files ingested at once")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	if err := validatePositiveInt(watchConcurrency, "concurrency"); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	dir := watchDir
	if dir == "" {
		dir = a.Config.InboxDir
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating inbox: %w", err)
	}

	out := cmd.OutOrStdout()
	handler := func(ctx context.Context, path string) error {
		prepared, err := a.IngestFile(ctx, path)
		if err != nil {
			return err
		}
		if !quiet {
			fmt.Fprintf(out, "Ingested %s from %s (%d chunks)\n", prepared.Transcript.VideoID, path, len(prepared.Chunks))
		}
		return nil
	}

	w, err := watcher.New(dir, handler, a.Log, watcher.Options{MaxConcurrent: watchConcurrency})
	if err != nil {
		return err
	}
	defer w.Stop()

	if !quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "Watching %s (Ctrl-C to stop)\n", dir)
	}

	if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

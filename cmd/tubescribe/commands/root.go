// ABOUTME: Root command, global flags and shared app bootstrap for the CLI
// ABOUTME: Every data command loads .env, config, storage and the LLM client through openApp
package commands

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/harper/tubescribe/internal/app"
	"github.com/harper/tubescribe/internal/config"
	"github.com/harper/tubescribe/internal/logger"
)

var (
	verbose      bool
	quiet        bool
	outputFormat string
)

const banner = `
████████╗██╗   ██╗██████╗ ███████╗
╚══██╔══╝██║   ██║██╔══██╗██╔════╝
   ██║   ██║   ██║██████╔╝█████╗
   ██║   ██║   ██║██╔══██╗██╔══╝
   ██║   ╚██████╔╝██████╔╝███████╗
   ╚═╝    ╚═════╝ ╚═════╝ ╚══════╝  scribe`

// NewRootCmd creates the root command with every subcommand attached
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tubescribe",
		Short: "Time-indexed, translated video transcripts for people and LLM agents",
		Long: banner + `

tubescribe groups a video transcript into time-bounded chunks, translates
non-English transcripts to English through an LLM, caches every stage and
answers questions about what is said at a given moment.

Transcripts are read from TRANSCRIPT_DIR (.json, .srt or .vtt named after
the video id) or ingested directly from a file.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return validateFormat(outputFormat)
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output (debug logging)")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Only print results and errors")
	cmd.PersistentFlags().StringVar(&outputFormat, "format", "auto", "Output format: auto, json or table")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.AddCommand(NewIngestCmd())
	cmd.AddCommand(NewLookupCmd())
	cmd.AddCommand(NewSummarizeCmd())
	cmd.AddCommand(NewSearchCmd())
	cmd.AddCommand(NewListCmd())
	cmd.AddCommand(NewRemoveCmd())
	cmd.AddCommand(NewExportCmd())
	cmd.AddCommand(NewWatchCmd())
	cmd.AddCommand(NewMCPCmd())
	cmd.AddCommand(NewSyncCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}

// loadConfig reads .env and the environment into a validated config
func loadConfig() (*config.Config, error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// newLogger honours --verbose and --quiet over LOG_LEVEL
func newLogger(cfg *config.Config) logger.Logger {
	level := cfg.LogLevel
	switch {
	case verbose:
		level = "debug"
	case quiet:
		level = "error"
	}
	return logger.New(level)
}

// openApp wires the full application; callers must Close it
func openApp(ctx context.Context) (*app.App, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	a, err := app.New(ctx, cfg, newLogger(cfg))
	if err != nil {
		return nil, fmt.Errorf("initializing tubescribe: %w", err)
	}
	return a, nil
}

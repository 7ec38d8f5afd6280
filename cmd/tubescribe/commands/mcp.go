// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Enables LLM agents like Claude to query video transcripts via stdio
package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/harper/tubescribe/internal/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs tubescribe as an MCP (Model Context Protocol) server, enabling
LLM agents like Claude to look up what is said at a timestamp, summarize
videos and search transcripts via stdio.

Configure in Claude Desktop's config file to enable the video tools.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically called by Claude Desktop)
  tubescribe mcp

  # Configure in claude_desktop_config.json:
  # {
  #   "mcpServers": {
  #     "tubescribe": {
  #       "command": "tubescribe",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

// runMCP starts the MCP server
func runMCP(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}

	server := mcp.NewServer(a, versionInfo.Version)
	a.Log.Info(ctx, "MCP server starting on stdio", "backend", a.Config.StoreBackend, "provider", a.Config.Provider)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	select {
	case <-ctx.Done():
		a.Log.Info(ctx, "shutdown signal received")
		if err := a.Close(); err != nil {
			a.Log.Warn(ctx, "error closing storage", "error", err)
		}
		a.Log.Info(ctx, "shutdown complete")

	case err := <-serverErr:
		_ = a.Close()
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	return nil
}

// ABOUTME: Main entry point for the tubescribe MCP server with stdio transport
// ABOUTME: Loads config, wires storage and the LLM client, and serves every tool
package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/harper/tubescribe/internal/app"
	"github.com/harper/tubescribe/internal/config"
	"github.com/harper/tubescribe/internal/logger"
	"github.com/harper/tubescribe/internal/mcp"
)

var version = "dev"

func main() {
	ctx := context.Background()

	// Load .env file if it exists (for API keys)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.New("error").Error(ctx, "invalid configuration", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel)

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "failed to initialize", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	server := mcp.NewServer(a, version)

	log.Info(ctx, "tubescribe MCP server starting on stdio", "backend", cfg.StoreBackend, "provider", cfg.Provider)
	if err := mcpserver.ServeStdio(server); err != nil {
		log.Error(ctx, "server error", "error", err)
		a.Close()
		os.Exit(1)
	}
}

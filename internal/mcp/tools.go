// ABOUTME: MCP tool definitions and registration for the tubescribe server
// ABOUTME: Defines JSON schemas for the time lookup, summary, search and listing tools
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/harper/tubescribe/internal/app"
)

// Tool names
const (
	ToolTimeInfo          = "get_time_related_information"
	ToolSummarizeVideo    = "summarize_video"
	ToolSummarizeInterval = "summarize_video_per_interval"
	ToolSearchTranscript  = "search_transcript"
	ToolListVideos        = "list_videos"
)

// ToolNames lists every registered tool in registration order
var ToolNames = []string{ToolTimeInfo, ToolSummarizeVideo, ToolSummarizeInterval, ToolSearchTranscript, ToolListVideos}

// DefaultIntervalSeconds is the per-interval summary window when none is given
const DefaultIntervalSeconds = 300

var videoIDProperty = map[string]interface{}{
	"type":        "string",
	"description": "YouTube video id or URL",
}

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, a *app.App) *Handlers {
	handlers := NewHandlers(a)

	// 1. get_time_related_information - what is said around a timestamp
	server.AddTool(mcp.Tool{
		Name:        ToolTimeInfo,
		Description: "Get the transcript chunk playing at a timestamp, with the previous and next chunks for context. Optionally answers a question about that moment.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"video_id": videoIDProperty,
				"timestamp": map[string]interface{}{
					"type":        "number",
					"description": "Seconds from the start of the video",
				},
				"question": map[string]interface{}{
					"type":        "string",
					"description": "Optional question about what happens at this time",
				},
			},
			Required: []string{"video_id", "timestamp"},
		},
	}, handlers.GetTimeRelatedInformation)

	// 2. summarize_video - one summary of the whole video
	server.AddTool(mcp.Tool{
		Name:        ToolSummarizeVideo,
		Description: "Summarize the whole video from its (translated) transcript.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"video_id": videoIDProperty,
			},
			Required: []string{"video_id"},
		},
	}, handlers.SummarizeVideo)

	// 3. summarize_video_per_interval - one summary per fixed window
	server.AddTool(mcp.Tool{
		Name:        ToolSummarizeInterval,
		Description: "Summarize the video in consecutive fixed-length intervals, returning each interval's start, end and summary.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"video_id": videoIDProperty,
				"interval_seconds": map[string]interface{}{
					"type":        "number",
					"description": "Interval length in seconds (default: 300)",
					"default":     DefaultIntervalSeconds,
				},
			},
			Required: []string{"video_id"},
		},
	}, handlers.SummarizeVideoPerInterval)

	// 4. search_transcript - semantic search inside one video
	server.AddTool(mcp.Tool{
		Name:        ToolSearchTranscript,
		Description: "Find the parts of a video most related to a query using semantic search.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"video_id": videoIDProperty,
				"query": map[string]interface{}{
					"type":        "string",
					"description": "What to look for",
				},
				"max_results": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of results to return (default: 5)",
					"default":     5,
				},
			},
			Required: []string{"video_id", "query"},
		},
	}, handlers.SearchTranscript)

	// 5. list_videos - what has been ingested
	server.AddTool(mcp.Tool{
		Name:        ToolListVideos,
		Description: "List the videos whose transcripts are stored, with language and translation status.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.ListVideos)

	return handlers
}

// ServerName is reported to MCP clients during initialization
const ServerName = "tubescribe"

// NewServer creates an MCP server with every tool registered
func NewServer(a *app.App, version string) *mcpserver.MCPServer {
	server := mcpserver.NewMCPServer(ServerName, version, mcpserver.WithToolCapabilities(false))
	RegisterTools(server, a)
	return server
}

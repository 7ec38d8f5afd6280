// ABOUTME: MCP tool handler implementations for the tubescribe server
// ABOUTME: User-facing failures become tool errors; "no data found" is a normal result
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/harper/tubescribe/internal/app"
	"github.com/harper/tubescribe/internal/core"
	"github.com/harper/tubescribe/internal/logger"
	"github.com/harper/tubescribe/internal/models"
	"github.com/harper/tubescribe/internal/search"
	"github.com/harper/tubescribe/internal/transcript"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	app *app.App
	log logger.Logger
}

// NewHandlers creates handlers over a wired application
func NewHandlers(a *app.App) *Handlers {
	log := a.Log
	if log == nil {
		log = logger.Nop()
	}
	return &Handlers{app: a, log: log.With("component", "mcp")}
}

// timeInfoResponse adds the optional answer to a context window
type timeInfoResponse struct {
	VideoID   string               `json:"video_id"`
	Timestamp float64              `json:"timestamp"`
	Window    models.ContextWindow `json:"window"`
	Answer    string               `json:"answer,omitempty"`
}

type intervalEntry struct {
	Label string `json:"label"`
	models.IntervalSummary
}

// GetTimeRelatedInformation handles the get_time_related_information tool
func (h *Handlers) GetTimeRelatedInformation(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	videoID, errResult := requireVideoID(request)
	if errResult != nil {
		return errResult, nil
	}
	timestamp, err := request.RequireFloat("timestamp")
	if err != nil {
		return mcp.NewToolResultError("timestamp argument is required and must be a number"), nil
	}

	window, err := h.app.Pipeline.Lookup(ctx, videoID, timestamp)
	if err != nil {
		return h.toolError(ctx, "lookup failed", videoID, err), nil
	}

	response := timeInfoResponse{VideoID: videoID, Timestamp: timestamp, Window: window}
	if question := request.GetString("question", ""); question != "" {
		answer, err := h.app.Summarizer.Answer(ctx, question, window)
		if err != nil {
			return h.toolError(ctx, "answer failed", videoID, err), nil
		}
		response.Answer = answer
	}

	return jsonResult(response)
}

// SummarizeVideo handles the summarize_video tool
func (h *Handlers) SummarizeVideo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	videoID, errResult := requireVideoID(request)
	if errResult != nil {
		return errResult, nil
	}

	prepared, err := h.app.Pipeline.Prepare(ctx, videoID)
	if err != nil {
		return h.toolError(ctx, "failed to load transcript", videoID, err), nil
	}
	summary, err := h.app.Summarizer.SummarizeVideo(ctx, prepared.Chunks)
	if err != nil {
		return h.toolError(ctx, "summary failed", videoID, err), nil
	}

	return jsonResult(map[string]interface{}{
		"video_id":   videoID,
		"translated": prepared.Translated,
		"summary":    summary,
	})
}

// SummarizeVideoPerInterval handles the summarize_video_per_interval tool
func (h *Handlers) SummarizeVideoPerInterval(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	videoID, errResult := requireVideoID(request)
	if errResult != nil {
		return errResult, nil
	}
	interval := request.GetFloat("interval_seconds", DefaultIntervalSeconds)
	if interval <= 0 {
		return mcp.NewToolResultError(fmt.Sprintf("interval_seconds must be positive, got %v", interval)), nil
	}

	prepared, err := h.app.Pipeline.Prepare(ctx, videoID)
	if err != nil {
		return h.toolError(ctx, "failed to load transcript", videoID, err), nil
	}
	summaries, err := h.app.Summarizer.SummarizeIntervals(ctx, prepared.Chunks, interval)
	if err != nil {
		return h.toolError(ctx, "interval summary failed", videoID, err), nil
	}

	entries := make([]intervalEntry, len(summaries))
	for i, s := range summaries {
		entries[i] = intervalEntry{Label: s.Label(), IntervalSummary: s}
	}
	return jsonResult(map[string]interface{}{
		"video_id":         videoID,
		"interval_seconds": interval,
		"intervals":        entries,
	})
}

// SearchTranscript handles the search_transcript tool
func (h *Handlers) SearchTranscript(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	videoID, errResult := requireVideoID(request)
	if errResult != nil {
		return errResult, nil
	}
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}
	maxResults := request.GetInt("max_results", search.DefaultMaxResults)

	results, err := h.app.SearchVideo(ctx, videoID, query, maxResults)
	if err != nil {
		return h.toolError(ctx, "search failed", videoID, err), nil
	}

	return jsonResult(map[string]interface{}{
		"video_id": videoID,
		"query":    query,
		"results":  results,
	})
}

// ListVideos handles the list_videos tool
func (h *Handlers) ListVideos(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	videos, err := h.app.Stores.Chunks.ListVideos(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list videos: %v", err)), nil
	}
	return jsonResult(map[string]interface{}{"videos": videos})
}

// requireVideoID accepts a bare id or any YouTube URL form
func requireVideoID(request mcp.CallToolRequest) (string, *mcp.CallToolResult) {
	raw, err := request.RequireString("video_id")
	if err != nil {
		return "", mcp.NewToolResultError("video_id argument is required and must be a string")
	}
	id, ok := transcript.ResolveVideoID(raw)
	if !ok {
		return "", mcp.NewToolResultError(fmt.Sprintf("could not find a video id in %q", raw))
	}
	return id, nil
}

func (h *Handlers) toolError(ctx context.Context, msg, videoID string, err error) *mcp.CallToolResult {
	switch {
	case errors.Is(err, transcript.ErrNotFound):
		return mcp.NewToolResultError(fmt.Sprintf("no transcript available for %s", videoID))
	case errors.Is(err, transcript.ErrNoTranscript):
		return mcp.NewToolResultError(fmt.Sprintf("transcript for %s is empty", videoID))
	case errors.Is(err, core.ErrInvalidTimestamp), errors.Is(err, search.ErrEmptyQuery):
		return mcp.NewToolResultError(err.Error())
	}
	h.log.Error(ctx, msg, "video_id", videoID, "error", err)
	return mcp.NewToolResultError(fmt.Sprintf("%s: %v", msg, err))
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	responseJSON, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}

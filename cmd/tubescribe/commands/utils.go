// ABOUTME: Shared utility functions for CLI commands
// ABOUTME: Output formatting, argument parsing and validation helpers
package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/harper/tubescribe/internal/transcript"
)

// truncate shortens a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return string(runes[:maxLen-3]) + "..."
}

// formatTime formats a time for display
func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	diff := time.Since(t)

	if diff < time.Minute {
		return "just now"
	} else if diff < time.Hour {
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	} else if diff < 24*time.Hour {
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	} else if diff < 7*24*time.Hour {
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	}
	return t.Format("2006-01-02")
}

// containsString checks if a slice contains a string
func containsString(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

// validatePositiveInt returns error if n is not positive
func validatePositiveInt(n int, name string) error {
	if n <= 0 {
		return fmt.Errorf("%s must be positive, got %d", name, n)
	}
	return nil
}

// validateFormat rejects unknown --format values
func validateFormat(format string) error {
	if !containsString([]string{"auto", "json", "table"}, format) {
		return fmt.Errorf("format must be auto, json or table, got %q", format)
	}
	return nil
}

// videoIDArg accepts a bare id or any YouTube URL form
func videoIDArg(raw string) (string, error) {
	id, ok := transcript.ResolveVideoID(raw)
	if !ok {
		return "", fmt.Errorf("could not find a video id in %q", raw)
	}
	return id, nil
}

// parseTimestamp accepts plain seconds ("95.5") or a clock ("1:35", "01:01:35")
func parseTimestamp(raw string) (float64, error) {
	if secs, err := strconv.ParseFloat(raw, 64); err == nil {
		return secs, nil
	}
	secs, err := transcript.ParseClock(raw)
	if err != nil {
		return 0, fmt.Errorf("timestamp must be seconds or mm:ss, got %q", raw)
	}
	return secs, nil
}

// writeJSON prints v indented
func writeJSON(w io.Writer, v interface{}) error {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	fmt.Fprintf(w, "%s\n", jsonData)
	return nil
}

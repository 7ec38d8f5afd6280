// ABOUTME: Version command to display build information
// ABOUTME: Also reports the transcript formats read and the MCP tools served
package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harper/tubescribe/internal/mcp"
	"github.com/harper/tubescribe/internal/transcript"
)

var versionInfo = VersionInfo{
	Version: "dev",
	Commit:  "none",
	Date:    "unknown",
}

// VersionInfo contains build information
type VersionInfo struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"built"`
}

// SetVersion sets the version information (called from main)
func SetVersion(version, commit, date string) {
	versionInfo.Version = version
	versionInfo.Commit = commit
	versionInfo.Date = date
}

// versionReport is what `tubescribe version` prints
type versionReport struct {
	VersionInfo
	Formats []string `json:"transcript_formats"`
	Tools   []string `json:"mcp_tools"`
}

func currentVersionReport() versionReport {
	return versionReport{
		VersionInfo: versionInfo,
		Formats:     transcript.Extensions,
		Tools:       mcp.ToolNames,
	}
}

// NewVersionCmd creates the version command
func NewVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Display the tubescribe build, the transcript file formats ingest and watch
accept, and the tools the MCP server exposes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report := currentVersionReport()
			if outputFormat == "json" {
				return writeJSON(cmd.OutOrStdout(), report)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "tubescribe %s\n", report.Version)
			fmt.Fprintf(out, "Commit:  %s\n", report.Commit)
			fmt.Fprintf(out, "Built:   %s\n", report.Date)
			fmt.Fprintf(out, "Formats: %s\n", strings.Join(report.Formats, " "))
			fmt.Fprintf(out, "Tools:   %s\n", strings.Join(report.Tools, " "))
			return nil
		},
	}

	return cmd
}

// ABOUTME: Version command to display build information
// ABOUTME: Shows version, commit hash, and build date
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	versionInfo = VersionInfo{
		Version: "dev",
		Commit:  "none",
		Date:    "unknown",
	}
)

// VersionInfo contains build information
type VersionInfo struct {
	Version string `json:"version" yaml:"version"`
	Commit  string `json:"commit" yaml:"commit"`
	Date    string `json:"date" yaml:"date"`
}

// SetVersion sets the version information (called from main)
func SetVersion(version, commit, date string) {
	versionInfo.Version = version
	versionInfo.Commit = commit
	versionInfo.Date = date
}

// NewVersionCmd creates the version command
func NewVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display version, commit hash, and build date for the triage CLI.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			// Only an explicit --format switches to structured output here
			if outputFormat == "json" || outputFormat == "yaml" {
				return writeStructured(w, outputFormat, versionInfo)
			}
			fmt.Fprintf(w, "Triage %s\n", versionInfo.Version)
			fmt.Fprintf(w, "Commit: %s\n", versionInfo.Commit)
			fmt.Fprintf(w, "Built:  %s\n", versionInfo.Date)
			return nil
		},
	}

	return cmd
}

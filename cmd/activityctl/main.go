// Command activityctl is the CLI surface over the session package:
// analyze a single activity file, re-export an activity file as
// GPX/TCX, or merge two activity files into one. Grounded on
// Sumatoshi-tech-codefang/cmd/codefang/main.go's cobra command-tree shape.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/trailmetrics/activity-analyzer/cmd/activityctl/commands"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "activityctl",
		Short: "Activity Analyzer - ingest, export, and merge recorded GPS/power activities",
		Long: `activityctl ingests a single recorded activity (GPX, TCX, or FIT),
produces a structured analytical report, and can re-export an
activity file or merge two of them.

Commands:
  analyze   Ingest one activity file and print its JSON report
  export    Ingest one activity file and re-export it as GPX/TCX
  merge     Fuse two activity files into one and export the result`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(commands.NewAnalyzeCommand())
	rootCmd.AddCommand(commands.NewExportCommand())
	rootCmd.AddCommand(commands.NewMergeCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

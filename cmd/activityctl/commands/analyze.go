package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/trailmetrics/activity-analyzer/session"
)

// NewAnalyzeCommand ingests a single activity file and prints its
// JSON report to stdout.
func NewAnalyzeCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "analyze <path-to-activity-file>",
		Short: "Ingest a GPX/TCX/FIT file and print its analysis report",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			loadConfig(configPath)

			path := args[0]

			format := formatFromExtension(path)
			if format == "" {
				return fmt.Errorf("unrecognized file extension for %q (expected .gpx, .tcx, or .fit)", path)
			}

			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %q: %w", path, err)
			}

			sess := session.New()

			var rpt any

			switch format {
			case "gpx":
				rpt, err = sess.IngestGPX(data, path)
			case "tcx":
				rpt, err = sess.IngestTCX(data, path)
			case "fit":
				rpt, err = sess.IngestFIT(data, path)
			}

			if err != nil {
				return fmt.Errorf("analyze %q: %w", path, err)
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")

			return enc.Encode(rpt)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "optional config file (FTP, weight, activity type); read but not applied to the analysis")

	return cmd
}

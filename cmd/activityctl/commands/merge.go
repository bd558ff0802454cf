package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/trailmetrics/activity-analyzer/session"
)

// NewMergeCommand ingests two activity files, fuses them with the
// timestamp-tolerant merge operator, and exports the result.
func NewMergeCommand() *cobra.Command {
	var (
		format  string
		outPath string
	)

	cmd := &cobra.Command{
		Use:   "merge <path-A> <path-B>",
		Short: "Merge two activity files into one and export the result",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			sess := session.New()

			for _, path := range args {
				format := formatFromExtension(path)
				if format == "" {
					return fmt.Errorf("unrecognized file extension for %q", path)
				}

				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("read %q: %w", path, err)
				}

				switch format {
				case "gpx":
					_, err = sess.IngestGPX(data, path)
				case "tcx":
					_, err = sess.IngestTCX(data, path)
				case "fit":
					_, err = sess.IngestFIT(data, path)
				}

				if err != nil {
					return fmt.Errorf("ingest %q: %w", path, err)
				}
			}

			contexts := sess.Contexts()
			if len(contexts) < 2 {
				return fmt.Errorf("expected two ingested activities, got %d", len(contexts))
			}

			out, warnings, err := sess.Merge(contexts[0].ID, contexts[1].ID, format)
			if err != nil {
				return fmt.Errorf("merge: %w", err)
			}

			for _, w := range warnings {
				fmt.Fprintf(os.Stderr, "warning: %s stream dropped %d/%d trailing samples on merge\n", w.Stream, w.DroppedSamplesA, w.DroppedSamplesB)
			}

			if outPath == "" {
				_, err = fmt.Println(out)
				return err
			}

			return os.WriteFile(outPath, []byte(out), 0o644)
		},
	}

	cmd.Flags().StringVar(&format, "format", "gpx", "output format: gpx or tcx")
	cmd.Flags().StringVar(&outPath, "out", "", "output file path (default: stdout)")

	return cmd
}

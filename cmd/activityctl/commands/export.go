package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/trailmetrics/activity-analyzer/session"
)

// NewExportCommand ingests one activity file and immediately
// re-exports it as GPX or TCX, optionally cropped to a split window.
// The CLI is a one-shot process, so "export a previously-ingested
// activity" collapses to ingest-then-export within a single
// invocation rather than the browser surface's multi-call session.
func NewExportCommand() *cobra.Command {
	var (
		format       string
		splitStartMs uint64
		splitEndMs   uint64
		outPath      string
	)

	cmd := &cobra.Command{
		Use:   "export <path-to-activity-file>",
		Short: "Ingest an activity file and re-export it as GPX or TCX",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			path := args[0]

			srcFormat := formatFromExtension(path)
			if srcFormat == "" {
				return fmt.Errorf("unrecognized file extension for %q", path)
			}

			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %q: %w", path, err)
			}

			sess := session.New()

			var ingestErr error

			switch srcFormat {
			case "gpx":
				_, ingestErr = sess.IngestGPX(data, path)
			case "tcx":
				_, ingestErr = sess.IngestTCX(data, path)
			case "fit":
				_, ingestErr = sess.IngestFIT(data, path)
			}

			if ingestErr != nil {
				return fmt.Errorf("ingest %q: %w", path, ingestErr)
			}

			contexts := sess.Contexts()
			if len(contexts) == 0 {
				return fmt.Errorf("no context produced for %q", path)
			}

			out, err := sess.Export(contexts[0].ID, format, splitStartMs, splitEndMs)
			if err != nil {
				return fmt.Errorf("export: %w", err)
			}

			if outPath == "" {
				_, err = fmt.Println(out)
				return err
			}

			return os.WriteFile(outPath, []byte(out), 0o644)
		},
	}

	cmd.Flags().StringVar(&format, "format", "gpx", "output format: gpx or tcx")
	cmd.Flags().Uint64Var(&splitStartMs, "split-start-ms", 0, "crop window start offset in ms")
	cmd.Flags().Uint64Var(&splitEndMs, "split-end-ms", 0, "crop window end offset in ms (0 = to end)")
	cmd.Flags().StringVar(&outPath, "out", "", "output file path (default: stdout)")

	return cmd
}

package commands

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/algotrace/internal/replay"
)

const replayArgCount = 1

// ErrDriftDetected is returned when a replayed recording diverges from its
// stored traces.
var ErrDriftDetected = errors.New("replay drifted from recorded traces")

// NewReplayCommand creates the replay subcommand.
func NewReplayCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "replay <recording" + replay.Extension + ">",
		Short: "Re-execute a recording and check it against the stored traces",
		Args:  cobra.ExactArgs(replayArgCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(cmd, args[0])
		},
	}
}

func runReplay(cmd *cobra.Command, path string) error {
	rec, err := replay.Load(path)
	if err != nil {
		return err
	}

	drifts, err := replay.Verify(rec)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if len(drifts) > 0 {
		heading := color.New(color.FgRed, color.Bold)
		heading.Fprintf(out, "%d of %d operations drifted\n\n", len(drifts), len(rec.Operations))

		for _, drift := range drifts {
			fmt.Fprintln(out, drift)
		}

		return fmt.Errorf("%w: %s", ErrDriftDetected, path)
	}

	clean := color.New(color.FgGreen)
	clean.Fprintf(out, "replay clean: %s operations, %s steps match\n",
		humanize.Comma(int64(len(rec.Operations))),
		humanize.Comma(int64(rec.Stats.TotalSteps)))

	return nil
}

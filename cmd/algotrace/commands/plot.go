package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/algotrace/internal/replay"
	"github.com/Sumatoshi-tech/algotrace/internal/report"
)

const (
	plotDirPerm     = 0o750
	plotArgCount    = 1
	plotCmdShort    = "Render a recording as an HTML chart page"
	plotOutputFlag  = "output"
	plotOutputShort = "o"
	plotOutputUsage = "output directory for the HTML file"
)

// ErrNoOutputDir is returned when the --output flag is not set.
var ErrNoOutputDir = errors.New("output directory is required (use --output)")

// NewPlotCommand creates the plot subcommand.
func NewPlotCommand() *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:   "plot <recording" + replay.Extension + ">",
		Short: plotCmdShort,
		Args:  cobra.ExactArgs(plotArgCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			if outputDir == "" {
				return ErrNoOutputDir
			}

			return runPlot(cmd, args[0], outputDir)
		},
	}

	cmd.Flags().StringVarP(&outputDir, plotOutputFlag, plotOutputShort, "", plotOutputUsage)

	return cmd
}

func runPlot(cmd *cobra.Command, recordingPath, outputDir string) error {
	rec, err := replay.Load(recordingPath)
	if err != nil {
		return err
	}

	mkErr := os.MkdirAll(outputDir, plotDirPerm)
	if mkErr != nil {
		return fmt.Errorf("create output dir: %w", mkErr)
	}

	outPath := filepath.Join(outputDir, plotFileName(recordingPath))

	file, createErr := os.Create(outPath)
	if createErr != nil {
		return fmt.Errorf("create plot file: %w", createErr)
	}

	writeErr := report.WritePlot(file, rec)
	closeErr := file.Close()

	if writeErr != nil {
		return writeErr
	}

	if closeErr != nil {
		return fmt.Errorf("close plot file: %w", closeErr)
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "plot written to %s\n", outPath)

	return nil
}

// plotFileName maps trace.atrace to trace.html.
func plotFileName(recordingPath string) string {
	base := filepath.Base(recordingPath)

	return strings.TrimSuffix(base, replay.Extension) + ".html"
}

// Package commands implements CLI command handlers for algotrace.
package commands

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"

	"github.com/Sumatoshi-tech/algotrace/internal/config"
	"github.com/Sumatoshi-tech/algotrace/internal/observability"
	"github.com/Sumatoshi-tech/algotrace/internal/replay"
	"github.com/Sumatoshi-tech/algotrace/internal/report"
	"github.com/Sumatoshi-tech/algotrace/internal/scenario"
	"github.com/Sumatoshi-tech/algotrace/internal/step"
)

// runMeterName is the instrumentation scope for run metrics.
const runMeterName = "algotrace"

// Sentinel errors for run argument validation.
var (
	// ErrNoOperations is returned when neither --ops nor --scenario is given.
	ErrNoOperations = errors.New(
		"no operations given. Use --ops, e.g.: --ops \"insert:50,insert:25,delete:50\"\n" +
			"or --scenario file.yaml",
	)
	// ErrOpsConflict indicates both --ops and --scenario were given.
	ErrOpsConflict = errors.New("--ops and --scenario are mutually exclusive")
)

// RunCommand holds configuration for the run command.
type RunCommand struct {
	configPath   string
	structure    string
	capacity     int
	ops          string
	scenarioPath string
	format       string
	colorMode    string
	recordPath   string
	diagAddr     string
}

// NewRunCommand creates the run command.
func NewRunCommand() *cobra.Command {
	rc := &RunCommand{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Execute operations against a structure and report the trace",
		Long: "Execute a scripted operation list against an instrumented data\n" +
			"structure and report every step it took.",
		RunE: rc.run,
	}

	cmd.Flags().StringVar(&rc.configPath, "config", "", "Config file path (default: .algotrace.yaml in CWD or $HOME)")
	cmd.Flags().StringVarP(&rc.structure, "structure", "s", "", "Structure to run against: array, bst, linkedlist, queue, rbtree, stack")
	cmd.Flags().IntVar(&rc.capacity, "capacity", 0, "Backing capacity for array, stack and queue")
	cmd.Flags().StringVar(&rc.ops, "ops", "", `Comma-separated operations (example: "insert:50,insert:25,delete:50")`)
	cmd.Flags().StringVar(&rc.scenarioPath, "scenario", "", "YAML scenario file with an operation list")
	cmd.Flags().StringVar(&rc.format, "format", "", "Output format: text, json, yaml")
	cmd.Flags().StringVar(&rc.colorMode, "color", "", "Color mode: auto, always, never")
	cmd.Flags().StringVar(&rc.recordPath, "record", "", "Write the recording to this path (e.g. out"+replay.Extension+")")
	cmd.Flags().StringVar(&rc.diagAddr, "diagnostics", "", "Serve /healthz, /readyz and /metrics on this address for the run")

	return cmd
}

func (rc *RunCommand) run(cmd *cobra.Command, _ []string) error {
	cfg, err := rc.loadConfig(cmd)
	if err != nil {
		return err
	}

	applyColorMode(cfg.Color)

	ops, err := rc.operations()
	if err != nil {
		return err
	}

	meter := otel.Meter(runMeterName)

	runMetrics, err := observability.NewTraceMetrics(meter)
	if err != nil {
		return err
	}

	if cfg.Diagnostics.Addr != "" {
		diag, diagErr := observability.NewDiagnosticsServer(cfg.Diagnostics.Addr, meter)
		if diagErr != nil {
			return diagErr
		}

		defer func() {
			closeErr := diag.Close()
			if closeErr != nil {
				slog.Warn("diagnostics close failed", "error", closeErr)
			}
		}()

		fmt.Fprintf(cmd.ErrOrStderr(), "diagnostics listening on %s\n", diag.Addr())
	}

	rec, err := replay.Record(cfg.Structure, cfg.Capacity, ops)
	if err != nil {
		return err
	}

	runMetrics.RecordRun(cmd.Context(), recordingStats(rec))

	if rc.recordPath != "" {
		saveErr := replay.Save(rc.recordPath, rec)
		if saveErr != nil {
			return saveErr
		}

		fmt.Fprintf(cmd.ErrOrStderr(), "recording written to %s\n", rc.recordPath)
	}

	return report.Write(cmd.OutOrStdout(), rec, cfg.Format)
}

// loadConfig loads the config and overlays any explicitly set flags.
func (rc *RunCommand) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig(rc.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()

	if flags.Changed("structure") {
		cfg.Structure = rc.structure
	}

	if flags.Changed("capacity") {
		cfg.Capacity = rc.capacity
	}

	if flags.Changed("format") {
		cfg.Format = rc.format
	}

	if flags.Changed("color") {
		cfg.Color = rc.colorMode
	}

	if flags.Changed("diagnostics") {
		cfg.Diagnostics.Addr = rc.diagAddr
	}

	validateErr := cfg.Validate()
	if validateErr != nil {
		return nil, validateErr
	}

	return cfg, nil
}

// operations resolves the operation list from --ops or --scenario.
func (rc *RunCommand) operations() ([]step.Operation, error) {
	switch {
	case rc.ops != "" && rc.scenarioPath != "":
		return nil, ErrOpsConflict
	case rc.ops != "":
		return scenario.ParseOps(rc.ops)
	case rc.scenarioPath != "":
		return scenario.Load(rc.scenarioPath)
	default:
		return nil, ErrNoOperations
	}
}

// applyColorMode sets the global color toggle for text output. Auto leaves
// the library's terminal detection in charge.
func applyColorMode(mode string) {
	switch mode {
	case config.ColorAlways:
		color.NoColor = false
	case config.ColorNever:
		color.NoColor = true
	}
}

// recordingStats projects a recording into the metrics layer's shape.
func recordingStats(rec *replay.Recording) observability.TraceStats {
	stats := observability.TraceStats{
		Structure:  rec.Structure,
		Operations: make([]observability.OperationStat, 0, len(rec.Operations)),
	}

	for idx, op := range rec.Operations {
		steps := 0
		if idx < len(rec.Traces) {
			steps = len(rec.Traces[idx])
		}

		stats.Operations = append(stats.Operations, observability.OperationStat{
			Kind:  op.Kind.String(),
			Steps: steps,
		})
	}

	if n := len(rec.Stats.SizeAfter); n > 0 {
		stats.FinalSize = rec.Stats.SizeAfter[n-1]
	}

	return stats
}

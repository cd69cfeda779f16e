package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/algotrace/internal/config"
	"github.com/Sumatoshi-tech/algotrace/internal/mcp"
	"github.com/Sumatoshi-tech/algotrace/internal/observability"
	"github.com/Sumatoshi-tech/algotrace/pkg/version"
)

// NewMCPCommand creates the MCP server command.
func NewMCPCommand() *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for AI agent integration",
		Long: `Start a Model Context Protocol (MCP) server on stdio transport.

The MCP server exposes algotrace tracing capabilities as tools that AI agents
can discover and invoke:
  - algotrace_execute: Run operations against a structure and return the full step trace
  - algotrace_render: Run operations and return only the final projection
  - algotrace_structures: List available structures and their operations`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cobraCmd *cobra.Command, _ []string) error {
			providers, err := initMCPObservability(debug)
			if err != nil {
				return err
			}

			defer func() {
				shutdownErr := providers.Shutdown(context.Background())
				if shutdownErr != nil {
					providers.Logger.Warn("observability shutdown failed", "error", shutdownErr)
				}
			}()

			red, redErr := observability.NewREDMetrics(providers.Meter)
			if redErr != nil {
				return redErr
			}

			runMetrics, runErr := observability.NewTraceMetrics(providers.Meter)
			if runErr != nil {
				return runErr
			}

			deps := mcp.ServerDeps{
				Logger:     providers.Logger,
				Metrics:    red,
				Tracer:     providers.Tracer,
				RunMetrics: runMetrics,
			}

			srv := mcp.NewServer(deps)

			return srv.Run(cobraCmd.Context())
		},
	}

	cmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging to stderr")

	return cmd
}

func initMCPObservability(debug bool) (observability.Providers, error) {
	cfg := observability.DefaultConfig()
	cfg.ServiceVersion = version.Version
	cfg.OTLPEndpoint = os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	cfg.OTLPHeaders = observability.ParseOTLPHeaders(os.Getenv("OTEL_EXPORTER_OTLP_HEADERS"))
	cfg.OTLPInsecure = os.Getenv("OTEL_EXPORTER_OTLP_INSECURE") == "true"
	cfg.Mode = observability.ModeMCP
	cfg.LogJSON = logJSONSetting()

	if debug {
		cfg.LogLevel = slog.LevelDebug
		cfg.DebugTrace = true
	}

	return observability.Init(cfg)
}

// logJSONSetting reads mcp.log_json from the algotrace config, defaulting on.
func logJSONSetting() bool {
	cfg, err := config.LoadConfig("")
	if err != nil {
		return config.DefaultMCPLogJSON
	}

	return cfg.MCP.LogJSON
}

// Package main provides the entry point for the algotrace CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/algotrace/cmd/algotrace/commands"
	"github.com/Sumatoshi-tech/algotrace/pkg/version"
)

func main() {
	version.InitBinaryVersion()

	rootCmd := &cobra.Command{
		Use:   "algotrace",
		Short: "Algotrace - instrumented data structures with step tracing",
		Long: `Algotrace executes operation scripts against instrumented data
structures and records every step they take.

Commands:
  run       Execute operations against a structure and report the trace
  replay    Re-execute a recording and check it against the stored traces
  plot      Render a recording as an HTML chart page
  mcp       Start the MCP server for AI agent integration`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add commands.
	rootCmd.AddCommand(commands.NewRunCommand())
	rootCmd.AddCommand(commands.NewReplayCommand())
	rootCmd.AddCommand(commands.NewPlotCommand())
	rootCmd.AddCommand(commands.NewMCPCommand())
	rootCmd.AddCommand(versionCmd())

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(os.Stdout, "algotrace %s (commit: %s, built: %s)\n", version.Version, version.Commit, version.Date)
		},
	}
}

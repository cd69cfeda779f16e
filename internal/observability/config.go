// Package observability wires OpenTelemetry tracing and metrics, trace-aware
// structured logging, and the optional diagnostics HTTP server behind a single
// Init call. With no collector configured every provider degrades to a no-op,
// so instrumented code paths cost nothing in plain CLI runs.
package observability

import "log/slog"

// RunMode names how the binary was launched. It is stamped on the OTel
// resource and on every log record so traces from CLI runs and MCP sessions
// can be told apart downstream.
type RunMode string

const (
	// ModeCLI marks a one-shot command invocation.
	ModeCLI RunMode = "cli"
	// ModeMCP marks a long-lived MCP stdio session.
	ModeMCP RunMode = "mcp"
)

const (
	defaultServiceName        = "algotrace"
	defaultShutdownTimeoutSec = 5
)

// Config carries everything Init needs. The zero value is almost usable;
// DefaultConfig fills in the service name, mode, log level and shutdown
// timeout.
type Config struct {
	// ServiceName becomes the OTel service.name resource attribute.
	ServiceName string

	// ServiceVersion is the version of the running binary, if known.
	ServiceVersion string

	// Environment tags telemetry with a deployment environment such as
	// "dev" or "production". Empty omits the attribute.
	Environment string

	// Mode records how the binary was launched.
	Mode RunMode

	// OTLPEndpoint is the gRPC collector address, e.g. "localhost:4317".
	// Leaving it empty turns tracing and metrics into no-ops.
	OTLPEndpoint string

	// OTLPHeaders adds gRPC metadata to every export call, typically
	// collector auth tokens.
	OTLPHeaders map[string]string

	// OTLPInsecure dials the collector without TLS.
	OTLPInsecure bool

	// DebugTrace samples every span and logs attributes the span filter
	// strips. Meant for development against a local collector.
	DebugTrace bool

	// SampleRatio sets the parent-based root sampling ratio in (0, 1].
	// Zero keeps the always-on root sampler.
	SampleRatio float64

	// LogLevel is the minimum slog severity that reaches stderr.
	LogLevel slog.Level

	// LogJSON switches log output from logfmt-style text to JSON.
	LogJSON bool

	// TraceVerbose keeps hot-path spans (diagnostics scrapes, per-frame
	// renders) that are suppressed by default.
	TraceVerbose bool

	// ShutdownTimeoutSec bounds the final telemetry flush.
	ShutdownTimeoutSec int
}

// DefaultConfig returns the configuration used when nothing is specified:
// no export, info-level text logs, CLI mode.
func DefaultConfig() Config {
	return Config{
		ServiceName:        defaultServiceName,
		Mode:               ModeCLI,
		LogLevel:           slog.LevelInfo,
		ShutdownTimeoutSec: defaultShutdownTimeoutSec,
	}
}

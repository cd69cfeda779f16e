package observability

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/embedded"
	nooptrace "go.opentelemetry.io/otel/trace/noop"
)

// Hot-path telemetry muted by default. Scrape and probe requests arrive every
// few seconds and per-frame renders can number in the thousands per run;
// recording them all would drown the run-level spans that matter.
var (
	mutedTracers = map[string]bool{
		diagnosticsTracerName: true,
	}

	mutedSpans = map[string]bool{
		"mcp.algotrace_render": true,
	}
)

// mutingTracerProvider wraps a real TracerProvider and swaps muted tracers
// and muted span names for no-ops.
type mutingTracerProvider struct {
	embedded.TracerProvider

	delegate trace.TracerProvider
	noop     trace.TracerProvider
}

// NewMutingTracerProvider returns a provider that drops hot-path spans while
// passing everything else to delegate. TraceVerbose bypasses it entirely.
func NewMutingTracerProvider(delegate trace.TracerProvider) trace.TracerProvider {
	return &mutingTracerProvider{
		delegate: delegate,
		noop:     nooptrace.NewTracerProvider(),
	}
}

func (p *mutingTracerProvider) Tracer(name string, opts ...trace.TracerOption) trace.Tracer {
	if mutedTracers[name] {
		return p.noop.Tracer(name, opts...)
	}

	return &mutingTracer{
		delegate: p.delegate.Tracer(name, opts...),
		noop:     p.noop.Tracer(name, opts...),
	}
}

// mutingTracer drops spans whose names are muted and starts the rest on the
// delegate.
type mutingTracer struct {
	embedded.Tracer

	delegate trace.Tracer
	noop     trace.Tracer
}

func (t *mutingTracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	if mutedSpans[name] {
		return t.noop.Start(ctx, name, opts...)
	}

	return t.delegate.Start(ctx, name, opts...)
}

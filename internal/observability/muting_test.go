package observability_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/Sumatoshi-tech/algotrace/internal/observability"
)

func TestMutingDropsHotPathSpans(t *testing.T) {
	t.Parallel()

	exporter := tracetest.NewInMemoryExporter()
	delegate := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	t.Cleanup(func() { require.NoError(t, delegate.Shutdown(context.Background())) })

	provider := observability.NewMutingTracerProvider(delegate)

	startSpan := func(tracerName, spanName string) {
		_, span := provider.Tracer(tracerName).Start(context.Background(), spanName)
		span.End()
	}

	startSpan("algotrace", "run.scenario")
	startSpan("algotrace", "mcp.algotrace_render")
	startSpan("algotrace.diagnostics", "GET /metrics")

	names := []string{}
	for _, stub := range exporter.GetSpans() {
		names = append(names, stub.Name)
	}

	assert.Equal(t, []string{"run.scenario"}, names,
		"diagnostics tracers and render spans stay out of the export stream")
}

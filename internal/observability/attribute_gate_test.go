package observability_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	"github.com/Sumatoshi-tech/algotrace/internal/observability"
)

// gatedSpanAttributes runs one span with attrs through the gate and returns
// the attribute keys that reached the exporter.
func gatedSpanAttributes(t *testing.T, logger *slog.Logger, attrs ...attribute.KeyValue) map[string]string {
	t.Helper()

	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(observability.NewAttributeGate(
			sdktrace.NewSimpleSpanProcessor(exporter), logger,
		)),
	)

	_, span := tp.Tracer("gate-test").Start(context.Background(), "op", trace.WithAttributes(attrs...))
	span.End()

	require.NoError(t, tp.Shutdown(context.Background()))

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)

	exported := map[string]string{}
	for _, kv := range spans[0].Attributes {
		exported[string(kv.Key)] = kv.Value.Emit()
	}

	return exported
}

func TestGateAdmitsDomainAttributes(t *testing.T) {
	t.Parallel()

	exported := gatedSpanAttributes(t, nil,
		attribute.String("structure", "rbtree"),
		attribute.Int("steps", 42),
		attribute.String("algotrace.scenario", "rotations"),
		attribute.String("mcp.tool", "algotrace_execute"),
		attribute.String("recording.path", "run.atrace"),
	)

	assert.Equal(t, "rbtree", exported["structure"])
	assert.Equal(t, "42", exported["steps"])
	assert.Equal(t, "rotations", exported["algotrace.scenario"])
	assert.Equal(t, "algotrace_execute", exported["mcp.tool"])
	assert.Equal(t, "run.atrace", exported["recording.path"])
}

func TestGateStripsDeniedAndUnknown(t *testing.T) {
	t.Parallel()

	exported := gatedSpanAttributes(t, nil,
		attribute.String("structure", "stack"),
		attribute.String("email", "dev@example.com"),
		attribute.String("user.id", "u-1"),
		attribute.String("request.body", "{}"),
		attribute.String("random.thing", "x"),
	)

	assert.Equal(t, map[string]string{"structure": "stack"}, exported)
}

func TestGateReportsStrippedKeys(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := slog.New(slog.NewTextHandler(&buf, nil))

	gatedSpanAttributes(t, logger,
		attribute.String("user.name", "someone"),
	)

	assert.Contains(t, buf.String(), "span attribute stripped")
	assert.Contains(t, buf.String(), "user.name")
}

package observability_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/Sumatoshi-tech/algotrace/internal/observability"
)

func TestRuntimeMetrics_ObservesGoroutines(t *testing.T) {
	t.Parallel()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	_, err := observability.NewRuntimeMetrics(mp.Meter("test"))
	require.NoError(t, err)

	rm := collectMetrics(t, reader)

	goroutines := findMetric(rm, "algotrace.runtime.goroutines")
	require.NotNil(t, goroutines, "algotrace.runtime.goroutines metric not found")

	gauge, ok := goroutines.Data.(metricdata.Gauge[int64])
	require.True(t, ok, "expected Gauge data type")
	require.NotEmpty(t, gauge.DataPoints)

	// The test process always has at least one live goroutine.
	assert.Positive(t, gauge.DataPoints[0].Value)
}

func TestRuntimeMetrics_ObservesHeapBytes(t *testing.T) {
	t.Parallel()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	_, err := observability.NewRuntimeMetrics(mp.Meter("test"))
	require.NoError(t, err)

	rm := collectMetrics(t, reader)

	heap := findMetric(rm, "algotrace.runtime.heap.bytes")
	require.NotNil(t, heap, "algotrace.runtime.heap.bytes metric not found")

	gauge, ok := heap.Data.(metricdata.Gauge[int64])
	require.True(t, ok, "expected Gauge data type")
	require.NotEmpty(t, gauge.DataPoints)
	assert.Positive(t, gauge.DataPoints[0].Value)
}

func TestRuntimeMetrics_ObservesGCCycles(t *testing.T) {
	t.Parallel()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	_, err := observability.NewRuntimeMetrics(mp.Meter("test"))
	require.NoError(t, err)

	rm := collectMetrics(t, reader)

	// GC may not have run yet; only presence is guaranteed.
	cycles := findMetric(rm, "algotrace.runtime.gc.cycles")
	require.NotNil(t, cycles, "algotrace.runtime.gc.cycles metric not found")
}

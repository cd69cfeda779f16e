package observability_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	noopmetric "go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/Sumatoshi-tech/algotrace/internal/observability"
)

func newREDMetrics(t *testing.T) (*observability.REDMetrics, *sdkmetric.ManualReader) {
	t.Helper()

	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	red, err := observability.NewREDMetrics(provider.Meter("test"))
	require.NoError(t, err)

	return red, reader
}

func collectMetrics(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()

	var rm metricdata.ResourceMetrics

	require.NoError(t, reader.Collect(context.Background(), &rm))

	return rm
}

func findMetric(rm metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for idx := range rm.ScopeMetrics {
		for midx := range rm.ScopeMetrics[idx].Metrics {
			if rm.ScopeMetrics[idx].Metrics[midx].Name == name {
				return &rm.ScopeMetrics[idx].Metrics[midx]
			}
		}
	}

	return nil
}

func counterValue(t *testing.T, rm metricdata.ResourceMetrics, name string) int64 {
	t.Helper()

	found := findMetric(rm, name)
	if found == nil {
		return 0
	}

	sum, ok := found.Data.(metricdata.Sum[int64])
	require.True(t, ok, "%s is not an int64 sum", name)

	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}

	return total
}

func TestRecordRequestCountsAndTimes(t *testing.T) {
	t.Parallel()

	red, reader := newREDMetrics(t)
	ctx := context.Background()

	red.RecordRequest(ctx, "algotrace_execute", "ok", 100*time.Millisecond)
	red.RecordRequest(ctx, "algotrace_execute", "ok", 200*time.Millisecond)

	rm := collectMetrics(t, reader)
	assert.Equal(t, int64(2), counterValue(t, rm, "algotrace.requests.total"))
	assert.Equal(t, int64(0), counterValue(t, rm, "algotrace.errors.total"))

	duration := findMetric(rm, "algotrace.request.duration.seconds")
	require.NotNil(t, duration)

	hist, ok := duration.Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	require.NotEmpty(t, hist.DataPoints)
	assert.Equal(t, uint64(2), hist.DataPoints[0].Count)
}

func TestRecordRequestFailure(t *testing.T) {
	t.Parallel()

	red, reader := newREDMetrics(t)

	red.RecordRequest(context.Background(), "replay.verify", "error", time.Second)

	rm := collectMetrics(t, reader)
	assert.Equal(t, int64(1), counterValue(t, rm, "algotrace.requests.total"))
	assert.Equal(t, int64(1), counterValue(t, rm, "algotrace.errors.total"))
}

func TestTrackInflightBalances(t *testing.T) {
	t.Parallel()

	red, reader := newREDMetrics(t)
	done := red.TrackInflight(context.Background(), "algotrace_render")

	rm := collectMetrics(t, reader)
	assert.Equal(t, int64(1), counterValue(t, rm, "algotrace.inflight.requests"))

	done()

	rm = collectMetrics(t, reader)
	assert.Equal(t, int64(0), counterValue(t, rm, "algotrace.inflight.requests"))
}

func TestDurationBucketsCoverTraceRuns(t *testing.T) {
	t.Parallel()

	red, reader := newREDMetrics(t)
	red.RecordRequest(context.Background(), "cli.run", "ok", 50*time.Millisecond)

	rm := collectMetrics(t, reader)
	duration := findMetric(rm, "algotrace.request.duration.seconds")
	require.NotNil(t, duration)

	hist, ok := duration.Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	require.NotEmpty(t, hist.DataPoints)

	bounds := hist.DataPoints[0].Bounds
	require.NotEmpty(t, bounds)
	assert.InDelta(t, 0.001, bounds[0], 1e-9, "buckets start at 1ms")
	assert.InDelta(t, 10, bounds[len(bounds)-1], 1e-9, "buckets end at 10s")
}

func TestREDMetricsOnNoopMeter(t *testing.T) {
	t.Parallel()

	red, err := observability.NewREDMetrics(noopmetric.NewMeterProvider().Meter("test"))
	require.NoError(t, err)

	red.RecordRequest(context.Background(), "test", "ok", time.Millisecond)
	red.TrackInflight(context.Background(), "test")()
}

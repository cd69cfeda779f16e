package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	metricRequestsTotal    = "algotrace.requests.total"
	metricRequestDuration  = "algotrace.request.duration.seconds"
	metricErrorsTotal      = "algotrace.errors.total"
	metricInflightRequests = "algotrace.inflight.requests"

	attrOp     = "op"
	attrStatus = "status"

	statusError = "error"
)

// durationBuckets spans 1ms to 10s: a single render sits near the bottom,
// thousand-operation scenario runs near the top.
var durationBuckets = []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}

// REDMetrics carries the rate, error and duration instruments for request
// handling. The MCP server records one request per tool call.
type REDMetrics struct {
	requests metric.Int64Counter
	duration metric.Float64Histogram
	failures metric.Int64Counter
	inflight metric.Int64UpDownCounter
}

// NewREDMetrics creates the RED instruments on mt.
func NewREDMetrics(mt metric.Meter) (*REDMetrics, error) {
	set := newInstrumentSet(mt)
	rm := &REDMetrics{
		requests: set.counter(metricRequestsTotal, "Total number of requests", "{request}"),
		duration: set.histogram(metricRequestDuration, "Request duration in seconds", "s", durationBuckets...),
		failures: set.counter(metricErrorsTotal, "Total number of failed requests", "{error}"),
		inflight: set.upDownCounter(metricInflightRequests, "Number of in-flight requests", "{request}"),
	}

	if err := set.Err(); err != nil {
		return nil, err
	}

	return rm, nil
}

// RecordRequest counts one completed request and its duration. A status of
// "error" additionally increments the failure counter.
func (rm *REDMetrics) RecordRequest(ctx context.Context, op, status string, elapsed time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String(attrOp, op),
		attribute.String(attrStatus, status),
	)

	rm.requests.Add(ctx, 1, attrs)
	rm.duration.Record(ctx, elapsed.Seconds(), attrs)

	if status == statusError {
		rm.failures.Add(ctx, 1, metric.WithAttributes(attribute.String(attrOp, op)))
	}
}

// TrackInflight bumps the in-flight gauge for op and returns the matching
// decrement, meant to be deferred at the start of request handling.
func (rm *REDMetrics) TrackInflight(ctx context.Context, op string) func() {
	attrs := metric.WithAttributes(attribute.String(attrOp, op))
	rm.inflight.Add(ctx, 1, attrs)

	return func() {
		rm.inflight.Add(ctx, -1, attrs)
	}
}

package observability

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	metricOperationsTotal = "algotrace.operations.total"
	metricOperationSteps  = "algotrace.operation.steps"
	metricStructureSize   = "algotrace.structure.size"

	attrStructure = "structure"
)

// stepBucketBoundaries covers single-step no-ops to full traversals of
// structures near the capacity ceiling.
var stepBucketBoundaries = []float64{1, 2, 5, 10, 25, 50, 100, 250, 500, 1000}

// OperationStat describes one executed operation for metric recording.
type OperationStat struct {
	Kind  string
	Steps int
}

// TraceStats holds the statistics for a single recorded run,
// decoupled from the replay document types.
type TraceStats struct {
	Structure  string
	Operations []OperationStat
	FinalSize  int
}

// TraceMetrics holds OTel instruments for trace-specific metrics: operation
// counts by structure and kind, step volume per operation, and the element
// count each structure held after its most recent run.
type TraceMetrics struct {
	operationsTotal metric.Int64Counter
	operationSteps  metric.Float64Histogram
	structureSize   metric.Int64ObservableGauge

	mu    sync.Mutex
	sizes map[string]int64
}

// NewTraceMetrics creates trace metric instruments from the given meter.
func NewTraceMetrics(mt metric.Meter) (*TraceMetrics, error) {
	set := newInstrumentSet(mt)

	tm := &TraceMetrics{
		operationsTotal: set.counter(metricOperationsTotal, "Total operations executed by structure and kind", "{operation}"),
		operationSteps:  set.histogram(metricOperationSteps, "Steps emitted per operation", "{step}", stepBucketBoundaries...),
		structureSize:   set.gauge(metricStructureSize, "Element count after the most recent run by structure", "{element}"),
		sizes:           make(map[string]int64),
	}

	if err := set.Err(); err != nil {
		return nil, err
	}

	_, err := mt.RegisterCallback(tm.observeSizes, tm.structureSize)
	if err != nil {
		return nil, fmt.Errorf("register structure size callback: %w", err)
	}

	return tm, nil
}

// RecordRun records per-operation counts and step volumes for a completed run.
// Safe to call on a nil receiver (no-op).
func (tm *TraceMetrics) RecordRun(ctx context.Context, stats TraceStats) {
	if tm == nil {
		return
	}

	for _, op := range stats.Operations {
		attrs := metric.WithAttributes(
			attribute.String(attrStructure, stats.Structure),
			attribute.String(attrOp, op.Kind),
		)

		tm.operationsTotal.Add(ctx, 1, attrs)
		tm.operationSteps.Record(ctx, float64(op.Steps), attrs)
	}

	tm.mu.Lock()
	tm.sizes[stats.Structure] = int64(stats.FinalSize)
	tm.mu.Unlock()
}

// observeSizes reports the last known element count per structure.
func (tm *TraceMetrics) observeSizes(_ context.Context, obs metric.Observer) error {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	for name, size := range tm.sizes {
		obs.ObserveInt64(tm.structureSize, size, metric.WithAttributes(attribute.String(attrStructure, name)))
	}

	return nil
}

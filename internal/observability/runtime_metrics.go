package observability

import (
	"context"
	"fmt"
	"math"
	runtimemetrics "runtime/metrics"

	"go.opentelemetry.io/otel/metric"
)

const (
	metricGoroutines = "algotrace.runtime.goroutines"
	metricHeapBytes  = "algotrace.runtime.heap.bytes"
	metricGCCycles   = "algotrace.runtime.gc.cycles"

	// runtime/metrics sample names.
	sampleGoroutines = "/sched/goroutines:goroutines"
	sampleHeapBytes  = "/memory/classes/heap/objects:bytes"
	sampleGCCycles   = "/gc/cycles/total:gc-cycles"
)

// RuntimeMetrics exposes Go runtime health as OTel instruments. Goroutine
// counts, live heap bytes, and GC cycles are read from runtime/metrics on
// each collection cycle.
type RuntimeMetrics struct {
	goroutines metric.Int64ObservableGauge
	heapBytes  metric.Int64ObservableGauge
	gcCycles   metric.Int64ObservableCounter
}

// NewRuntimeMetrics creates OTel instruments backed by runtime/metrics.
// The meter's periodic reader invokes the callback automatically; no manual polling is needed.
func NewRuntimeMetrics(mt metric.Meter) (*RuntimeMetrics, error) {
	set := newInstrumentSet(mt)

	rm := &RuntimeMetrics{
		goroutines: set.gauge(metricGoroutines, "Current number of live goroutines", "{goroutine}"),
		heapBytes:  set.gauge(metricHeapBytes, "Bytes of memory occupied by live heap objects", "By"),
		gcCycles:   set.observableCounter(metricGCCycles, "Completed GC cycles since process start", "{cycle}"),
	}

	if err := set.Err(); err != nil {
		return nil, err
	}

	_, err := mt.RegisterCallback(rm.observe, rm.goroutines, rm.heapBytes, rm.gcCycles)
	if err != nil {
		return nil, fmt.Errorf("register runtime metrics callback: %w", err)
	}

	return rm, nil
}

// observe reads runtime/metrics samples and reports them to the OTel observer.
func (rm *RuntimeMetrics) observe(_ context.Context, obs metric.Observer) error {
	samples := []runtimemetrics.Sample{
		{Name: sampleGoroutines},
		{Name: sampleHeapBytes},
		{Name: sampleGCCycles},
	}

	runtimemetrics.Read(samples)

	for idx := range samples {
		val, ok := sampleInt64Value(samples[idx].Value)
		if !ok {
			continue
		}

		switch samples[idx].Name {
		case sampleGoroutines:
			obs.ObserveInt64(rm.goroutines, val)
		case sampleHeapBytes:
			obs.ObserveInt64(rm.heapBytes, val)
		case sampleGCCycles:
			obs.ObserveInt64(rm.gcCycles, val)
		}
	}

	return nil
}

// sampleInt64Value extracts an int64 from a runtime/metrics value,
// handling both Uint64 and Float64 kinds.
func sampleInt64Value(val runtimemetrics.Value) (int64, bool) {
	switch val.Kind() {
	case runtimemetrics.KindUint64:
		u := val.Uint64()
		if u > uint64(math.MaxInt64) {
			return math.MaxInt64, true
		}

		return int64(u), true
	case runtimemetrics.KindFloat64:
		return int64(val.Float64()), true
	case runtimemetrics.KindBad, runtimemetrics.KindFloat64Histogram:
		return 0, false
	default:
		return 0, false
	}
}

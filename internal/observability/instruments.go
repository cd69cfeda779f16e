package observability

import (
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/metric"
)

// instrumentSet creates a family of related instruments on one meter,
// collecting creation errors so callers check once instead of after every
// instrument.
type instrumentSet struct {
	meter metric.Meter
	errs  []error
}

func newInstrumentSet(meter metric.Meter) *instrumentSet {
	return &instrumentSet{meter: meter}
}

// Err joins every creation error seen so far, nil when all succeeded.
func (s *instrumentSet) Err() error {
	return errors.Join(s.errs...)
}

func (s *instrumentSet) counter(name, desc, unit string) metric.Int64Counter {
	c, err := s.meter.Int64Counter(name, metric.WithDescription(desc), metric.WithUnit(unit))
	s.collect(name, err)

	return c
}

func (s *instrumentSet) histogram(name, desc, unit string, bounds ...float64) metric.Float64Histogram {
	opts := []metric.Float64HistogramOption{
		metric.WithDescription(desc),
		metric.WithUnit(unit),
	}

	if len(bounds) > 0 {
		opts = append(opts, metric.WithExplicitBucketBoundaries(bounds...))
	}

	h, err := s.meter.Float64Histogram(name, opts...)
	s.collect(name, err)

	return h
}

func (s *instrumentSet) upDownCounter(name, desc, unit string) metric.Int64UpDownCounter {
	c, err := s.meter.Int64UpDownCounter(name, metric.WithDescription(desc), metric.WithUnit(unit))
	s.collect(name, err)

	return c
}

func (s *instrumentSet) gauge(name, desc, unit string) metric.Int64ObservableGauge {
	g, err := s.meter.Int64ObservableGauge(name, metric.WithDescription(desc), metric.WithUnit(unit))
	s.collect(name, err)

	return g
}

func (s *instrumentSet) observableCounter(name, desc, unit string) metric.Int64ObservableCounter {
	c, err := s.meter.Int64ObservableCounter(name, metric.WithDescription(desc), metric.WithUnit(unit))
	s.collect(name, err)

	return c
}

func (s *instrumentSet) collect(name string, err error) {
	if err != nil {
		s.errs = append(s.errs, fmt.Errorf("create %s: %w", name, err))
	}
}

package observability

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

// Diagnostics routes.
const (
	routeHealth  = "/healthz"
	routeReady   = "/readyz"
	routeMetrics = "/metrics"
)

// diagnosticsTracerName names the tracer for probe and scrape spans. The
// filtering tracer provider mutes it unless TraceVerbose is set.
const diagnosticsTracerName = "algotrace.diagnostics"

const httpServerErrorFloor = 500

// DiagnosticsServer is the operational HTTP surface: liveness and readiness
// probes plus a Prometheus scrape endpoint. The scrape endpoint serves Go
// runtime instruments from its own registry, so it works whether or not an
// OTLP collector is configured; application metrics flow through the OTLP
// pipeline.
type DiagnosticsServer struct {
	server        *http.Server
	listener      net.Listener
	scrapeMetrics *sdkmetric.MeterProvider
}

// NewDiagnosticsServer listens on addr and starts serving probes and the
// scrape endpoint. When meter is non-nil the runtime instruments are also
// registered on it for OTLP export.
func NewDiagnosticsServer(addr string, meter metric.Meter) (*DiagnosticsServer, error) {
	scrapeHandler, scrapeProvider, err := newScrapeEndpoint()
	if err != nil {
		return nil, err
	}

	if meter != nil {
		if _, err = NewRuntimeMetrics(meter); err != nil {
			return nil, fmt.Errorf("register runtime metrics: %w", err)
		}
	}

	mux := http.NewServeMux()
	mux.Handle(routeHealth, probeHandler())
	mux.Handle(routeReady, probeHandler())
	mux.Handle(routeMetrics, scrapeHandler)

	var lc net.ListenConfig

	listener, err := lc.Listen(context.Background(), "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}

	srv := &http.Server{Handler: instrument(otel.Tracer(diagnosticsTracerName), mux)}

	go func() {
		serveErr := srv.Serve(listener)
		if serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			slog.Warn("diagnostics server stopped", "error", serveErr)
		}
	}()

	return &DiagnosticsServer{server: srv, listener: listener, scrapeMetrics: scrapeProvider}, nil
}

// Addr returns the bound listen address, useful when addr requested port 0.
func (d *DiagnosticsServer) Addr() string {
	return d.listener.Addr().String()
}

// Close drains in-flight requests and stops the scrape provider.
func (d *DiagnosticsServer) Close() error {
	ctx := context.Background()

	if err := d.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown diagnostics server: %w", err)
	}

	if err := d.scrapeMetrics.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown scrape metrics: %w", err)
	}

	return nil
}

// newScrapeEndpoint builds the /metrics handler: a dedicated Prometheus
// registry bridged to an OTel provider carrying the runtime instruments.
func newScrapeEndpoint() (http.Handler, *sdkmetric.MeterProvider, error) {
	registry := prometheus.NewRegistry()

	exporter, err := promexporter.New(promexporter.WithRegisterer(registry))
	if err != nil {
		return nil, nil, fmt.Errorf("create prometheus exporter: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))

	if _, err = NewRuntimeMetrics(provider.Meter(diagnosticsTracerName)); err != nil {
		return nil, nil, fmt.Errorf("register scrape runtime metrics: %w", err)
	}

	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{}), provider, nil
}

// probeHandler answers liveness and readiness probes. The process has no
// external dependencies to wait for, so ready mirrors alive.
func probeHandler() http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, _ *http.Request) {
		rw.Header().Set("Content-Type", "application/json")
		rw.WriteHeader(http.StatusOK)
		_, _ = rw.Write([]byte(`{"status":"ok"}`))
	})
}

// statusRecorder captures the first status code written to a response.
type statusRecorder struct {
	http.ResponseWriter

	code int
}

func (sr *statusRecorder) WriteHeader(code int) {
	if sr.code == 0 {
		sr.code = code
	}

	sr.ResponseWriter.WriteHeader(code)
}

// instrument wraps next with a span per request named "METHOD /path",
// honoring incoming W3C trace context.
func instrument(tracer trace.Tracer, next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, hr *http.Request) {
		parentCtx := otel.GetTextMapPropagator().Extract(hr.Context(), propagation.HeaderCarrier(hr.Header))

		ctx, span := tracer.Start(parentCtx, hr.Method+" "+hr.URL.Path,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				semconv.HTTPRequestMethodKey.String(hr.Method),
				attribute.String("http.target", hr.URL.Path),
			),
		)
		defer span.End()

		recorder := &statusRecorder{ResponseWriter: rw}
		next.ServeHTTP(recorder, hr.WithContext(ctx))

		// A handler that never calls WriteHeader implies 200.
		status := recorder.code
		if status == 0 {
			status = http.StatusOK
		}

		span.SetAttributes(semconv.HTTPResponseStatusCode(status))

		if status >= httpServerErrorFloor {
			span.SetStatus(codes.Error, http.StatusText(status))
		}
	})
}

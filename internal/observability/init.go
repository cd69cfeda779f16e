package observability

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/metric"
	noopmetric "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"
)

const (
	tracerName = "algotrace"
	meterName  = "algotrace"

	envTracesSampler    = "OTEL_TRACES_SAMPLER"
	envTracesSamplerArg = "OTEL_TRACES_SAMPLER_ARG"
)

// Providers is what Init hands back: the named tracer and meter, the
// configured logger, and a Shutdown that flushes pending telemetry. Shutdown
// must run before process exit or the last spans of a short CLI run are lost.
type Providers struct {
	Tracer   trace.Tracer
	Meter    metric.Meter
	Logger   *slog.Logger
	Shutdown func(ctx context.Context) error
}

// Init builds the tracing, metrics and logging stack from cfg and installs
// the tracer and meter providers globally. An empty OTLPEndpoint yields
// no-op tracing and metrics while the logger stays fully functional.
func Init(cfg Config) (Providers, error) {
	ctx := context.Background()

	res, err := newResource(cfg)
	if err != nil {
		return Providers{}, err
	}

	tp, closeTraces, err := newTracerProvider(ctx, cfg, res)
	if err != nil {
		return Providers{}, fmt.Errorf("build tracer provider: %w", err)
	}

	mp, closeMetrics, err := newMeterProvider(ctx, cfg, res)
	if err != nil {
		return Providers{}, errors.Join(fmt.Errorf("build meter provider: %w", err), closeTraces(ctx))
	}

	if cfg.OTLPEndpoint != "" && !cfg.TraceVerbose {
		tp = NewMutingTracerProvider(tp)
	}

	otel.SetTracerProvider(tp)
	otel.SetMeterProvider(mp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	shutdown := func(shutdownCtx context.Context) error {
		grace := time.Duration(cfg.ShutdownTimeoutSec) * time.Second
		if grace <= 0 {
			grace = defaultShutdownTimeoutSec * time.Second
		}

		deadlineCtx, cancel := context.WithTimeout(shutdownCtx, grace)
		defer cancel()

		return errors.Join(closeTraces(deadlineCtx), closeMetrics(deadlineCtx))
	}

	return Providers{
		Tracer:   tp.Tracer(tracerName),
		Meter:    mp.Meter(meterName),
		Logger:   newLogger(cfg),
		Shutdown: shutdown,
	}, nil
}

// newResource merges the service identity attributes over the SDK defaults.
func newResource(cfg Config) (*resource.Resource, error) {
	attrs := []attribute.KeyValue{
		semconv.ServiceName(cfg.ServiceName),
		attribute.String("app.mode", string(cfg.Mode)),
	}

	if cfg.ServiceVersion != "" {
		attrs = append(attrs, semconv.ServiceVersion(cfg.ServiceVersion))
	}

	if cfg.Environment != "" {
		attrs = append(attrs, semconv.DeploymentEnvironment(cfg.Environment))
	}

	res, err := resource.Merge(resource.Default(), resource.NewSchemaless(attrs...))
	if err != nil {
		return nil, fmt.Errorf("build otel resource: %w", err)
	}

	return res, nil
}

type closeFunc func(ctx context.Context) error

func closeNothing(_ context.Context) error { return nil }

func newTracerProvider(
	ctx context.Context, cfg Config, res *resource.Resource,
) (trace.TracerProvider, closeFunc, error) {
	if cfg.OTLPEndpoint == "" {
		return nooptrace.NewTracerProvider(), closeNothing, nil
	}

	opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(cfg.OTLPEndpoint)}
	if cfg.OTLPInsecure {
		opts = append(opts, otlptracegrpc.WithInsecure())
	}

	if len(cfg.OTLPHeaders) > 0 {
		opts = append(opts, otlptracegrpc.WithHeaders(cfg.OTLPHeaders))
	}

	exporter, err := otlptracegrpc.New(ctx, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("create trace exporter: %w", err)
	}

	// Spans pass through the attribute gate before batching so stray
	// high-cardinality attributes never reach the collector.
	var gateLog *slog.Logger
	if cfg.DebugTrace {
		gateLog = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(NewAttributeGate(sdktrace.NewBatchSpanProcessor(exporter), gateLog)),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(chooseSampler(cfg)),
	)

	return tp, tp.Shutdown, nil
}

func newMeterProvider(
	ctx context.Context, cfg Config, res *resource.Resource,
) (metric.MeterProvider, closeFunc, error) {
	if cfg.OTLPEndpoint == "" {
		return noopmetric.NewMeterProvider(), closeNothing, nil
	}

	opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithEndpoint(cfg.OTLPEndpoint)}
	if cfg.OTLPInsecure {
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	}

	if len(cfg.OTLPHeaders) > 0 {
		opts = append(opts, otlpmetricgrpc.WithHeaders(cfg.OTLPHeaders))
	}

	exporter, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("create metric exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter)),
		sdkmetric.WithResource(res),
	)

	return mp, mp.Shutdown, nil
}

// envSamplers maps OTEL_TRACES_SAMPLER values to sampler constructors taking
// the OTEL_TRACES_SAMPLER_ARG ratio.
var envSamplers = map[string]func(arg string) sdktrace.Sampler{
	"always_on":  func(string) sdktrace.Sampler { return sdktrace.AlwaysSample() },
	"always_off": func(string) sdktrace.Sampler { return sdktrace.NeverSample() },
	"traceidratio": func(arg string) sdktrace.Sampler {
		return sdktrace.TraceIDRatioBased(parseRatio(arg))
	},
	"parentbased_always_on": func(string) sdktrace.Sampler {
		return sdktrace.ParentBased(sdktrace.AlwaysSample())
	},
	"parentbased_always_off": func(string) sdktrace.Sampler {
		return sdktrace.ParentBased(sdktrace.NeverSample())
	},
	"parentbased_traceidratio": func(arg string) sdktrace.Sampler {
		return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(parseRatio(arg)))
	},
}

// chooseSampler resolves the sampler with DebugTrace taking precedence over
// the standard OTel environment variables, which in turn beat SampleRatio.
func chooseSampler(cfg Config) sdktrace.Sampler {
	if cfg.DebugTrace {
		return sdktrace.AlwaysSample()
	}

	if name := os.Getenv(envTracesSampler); name != "" {
		if build, ok := envSamplers[name]; ok {
			return build(os.Getenv(envTracesSamplerArg))
		}
	}

	if cfg.SampleRatio > 0 {
		return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SampleRatio))
	}

	return sdktrace.ParentBased(sdktrace.AlwaysSample())
}

func parseRatio(arg string) float64 {
	ratio, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return 1.0
	}

	return ratio
}

// ParseOTLPHeaders parses the "key=value,key=value" form used by
// OTEL_EXPORTER_OTLP_HEADERS. Malformed pairs are skipped; an input with no
// usable pairs yields nil.
func ParseOTLPHeaders(raw string) map[string]string {
	headers := make(map[string]string)

	for pair := range strings.SplitSeq(raw, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok || key == "" {
			continue
		}

		headers[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}

	if len(headers) == 0 {
		return nil
	}

	return headers
}

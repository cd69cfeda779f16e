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

// Init installs global providers, so its tests stay sequential.
func TestInitWithoutCollector(t *testing.T) {
	providers, err := observability.Init(observability.DefaultConfig())
	require.NoError(t, err)

	require.NotNil(t, providers.Tracer)
	require.NotNil(t, providers.Meter)
	require.NotNil(t, providers.Logger)

	ctx, span := providers.Tracer.Start(context.Background(), "noop-probe")
	assert.NotNil(t, ctx)

	span.End()

	providers.Logger.InfoContext(ctx, "init smoke")

	require.NoError(t, providers.Shutdown(context.Background()))
	require.NoError(t, providers.Shutdown(context.Background()), "second shutdown must stay clean")
}

func TestResourceCarriesIdentity(t *testing.T) {
	t.Parallel()

	cfg := observability.DefaultConfig()
	cfg.ServiceVersion = "1.2.3"
	cfg.Environment = "staging"
	cfg.Mode = observability.ModeMCP

	res, err := observability.NewResource(cfg)
	require.NoError(t, err)

	found := map[string]string{}
	for _, attr := range res.Attributes() {
		found[string(attr.Key)] = attr.Value.AsString()
	}

	assert.Equal(t, "algotrace", found["service.name"])
	assert.Equal(t, "1.2.3", found["service.version"])
	assert.Equal(t, "staging", found["deployment.environment"])
	assert.Equal(t, "mcp", found["app.mode"])
}

func TestResourceOmitsEmptyIdentity(t *testing.T) {
	t.Parallel()

	res, err := observability.NewResource(observability.DefaultConfig())
	require.NoError(t, err)

	for _, attr := range res.Attributes() {
		assert.NotEqual(t, "service.version", string(attr.Key))
		assert.NotEqual(t, "deployment.environment", string(attr.Key))
	}
}

// rootSampled reports whether the sampler chosen for cfg keeps a root span.
func rootSampled(t *testing.T, cfg observability.Config) bool {
	t.Helper()

	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
		sdktrace.WithSampler(observability.ChooseSampler(cfg)),
	)

	_, span := tp.Tracer("sampler-probe").Start(context.Background(), "probe")
	span.End()

	sampled := len(exporter.GetSpans()) > 0
	require.NoError(t, tp.Shutdown(context.Background()))

	return sampled
}

func TestSamplerFromEnvironment(t *testing.T) {
	tests := []struct {
		name    string
		sampler string
		arg     string
		want    bool
	}{
		{"always on", "always_on", "", true},
		{"always off", "always_off", "", false},
		{"ratio one", "traceidratio", "1.0", true},
		{"parent based on", "parentbased_always_on", "", true},
		{"parent based off drops roots", "parentbased_always_off", "", false},
		{"unknown name falls back to sampling", "bogus", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("OTEL_TRACES_SAMPLER", tt.sampler)

			if tt.arg != "" {
				t.Setenv("OTEL_TRACES_SAMPLER_ARG", tt.arg)
			}

			assert.Equal(t, tt.want, rootSampled(t, observability.DefaultConfig()))
		})
	}
}

func TestSamplerPrecedence(t *testing.T) {
	t.Setenv("OTEL_TRACES_SAMPLER", "always_off")

	cfg := observability.DefaultConfig()
	cfg.DebugTrace = true

	assert.True(t, rootSampled(t, cfg), "DebugTrace outranks the environment")
}

func TestSamplerRatioFromConfig(t *testing.T) {
	t.Setenv("OTEL_TRACES_SAMPLER", "")

	cfg := observability.DefaultConfig()
	cfg.SampleRatio = 1.0

	assert.True(t, rootSampled(t, cfg))
}

func TestSamplerDefaultKeepsRoots(t *testing.T) {
	t.Setenv("OTEL_TRACES_SAMPLER", "")

	assert.True(t, rootSampled(t, observability.DefaultConfig()))
}

func TestParseOTLPHeaders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  map[string]string
	}{
		{"empty", "", nil},
		{"single pair", "key=value", map[string]string{"key": "value"}},
		{"several pairs", "k1=v1,k2=v2", map[string]string{"k1": "v1", "k2": "v2"}},
		{"padded", " k1 = v1 , k2 = v2 ", map[string]string{"k1": "v1", "k2": "v2"}},
		{"empty value kept", "token=", map[string]string{"token": ""}},
		{"missing equals skipped", "invalid", nil},
		{"missing key skipped", "=value", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, observability.ParseOTLPHeaders(tt.input))
		})
	}
}

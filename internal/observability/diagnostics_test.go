package observability_test

import (
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/Sumatoshi-tech/algotrace/internal/observability"
)

func startDiagnostics(t *testing.T) *observability.DiagnosticsServer {
	t.Helper()

	srv, err := observability.NewDiagnosticsServer("127.0.0.1:0", nil)
	require.NoError(t, err)

	t.Cleanup(func() { require.NoError(t, srv.Close()) })

	return srv
}

func getBody(t *testing.T, url string) (int, string) {
	t.Helper()

	resp, err := http.Get(url) //nolint:gosec,noctx // loopback test request
	require.NoError(t, err)

	defer func() { require.NoError(t, resp.Body.Close()) }()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, string(data)
}

func TestDiagnosticsServer_ServesHealthz(t *testing.T) {
	t.Parallel()

	srv := startDiagnostics(t)

	status, body := getBody(t, "http://"+srv.Addr()+"/healthz")
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"status":"ok"}`, body)
}

func TestDiagnosticsServer_ServesReadyz(t *testing.T) {
	t.Parallel()

	srv := startDiagnostics(t)

	status, body := getBody(t, "http://"+srv.Addr()+"/readyz")
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"status":"ok"}`, body)
}

func TestDiagnosticsServer_ServesMetrics(t *testing.T) {
	t.Parallel()

	srv := startDiagnostics(t)

	status, body := getBody(t, "http://"+srv.Addr()+"/metrics")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "target_info")
	assert.Contains(t, body, "algotrace_runtime_goroutines",
		"scrape endpoint serves the runtime instruments from its own registry")
}

func TestDiagnosticsServer_RegistersRuntimeMetrics(t *testing.T) {
	t.Parallel()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	srv, err := observability.NewDiagnosticsServer("127.0.0.1:0", mp.Meter("test"))
	require.NoError(t, err)

	t.Cleanup(func() { require.NoError(t, srv.Close()) })

	rm := collectMetrics(t, reader)

	goroutines := findMetric(rm, "algotrace.runtime.goroutines")
	assert.NotNil(t, goroutines, "runtime metrics should register on the provided meter")
}

func TestDiagnosticsServer_BadAddrFails(t *testing.T) {
	t.Parallel()

	_, err := observability.NewDiagnosticsServer("127.0.0.1:bad-port", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listen on")
}

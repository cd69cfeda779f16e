package observability

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"go.opentelemetry.io/otel/trace"
)

// Log record keys for joining log lines to exported telemetry.
const (
	logKeyTraceID = "trace_id"
	logKeySpanID  = "span_id"
	logKeyService = "service"
	logKeyEnv     = "env"
	logKeyMode    = "mode"
)

// newLogger builds the process logger: text or JSON on stderr, the service
// identity attached ahead of any group, and span context stamped per record.
func newLogger(cfg Config) *slog.Logger {
	handlerOpts := &slog.HandlerOptions{Level: cfg.LogLevel}

	var inner slog.Handler
	if cfg.LogJSON {
		inner = slog.NewJSONHandler(os.Stderr, handlerOpts)
	} else {
		inner = slog.NewTextHandler(os.Stderr, handlerOpts)
	}

	return slog.New(NewSpanContextHandler(inner.WithAttrs(identityAttrs(cfg))))
}

// identityAttrs returns the service identity attributes stamped on every
// record. Attaching them to the innermost handler keeps them at the top
// level even after WithGroup.
func identityAttrs(cfg Config) []slog.Attr {
	attrs := []slog.Attr{
		slog.String(logKeyService, cfg.ServiceName),
		slog.String(logKeyMode, string(cfg.Mode)),
	}

	if cfg.Environment != "" {
		attrs = append(attrs, slog.String(logKeyEnv, cfg.Environment))
	}

	return attrs
}

// SpanContextHandler is an [slog.Handler] that adds the active span's trace
// and span ids to each record, so a log line found during an incident links
// straight to its trace.
type SpanContextHandler struct {
	slog.Handler
}

// NewSpanContextHandler wraps inner with span context stamping.
func NewSpanContextHandler(inner slog.Handler) *SpanContextHandler {
	return &SpanContextHandler{Handler: inner}
}

// Handle stamps the record when ctx carries a valid span context.
func (h *SpanContextHandler) Handle(ctx context.Context, record slog.Record) error {
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		record.AddAttrs(
			slog.String(logKeyTraceID, sc.TraceID().String()),
			slog.String(logKeySpanID, sc.SpanID().String()),
		)
	}

	if err := h.Handler.Handle(ctx, record); err != nil {
		return fmt.Errorf("handle log record: %w", err)
	}

	return nil
}

// WithAttrs re-wraps so derived loggers keep stamping span context.
func (h *SpanContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &SpanContextHandler{Handler: h.Handler.WithAttrs(attrs)}
}

// WithGroup re-wraps so derived loggers keep stamping span context.
func (h *SpanContextHandler) WithGroup(name string) slog.Handler {
	return &SpanContextHandler{Handler: h.Handler.WithGroup(name)}
}

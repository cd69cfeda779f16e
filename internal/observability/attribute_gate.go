package observability

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// The gate admits only known attribute namespaces so PII and unbounded
// cardinality cannot leak into the collector. Dotted namespaces are matched
// by prefix, bare keys exactly.
var (
	admitPrefixes = []string{
		"algotrace.",
		"error.",
		"http.",
		"mcp.",
		"recording.",
		"replay.",
		"scenario.",
	}

	admitKeys = map[string]bool{
		"structure": true,
		"operation": true,
		"capacity":  true,
		"format":    true,
		"steps":     true,
		"drift":     true,
		"error":     true,
	}

	denyPrefixes = []string{"user."}

	denyKeys = map[string]bool{
		"email":         true,
		"request.body":  true,
		"response.body": true,
	}
)

// attributeGate is a SpanProcessor that hides non-admitted span attributes
// from its delegate.
type attributeGate struct {
	delegate sdktrace.SpanProcessor
	logger   *slog.Logger
}

// NewAttributeGate wraps delegate so exported spans carry only admitted
// attributes. A non-nil logger reports each stripped key at warn level,
// which DebugTrace uses to surface instrumentation mistakes during
// development.
func NewAttributeGate(delegate sdktrace.SpanProcessor, logger *slog.Logger) sdktrace.SpanProcessor {
	return &attributeGate{delegate: delegate, logger: logger}
}

func (g *attributeGate) OnStart(parent context.Context, s sdktrace.ReadWriteSpan) {
	g.delegate.OnStart(parent, s)
}

// OnEnd forwards a view of the span that exposes only admitted attributes.
// ReadOnlySpan cannot be mutated in place.
func (g *attributeGate) OnEnd(s sdktrace.ReadOnlySpan) {
	g.delegate.OnEnd(&gatedSpan{ReadOnlySpan: s, gate: g})
}

func (g *attributeGate) Shutdown(ctx context.Context) error {
	if err := g.delegate.Shutdown(ctx); err != nil {
		return fmt.Errorf("attribute gate shutdown: %w", err)
	}

	return nil
}

func (g *attributeGate) ForceFlush(ctx context.Context) error {
	if err := g.delegate.ForceFlush(ctx); err != nil {
		return fmt.Errorf("attribute gate flush: %w", err)
	}

	return nil
}

func (g *attributeGate) admit(key string) bool {
	if denyKeys[key] || hasAnyPrefix(key, denyPrefixes) {
		g.report(key)

		return false
	}

	if admitKeys[key] || hasAnyPrefix(key, admitPrefixes) {
		return true
	}

	g.report(key)

	return false
}

func (g *attributeGate) report(key string) {
	if g.logger != nil {
		g.logger.Warn("span attribute stripped", "key", key)
	}
}

func hasAnyPrefix(key string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(key, prefix) {
			return true
		}
	}

	return false
}

// gatedSpan narrows a ReadOnlySpan's attributes to the admitted set.
type gatedSpan struct {
	sdktrace.ReadOnlySpan

	gate *attributeGate
}

func (s *gatedSpan) Attributes() []attribute.KeyValue {
	original := s.ReadOnlySpan.Attributes()
	admitted := make([]attribute.KeyValue, 0, len(original))

	for _, kv := range original {
		if s.gate.admit(string(kv.Key)) {
			admitted = append(admitted, kv)
		}
	}

	return admitted
}

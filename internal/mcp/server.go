// Package mcp implements a Model Context Protocol server exposing algotrace
// structure tracing as MCP tools over stdio transport.
package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Sumatoshi-tech/algotrace/internal/observability"
	"github.com/Sumatoshi-tech/algotrace/internal/replay"
)

const (
	// serverName is the MCP server implementation name.
	serverName = "algotrace"
	// serverVersion is the MCP server implementation version.
	serverVersion = "1.0.0"

	// toolCount is the expected number of registered tools.
	toolCount = 3
)

// ServerDeps holds injectable dependencies for the MCP server.
// Zero-value fields use production defaults.
type ServerDeps struct {
	// Logger is an optional structured logger. Nil uses slog default.
	Logger *slog.Logger

	// Metrics is an optional RED metrics recorder. Nil disables per-tool metrics.
	Metrics *observability.REDMetrics

	// Tracer is an optional OTel tracer for per-tool-call spans. Nil disables tracing.
	Tracer trace.Tracer

	// RunMetrics is an optional per-run trace metrics recorder. Nil disables
	// operation and structure-size metrics.
	RunMetrics *observability.TraceMetrics
}

// Server wraps the MCP SDK server with algotrace tool registrations.
type Server struct {
	inner      *mcpsdk.Server
	mu         sync.RWMutex
	tools      []string
	metrics    *observability.REDMetrics
	tracer     trace.Tracer
	runMetrics *observability.TraceMetrics
}

// NewServer creates a new MCP server with all algotrace tools registered.
func NewServer(deps ServerDeps) *Server {
	opts := &mcpsdk.ServerOptions{}
	if deps.Logger != nil {
		opts.Logger = deps.Logger
	}

	inner := mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    serverName,
			Version: serverVersion,
		},
		opts,
	)

	srv := &Server{
		inner:      inner,
		tools:      make([]string, 0, toolCount),
		metrics:    deps.Metrics,
		tracer:     deps.Tracer,
		runMetrics: deps.RunMetrics,
	}

	srv.registerTools()

	return srv
}

// ListToolNames returns the sorted names of all registered tools.
func (s *Server) ListToolNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, len(s.tools))
	copy(names, s.tools)
	sort.Strings(names)

	return names
}

// Run starts the MCP server on stdio transport. It blocks until the context
// is canceled or the connection closes.
func (s *Server) Run(ctx context.Context) error {
	err := s.inner.Run(ctx, &mcpsdk.StdioTransport{})
	if err != nil {
		return fmt.Errorf("mcp server: %w", err)
	}

	return nil
}

// RunWithTransport starts the MCP server on the given transport. It blocks
// until the context is canceled or the connection closes.
func (s *Server) RunWithTransport(ctx context.Context, transport mcpsdk.Transport) error {
	err := s.inner.Run(ctx, transport)
	if err != nil {
		return fmt.Errorf("mcp server: %w", err)
	}

	return nil
}

// registerTools adds all algotrace MCP tools to the server.
func (s *Server) registerTools() {
	s.registerExecuteTool()
	s.registerRenderTool()
	s.registerStructuresTool()
}

func (s *Server) registerExecuteTool() {
	mcpsdk.AddTool(s.inner, &mcpsdk.Tool{
		Name:        ToolNameExecute,
		Description: executeToolDescription,
	}, withMetrics(s.metrics, ToolNameExecute,
		withTracing(s.tracer, ToolNameExecute,
			withRunMetrics(s.runMetrics, handleExecute))))

	s.trackTool(ToolNameExecute)
}

func (s *Server) registerRenderTool() {
	mcpsdk.AddTool(s.inner, &mcpsdk.Tool{
		Name:        ToolNameRender,
		Description: renderToolDescription,
	}, withMetrics(s.metrics, ToolNameRender, withTracing(s.tracer, ToolNameRender, handleRender)))

	s.trackTool(ToolNameRender)
}

func (s *Server) registerStructuresTool() {
	mcpsdk.AddTool(s.inner, &mcpsdk.Tool{
		Name:        ToolNameStructures,
		Description: structuresToolDescription,
	}, withMetrics(s.metrics, ToolNameStructures, withTracing(s.tracer, ToolNameStructures, handleStructures)))

	s.trackTool(ToolNameStructures)
}

// mcpSpanPrefix is the prefix for MCP tool span names.
const mcpSpanPrefix = "mcp."

// traceIDMetaKey is the metadata key for trace_id in MCP tool responses.
const traceIDMetaKey = "trace_id"

// withTracing wraps an MCP tool handler to create an OTel span per invocation
// and include trace_id in the response content when sampled.
func withTracing[Input any](
	tracer trace.Tracer,
	toolName string,
	handler func(context.Context, *mcpsdk.CallToolRequest, Input) (*mcpsdk.CallToolResult, ToolOutput, error),
) func(context.Context, *mcpsdk.CallToolRequest, Input) (*mcpsdk.CallToolResult, ToolOutput, error) {
	if tracer == nil {
		return handler
	}

	return func(ctx context.Context, req *mcpsdk.CallToolRequest, input Input) (*mcpsdk.CallToolResult, ToolOutput, error) {
		ctx, span := tracer.Start(ctx, mcpSpanPrefix+toolName,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(attribute.String("mcp.tool", toolName)),
		)
		defer span.End()

		result, output, err := handler(ctx, req, input)

		// Include trace_id in response when span is sampled.
		sc := span.SpanContext()
		if sc.IsSampled() && result != nil {
			traceContent := &mcpsdk.TextContent{Text: fmt.Sprintf("%s=%s", traceIDMetaKey, sc.TraceID().String())}
			result.Content = append(result.Content, traceContent)
		}

		return result, output, err
	}
}

// withMetrics wraps an MCP tool handler to record RED metrics per invocation.
func withMetrics[Input any](
	metrics *observability.REDMetrics,
	toolName string,
	handler func(context.Context, *mcpsdk.CallToolRequest, Input) (*mcpsdk.CallToolResult, ToolOutput, error),
) func(context.Context, *mcpsdk.CallToolRequest, Input) (*mcpsdk.CallToolResult, ToolOutput, error) {
	if metrics == nil {
		return handler
	}

	return func(ctx context.Context, req *mcpsdk.CallToolRequest, input Input) (*mcpsdk.CallToolResult, ToolOutput, error) {
		start := time.Now()

		decInflight := metrics.TrackInflight(ctx, "mcp."+toolName)
		defer decInflight()

		result, output, err := handler(ctx, req, input)

		status := "ok"
		if err != nil || (result != nil && result.IsError) {
			status = "error"
		}

		metrics.RecordRequest(ctx, "mcp."+toolName, status, time.Since(start))

		return result, output, err
	}
}

// withRunMetrics wraps the execute handler to record per-operation and
// structure-size metrics from each successful recording.
func withRunMetrics(
	metrics *observability.TraceMetrics,
	handler func(context.Context, *mcpsdk.CallToolRequest, ExecuteInput) (*mcpsdk.CallToolResult, ToolOutput, error),
) func(context.Context, *mcpsdk.CallToolRequest, ExecuteInput) (*mcpsdk.CallToolResult, ToolOutput, error) {
	if metrics == nil {
		return handler
	}

	return func(ctx context.Context, req *mcpsdk.CallToolRequest, input ExecuteInput) (*mcpsdk.CallToolResult, ToolOutput, error) {
		result, output, err := handler(ctx, req, input)

		if rec, ok := output.Data.(*replay.Recording); ok {
			metrics.RecordRun(ctx, runStats(rec))
		}

		return result, output, err
	}
}

func (s *Server) trackTool(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tools = append(s.tools, name)
}

// Tool description constants.
const (
	executeToolDescription = "Execute a scripted operation list against a data structure " +
		"(rbtree, bst, array, linkedlist, stack, queue) and return the full step trace: " +
		"every comparison, rotation, recolor, shift and visit, plus the final projection and run statistics."

	renderToolDescription = "Execute a scripted operation list against a data structure " +
		"and return only the final drawable projection, for quick inspection without the full trace."

	structuresToolDescription = "List the available data structures " +
		"and the operation kinds each one supports."
)

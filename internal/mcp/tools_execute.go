package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Sumatoshi-tech/algotrace/internal/observability"
	"github.com/Sumatoshi-tech/algotrace/internal/replay"
	"github.com/Sumatoshi-tech/algotrace/internal/scenario"
)

// handleExecute processes algotrace_execute tool calls.
func handleExecute(
	_ context.Context,
	_ *mcpsdk.CallToolRequest,
	input ExecuteInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	err := validateRunInput(input.Structure, input.Operations)
	if err != nil {
		return errorResult(err)
	}

	ops, err := scenario.Operations(input.Operations)
	if err != nil {
		return errorResult(err)
	}

	rec, err := replay.Record(input.Structure, capacityOrDefault(input.Capacity), ops)
	if err != nil {
		return errorResult(fmt.Errorf("record run: %w", err))
	}

	return jsonResult(rec)
}

// runStats projects a recording into the shape the metrics layer consumes.
func runStats(rec *replay.Recording) observability.TraceStats {
	stats := observability.TraceStats{
		Structure:  rec.Structure,
		Operations: make([]observability.OperationStat, 0, len(rec.Operations)),
		FinalSize:  finalSize(rec),
	}

	for idx, op := range rec.Operations {
		steps := 0
		if idx < len(rec.Traces) {
			steps = len(rec.Traces[idx])
		}

		stats.Operations = append(stats.Operations, observability.OperationStat{
			Kind:  op.Kind.String(),
			Steps: steps,
		})
	}

	return stats
}

// finalSize reports the structure's element count after the last operation.
func finalSize(rec *replay.Recording) int {
	if n := len(rec.Stats.SizeAfter); n > 0 {
		return rec.Stats.SizeAfter[n-1]
	}

	return 0
}

package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Sumatoshi-tech/algotrace/internal/replay"
	"github.com/Sumatoshi-tech/algotrace/internal/scenario"
	"github.com/Sumatoshi-tech/algotrace/internal/viz"
)

// RenderOutput is the structured result of the algotrace_render tool.
type RenderOutput struct {
	Projection viz.RenderState `json:"projection"`
	Size       int             `json:"size"`
	Structure  string          `json:"structure"`
}

// handleRender processes algotrace_render tool calls.
func handleRender(
	_ context.Context,
	_ *mcpsdk.CallToolRequest,
	input RenderInput,
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

	return jsonResult(RenderOutput{
		Projection: rec.FinalProjection,
		Size:       finalSize(rec),
		Structure:  rec.Structure,
	})
}

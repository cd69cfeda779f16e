package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Sumatoshi-tech/algotrace/internal/catalog"
)

// StructureInfo describes one registered structure.
type StructureInfo struct {
	Name       string   `json:"name"`
	Operations []string `json:"operations"`
}

// StructuresOutput is the structured result of the algotrace_structures tool.
type StructuresOutput struct {
	Structures []StructureInfo `json:"structures"`
}

// handleStructures processes algotrace_structures tool calls.
func handleStructures(
	_ context.Context,
	_ *mcpsdk.CallToolRequest,
	_ StructuresInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	names := catalog.Names()
	infos := make([]StructureInfo, 0, len(names))

	for _, name := range names {
		kinds := catalog.Operations(name)
		ops := make([]string, 0, len(kinds))

		for _, kind := range kinds {
			ops = append(ops, kind.String())
		}

		infos = append(infos, StructureInfo{Name: name, Operations: ops})
	}

	return jsonResult(StructuresOutput{Structures: infos})
}

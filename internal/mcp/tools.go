package mcp

import (
	"encoding/json"
	"errors"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Sumatoshi-tech/algotrace/internal/catalog"
	"github.com/Sumatoshi-tech/algotrace/internal/scenario"
)

// Tool name constants.
const (
	ToolNameExecute    = "algotrace_execute"
	ToolNameRender     = "algotrace_render"
	ToolNameStructures = "algotrace_structures"
)

// Input size limits.
const (
	// MaxOperationsPerCall is the maximum number of operations accepted per call.
	MaxOperationsPerCall = 10_000

	// defaultCapacity bounds the array, stack and queue when a call omits one.
	defaultCapacity = 64
)

// Sentinel errors for tool input validation.
var (
	// ErrEmptyStructure indicates the structure parameter is empty.
	ErrEmptyStructure = errors.New("structure parameter is required and must not be empty")
	// ErrUnknownStructure indicates the structure name is not registered.
	ErrUnknownStructure = errors.New("unknown structure")
	// ErrNoOperations indicates the operations parameter is empty.
	ErrNoOperations = errors.New("operations parameter is required and must not be empty")
	// ErrTooManyOperations indicates the operation list exceeds the size limit.
	ErrTooManyOperations = errors.New("operation list exceeds maximum size")
)

// Input types (auto-generate JSON schemas via struct tags).

// ExecuteInput is the input schema for the algotrace_execute tool.
type ExecuteInput struct {
	Capacity   int              `json:"capacity,omitempty" jsonschema:"backing capacity for array stack and queue (default: 64)"`
	Operations []scenario.Entry `json:"operations"         jsonschema:"ordered list of operations to execute"`
	Structure  string           `json:"structure"          jsonschema:"structure name (e.g. rbtree bst stack)"`
}

// RenderInput is the input schema for the algotrace_render tool.
type RenderInput struct {
	Capacity   int              `json:"capacity,omitempty" jsonschema:"backing capacity for array stack and queue (default: 64)"`
	Operations []scenario.Entry `json:"operations"         jsonschema:"ordered list of operations to execute"`
	Structure  string           `json:"structure"          jsonschema:"structure name (e.g. rbtree bst stack)"`
}

// StructuresInput is the input schema for the algotrace_structures tool.
// The tool takes no parameters.
type StructuresInput struct{}

// Output type (used as structured output for generic AddTool).

// ToolOutput is a generic wrapper for tool results.
type ToolOutput struct {
	Data any `json:"data"`
}

// Result helpers.

// errorResult builds a CallToolResult with isError set.
func errorResult(err error) (*mcpsdk.CallToolResult, ToolOutput, error) {
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: err.Error()},
		},
		IsError: true,
	}, ToolOutput{}, nil
}

// jsonResult builds a CallToolResult with JSON-encoded content.
func jsonResult(value any) (*mcpsdk.CallToolResult, ToolOutput, error) {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return errorResult(fmt.Errorf("encode result: %w", err))
	}

	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: string(data)},
		},
	}, ToolOutput{Data: value}, nil
}

// validateRunInput checks the common structure and operation constraints of
// the execute and render tools.
func validateRunInput(structure string, entries []scenario.Entry) error {
	if structure == "" {
		return ErrEmptyStructure
	}

	if !catalog.Known(structure) {
		return fmt.Errorf("%w: %q", ErrUnknownStructure, structure)
	}

	if len(entries) == 0 {
		return ErrNoOperations
	}

	if len(entries) > MaxOperationsPerCall {
		return fmt.Errorf("%w: %d operations (max %d)", ErrTooManyOperations, len(entries), MaxOperationsPerCall)
	}

	return nil
}

// capacityOrDefault substitutes the default backing capacity for omitted or
// non-positive values.
func capacityOrDefault(capacity int) int {
	if capacity <= 0 {
		return defaultCapacity
	}

	return capacity
}

package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Sumatoshi-tech/algotrace/internal/scenario"
)

func TestHandleRender_ValidRun(t *testing.T) {
	t.Parallel()

	input := RenderInput{
		Structure: "stack",
		Operations: []scenario.Entry{
			{Op: "push", Value: 7},
			{Op: "push", Value: 9},
			{Op: "pop"},
		},
	}

	result, output, err := handleRender(context.Background(), &mcpsdk.CallToolRequest{}, input)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.False(t, result.IsError)

	rendered, ok := output.Data.(RenderOutput)
	require.True(t, ok)
	assert.Equal(t, "stack", rendered.Structure)
	assert.Equal(t, 1, rendered.Size)
	require.Len(t, rendered.Projection.Elements, 1)
	assert.Equal(t, int64(7), rendered.Projection.Elements[0].Value)
}

func TestHandleRender_OmitsTraces(t *testing.T) {
	t.Parallel()

	input := RenderInput{
		Structure:  "rbtree",
		Operations: []scenario.Entry{{Op: "insert", Value: 50}},
	}

	result, _, err := handleRender(context.Background(), &mcpsdk.CallToolRequest{}, input)
	require.NoError(t, err)
	assert.False(t, result.IsError)

	text, ok := result.Content[0].(*mcpsdk.TextContent)
	require.True(t, ok)
	assert.Contains(t, text.Text, `"projection"`)
	assert.NotContains(t, text.Text, `"traces"`)
}

func TestHandleRender_EmptyStructure(t *testing.T) {
	t.Parallel()

	input := RenderInput{
		Operations: []scenario.Entry{{Op: "push", Value: 7}},
	}

	result, _, err := handleRender(context.Background(), &mcpsdk.CallToolRequest{}, input)
	require.NoError(t, err)
	assert.True(t, result.IsError)

	text, ok := result.Content[0].(*mcpsdk.TextContent)
	require.True(t, ok)
	assert.Contains(t, text.Text, "structure parameter is required")
}

func TestHandleRender_UnknownStructure(t *testing.T) {
	t.Parallel()

	input := RenderInput{
		Structure:  "skiplist",
		Operations: []scenario.Entry{{Op: "insert", Value: 1}},
	}

	result, _, err := handleRender(context.Background(), &mcpsdk.CallToolRequest{}, input)
	require.NoError(t, err)
	assert.True(t, result.IsError)

	text, ok := result.Content[0].(*mcpsdk.TextContent)
	require.True(t, ok)
	assert.Contains(t, text.Text, "unknown structure")
}

package mcpserver

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBenchTool_Basic(t *testing.T) {
	input := benchInput{
		Tree:       treeInput{Content: `{"a": 1}`},
		Iterations: 10,
	}
	result, output, err := handleBench(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.Nil(t, result)
	assert.Equal(t, 10, output.Iterations)
	assert.NotEmpty(t, output.TotalTime)
	assert.Greater(t, output.OpsPerSecond, 0.0)
	assert.True(t, output.Optimized)
}

func TestBenchTool_DefaultIterations(t *testing.T) {
	input := benchInput{
		Tree: treeInput{Content: `{"a": 1}`},
	}
	_, output, err := handleBench(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	assert.Equal(t, cfg.BenchIterations, output.Iterations)
}

func TestBenchTool_CapsIterations(t *testing.T) {
	input := benchInput{
		Tree:       treeInput{Content: `{"a": 1}`},
		Iterations: cfg.BenchMaxIterations + 1,
	}
	_, output, err := handleBench(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	assert.Equal(t, cfg.BenchMaxIterations, output.Iterations)
}

func TestBenchTool_MissingInput(t *testing.T) {
	result, _, err := handleBench(context.Background(), &mcp.CallToolRequest{}, benchInput{})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}

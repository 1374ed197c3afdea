package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jsontools/fastpath/serializer"
)

type benchInput struct {
	Tree       treeInput `json:"tree"                 jsonschema:"The value tree to benchmark"`
	Iterations int       `json:"iterations,omitempty" jsonschema:"Number of serialization calls to time (default from FASTPATH_BENCH_ITERATIONS, capped by FASTPATH_BENCH_MAX_ITERATIONS)"`
}

type benchOutput struct {
	Iterations   int     `json:"iterations"`
	TotalTime    string  `json:"total_time"`
	AverageTime  string  `json:"average_time"`
	OpsPerSecond float64 `json:"ops_per_second"`
	Optimized    bool    `json:"optimized"`
	Summary      string  `json:"summary"`
}

func handleBench(_ context.Context, _ *mcp.CallToolRequest, input benchInput) (*mcp.CallToolResult, benchOutput, error) {
	tree, err := input.Tree.resolve()
	if err != nil {
		return errResult(err), benchOutput{}, nil
	}

	iterations := input.Iterations
	if iterations <= 0 {
		iterations = cfg.BenchIterations
	}
	if iterations > cfg.BenchMaxIterations {
		iterations = cfg.BenchMaxIterations
	}

	result, err := serializer.Benchmark(tree, iterations)
	if err != nil {
		return errResult(err), benchOutput{}, nil
	}

	return nil, benchOutput{
		Iterations:   result.Iterations,
		TotalTime:    result.TotalTime.String(),
		AverageTime:  result.AverageTime.String(),
		OpsPerSecond: result.OpsPerSecond,
		Optimized:    result.Validation.IsOptimized,
		Summary:      result.Validation.Summary,
	}, nil
}

package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jsontools/fastpath/optimizer"
	"github.com/jsontools/fastpath/validator"
)

type optimizeInput struct {
	Tree     treeInput `json:"tree"                jsonschema:"The value tree to rewrite"`
	MaxDepth int       `json:"max_depth,omitempty" jsonschema:"Rewrite depth limit (default 100)"`
}

type optimizeOutput struct {
	Tree      any    `json:"tree"`
	Optimized bool   `json:"optimized"`
	Summary   string `json:"summary"`
}

func handleOptimize(_ context.Context, _ *mcp.CallToolRequest, input optimizeInput) (*mcp.CallToolResult, optimizeOutput, error) {
	tree, err := input.Tree.resolve()
	if err != nil {
		return errResult(err), optimizeOutput{}, nil
	}

	o := optimizer.New()
	o.MaxDepth = maxDepth(input.MaxDepth)
	rewritten := o.Optimize(tree)

	// Re-validate so the client sees what the rewrite could not shed.
	v := validator.New()
	v.MaxDepth = maxDepth(input.MaxDepth)
	result, err := v.Validate(rewritten)
	if err != nil {
		return errResult(err), optimizeOutput{}, nil
	}

	return nil, optimizeOutput{
		Tree:      rewritten,
		Optimized: result.IsOptimized,
		Summary:   result.Summary,
	}, nil
}

package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jsontools/fastpath/serializer"
)

type stringifyInput struct {
	Tree   treeInput `json:"tree"             jsonschema:"The value tree to serialize"`
	Indent string    `json:"indent,omitempty" jsonschema:"Indent string for pretty output; empty for compact"`
}

type stringifyOutput struct {
	JSON         string `json:"json"`
	Optimized    bool   `json:"optimized"`
	Summary      string `json:"summary"`
	WarningCount int    `json:"warning_count"`
}

func handleStringify(_ context.Context, _ *mcp.CallToolRequest, input stringifyInput) (*mcp.CallToolResult, stringifyOutput, error) {
	tree, err := input.Tree.resolve()
	if err != nil {
		return errResult(err), stringifyOutput{}, nil
	}

	var opts []serializer.Option
	if input.Indent != "" {
		opts = append(opts, serializer.WithIndent(input.Indent))
	}

	out, err := serializer.Marshal(tree, opts...)
	if err != nil {
		return errResult(err), stringifyOutput{}, nil
	}

	return nil, stringifyOutput{
		JSON:         out.JSON,
		Optimized:    out.Optimized,
		Summary:      out.Validation.Summary,
		WarningCount: len(out.Validation.Warnings),
	}, nil
}

package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jsontools/fastpath/validator"
)

type validateInput struct {
	Tree       treeInput `json:"tree"                  jsonschema:"The value tree to check"`
	Strict     *bool     `json:"strict,omitempty"      jsonschema:"Enable strict validation mode"`
	MaxDepth   int       `json:"max_depth,omitempty"   jsonschema:"Traversal depth limit (default 100)"`
	NoWarnings *bool     `json:"no_warnings,omitempty" jsonschema:"Return counts and summary only, without the warning list"`
}

type warningDetail struct {
	Type       string `json:"type"`
	Path       string `json:"path"`
	Message    string `json:"message"`
	Impact     string `json:"impact"`
	Suggestion string `json:"suggestion,omitempty"`
}

type validateOutput struct {
	Optimized      bool            `json:"optimized"`
	CanUseFastPath bool            `json:"can_use_fast_path"`
	Summary        string          `json:"summary"`
	HighCount      int             `json:"high_count"`
	MediumCount    int             `json:"medium_count"`
	LowCount       int             `json:"low_count"`
	WarningCount   int             `json:"warning_count"`
	Warnings       []warningDetail `json:"warnings,omitempty"`
}

func handleValidate(_ context.Context, _ *mcp.CallToolRequest, input validateInput) (*mcp.CallToolResult, validateOutput, error) {
	// Apply config defaults when input fields are omitted (nil).
	strict := cfg.ValidateStrict
	if input.Strict != nil {
		strict = *input.Strict
	}
	noWarnings := false
	if input.NoWarnings != nil {
		noWarnings = *input.NoWarnings
	}

	tree, err := input.Tree.resolve()
	if err != nil {
		return errResult(err), validateOutput{}, nil
	}

	v := validator.New()
	v.StrictMode = strict
	v.MaxDepth = maxDepth(input.MaxDepth)

	result, err := v.Validate(tree)
	if err != nil {
		return errResult(err), validateOutput{}, nil
	}

	output := validateOutput{
		Optimized:      result.IsOptimized,
		CanUseFastPath: result.CanUseFastPath,
		Summary:        result.Summary,
		HighCount:      result.HighCount,
		MediumCount:    result.MediumCount,
		LowCount:       result.LowCount,
		WarningCount:   len(result.Warnings),
	}
	if !noWarnings {
		output.Warnings = convertWarnings(result.Warnings)
	}
	return nil, output, nil
}

// maxDepth resolves a per-call depth limit against the env default.
// Zero means unset at both levels.
func maxDepth(requested int) int {
	if requested > 0 {
		return requested
	}
	return cfg.MaxDepth
}

func convertWarnings(warnings []validator.Warning) []warningDetail {
	out := makeSlice[warningDetail](len(warnings))
	for _, w := range warnings {
		out = append(out, warningDetail{
			Type:       w.Type,
			Path:       w.Path,
			Message:    w.Message,
			Impact:     w.Impact.String(),
			Suggestion: w.Suggestion,
		})
	}
	return out
}

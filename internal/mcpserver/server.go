// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes fastpath capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jsontools/fastpath"
)

const serverInstructions = `fastpath MCP server — checks value trees for JSON serialization fast-path blockers, prunes indexed map keys, serializes with diagnostics, and benchmarks serialization throughput.

Configuration: All defaults are configurable via FASTPATH_* environment variables set in your MCP client config. The Go MCP SDK does not support initializationOptions; use env vars instead.

Key settings:
- FASTPATH_VALIDATE_STRICT (default: false) — enable strict validation by default
- FASTPATH_MAX_DEPTH (default: 100) — traversal depth limit for validate and optimize
- FASTPATH_BENCH_ITERATIONS (default: 1000) — default iteration count for bench
- FASTPATH_BENCH_MAX_ITERATIONS (default: 100000) — upper bound on bench iterations
- FASTPATH_MAX_INLINE_SIZE (default: 10MiB) — maximum inline content size

Input: every tool takes a tree as either file (path to a JSON or YAML document) or content (inline JSON or YAML). Exactly one must be set.`

// Run starts the MCP server over stdio and blocks until the client
// disconnects or the context is cancelled.
func Run(ctx context.Context) error {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "fastpath", Version: fastpath.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "validate",
		Description: "Check a value tree for JSON serialization fast-path blockers. Returns warnings with impact levels (high blocks the fast path; medium and low only add overhead) plus a one-line summary. Strict mode default is configurable via FASTPATH_VALIDATE_STRICT.",
	}, handleValidate)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "optimize",
		Description: "Rebuild a value tree without canonical integer map keys (the indexed-properties warning). Returns the rewritten tree and its post-rewrite validation summary. The transform is lossy: offending keys are dropped, not relocated.",
	}, handleOptimize)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "stringify",
		Description: "Serialize a value tree to JSON together with its fast-path diagnostics. Use indent for pretty output (note: indented output itself disables the fast path and is reported as a warning).",
	}, handleStringify)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "bench",
		Description: "Benchmark JSON serialization of a value tree. Times repeated serialization and reports total time, per-operation average, and ops/sec, plus one validation result for context. Iteration default and cap are configurable via FASTPATH_BENCH_ITERATIONS and FASTPATH_BENCH_MAX_ITERATIONS.",
	}, handleBench)
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}

// Package fastpath provides tools for detecting and removing structural
// shapes that push encoding/json onto its slow serialization path.
//
// Modern JSON encoders have an optimized fast path for plain, homogeneous
// data: maps and slices of primitives with no custom marshaling hooks. Values
// that carry MarshalJSON/MarshalText implementations, integer-looking map
// keys, non-string map keys, or struct fields the encoder must skip all force
// slower generic handling. fastpath walks an arbitrary value tree, reports
// every such shape with its path and impact, and can rewrite some of them
// away.
//
// # Overview
//
// The library consists of three primary packages:
//
//   - validator: Walk a value tree and report fast-path warnings
//   - optimizer: Best-effort rewrite that prunes indexed map keys
//   - serializer: Validate-and-marshal wrapper plus a benchmark runner
//
// # Quick Start
//
// Validate a value tree:
//
//	import "github.com/jsontools/fastpath/validator"
//
//	result, err := validator.Validate(map[string]any{"a": 1, "0": 2})
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(result.Summary)
//	for _, w := range result.Warnings {
//		fmt.Println(w.String())
//	}
//
// Marshal with diagnostics attached:
//
//	import "github.com/jsontools/fastpath/serializer"
//
//	out, err := serializer.Marshal(tree)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if !out.Optimized {
//		fmt.Println(out.Validation.Summary)
//	}
//	fmt.Println(out.JSON)
//
// Benchmark serialization of a fixed tree:
//
//	bench, err := serializer.Benchmark(tree, serializer.DefaultIterations)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("%.0f ops/sec\n", bench.OpsPerSecond)
//
// # Warning Taxonomy
//
// Warnings carry a type, the path to the offending node (root, root.key,
// root[0]), a message, a suggestion, and an impact tier:
//
//   - replacer (high): a replacer function was supplied to the call
//   - space (high): an indent string was supplied to the call
//   - custom-marshaler (high): the value's type implements json.Marshaler
//     or encoding.TextMarshaler
//   - pointer-marshaler (high): the marshaler is declared on the pointer type
//   - indexed-properties (medium): a string-keyed map has canonical
//     integer-looking keys ("0", "42")
//   - non-string-keys (low): a map key type is not string
//   - hidden-fields (low): a struct has unexported or json:"-" fields
//
// High-impact warnings block the fast path entirely; medium and low degrade
// performance without blocking it.
//
// # Error Handling
//
// Validation never fails on ordinary input shapes. Reference cycles and
// trees deeper than the configured limit return typed errors from the
// fperrors package (fperrors.ErrCycle, fperrors.ErrResourceLimit) instead of
// recursing without bound. encoding/json failures inside serializer.Marshal
// and serializer.Benchmark propagate unchanged.
//
// # Concurrency
//
// Validator, Optimizer, and the serializer functions keep all traversal
// state per call; instances may be shared freely across goroutines.
//
// # Command-Line Interface
//
// In addition to the library packages, fastpath provides a command-line
// interface:
//
//	# Report fast-path warnings for a JSON or YAML document
//	fastpath validate data.json
//
//	# Prune indexed keys and write the rewritten document
//	fastpath optimize -o clean.json data.json
//
//	# Marshal with diagnostics
//	fastpath stringify --indent "  " data.yaml
//
//	# Time encoding/json on the document
//	fastpath bench --iterations 5000 data.json
//
// Install the CLI:
//
//	go install github.com/jsontools/fastpath/cmd/fastpath@latest
//
// An MCP server exposing the same operations over stdio is available via
// "fastpath mcp".
package fastpath

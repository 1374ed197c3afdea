package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jsontools/fastpath"
	"github.com/jsontools/fastpath/internal/cliutil"
	"github.com/jsontools/fastpath/internal/fileutil"
	"github.com/jsontools/fastpath/internal/mcpserver"
	"github.com/jsontools/fastpath/optimizer"
	"github.com/jsontools/fastpath/serializer"
	"github.com/jsontools/fastpath/validator"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version", "-v", "--version":
		cliutil.Writef(os.Stdout, "fastpath v%s\n", fastpath.Version())
	case "help", "-h", "--help":
		printUsage()
	case "validate":
		if err := handleValidate(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "optimize":
		if err := handleOptimize(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "stringify":
		if err := handleStringify(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "bench":
		if err := handleBench(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "mcp":
		if err := handleMCP(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		if suggestion := suggestCommand(command); suggestion != "" {
			fmt.Fprintf(os.Stderr, "Did you mean '%s'?\n", suggestion)
		}
		fmt.Fprintln(os.Stderr)
		printUsage()
		os.Exit(1)
	}
}

// validateFlags contains flags for the validate command
type validateFlags struct {
	strict     bool
	noWarnings bool
	maxDepth   int
}

func setupValidateFlags() (*flag.FlagSet, *validateFlags) {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	flags := &validateFlags{}

	fs.BoolVar(&flags.strict, "strict", false, "enable strict validation mode")
	fs.BoolVar(&flags.noWarnings, "no-warnings", false, "suppress the warning list (only show the summary)")
	fs.IntVar(&flags.maxDepth, "max-depth", 0, "traversal depth limit (default 100)")

	fs.Usage = func() {
		_, _ = fmt.Fprintf(fs.Output(), "Usage: fastpath validate [flags] <file>\n\n")
		_, _ = fmt.Fprintf(fs.Output(), "Check a JSON or YAML document for serialization fast-path blockers.\n\n")
		_, _ = fmt.Fprintf(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		_, _ = fmt.Fprintf(fs.Output(), "\nExamples:\n")
		_, _ = fmt.Fprintf(fs.Output(), "  fastpath validate tree.json\n")
		_, _ = fmt.Fprintf(fs.Output(), "  fastpath validate --no-warnings large-tree.yaml\n")
	}

	return fs, flags
}

func handleValidate(args []string) error {
	fs, flags := setupValidateFlags()

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("validate command requires exactly one file path")
	}

	treePath := fs.Arg(0)
	tree, err := fileutil.Load(treePath)
	if err != nil {
		return err
	}

	v := validator.New()
	v.StrictMode = flags.strict
	v.MaxDepth = flags.maxDepth

	result, err := v.Validate(tree)
	if err != nil {
		return fmt.Errorf("validating tree: %w", err)
	}

	cliutil.Writef(os.Stdout, "JSON Fast-Path Validator\n")
	cliutil.Writef(os.Stdout, "========================\n\n")
	cliutil.Writef(os.Stdout, "fastpath version: %s\n", fastpath.Version())
	cliutil.Writef(os.Stdout, "Input: %s\n", treePath)
	cliutil.Writef(os.Stdout, "Validate Time: %v\n\n", result.ValidateTime)

	if !flags.noWarnings && len(result.Warnings) > 0 {
		cliutil.Writef(os.Stdout, "Warnings (%d):\n", len(result.Warnings))
		for _, warning := range result.Warnings {
			cliutil.Writef(os.Stdout, "  %s\n", warning.String())
		}
		cliutil.Writef(os.Stdout, "\n")
	}

	if result.CanUseFastPath {
		cliutil.Writef(os.Stdout, "✓ %s\n", result.Summary)
	} else {
		cliutil.Writef(os.Stdout, "✗ %s\n", result.Summary)
		os.Exit(1)
	}

	return nil
}

// optimizeFlags contains flags for the optimize command
type optimizeFlags struct {
	output   string
	maxDepth int
}

func setupOptimizeFlags() (*flag.FlagSet, *optimizeFlags) {
	fs := flag.NewFlagSet("optimize", flag.ContinueOnError)
	flags := &optimizeFlags{}

	fs.StringVar(&flags.output, "o", "", "output file path (default stdout)")
	fs.StringVar(&flags.output, "output", "", "output file path (default stdout)")
	fs.IntVar(&flags.maxDepth, "max-depth", 0, "rewrite depth limit (default 100)")

	fs.Usage = func() {
		_, _ = fmt.Fprintf(fs.Output(), "Usage: fastpath optimize [flags] <file>\n\n")
		_, _ = fmt.Fprintf(fs.Output(), "Rewrite a document without canonical integer map keys and print the result as JSON.\n")
		_, _ = fmt.Fprintf(fs.Output(), "The transform is lossy: offending keys are dropped, not relocated.\n\n")
		_, _ = fmt.Fprintf(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		_, _ = fmt.Fprintf(fs.Output(), "\nExamples:\n")
		_, _ = fmt.Fprintf(fs.Output(), "  fastpath optimize tree.json\n")
		_, _ = fmt.Fprintf(fs.Output(), "  fastpath optimize -o pruned.json tree.yaml\n")
	}

	return fs, flags
}

func handleOptimize(args []string) error {
	fs, flags := setupOptimizeFlags()

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("optimize command requires exactly one file path")
	}

	treePath := fs.Arg(0)
	tree, err := fileutil.Load(treePath)
	if err != nil {
		return err
	}

	o := optimizer.New()
	o.MaxDepth = flags.maxDepth
	rewritten := o.Optimize(tree)

	data, err := json.MarshalIndent(rewritten, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling result: %w", err)
	}
	data = append(data, '\n')

	if flags.output != "" {
		if err := validateOutputPath(flags.output, treePath); err != nil {
			return err
		}
		if err := os.WriteFile(flags.output, data, fileutil.OwnerReadWrite); err != nil {
			return fmt.Errorf("writing output file: %w", err)
		}
		fmt.Fprintf(os.Stderr, "✓ Optimized tree written to %s\n", flags.output)
	} else {
		_, _ = os.Stdout.Write(data)
	}

	return nil
}

// stringifyFlags contains flags for the stringify command
type stringifyFlags struct {
	output string
	indent string
}

func setupStringifyFlags() (*flag.FlagSet, *stringifyFlags) {
	fs := flag.NewFlagSet("stringify", flag.ContinueOnError)
	flags := &stringifyFlags{}

	fs.StringVar(&flags.output, "o", "", "output file path (default stdout)")
	fs.StringVar(&flags.output, "output", "", "output file path (default stdout)")
	fs.StringVar(&flags.indent, "indent", "", "indent string for pretty output (disables the fast path)")

	fs.Usage = func() {
		_, _ = fmt.Fprintf(fs.Output(), "Usage: fastpath stringify [flags] <file>\n\n")
		_, _ = fmt.Fprintf(fs.Output(), "Serialize a document to JSON. Diagnostics go to stderr so the JSON can be piped.\n\n")
		_, _ = fmt.Fprintf(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		_, _ = fmt.Fprintf(fs.Output(), "\nExamples:\n")
		_, _ = fmt.Fprintf(fs.Output(), "  fastpath stringify tree.yaml\n")
		_, _ = fmt.Fprintf(fs.Output(), "  fastpath stringify --indent '  ' tree.json\n")
	}

	return fs, flags
}

func handleStringify(args []string) error {
	fs, flags := setupStringifyFlags()

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("stringify command requires exactly one file path")
	}

	treePath := fs.Arg(0)
	tree, err := fileutil.Load(treePath)
	if err != nil {
		return err
	}

	var opts []serializer.Option
	if flags.indent != "" {
		opts = append(opts, serializer.WithIndent(flags.indent))
	}

	result, err := serializer.Marshal(tree, opts...)
	if err != nil {
		return fmt.Errorf("serializing tree: %w", err)
	}

	data := []byte(result.JSON)
	data = append(data, '\n')

	if flags.output != "" {
		if err := validateOutputPath(flags.output, treePath); err != nil {
			return err
		}
		if err := os.WriteFile(flags.output, data, fileutil.OwnerReadWrite); err != nil {
			return fmt.Errorf("writing output file: %w", err)
		}
	} else {
		_, _ = os.Stdout.Write(data)
	}

	if result.Optimized {
		fmt.Fprintf(os.Stderr, "✓ %s\n", result.Validation.Summary)
	} else {
		fmt.Fprintf(os.Stderr, "⚠ %s\n", result.Validation.Summary)
	}

	return nil
}

// benchFlags contains flags for the bench command
type benchFlags struct {
	iterations int
}

func setupBenchFlags() (*flag.FlagSet, *benchFlags) {
	fs := flag.NewFlagSet("bench", flag.ContinueOnError)
	flags := &benchFlags{}

	fs.IntVar(&flags.iterations, "iterations", serializer.DefaultIterations, "number of serialization calls to time")

	fs.Usage = func() {
		_, _ = fmt.Fprintf(fs.Output(), "Usage: fastpath bench [flags] <file>\n\n")
		_, _ = fmt.Fprintf(fs.Output(), "Benchmark JSON serialization of a document.\n\n")
		_, _ = fmt.Fprintf(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		_, _ = fmt.Fprintf(fs.Output(), "\nExamples:\n")
		_, _ = fmt.Fprintf(fs.Output(), "  fastpath bench tree.json\n")
		_, _ = fmt.Fprintf(fs.Output(), "  fastpath bench --iterations 50000 tree.json\n")
	}

	return fs, flags
}

func handleBench(args []string) error {
	fs, flags := setupBenchFlags()

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("bench command requires exactly one file path")
	}

	treePath := fs.Arg(0)
	tree, err := fileutil.Load(treePath)
	if err != nil {
		return err
	}

	result, err := serializer.Benchmark(tree, flags.iterations)
	if err != nil {
		return fmt.Errorf("benchmarking tree: %w", err)
	}

	p := message.NewPrinter(language.English)
	cliutil.Writef(os.Stdout, "JSON Serialization Benchmark\n")
	cliutil.Writef(os.Stdout, "============================\n\n")
	cliutil.Writef(os.Stdout, "fastpath version: %s\n", fastpath.Version())
	cliutil.Writef(os.Stdout, "Input: %s\n", treePath)
	cliutil.Writef(os.Stdout, "%s", p.Sprintf("Iterations: %d\n", result.Iterations))
	cliutil.Writef(os.Stdout, "Total Time: %v\n", result.TotalTime)
	cliutil.Writef(os.Stdout, "Average: %v/op\n", result.AverageTime)
	cliutil.Writef(os.Stdout, "%s", p.Sprintf("Throughput: %.0f ops/sec\n\n", result.OpsPerSecond))

	if result.Validation.IsOptimized {
		cliutil.Writef(os.Stdout, "✓ %s\n", result.Validation.Summary)
	} else {
		cliutil.Writef(os.Stdout, "⚠ %s\n", result.Validation.Summary)
	}

	return nil
}

func handleMCP() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return mcpserver.Run(ctx)
}

// validateOutputPath checks that writing to outputPath will not clobber
// the input document.
func validateOutputPath(outputPath, inputPath string) error {
	absOutput, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("invalid output path: %w", err)
	}
	absInput, err := filepath.Abs(inputPath)
	if err != nil {
		return fmt.Errorf("invalid input path %s: %w", inputPath, err)
	}
	if absOutput == absInput {
		return fmt.Errorf("output file %s would overwrite input file %s", outputPath, inputPath)
	}
	if _, err := os.Stat(outputPath); err == nil {
		fmt.Fprintf(os.Stderr, "Warning: output file %s already exists and will be overwritten\n", outputPath)
	}
	return nil
}

// commandNames are the commands eligible for typo suggestions.
var commandNames = []string{"validate", "optimize", "stringify", "bench", "mcp", "version", "help"}

// suggestCommand returns the closest known command within edit distance 2,
// or the empty string when nothing is close enough.
func suggestCommand(input string) string {
	best := ""
	bestDist := 3
	for _, name := range commandNames {
		if d := levenshtein(input, name); d < bestDist {
			best = name
			bestDist = d
		}
	}
	return best
}

// levenshtein computes the edit distance between two strings.
func levenshtein(a, b string) int {
	if a == b {
		return 0
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func printUsage() {
	fmt.Println(`fastpath - JSON Serialization Fast-Path Tools

Usage:
  fastpath <command> [options]

Commands:
  validate    Check a JSON or YAML document for serialization fast-path blockers
  optimize    Rewrite a document without canonical integer map keys
  stringify   Serialize a document to JSON with diagnostics
  bench       Benchmark JSON serialization of a document
  mcp         Start the MCP server over stdio
  version     Show version information
  help        Show this help message

Examples:
  fastpath validate tree.json
  fastpath validate --no-warnings large-tree.yaml
  fastpath optimize -o pruned.json tree.json
  fastpath stringify --indent '  ' tree.yaml
  fastpath bench --iterations 50000 tree.json

Run 'fastpath <command> --help' for more information on a command.`)
}

package validator

import (
	"reflect"
	"time"

	"github.com/jsontools/fastpath/internal/impact"
	"github.com/jsontools/fastpath/internal/warnings"
)

// Impact indicates how much a detected shape slows down serialization
type Impact = impact.Impact

const (
	// ImpactHigh indicates a shape that blocks the fast path entirely
	ImpactHigh = impact.ImpactHigh
	// ImpactMedium indicates a shape that degrades performance
	ImpactMedium = impact.ImpactMedium
	// ImpactLow indicates a shape with minor traversal cost
	ImpactLow = impact.ImpactLow
)

// Warning type identifiers reported by this package.
const (
	WarningReplacer          = warnings.TypeReplacer
	WarningSpace             = warnings.TypeSpace
	WarningCustomMarshaler   = warnings.TypeCustomMarshaler
	WarningPointerMarshaler  = warnings.TypePointerMarshaler
	WarningIndexedProperties = warnings.TypeIndexedProperties
	WarningNonStringKeys     = warnings.TypeNonStringKeys
	WarningHiddenFields      = warnings.TypeHiddenFields
)

const (
	// DefaultMaxDepth is the default traversal depth limit, protecting
	// against stack exhaustion on pathologically deep trees.
	DefaultMaxDepth = 100

	// defaultWarningCapacity is the initial capacity for warning slices
	defaultWarningCapacity = 8

	// rootPath is the path assigned to the root node of every tree
	rootPath = "root"
)

// Warning represents a single fast-path issue
type Warning = warnings.Warning

// Replacer substitutes values before serialization, mirroring the replacer
// argument of text serializers. It receives the key of the value within its
// parent ("" for the root) and returns the replacement value.
type Replacer func(key string, value any) any

// Result contains the results of validating a value tree
type Result struct {
	// IsOptimized is true if no warnings fired at all
	IsOptimized bool
	// CanUseFastPath is true if no high-impact warnings fired;
	// medium and low warnings do not block the fast path
	CanUseFastPath bool
	// Warnings contains all fast-path warnings in firing order
	Warnings []Warning
	// Summary is a one-line human-readable breakdown of the warnings
	Summary string
	// HighCount is the number of high-impact warnings
	HighCount int
	// MediumCount is the number of medium-impact warnings
	MediumCount int
	// LowCount is the number of low-impact warnings
	LowCount int
	// ValidateTime is the time taken by the traversal
	ValidateTime time.Duration
}

// Validator walks value trees and accumulates fast-path warnings.
// A Validator carries no per-call state and is safe for concurrent use.
type Validator struct {
	// StrictMode is reserved for future strictness tiers. It is currently
	// a documented no-op: no rule consults it yet.
	StrictMode bool
	// MaxDepth is the traversal depth limit. Values <= 0 fall back to
	// DefaultMaxDepth.
	MaxDepth int
}

// New creates a new Validator instance with default settings
func New() *Validator {
	return &Validator{
		StrictMode: false,
		MaxDepth:   DefaultMaxDepth,
	}
}

// Validate walks tree with a default Validator and returns the result.
// It is shorthand for New().Validate(tree, opts...).
func Validate(tree any, opts ...Option) (*Result, error) {
	return New().Validate(tree, opts...)
}

// Validate walks tree, applying every detector rule at every node, and
// returns the accumulated warnings with an impact-bucketed summary.
//
// The two call-level rules (replacer, space) fire before traversal begins.
// Per-node rules fire at every node including the root, in a fixed order.
// Any input shape is accepted; unknown kinds simply produce no warnings.
//
// The returned error is non-nil only for reference cycles
// (fperrors.ErrCycle) and trees deeper than MaxDepth
// (fperrors.ErrResourceLimit).
func (v *Validator) Validate(tree any, opts ...Option) (*Result, error) {
	cfg := applyOptions(opts...)
	start := time.Now()

	st := &walkState{
		warnings: make([]Warning, 0, defaultWarningCapacity),
		maxDepth: v.MaxDepth,
		onPath:   make(map[nodeIdentity]bool),
	}
	if st.maxDepth <= 0 {
		st.maxDepth = DefaultMaxDepth
	}

	// Call-level rules fire exactly once, before traversal.
	if cfg.replacer != nil {
		st.add(Warning{
			Type:       WarningReplacer,
			Message:    "replacer function forces the slow path for every node",
			Impact:     ImpactHigh,
			Suggestion: "pre-transform the tree instead of passing a replacer",
		})
	}
	if cfg.indent != "" {
		st.add(Warning{
			Type:       WarningSpace,
			Message:    "indentation forces the slow path for every node",
			Impact:     ImpactHigh,
			Suggestion: "serialize compact output and pretty-print only for display",
		})
	}

	if err := st.walk(reflect.ValueOf(tree), rootPath, 0); err != nil {
		return nil, err
	}

	result := &Result{
		Warnings:     st.warnings,
		Summary:      buildSummary(st.warnings),
		ValidateTime: time.Since(start),
	}
	for _, w := range st.warnings {
		switch w.Impact {
		case ImpactHigh:
			result.HighCount++
		case ImpactMedium:
			result.MediumCount++
		case ImpactLow:
			result.LowCount++
		}
	}
	result.IsOptimized = len(st.warnings) == 0
	result.CanUseFastPath = result.HighCount == 0
	return result, nil
}

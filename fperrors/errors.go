// Package fperrors provides structured error types for fastpath.
//
// These error types enable programmatic error handling via errors.Is() and
// errors.As(), allowing callers to distinguish between different categories
// of errors and implement appropriate recovery strategies.
//
// # Error Categories
//
//   - CycleError: A reference cycle was found in the value tree
//   - ResourceLimitError: Resource exhaustion (traversal depth limit)
//   - ArgumentError: Invalid arguments to a public operation
//
// # Usage with errors.As
//
//	result, err := validator.Validate(tree)
//	if err != nil {
//	    var cycleErr *fperrors.CycleError
//	    if errors.As(err, &cycleErr) {
//	        fmt.Println("cycle at", cycleErr.Path)
//	    }
//	}
package fperrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
// These allow quick checks without type assertions.
var (
	// ErrCycle indicates a reference cycle was detected in the value tree.
	ErrCycle = errors.New("cycle detected")

	// ErrResourceLimit indicates a resource limit was exceeded.
	ErrResourceLimit = errors.New("resource limit exceeded")

	// ErrArgument indicates an invalid argument was supplied.
	ErrArgument = errors.New("invalid argument")
)

// CycleError represents a reference cycle found while walking a value tree.
// The native serializer would fail on such a tree; the validator reports it
// as a typed error instead of recursing without bound.
type CycleError struct {
	// Path is the tree path at which the cycle closed (e.g. "root.self")
	Path string
	// Message provides additional context about the cycle
	Message string
}

// Error returns a human-readable error message.
func (e *CycleError) Error() string {
	msg := "cycle detected"
	if e.Path != "" {
		msg += " at " + e.Path
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Unwrap returns nil as CycleError has no underlying cause.
func (e *CycleError) Unwrap() error {
	return nil
}

// Is reports whether target matches this error type.
func (e *CycleError) Is(target error) bool {
	return target == ErrCycle
}

// ResourceLimitError represents a resource exhaustion condition.
// This occurs when traversal exceeds configured limits.
type ResourceLimitError struct {
	// ResourceType identifies what limit was exceeded.
	// Common values: "traversal_depth", "iterations"
	ResourceType string
	// Limit is the configured maximum value
	Limit int64
	// Actual is the value that exceeded the limit (may be 0 if unknown)
	Actual int64
	// Path is the tree path at which the limit was hit (may be empty)
	Path string
}

// Error returns a human-readable error message.
func (e *ResourceLimitError) Error() string {
	msg := "resource limit exceeded"
	if e.ResourceType != "" {
		msg += ": " + e.ResourceType
	}
	if e.Limit > 0 {
		msg += fmt.Sprintf(" (limit: %d", e.Limit)
		if e.Actual > 0 {
			msg += fmt.Sprintf(", actual: %d", e.Actual)
		}
		msg += ")"
	}
	if e.Path != "" {
		msg += " at " + e.Path
	}
	return msg
}

// Unwrap returns nil as ResourceLimitError has no underlying cause.
func (e *ResourceLimitError) Unwrap() error {
	return nil
}

// Is reports whether target matches this error type.
func (e *ResourceLimitError) Is(target error) bool {
	return target == ErrResourceLimit
}

// ArgumentError represents an invalid argument to a public operation,
// such as a non-positive benchmark iteration count.
type ArgumentError struct {
	// Name is the name of the problematic argument
	Name string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes why the argument is invalid
	Message string
}

// Error returns a human-readable error message.
func (e *ArgumentError) Error() string {
	msg := "invalid argument"
	if e.Name != "" {
		msg += " " + e.Name
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Unwrap returns nil as ArgumentError has no underlying cause.
func (e *ArgumentError) Unwrap() error {
	return nil
}

// Is reports whether target matches this error type.
func (e *ArgumentError) Is(target error) bool {
	return target == ErrArgument
}

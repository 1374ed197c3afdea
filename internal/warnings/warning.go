// Package warnings provides the unified warning type shared by the
// validator and serializer packages.
package warnings

import (
	"fmt"

	"github.com/jsontools/fastpath/internal/impact"
)

// Warning type identifiers. The first two fire once per call; the rest fire
// per node during traversal.
const (
	// TypeReplacer fires when a replacer function is supplied to the call.
	TypeReplacer = "replacer"
	// TypeSpace fires when an indent string is supplied to the call.
	TypeSpace = "space"
	// TypeCustomMarshaler fires when a node's type implements
	// json.Marshaler or encoding.TextMarshaler.
	TypeCustomMarshaler = "custom-marshaler"
	// TypePointerMarshaler fires when only the node's pointer type
	// implements a marshaling interface.
	TypePointerMarshaler = "pointer-marshaler"
	// TypeIndexedProperties fires when a string-keyed map has keys that
	// look like canonical array indices.
	TypeIndexedProperties = "indexed-properties"
	// TypeNonStringKeys fires when a map's key type is not string.
	TypeNonStringKeys = "non-string-keys"
	// TypeHiddenFields fires when a struct has fields the encoder must skip.
	TypeHiddenFields = "hidden-fields"
)

// Warning represents a single fast-path issue found during validation.
// Warnings are immutable once created and purely advisory: they never abort
// a traversal.
type Warning struct {
	// Type is the warning type identifier (e.g. "indexed-properties")
	Type string
	// Path locates the offending node (e.g. "root.items[3]").
	// Empty for call-level warnings such as replacer and space.
	Path string
	// Message is a human-readable description of the issue
	Message string
	// Impact indicates how much the shape slows down serialization
	Impact impact.Impact
	// Suggestion describes how to remove the shape (optional)
	Suggestion string
}

// String returns a formatted string representation of the warning.
// Uses different symbols based on impact tier:
// - "✗" for high impact
// - "⚠" for medium impact
// - "ℹ" for low impact
func (w Warning) String() string {
	var symbol string
	switch w.Impact {
	case impact.ImpactHigh:
		symbol = "✗"
	case impact.ImpactMedium:
		symbol = "⚠"
	case impact.ImpactLow:
		symbol = "ℹ"
	default:
		symbol = "?"
	}

	var result string
	if w.Path != "" {
		result = fmt.Sprintf("%s [%s] %s: %s", symbol, w.Type, w.Path, w.Message)
	} else {
		result = fmt.Sprintf("%s [%s] %s", symbol, w.Type, w.Message)
	}

	if w.Suggestion != "" {
		result += fmt.Sprintf("\n    Suggestion: %s", w.Suggestion)
	}

	return result
}

// Package impact provides impact tier constants and utilities for warnings
// reported by the validator, optimizer, and serializer packages.
//
// All three impact tiers are exported by each public package that uses them:
//   - ImpactHigh: Shapes that block the serializer fast path entirely
//   - ImpactMedium: Shapes that degrade performance without blocking
//   - ImpactLow: Shapes that cost traversal time but little else
//
// The impact tiers are ordered from most to least severe:
// High > Medium > Low
package impact

// Impact indicates how much a detected shape slows down serialization.
type Impact int

const (
	// ImpactHigh indicates a shape that forces the serializer off its
	// fast path unconditionally (custom marshalers, replacers, indentation).
	ImpactHigh Impact = iota

	// ImpactMedium indicates a shape that degrades serialization performance
	// without blocking the fast path (indexed map keys).
	ImpactMedium

	// ImpactLow indicates a shape with minor traversal cost
	// (non-string map keys, hidden struct fields).
	ImpactLow
)

// String returns the string representation of the impact tier.
func (i Impact) String() string {
	switch i {
	case ImpactHigh:
		return "high"
	case ImpactMedium:
		return "medium"
	case ImpactLow:
		return "low"
	default:
		return "unknown"
	}
}

// BlocksFastPath reports whether warnings of this tier prevent the
// serializer from using its fast path at all.
func (i Impact) BlocksFastPath() bool {
	return i == ImpactHigh
}

package validator

import "fmt"

// SummaryOptimized is the fixed summary for a result with no warnings.
const SummaryOptimized = "Fully optimized: no serialization fast-path issues found"

// buildSummary reduces a warning list to a one-line count breakdown,
// bucketed by impact in the fixed order high, medium, low.
func buildSummary(ws []Warning) string {
	if len(ws) == 0 {
		return SummaryOptimized
	}
	var high, medium, low int
	for _, w := range ws {
		switch w.Impact {
		case ImpactHigh:
			high++
		case ImpactMedium:
			medium++
		case ImpactLow:
			low++
		}
	}
	return fmt.Sprintf("Found %d issue(s): %d high, %d medium, %d low impact",
		len(ws), high, medium, low)
}

package serializer

import (
	"encoding/json"
	"time"

	"github.com/jsontools/fastpath/fperrors"
	"github.com/jsontools/fastpath/validator"
)

// DefaultIterations is the iteration count used when a caller has no
// specific budget in mind.
const DefaultIterations = 1000

// BenchmarkResult holds the timing of repeated serializer calls on one
// tree, plus one validation result for context.
type BenchmarkResult struct {
	// Iterations is the number of serializer calls that were timed
	Iterations int
	// TotalTime is the wall time across all iterations
	TotalTime time.Duration
	// AverageTime is TotalTime / Iterations
	AverageTime time.Duration
	// OpsPerSecond is the serialization throughput. TotalTime is clamped
	// to a nanosecond before the division so the value stays finite.
	OpsPerSecond float64
	// Validation is the result of validating tree once, with no
	// replacer or indent
	Validation *validator.Result
}

// Benchmark times iterations consecutive encoding/json calls on tree,
// discarding the output each time, using the monotonic clock.
//
// iterations must be positive; otherwise a *fperrors.ArgumentError is
// returned. Serialization failures propagate unchanged, as do validation
// errors for cyclic or over-deep trees.
func Benchmark(tree any, iterations int) (*BenchmarkResult, error) {
	if iterations <= 0 {
		return nil, &fperrors.ArgumentError{
			Name:    "iterations",
			Value:   iterations,
			Message: "must be positive",
		}
	}

	validation, err := validator.Validate(tree)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	for range iterations {
		if _, err := json.Marshal(tree); err != nil {
			return nil, err
		}
	}
	total := time.Since(start)

	clamped := total
	if clamped <= 0 {
		clamped = time.Nanosecond
	}

	return &BenchmarkResult{
		Iterations:   iterations,
		TotalTime:    total,
		AverageTime:  total / time.Duration(iterations),
		OpsPerSecond: float64(iterations) / clamped.Seconds(),
		Validation:   validation,
	}, nil
}

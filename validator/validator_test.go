package validator

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsontools/fastpath/fperrors"
)

// stamp implements json.Marshaler on the value receiver.
type stamp struct{}

func (stamp) MarshalJSON() ([]byte, error) { return []byte(`"stamp"`), nil }

// ticket implements json.Marshaler on the pointer receiver only.
type ticket struct{ ID int }

func (*ticket) MarshalJSON() ([]byte, error) { return []byte(`"ticket"`), nil }

// label implements encoding.TextMarshaler on the value receiver.
type label string

func (l label) MarshalText() ([]byte, error) { return []byte(l), nil }

// TestValidatorNew tests the New constructor
func TestValidatorNew(t *testing.T) {
	v := New()
	require.NotNil(t, v)
	assert.False(t, v.StrictMode, "StrictMode should default to false")
	assert.Equal(t, DefaultMaxDepth, v.MaxDepth)
}

// TestValidateOptimized tests that a plain tree produces a clean result
func TestValidateOptimized(t *testing.T) {
	tree := map[string]any{
		"name":  "widget",
		"count": 3,
		"tags":  []any{"a", "b"},
		"meta":  map[string]any{"active": true, "score": 1.5},
		"empty": nil,
	}

	result, err := Validate(tree)
	require.NoError(t, err)

	assert.True(t, result.IsOptimized)
	assert.True(t, result.CanUseFastPath)
	assert.Empty(t, result.Warnings)
	assert.Equal(t, SummaryOptimized, result.Summary)
	assert.Zero(t, result.HighCount)
	assert.Zero(t, result.MediumCount)
	assert.Zero(t, result.LowCount)
}

// TestValidateLeaves tests that primitive roots terminate without warnings
func TestValidateLeaves(t *testing.T) {
	leaves := []any{nil, "text", 42, 3.14, true, false}

	for _, leaf := range leaves {
		t.Run(fmt.Sprintf("%v", leaf), func(t *testing.T) {
			result, err := Validate(leaf)
			require.NoError(t, err)
			assert.True(t, result.IsOptimized)
			assert.Empty(t, result.Warnings)
		})
	}
}

// TestValidateReplacer tests the call-level replacer rule
func TestValidateReplacer(t *testing.T) {
	repl := func(key string, value any) any { return value }

	result, err := Validate(map[string]any{"x": 1}, WithReplacer(repl))
	require.NoError(t, err)

	require.Len(t, result.Warnings, 1)
	w := result.Warnings[0]
	assert.Equal(t, WarningReplacer, w.Type)
	assert.Equal(t, ImpactHigh, w.Impact)
	assert.Empty(t, w.Path, "call-level warnings carry no path")
	assert.False(t, result.CanUseFastPath)
	assert.False(t, result.IsOptimized)
}

// TestValidateIndent tests the call-level space rule
func TestValidateIndent(t *testing.T) {
	result, err := Validate(map[string]any{"x": 1}, WithIndent("  "))
	require.NoError(t, err)

	require.Len(t, result.Warnings, 1)
	assert.Equal(t, WarningSpace, result.Warnings[0].Type)
	assert.Equal(t, ImpactHigh, result.Warnings[0].Impact)
	assert.False(t, result.CanUseFastPath)

	// An empty indent means compact output and fires nothing.
	clean, err := Validate(map[string]any{"x": 1}, WithIndent(""))
	require.NoError(t, err)
	assert.True(t, clean.IsOptimized)
}

// TestValidateReplacerAndIndent tests that both call-level rules fire together
func TestValidateReplacerAndIndent(t *testing.T) {
	repl := func(key string, value any) any { return value }

	result, err := Validate("leaf", WithReplacer(repl), WithIndent("\t"))
	require.NoError(t, err)

	require.Len(t, result.Warnings, 2)
	assert.Equal(t, WarningReplacer, result.Warnings[0].Type)
	assert.Equal(t, WarningSpace, result.Warnings[1].Type)
	assert.Equal(t, 2, result.HighCount)
}

// TestValidateIndexedProperties tests the indexed key rule on maps vs slices
func TestValidateIndexedProperties(t *testing.T) {
	tree := map[string]any{
		"data": map[string]any{"0": "a", "1": "b", "name": "x"},
	}

	result, err := Validate(tree)
	require.NoError(t, err)

	require.Len(t, result.Warnings, 1, "one warning per offending node")
	w := result.Warnings[0]
	assert.Equal(t, WarningIndexedProperties, w.Type)
	assert.Equal(t, ImpactMedium, w.Impact)
	assert.Equal(t, "root.data", w.Path)
	assert.Contains(t, w.Message, `"0"`)
	assert.Contains(t, w.Message, `"1"`)
	assert.True(t, result.CanUseFastPath, "medium impact does not block the fast path")
	assert.False(t, result.IsOptimized)

	// The same values as an ordered sequence fire nothing.
	arr, err := Validate(map[string]any{"data": []any{"a", "b"}})
	require.NoError(t, err)
	assert.True(t, arr.IsOptimized)
}

// TestValidateNonCanonicalKeys tests that only canonical index keys fire
func TestValidateNonCanonicalKeys(t *testing.T) {
	tree := map[string]any{"00": 1, "1e2": 2, "-1": 3, "x": 4}

	result, err := Validate(tree)
	require.NoError(t, err)
	assert.True(t, result.IsOptimized, "non-canonical numeric-ish keys are plain keys")
}

// TestValidateCustomMarshaler tests detection of marshaler hooks on the value type
func TestValidateCustomMarshaler(t *testing.T) {
	tests := []struct {
		name     string
		tree     any
		wantType string
		wantPath string
		wantMsg  string
	}{
		{
			name:     "json.Marshaler at root",
			tree:     stamp{},
			wantType: WarningCustomMarshaler,
			wantPath: "root",
			wantMsg:  "json.Marshaler",
		},
		{
			name:     "json.Marshaler nested",
			tree:     map[string]any{"created": time.Now()},
			wantType: WarningCustomMarshaler,
			wantPath: "root.created",
			wantMsg:  "json.Marshaler",
		},
		{
			name:     "TextMarshaler nested",
			tree:     map[string]any{"tag": label("x")},
			wantType: WarningCustomMarshaler,
			wantPath: "root.tag",
			wantMsg:  "encoding.TextMarshaler",
		},
		{
			name:     "pointer-receiver hook on value node",
			tree:     map[string]any{"t": ticket{ID: 1}},
			wantType: WarningPointerMarshaler,
			wantPath: "root.t",
			wantMsg:  "json.Marshaler",
		},
		{
			name:     "pointer-receiver hook through pointer node",
			tree:     map[string]any{"t": &ticket{ID: 1}},
			wantType: WarningCustomMarshaler,
			wantPath: "root.t",
			wantMsg:  "json.Marshaler",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Validate(tt.tree)
			require.NoError(t, err)

			require.Len(t, result.Warnings, 1)
			w := result.Warnings[0]
			assert.Equal(t, tt.wantType, w.Type)
			assert.Equal(t, tt.wantPath, w.Path)
			assert.Equal(t, ImpactHigh, w.Impact)
			assert.Contains(t, w.Message, tt.wantMsg)
			assert.False(t, result.CanUseFastPath)
		})
	}
}

// TestValidateNonStringKeys tests the non-string key rule
func TestValidateNonStringKeys(t *testing.T) {
	tree := map[string]any{
		"scores": map[int]string{1: "a", 2: "b"},
	}

	result, err := Validate(tree)
	require.NoError(t, err)

	require.Len(t, result.Warnings, 1)
	w := result.Warnings[0]
	assert.Equal(t, WarningNonStringKeys, w.Type)
	assert.Equal(t, ImpactLow, w.Impact)
	assert.Equal(t, "root.scores", w.Path)
	assert.Contains(t, w.Message, "int")
	assert.True(t, result.CanUseFastPath)
}

// TestValidateHiddenFields tests the hidden struct field rule
func TestValidateHiddenFields(t *testing.T) {
	type record struct {
		Name   string `json:"name"`
		Secret string `json:"-"`
		note   string //nolint:unused // exercised via reflection
	}

	result, err := Validate(record{Name: "x"})
	require.NoError(t, err)

	require.Len(t, result.Warnings, 1)
	w := result.Warnings[0]
	assert.Equal(t, WarningHiddenFields, w.Type)
	assert.Equal(t, ImpactLow, w.Impact)
	assert.Equal(t, "root", w.Path)
	assert.Contains(t, w.Message, "Secret")
	assert.Contains(t, w.Message, "note")
	assert.NotContains(t, w.Message, "Name")
	assert.True(t, result.CanUseFastPath)
}

// TestValidateStructPaths tests that struct traversal uses json tag names
func TestValidateStructPaths(t *testing.T) {
	type inner struct {
		Data map[string]any `json:"data"`
	}
	type outer struct {
		Inner inner `json:"inner"`
		Plain inner
	}

	tree := outer{
		Inner: inner{Data: map[string]any{"0": 1}},
		Plain: inner{Data: map[string]any{"7": 2}},
	}

	result, err := Validate(tree)
	require.NoError(t, err)

	require.Len(t, result.Warnings, 2)
	assert.Equal(t, "root.inner.data", result.Warnings[0].Path)
	assert.Equal(t, "root.Plain.data", result.Warnings[1].Path)
}

// TestValidateArrayPaths tests bracketed element paths
func TestValidateArrayPaths(t *testing.T) {
	tree := []any{
		map[string]any{"ok": true},
		map[string]any{"3": "x"},
	}

	result, err := Validate(tree)
	require.NoError(t, err)

	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "root[1]", result.Warnings[0].Path)
}

// TestValidateMultipleRulesPerNode tests that one node can trigger several rules
func TestValidateMultipleRulesPerNode(t *testing.T) {
	tree := map[string]any{
		"0":       "indexed",
		"created": time.Now(),
	}

	result, err := Validate(tree, WithIndent("  "))
	require.NoError(t, err)

	// space (call), indexed-properties (root), custom-marshaler (root.created)
	require.Len(t, result.Warnings, 3)
	assert.Equal(t, WarningSpace, result.Warnings[0].Type)
	assert.Equal(t, WarningIndexedProperties, result.Warnings[1].Type)
	assert.Equal(t, WarningCustomMarshaler, result.Warnings[2].Type)
	assert.Equal(t, "Found 3 issue(s): 2 high, 1 medium, 0 low impact", result.Summary)
}

// TestValidateFastPathInvariants tests the result invariants across shapes
func TestValidateFastPathInvariants(t *testing.T) {
	trees := []any{
		nil,
		"leaf",
		map[string]any{"a": 1},
		map[string]any{"0": 1},
		map[string]any{"t": time.Now()},
		map[int]string{1: "a"},
		[]any{map[string]any{"00": 1}},
	}

	for i, tree := range trees {
		t.Run(fmt.Sprintf("tree_%d", i), func(t *testing.T) {
			result, err := Validate(tree)
			require.NoError(t, err)

			assert.Equal(t, result.HighCount == 0, result.CanUseFastPath,
				"CanUseFastPath must hold exactly when no high-impact warnings fired")
			assert.Equal(t, len(result.Warnings) == 0, result.IsOptimized)
			if result.IsOptimized {
				assert.True(t, result.CanUseFastPath, "IsOptimized must imply CanUseFastPath")
			}
			assert.Equal(t, len(result.Warnings), result.HighCount+result.MediumCount+result.LowCount)
		})
	}
}

// TestValidateCycle tests that a self-referential tree returns a typed error
func TestValidateCycle(t *testing.T) {
	m := map[string]any{}
	m["self"] = m

	result, err := Validate(m)
	assert.Nil(t, result)
	require.Error(t, err)
	assert.True(t, errors.Is(err, fperrors.ErrCycle))

	var cycleErr *fperrors.CycleError
	require.True(t, errors.As(err, &cycleErr))
	assert.Equal(t, "root.self", cycleErr.Path)
}

// TestValidateSliceCycle tests cycle detection through a slice element
func TestValidateSliceCycle(t *testing.T) {
	s := []any{nil}
	s[0] = s

	_, err := Validate(s)
	require.Error(t, err)
	assert.True(t, errors.Is(err, fperrors.ErrCycle))
}

// TestValidateSharedNodeIsNotCycle tests that DAG sharing is allowed
func TestValidateSharedNodeIsNotCycle(t *testing.T) {
	shared := map[string]any{"v": 1}
	tree := map[string]any{"a": shared, "b": shared}

	result, err := Validate(tree)
	require.NoError(t, err)
	assert.True(t, result.IsOptimized)
}

// TestValidateDepthLimit tests the traversal depth guard
func TestValidateDepthLimit(t *testing.T) {
	deep := map[string]any{}
	node := deep
	for range 150 {
		next := map[string]any{}
		node["n"] = next
		node = next
	}

	_, err := Validate(deep)
	require.Error(t, err)
	assert.True(t, errors.Is(err, fperrors.ErrResourceLimit))

	var limitErr *fperrors.ResourceLimitError
	require.True(t, errors.As(err, &limitErr))
	assert.Equal(t, "traversal_depth", limitErr.ResourceType)
	assert.EqualValues(t, DefaultMaxDepth, limitErr.Limit)

	// A custom limit takes effect.
	v := New()
	v.MaxDepth = 200
	result, err := v.Validate(deep)
	require.NoError(t, err)
	assert.True(t, result.IsOptimized)
}

// TestValidateMaxDepthFallback tests that a non-positive MaxDepth uses the default
func TestValidateMaxDepthFallback(t *testing.T) {
	v := &Validator{MaxDepth: 0}
	result, err := v.Validate(map[string]any{"a": map[string]any{"b": 1}})
	require.NoError(t, err)
	assert.True(t, result.IsOptimized)
}

// TestValidateConcurrent tests that a shared Validator is safe for
// concurrent calls: each call keeps its own accumulator.
func TestValidateConcurrent(t *testing.T) {
	v := New()
	clean := map[string]any{"a": 1}
	dirty := map[string]any{"0": 1}

	var wg sync.WaitGroup
	for i := range 32 {
		wg.Add(1)
		go func(dirtyRun bool) {
			defer wg.Done()
			tree := clean
			if dirtyRun {
				tree = dirty
			}
			result, err := v.Validate(tree)
			assert.NoError(t, err)
			assert.Equal(t, !dirtyRun, result.IsOptimized)
			assert.Equal(t, dirtyRun, result.MediumCount == 1)
		}(i%2 == 0)
	}
	wg.Wait()
}

// TestValidateTimeRecorded tests that the traversal duration is captured
func TestValidateTimeRecorded(t *testing.T) {
	result, err := Validate(map[string]any{"a": 1})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, result.ValidateTime, time.Duration(0))
}

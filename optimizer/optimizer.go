// Package optimizer provides a best-effort structural rewrite that removes
// fast-path-hostile shapes from a value tree.
//
// The current transform addresses exactly one warning class: canonical
// integer-looking keys in string-keyed maps (the validator's
// indexed-properties rule). Offending keys are omitted from the rebuilt map
// and each omission is reported through the configured slog logger. The
// transform is lossy by design.
//
// It does not remove custom marshaler hooks, hidden struct fields, or
// non-string key types: those are properties of the value's type, not of
// the tree, so a structural copy cannot shed them.
//
// Optimize never fails. Maps and slices are rebuilt with their original
// types; structs, pointers, and primitives pass through unchanged. Cycles
// and over-deep branches degrade to returning the node as-is.
package optimizer

import (
	"log/slog"
	"reflect"
	"strconv"

	"github.com/jsontools/fastpath/internal/keyutil"
)

const (
	// DefaultMaxDepth bounds the rewrite depth. Branches beyond the limit
	// are kept as-is rather than rebuilt.
	DefaultMaxDepth = 100

	// rootPath is the path assigned to the root node
	rootPath = "root"
)

// Optimizer rebuilds value trees without indexed map keys.
// An Optimizer carries no per-call state and is safe for concurrent use.
type Optimizer struct {
	// Logger receives one notice per dropped key. Nil falls back to
	// slog.Default().
	Logger *slog.Logger
	// MaxDepth is the rewrite depth limit. Values <= 0 fall back to
	// DefaultMaxDepth.
	MaxDepth int
}

// New creates a new Optimizer instance with default settings
func New() *Optimizer {
	return &Optimizer{
		Logger:   slog.Default(),
		MaxDepth: DefaultMaxDepth,
	}
}

// Optimize rewrites tree with a default Optimizer.
// It is shorthand for New().Optimize(tree).
func Optimize(tree any) any {
	return New().Optimize(tree)
}

// Optimize returns a structural copy of tree with canonical integer keys
// pruned from every descended string-keyed map. The input is never
// modified. The result always has the same broad shape as the input.
func (o *Optimizer) Optimize(tree any) any {
	st := &rewriteState{
		logger:   o.Logger,
		maxDepth: o.MaxDepth,
		onPath:   make(map[uintptr]bool),
	}
	if st.logger == nil {
		st.logger = slog.Default()
	}
	if st.maxDepth <= 0 {
		st.maxDepth = DefaultMaxDepth
	}

	out := st.rewrite(reflect.ValueOf(tree), rootPath, 0)
	if !out.IsValid() {
		return nil
	}
	return out.Interface()
}

// rewriteState is the per-call state of one Optimize invocation.
type rewriteState struct {
	logger   *slog.Logger
	maxDepth int
	// onPath tracks map and slice headers on the current descent path so
	// a cyclic tree terminates instead of recursing forever.
	onPath map[uintptr]bool
}

// rewrite returns a copy of val with indexed keys pruned, or val itself
// for shapes the transform leaves alone.
func (st *rewriteState) rewrite(val reflect.Value, path string, depth int) reflect.Value {
	if !val.IsValid() || depth > st.maxDepth {
		return val
	}

	switch val.Kind() {
	case reflect.Interface:
		if val.IsNil() {
			return val
		}
		return st.rewrite(val.Elem(), path, depth)

	case reflect.Map:
		if val.IsNil() || st.onPath[val.Pointer()] {
			return val
		}
		st.onPath[val.Pointer()] = true
		defer delete(st.onPath, val.Pointer())
		return st.rewriteMap(val, path, depth)

	case reflect.Slice:
		if val.IsNil() || st.onPath[val.Pointer()] {
			return val
		}
		st.onPath[val.Pointer()] = true
		defer delete(st.onPath, val.Pointer())
		return st.rewriteElements(val, path, depth)

	case reflect.Array:
		return st.rewriteElements(val, path, depth)

	default:
		// Primitives pass through by value. Structs and pointers pass
		// through by reference: their shape is fixed by their type.
		return val
	}
}

// rewriteMap rebuilds a map of the same type, omitting canonical integer
// keys when the key type is string and logging each omission.
func (st *rewriteState) rewriteMap(val reflect.Value, path string, depth int) reflect.Value {
	stringKeyed := val.Type().Key().Kind() == reflect.String
	out := reflect.MakeMapWithSize(val.Type(), val.Len())

	iter := val.MapRange()
	for iter.Next() {
		k := iter.Key()
		if stringKeyed && keyutil.IsCanonicalIndex(k.String()) {
			st.logger.Info("dropping indexed key", "path", path, "key", k.String())
			continue
		}
		childPath := path
		if stringKeyed {
			childPath = path + "." + k.String()
		}
		out.SetMapIndex(k, st.rewrite(iter.Value(), childPath, depth+1))
	}
	return out
}

// rewriteElements rebuilds a slice or array of the same type element-wise.
func (st *rewriteState) rewriteElements(val reflect.Value, path string, depth int) reflect.Value {
	var out reflect.Value
	if val.Kind() == reflect.Slice {
		out = reflect.MakeSlice(val.Type(), val.Len(), val.Len())
	} else {
		out = reflect.New(val.Type()).Elem()
	}
	for i := range val.Len() {
		childPath := path + "[" + strconv.Itoa(i) + "]"
		out.Index(i).Set(st.rewrite(val.Index(i), childPath, depth+1))
	}
	return out
}

package validator

import (
	"encoding"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/jsontools/fastpath/fperrors"
	"github.com/jsontools/fastpath/internal/keyutil"
)

var (
	jsonMarshalerType = reflect.TypeOf((*json.Marshaler)(nil)).Elem()
	textMarshalerType = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
)

// nodeIdentity identifies a pointer-like node for cycle detection.
// The type is included because distinct values can share an address
// (a struct and its first field, a map header and its backing).
type nodeIdentity struct {
	ptr uintptr
	typ reflect.Type
}

// walkState is the per-call accumulator for one Validate invocation.
// Keeping it per call makes concurrent Validate calls on a shared
// Validator safe.
type walkState struct {
	warnings []Warning
	maxDepth int
	// onPath tracks pointer-like nodes on the current descent path.
	// Shared nodes reachable twice (DAGs) are fine; only a node that is
	// its own ancestor is a cycle.
	onPath map[nodeIdentity]bool
}

func (st *walkState) add(w Warning) {
	st.warnings = append(st.warnings, w)
}

// walk applies the per-node detector rules to val and recurses into its
// children. Primitive leaves, nils, and unknown kinds produce no warnings.
func (st *walkState) walk(val reflect.Value, path string, depth int) error {
	// Unwrap interface and pointer layers in place. Pointers are tracked
	// for cycle detection; the logical node keeps the same path. A hook
	// found on a pointer layer counts as the node's own hook.
	var hookType reflect.Type
	var hookIface string
	for val.IsValid() {
		k := val.Kind()
		if k != reflect.Interface && k != reflect.Pointer {
			break
		}
		if val.IsNil() {
			return nil
		}
		if k == reflect.Pointer {
			if hookIface == "" {
				hookType, hookIface = marshalerOn(val.Type())
			}
			id := nodeIdentity{ptr: val.Pointer(), typ: val.Type()}
			if st.onPath[id] {
				return &fperrors.CycleError{Path: path}
			}
			st.onPath[id] = true
			defer delete(st.onPath, id)
		}
		val = val.Elem()
	}
	if !val.IsValid() {
		return nil
	}

	if depth > st.maxDepth {
		return &fperrors.ResourceLimitError{
			ResourceType: "traversal_depth",
			Limit:        int64(st.maxDepth),
			Actual:       int64(depth),
			Path:         path,
		}
	}

	if hookIface == "" {
		hookType, hookIface = marshalerOn(val.Type())
	}
	if hookIface != "" {
		// The hook's substitute output governs this node, so the
		// remaining rules and the node's children are irrelevant.
		st.add(Warning{
			Type:       WarningCustomMarshaler,
			Path:       path,
			Message:    fmt.Sprintf("type %s implements %s", hookType, hookIface),
			Impact:     ImpactHigh,
			Suggestion: "replace the value with its plain marshaled form before serializing",
		})
		return nil
	}
	if pt := reflect.PointerTo(val.Type()); pt.Implements(jsonMarshalerType) || pt.Implements(textMarshalerType) {
		if _, iface := marshalerOn(pt); iface != "" {
			st.add(Warning{
				Type:       WarningPointerMarshaler,
				Path:       path,
				Message:    fmt.Sprintf("%s implements %s", pt, iface),
				Impact:     ImpactHigh,
				Suggestion: "replace the value with its plain marshaled form before serializing",
			})
			return nil
		}
	}

	switch val.Kind() {
	case reflect.Map:
		if val.IsNil() {
			return nil
		}
		id := nodeIdentity{ptr: val.Pointer(), typ: val.Type()}
		if st.onPath[id] {
			return &fperrors.CycleError{Path: path}
		}
		st.onPath[id] = true
		defer delete(st.onPath, id)

		st.checkMapKeys(val, path)
		return st.walkMapEntries(val, path, depth)

	case reflect.Slice:
		if val.IsNil() {
			return nil
		}
		id := nodeIdentity{ptr: val.Pointer(), typ: val.Type()}
		if st.onPath[id] {
			return &fperrors.CycleError{Path: path}
		}
		st.onPath[id] = true
		defer delete(st.onPath, id)

		return st.walkElements(val, path, depth)

	case reflect.Array:
		return st.walkElements(val, path, depth)

	case reflect.Struct:
		st.checkHiddenFields(val.Type(), path)
		return st.walkFields(val, path, depth)
	}

	// Primitive leaf: string, number, bool, chan, func, etc. Shapes the
	// serializer rejects outright (chan, func) are its business, not ours.
	return nil
}

// marshalerOn reports which marshaling interface t implements, if any.
// json.Marshaler wins over encoding.TextMarshaler when both are present,
// matching the precedence encoding/json gives them.
func marshalerOn(t reflect.Type) (reflect.Type, string) {
	switch {
	case t.Implements(jsonMarshalerType):
		return t, "json.Marshaler"
	case t.Implements(textMarshalerType):
		return t, "encoding.TextMarshaler"
	default:
		return nil, ""
	}
}

// checkMapKeys fires the indexed-properties rule for string-keyed maps with
// canonical integer keys, and the non-string-keys rule for maps whose key
// type is not a string.
func (st *walkState) checkMapKeys(val reflect.Value, path string) {
	keyType := val.Type().Key()
	if keyType.Kind() != reflect.String {
		st.add(Warning{
			Type:       WarningNonStringKeys,
			Path:       path,
			Message:    fmt.Sprintf("map key type %s is not string", keyType),
			Impact:     ImpactLow,
			Suggestion: "key the map by string to avoid key conversion during serialization",
		})
		return
	}

	var indexed []string
	iter := val.MapRange()
	for iter.Next() {
		if k := iter.Key().String(); keyutil.IsCanonicalIndex(k) {
			indexed = append(indexed, k)
		}
	}
	if len(indexed) == 0 {
		return
	}
	sort.Strings(indexed)
	st.add(Warning{
		Type:       WarningIndexedProperties,
		Path:       path,
		Message:    fmt.Sprintf("map has canonical index key(s): %s", keyutil.QuoteJoin(indexed)),
		Impact:     ImpactMedium,
		Suggestion: "use a slice for indexed data, or rename the keys",
	})
}

// checkHiddenFields fires the hidden-fields rule when a struct carries
// fields the encoder must skip: unexported fields and fields tagged
// with json:"-".
func (st *walkState) checkHiddenFields(t reflect.Type, path string) {
	var hidden []string
	for i := range t.NumField() {
		f := t.Field(i)
		if f.PkgPath != "" {
			hidden = append(hidden, f.Name)
			continue
		}
		if _, ok := jsonFieldName(f); !ok {
			hidden = append(hidden, f.Name)
		}
	}
	if len(hidden) == 0 {
		return
	}
	st.add(Warning{
		Type:       WarningHiddenFields,
		Path:       path,
		Message:    fmt.Sprintf("struct %s has hidden field(s): %s", t, strings.Join(hidden, ", ")),
		Impact:     ImpactLow,
		Suggestion: "drop the hidden fields from the tree or use a plain map",
	})
}

// walkMapEntries descends into every map value. String keys use dotted
// paths in sorted order, matching the order encoding/json emits them;
// other key types use bracketed paths sorted by their printed form.
func (st *walkState) walkMapEntries(val reflect.Value, path string, depth int) error {
	keys := val.MapKeys()
	if val.Type().Key().Kind() == reflect.String {
		sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
		for _, k := range keys {
			childPath := path + "." + k.String()
			if err := st.walk(val.MapIndex(k), childPath, depth+1); err != nil {
				return err
			}
		}
		return nil
	}

	sort.Slice(keys, func(i, j int) bool {
		return fmt.Sprint(keys[i].Interface()) < fmt.Sprint(keys[j].Interface())
	})
	for _, k := range keys {
		childPath := fmt.Sprintf("%s[%v]", path, k.Interface())
		if err := st.walk(val.MapIndex(k), childPath, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// walkElements descends into every element of a slice or array by index.
func (st *walkState) walkElements(val reflect.Value, path string, depth int) error {
	for i := range val.Len() {
		childPath := path + "[" + strconv.Itoa(i) + "]"
		if err := st.walk(val.Index(i), childPath, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// walkFields descends into every field the encoder would emit, using the
// json tag name when one is present.
func (st *walkState) walkFields(val reflect.Value, path string, depth int) error {
	t := val.Type()
	for i := range t.NumField() {
		f := t.Field(i)
		if f.PkgPath != "" {
			continue
		}
		name, ok := jsonFieldName(f)
		if !ok {
			continue
		}
		if err := st.walk(val.Field(i), path+"."+name, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// jsonFieldName returns the name encoding/json would use for the field and
// whether the field is emitted at all. A bare json:"-" tag marks the field
// skipped; json:"-," names the field "-".
func jsonFieldName(f reflect.StructField) (string, bool) {
	tag, ok := f.Tag.Lookup("json")
	if !ok {
		return f.Name, true
	}
	name, _, hasOpts := strings.Cut(tag, ",")
	if name == "-" && !hasOpts {
		return "", false
	}
	if name == "" {
		return f.Name, true
	}
	return name, true
}

package client

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Kinds of resources the master hands out.
const (
	KindInstance = "Instance"
	KindNode     = "Node"
	KindJob      = "Job"
	KindInfo     = "Info"
)

var (
	kindMu sync.Mutex
	kinds  = make(map[string]struct{})
)

// registerKind records a kind the first time it is seen. Re-registration
// is a no-op, so concurrent materializations of the same kind are safe.
func registerKind(kind string) {
	kindMu.Lock()
	defer kindMu.Unlock()
	if _, ok := kinds[kind]; ok {
		return
	}
	kinds[kind] = struct{}{}
}

// RegisteredKinds returns the kinds materialized so far, sorted.
func RegisteredKinds() []string {
	kindMu.Lock()
	defer kindMu.Unlock()
	out := make([]string, 0, len(kinds))
	for k := range kinds {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// normalizeField maps a wire field name to its addressable form. The
// master uses dots in compound field names (disk.size); those become
// underscores. Normalizing an already-normalized name changes nothing.
func normalizeField(name string) string {
	return strings.ReplaceAll(name, ".", "_")
}

// Resource is one API object materialized from a JSON response. The field
// set is whatever the master sent; the kind is a label, not a schema, and
// two resources of the same kind may carry different fields. A Resource is
// immutable once built and safe to share between goroutines.
type Resource struct {
	kind  string
	attrs *orderedmap.OrderedMap[string, any]
}

// Materialize builds a Resource of the given kind from a decoded JSON
// object. Field names are normalized; when two wire names collapse to the
// same normalized name, the later one in the document wins. Anything but
// an object is a ShapeError.
func Materialize(kind string, v any) (*Resource, error) {
	registerKind(kind)
	attrs := orderedmap.New[string, any]()
	switch obj := v.(type) {
	case *orderedmap.OrderedMap[string, any]:
		for pair := obj.Oldest(); pair != nil; pair = pair.Next() {
			attrs.Set(normalizeField(pair.Key), pair.Value)
		}
	case map[string]any:
		// Plain maps carry no document order; sorted keys keep collision
		// resolution deterministic.
		keys := make([]string, 0, len(obj))
		for k := range obj {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			attrs.Set(normalizeField(k), obj[k])
		}
	default:
		return nil, &ShapeError{Op: "materialize " + kind, Want: "object", Got: jsonTypeName(v)}
	}
	return &Resource{kind: kind, attrs: attrs}, nil
}

// MaterializeList materializes every element of a decoded JSON array,
// preserving order. Each element must be an object.
func MaterializeList(kind string, v any) ([]*Resource, error) {
	arr, ok := v.([]any)
	if !ok {
		return nil, &ShapeError{Op: "materialize " + kind + " list", Want: "array", Got: jsonTypeName(v)}
	}
	out := make([]*Resource, 0, len(arr))
	for i, el := range arr {
		r, err := Materialize(kind, el)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out = append(out, r)
	}
	return out, nil
}

// Kind returns the label the resource was materialized under.
func (r *Resource) Kind() string { return r.kind }

// Len returns the number of fields.
func (r *Resource) Len() int { return r.attrs.Len() }

// Fields returns the normalized field names in document order.
func (r *Resource) Fields() []string {
	out := make([]string, 0, r.attrs.Len())
	for pair := r.attrs.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Key)
	}
	return out
}

// Get looks up a field. The name is normalized first, so either the wire
// spelling ("disk.size") or the normalized one ("disk_size") works.
func (r *Resource) Get(field string) (any, bool) {
	return r.attrs.Get(normalizeField(field))
}

// Has reports whether the field is present.
func (r *Resource) Has(field string) bool {
	_, ok := r.Get(field)
	return ok
}

// GetString renders a field as text. Missing fields and nulls come back
// empty; non-scalar values are re-serialized as JSON.
func (r *Resource) GetString(field string) string {
	v, ok := r.Get(field)
	if !ok {
		return ""
	}
	return scalarString(v)
}

// GetInt returns an integral numeric field.
func (r *Resource) GetInt(field string) (int64, bool) {
	v, ok := r.Get(field)
	if !ok {
		return 0, false
	}
	num, ok := v.(json.Number)
	if !ok {
		return 0, false
	}
	n, err := num.Int64()
	if err != nil {
		return 0, false
	}
	return n, true
}

// GetFloat returns a numeric field.
func (r *Resource) GetFloat(field string) (float64, bool) {
	v, ok := r.Get(field)
	if !ok {
		return 0, false
	}
	num, ok := v.(json.Number)
	if !ok {
		return 0, false
	}
	f, err := num.Float64()
	if err != nil {
		return 0, false
	}
	return f, true
}

// GetBool returns a boolean field.
func (r *Resource) GetBool(field string) (bool, bool) {
	v, ok := r.Get(field)
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

// GetStrings returns a string-list field (tags and similar). Non-string
// elements are rendered to text.
func (r *Resource) GetStrings(field string) []string {
	v, ok := r.Get(field)
	if !ok {
		return nil
	}
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(arr))
	for _, el := range arr {
		out = append(out, scalarString(el))
	}
	return out
}

// MarshalJSON re-serializes the fields in document order.
func (r *Resource) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.attrs)
}

// String renders the resource for diagnostics.
func (r *Resource) String() string {
	b, err := json.Marshal(r.attrs)
	if err != nil {
		return r.kind + " (unprintable)"
	}
	return r.kind + " " + string(b)
}

// scalarString renders a decoded JSON value as text the way the CLI
// prints it: numbers keep their wire form, composites re-serialize.
func scalarString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(b)
	}
}

// jsonTypeName names a decoded JSON value for error messages.
func jsonTypeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case json.Number:
		return "number"
	case []any:
		return "array"
	case *orderedmap.OrderedMap[string, any], map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}

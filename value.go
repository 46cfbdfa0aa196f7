package valuetypes

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"

	"github.com/aarondl/null/v8"
	boilertypes "github.com/aarondl/sqlboiler/v4/types"
	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// ValueKind discriminates the shapes a source Value can take.
type ValueKind int

const (
	KindInvalid ValueKind = iota
	KindNull
	KindBool
	KindNumber
	KindString
	KindObject // ordered key -> Value mapping
	KindHandle // reference to a foreign object with its own registered Type
	KindTyped  // a concrete Go value whose type is already known
)

func (k ValueKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindObject:
		return "object"
	case KindHandle:
		return "handle"
	case KindTyped:
		return "typed"
	default:
		return "invalid"
	}
}

// Value is a dynamically typed source value handed to the coercion engine.
// Values are produced fresh per call by the caller and are read-only to the
// engine. The zero Value is invalid.
type Value struct {
	kind ValueKind

	bval bool
	num  float64
	s    string

	keys   []string
	fields map[string]Value

	handle     any
	handleType *Type

	typed any
}

// Invalid returns the invalid Value.
func Invalid() Value { return Value{} }

// Null returns the null Value.
func Null() Value { return Value{kind: KindNull} }

// BoolValue wraps a boolean.
func BoolValue(b bool) Value {
	return Value{kind: KindBool, bval: b}
}

// NumberValue wraps a number. All script numbers are float64.
func NumberValue(n float64) Value { return Value{kind: KindNumber, num: n} }

// StringValue wraps a string.
func StringValue(s string) Value { return Value{kind: KindString, s: s} }

// ObjectValue wraps a structural mapping. Nested values may be Values or any
// plain Go values accepted by ValueOf. Keys are ordered lexically since Go
// maps carry no order of their own.
func ObjectValue(fields map[string]any) Value {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	m := make(map[string]Value, len(fields))
	for k, f := range fields {
		m[k] = ValueOf(f)
	}
	return Value{kind: KindObject, keys: keys, fields: m}
}

// Pair is one ordered object field for ObjectOf.
type Pair struct {
	Key string
	Val any
}

// ObjectOf wraps a structural mapping with caller-defined field order. On a
// duplicate key the later value wins but the key keeps its first position.
func ObjectOf(pairs ...Pair) Value {
	keys := make([]string, 0, len(pairs))
	m := make(map[string]Value, len(pairs))
	for _, p := range pairs {
		if _, seen := m[p.Key]; !seen {
			keys = append(keys, p.Key)
		}
		m[p.Key] = ValueOf(p.Val)
	}
	return Value{kind: KindObject, keys: keys, fields: m}
}

// HandleValue wraps a reference to a foreign object whose structure is
// described by t. A nil obj is the null object reference.
func HandleValue(obj any, t *Type) Value {
	return Value{kind: KindHandle, handle: obj, handleType: t}
}

// TypedValue wraps a concrete Go value without reinterpreting it.
func TypedValue(v any) Value { return Value{kind: KindTyped, typed: v} }

// ValueOf maps a plain Go value onto the closest Value shape. Structs and
// other rich types stay typed; use HandleValue to attach a descriptor.
func ValueOf(v any) Value {
	switch s := v.(type) {
	case nil:
		return Null()
	case Value:
		return s
	case bool:
		return BoolValue(s)
	case float64:
		return NumberValue(s)
	case float32:
		return NumberValue(float64(s))
	case int:
		return NumberValue(float64(s))
	case int8:
		return NumberValue(float64(s))
	case int16:
		return NumberValue(float64(s))
	case int32:
		return NumberValue(float64(s))
	case int64:
		return NumberValue(float64(s))
	case uint:
		return NumberValue(float64(s))
	case uint8:
		return NumberValue(float64(s))
	case uint16:
		return NumberValue(float64(s))
	case uint32:
		return NumberValue(float64(s))
	case uint64:
		return NumberValue(float64(s))
	case string:
		return StringValue(s)
	case map[string]any:
		return ObjectValue(s)
	default:
		return TypedValue(v)
	}
}

// FromJSON builds a Value from raw JSON. Accepted inputs are []byte, string,
// json.RawMessage, boilertypes.JSON and null.JSON; an invalid null.JSON
// becomes the null Value. Object key order is lexical.
func FromJSON(raw any) (Value, error) {
	var data []byte
	switch r := raw.(type) {
	case []byte:
		data = r
	case string:
		data = []byte(r)
	case json.RawMessage:
		data = r
	case boilertypes.JSON:
		data = r
	case null.JSON:
		if !r.Valid {
			return Null(), nil
		}
		data = r.JSON
	default:
		return Invalid(), fmt.Errorf("valuetypes: unsupported JSON input %T", raw)
	}
	if len(data) == 0 {
		return Null(), nil
	}
	var decoded any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return Invalid(), fmt.Errorf("valuetypes: decoding JSON: %w", err)
	}
	return ValueOf(decoded), nil
}

// FromYAML builds a Value from a YAML document.
func FromYAML(data []byte) (Value, error) {
	var decoded any
	if err := yaml.Unmarshal(data, &decoded); err != nil {
		return Invalid(), fmt.Errorf("valuetypes: decoding YAML: %w", err)
	}
	return ValueOf(normalizeYAML(decoded)), nil
}

// yaml.v3 decodes mappings as map[string]any already, but nested mappings
// with non-string keys arrive as map[any]any in some documents.
func normalizeYAML(v any) any {
	switch m := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(m))
		for k, e := range m {
			out[k] = normalizeYAML(e)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, e := range m {
			out[fmt.Sprint(k)] = normalizeYAML(e)
		}
		return out
	default:
		return v
	}
}

// Kind reports the Value's shape.
func (v Value) Kind() ValueKind { return v.kind }

// IsValid reports whether the Value carries anything at all.
func (v Value) IsValid() bool { return v.kind != KindInvalid }

// IsNullHandle reports whether the Value is a null object reference.
func (v Value) IsNullHandle() bool { return v.kind == KindHandle && v.handle == nil }

// Bool returns the wrapped boolean.
func (v Value) Bool() bool { return v.kind == KindBool && v.bval }

// Number returns the wrapped number.
func (v Value) Number() float64 {
	if v.kind == KindNumber {
		return v.num
	}
	return 0
}

// Str returns the wrapped string.
func (v Value) Str() string {
	if v.kind == KindString {
		return v.s
	}
	return ""
}

// Keys returns the ordered field names of an object Value.
func (v Value) Keys() []string { return v.keys }

// Field looks up an object field by exact key.
func (v Value) Field(name string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}
	f, ok := v.fields[name]
	return f, ok
}

// Handle returns the wrapped foreign object and its descriptor.
func (v Value) Handle() (any, *Type) { return v.handle, v.handleType }

// Typed returns the wrapped concrete Go value.
func (v Value) Typed() any { return v.typed }

// resolve yields the Value as a concrete reflect.Value. Null, invalid and
// null-handle values resolve to an invalid reflect.Value.
func (v Value) resolve() reflect.Value {
	switch v.kind {
	case KindBool:
		return reflect.ValueOf(v.bval)
	case KindNumber:
		return reflect.ValueOf(v.num)
	case KindString:
		return reflect.ValueOf(v.s)
	case KindObject:
		m := make(map[string]any, len(v.fields))
		for k, f := range v.fields {
			m[k] = f.native()
		}
		return reflect.ValueOf(m)
	case KindHandle:
		if v.handle == nil {
			return reflect.Value{}
		}
		return reflect.ValueOf(v.handle)
	case KindTyped:
		if v.typed == nil {
			return reflect.Value{}
		}
		return reflect.ValueOf(v.typed)
	default:
		return reflect.Value{}
	}
}

// native unwraps the Value into a plain Go value for diagnostics and object
// resolution.
func (v Value) native() any {
	switch v.kind {
	case KindBool:
		return v.bval
	case KindNumber:
		return v.num
	case KindString:
		return v.s
	case KindObject:
		m := make(map[string]any, len(v.fields))
		for k, f := range v.fields {
			m[k] = f.native()
		}
		return m
	case KindHandle:
		return v.handle
	case KindTyped:
		return v.typed
	default:
		return nil
	}
}

// String renders the Value for diagnostics.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return strconv.FormatBool(v.bval)
	case KindNumber:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case KindString:
		return v.s
	case KindObject:
		return fmt.Sprintf("%v", v.native())
	case KindHandle:
		if v.handle == nil {
			return "null"
		}
		return fmt.Sprintf("%v", v.handle)
	case KindTyped:
		return fmt.Sprintf("%v", v.typed)
	default:
		return "undefined"
	}
}

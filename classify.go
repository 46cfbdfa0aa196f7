package valuetypes

import (
	"net/url"
	"reflect"
	"regexp"
	"time"
)

// The builtins are not constructible this way. Anything in this set fails
// the pre-filter regardless of what the registry says about it.
var builtinTypes = make(map[reflect.Type]struct{})

func init() {
	for _, t := range []reflect.Type{
		reflect.TypeOf(time.Time{}),
		reflect.TypeOf(time.Duration(0)),
		reflect.TypeOf(time.Location{}),
		reflect.TypeOf(url.URL{}),
		reflect.TypeOf(regexp.Regexp{}),
		reflect.TypeOf(ScriptValue{}),
		reflect.TypeOf(PrimitiveValue{}),
		reflect.TypeOf(Value{}),
		reflect.TypeOf((*any)(nil)).Elem(),
		reflect.TypeOf((*error)(nil)).Elem(),
		reflect.TypeOf([]byte(nil)),
		reflect.TypeOf((*struct{})(nil)).Elem(),
	} {
		builtinTypes[t] = struct{}{}
	}
}

// isConstructible pre-filters the target before any registry traversal.
// Builtin primitives, enumerations, pointers and sequences are never
// construction targets.
func isConstructible(t *Type) bool {
	if t == nil {
		return false
	}
	if t.enum {
		return false
	}
	gt := t.goType
	if _, builtin := builtinTypes[gt]; builtin {
		return false
	}
	switch gt.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128,
		reflect.String,
		reflect.Ptr, reflect.UnsafePointer,
		reflect.Slice, reflect.Array,
		reflect.Chan, reflect.Func, reflect.Interface:
		return false
	}
	return true
}

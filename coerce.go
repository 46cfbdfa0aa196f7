package valuetypes

import (
	"reflect"

	"github.com/spf13/cast"
)

var (
	scriptValueType    = reflect.TypeOf(ScriptValue{})
	primitiveValueType = reflect.TypeOf(PrimitiveValue{})
)

// coerceValue attempts a generic conversion of src into target type to. It
// deliberately stops short of full script semantics: a value type with a
// constructor taking a number or a string must not become constructible from
// arbitrary values, so only primitive-to-primitive conversions, the script
// value bridges and (with an Engine) managed value round trips are allowed.
func (c *Coercer) coerceValue(src Value, to reflect.Type) (reflect.Value, bool) {
	rv := src.resolve()

	if rv.IsValid() {
		rt := rv.Type()
		if rt == to {
			return rv, true
		}
		if rt.AssignableTo(to) {
			out := reflect.New(to).Elem()
			out.Set(rv)
			return out, true
		}
		if converted, ok := convertPrimitive(rv, to); ok {
			return converted, true
		}
	}

	if to == primitiveValueType {
		if pv, ok := BridgeToPrimitive(src); ok {
			return reflect.ValueOf(pv), true
		}
		return reflect.Value{}, false
	}

	if to == scriptValueType {
		if sv, ok := BridgeToScript(src); ok {
			return reflect.ValueOf(sv), true
		}
		if c != nil && c.engine != nil && rv.IsValid() {
			if sv, ok := c.engine.ToScript(rv.Interface()); ok {
				return reflect.ValueOf(sv), true
			}
		}
		return reflect.Value{}, false
	}

	// A managed script value converts back to a native value only through
	// the engine. Without one this degrades to "no conversion found".
	if rv.IsValid() && rv.Type() == scriptValueType && c != nil && c.engine != nil {
		if native, ok := c.engine.FromScript(rv.Interface().(ScriptValue), to); ok {
			out := reflect.ValueOf(native)
			if out.IsValid() && out.Type() == to {
				return out, true
			}
		}
	}

	return reflect.Value{}, false
}

// convertPrimitive handles the bool/number/string conversion families. Both
// ends must be primitive kinds; everything else is left to structural
// coercion.
func convertPrimitive(rv reflect.Value, to reflect.Type) (reflect.Value, bool) {
	if !isPrimitiveKind(rv.Kind()) || !isPrimitiveKind(to.Kind()) {
		return reflect.Value{}, false
	}

	src := rv.Interface()
	out := reflect.New(to).Elem()
	switch to.Kind() {
	case reflect.Bool:
		b, err := cast.ToBoolE(src)
		if err != nil {
			return reflect.Value{}, false
		}
		out.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := cast.ToInt64E(src)
		if err != nil || out.OverflowInt(n) {
			return reflect.Value{}, false
		}
		out.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := cast.ToUint64E(src)
		if err != nil || out.OverflowUint(n) {
			return reflect.Value{}, false
		}
		out.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := cast.ToFloat64E(src)
		if err != nil {
			return reflect.Value{}, false
		}
		out.SetFloat(f)
	case reflect.String:
		// Strings are produced from other primitives, never from rich
		// values; rune conversions from integers are not wanted here.
		s, err := cast.ToStringE(src)
		if err != nil {
			return reflect.Value{}, false
		}
		out.SetString(s)
	default:
		return reflect.Value{}, false
	}
	return out, true
}

func isPrimitiveKind(k reflect.Kind) bool {
	switch k {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64,
		reflect.String:
		return true
	}
	return false
}

package valuetypes

import (
	"reflect"
	"strconv"
)

// ScriptKind discriminates script value shapes.
type ScriptKind int

const (
	ScriptUndefined ScriptKind = iota
	ScriptNull
	ScriptBool
	ScriptNumber
	ScriptString
	ScriptObject
	ScriptManaged
)

// ScriptValue is the dynamically typed representation owned by the host
// scripting runtime, used as the intermediate bridge format. Primitive
// shapes are self-contained; ScriptManaged values belong to an Engine and
// are only meaningful on the thread that owns it.
type ScriptValue struct {
	kind ScriptKind

	bval bool
	num  float64
	str  string

	obj     Value
	managed any
}

// PrimitiveValue is the restricted script value representation that can hold
// only undefined, null, bool, number and string. It never references an
// Engine.
type PrimitiveValue struct {
	kind ScriptKind

	bval bool
	num  float64
	str  string
}

// ScriptUndefinedValue returns the undefined script value.
func ScriptUndefinedValue() ScriptValue { return ScriptValue{} }

// ScriptNullValue returns the script null.
func ScriptNullValue() ScriptValue { return ScriptValue{kind: ScriptNull} }

// ScriptBoolValue wraps a boolean.
func ScriptBoolValue(b bool) ScriptValue { return ScriptValue{kind: ScriptBool, bval: b} }

// ScriptNumberValue wraps a number.
func ScriptNumberValue(n float64) ScriptValue { return ScriptValue{kind: ScriptNumber, num: n} }

// ScriptStringValue wraps a string.
func ScriptStringValue(s string) ScriptValue { return ScriptValue{kind: ScriptString, str: s} }

// ScriptObjectValue wraps a structural Value so fallback factories can
// inspect it.
func ScriptObjectValue(v Value) ScriptValue { return ScriptValue{kind: ScriptObject, obj: v} }

// NewManaged wraps an engine-owned representation. Only Engine
// implementations should need this.
func NewManaged(v any) ScriptValue { return ScriptValue{kind: ScriptManaged, managed: v} }

// Kind reports the script value's shape.
func (sv ScriptValue) Kind() ScriptKind { return sv.kind }

// IsUndefined reports whether the value is the empty script value.
func (sv ScriptValue) IsUndefined() bool { return sv.kind == ScriptUndefined }

// Bool returns the wrapped boolean.
func (sv ScriptValue) Bool() bool { return sv.kind == ScriptBool && sv.bval }

// Number returns the wrapped number.
func (sv ScriptValue) Number() float64 {
	if sv.kind == ScriptNumber {
		return sv.num
	}
	return 0
}

// Str returns the wrapped string and whether the value is a string.
func (sv ScriptValue) Str() (string, bool) {
	if sv.kind == ScriptString {
		return sv.str, true
	}
	return "", false
}

// Object returns the wrapped structural Value.
func (sv ScriptValue) Object() (Value, bool) {
	if sv.kind == ScriptObject {
		return sv.obj, true
	}
	return Value{}, false
}

// Managed returns the engine-owned representation.
func (sv ScriptValue) Managed() (any, bool) {
	if sv.kind == ScriptManaged {
		return sv.managed, true
	}
	return nil, false
}

// String renders the script value for diagnostics.
func (sv ScriptValue) String() string {
	switch sv.kind {
	case ScriptNull:
		return "null"
	case ScriptBool:
		return strconv.FormatBool(sv.bval)
	case ScriptNumber:
		return strconv.FormatFloat(sv.num, 'g', -1, 64)
	case ScriptString:
		return sv.str
	case ScriptObject:
		return sv.obj.String()
	case ScriptManaged:
		return "[managed]"
	default:
		return "undefined"
	}
}

// Kind reports the primitive value's shape.
func (pv PrimitiveValue) Kind() ScriptKind { return pv.kind }

// Bool returns the wrapped boolean.
func (pv PrimitiveValue) Bool() bool { return pv.kind == ScriptBool && pv.bval }

// Number returns the wrapped number.
func (pv PrimitiveValue) Number() float64 {
	if pv.kind == ScriptNumber {
		return pv.num
	}
	return 0
}

// Str returns the wrapped string and whether the value is a string.
func (pv PrimitiveValue) Str() (string, bool) {
	if pv.kind == ScriptString {
		return pv.str, true
	}
	return "", false
}

// Engine is the execution-context collaborator. It supplies the conversions
// that need a live interpreter: bridging arbitrary native values into
// managed script values and back. Implementations are bound to the thread
// that owns their native call stack; the engine never calls them from
// anywhere else than the coercion call's own goroutine.
type Engine interface {
	ToScript(v any) (ScriptValue, bool)
	FromScript(sv ScriptValue, target reflect.Type) (any, bool)
}

// BridgeToPrimitive converts the closed set of primitive source shapes into
// the primitive script representation. Anything else is not applicable and
// the caller falls back to richer coercion. No structural work, no
// allocation beyond the wrapper.
func BridgeToPrimitive(src Value) (PrimitiveValue, bool) {
	switch {
	case !src.IsValid():
		return PrimitiveValue{}, true
	case src.IsNullHandle():
		return PrimitiveValue{kind: ScriptNull}, true
	}
	switch src.Kind() {
	case KindNull:
		return PrimitiveValue{kind: ScriptNull}, true
	case KindBool:
		return PrimitiveValue{kind: ScriptBool, bval: src.Bool()}, true
	case KindNumber:
		return PrimitiveValue{kind: ScriptNumber, num: src.Number()}, true
	case KindString:
		return PrimitiveValue{kind: ScriptString, str: src.Str()}, true
	}
	return PrimitiveValue{}, false
}

// BridgeToScript is the ScriptValue flavor of BridgeToPrimitive. It covers
// the same closed primitive set; richer sources need an Engine and are
// handled by the coercion path, not here.
func BridgeToScript(src Value) (ScriptValue, bool) {
	pv, ok := BridgeToPrimitive(src)
	if !ok {
		return ScriptValue{}, false
	}
	return ScriptValue{kind: pv.kind, bval: pv.bval, num: pv.num, str: pv.str}, true
}

// scriptValueOf builds the ScriptValue handed to fallback factories. Unlike
// the bridges this never fails: structural sources are wrapped as script
// objects.
func scriptValueOf(src Value) ScriptValue {
	if sv, ok := BridgeToScript(src); ok {
		return sv
	}
	return ScriptObjectValue(src)
}

package coercers

import (
	"github.com/scriptbridge/valuetypes"
)

// StringFactory adapts a parse function into a fallback factory that only
// accepts string script values. Parse failures make the factory decline.
func StringFactory[T any](parse func(string) (T, error)) valuetypes.FactoryFunc {
	return func(sv valuetypes.ScriptValue) any {
		s, ok := sv.Str()
		if !ok {
			return nil
		}
		out, err := parse(s)
		if err != nil {
			return nil
		}
		return out
	}
}

// NumberFactory adapts a conversion function into a fallback factory that
// only accepts numeric script values.
func NumberFactory[T any](convert func(float64) (T, error)) valuetypes.FactoryFunc {
	return func(sv valuetypes.ScriptValue) any {
		if sv.Kind() != valuetypes.ScriptNumber {
			return nil
		}
		out, err := convert(sv.Number())
		if err != nil {
			return nil
		}
		return out
	}
}

// ObjectFactory adapts a build function over the structural source value
// into a fallback factory. Non-object script values are declined.
func ObjectFactory[T any](build func(valuetypes.Value) (T, error)) valuetypes.FactoryFunc {
	return func(sv valuetypes.ScriptValue) any {
		obj, ok := sv.Object()
		if !ok {
			return nil
		}
		out, err := build(obj)
		if err != nil {
			return nil
		}
		return out
	}
}

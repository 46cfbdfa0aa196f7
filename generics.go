package valuetypes

import "reflect"

// Generic helpers as top-level functions (methods cannot have type parameters yet)

// Create builds a T from src, resolving the descriptor by Go type.
func Create[T any](c *Coercer, src Value) (T, bool) {
	var zero T
	t, ok := c.registry.TypeFor(reflect.TypeOf(zero))
	if !ok {
		return zero, false
	}
	out, ok := c.CreateValueType(src, t)
	if !ok {
		return zero, false
	}
	return out.(T), true
}

// Populate fills dst in place from src.
func Populate[T any](c *Coercer, dst *T, src Value) bool {
	t, ok := c.registry.TypeFor(reflect.TypeOf(*dst))
	if !ok {
		return false
	}
	return c.PopulateValueType(src, t, dst)
}

// Make is Create with the zero value standing in on failure.
func Make[T any](c *Coercer, src Value) T {
	out, _ := Create[T](c, src)
	return out
}

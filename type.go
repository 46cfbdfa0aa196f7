package valuetypes

import (
	"reflect"
)

// Capability flags describe what the engine may do with a registered type.
type Capability uint8

const (
	// CanConstruct allows the constructor search.
	CanConstruct Capability = 1 << iota
	// CanPopulate allows property-by-property population from structural
	// sources.
	CanPopulate
)

// Property is one settable property of a value type, taken from an exported
// struct field at registration time. Declaration order is struct field order
// with embedded structs flattened in place.
type Property struct {
	Name     string
	JSONName string
	Type     reflect.Type

	index []int
}

// Constructor is a registered single-argument construction function.
type Constructor struct {
	fn    reflect.Value
	param reflect.Type
}

// Param returns the constructor's parameter type.
func (c Constructor) Param() reflect.Type { return c.param }

// FactoryFunc is a user-registered fallback that builds a value type instance
// from a script value when structural matching fails. A nil result means the
// factory declined.
type FactoryFunc func(sv ScriptValue) any

// Type describes a coercion target. Descriptors are built by the Registry at
// registration time and are immutable afterwards; they outlive every coercion
// call that references them.
type Type struct {
	name   string
	goType reflect.Type

	caps         Capability
	capsExplicit bool
	enum         bool

	constructors []Constructor
	properties   []Property
	propByName   map[string]*Property
	propByJSON   map[string]*Property

	ancestors map[string]struct{}
	factory   FactoryFunc
}

// Name returns the registered type name.
func (t *Type) Name() string { return t.name }

// GoType returns the concrete Go type the descriptor stands for.
func (t *Type) GoType() reflect.Type { return t.goType }

// CanConstruct reports whether the constructor search applies to t.
func (t *Type) CanConstruct() bool {
	if t.capsExplicit {
		return t.caps&CanConstruct != 0
	}
	return len(t.constructors) > 0
}

// CanPopulate reports whether property population applies to t.
func (t *Type) CanPopulate() bool {
	if t.capsExplicit {
		return t.caps&CanPopulate != 0
	}
	return len(t.properties) > 0
}

// Constructors returns the declared constructors in registration order.
func (t *Type) Constructors() []Constructor { return t.constructors }

// Properties returns the declared properties in declaration order.
func (t *Type) Properties() []Property { return t.properties }

// Property looks a property up by field name, falling back to the json tag
// name.
func (t *Type) Property(name string) (*Property, bool) {
	if p, ok := t.propByName[name]; ok {
		return p, true
	}
	if p, ok := t.propByJSON[name]; ok {
		return p, true
	}
	return nil, false
}

// Inherits reports whether t declared base as a structural ancestor. The
// ancestor set is computed once at registration; this is a set lookup, not
// live reflection.
func (t *Type) Inherits(base *Type) bool {
	if base == nil {
		return false
	}
	_, ok := t.ancestors[base.name]
	return ok
}

// Factory returns the registered fallback factory, if any.
func (t *Type) Factory() FactoryFunc { return t.factory }

// clone produces a mutable copy for registration-time updates. Shared slices
// are reallocated so published descriptors stay frozen.
func (t *Type) clone() *Type {
	dup := *t
	dup.constructors = append([]Constructor(nil), t.constructors...)
	return &dup
}

// readProperty reads a property off a source instance (value or pointer).
func (p *Property) read(src reflect.Value) (reflect.Value, bool) {
	if src.Kind() == reflect.Ptr {
		if src.IsNil() {
			return reflect.Value{}, false
		}
		src = src.Elem()
	}
	if src.Kind() != reflect.Struct {
		return reflect.Value{}, false
	}
	v := src
	for i, x := range p.index {
		if i > 0 && v.Kind() == reflect.Ptr {
			if v.IsNil() {
				return reflect.Value{}, false
			}
			v = v.Elem()
		}
		v = v.Field(x)
	}
	return v, true
}

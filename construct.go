package valuetypes

import (
	"reflect"
)

// fromMatchingType runs the three-tier constructor search for t against src
// and, on a match, invokes the winning constructor into storage produced by
// allocate. Each tier scans every declared constructor before the next tier
// is tried; within a tier the first declared constructor wins.
func (c *Coercer) fromMatchingType(t *Type, src Value, allocate func() reflect.Value) bool {
	ctors := t.Constructors()
	if len(ctors) == 0 {
		return false
	}

	rv := src.resolve()
	var srcType reflect.Type
	if rv.IsValid() {
		srcType = rv.Type()
	}

	// Exact matches first.
	if srcType != nil {
		for i := range ctors {
			if ctors[i].param == srcType {
				invokeConstructor(&ctors[i], rv, allocate)
				return true
			}
		}
	}

	// Then construction from types that structurally inherit the parameter
	// type. The ancestor sets were precomputed at registration, so this is
	// a lookup, not reflection over a live hierarchy.
	if srcDesc := c.descriptorFor(src, srcType); srcDesc != nil {
		for i := range ctors {
			paramDesc, ok := c.registry.TypeFor(ctors[i].param)
			if !ok || !srcDesc.Inherits(paramDesc) {
				continue
			}
			base, ok := embeddedValue(rv, ctors[i].param)
			if !ok {
				continue
			}
			invokeConstructor(&ctors[i], base, allocate)
			return true
		}
	}

	// Finally try converted arguments. Parameters are not created
	// recursively here; that could recurse forever.
	for i := range ctors {
		converted, ok := c.coerceValue(src, ctors[i].param)
		if !ok {
			continue
		}
		invokeConstructor(&ctors[i], converted, allocate)
		return true
	}

	return false
}

// fromString is the fast path for string sources: the first constructor
// taking exactly one string wins, no tier search.
func fromString(t *Type, s string, allocate func() reflect.Value) bool {
	stringType := reflect.TypeOf(s)
	for _, ctor := range t.Constructors() {
		if ctor.param == stringType {
			invokeConstructor(&ctor, reflect.ValueOf(s), allocate)
			return true
		}
	}
	return false
}

// invokeConstructor calls the constructor and writes the result in place
// into freshly allocated storage. The allocation strategy is the caller's;
// this only performs the placement write.
func invokeConstructor(ctor *Constructor, arg reflect.Value, allocate func() reflect.Value) {
	out := ctor.fn.Call([]reflect.Value{arg})[0]
	allocate().Set(out)
}

// descriptorFor resolves the source's own structural descriptor, preferring
// the one attached to a handle over a registry lookup.
func (c *Coercer) descriptorFor(src Value, srcType reflect.Type) *Type {
	if src.Kind() == KindHandle {
		_, ht := src.Handle()
		return ht
	}
	if srcType == nil {
		return nil
	}
	gt := srcType
	if gt.Kind() == reflect.Ptr {
		gt = gt.Elem()
	}
	if t, ok := c.registry.TypeFor(gt); ok {
		return t
	}
	return nil
}

// embeddedValue digs the embedded field of type want out of a struct value,
// following anonymous fields. This is how a structurally derived value is
// passed to a constructor declared for its base.
func embeddedValue(v reflect.Value, want reflect.Type) (reflect.Value, bool) {
	if !v.IsValid() {
		return reflect.Value{}, false
	}
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return reflect.Value{}, false
		}
		v = v.Elem()
	}
	if v.Type() == want {
		return v, true
	}
	if v.Kind() != reflect.Struct {
		return reflect.Value{}, false
	}
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		if !t.Field(i).Anonymous {
			continue
		}
		if found, ok := embeddedValue(v.Field(i), want); ok {
			return found, ok
		}
	}
	return reflect.Value{}, false
}

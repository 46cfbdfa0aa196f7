package valuetypes

import (
	"reflect"

	"go.uber.org/zap"
)

// fieldLookup reads a same-named field out of a structural source. The
// second result distinguishes "absent" from present.
type fieldLookup func(p *Property) (Value, bool)

// structuralLookup builds the field accessor for a structural source, or
// reports that the source has no structure to read from.
func (c *Coercer) structuralLookup(src Value) (fieldLookup, bool) {
	switch src.Kind() {
	case KindObject:
		return func(p *Property) (Value, bool) {
			if f, ok := src.Field(p.Name); ok {
				return f, true
			}
			if p.JSONName != "" {
				return src.Field(p.JSONName)
			}
			return Value{}, false
		}, true

	case KindHandle:
		obj, srcDesc := src.Handle()
		if obj == nil || srcDesc == nil {
			return nil, false
		}
		return gadgetLookup(reflect.ValueOf(obj), srcDesc), true

	case KindTyped:
		rv := src.resolve()
		if !rv.IsValid() {
			return nil, false
		}
		srcDesc := c.descriptorFor(src, rv.Type())
		if srcDesc == nil || len(srcDesc.Properties()) == 0 {
			return nil, false
		}
		return gadgetLookup(rv, srcDesc), true
	}
	return nil, false
}

// gadgetLookup reads same-named properties off another registered gadget or
// foreign object.
func gadgetLookup(rv reflect.Value, srcDesc *Type) fieldLookup {
	return func(p *Property) (Value, bool) {
		sp, ok := srcDesc.Property(p.Name)
		if !ok {
			return Value{}, false
		}
		fv, ok := sp.read(rv)
		if !ok {
			return Value{}, false
		}
		return ValueOf(fv.Interface()), true
	}
}

// writeProperties copies same-named fields from the source into target,
// property by property in declaration order. Target is assumed freshly
// default-constructed: missing fields are left alone, there is no point in
// resetting a property of a fresh object. One unconvertible field is logged
// and skipped; the walk never aborts early.
func (c *Coercer) writeProperties(t *Type, target reflect.Value, lookup fieldLookup, depth int) {
	props := t.Properties()
	for i := range props {
		p := &props[i]
		fieldVal, present := lookup(p)
		if !present {
			continue
		}
		if c.writeProperty(p, target, fieldVal, depth) {
			continue
		}
		c.logger.Warn("could not convert value for property",
			zap.String("value", fieldVal.String()),
			zap.String("to", p.Type.String()),
			zap.String("property", p.Name))
	}
}

// writeProperty tries, in order: a same-typed direct write, a nested value
// type coercion, and the generic conversion fallback.
func (c *Coercer) writeProperty(p *Property, target reflect.Value, fieldVal Value, depth int) bool {
	dst := target
	for i, x := range p.index {
		if i > 0 && dst.Kind() == reflect.Ptr {
			if dst.IsNil() {
				dst.Set(reflect.New(dst.Type().Elem()))
			}
			dst = dst.Elem()
		}
		dst = dst.Field(x)
	}

	rv := fieldVal.resolve()
	if rv.IsValid() && rv.Type() == p.Type {
		dst.Set(rv)
		return true
	}

	// Nested value types recurse through the ordinary creation entry point,
	// bounded by the depth limit so mutually referential property graphs
	// cannot loop forever.
	if depth < c.maxDepth {
		if propDesc, ok := c.registry.TypeFor(p.Type); ok && isConstructible(propDesc) {
			tmp := reflect.New(p.Type).Elem()
			if c.createOrConstruct(propDesc, fieldVal, func() reflect.Value { return tmp },
				func() reflect.Value { return tmp }, depth+1) {
				dst.Set(tmp)
				return true
			}
		}
	}

	if converted, ok := c.coerceValue(fieldVal, p.Type); ok {
		dst.Set(converted)
		return true
	}

	return false
}

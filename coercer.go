package valuetypes

import (
	"reflect"

	"go.uber.org/zap"
)

// DefaultMaxDepth bounds nested value type population.
const DefaultMaxDepth = 16

// Options configure a Coercer.
type Options struct {
	Engine   Engine
	Logger   *zap.Logger
	MaxDepth int
}

// Option mutates Options.
type Option func(*Options)

// WithEngine attaches the execution-context collaborator used for managed
// script value bridging. Without one those conversions degrade to "not
// applicable".
func WithEngine(e Engine) Option { return func(o *Options) { o.Engine = e } }

// WithLogger routes diagnostics. The default is a no-op logger.
func WithLogger(l *zap.Logger) Option { return func(o *Options) { o.Logger = l } }

// WithMaxDepth overrides the nested population depth limit.
func WithMaxDepth(d int) Option { return func(o *Options) { o.MaxDepth = d } }

// Coercer converts dynamically typed source values into registered value
// types. It is stateless apart from its collaborators and safe for
// concurrent use once the registry is fully populated.
type Coercer struct {
	registry *Registry
	engine   Engine
	logger   *zap.Logger
	maxDepth int
}

// New creates a Coercer over reg.
func New(reg *Registry, opts ...Option) *Coercer {
	o := Options{MaxDepth: DefaultMaxDepth}
	for _, f := range opts {
		f(&o)
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.MaxDepth <= 0 {
		o.MaxDepth = DefaultMaxDepth
	}
	return &Coercer{registry: reg, engine: o.Engine, logger: o.Logger, maxDepth: o.MaxDepth}
}

// Registry returns the registry the Coercer reads from.
func (c *Coercer) Registry() *Registry { return c.registry }

// CreateValueType builds a fresh instance of t from src. The result is owned
// by the caller. A false result means no conversion was found; diagnostics,
// if any, have already been emitted.
func (c *Coercer) CreateValueType(src Value, t *Type) (any, bool) {
	if !isConstructible(t) {
		return nil, false
	}
	target := reflect.New(t.goType).Elem()
	alloc := func() reflect.Value { return target }
	if !c.createOrConstruct(t, src, alloc, alloc, 0) {
		return nil, false
	}
	return target.Interface(), true
}

// PopulateValueType writes into caller-owned storage: target must be a
// non-nil pointer to a default-constructed value of t's Go type. This is the
// entry point for callers repurposing existing storage.
func (c *Coercer) PopulateValueType(src Value, t *Type, target any) bool {
	if !isConstructible(t) {
		return false
	}
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() || rv.Elem().Type() != t.goType {
		return false
	}
	elem := rv.Elem()
	alloc := func() reflect.Value {
		// The storage may hold a previous value; constructing in place
		// replaces it wholesale.
		elem.Set(reflect.Zero(t.goType))
		return elem
	}
	return c.createOrConstruct(t, src, alloc, func() reflect.Value { return elem }, 0)
}

// CreateFromString is the string fast path: a constructor taking exactly one
// string wins immediately, otherwise the fallback factory is consulted.
func (c *Coercer) CreateFromString(s string, t *Type) (any, bool) {
	if !isConstructible(t) {
		return nil, false
	}
	if t.CanConstruct() {
		target := reflect.New(t.goType).Elem()
		if fromString(t, s, func() reflect.Value { return target }) {
			return target.Interface(), true
		}
	}
	return c.fromFactory(t, ScriptStringValue(s))
}

// CreateFromScript consults only the fallback factory. This mirrors the
// entry point scripting runtimes use when they already hold a managed value
// and structural matching has been ruled out.
func (c *Coercer) CreateFromScript(sv ScriptValue, t *Type) (any, bool) {
	if !isConstructible(t) {
		return nil, false
	}
	return c.fromFactory(t, sv)
}

// createOrConstruct is the decision table. The target type's capabilities
// pick the strategy; allocation policy is injected so in-place and heap
// callers share the same path.
func (c *Coercer) createOrConstruct(
	t *Type, src Value,
	allocate func() reflect.Value, defaultConstruct func() reflect.Value,
	depth int,
) bool {
	if t.CanPopulate() {
		if lookup, structural := c.structuralLookup(src); structural {
			c.writeProperties(t, defaultConstruct(), lookup, depth)
			return true
		}
		if t.CanConstruct() {
			if c.fromMatchingType(t, src, allocate) {
				return true
			}
			c.warnNoConstructor(t, src)
		}
	} else if t.CanConstruct() {
		if c.fromMatchingType(t, src, allocate) {
			return true
		}
		c.warnNoConstructor(t, src)
	}

	if fn := t.Factory(); fn != nil {
		result := fn(scriptValueOf(src))
		if result != nil {
			rv := reflect.ValueOf(result)
			if rv.Type() == t.goType {
				allocate().Set(rv)
				return true
			}
		}
	}

	return false
}

func (c *Coercer) fromFactory(t *Type, sv ScriptValue) (any, bool) {
	fn := t.Factory()
	if fn == nil {
		return nil, false
	}
	result := fn(sv)
	if result == nil {
		return nil, false
	}
	if reflect.TypeOf(result) != t.goType {
		return nil, false
	}
	return result, true
}

func (c *Coercer) warnNoConstructor(t *Type, src Value) {
	c.logger.Warn("could not find any constructor for value type",
		zap.String("type", t.Name()),
		zap.String("value", src.String()))
}

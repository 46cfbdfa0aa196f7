package valuetypes

// Builder provides a fluent API to assemble a Registry and Coercer with
// types, constructors and fallback factories pre-registered.
type Builder struct {
	opts  []Option
	steps []func(*Registry) error
}

// NewBuilder creates a new builder.
func NewBuilder() *Builder { return &Builder{} }

// WithOptions appends coercer options to the builder.
func (b *Builder) WithOptions(opts ...Option) *Builder {
	b.opts = append(b.opts, opts...)
	return b
}

// AddType queues a type registration.
func (b *Builder) AddType(name string, prototype any, opts ...TypeOption) *Builder {
	b.steps = append(b.steps, func(r *Registry) error {
		_, err := r.RegisterType(name, prototype, opts...)
		return err
	})
	return b
}

// AddConstructor queues a constructor registration for a previously added
// type. Declaration order follows builder order.
func (b *Builder) AddConstructor(name string, fn any) *Builder {
	b.steps = append(b.steps, func(r *Registry) error {
		return r.RegisterConstructor(name, fn)
	})
	return b
}

// AddFactory queues a fallback factory registration.
func (b *Builder) AddFactory(name string, fn FactoryFunc) *Builder {
	b.steps = append(b.steps, func(r *Registry) error {
		return r.RegisterFactory(name, fn)
	})
	return b
}

// Build runs the queued registrations in order and returns the Coercer. The
// first registration error aborts the build.
func (b *Builder) Build() (*Coercer, error) {
	reg := NewRegistry()
	for _, step := range b.steps {
		if err := step(reg); err != nil {
			return nil, err
		}
	}
	return New(reg, b.opts...), nil
}

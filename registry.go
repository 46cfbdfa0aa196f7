package valuetypes

import (
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"
)

// TypeOption tweaks a type registration.
type TypeOption func(*typeConfig)

type typeConfig struct {
	caps         Capability
	capsExplicit bool
	enum         bool
	ancestors    []string
}

// WithCapabilities pins the capability flags instead of deriving them from
// the registered constructors and properties.
func WithCapabilities(c Capability) TypeOption {
	return func(cfg *typeConfig) { cfg.caps = c; cfg.capsExplicit = true }
}

// AsEnum marks the type as an enumeration. Enumerations are never
// constructible.
func AsEnum() TypeOption {
	return func(cfg *typeConfig) { cfg.enum = true }
}

// Extends declares a structural ancestor by registered name. May be repeated.
func Extends(base string) TypeOption {
	return func(cfg *typeConfig) { cfg.ancestors = append(cfg.ancestors, base) }
}

// registrySnapshot is the immutable state the lookup paths read. Registration
// replaces the whole snapshot (copy-on-write), so readers never lock.
type registrySnapshot struct {
	byName map[string]*Type
	byType map[reflect.Type]*Type
}

// Registry holds the process-wide set of value type descriptors. Register
// everything up front; lookups are safe for concurrent use and registration
// swaps immutable snapshots, mirroring how callers are expected to treat the
// type system: established before coercion, never mutated during it.
type Registry struct {
	snap          atomic.Value // holds *registrySnapshot
	metadataCache sync.Map     // map[reflect.Type][]Property
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	r := &Registry{}
	r.snap.Store(&registrySnapshot{
		byName: make(map[string]*Type),
		byType: make(map[reflect.Type]*Type),
	})
	return r
}

func (r *Registry) snapshot() *registrySnapshot {
	return r.snap.Load().(*registrySnapshot)
}

func (r *Registry) swap(mutate func(*registrySnapshot)) {
	old := r.snapshot()
	next := &registrySnapshot{
		byName: make(map[string]*Type, len(old.byName)+1),
		byType: make(map[reflect.Type]*Type, len(old.byType)+1),
	}
	for k, v := range old.byName {
		next.byName[k] = v
	}
	for k, v := range old.byType {
		next.byType[k] = v
	}
	mutate(next)
	r.snap.Store(next)
}

// RegisterType registers prototype's type under name. Pass either a value or
// a pointer; the descriptor always stands for the element type. Properties
// are built from the exported struct fields, embedded structs flattened,
// honoring json tag names and the `coerce:"-"` ignore tag.
func (r *Registry) RegisterType(name string, prototype any, opts ...TypeOption) (*Type, error) {
	if prototype == nil {
		return nil, fmt.Errorf("valuetypes: nil prototype for %q", name)
	}
	gt := reflect.TypeOf(prototype)
	if gt.Kind() == reflect.Ptr {
		gt = gt.Elem()
	}

	cfg := typeConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	t := &Type{
		name:         name,
		goType:       gt,
		caps:         cfg.caps,
		capsExplicit: cfg.capsExplicit,
		enum:         cfg.enum,
		ancestors:    make(map[string]struct{}, len(cfg.ancestors)),
	}
	if gt.Kind() == reflect.Struct {
		t.properties = r.propertiesFor(gt)
		t.propByName = make(map[string]*Property, len(t.properties))
		t.propByJSON = make(map[string]*Property, len(t.properties))
		for i := range t.properties {
			p := &t.properties[i]
			t.propByName[p.Name] = p
			if p.JSONName != "" {
				t.propByJSON[p.JSONName] = p
			}
		}
	}

	snap := r.snapshot()
	for _, base := range cfg.ancestors {
		ancestor, ok := snap.byName[base]
		if !ok {
			return nil, fmt.Errorf("valuetypes: unknown ancestor %q for %q", base, name)
		}
		t.ancestors[base] = struct{}{}
		// Ancestry is transitive and flattened once, here.
		for a := range ancestor.ancestors {
			t.ancestors[a] = struct{}{}
		}
	}

	if _, exists := snap.byName[name]; exists {
		return nil, fmt.Errorf("valuetypes: type %q already registered", name)
	}

	r.swap(func(next *registrySnapshot) {
		next.byName[name] = t
		next.byType[gt] = t
	})
	return t, nil
}

// RegisterConstructor adds a single-argument constructor to a registered
// type. fn must have the form func(P) T where T is the registered Go type.
// Declaration order is registration order and is stable.
func (r *Registry) RegisterConstructor(name string, fn any) error {
	t, ok := r.TypeByName(name)
	if !ok {
		return fmt.Errorf("valuetypes: unknown type %q", name)
	}
	fv := reflect.ValueOf(fn)
	ft := fv.Type()
	if ft.Kind() != reflect.Func || ft.NumIn() != 1 || ft.NumOut() != 1 {
		return fmt.Errorf("valuetypes: constructor for %q must be func(P) T", name)
	}
	if ft.Out(0) != t.goType {
		return fmt.Errorf("valuetypes: constructor for %q returns %s, want %s", name, ft.Out(0), t.goType)
	}

	updated := t.clone()
	updated.constructors = append(updated.constructors, Constructor{fn: fv, param: ft.In(0)})
	r.swap(func(next *registrySnapshot) {
		next.byName[name] = updated
		next.byType[updated.goType] = updated
	})
	return nil
}

// RegisterFactory installs the fallback factory consulted when structural
// construction fails. At most one factory per type; re-registering replaces
// it.
func (r *Registry) RegisterFactory(name string, fn FactoryFunc) error {
	t, ok := r.TypeByName(name)
	if !ok {
		return fmt.Errorf("valuetypes: unknown type %q", name)
	}
	updated := t.clone()
	updated.factory = fn
	r.swap(func(next *registrySnapshot) {
		next.byName[name] = updated
		next.byType[updated.goType] = updated
	})
	return nil
}

// TypeByName resolves a registered type by name.
func (r *Registry) TypeByName(name string) (*Type, bool) {
	t, ok := r.snapshot().byName[name]
	return t, ok
}

// TypeFor resolves a registered type by its Go type.
func (r *Registry) TypeFor(gt reflect.Type) (*Type, bool) {
	t, ok := r.snapshot().byType[gt]
	return t, ok
}

// TypeOf resolves the registered type describing v's concrete type.
func (r *Registry) TypeOf(v any) (*Type, bool) {
	if v == nil {
		return nil, false
	}
	gt := reflect.TypeOf(v)
	if gt.Kind() == reflect.Ptr {
		gt = gt.Elem()
	}
	return r.TypeFor(gt)
}

// --- property metadata ---

func (r *Registry) propertiesFor(gt reflect.Type) []Property {
	if cached, ok := r.metadataCache.Load(gt); ok {
		return cached.([]Property)
	}
	props := make([]Property, 0, gt.NumField())
	props = appendProperties(props, gt, nil)
	actual, _ := r.metadataCache.LoadOrStore(gt, props)
	return actual.([]Property)
}

func appendProperties(props []Property, gt reflect.Type, prefix []int) []Property {
	for i := 0; i < gt.NumField(); i++ {
		f := gt.Field(i)
		idx := append(append([]int(nil), prefix...), i)
		if f.Anonymous {
			ft := f.Type
			if ft.Kind() == reflect.Ptr {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct {
				props = appendProperties(props, ft, idx)
				continue
			}
		}
		if f.PkgPath != "" {
			continue
		}
		if tag := f.Tag.Get("coerce"); tag == "-" || tag == "ignore" {
			continue
		}
		jsonName := ""
		if jt, ok := f.Tag.Lookup("json"); ok {
			for j := 0; j < len(jt); j++ {
				if jt[j] == ',' {
					jt = jt[:j]
					break
				}
			}
			if jt != "-" {
				jsonName = jt
			}
		}
		props = append(props, Property{Name: f.Name, JSONName: jsonName, Type: f.Type, index: idx})
	}
	return props
}

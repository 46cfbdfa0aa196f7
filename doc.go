// Package valuetypes converts dynamically typed source values into
// statically declared value types using reflective constructor and property
// matching.
//
// A value type is a plain struct registered with a Registry together with
// optional single-argument constructors and an optional fallback factory.
// The Coercer turns a Value (null, bool, number, string, structured object,
// foreign object handle or already-typed Go value) into an instance of such
// a type.
//
// # Basic Usage
//
//	reg := valuetypes.NewRegistry()
//	reg.RegisterType("point", Point{})
//	reg.RegisterConstructor("point", func(s string) Point { ... })
//	c := valuetypes.New(reg)
//	p, ok := valuetypes.Create[Point](c, src)
//
// # Coercion Rules
//
// CreateValueType and PopulateValueType follow the same decision table:
//  1. Builtin, enumeration, pointer and sequence targets fail immediately
//  2. A populatable target with a structural source is filled property by
//     property, best effort
//  3. A constructible target runs the three-tier constructor search: exact
//     parameter match, structurally derived match, converted match
//  4. A registered fallback factory is consulted last
//
// # Property Population
//
// Properties are copied by name in declaration order. Missing source fields
// are skipped, as is anything in the source that the target does not
// declare. A field that exists but cannot be coerced into the property type
// is logged and skipped; population never fails as a whole. Nested value
// type properties recurse through the same machinery with a bounded depth.
//
// # Ignoring Fields
//
// Struct fields tagged `coerce:"-"` are invisible to the engine. Field names
// from `json` tags are honored as secondary lookup names.
//
// # Collaborators
//
// Bridging arbitrary native values into managed script values (and back)
// requires an Engine; without one those conversions simply report "not
// applicable". Diagnostics go to an injected zap logger, no-op by default.
//
// # Thread Safety
//
// Registration uses copy-on-write snapshots and is expected to finish before
// coercion begins. Descriptors are immutable once published, so any number
// of goroutines may coerce concurrently.
package valuetypes

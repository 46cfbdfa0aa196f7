package valuetypes

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// opaque has no properties, no constructors and no factory unless a test
// installs one.
type opaque struct{}

type colorish struct {
	R float64
	G float64
	B float64
}

func newCoercer(t *testing.T, opts ...Option) (*Coercer, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.WarnLevel)
	reg := NewRegistry()
	return New(reg, append([]Option{WithLogger(zap.New(core))}, opts...)...), logs
}

func TestCoercer_TotalFailure(t *testing.T) {
	c, _ := newCoercer(t)
	reg := c.Registry()
	desc, err := reg.RegisterType("opaque", opaque{})
	require.NoError(t, err)

	// No constructors, no properties, no factory: every non-trivial source
	// fails.
	for _, src := range []Value{NumberValue(1), StringValue("x"), ObjectValue(map[string]any{"a": 1}), BoolValue(true)} {
		_, ok := c.CreateValueType(src, desc)
		assert.False(t, ok, "source %s", src)
	}
}

func TestCoercer_FactoryAfterConstructorFailure(t *testing.T) {
	c, logs := newCoercer(t)
	reg := c.Registry()
	_, err := reg.RegisterType("color", colorish{}, WithCapabilities(CanConstruct))
	require.NoError(t, err)
	require.NoError(t, reg.RegisterConstructor("color", func(v colorish) colorish { return v }))
	require.NoError(t, reg.RegisterFactory("color", func(sv ScriptValue) any {
		if s, ok := sv.Str(); ok && s == "red" {
			return colorish{R: 1}
		}
		return nil
	}))

	desc, _ := reg.TypeByName("color")
	out, ok := c.CreateValueType(StringValue("red"), desc)
	require.True(t, ok)
	assert.Equal(t, colorish{R: 1}, out.(colorish))
	// The constructor search failed first and said so.
	assert.Equal(t, 1, logs.FilterMessage("could not find any constructor for value type").Len())

	// A declining factory leaves the failure in place.
	_, ok = c.CreateValueType(StringValue("mauve"), desc)
	assert.False(t, ok)
}

func TestCoercer_FactoryExclusiveWhenNoCapabilities(t *testing.T) {
	c, logs := newCoercer(t)
	reg := c.Registry()
	_, err := reg.RegisterType("opaque", opaque{}, WithCapabilities(0))
	require.NoError(t, err)
	require.NoError(t, reg.RegisterFactory("opaque", func(sv ScriptValue) any {
		return opaque{}
	}))

	desc, _ := reg.TypeByName("opaque")
	_, ok := c.CreateValueType(NumberValue(3), desc)
	assert.True(t, ok)
	assert.Zero(t, logs.Len())
}

func TestCoercer_FactoryResultTypeChecked(t *testing.T) {
	c, _ := newCoercer(t)
	reg := c.Registry()
	_, err := reg.RegisterType("opaque", opaque{}, WithCapabilities(0))
	require.NoError(t, err)
	require.NoError(t, reg.RegisterFactory("opaque", func(sv ScriptValue) any {
		return colorish{} // wrong type, must be discarded
	}))

	desc, _ := reg.TypeByName("opaque")
	_, ok := c.CreateValueType(NumberValue(3), desc)
	assert.False(t, ok)
}

func TestCoercer_PopulateInPlace(t *testing.T) {
	c, _ := newCoercer(t)
	reg := c.Registry()
	desc, err := reg.RegisterType("person", person{})
	require.NoError(t, err)

	src := ObjectValue(map[string]any{"Age": 33, "name": "sam"})

	var inPlace person
	require.True(t, c.PopulateValueType(src, desc, &inPlace))

	created, ok := c.CreateValueType(src, desc)
	require.True(t, ok)
	assert.Equal(t, created.(person), inPlace)
}

func TestCoercer_PopulateReplacesPreviousValue(t *testing.T) {
	c, _ := newCoercer(t)
	reg := c.Registry()
	_, err := reg.RegisterType("temperature", temperature{}, WithCapabilities(CanConstruct))
	require.NoError(t, err)
	require.NoError(t, reg.RegisterConstructor("temperature", func(f float64) temperature {
		return temperature{Degrees: f}
	}))

	desc, _ := reg.TypeByName("temperature")
	target := temperature{Degrees: 99, Source: "stale"}
	require.True(t, c.PopulateValueType(NumberValue(3), desc, &target))
	assert.Equal(t, temperature{Degrees: 3}, target)
}

func TestCoercer_PopulateTargetValidation(t *testing.T) {
	c, _ := newCoercer(t)
	reg := c.Registry()
	desc, err := reg.RegisterType("person", person{})
	require.NoError(t, err)

	assert.False(t, c.PopulateValueType(NumberValue(1), desc, person{}))
	assert.False(t, c.PopulateValueType(NumberValue(1), desc, (*person)(nil)))
	var wrong colorish
	assert.False(t, c.PopulateValueType(NumberValue(1), desc, &wrong))
}

func TestCoercer_CreateFromString(t *testing.T) {
	c, _ := newCoercer(t)
	reg := c.Registry()
	_, err := reg.RegisterType("color", colorish{}, WithCapabilities(CanConstruct))
	require.NoError(t, err)
	require.NoError(t, reg.RegisterConstructor("color", func(s string) colorish {
		if s == "red" {
			return colorish{R: 1}
		}
		return colorish{}
	}))

	desc, _ := reg.TypeByName("color")
	out, ok := c.CreateFromString("red", desc)
	require.True(t, ok)
	assert.Equal(t, colorish{R: 1}, out.(colorish))
}

func TestCoercer_CreateFromStringFactoryFallback(t *testing.T) {
	c, _ := newCoercer(t)
	reg := c.Registry()
	_, err := reg.RegisterType("opaque", opaque{}, WithCapabilities(0))
	require.NoError(t, err)
	require.NoError(t, reg.RegisterFactory("opaque", func(sv ScriptValue) any {
		if _, ok := sv.Str(); ok {
			return opaque{}
		}
		return nil
	}))

	desc, _ := reg.TypeByName("opaque")
	_, ok := c.CreateFromString("anything", desc)
	assert.True(t, ok)
}

func TestCoercer_CreateFromScript(t *testing.T) {
	c, _ := newCoercer(t)
	reg := c.Registry()
	_, err := reg.RegisterType("color", colorish{}, WithCapabilities(CanConstruct))
	require.NoError(t, err)
	require.NoError(t, reg.RegisterFactory("color", func(sv ScriptValue) any {
		if sv.Kind() == ScriptNumber {
			return colorish{R: sv.Number()}
		}
		return nil
	}))

	desc, _ := reg.TypeByName("color")
	out, ok := c.CreateFromScript(ScriptNumberValue(0.5), desc)
	require.True(t, ok)
	assert.Equal(t, colorish{R: 0.5}, out.(colorish))

	_, ok = c.CreateFromScript(ScriptNullValue(), desc)
	assert.False(t, ok)
}

func TestCoercer_IneligibleTargetFailsFast(t *testing.T) {
	c, _ := newCoercer(t)
	reg := c.Registry()
	desc, err := reg.RegisterType("plainint", 0)
	require.NoError(t, err)

	_, ok := c.CreateValueType(NumberValue(3), desc)
	assert.False(t, ok)
	var n int
	assert.False(t, c.PopulateValueType(NumberValue(3), desc, &n))
	_, ok = c.CreateFromString("3", desc)
	assert.False(t, ok)
}

// fakeEngine bridges everything through reflect for testing.
type fakeEngine struct{}

func (fakeEngine) ToScript(v any) (ScriptValue, bool) {
	return NewManaged(v), true
}

func (fakeEngine) FromScript(sv ScriptValue, target reflect.Type) (any, bool) {
	m, ok := sv.Managed()
	if !ok {
		return nil, false
	}
	rv := reflect.ValueOf(m)
	if rv.Type() != target {
		return nil, false
	}
	return m, true
}

func TestCoercer_EngineBridgesRichValues(t *testing.T) {
	type scripted struct {
		Raw ScriptValue
	}

	c, _ := newCoercer(t, WithEngine(fakeEngine{}))
	reg := c.Registry()
	desc, err := reg.RegisterType("scripted", scripted{})
	require.NoError(t, err)

	// A rich (non-primitive) field value reaches the ScriptValue property
	// only through the engine.
	src := ObjectValue(map[string]any{"Raw": person{Age: 1}})
	out, ok := c.CreateValueType(src, desc)
	require.True(t, ok)
	managed, ok := out.(scripted).Raw.Managed()
	require.True(t, ok)
	assert.Equal(t, person{Age: 1}, managed)
}

func TestCoercer_MissingEngineDegrades(t *testing.T) {
	type scripted struct {
		Raw ScriptValue
	}

	c, logs := newCoercer(t)
	reg := c.Registry()
	desc, err := reg.RegisterType("scripted", scripted{})
	require.NoError(t, err)

	src := ObjectValue(map[string]any{"Raw": person{Age: 1}})
	out, ok := c.CreateValueType(src, desc)
	require.True(t, ok, "population is still best-effort")
	assert.True(t, out.(scripted).Raw.IsUndefined())
	assert.Equal(t, 1, logs.FilterMessage("could not convert value for property").Len())
}

func TestCoercer_EngineConvertsManagedBack(t *testing.T) {
	type plain struct {
		Age int
	}

	c, _ := newCoercer(t, WithEngine(fakeEngine{}))
	reg := c.Registry()
	desc, err := reg.RegisterType("plain", plain{})
	require.NoError(t, err)

	src := ObjectValue(map[string]any{"Age": NewManaged(7)})
	out, ok := c.CreateValueType(src, desc)
	require.True(t, ok)
	assert.Equal(t, 7, out.(plain).Age)
}

func TestGenerics_CreatePopulateMake(t *testing.T) {
	c, _ := newCoercer(t)
	reg := c.Registry()
	_, err := reg.RegisterType("person", person{})
	require.NoError(t, err)

	src := ObjectValue(map[string]any{"Age": 12})
	p, ok := Create[person](c, src)
	require.True(t, ok)
	assert.Equal(t, 12, p.Age)

	var q person
	require.True(t, Populate(c, &q, src))
	assert.Equal(t, p, q)

	assert.Equal(t, p, Make[person](c, src))

	// Unregistered type.
	_, ok = Create[colorish](c, src)
	assert.False(t, ok)
}

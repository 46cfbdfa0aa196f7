package valuetypes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBridgeToPrimitive(t *testing.T) {
	tests := []struct {
		name string
		src  Value
		want ScriptKind
	}{
		{"invalid becomes undefined", Invalid(), ScriptUndefined},
		{"null", Null(), ScriptNull},
		{"bool", BoolValue(true), ScriptBool},
		{"number", NumberValue(4.5), ScriptNumber},
		{"string", StringValue("x"), ScriptString},
		{"null handle", HandleValue(nil, nil), ScriptNull},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pv, ok := BridgeToPrimitive(tt.src)
			require.True(t, ok)
			assert.Equal(t, tt.want, pv.Kind())
		})
	}
}

func TestBridgeToPrimitive_PreservesPayload(t *testing.T) {
	pv, ok := BridgeToPrimitive(NumberValue(4.5))
	require.True(t, ok)
	assert.Equal(t, 4.5, pv.Number())

	pv, ok = BridgeToPrimitive(StringValue("hello"))
	require.True(t, ok)
	s, isStr := pv.Str()
	require.True(t, isStr)
	assert.Equal(t, "hello", s)

	pv, ok = BridgeToPrimitive(BoolValue(true))
	require.True(t, ok)
	assert.True(t, pv.Bool())
}

func TestBridgeToPrimitive_RichSourcesNotApplicable(t *testing.T) {
	_, ok := BridgeToPrimitive(ObjectValue(map[string]any{"a": 1}))
	assert.False(t, ok)

	_, ok = BridgeToPrimitive(TypedValue(person{Age: 1}))
	assert.False(t, ok)

	_, ok = BridgeToPrimitive(HandleValue(&person{}, nil))
	assert.False(t, ok)
}

func TestBridgeToScript_MatchesPrimitiveBridge(t *testing.T) {
	// Both bridges must agree on applicability and on the null-handle rule.
	for _, src := range []Value{Invalid(), Null(), BoolValue(false), NumberValue(1), StringValue(""), HandleValue(nil, nil)} {
		pv, pok := BridgeToPrimitive(src)
		sv, sok := BridgeToScript(src)
		require.Equal(t, pok, sok, "source %s", src)
		assert.Equal(t, pv.Kind(), sv.Kind(), "source %s", src)
	}

	_, ok := BridgeToScript(ObjectValue(map[string]any{}))
	assert.False(t, ok)
}

func TestScriptValueOf_NeverFails(t *testing.T) {
	sv := scriptValueOf(StringValue("s"))
	s, ok := sv.Str()
	require.True(t, ok)
	assert.Equal(t, "s", s)

	sv = scriptValueOf(ObjectValue(map[string]any{"a": 1}))
	obj, ok := sv.Object()
	require.True(t, ok)
	assert.Equal(t, KindObject, obj.Kind())
}

func TestScriptValue_String(t *testing.T) {
	assert.Equal(t, "undefined", ScriptUndefinedValue().String())
	assert.Equal(t, "null", ScriptNullValue().String())
	assert.Equal(t, "true", ScriptBoolValue(true).String())
	assert.Equal(t, "2.5", ScriptNumberValue(2.5).String())
	assert.Equal(t, "abc", ScriptStringValue("abc").String())
	assert.Equal(t, "[managed]", NewManaged(struct{}{}).String())
}

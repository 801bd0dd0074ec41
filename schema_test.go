package cpbridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileDescriptor_Shape(t *testing.T) {
	min, max := IntRange(1, 30)
	schemaMap, resolved, err := compileDescriptor(Descriptor{
		Name: "demo",
		Params: []Param{
			{Name: "handle", Type: TypeString, Description: "who", Required: true},
			{Name: "count", Type: TypeInteger, Min: min, Max: max},
			{Name: "style", Type: TypeString, Enum: []string{"modern", "dark"}},
			{Name: "flag", Type: TypeBoolean},
			{Name: "tags", Type: TypeStringList},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, resolved)

	assert.Equal(t, "object", schemaMap["type"])
	assert.Equal(t, []any{"handle"}, schemaMap["required"])

	props := schemaMap["properties"].(map[string]any)
	assert.Equal(t, map[string]any{"type": "string", "description": "who"}, props["handle"])
	assert.Equal(t, map[string]any{"type": "integer", "minimum": 1, "maximum": 30}, props["count"])
	assert.Equal(t, map[string]any{"type": "string", "enum": []any{"modern", "dark"}}, props["style"])
	assert.Equal(t, map[string]any{"type": "boolean"}, props["flag"])
	assert.Equal(t, map[string]any{"type": "array", "items": map[string]any{"type": "string"}}, props["tags"])
}

func TestCompileDescriptor_Rejections(t *testing.T) {
	cases := []struct {
		name string
		d    Descriptor
	}{
		{"empty name", Descriptor{}},
		{"empty param name", Descriptor{Name: "t", Params: []Param{{Type: TypeString}}}},
		{"duplicate param", Descriptor{Name: "t", Params: []Param{
			{Name: "x", Type: TypeString},
			{Name: "x", Type: TypeInteger},
		}}},
		{"required with default", Descriptor{Name: "t", Params: []Param{
			{Name: "x", Type: TypeInteger, Required: true, Default: 1},
		}}},
		{"required with identity default", Descriptor{Name: "t", Params: []Param{
			{Name: "x", Type: TypeString, Required: true, IdentityDefault: true},
		}}},
		{"default type mismatch", Descriptor{Name: "t", Params: []Param{
			{Name: "x", Type: TypeInteger, Default: "nope"},
		}}},
		{"unsupported type", Descriptor{Name: "t", Params: []Param{
			{Name: "x", Type: ParamType("float")},
		}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := compileDescriptor(tc.d)
			assert.Error(t, err)
		})
	}
}

func TestValidateAgainstSchema(t *testing.T) {
	min, max := IntRange(1, 10)
	_, resolved, err := compileDescriptor(Descriptor{
		Name: "demo",
		Params: []Param{
			{Name: "count", Type: TypeInteger, Min: min, Max: max},
			{Name: "style", Type: TypeString, Enum: []string{"modern", "dark"}},
		},
	})
	require.NoError(t, err)

	generic, err := validatableArgs(Args{"count": 5, "style": "dark"})
	require.NoError(t, err)
	assert.NoError(t, validateAgainstSchema(resolved, generic))

	generic, err = validatableArgs(Args{"count": 50})
	require.NoError(t, err)
	err = validateAgainstSchema(resolved, generic)
	require.Error(t, err)
	assert.True(t, IsArgumentError(err))

	generic, err = validatableArgs(Args{"style": "neon"})
	require.NoError(t, err)
	err = validateAgainstSchema(resolved, generic)
	require.Error(t, err)
	assert.True(t, IsArgumentError(err))
}

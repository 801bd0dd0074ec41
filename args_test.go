package cpbridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildArgs_Coercion(t *testing.T) {
	d := Descriptor{
		Name: "t",
		Params: []Param{
			{Name: "s", Type: TypeString},
			{Name: "n", Type: TypeInteger},
			{Name: "b", Type: TypeBoolean},
			{Name: "l", Type: TypeStringList},
		},
	}

	t.Run("json numbers become ints", func(t *testing.T) {
		args, err := buildArgs(d, map[string]any{"n": float64(42)}, "")
		require.NoError(t, err)
		assert.Equal(t, 42, args.Int("n"))
	})

	t.Run("stringified scalars are coerced", func(t *testing.T) {
		args, err := buildArgs(d, map[string]any{"n": " 7 ", "b": "true"}, "")
		require.NoError(t, err)
		assert.Equal(t, 7, args.Int("n"))
		assert.True(t, args.Bool("b"))
	})

	t.Run("lists from json arrays", func(t *testing.T) {
		args, err := buildArgs(d, map[string]any{"l": []any{"a", "b"}}, "")
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, args.StringList("l"))
	})

	t.Run("lists from comma strings", func(t *testing.T) {
		args, err := buildArgs(d, map[string]any{"l": "a, b ,,c"}, "")
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c"}, args.StringList("l"))
	})

	t.Run("fractional number rejected", func(t *testing.T) {
		_, err := buildArgs(d, map[string]any{"n": 1.5}, "")
		require.Error(t, err)
		assert.True(t, IsArgumentError(err))
	})

	t.Run("mixed list rejected", func(t *testing.T) {
		_, err := buildArgs(d, map[string]any{"l": []any{"a", 1}}, "")
		require.Error(t, err)
		assert.True(t, IsArgumentError(err))
	})

	t.Run("wrong string type rejected", func(t *testing.T) {
		_, err := buildArgs(d, map[string]any{"s": 99}, "")
		require.Error(t, err)
		assert.True(t, IsArgumentError(err))
	})
}

func TestBuildArgs_Defaults(t *testing.T) {
	d := Descriptor{
		Name: "t",
		Params: []Param{
			{Name: "count", Type: TypeInteger, Default: 5},
			{Name: "handle", Type: TypeString, IdentityDefault: true},
			{Name: "handles", Type: TypeStringList, IdentityDefault: true},
		},
	}

	args, err := buildArgs(d, nil, "tourist")
	require.NoError(t, err)
	assert.Equal(t, 5, args.Int("count"))
	assert.Equal(t, "tourist", args.String("handle"))
	assert.Equal(t, []string{"tourist"}, args.StringList("handles"))

	// Supplied values win over every default.
	args, err = buildArgs(d, map[string]any{"count": 9, "handle": "petr"}, "tourist")
	require.NoError(t, err)
	assert.Equal(t, 9, args.Int("count"))
	assert.Equal(t, "petr", args.String("handle"))
}

func TestBuildArgs_MissingRequired(t *testing.T) {
	d := Descriptor{
		Name:   "t",
		Params: []Param{{Name: "handles", Type: TypeStringList, Required: true}},
	}
	_, err := buildArgs(d, nil, "")
	require.Error(t, err)
	assert.True(t, IsArgumentError(err))

	// An explicit null does not satisfy a required parameter.
	_, err = buildArgs(d, map[string]any{"handles": nil}, "")
	require.Error(t, err)
	assert.True(t, IsArgumentError(err))
}

func TestBuildArgs_UnknownIgnored(t *testing.T) {
	d := Descriptor{Name: "t", Params: []Param{{Name: "s", Type: TypeString}}}
	args, err := buildArgs(d, map[string]any{"s": "x", "mystery": true}, "")
	require.NoError(t, err)
	assert.False(t, args.Has("mystery"))
}

func TestArgs_Getters(t *testing.T) {
	args := Args{"s": "v", "n": 3, "b": true, "l": []string{"x"}}
	assert.Equal(t, "v", args.String("s"))
	assert.Equal(t, 3, args.Int("n"))
	assert.True(t, args.Bool("b"))
	assert.Equal(t, []string{"x"}, args.StringList("l"))

	// Absent or mistyped keys fall back to zero values.
	assert.Equal(t, "", args.String("missing"))
	assert.Equal(t, 0, args.Int("s"))
	assert.False(t, args.Bool("n"))
	assert.Nil(t, args.StringList("s"))
}

package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testFields = []Field{
	{Name: "title", Type: TypeString, Visibility: VisibilityPublic, Required: true},
	{Name: "views", Type: TypeNumber, Visibility: VisibilityPublic},
	{Name: "published", Type: TypeBoolean, Visibility: VisibilityPublic},
	{Name: "tags", Type: TypeArray, Visibility: VisibilityPublic},
	{Name: "meta", Type: TypeObject, Visibility: VisibilityPrivate},
	{Name: "released_at", Type: TypeDate, Visibility: VisibilityPublic},
}

func TestCompile_Deterministic(t *testing.T) {
	first, err := Compile(testFields)
	require.NoError(t, err)
	second, err := Compile(testFields)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCompile_ValidatesDocuments(t *testing.T) {
	definition, err := Compile(testFields)
	require.NoError(t, err)

	v := NewValidator()

	valid := map[string]interface{}{
		"title":       "hello",
		"views":       float64(3),
		"published":   true,
		"tags":        []interface{}{"go"},
		"meta":        map[string]interface{}{"a": "b"},
		"released_at": "2024-06-01T10:00:00Z",
	}
	assert.NoError(t, v.ValidateDocument(valid, definition))

	t.Run("missing required field", func(t *testing.T) {
		err := v.ValidateDocument(map[string]interface{}{"views": float64(1)}, definition)
		assert.Error(t, err)
	})

	t.Run("wrong type", func(t *testing.T) {
		err := v.ValidateDocument(map[string]interface{}{"title": "x", "views": "many"}, definition)
		assert.Error(t, err)
	})

	t.Run("undeclared field rejected", func(t *testing.T) {
		err := v.ValidateDocument(map[string]interface{}{"title": "x", "rogue": 1}, definition)
		assert.Error(t, err)
	})
}

func TestCompilePartial_AllowsAbsentRequired(t *testing.T) {
	definition, err := CompilePartial(testFields)
	require.NoError(t, err)

	v := NewValidator()
	// No "title" even though it is required on create.
	assert.NoError(t, v.ValidateDocument(map[string]interface{}{"views": float64(9)}, definition))
	// Types are still enforced.
	assert.Error(t, v.ValidateDocument(map[string]interface{}{"published": "yes"}, definition))
}

func TestApplyDefaults(t *testing.T) {
	fields := []Field{
		{Name: "title", Type: TypeString, Required: true},
		{Name: "views", Type: TypeNumber, Default: float64(0)},
		{Name: "draft", Type: TypeBoolean, Default: true},
	}

	out := ApplyDefaults(fields, map[string]interface{}{"title": "hello", "draft": false})
	assert.Equal(t, "hello", out["title"])
	assert.Equal(t, float64(0), out["views"])
	// Caller-supplied value wins over the default.
	assert.Equal(t, false, out["draft"])
}

func TestFilterPublic(t *testing.T) {
	fields := []Field{
		{Name: "title", Type: TypeString, Visibility: VisibilityPublic},
		{Name: "cost", Type: TypeNumber, Visibility: VisibilityPrivate},
	}

	out := FilterPublic(fields, map[string]interface{}{"title": "x", "cost": 9.5, "rogue": true})
	assert.Equal(t, map[string]interface{}{"title": "x"}, out)
}

func TestPruneUndeclared(t *testing.T) {
	fields := []Field{{Name: "title", Type: TypeString}}

	out := PruneUndeclared(fields, map[string]interface{}{"title": "x", "rogue": 1})
	assert.Equal(t, map[string]interface{}{"title": "x"}, out)
}

package linkml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSchemas() []*SchemaDefinition {
	lang := &SchemaDefinition{
		Name:    "core.nwb.language",
		Imports: []string{TypesImport},
		Types: Types{
			{Name: "float32", Typeof: "float"},
			{Name: "int8", Typeof: "integer"},
			{Name: "alias8", Typeof: "int8"},
			{Name: "loop", Typeof: "loop"},
		},
		Classes: Classes{{Name: "Arraylike", Abstract: true}},
	}
	base := &SchemaDefinition{
		Name:    "core.nwb.base",
		Imports: []string{"core.nwb.language"},
		Classes: Classes{
			{Name: "Data", Attributes: Slots{{Name: "name", Range: "string"}, {Name: "x", Range: "int8"}}},
			{Name: "Mix", Mixin: true, Attributes: Slots{{Name: "m", Range: "string"}}},
			{Name: "TimeSeries", IsA: "Data", Mixins: []string{"Mix"}, Attributes: Slots{{Name: "x", Range: "float32"}}},
		},
	}
	root := &SchemaDefinition{
		Name:    "core",
		Imports: []string{"core.nwb.base", "core.nwb.language"},
		Classes: Classes{{Name: "ElectricalSeries", IsA: "TimeSeries"}},
	}

	return []*SchemaDefinition{root, base, lang}
}

func TestSchemaView_Closure(t *testing.T) {
	view, err := NewSchemaView("core", testSchemas()...)
	require.NoError(t, err)

	assert.Equal(t, []string{"core", "core.nwb.base", "core.nwb.language"}, view.ImportsClosure())
	assert.Equal(t, "core", view.Root().Name)

	owner, ok := view.ElementSchema("TimeSeries")
	require.True(t, ok)
	assert.Equal(t, "core.nwb.base", owner)

	assert.Nil(t, view.GetClass("TimeSeries", false))
	assert.NotNil(t, view.GetClass("TimeSeries", true))
	assert.Len(t, view.AllClasses(true), 5)
	assert.Len(t, view.AllClasses(false), 1)
}

func TestSchemaView_MissingImport(t *testing.T) {
	_, err := NewSchemaView("core", &SchemaDefinition{Name: "core", Imports: []string{"nowhere"}})
	assert.Error(t, err)

	_, err = NewSchemaView("absent")
	assert.Error(t, err)
}

func TestSchemaView_Ancestors(t *testing.T) {
	view, err := NewSchemaView("core", testSchemas()...)
	require.NoError(t, err)

	assert.Equal(t, []string{"TimeSeries", "Data", "Mix"}, view.ClassAncestors("ElectricalSeries"))

	induced := view.InducedAttributes("ElectricalSeries")
	names := make([]string, len(induced))
	for i, s := range induced {
		names[i] = s.Name
	}

	assert.Equal(t, []string{"m", "name", "x"}, names)
	assert.Equal(t, "float32", induced.Get("x").Range)
}

func TestSchemaView_TypeBase(t *testing.T) {
	view, err := NewSchemaView("core", testSchemas()...)
	require.NoError(t, err)

	tests := []struct {
		name   string
		want   string
		wantOK bool
	}{
		{"string", "string", true},
		{"float32", "float", true},
		{"alias8", "integer", true},
		{"loop", "", false},
		{"unknown", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := view.TypeBase(tt.name)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSchemaView_GetSlot(t *testing.T) {
	schemas := testSchemas()
	schemas[1].Slots = Slots{{Name: "shared", Range: "string"}}

	view, err := NewSchemaView("core", schemas...)
	require.NoError(t, err)

	assert.Nil(t, view.GetSlot("shared", false))
	require.NotNil(t, view.GetSlot("shared", true))
	assert.Equal(t, "string", view.GetSlot("shared", true).Range)
}

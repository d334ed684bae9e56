package adapter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/p2p-ld/nwb-linkml-sub001/internal/nwbschema"
)

const walkSchemaYAML = `
datasets:
- neurodata_type_def: Refs
  neurodata_type_inc: Data
  doc: r
  dtype: {target_type: Image}
  attributes:
  - {name: kind, dtype: text, doc: k}
groups:
- neurodata_type_def: Holder
  neurodata_type_inc: Container
  doc: h
  groups:
  - {neurodata_type_inc: Data, quantity: '*', doc: many}
  - name: inner
    doc: i
    datasets:
    - {name: table, neurodata_type_inc: Table, doc: t}
  links:
  - {name: ref, target_type: Device, doc: d}
`

func TestWalkFieldValues(t *testing.T) {
	sch := schemaFile(t, "w.yaml", walkSchemaYAML)

	tests := []struct {
		field string
		want  []string
	}{
		{field: "neurodata_type_def", want: []string{"Refs", "Holder"}},
		{field: "neurodata_type_inc", want: []string{"Data", "Container", "Table"}},
		{field: "target_type", want: []string{"Image", "Device"}},
		{field: "name", want: []string{"kind", "inner", "table", "ref"}},
		{field: "doc", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			assert.Equal(t, tt.want, WalkFieldValues(sch, tt.field))
		})
	}
}

func TestWalkTypes(t *testing.T) {
	sch := schemaFile(t, "w.yaml", walkSchemaYAML)

	assert.Len(t, WalkTypes[*nwbschema.Group](sch), 3)
	assert.Len(t, WalkTypes[*nwbschema.Dataset](sch), 2)
	assert.Len(t, WalkTypes[*nwbschema.Link](sch), 1)
	assert.Len(t, WalkTypes[nwbschema.Node](sch), 5)
}

func TestWalk_SkipsChildren(t *testing.T) {
	sch := schemaFile(t, "w.yaml", walkSchemaYAML)

	var visited int

	Walk(sch, func(v any) bool {
		visited++
		_, isGroup := v.(*nwbschema.Group)

		return !isGroup
	})

	// adapter, dataset, dtype, reference, attribute, attribute dtype, group
	assert.Equal(t, 7, visited)
}

func TestWalk_PlainValues(t *testing.T) {
	var strs []string

	Walk(map[string]any{
		"b": []any{"x", map[string]any{"z": "deep"}},
		"a": "first",
	}, func(v any) bool {
		if s, ok := v.(string); ok {
			strs = append(strs, s)
		}

		return true
	})

	assert.Equal(t, []string{"first", "x", "deep"}, strs)
}

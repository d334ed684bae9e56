package adapter

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/p2p-ld/nwb-linkml-sub001/internal/linkml"
)

func TestGroup_Container(t *testing.T) {
	g := group(t, `
name: processing
doc: processing modules
groups:
- {neurodata_type_inc: ProcessingModule, quantity: '*', doc: a module}
- {neurodata_type_inc: ProcessingModule, quantity: '+', doc: again}
- {neurodata_type_inc: DynamicTable, quantity: '*', doc: tables}
`)

	res, err := NewGroupAdapter(g, parentAdapter("NWBFile"), nil).Build()
	require.NoError(t, err)

	assert.Empty(t, res.Classes, spew.Sdump(res))
	require.Len(t, res.Slots, 1)

	slot := res.Slots[0]
	assert.Equal(t, "processing", slot.Name)
	assert.True(t, slot.Multivalued)
	assert.Equal(t, []linkml.AnonymousSlotExpression{
		{Range: "ProcessingModule"},
		{Range: "DynamicTable"},
	}, slot.AnyOf)
	assert.Equal(t, []string{"ProcessingModule", "DynamicTable"}, slot.Ranges())
}

func TestGroup_ContainerUnnamed(t *testing.T) {
	g := group(t, `{doc: d, groups: [{neurodata_type_inc: TimeSeries, quantity: '*', doc: ts}]}`)

	res, err := NewGroupAdapter(g, parentAdapter("P"), nil).Build()
	require.NoError(t, err)
	require.Len(t, res.Slots, 1)
	assert.Equal(t, "children", res.Slots[0].Name)
}

func TestGroup_NotContainer(t *testing.T) {
	// a named child disqualifies the container case
	g := group(t, `
name: acquisition
doc: d
groups:
- {neurodata_type_inc: TimeSeries, quantity: '*', doc: ts}
- {name: special, neurodata_type_inc: TimeSeries, doc: one}
`)

	res, err := NewGroupAdapter(g, parentAdapter("NWBFile"), nil).Build()
	require.NoError(t, err)

	assert.Equal(t, []string{"NWBFile__acquisition"}, res.ClassNames(), spew.Sdump(res))
	assert.Equal(t, []string{"name", "time_series", "special"}, attrNames(res.Classes[0]))
}

func TestGroup_Terminal(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want linkml.SlotDefinition
	}{
		{
			name: "named",
			src:  `{name: subject, neurodata_type_inc: Subject, quantity: '?', doc: who}`,
			want: linkml.SlotDefinition{Name: "subject", Description: "who", Range: "Subject"},
		},
		{
			name: "anonymous",
			src:  `{neurodata_type_inc: LabMetaData, quantity: '*', doc: meta}`,
			want: linkml.SlotDefinition{Name: "lab_meta_data", Description: "meta", Range: "LabMetaData", Multivalued: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := NewGroupAdapter(group(t, tt.src), parentAdapter("NWBFile"), nil).Build()
			require.NoError(t, err)

			assert.Empty(t, res.Classes)
			require.Len(t, res.Slots, 1)
			assert.Equal(t, tt.want, *res.Slots[0])
		})
	}
}

func TestGroup_Generic(t *testing.T) {
	g := group(t, `
neurodata_type_def: TimeSeries
neurodata_type_inc: NWBDataInterface
doc: a time series
attributes:
- {name: description, dtype: text, doc: d, default_value: no description, required: false}
datasets:
- name: data
  doc: values
  dims: [[num_times], [num_times, num_dim2]]
  shape: [[null], [null, null]]
  attributes:
  - {name: unit, dtype: text, doc: u}
- {name: starting_time, dtype: float64, quantity: '?', doc: start, attributes: [{name: rate, dtype: float32, doc: r}]}
- {name: timestamps, dtype: float64, quantity: '?', doc: ts, dims: [num_times], shape: [null]}
groups:
- name: sync
  doc: sync info
  quantity: '?'
links:
- {name: source, target_type: TimeSeries, quantity: '?', doc: linked source}
`)

	res, err := NewGroupAdapter(g, nil, nil).Build()
	require.NoError(t, err)

	assert.Equal(t, []string{
		"TimeSeries",
		"TimeSeries__data",
		"TimeSeries__data__Array",
		"TimeSeries__starting_time",
		"TimeSeries__sync",
	}, res.ClassNames(), spew.Sdump(res))
	assert.Empty(t, res.Slots)

	ts := res.Classes[0]
	assert.Equal(t, "NWBDataInterface", ts.IsA)
	assert.True(t, ts.TreeRoot)
	assert.Equal(t, []string{
		"name", "description", "data", "starting_time", "timestamps", "sync", "source",
	}, attrNames(ts))

	assert.Equal(t, "string(no description)", ts.Attribute("description").IfAbsent)
	assert.Equal(t, "TimeSeries__data", ts.Attribute("data").Range)
	assert.Equal(t, "float64", ts.Attribute("timestamps").Range)
	assert.True(t, ts.Attribute("timestamps").Multivalued)
	assert.Equal(t, "TimeSeries__sync", ts.Attribute("sync").Range)

	source := ts.Attribute("source")
	assert.Equal(t, "TimeSeries", source.Range)
	assert.False(t, source.Required)
	kind, ok := source.Annotations.Get("source_type")
	assert.True(t, ok)
	assert.Equal(t, "link", kind)

	data := res.Classes[1]
	assert.Equal(t, "TimeSeries__data__Array", data.Attribute("array").Range)
	assert.False(t, data.TreeRoot)

	start := res.Classes[3]
	assert.Equal(t, "float64", start.Attribute("value").Range)
}

func TestGroup_NestedNaming(t *testing.T) {
	g := group(t, `
neurodata_type_def: A
doc: a
groups:
- name: mid
  doc: m
  groups:
  - name: leaf
    doc: l
    groups:
    - {name: deep, doc: d}
`)

	res, err := NewGroupAdapter(g, nil, nil).Build()
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "A__mid", "mid__leaf", "leaf__deep"}, res.ClassNames())
	assert.Equal(t, "leaf__deep", res.Classes[2].Attribute("deep").Range)
}

func TestGroup_LinkWithoutName(t *testing.T) {
	g := group(t, `{neurodata_type_def: G, doc: g, links: [{target_type: ElectrodeGroup, doc: e}]}`)

	res, err := NewGroupAdapter(g, nil, nil).Build()
	require.NoError(t, err)

	slot := res.Classes[0].Attribute("electrode_group")
	require.NotNil(t, slot)
	assert.True(t, slot.Required)
}

func TestGroup_PropagatesErrors(t *testing.T) {
	g := group(t, `{neurodata_type_def: G, doc: g, datasets: [{name: d, doc: d, dtype: int, dims: [x]}]}`)

	_, err := NewGroupAdapter(g, nil, nil).Build()
	assert.ErrorIs(t, err, ErrMalformedShape)
}

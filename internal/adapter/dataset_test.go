package adapter

import (
	"errors"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/p2p-ld/nwb-linkml-sub001/internal/maps"
)

func TestDataset_ScalarCollapsesToSlot(t *testing.T) {
	ds := dataset(t, `{name: MyScalar, dtype: int32, quantity: '?', doc: a scalar}`)

	res, err := NewDatasetAdapter(ds, nil, nil).Build()
	require.NoError(t, err)

	assert.Empty(t, res.Classes, spew.Sdump(res))
	require.Len(t, res.Slots, 1)

	slot := res.Slots[0]
	assert.Equal(t, "MyScalar", slot.Name)
	assert.Equal(t, "int32", slot.Range)
	assert.False(t, slot.Required)
	assert.False(t, slot.Multivalued)
}

func TestDataset_ImageArrayVariants(t *testing.T) {
	ds := dataset(t, `
neurodata_type_def: Image
neurodata_type_inc: NWBData
dtype: numeric
doc: An image.
dims: [[x, y], [x, y, rgb], [x, y, rgb, a]]
shape: [[null, null], [null, null, 3], [null, null, 3, 4]]
attributes:
- {name: resolution, dtype: float32, doc: pixels per cm, required: false}
- {name: description, dtype: text, doc: what, required: false}
`)

	res, err := NewDatasetAdapter(ds, nil, nil).Build()
	require.NoError(t, err)

	assert.Equal(t, []string{"Image", "Image__Array"}, res.ClassNames(), spew.Sdump(res))
	assert.Empty(t, res.Slots)

	image := res.Classes[0]
	assert.Equal(t, []string{"name", "resolution", "description", "array"}, attrNames(image))
	assert.Equal(t, "Image__Array", image.Attribute("array").Range)

	array := res.Classes[1]
	assert.Equal(t, maps.ArraylikeClass, array.IsA)
	assert.Equal(t, []string{"x", "y", "rgb", "a"}, attrNames(array))

	for _, dim := range []string{"x", "y"} {
		assert.True(t, array.Attribute(dim).Required, dim)
		assert.Nil(t, array.Attribute(dim).MinimumCardinality, dim)
	}

	rgb, alpha := array.Attribute("rgb"), array.Attribute("a")
	assert.False(t, rgb.Required)
	assert.Equal(t, intp(3), rgb.MinimumCardinality)
	assert.Equal(t, intp(3), rgb.MaximumCardinality)
	assert.False(t, alpha.Required)
	assert.Equal(t, intp(4), alpha.MaximumCardinality)
	assert.Equal(t, "numeric", rgb.Range)
}

func TestMakeArraylike(t *testing.T) {
	t.Run("requiredness follows variants", func(t *testing.T) {
		ds := dataset(t, `{neurodata_type_def: D, doc: d, dims: [[x, y], [x, y, z]], shape: [[null, null], [null, null, null]]}`)

		cls, err := MakeArraylike(ds, "float32", "")
		require.NoError(t, err)

		assert.Equal(t, "D__Array", cls.Name)
		assert.True(t, cls.Attribute("x").Required)
		assert.True(t, cls.Attribute("y").Required)
		assert.False(t, cls.Attribute("z").Required)
	})

	t.Run("single variant is all required", func(t *testing.T) {
		ds := dataset(t, `{name: data, doc: d, dims: [t, c], shape: [null, 2]}`)

		cls, err := MakeArraylike(ds, "float32", "Series__data")
		require.NoError(t, err)

		assert.Equal(t, "Series__data__Array", cls.Name)
		assert.True(t, cls.Attribute("t").Required)
		assert.True(t, cls.Attribute("c").Required)
		assert.Equal(t, intp(2), cls.Attribute("c").MinimumCardinality)
	})

	t.Run("repeated pairs collapse", func(t *testing.T) {
		ds := dataset(t, `{name: d, doc: d, dims: [[a], [a, b]], shape: [[3], [3, null]]}`)

		cls, err := MakeArraylike(ds, "int", "")
		require.NoError(t, err)

		assert.Equal(t, []string{"a", "b"}, attrNames(cls))
		assert.Equal(t, "d__Array", cls.Name)
	})

	t.Run("conflicting fixed sizes", func(t *testing.T) {
		ds := dataset(t, `{name: d, doc: d, dims: [[x, rgb], [x, rgb]], shape: [[null, 3], [null, 4]]}`)

		_, err := MakeArraylike(ds, "int", "")
		require.ErrorIs(t, err, ErrMalformedShape)
		assert.Contains(t, err.Error(), "dimension rgb has sizes 3 and 4")

		var shapeErr *ShapeError
		require.ErrorAs(t, err, &shapeErr)
		assert.Equal(t, "d", shapeErr.Dataset)
	})

	t.Run("unsized then sized keeps the first", func(t *testing.T) {
		ds := dataset(t, `{name: d, doc: d, dims: [[x, c], [x, c]], shape: [[null, null], [null, 2]]}`)

		cls, err := MakeArraylike(ds, "int", "")
		require.NoError(t, err)
		assert.Nil(t, cls.Attribute("c").MinimumCardinality)
	})

	t.Run("needs a name", func(t *testing.T) {
		ds := dataset(t, `{neurodata_type_inc: VectorData, doc: d, dims: [a], shape: [null]}`)

		_, err := MakeArraylike(ds, "int", "")
		assert.ErrorIs(t, err, ErrNaming)
	})
}

func TestDataset_Patterns(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		nested  bool
		want    PatternKind
		classes []string
		slots   []string
	}{
		{
			name:   "scalar",
			src:    `{name: rate, dtype: float32, doc: r}`,
			nested: true,
			want:   PatternScalar,
			slots:  []string{"rate"},
		},
		{
			name:    "scalar with attributes",
			src:     `{name: unit, dtype: text, doc: u, attributes: [{name: system, dtype: text, doc: s}]}`,
			nested:  true,
			want:    PatternScalarAttributes,
			classes: []string{"Parent__unit"},
			slots:   []string{"unit"},
		},
		{
			name:   "vector",
			src:    `{name: start_time, neurodata_type_inc: VectorData, dtype: float32, doc: s}`,
			nested: true,
			want:   PatternVector,
			slots:  []string{"start_time"},
		},
		{
			name:    "listlike",
			src:     `{neurodata_type_def: ImageReferences, neurodata_type_inc: NWBData, doc: r, dtype: {target_type: Image, reftype: object}, dims: [num_images], shape: [null]}`,
			want:    PatternListlike,
			classes: []string{"ImageReferences"},
		},
		{
			name:   "nvectors",
			src:    `{neurodata_type_inc: VectorData, quantity: '*', doc: columns}`,
			nested: true,
			want:   PatternNVectors,
			slots:  []string{"vector_data"},
		},
		{
			name:    "arraylike with attributes",
			src:     `{name: data, doc: d, dims: [[t], [t, c]], shape: [[null], [null, null]], attributes: [{name: unit, dtype: text, doc: u}]}`,
			nested:  true,
			want:    PatternArraylikeAttributes,
			classes: []string{"Parent__data", "Parent__data__Array"},
			slots:   []string{"data"},
		},
		{
			name:    "arraylike",
			src:     `{name: data, dtype: float32, doc: d, dims: [[t], [t, c]], shape: [[null], [null, null]]}`,
			nested:  true,
			want:    PatternArraylike,
			classes: []string{"Parent__data__Array"},
			slots:   []string{"data"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := dataset(t, tt.src)

			var parent *ClassAdapter
			if tt.nested {
				parent = parentAdapter("Parent")
			}

			a := NewDatasetAdapter(ds, parent, nil)
			name, err := a.ClassName()
			require.NoError(t, err)

			dtype, err := handleDType(ds.DType, nil, name)
			require.NoError(t, err)

			ctx := &datasetContext{ds: ds, dtype: dtype, name: name}

			var matched []PatternKind

			for _, p := range DatasetPatterns {
				if p.check(ctx) {
					matched = append(matched, p.kind)
				}
			}

			assert.Equal(t, []PatternKind{tt.want}, matched)

			res, err := a.Build()
			require.NoError(t, err)

			if len(tt.classes) > 0 {
				assert.Equal(t, tt.classes, res.ClassNames(), spew.Sdump(res))
			} else {
				assert.Empty(t, res.Classes, spew.Sdump(res))
			}

			if len(tt.slots) > 0 {
				assert.Equal(t, tt.slots, res.SlotNames())
			} else {
				assert.Empty(t, res.Slots)
			}
		})
	}
}

func TestDataset_PatternDetails(t *testing.T) {
	t.Run("value slot", func(t *testing.T) {
		ds := dataset(t, `{name: unit, dtype: text, doc: u, attributes: [{name: system, dtype: text, doc: s}]}`)
		res, err := NewDatasetAdapter(ds, parentAdapter("P"), nil).Build()
		require.NoError(t, err)

		value := res.Classes[0].Attribute("value")
		require.NotNil(t, value)
		assert.Equal(t, "text", value.Range)
		assert.True(t, value.Required)
	})

	t.Run("listlike slot", func(t *testing.T) {
		ds := dataset(t, `{neurodata_type_def: ImageReferences, doc: r, dtype: {target_type: Image}, dims: [n], shape: [null]}`)
		res, err := NewDatasetAdapter(ds, nil, nil).Build()
		require.NoError(t, err)

		slot := res.Classes[0].Attribute("image")
		require.NotNil(t, slot)
		assert.Equal(t, "Image", slot.Range)
		assert.True(t, slot.Multivalued)
		assert.True(t, slot.Required)
	})

	t.Run("single dimension becomes a list slot", func(t *testing.T) {
		ds := dataset(t, `{name: timestamps, dtype: float64, doc: t, quantity: '?', dims: [num_times], shape: [null]}`)
		res, err := NewDatasetAdapter(ds, parentAdapter("P"), nil).Build()
		require.NoError(t, err)

		assert.Empty(t, res.Classes)
		require.Len(t, res.Slots, 1)
		assert.Equal(t, "float64", res.Slots[0].Range)
		assert.True(t, res.Slots[0].Multivalued)
		assert.False(t, res.Slots[0].Required)
	})

	t.Run("nvectors cardinality", func(t *testing.T) {
		ds := dataset(t, `{neurodata_type_inc: VectorIndex, quantity: '+', doc: idx}`)
		res, err := NewDatasetAdapter(ds, parentAdapter("P"), nil).Build()
		require.NoError(t, err)

		slot := res.Slots[0]
		assert.Equal(t, "vector_index", slot.Name)
		assert.Equal(t, "VectorIndex", slot.Range)
		assert.True(t, slot.Required)
		assert.True(t, slot.Multivalued)
	})
}

func TestDataset_AmbiguousPatterns(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []PatternKind
	}{
		{
			name: "nvectors and arraylike",
			src:  `{neurodata_type_inc: Foo, quantity: '*', doc: d, dtype: float32, dims: [[x, y]], shape: [[null, null]], attributes: [{name: a, dtype: text, doc: a}]}`,
			want: []PatternKind{PatternNVectors, PatternArraylikeAttributes},
		},
		{
			name: "listlike and nvectors",
			src:  `{neurodata_type_inc: Foo, quantity: '+', doc: d, dtype: {target_type: Bar}, dims: [n], shape: [null]}`,
			want: []PatternKind{PatternListlike, PatternNVectors},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDatasetAdapter(dataset(t, tt.src), parentAdapter("P"), nil).Build()
			require.ErrorIs(t, err, ErrPatternAmbiguous)

			var perr *PatternError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, tt.want, perr.Matched)
		})
	}
}

func TestDataset_NoPattern(t *testing.T) {
	src := `{name: order_of_images, neurodata_type_inc: ImageReferences, quantity: '?', doc: order}`

	res, err := NewDatasetAdapter(dataset(t, src), parentAdapter("Images"), nil).Build()
	require.NoError(t, err)
	assert.Equal(t, []string{"Images__order_of_images"}, res.ClassNames())
	assert.Equal(t, "ImageReferences", res.Classes[0].IsA)
	require.Len(t, res.Slots, 1)
	assert.Equal(t, "Images__order_of_images", res.Slots[0].Range)

	_, err = NewDatasetAdapter(dataset(t, src), parentAdapter("Images"), &Options{Strict: true}).Build()
	assert.ErrorIs(t, err, ErrPatternMissing)
}

func TestDataset_MalformedShape(t *testing.T) {
	tests := map[string]string{
		"dims without shape": `{name: d, doc: d, dtype: int, dims: [x]}`,
		"shape without dims": `{name: d, doc: d, dtype: int, shape: [3]}`,
		"length mismatch":    `{name: d, doc: d, dtype: int, dims: [x, y], shape: [3]}`,
	}

	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := NewDatasetAdapter(dataset(t, src), parentAdapter("P"), nil).Build()
			assert.ErrorIs(t, err, ErrMalformedShape)
		})
	}
}

func TestPatternKind_String(t *testing.T) {
	assert.Equal(t, "PatternScalar", PatternScalar.String())
	assert.Equal(t, "PatternArraylike", PatternArraylike.String())
	assert.Equal(t, "PatternKind(0)", PatternKind(0).String())
}

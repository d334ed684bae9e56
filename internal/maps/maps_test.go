package maps

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/p2p-ld/nwb-linkml-sub001/internal/nwbschema"
)

func TestLinkMLType(t *testing.T) {
	tests := []struct {
		dtype string
		want  string
	}{
		{"float32", "float"},
		{"float64", "double"},
		{"int8", "integer"},
		{"uint64", "integer"},
		{"numeric", "float"},
		{"utf8", "string"},
		{"ascii", "string"},
		{"bool", "boolean"},
		{"isodatetime", "date"},
	}

	for _, tt := range tests {
		t.Run(tt.dtype, func(t *testing.T) {
			got, err := LinkMLType(tt.dtype)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, IsFlat(tt.dtype))
		})
	}

	_, err := LinkMLType("complex128")

	var unknown *UnknownDTypeError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "complex128", unknown.DType)
	assert.False(t, IsFlat(AnyType))
}

func TestNPTypingType(t *testing.T) {
	got, ok := NPTypingType("long")
	require.True(t, ok)
	assert.Equal(t, "LongLong", got)

	got, ok = NPTypingType(AnyType)
	require.True(t, ok)
	assert.Equal(t, "Any", got)

	_, ok = NPTypingType("TimeSeries")
	assert.False(t, ok)
}

func TestQuantity(t *testing.T) {
	tests := []struct {
		q    nwbschema.Quantity
		want Cardinality
	}{
		{nwbschema.QuantityZeroOrMany, Cardinality{Required: false, Multivalued: true}},
		{nwbschema.QuantityOneOrMany, Cardinality{Required: true, Multivalued: true}},
		{nwbschema.QuantityOptional, Cardinality{Required: false, Multivalued: false}},
		{nwbschema.QuantityOne, Cardinality{Required: true, Multivalued: false}},
	}

	for _, tt := range tests {
		t.Run(string(tt.q), func(t *testing.T) {
			got, err := Quantity(tt.q)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := Quantity("2")
	assert.Error(t, err)
}

func TestLanguageSchema(t *testing.T) {
	schema := LanguageSchema("core")

	assert.Equal(t, "core.nwb.language", schema.Name)
	assert.Equal(t, "nwb.language", LanguageSchemaName(""))

	assert.Nil(t, schema.Types.Get("float"), "identical names need no alias")
	assert.Nil(t, schema.Types.Get("double"))

	f32 := schema.Types.Get("float32")
	require.NotNil(t, f32)
	assert.Equal(t, "float", f32.Typeof)
	assert.Nil(t, f32.MinimumValue)

	u8 := schema.Types.Get("uint8")
	require.NotNil(t, u8)
	require.NotNil(t, u8.MinimumValue)
	assert.Equal(t, 0, *u8.MinimumValue)

	require.NotNil(t, schema.Classes.Get(ArraylikeClass))
	assert.True(t, schema.Classes.Get(ArraylikeClass).Abstract)
	assert.Equal(t, "linkml:Any", schema.Classes.Get(AnyType).ClassURI)

	// Each call yields an independent schema.
	other := LanguageSchema("core")
	other.Types[0].Typeof = "changed"
	assert.NotEqual(t, "changed", schema.Types[0].Typeof)
}

package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"TimeSeries", "TimeSerie", 1},
		{"ABC", "abc", 3},
		{"naïve", "naive", 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, Levenshtein(tt.a, tt.b))
			assert.Equal(t, tt.want, Levenshtein(tt.b, tt.a))
		})
	}
}

func TestLevenshteinNormalized(t *testing.T) {
	assert.InDelta(t, 1.0, LevenshteinNormalized("", ""), 1e-9)
	assert.InDelta(t, 0.0, LevenshteinNormalized("abc", "xyz"), 1e-9)
	assert.InDelta(t, 1.0, NormalizedLevenshteinScore("TimeSeries", "time_series"), 1e-9)
}

func TestCamelToSnake(t *testing.T) {
	tests := map[string]string{
		"TimeSeries":         "time_series",
		"NWBFile":            "nwb_file",
		"IZeroClampSeries":   "i_zero_clamp_series",
		"VectorData":         "vector_data",
		"DynamicTableRegion": "dynamic_table_region",
		"Image":              "image",
		"Test2D":             "test2_d",
		"already_snake":      "already_snake",
		"":                   "",
	}

	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, CamelToSnake(in))
		})
	}
}

func TestCamelCase(t *testing.T) {
	tests := map[string]string{
		"TimeSeries__data": "TimeSeriesData",
		"core.nwb.base":    "CoreNwbBase",
		"Image__Array":     "ImageArray",
		"NWBFile":          "NWBFile",
		"hdmf-common":      "HdmfCommon",
	}

	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, CamelCase(in))
		})
	}
}

func TestSuggest(t *testing.T) {
	known := []string{"TimeSeries", "TimeIntervals", "Image", "ImageSeries", "VectorData"}

	got := Suggest("TimeSerie", known, 3)
	assert.Equal(t, "TimeSeries", got[0])
	assert.NotContains(t, got, "VectorData")

	assert.Empty(t, Suggest("Completely", known, 3))
	assert.Len(t, Suggest("Image", known, 1), 1)
}

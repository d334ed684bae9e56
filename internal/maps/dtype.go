package maps

import (
	"fmt"
	"sort"
)

// AnyType is the range used for datasets and attributes without a usable dtype.
const AnyType = "AnyType"

var flatToLinkML = map[string]string{
	"float":       "float",
	"float32":     "float",
	"double":      "double",
	"float64":     "double",
	"long":        "integer",
	"int64":       "integer",
	"int":         "integer",
	"int32":       "integer",
	"int16":       "integer",
	"short":       "integer",
	"int8":        "integer",
	"uint":        "integer",
	"uint32":      "integer",
	"uint16":      "integer",
	"uint8":       "integer",
	"uint64":      "integer",
	"numeric":     "float",
	"text":        "string",
	"utf":         "string",
	"utf8":        "string",
	"utf_8":       "string",
	"ascii":       "string",
	"bool":        "boolean",
	"isodatetime": "date",
}

var flatToNPTyping = map[string]string{
	"float":       "Float",
	"float32":     "Float32",
	"double":      "Double",
	"float64":     "Float64",
	"long":        "LongLong",
	"int64":       "Int64",
	"int":         "Int",
	"int32":       "Int32",
	"int16":       "Int16",
	"short":       "Short",
	"int8":        "Int8",
	"uint":        "UInt",
	"uint32":      "UInt32",
	"uint16":      "UInt16",
	"uint8":       "UInt8",
	"uint64":      "UInt64",
	"numeric":     "Number",
	"text":        "String",
	"utf":         "Unicode",
	"utf8":        "Unicode",
	"utf_8":       "Unicode",
	"ascii":       "String",
	"bool":        "Bool",
	"isodatetime": "Datetime64",
	AnyType:       "Any",
}

var unsigned = map[string]bool{
	"uint":   true,
	"uint8":  true,
	"uint16": true,
	"uint32": true,
	"uint64": true,
}

// UnknownDTypeError reports a flat dtype name outside the NWB primitive set.
type UnknownDTypeError struct {
	DType string
}

func (e *UnknownDTypeError) Error() string {
	return fmt.Sprintf("unknown flat dtype %q", e.DType)
}

// LinkMLType returns the LinkML builtin type a flat dtype aliases.
func LinkMLType(dtype string) (string, error) {
	t, ok := flatToLinkML[dtype]
	if !ok {
		return "", &UnknownDTypeError{DType: dtype}
	}

	return t, nil
}

// IsFlat reports whether dtype is one of the NWB primitive dtypes.
func IsFlat(dtype string) bool {
	_, ok := flatToLinkML[dtype]
	return ok
}

// IsUnsigned reports whether the flat dtype cannot hold negative values.
func IsUnsigned(dtype string) bool {
	return unsigned[dtype]
}

// NPTypingType returns the array element type name for dtype.
func NPTypingType(dtype string) (string, bool) {
	t, ok := flatToNPTyping[dtype]
	return t, ok
}

// FlatDTypes returns the NWB primitive dtype names in sorted order.
func FlatDTypes() []string {
	names := make([]string, 0, len(flatToLinkML))
	for name := range flatToLinkML {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Package linkml holds the subset of the LinkML metamodel this project emits
// and consumes: schemas, classes, slots, types and enums.
//
// Named collections are kept as ordered slices and written as YAML mappings
// keyed by element name, so output is byte-for-byte deterministic. SchemaView
// resolves imports, element ownership and inheritance across a set of loaded
// schemas.
package linkml

// Package maps holds the fixed translation tables between the NWB schema
// language and LinkML: flat dtypes to LinkML and array element types,
// quantity markers to cardinality, and the synthesized language schema that
// declares the dtype aliases.
package maps

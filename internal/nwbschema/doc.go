// Package nwbschema models the NWB schema language: namespace files, schema
// files and the group, dataset, attribute and link definitions inside them.
//
// The types here are a read-only view of the YAML sources. Decoding
// normalizes the loose spellings the language allows (quantity words, flat
// versus nested dims, data_type_* keys used by hdmf schemas) so the adapters
// only ever see one canonical form.
package nwbschema

package maps

import "github.com/p2p-ld/nwb-linkml-sub001/internal/linkml"

// ArraylikeClass is the abstract base of every synthesized array class.
const ArraylikeClass = "Arraylike"

// LanguageSchemaName returns the name of the language schema for a namespace.
func LanguageSchemaName(namespace string) string {
	if namespace == "" {
		return "nwb.language"
	}

	return namespace + ".nwb.language"
}

// LanguageSchema builds a fresh language schema for namespace: a type alias
// for every flat dtype whose name differs from its LinkML type, plus the
// Arraylike and AnyType support classes.
func LanguageSchema(namespace string) *linkml.SchemaDefinition {
	name := LanguageSchemaName(namespace)

	schema := &linkml.SchemaDefinition{
		Name:          name,
		ID:            name,
		Description:   "Adapter objects to mimic the behavior of elements in the nwb-schema-language",
		Imports:       []string{linkml.TypesImport},
		Prefixes:      map[string]string{"linkml": "https://w3id.org/linkml/"},
		DefaultPrefix: name + "/",
	}

	for _, dtype := range FlatDTypes() {
		base := flatToLinkML[dtype]
		if dtype == base {
			continue
		}

		t := &linkml.TypeDefinition{Name: dtype, Typeof: base}
		if IsUnsigned(dtype) {
			zero := 0
			t.MinimumValue = &zero
		}

		schema.Types = append(schema.Types, t)
	}

	schema.Classes = linkml.Classes{
		{
			Name:        ArraylikeClass,
			Description: "Container for arraylike information held in the dims, shape, and dtype properties.",
			Abstract:    true,
		},
		{
			Name:     AnyType,
			ClassURI: "linkml:Any",
		},
	}

	return schema
}

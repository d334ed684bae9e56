package linkml

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const yamlIndent = 2

// Dump serializes a schema to YAML.
func Dump(schema *SchemaDefinition) ([]byte, error) {
	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(yamlIndent)

	if err := enc.Encode(schema); err != nil {
		return nil, fmt.Errorf("failed to encode schema %s: %w", schema.Name, err)
	}

	if err := enc.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Parse parses YAML data into a SchemaDefinition.
func Parse(data []byte) (*SchemaDefinition, error) {
	var schema SchemaDefinition
	if err := yaml.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("failed to parse linkml YAML: %w", err)
	}

	if schema.Name == "" {
		return nil, errors.New("schema has no name")
	}

	return &schema, nil
}

// LoadFile loads one schema file.
func LoadFile(path string) (*SchemaDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file %s: %w", path, err)
	}

	schema, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return schema, nil
}

// LoadTree loads the schema at path and every schema it imports, resolving
// import names as paths relative to the importing file. Imports are rewritten
// to the loaded schemas' names. The root schema comes first.
func LoadTree(path string) ([]*SchemaDefinition, error) {
	loaded := make(map[string]*SchemaDefinition)

	var order []*SchemaDefinition

	var load func(path string) (*SchemaDefinition, error)
	load = func(path string) (*SchemaDefinition, error) {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, err
		}

		if schema, ok := loaded[abs]; ok {
			return schema, nil
		}

		schema, err := LoadFile(abs)
		if err != nil {
			return nil, err
		}

		loaded[abs] = schema
		order = append(order, schema)

		for i, imp := range schema.Imports {
			if isBuiltinImport(imp) {
				continue
			}

			dep, err := load(filepath.Join(filepath.Dir(abs), importFile(imp)))
			if err != nil {
				return nil, fmt.Errorf("import %q of %s: %w", imp, schema.Name, err)
			}

			schema.Imports[i] = dep.Name
		}

		return schema, nil
	}

	if _, err := load(path); err != nil {
		return nil, err
	}

	return order, nil
}

func isBuiltinImport(name string) bool {
	return strings.HasPrefix(name, "linkml:")
}

func importFile(name string) string {
	name = filepath.FromSlash(name)
	if strings.HasSuffix(name, ".yaml") {
		return name
	}

	return name + ".yaml"
}

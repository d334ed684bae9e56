package nwbschema

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// hdmf schemas spell the type keys without the "neuro" prefix.
var keyAliases = map[string]string{
	"data_type_def": "neurodata_type_def",
	"data_type_inc": "neurodata_type_inc",
	"data_types":    "neurodata_types",
}

// LoadNamespaces loads and parses a namespace file from the given path.
func LoadNamespaces(path string) (*Namespaces, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read namespace file %s: %w", path, err)
	}

	ns, err := ParseNamespaces(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return ns, nil
}

// ParseNamespaces parses YAML data into Namespaces.
func ParseNamespaces(data []byte) (*Namespaces, error) {
	var ns Namespaces
	if err := decode(data, &ns); err != nil {
		return nil, fmt.Errorf("failed to parse namespace YAML: %w", err)
	}

	if len(ns.Namespaces) == 0 {
		return nil, errors.New("no namespaces declared")
	}

	return &ns, nil
}

// LoadSchema loads and parses a schema file from the given path.
func LoadSchema(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file %s: %w", path, err)
	}

	sch, err := ParseSchema(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return sch, nil
}

// ParseSchema parses YAML data into a Schema.
func ParseSchema(data []byte) (*Schema, error) {
	var sch Schema
	if err := decode(data, &sch); err != nil {
		return nil, fmt.Errorf("failed to parse schema YAML: %w", err)
	}

	return &sch, nil
}

// SourceStem returns the file name of a schema source without its .yaml
// extension, which is how schema files are named inside a namespace.
func SourceStem(source string) string {
	base := filepath.Base(source)
	for _, ext := range []string{".yaml", ".yml"} {
		if strings.HasSuffix(base, ext) {
			return strings.TrimSuffix(base, ext)
		}
	}

	return base
}

func decode(data []byte, out any) error {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return err
	}

	if root.Kind == 0 {
		return nil
	}

	normalizeKeys(&root)

	return root.Decode(out)
}

func normalizeKeys(node *yaml.Node) {
	if node.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i]
			if alias, ok := keyAliases[key.Value]; ok {
				key.Value = alias
			}
		}
	}

	for _, child := range node.Content {
		normalizeKeys(child)
	}
}

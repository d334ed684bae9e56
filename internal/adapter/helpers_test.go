package adapter

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/p2p-ld/nwb-linkml-sub001/internal/linkml"
	"github.com/p2p-ld/nwb-linkml-sub001/internal/nwbschema"
)

func dataset(t *testing.T, src string) *nwbschema.Dataset {
	t.Helper()

	var ds nwbschema.Dataset
	require.NoError(t, yaml.Unmarshal([]byte(src), &ds))

	return &ds
}

func group(t *testing.T, src string) *nwbschema.Group {
	t.Helper()

	var g nwbschema.Group
	require.NoError(t, yaml.Unmarshal([]byte(src), &g))

	return &g
}

func schemaFile(t *testing.T, path, src string) *SchemaAdapter {
	t.Helper()

	sch, err := nwbschema.ParseSchema([]byte(src))
	require.NoError(t, err)

	return NewSchemaAdapter(path, sch, nil)
}

func parentAdapter(name string) *ClassAdapter {
	g := &nwbschema.Group{Common: nwbschema.Common{NeurodataTypeDef: name}}
	return &NewGroupAdapter(g, nil, nil).ClassAdapter
}

func attrNames(c *linkml.ClassDefinition) []string {
	names := make([]string, len(c.Attributes))
	for i, a := range c.Attributes {
		names[i] = a.Name
	}

	return names
}

func intp(n int) *int { return &n }

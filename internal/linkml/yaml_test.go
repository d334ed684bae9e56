package linkml

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolp(b bool) *bool { return &b }

func TestDump_OrderedMappings(t *testing.T) {
	schema := &SchemaDefinition{
		Name:    "core.nwb.base",
		ID:      "core.nwb.base",
		Imports: []string{"core.nwb.language"},
		Classes: Classes{
			{
				Name:     "Zeta",
				TreeRoot: true,
				Attributes: Slots{
					{Name: "name", Range: "string", Required: true, Identifier: true},
				},
			},
			{Name: "Alpha", IsA: "Zeta"},
		},
		Annotations: Annotations{{Tag: "namespace", Value: true}},
	}

	data, err := Dump(schema)
	require.NoError(t, err)

	assert.Equal(t, `name: core.nwb.base
id: core.nwb.base
annotations:
  namespace: true
imports:
  - core.nwb.language
classes:
  Zeta:
    name: Zeta
    tree_root: true
    attributes:
      name:
        name: name
        range: string
        required: true
        identifier: true
  Alpha:
    name: Alpha
    is_a: Zeta
`, string(data))
}

func TestParse_RoundTripKeepsOrderAndNames(t *testing.T) {
	schema, err := Parse([]byte(`
name: demo
id: demo
classes:
  B:
    attributes:
      x:
        range: integer
        inlined: false
  A:
    is_a: B
enums:
  Color:
    permissible_values:
      red:
      green:
        description: leaves
types:
  int32:
    typeof: integer
annotations:
  source:
    tag: source
    value: file.yaml
`))
	require.NoError(t, err)

	assert.Equal(t, []string{"B", "A"}, schema.Classes.Names())
	x := schema.Classes.Get("B").Attribute("x")
	require.NotNil(t, x)
	assert.Equal(t, "x", x.Name)
	assert.Equal(t, boolp(false), x.Inlined)

	color := schema.Enums.Get("Color")
	require.NotNil(t, color)
	require.Len(t, color.PermissibleValues, 2)
	assert.Equal(t, "red", color.PermissibleValues[0].Text)
	assert.Equal(t, "leaves", color.PermissibleValues[1].Description)

	assert.Equal(t, "integer", schema.Types.Get("int32").Typeof)

	v, ok := schema.Annotations.Get("source")
	require.True(t, ok)
	assert.Equal(t, "file.yaml", v)

	_, err = Parse([]byte("id: nameless\n"))
	assert.Error(t, err)
}

func TestClassDefinition_SetAttributeAndClone(t *testing.T) {
	c := &ClassDefinition{Name: "C", Attributes: Slots{{Name: "a", Range: "string"}}}

	c.SetAttribute(&SlotDefinition{Name: "value", Range: "float"})
	c.SetAttribute(&SlotDefinition{Name: "a", Range: "integer"})

	require.Len(t, c.Attributes, 2)
	assert.Equal(t, "integer", c.Attribute("a").Range)

	clone := c.Clone()
	clone.Attribute("a").Range = "boolean"
	clone.Mixins = append(clone.Mixins, "M")

	assert.Equal(t, "integer", c.Attribute("a").Range)
	assert.Empty(t, c.Mixins)
}

func TestAnnotations_Set(t *testing.T) {
	var a Annotations

	a = a.Set("k", 1)
	a = a.Set("k", 2)
	a = a.Set("j", "x")

	require.Len(t, a, 2)
	v, _ := a.Get("k")
	assert.Equal(t, 2, v)
}

func TestLoadTree_RelativeImports(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "hdmf-common", "v1_8_0")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	write := func(path, body string) {
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	}

	write(filepath.Join(dir, "namespace.yaml"), `name: core
id: core
imports:
  - core.nwb.base
  - hdmf-common/v1_8_0/namespace
  - linkml:types
`)
	write(filepath.Join(dir, "core.nwb.base.yaml"), "name: core.nwb.base\nid: core.nwb.base\nimports: [hdmf-common/v1_8_0/namespace]\n")
	write(filepath.Join(sub, "namespace.yaml"), "name: hdmf-common\nid: hdmf-common\n")

	schemas, err := LoadTree(filepath.Join(dir, "namespace.yaml"))
	require.NoError(t, err)
	require.Len(t, schemas, 3)

	assert.Equal(t, "core", schemas[0].Name)
	assert.Equal(t, []string{"core.nwb.base", "hdmf-common", "linkml:types"}, schemas[0].Imports)
	assert.Equal(t, []string{"hdmf-common"}, schemas[1].Imports)

	_, err = LoadTree(filepath.Join(dir, "absent.yaml"))
	assert.Error(t, err)
}

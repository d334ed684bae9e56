package adapter

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/p2p-ld/nwb-linkml-sub001/internal/linkml"
	"github.com/p2p-ld/nwb-linkml-sub001/internal/maps"
	"github.com/p2p-ld/nwb-linkml-sub001/internal/nwbschema"
)

// IncludeSuffix names the half of a split schema holding nested classes.
const IncludeSuffix = linkml.IncludeSuffix

// Import is a dependency of a schema file: another loaded file, or a bare
// schema name.
type Import struct {
	Schema *SchemaAdapter
	Name   string
}

// ImportName returns the schema name the import refers to.
func (i Import) ImportName() string {
	if i.Schema != nil {
		return i.Schema.Name()
	}

	return i.Name
}

// SchemaAdapter translates one schema file.
type SchemaAdapter struct {
	Path     string
	Groups   []*nwbschema.Group
	Datasets []*nwbschema.Dataset
	Imports  []Import
	// Namespace is stamped by the NamespacesAdapter that owns this file.
	Namespace string
	// Split emits nested classes into a separate include schema.
	Split bool
	// Version is written into the built schema.
	Version string

	opts    *Options
	created []nwbschema.Node
}

// NewSchemaAdapter wraps a parsed schema file found at path.
func NewSchemaAdapter(path string, sch *nwbschema.Schema, opts *Options) *SchemaAdapter {
	if opts == nil {
		opts = &Options{}
	}

	return &SchemaAdapter{
		Path:     path,
		Groups:   sch.Groups,
		Datasets: sch.Datasets,
		opts:     opts,
	}
}

// Name is "<namespace>.<file stem>", or just the stem before the namespace
// is known.
func (a *SchemaAdapter) Name() string {
	stem := nwbschema.SourceStem(a.Path)
	if a.Namespace == "" {
		return stem
	}

	return a.Namespace + "." + stem
}

// Build translates every top-level dataset and group and wraps the classes
// in one schema, or two when Split is set.
func (a *SchemaAdapter) Build() (BuildResult, error) {
	var res BuildResult

	for _, ds := range a.Datasets {
		built, err := NewDatasetAdapter(ds, nil, a.opts).Build()
		if err != nil {
			return BuildResult{}, err
		}

		res = res.Add(built)
	}

	for _, g := range a.Groups {
		built, err := NewGroupAdapter(g, nil, a.opts).Build()
		if err != nil {
			return BuildResult{}, err
		}

		res = res.Add(built)
	}

	if len(res.Slots) > 0 {
		return BuildResult{}, &StraySlotsError{Schema: a.Name(), Slots: res.SlotNames()}
	}

	if a.opts.Debug {
		source := filepath.Base(a.Path)
		for _, cls := range res.Classes {
			cls.Annotations = cls.Annotations.Set("source_file", source)
		}
	}

	imports := make([]string, 0, len(a.Imports)+1)
	for _, imp := range a.Imports {
		imports = append(imports, imp.ImportName())
	}

	imports = append(imports, maps.LanguageSchemaName(a.Namespace))

	if a.Split {
		return a.splitSchemas(res, imports), nil
	}

	schema := a.schema(a.Name(), imports, res.Classes, res.Types)

	return BuildResult{Schemas: []*linkml.SchemaDefinition{schema}, Types: res.Types}, nil
}

// splitSchemas puts top-level classes in the main schema and nested and
// array classes in the include schema. Both share one slot and type list.
func (a *SchemaAdapter) splitSchemas(res BuildResult, imports []string) BuildResult {
	var main, include []*linkml.ClassDefinition

	for _, cls := range res.Classes {
		if strings.Contains(cls.Name, nameSeparator) {
			include = append(include, cls)
		} else {
			main = append(main, cls)
		}
	}

	mainName := a.Name()
	includeName := mainName + IncludeSuffix

	mainImports := slices.Clone(imports)
	if len(include) > 0 {
		mainImports = append(mainImports, includeName)
	}

	out := BuildResult{Types: res.Types}
	mainSchema := a.schema(mainName, mainImports, main, res.Types)
	out.Schemas = append(out.Schemas, mainSchema)

	if len(include) > 0 {
		includeSchema := a.schema(includeName, append(slices.Clone(imports), mainName), include, res.Types)
		includeSchema.Slots = mainSchema.Slots
		out.Schemas = append(out.Schemas, includeSchema)
	}

	return out
}

func (a *SchemaAdapter) schema(name string, imports []string, classes []*linkml.ClassDefinition, types []*linkml.TypeDefinition) *linkml.SchemaDefinition {
	schema := &linkml.SchemaDefinition{
		Name:    name,
		ID:      name,
		Version: a.Version,
		Imports: imports,
		Classes: classes,
		Types:   types,
	}

	if a.opts.Debug {
		schema.Annotations = schema.Annotations.Set("source_file", filepath.Base(a.Path))
	}

	return schema
}

// NeededImports returns the types this file refers to, through inclusion or
// reference, but does not define.
func (a *SchemaAdapter) NeededImports() []string {
	defined := make(map[string]bool)
	for _, name := range a.CreatedClassNames() {
		defined[name] = true
	}

	var needed []string

	for _, field := range []string{"neurodata_type_inc", "target_type"} {
		for _, name := range WalkFieldValues(a, field) {
			if !defined[name] && !slices.Contains(needed, name) {
				needed = append(needed, name)
			}
		}
	}

	return needed
}

// CreatedClasses returns every node in the file, at any depth, that defines
// a type.
func (a *SchemaAdapter) CreatedClasses() []nwbschema.Node {
	if a.created != nil {
		return a.created
	}

	a.created = []nwbschema.Node{}

	for _, n := range WalkTypes[nwbschema.Node](a) {
		if n.Base().NeurodataTypeDef != "" {
			a.created = append(a.created, n)
		}
	}

	return a.created
}

// CreatedClassNames returns the type names CreatedClasses defines.
func (a *SchemaAdapter) CreatedClassNames() []string {
	nodes := a.CreatedClasses()

	names := make([]string, len(nodes))
	for i, n := range nodes {
		names[i] = n.Base().NeurodataTypeDef
	}

	return names
}

// HasImport reports whether other is already among the imports.
func (a *SchemaAdapter) HasImport(other *SchemaAdapter) bool {
	return slices.ContainsFunc(a.Imports, func(i Import) bool {
		return i.Schema == other || (i.Schema == nil && i.Name == other.Name())
	})
}

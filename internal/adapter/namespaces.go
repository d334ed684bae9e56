package adapter

import (
	"fmt"
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/p2p-ld/nwb-linkml-sub001/internal/diagnostic"
	"github.com/p2p-ld/nwb-linkml-sub001/internal/linkml"
	"github.com/p2p-ld/nwb-linkml-sub001/internal/maps"
	"github.com/p2p-ld/nwb-linkml-sub001/internal/match"
	"github.com/p2p-ld/nwb-linkml-sub001/internal/nwbschema"
)

const maxSuggestions = 3

// Progress observes a namespace build. It never changes the result.
type Progress interface {
	// Start announces how many schema files a namespace will build.
	Start(namespace string, total int)
	// Advance reports that one schema file was built.
	Advance(namespace, schema string)
}

type noProgress struct{}

func (noProgress) Start(string, int) {}
func (noProgress) Advance(string, string) {}

// BuildOptions controls NamespacesAdapter.Build.
type BuildOptions struct {
	// SkipImports builds only this namespace: imports are neither populated
	// nor built, and umbrella schemas do not import other namespaces.
	SkipImports bool
	// Progress is notified as schema files are built. May be nil.
	Progress Progress
}

// NamespacesAdapter translates the schema files of one namespace file
// together with the namespaces they import.
type NamespacesAdapter struct {
	Namespaces *nwbschema.Namespaces
	Schemas    []*SchemaAdapter
	Imported   []*NamespacesAdapter

	opts             *Options
	importsPopulated bool
}

// NewNamespacesAdapter stamps every schema with the namespace that lists it.
func NewNamespacesAdapter(ns *nwbschema.Namespaces, schemas []*SchemaAdapter, imported []*NamespacesAdapter, opts *Options) *NamespacesAdapter {
	if opts == nil {
		opts = &Options{}
	}

	a := &NamespacesAdapter{
		Namespaces: ns,
		Schemas:    schemas,
		Imported:   imported,
		opts:       opts,
	}
	a.populateSchemaNamespaces()

	return a
}

func (a *NamespacesAdapter) populateSchemaNamespaces() {
	for _, sch := range a.Schemas {
		if ns := a.SchemaNamespace(sch.Path); ns != nil {
			sch.Namespace = ns.Name
			sch.Version = ns.Version
		}
	}
}

// SchemaNamespace returns the namespace that lists a schema file, matched by
// file name or stem.
func (a *NamespacesAdapter) SchemaNamespace(path string) *nwbschema.Namespace {
	stem := nwbschema.SourceStem(path)

	for _, ns := range a.Namespaces.Namespaces {
		for _, ref := range ns.Schema {
			if ref.Source != "" && nwbschema.SourceStem(ref.Source) == stem {
				return ns
			}
		}
	}

	return nil
}

// SetSplit sets the split flag on every schema, including imported ones.
func (a *NamespacesAdapter) SetSplit(split bool) {
	for _, sch := range a.Schemas {
		sch.Split = split
	}

	for _, imp := range a.Imported {
		imp.SetSplit(split)
	}
}

// Names returns the names of the namespaces declared in this file.
func (a *NamespacesAdapter) Names() []string {
	names := make([]string, 0, len(a.Namespaces.Namespaces))
	for _, ns := range a.Namespaces.Namespaces {
		names = append(names, ns.Name)
	}

	return names
}

// FindTypeSource returns the one schema that defines name, looking at this
// namespace's schemas and those of directly imported namespaces together.
func (a *NamespacesAdapter) FindTypeSource(name string) (*SchemaAdapter, error) {
	candidates := slices.Clone(a.Schemas)
	for _, imp := range a.Imported {
		candidates = append(candidates, imp.Schemas...)
	}

	var found []*SchemaAdapter

	for _, sch := range candidates {
		if slices.Contains(sch.CreatedClassNames(), name) {
			found = append(found, sch)
		}
	}

	if len(found) == 1 {
		return found[0], nil
	}

	err := &TypeSourceError{Type: name, Namespace: a.label()}

	for _, sch := range found {
		err.Schemas = append(err.Schemas, sch.Name())
	}

	if len(found) == 0 {
		var known []string

		for _, sch := range candidates {
			err.Searched = append(err.Searched, sch.Name())
			known = append(known, sch.CreatedClassNames()...)
		}

		err.Suggestions = match.Suggest(name, known, maxSuggestions)
	}

	return nil, err
}

// PopulateImports resolves the needed imports of every schema, here and in
// imported namespaces, to the schema that defines them. Repeated calls add
// nothing.
func (a *NamespacesAdapter) PopulateImports() error {
	for _, sch := range a.Schemas {
		for _, needed := range sch.NeededImports() {
			source, err := a.FindTypeSource(needed)
			if err != nil {
				return fmt.Errorf("schema %s: %w", sch.Name(), err)
			}

			if source == sch || sch.HasImport(source) {
				continue
			}

			logrus.Debugf("%s imports %s for %s", sch.Name(), source.Name(), needed)
			sch.Imports = append(sch.Imports, Import{Schema: source})
		}
	}

	for _, imp := range a.Imported {
		if err := imp.PopulateImports(); err != nil {
			return err
		}
	}

	a.importsPopulated = true

	return nil
}

// Build translates every schema, then the imported namespaces, then adds a
// language schema and one umbrella schema per declared namespace.
func (a *NamespacesAdapter) Build(opts BuildOptions) (BuildResult, error) {
	progress := opts.Progress
	if progress == nil {
		progress = noProgress{}
	}

	if !opts.SkipImports && !a.importsPopulated {
		if err := a.PopulateImports(); err != nil {
			return BuildResult{}, err
		}
	}

	var res BuildResult

	progress.Start(a.label(), len(a.Schemas))

	for _, sch := range a.Schemas {
		built, err := sch.Build()
		if err != nil {
			return BuildResult{}, fmt.Errorf("schema %s: %w", sch.Name(), err)
		}

		res = res.Add(built)
		progress.Advance(a.label(), sch.Name())
	}

	if !opts.SkipImports {
		for _, imp := range a.Imported {
			built, err := imp.Build(opts)
			if err != nil {
				return BuildResult{}, err
			}

			res = res.Add(built)
		}
	}

	for _, ns := range a.Namespaces.Namespaces {
		lang := maps.LanguageSchema(ns.Name)
		lang.Version = ns.Version
		res.Schemas = append(res.Schemas, lang)
		res.Types = append(res.Types, lang.Types...)
	}

	for _, ns := range a.Namespaces.Namespaces {
		res.Schemas = append(res.Schemas, a.umbrella(ns, opts.SkipImports))
	}

	return res, nil
}

func (a *NamespacesAdapter) umbrella(ns *nwbschema.Namespace, skipImports bool) *linkml.SchemaDefinition {
	var imports []string

	for _, sch := range a.Schemas {
		if sch.Namespace == ns.Name {
			imports = append(imports, sch.Name())
		}
	}

	imports = append(imports, maps.LanguageSchemaName(ns.Name))

	if !skipImports {
		for _, imp := range a.Imported {
			imports = append(imports, imp.Names()...)
		}
	}

	return &linkml.SchemaDefinition{
		Name:        ns.Name,
		ID:          ns.Name,
		Description: ns.Doc,
		Version:     ns.Version,
		Imports:     imports,
		Annotations: linkml.Annotations{{Tag: "namespace", Value: true}},
	}
}

// Versions maps every namespace name, here and imported, to its version.
func (a *NamespacesAdapter) Versions() map[string]string {
	versions := make(map[string]string)

	for _, imp := range a.Imported {
		for k, v := range imp.Versions() {
			versions[k] = v
		}
	}

	for _, ns := range a.Namespaces.Namespaces {
		versions[ns.Name] = ns.Version
	}

	return versions
}

// NeededNamespaces returns the other namespaces the declared namespaces list
// by name, in first-seen order. Entries with neither a source nor a
// namespace are reported as warnings.
func (a *NamespacesAdapter) NeededNamespaces() []string {
	var needed []string

	own := a.Names()

	for _, ns := range a.Namespaces.Namespaces {
		for _, ref := range ns.Schema {
			switch {
			case ref.Source != "":
			case ref.Namespace != "":
				if !slices.Contains(needed, ref.Namespace) && !slices.Contains(own, ref.Namespace) {
					needed = append(needed, ref.Namespace)
				}
			default:
				a.opts.Diagnostics.AddWarning(diagnostic.CodeMissingSource,
					"schema entry has neither source nor namespace", ns.Name, ref.Title)
			}
		}
	}

	return needed
}

func (a *NamespacesAdapter) label() string {
	names := a.Names()
	if len(names) == 0 {
		return "<empty>"
	}

	return names[0]
}

package adapter

import (
	"fmt"
	"path/filepath"
	"slices"

	"github.com/p2p-ld/nwb-linkml-sub001/internal/nwbschema"
)

// Locator finds the namespace file that declares a namespace.
type Locator interface {
	Locate(namespace string) (string, error)
}

// LoadNamespacesAdapter loads a namespace file, its schema files (resolved
// relative to it) and, through locator, every namespace it imports. locator
// may be nil when the namespace imports nothing.
func LoadNamespacesAdapter(path string, locator Locator, opts *Options) (*NamespacesAdapter, error) {
	if opts == nil {
		opts = &Options{}
	}

	return loadNamespaces(path, locator, opts, nil)
}

func loadNamespaces(path string, locator Locator, opts *Options, stack []string) (*NamespacesAdapter, error) {
	ns, err := nwbschema.LoadNamespaces(path)
	if err != nil {
		return nil, err
	}

	diags := nwbschema.ValidateNamespaces(ns)
	if opts.Diagnostics != nil {
		opts.Diagnostics.Merge(diags)
	}

	if err := diags.Error(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	dir := filepath.Dir(path)

	var schemas []*SchemaAdapter

	seen := make(map[string]bool)

	for _, n := range ns.Namespaces {
		for _, ref := range n.Schema {
			if ref.Source == "" || seen[ref.Source] {
				continue
			}

			seen[ref.Source] = true
			file := filepath.Join(dir, filepath.FromSlash(ref.Source))

			sch, err := nwbschema.LoadSchema(file)
			if err != nil {
				return nil, err
			}

			schemaDiags := nwbschema.ValidateSchema(ref.Source, sch)
			if opts.Diagnostics != nil {
				opts.Diagnostics.Merge(schemaDiags)
			}

			if err := schemaDiags.Error(); err != nil {
				return nil, err
			}

			schemas = append(schemas, NewSchemaAdapter(file, sch, opts))
		}
	}

	adapter := NewNamespacesAdapter(ns, schemas, nil, opts)
	stack = append(stack, adapter.Names()...)

	for _, needed := range adapter.NeededNamespaces() {
		if slices.Contains(stack, needed) {
			return nil, fmt.Errorf("namespace %s imports itself through %v", needed, stack)
		}

		if locator == nil {
			return nil, fmt.Errorf("namespace %s imports %s but no locator was given", adapter.label(), needed)
		}

		nsPath, err := locator.Locate(needed)
		if err != nil {
			return nil, fmt.Errorf("locate namespace %s: %w", needed, err)
		}

		imported, err := loadNamespaces(nsPath, locator, opts, slices.Clone(stack))
		if err != nil {
			return nil, err
		}

		adapter.Imported = append(adapter.Imported, imported)
	}

	return adapter, nil
}

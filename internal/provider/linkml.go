package provider

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/p2p-ld/nwb-linkml-sub001/internal/adapter"
	"github.com/p2p-ld/nwb-linkml-sub001/internal/gen"
	"github.com/p2p-ld/nwb-linkml-sub001/internal/linkml"
	"github.com/p2p-ld/nwb-linkml-sub001/internal/maps"
)

// NamespaceFile is the file name of the umbrella schema of a built namespace.
const NamespaceFile = "namespace.yaml"

// LinkMLOptions controls LinkMLProvider.Build.
type LinkMLOptions struct {
	// Force rebuilds namespaces that are already in the cache.
	Force bool
	// Split puts nested classes in separate include schemas.
	Split bool
	// Progress observes schema builds. May be nil.
	Progress adapter.Progress
}

// LinkMLResult describes one namespace written by LinkMLProvider.Build.
type LinkMLResult struct {
	Namespace string
	Version   string
	Dir       string
	// Path is the umbrella schema of the namespace.
	Path string
	// Files lists the written files, umbrella last. Empty when skipped.
	Files   []string
	Skipped bool
}

// LinkMLProvider writes adapted namespaces as LinkML YAML.
type LinkMLProvider struct {
	cache Cache
}

// NewLinkMLProvider creates a provider writing under cache.
func NewLinkMLProvider(cache Cache) *LinkMLProvider {
	return &LinkMLProvider{cache: cache}
}

// Build writes ns and every namespace it imports, each into its own
// directory. Imported namespaces are written first and references across
// namespaces become relative paths.
func (p *LinkMLProvider) Build(ns *adapter.NamespacesAdapter, opts LinkMLOptions) ([]LinkMLResult, error) {
	ns.SetSplit(opts.Split)

	if err := ns.PopulateImports(); err != nil {
		return nil, err
	}

	locations := make(map[string]string)
	p.locate(ns, locations)

	var results []LinkMLResult

	done := make(map[string]bool)

	if err := p.buildTree(ns, opts, locations, done, &results); err != nil {
		return nil, err
	}

	return results, nil
}

// Path returns the umbrella schema of a built namespace. An empty version
// picks the most recently built one.
func (p *LinkMLProvider) Path(namespace, version string) (string, error) {
	dir := p.cache.NamespaceDir(KindLinkML, namespace, version)

	if version == "" {
		latest, err := p.cache.Latest(KindLinkML, namespace)
		if err != nil {
			return "", err
		}

		dir = latest
	}

	path := filepath.Join(dir, NamespaceFile)
	if !exists(path) {
		return "", fmt.Errorf("%w: %s %s", ErrNotBuilt, namespace, version)
	}

	return path, nil
}

func (p *LinkMLProvider) dir(ns *adapter.NamespacesAdapter) (name, version, dir string) {
	names := ns.Names()
	name = names[0]
	version = ns.Versions()[name]

	return name, version, p.cache.NamespaceDir(KindLinkML, name, version)
}

// locate records the output directory of every schema name ns and its
// imports can produce.
func (p *LinkMLProvider) locate(ns *adapter.NamespacesAdapter, locations map[string]string) {
	_, _, dir := p.dir(ns)

	for _, sch := range ns.Schemas {
		locations[sch.Name()] = dir
		locations[sch.Name()+adapter.IncludeSuffix] = dir
	}

	for _, name := range ns.Names() {
		locations[name] = dir
		locations[maps.LanguageSchemaName(name)] = dir
	}

	for _, imp := range ns.Imported {
		p.locate(imp, locations)
	}
}

func (p *LinkMLProvider) buildTree(
	ns *adapter.NamespacesAdapter,
	opts LinkMLOptions,
	locations map[string]string,
	done map[string]bool,
	results *[]LinkMLResult,
) error {
	for _, imp := range ns.Imported {
		if err := p.buildTree(imp, opts, locations, done, results); err != nil {
			return err
		}
	}

	name, version, dir := p.dir(ns)

	key := name + "@" + version
	if done[key] {
		return nil
	}

	done[key] = true

	res, err := p.buildNamespace(ns, opts, locations)
	if err != nil {
		return fmt.Errorf("namespace %s %s: %w", name, version, err)
	}

	logrus.WithFields(logrus.Fields{
		"namespace": name,
		"version":   version,
		"dir":       dir,
		"skipped":   res.Skipped,
	}).Debug("linkml namespace")

	*results = append(*results, res)

	return nil
}

func (p *LinkMLProvider) buildNamespace(ns *adapter.NamespacesAdapter, opts LinkMLOptions, locations map[string]string) (LinkMLResult, error) {
	name, version, dir := p.dir(ns)

	res := LinkMLResult{
		Namespace: name,
		Version:   version,
		Dir:       dir,
		Path:      filepath.Join(dir, NamespaceFile),
	}

	if !opts.Force && exists(res.Path) {
		res.Skipped = true
		return res, nil
	}

	built, err := ns.Build(adapter.BuildOptions{SkipImports: true, Progress: opts.Progress})
	if err != nil {
		return LinkMLResult{}, err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return LinkMLResult{}, err
	}

	var umbrellas []*linkml.SchemaDefinition

	for _, schema := range built.Schemas {
		if p.rewriteImports(schema, dir, locations) {
			umbrellas = append(umbrellas, schema)
			continue
		}

		file, err := writeSchema(dir, schema.Name+".yaml", schema)
		if err != nil {
			return LinkMLResult{}, err
		}

		res.Files = append(res.Files, file)
	}

	// Umbrellas go last so a half-written namespace is never taken as built.
	for _, schema := range umbrellas {
		for _, imp := range ns.Imported {
			_, _, impDir := p.dir(imp)
			schema.Imports = append(schema.Imports, relativeImport(dir, impDir, strings.TrimSuffix(NamespaceFile, ".yaml")))
		}

		filename := schema.Name + ".yaml"
		if schema.Name == name {
			filename = NamespaceFile
		}

		file, err := writeSchema(dir, filename, schema)
		if err != nil {
			return LinkMLResult{}, err
		}

		res.Files = append(res.Files, file)
	}

	return res, nil
}

// rewriteImports turns imports of schemas written elsewhere into paths
// relative to dir. It reports whether schema is a namespace umbrella.
func (p *LinkMLProvider) rewriteImports(schema *linkml.SchemaDefinition, dir string, locations map[string]string) bool {
	for i, imp := range schema.Imports {
		other, ok := locations[imp]
		if !ok || other == dir {
			continue
		}

		schema.Imports[i] = relativeImport(dir, other, imp)
	}

	_, umbrella := schema.Annotations.Get("namespace")

	return umbrella
}

func relativeImport(from, to, name string) string {
	rel, err := filepath.Rel(from, filepath.Join(to, name))
	if err != nil {
		return name
	}

	return filepath.ToSlash(rel)
}

func writeSchema(dir, filename string, schema *linkml.SchemaDefinition) (string, error) {
	data, err := linkml.Dump(schema)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, filename)
	if err := gen.WriteFileAtomic(path, data); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}

	return path, nil
}

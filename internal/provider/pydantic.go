package provider

import (
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/p2p-ld/nwb-linkml-sub001/internal/diagnostic"
	"github.com/p2p-ld/nwb-linkml-sub001/internal/gen"
	"github.com/p2p-ld/nwb-linkml-sub001/internal/linkml"
)

// PackageInit is the file that makes a pydantic output directory a package.
const PackageInit = "__init__.py"

// PydanticOptions controls PydanticProvider.Build.
type PydanticOptions struct {
	// Force rebuilds packages that are already in the cache.
	Force bool
	// Split renders one module per schema instead of one combined module.
	Split bool
	// Diagnostics collects generator warnings. May be nil.
	Diagnostics *diagnostic.Diagnostics
}

// PydanticResult describes one package written by PydanticProvider.Build.
type PydanticResult struct {
	Namespace string
	Version   string
	Dir       string
	// Files lists the written modules, the package init last.
	Files   []string
	Classes int
	Skipped bool
}

// PydanticProvider renders built LinkML namespaces as Python packages.
type PydanticProvider struct {
	cache Cache
}

// NewPydanticProvider creates a provider writing under cache.
func NewPydanticProvider(cache Cache) *PydanticProvider {
	return &PydanticProvider{cache: cache}
}

// Build renders the namespace whose umbrella schema is at path. Every schema
// the umbrella reaches is rendered into the one package, so the package does
// not depend on other generated packages.
func (p *PydanticProvider) Build(path string, opts PydanticOptions) (PydanticResult, error) {
	schemas, err := linkml.LoadTree(path)
	if err != nil {
		return PydanticResult{}, err
	}

	root := schemas[0]
	dir := p.cache.NamespaceDir(KindPydantic, root.Name, root.Version)

	res := PydanticResult{Namespace: root.Name, Version: root.Version, Dir: dir}

	initPath := filepath.Join(dir, PackageInit)
	if !opts.Force && exists(initPath) {
		res.Skipped = true
		return res, nil
	}

	view, err := linkml.NewSchemaView(root.Name, schemas...)
	if err != nil {
		return PydanticResult{}, err
	}

	files, err := gen.NewGenerator(gen.Config{Split: opts.Split, Diagnostics: opts.Diagnostics}).Generate(view)
	if err != nil {
		return PydanticResult{}, fmt.Errorf("namespace %s %s: %w", root.Name, root.Version, err)
	}

	if err := gen.WriteFiles(files, dir); err != nil {
		return PydanticResult{}, err
	}

	for _, f := range files {
		res.Files = append(res.Files, filepath.Join(dir, f.Filename))
		res.Classes += len(f.Classes)
	}

	pkgInit := []byte("from ." + gen.ModuleName(root.Name) + " import *\n")
	if err := gen.WriteFileAtomic(initPath, pkgInit); err != nil {
		return PydanticResult{}, err
	}

	res.Files = append(res.Files, initPath)

	logrus.WithFields(logrus.Fields{
		"namespace": root.Name,
		"version":   root.Version,
		"modules":   len(files),
		"classes":   res.Classes,
	}).Debug("pydantic package")

	return res, nil
}

// Path returns the package directory of a rendered namespace. An empty
// version picks the most recently built one.
func (p *PydanticProvider) Path(namespace, version string) (string, error) {
	if version == "" {
		return p.cache.Latest(KindPydantic, namespace)
	}

	dir := p.cache.NamespaceDir(KindPydantic, namespace, version)
	if !exists(filepath.Join(dir, PackageInit)) {
		return "", fmt.Errorf("%w: %s %s", ErrNotBuilt, namespace, version)
	}

	return dir, nil
}

package commands

import (
	"fmt"
	"path/filepath"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/p2p-ld/nwb-linkml-sub001/internal/adapter"
	"github.com/p2p-ld/nwb-linkml-sub001/internal/config"
	"github.com/p2p-ld/nwb-linkml-sub001/internal/diagnostic"
	"github.com/p2p-ld/nwb-linkml-sub001/internal/progress"
	"github.com/p2p-ld/nwb-linkml-sub001/internal/provider"
	"github.com/p2p-ld/nwb-linkml-sub001/internal/repo"
)

type buildOptions struct {
	namespace   string
	source      string
	imports     map[string]string
	versions    []string
	force       bool
	haltOnError bool
	maxFailures int
	noProgress  bool
}

var buildBindings = map[string]string{
	config.KeyCacheDir:    "cache",
	config.KeyYAMLOut:     "yaml",
	config.KeyPydanticOut: "pydantic",
	config.KeySplit:       "split",
	config.KeyStrict:      "strict",
	config.KeyLatest:      "latest",
	config.KeyDryRun:      "dry-run",
	config.KeyDebug:       "debug",
}

func registerBuildCmd(parent *cobra.Command, a *app) {
	opts := &buildOptions{}

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build LinkML schemas and pydantic models for every version of a namespace",
		Example: `  # Build every tagged version of the NWB core schema
  nwb-linkml build

  # Only the latest release, without touching the output directories
  nwb-linkml build --latest --dry-run

  # A local namespace file whose imports live next to it
  nwb-linkml build --source ./core/nwb.namespace.yaml --import hdmf-common=./common/namespace.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.load(cmd.Flags(), buildBindings)
			if err != nil {
				return err
			}

			return runBuild(cmd, a, cfg, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.namespace, "namespace", "core", "namespace whose repository versions are built")
	flags.StringVar(&opts.source, "source", "", "build a local namespace file instead of repository versions")
	flags.StringToStringVar(&opts.imports, "import", nil, "local namespace file of an imported namespace, as name=path")
	flags.StringSliceVar(&opts.versions, "version", nil, "build only these versions")
	flags.BoolVar(&opts.force, "force", false, "rebuild versions that are already in the cache")
	flags.BoolVar(&opts.haltOnError, "halt-on-error", false, "stop at the first failing version and print its stack trace")
	flags.IntVar(&opts.maxFailures, "max-failures", -1, "exit non-zero when more versions than this fail, negative disables the check")
	flags.BoolVar(&opts.noProgress, "no-progress", false, "do not draw progress bars")

	flags.String("cache", "", "cache directory (default is ~/.cache/nwb-linkml)")
	flags.String("yaml", "", "output directory of LinkML schemas")
	flags.String("pydantic", "", "output directory of pydantic packages")
	flags.Bool("split", true, "put nested classes in separate schemas and modules")
	flags.Bool("strict", false, "fail on datasets that match no translation pattern; by default such a dataset keeps its plain class and is only reported")
	flags.Bool("latest", false, "only build the latest release")
	flags.Bool("dry-run", false, "build into the cache without copying to the output directories")
	flags.Bool("debug", false, "annotate generated classes with the schema file they came from")

	parent.AddCommand(cmd)
}

// target is one namespace version to build. path is resolved lazily so a
// failed checkout counts as a failure of that version only.
type target struct {
	label   string
	version string
	path    func() (string, error)
}

func runBuild(cmd *cobra.Command, a *app, cfg *config.Config, opts *buildOptions) error {
	git, err := a.git(cfg)
	if err != nil {
		return err
	}

	locator := repo.Chain{repo.Local(opts.imports), git}

	targets, err := buildTargets(git, cfg, opts)
	if err != nil {
		return err
	}

	b := &builder{cfg: cfg, opts: opts, locator: locator}
	if !opts.noProgress {
		b.progress = progress.New(cmd.ErrOrStderr())
	}

	var (
		results []buildResult
		merr    *multierror.Error
	)

	for _, t := range targets {
		res := b.build(t)
		results = append(results, res)

		if res.err == nil {
			continue
		}

		merr = multierror.Append(merr, fmt.Errorf("%s: %w", t.label, res.err))

		if opts.haltOnError {
			fmt.Fprintf(cmd.ErrOrStderr(), "%+v\n", res.err)
			return res.err
		}
	}

	printSummary(cmd.OutOrStdout(), results)

	failed := merr.ErrorOrNil()
	if failed == nil {
		return nil
	}

	for _, res := range results {
		if res.err != nil {
			logrus.Debugf("%s failed:\n%+v", res.label, res.err)
		}
	}

	if cfg.DryRun {
		return failed
	}

	if opts.maxFailures >= 0 && merr.Len() > opts.maxFailures {
		return failed
	}

	return nil
}

func buildTargets(git *repo.Git, cfg *config.Config, opts *buildOptions) ([]target, error) {
	if opts.source != "" {
		return []target{{
			label: opts.source,
			path:  func() (string, error) { return opts.source, nil },
		}}, nil
	}

	versions := opts.versions

	switch {
	case len(versions) > 0:
	case cfg.Latest:
		tags, err := git.Tags(opts.namespace)
		if err != nil {
			return nil, err
		}

		latest, ok := repo.Latest(tags)
		if !ok {
			return nil, fmt.Errorf("%s has no release tags", opts.namespace)
		}

		versions = []string{latest}
	default:
		tags, err := git.Tags(opts.namespace)
		if err != nil {
			return nil, err
		}

		versions = tags
	}

	targets := make([]target, 0, len(versions))

	for _, v := range versions {
		version := v
		targets = append(targets, target{
			label:   opts.namespace + "@" + version,
			version: version,
			path:    func() (string, error) { return git.Checkout(opts.namespace, version) },
		})
	}

	return targets, nil
}

type buildResult struct {
	label    string
	version  string
	classes  int
	warnings int
	skipped  bool
	err      error
}

type builder struct {
	cfg      *config.Config
	opts     *buildOptions
	locator  adapter.Locator
	progress adapter.Progress
}

// build runs the whole pipeline for one target. Errors carry a stack trace
// for the failure summary.
func (b *builder) build(t target) (res buildResult) {
	res = buildResult{label: t.label, version: t.version}

	path, err := t.path()
	if err != nil {
		res.err = errors.WithStack(err)
		return res
	}

	diags := &diagnostic.Diagnostics{}
	defer func() {
		res.warnings = len(diags.Warnings)
		diags.Log(logrus.StandardLogger())
	}()

	ns, err := adapter.LoadNamespacesAdapter(path, b.locator, &adapter.Options{
		Strict:      b.cfg.Strict,
		Debug:       b.cfg.Debug,
		Diagnostics: diags,
	})
	if err != nil {
		res.err = errors.WithStack(err)
		return res
	}

	cache := provider.Cache{Root: b.cfg.CacheDir}

	built, err := provider.NewLinkMLProvider(cache).Build(ns, provider.LinkMLOptions{
		Force:    b.opts.force,
		Split:    b.cfg.Split,
		Progress: b.progress,
	})
	if err != nil {
		res.err = errors.WithStack(err)
		return res
	}

	root := built[len(built)-1]
	res.version = root.Version

	pkg, err := provider.NewPydanticProvider(cache).Build(root.Path, provider.PydanticOptions{
		Force:       b.opts.force,
		Split:       b.cfg.Split,
		Diagnostics: diags,
	})
	if err != nil {
		res.err = errors.WithStack(err)
		return res
	}

	res.classes = pkg.Classes
	res.skipped = root.Skipped && pkg.Skipped

	if b.cfg.DryRun {
		return res
	}

	for _, r := range built {
		if err := copyBuilt(cache, provider.KindLinkML, r.Dir, b.cfg.YAMLOut); err != nil {
			res.err = errors.WithStack(err)
			return res
		}
	}

	if err := copyBuilt(cache, provider.KindPydantic, pkg.Dir, b.cfg.PydanticOut); err != nil {
		res.err = errors.WithStack(err)
	}

	return res
}

// copyBuilt mirrors a cached artifact directory below out, keeping its
// <namespace>/<version> layout.
func copyBuilt(cache provider.Cache, kind, dir, out string) error {
	rel, err := filepath.Rel(cache.Dir(kind), dir)
	if err != nil {
		return err
	}

	return copyDir(dir, filepath.Join(out, rel))
}

func gitDir(cfg *config.Config) string {
	return filepath.Join(cfg.CacheDir, "git")
}

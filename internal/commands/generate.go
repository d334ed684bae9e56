package commands

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/p2p-ld/nwb-linkml-sub001/internal/config"
	"github.com/p2p-ld/nwb-linkml-sub001/internal/diagnostic"
	"github.com/p2p-ld/nwb-linkml-sub001/internal/provider"
)

var generateBindings = map[string]string{
	config.KeyCacheDir:    "cache",
	config.KeyPydanticOut: "pydantic",
	config.KeySplit:       "split",
	config.KeyDryRun:      "dry-run",
}

func registerGenerateCmd(parent *cobra.Command, a *app) {
	var force bool

	cmd := &cobra.Command{
		Use:   "generate NAMESPACE_YAML",
		Short: "Render an already built LinkML namespace as a pydantic package",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.load(cmd.Flags(), generateBindings)
			if err != nil {
				return err
			}

			return runGenerate(cmd, cfg, args[0], force)
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&force, "force", false, "render again even when the package is in the cache")
	flags.String("cache", "", "cache directory (default is ~/.cache/nwb-linkml)")
	flags.String("pydantic", "", "output directory of pydantic packages")
	flags.Bool("split", true, "render one module per schema")
	flags.Bool("dry-run", false, "render into the cache only")

	parent.AddCommand(cmd)
}

func runGenerate(cmd *cobra.Command, cfg *config.Config, path string, force bool) error {
	cache := provider.Cache{Root: cfg.CacheDir}
	diags := &diagnostic.Diagnostics{}

	pkg, err := provider.NewPydanticProvider(cache).Build(path, provider.PydanticOptions{
		Force:       force,
		Split:       cfg.Split,
		Diagnostics: diags,
	})
	if err != nil {
		return err
	}

	diags.Log(logrus.StandardLogger())

	if pkg.Skipped {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s is up to date in %s\n", pkg.Namespace, pkg.Version, pkg.Dir)
		return nil
	}

	if !cfg.DryRun {
		if err := copyBuilt(cache, provider.KindPydantic, pkg.Dir, cfg.PydanticOut); err != nil {
			return err
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "rendered %d classes of %s %s into %d files\n",
		pkg.Classes, pkg.Namespace, pkg.Version, len(pkg.Files))

	return nil
}

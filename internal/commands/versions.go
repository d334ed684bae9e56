package commands

import (
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/p2p-ld/nwb-linkml-sub001/internal/config"
	"github.com/p2p-ld/nwb-linkml-sub001/internal/provider"
	"github.com/p2p-ld/nwb-linkml-sub001/internal/repo"
)

func registerVersionsCmd(parent *cobra.Command, a *app) {
	cmd := &cobra.Command{
		Use:   "versions [NAMESPACE]",
		Short: "List the released versions of a namespace and whether they are built",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.load(cmd.Flags(), map[string]string{config.KeyCacheDir: "cache"})
			if err != nil {
				return err
			}

			namespace := "core"
			if len(args) == 1 {
				namespace = args[0]
			}

			git, err := a.git(cfg)
			if err != nil {
				return err
			}

			tags, err := git.Tags(namespace)
			if err != nil {
				return err
			}

			latest, _ := repo.Latest(tags)
			cache := provider.Cache{Root: cfg.CacheDir}
			linkmlProvider := provider.NewLinkMLProvider(cache)
			pydanticProvider := provider.NewPydanticProvider(cache)

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"VERSION", "LATEST", "LINKML", "PYDANTIC"})

			for _, tag := range tags {
				_, linkmlErr := linkmlProvider.Path(namespace, tag)
				_, pydanticErr := pydanticProvider.Path(namespace, tag)

				table.Append([]string{tag, mark(tag == latest), mark(linkmlErr == nil), mark(pydanticErr == nil)})
			}

			table.Render()

			return nil
		},
	}

	cmd.Flags().String("cache", "", "cache directory (default is ~/.cache/nwb-linkml)")

	parent.AddCommand(cmd)
}

func mark(ok bool) string {
	if ok {
		return "*"
	}

	return ""
}

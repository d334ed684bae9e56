// Package commands defines the nwb-linkml command line.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/p2p-ld/nwb-linkml-sub001/internal/config"
	"github.com/p2p-ld/nwb-linkml-sub001/internal/logger"
	"github.com/p2p-ld/nwb-linkml-sub001/internal/repo"
)

const (
	colorModeNever  = "never"
	colorModeAlways = "always"
)

var supportedColorModes = []string{colorModeNever, colorModeAlways}

// app is the state shared by every command of one invocation.
type app struct {
	v         *viper.Viper
	cfgFile   string
	verbose   bool
	hideTime  bool
	colorMode string

	// runner replaces the git executable when set.
	runner repo.Runner
}

// NewRootCmd creates and returns the root command for the CLI.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&app{v: viper.New()})
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "nwb-linkml",
		Short: "Translate NWB schema namespaces to LinkML and pydantic models",
		Long: `nwb-linkml translates namespaces written in the NWB schema language into
LinkML schemas, then renders those schemas as pydantic model packages.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.initLogger,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is $HOME/.nwb-linkml.yaml)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "turn on debug logging")
	flags.BoolVar(&a.hideTime, "hide-time", false, "hide the log time")
	flags.StringVar(&a.colorMode, "color", colorModeAlways, fmt.Sprintf("set the log color mode, the possible values can be %v", supportedColorModes))

	registerBuildCmd(rootCmd, a)
	registerGenerateCmd(rootCmd, a)
	registerVersionsCmd(rootCmd, a)
	registerVersionCmd(rootCmd)

	return rootCmd
}

func (a *app) initLogger(cmd *cobra.Command, _ []string) error {
	switch a.colorMode {
	case colorModeNever, colorModeAlways:
	default:
		return fmt.Errorf("invalid color mode %q, the possible values can be %v", a.colorMode, supportedColorModes)
	}

	return logger.Init(logger.Options{
		Verbose:      a.verbose,
		DisableColor: a.colorMode == colorModeNever,
		HideTime:     a.hideTime,
		Output:       cmd.ErrOrStderr(),
	})
}

// load binds the named flags of cmd to config keys and loads the config.
// Binding happens per command because several commands share flag names.
func (a *app) load(flags *pflag.FlagSet, bindings map[string]string) (*config.Config, error) {
	for key, name := range bindings {
		if err := a.v.BindPFlag(key, flags.Lookup(name)); err != nil {
			return nil, err
		}
	}

	return config.Load(a.v, a.cfgFile)
}

func (a *app) git(cfg *config.Config) (*repo.Git, error) {
	repos, err := repo.WithURLs(cfg.Repos)
	if err != nil {
		return nil, err
	}

	dir := gitDir(cfg)
	if a.runner != nil {
		return repo.NewGitWithRunner(dir, repos, a.runner), nil
	}

	return repo.NewGit(dir, repos), nil
}

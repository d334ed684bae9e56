// Package config loads build settings from defaults, an optional YAML
// config file, NWB_LINKML_* environment variables and bound flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/p2p-ld/nwb-linkml-sub001/internal/repo"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "NWB_LINKML"

// Keys, as spelled in the config file.
const (
	KeyCacheDir    = "cache_dir"
	KeyYAMLOut     = "yaml_out"
	KeyPydanticOut = "pydantic_out"
	KeySplit       = "split"
	KeyStrict      = "strict"
	KeyLatest      = "latest"
	KeyDryRun      = "dry_run"
	KeyDebug       = "debug"
	KeyRepos       = "repos"
)

type Config struct {
	CacheDir    string `mapstructure:"cache_dir" yaml:"cache_dir"`
	YAMLOut     string `mapstructure:"yaml_out" yaml:"yaml_out"`
	PydanticOut string `mapstructure:"pydantic_out" yaml:"pydantic_out"`
	Split       bool   `mapstructure:"split" yaml:"split"`
	Strict      bool   `mapstructure:"strict" yaml:"strict"`
	Latest      bool   `mapstructure:"latest" yaml:"latest"`
	DryRun      bool   `mapstructure:"dry_run" yaml:"dry_run"`
	Debug       bool   `mapstructure:"debug" yaml:"debug"`
	// Repos overrides the clone URL of a namespace repository.
	Repos map[string]string `mapstructure:"repos" yaml:"repos"`
}

// DefaultPath is $HOME/.nwb-linkml.yaml, or the bare file name when the
// home directory is unknown.
func DefaultPath() string {
	home, err := homedir.Dir()
	if err != nil {
		return ".nwb-linkml.yaml"
	}

	return filepath.Join(home, ".nwb-linkml.yaml")
}

// SetDefaults registers every key on v so environment variables can
// override keys that no config file sets.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyCacheDir, "~/.cache/nwb-linkml")
	v.SetDefault(KeyYAMLOut, filepath.Join("schema", "linkml"))
	v.SetDefault(KeyPydanticOut, filepath.Join("models", "pydantic"))
	v.SetDefault(KeySplit, true)
	v.SetDefault(KeyStrict, false)
	v.SetDefault(KeyLatest, false)
	v.SetDefault(KeyDryRun, false)
	v.SetDefault(KeyDebug, false)
	v.SetDefault(KeyRepos, map[string]string{})
}

// Load reads file into v and decodes the result. A missing file is an
// error only when it was asked for explicitly.
func Load(v *viper.Viper, file string) (*Config, error) {
	SetDefaults(v)

	explicit := file != ""
	if !explicit {
		file = DefaultPath()
	}

	v.SetConfigFile(file)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config %s: %w", file, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	for _, p := range []*string{&cfg.CacheDir, &cfg.YAMLOut, &cfg.PydanticOut} {
		expanded, err := homedir.Expand(*p)
		if err != nil {
			return nil, err
		}

		*p = expanded
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate rejects empty directories and overrides for unknown
// repositories.
func (c *Config) Validate() error {
	if c.CacheDir == "" {
		return errors.New("cache_dir must not be empty")
	}

	if c.YAMLOut == "" || c.PydanticOut == "" {
		return errors.New("yaml_out and pydantic_out must not be empty")
	}

	for name := range c.Repos {
		if _, ok := repo.Lookup(name); !ok {
			return fmt.Errorf("repos: %w: %s", repo.ErrUnknownNamespace, name)
		}
	}

	return nil
}

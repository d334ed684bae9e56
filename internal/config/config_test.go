package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/p2p-ld/nwb-linkml-sub001/internal/repo"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	homedir.DisableCache = true

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	home, err := homedir.Dir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".cache", "nwb-linkml"), cfg.CacheDir)
	assert.Equal(t, filepath.Join("schema", "linkml"), cfg.YAMLOut)
	assert.True(t, cfg.Split)
	assert.False(t, cfg.DryRun)
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := writeConfig(t, `
cache_dir: /tmp/nwb-cache
yaml_out: out/yaml
strict: true
latest: true
repos:
  core: /srv/nwb-schema
`)
	t.Setenv("NWB_LINKML_DRY_RUN", "true")
	t.Setenv("NWB_LINKML_YAML_OUT", "env/yaml")

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/nwb-cache", cfg.CacheDir)
	assert.Equal(t, "env/yaml", cfg.YAMLOut)
	assert.True(t, cfg.Strict)
	assert.True(t, cfg.Latest)
	assert.True(t, cfg.DryRun)
	assert.Equal(t, map[string]string{"core": "/srv/nwb-schema"}, cfg.Repos)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		file string
		want string
	}{
		{name: "explicit file missing", file: "/nonexistent/nwb-linkml.yaml", want: "failed to read config"},
		{name: "malformed", body: "split: [", want: "failed to read config"},
		{name: "empty output", body: "pydantic_out: ''", want: "must not be empty"},
		{name: "unknown repo", body: "repos:\n  mystery: x", want: "mystery"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := tt.file
			if file == "" {
				file = writeConfig(t, tt.body)
			}

			_, err := Load(viper.New(), file)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{CacheDir: "c", YAMLOut: "y", PydanticOut: "p"}
	require.NoError(t, cfg.Validate())

	cfg.Repos = map[string]string{"nope": "x"}
	assert.ErrorIs(t, cfg.Validate(), repo.ErrUnknownNamespace)

	cfg.Repos = nil
	cfg.CacheDir = ""
	assert.Error(t, cfg.Validate())
}

package repo

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/Masterminds/semver/v3"
)

// ErrUnknownNamespace is returned when no repository provides a namespace.
var ErrUnknownNamespace = errors.New("unknown namespace")

// Repository resolves a namespace name to the namespace file declaring it.
type Repository interface {
	Locate(namespace string) (string, error)
}

// NamespaceRepo describes the git repository that publishes a namespace.
type NamespaceRepo struct {
	Name       string
	Repository string
	// Path is the namespace file relative to the repository root.
	Path string
	// Bundled maps namespaces shipped inside the checkout, usually as git
	// submodules, to their namespace files.
	Bundled map[string]string
}

// DefaultRepos lists the upstream schema repositories.
var DefaultRepos = []NamespaceRepo{
	{
		Name:       "core",
		Repository: "https://github.com/NeurodataWithoutBorders/nwb-schema",
		Path:       "core/nwb.namespace.yaml",
		Bundled: map[string]string{
			"hdmf-common":       "core/hdmf-common-schema/common/namespace.yaml",
			"hdmf-experimental": "core/hdmf-common-schema/experimental/namespace.yaml",
		},
	},
	{
		Name:       "hdmf-common",
		Repository: "https://github.com/hdmf-dev/hdmf-common-schema",
		Path:       "common/namespace.yaml",
	},
	{
		Name:       "hdmf-experimental",
		Repository: "https://github.com/hdmf-dev/hdmf-common-schema",
		Path:       "experimental/namespace.yaml",
		Bundled: map[string]string{
			"hdmf-common": "common/namespace.yaml",
		},
	},
}

// Lookup returns the default repository of a namespace.
func Lookup(name string) (NamespaceRepo, bool) {
	for _, r := range DefaultRepos {
		if r.Name == name {
			return r, true
		}
	}

	return NamespaceRepo{}, false
}

// WithURLs returns DefaultRepos with the clone URLs of the named
// namespaces replaced.
func WithURLs(urls map[string]string) ([]NamespaceRepo, error) {
	repos := make([]NamespaceRepo, len(DefaultRepos))
	copy(repos, DefaultRepos)

	for name, url := range urls {
		found := false

		for i := range repos {
			if repos[i].Name == name {
				repos[i].Repository = url
				found = true
			}
		}

		if !found {
			return nil, fmt.Errorf("%w: %s", ErrUnknownNamespace, name)
		}
	}

	return repos, nil
}

// SortVersions parses tags as semantic versions and returns the valid ones
// oldest first, spelled as they were tagged.
func SortVersions(tags []string) []string {
	versions := make(semver.Collection, 0, len(tags))

	for _, tag := range tags {
		v, err := semver.NewVersion(tag)
		if err != nil {
			continue
		}

		versions = append(versions, v)
	}

	sort.Sort(versions)

	out := make([]string, len(versions))
	for i, v := range versions {
		out[i] = v.Original()
	}

	return out
}

// Latest returns the newest release among tags, ignoring prereleases.
func Latest(tags []string) (string, bool) {
	sorted := SortVersions(tags)
	for i := len(sorted) - 1; i >= 0; i-- {
		v, _ := semver.NewVersion(sorted[i])
		if v.Prerelease() == "" {
			return sorted[i], true
		}
	}

	return "", false
}

// Local serves namespace files that already exist on disk.
type Local map[string]string

// Locate implements Repository.
func (l Local) Locate(namespace string) (string, error) {
	path, ok := l[namespace]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownNamespace, namespace)
	}

	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("namespace %s: %w", namespace, err)
	}

	return path, nil
}

// Chain tries each repository in turn.
type Chain []Repository

// Locate implements Repository. Only ErrUnknownNamespace moves on to the
// next repository.
func (c Chain) Locate(namespace string) (string, error) {
	for _, r := range c {
		path, err := r.Locate(namespace)
		if err == nil {
			return path, nil
		}

		if !errors.Is(err, ErrUnknownNamespace) {
			return "", err
		}
	}

	return "", fmt.Errorf("%w: %s", ErrUnknownNamespace, namespace)
}

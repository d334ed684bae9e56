package provider

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// Artifact kinds, one top-level cache directory each.
const (
	KindLinkML   = "linkml"
	KindPydantic = "pydantic"
)

// ErrNotBuilt is returned when a namespace has no built artifact in the cache.
var ErrNotBuilt = errors.New("namespace not built")

// Cache is the root of the artifact cache.
type Cache struct {
	Root string
}

// Dir returns the directory holding every artifact of one kind.
func (c Cache) Dir(kind string) string {
	return filepath.Join(c.Root, kind)
}

// NamespaceDir returns the directory of one built namespace version.
func (c Cache) NamespaceDir(kind, namespace, version string) string {
	return filepath.Join(c.Dir(kind), namespace, VersionDir(version))
}

// VersionDir makes a version string safe to use as a directory name.
func VersionDir(version string) string {
	if version == "" {
		return "unversioned"
	}

	return "v" + strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}

		return '_'
	}, version)
}

// Latest returns the most recently modified version directory of a
// namespace.
func (c Cache) Latest(kind, namespace string) (string, error) {
	base := filepath.Join(c.Dir(kind), namespace)

	entries, err := os.ReadDir(base)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrNotBuilt, namespace)
		}

		return "", err
	}

	var (
		latest string
		newest int64
	)

	for _, e := range entries {
		if !e.IsDir() {
			continue
		}

		info, err := e.Info()
		if err != nil {
			return "", err
		}

		if mod := info.ModTime().UnixNano(); latest == "" || mod > newest {
			latest, newest = e.Name(), mod
		}
	}

	if latest == "" {
		return "", fmt.Errorf("%w: %s", ErrNotBuilt, namespace)
	}

	return filepath.Join(base, latest), nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

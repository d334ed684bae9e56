package repo

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// Runner runs git with args inside dir and returns its combined output.
type Runner interface {
	Run(dir string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (execRunner) Run(dir string, args ...string) ([]byte, error) {
	cmd := exec.Command("git", args...) // #nosec
	cmd.Dir = dir

	out, err := cmd.CombinedOutput()
	if err != nil {
		logrus.Debugf("failed to execute command(git %s): error(%v)", strings.Join(args, " "), err)
		return out, fmt.Errorf("git %s: %w: %s", args[0], err, strings.TrimSpace(string(out)))
	}

	return out, nil
}

// Git checks out schema repositories below Dir, one clone per repository
// name. A namespace left unpinned in Versions resolves to the latest tag.
type Git struct {
	Dir      string
	Repos    []NamespaceRepo
	Versions map[string]string

	runner     Runner
	checkedOut map[string]string
}

// NewGit returns a Git backed by the git executable.
func NewGit(dir string, repos []NamespaceRepo) *Git {
	return NewGitWithRunner(dir, repos, execRunner{})
}

// NewGitWithRunner returns a Git that runs git commands through runner.
func NewGitWithRunner(dir string, repos []NamespaceRepo, runner Runner) *Git {
	return &Git{
		Dir:        dir,
		Repos:      repos,
		Versions:   make(map[string]string),
		runner:     runner,
		checkedOut: make(map[string]string),
	}
}

func (g *Git) repo(namespace string) (NamespaceRepo, bool) {
	for _, r := range g.Repos {
		if r.Name == namespace {
			return r, true
		}
	}

	return NamespaceRepo{}, false
}

// Clone makes sure the repository of namespace exists locally and has
// every tag, and returns its directory.
func (g *Git) Clone(namespace string) (string, error) {
	r, ok := g.repo(namespace)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownNamespace, namespace)
	}

	dir := filepath.Join(g.Dir, r.Name)

	if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
		if _, err := g.runner.Run(dir, "fetch", "--tags", "--force"); err != nil {
			return "", err
		}

		return dir, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}

	if err := os.MkdirAll(g.Dir, 0o755); err != nil {
		return "", err
	}

	logrus.Infof("cloning %s into %s", r.Repository, dir)

	if _, err := g.runner.Run(g.Dir, "clone", "--recurse-submodules", r.Repository, r.Name); err != nil {
		return "", err
	}

	return dir, nil
}

// Tags returns the version tags of the repository of namespace, oldest
// first.
func (g *Git) Tags(namespace string) ([]string, error) {
	dir, err := g.Clone(namespace)
	if err != nil {
		return nil, err
	}

	out, err := g.runner.Run(dir, "tag", "--list")
	if err != nil {
		return nil, err
	}

	return SortVersions(strings.Fields(string(out))), nil
}

// Checkout checks out ref in the repository of namespace, including its
// submodules, and returns the namespace file. An empty ref selects the
// latest tag.
func (g *Git) Checkout(namespace, ref string) (string, error) {
	r, ok := g.repo(namespace)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownNamespace, namespace)
	}

	if ref == "" {
		tags, err := g.Tags(namespace)
		if err != nil {
			return "", err
		}

		latest, ok := Latest(tags)
		if !ok {
			return "", fmt.Errorf("%s: no release tags in %s", namespace, r.Repository)
		}

		ref = latest
	}

	dir, err := g.Clone(namespace)
	if err != nil {
		return "", err
	}

	if _, err := g.runner.Run(dir, "checkout", "--force", ref); err != nil {
		return "", err
	}

	if _, err := g.runner.Run(dir, "submodule", "update", "--init", "--recursive"); err != nil {
		return "", err
	}

	logrus.Debugf("checked out %s@%s", namespace, ref)

	g.checkedOut[r.Name] = dir

	path := filepath.Join(dir, filepath.FromSlash(r.Path))
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("%s@%s: %w", namespace, ref, err)
	}

	return path, nil
}

// Locate implements Repository. Namespaces bundled with a repository that is
// already checked out resolve inside that checkout, so their version
// follows the one that bundles them.
func (g *Git) Locate(namespace string) (string, error) {
	for _, r := range g.Repos {
		dir, ok := g.checkedOut[r.Name]
		if !ok {
			continue
		}

		rel, ok := r.Bundled[namespace]
		if !ok {
			continue
		}

		path := filepath.Join(dir, filepath.FromSlash(rel))
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return g.Checkout(namespace, g.Versions[namespace])
}

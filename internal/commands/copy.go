package commands

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/p2p-ld/nwb-linkml-sub001/internal/gen"
)

// copyDir copies the regular files below src into dst, replacing files
// that already exist there.
func copyDir(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}

		target := filepath.Join(dst, rel)

		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		return gen.WriteFileAtomic(target, data)
	})
}

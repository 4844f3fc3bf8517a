package mirror

import (
	"fmt"
	"mirro/internal/fsys"
	"mirro/internal/logger"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// PathSet holds slash-separated paths relative to a tree root. Path identity
// is string equality; nothing is ever hashed.
type PathSet map[string]struct{}

func (s PathSet) Has(rel string) bool {
	_, ok := s[rel]
	return ok
}

// Scan walks root and returns every path beneath it: one entry per directory,
// file and symlink, the root itself excluded. Symlinked directories are listed
// as plain entries and only descended into when followSymlinks is set.
func Scan(fs fsys.FS, root string, followSymlinks bool) (PathSet, error) {
	paths := make(PathSet)
	if err := scanDir(fs, root, "", followSymlinks, paths); err != nil {
		return nil, err
	}

	return paths, nil
}

func scanDir(fs fsys.FS, root, rel string, followSymlinks bool, paths PathSet) error {
	entries, err := fs.ReadDir(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		return fmt.Errorf("failed to read dir: %w", err)
	}

	for _, entry := range entries {
		relPath := entry.Name()
		if rel != "" {
			relPath = rel + "/" + entry.Name()
		}

		paths[relPath] = struct{}{}

		descend := entry.IsDir()
		if entry.Type()&os.ModeSymlink != 0 {
			descend = followSymlinks && fs.IsDir(filepath.Join(root, filepath.FromSlash(relPath)))
		}

		if !descend {
			continue
		}

		// A subdirectory that vanishes or denies access mid-scan is skipped,
		// not fatal.
		if err := scanDir(fs, root, relPath, followSymlinks, paths); err != nil {
			logger.Log.Warn("failed to scan subdirectory",
				zap.String("path", relPath),
				zap.Error(err))
		}
	}

	return nil
}

package mirror

import (
	"errors"
	"fmt"
	"mirro/internal/fsys"
	"mirro/internal/logger"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

var (
	ErrSourceMissing = errors.New("source directory does not exist")
	ErrSourceNotDir  = errors.New("source is not a directory")
	ErrSameRoot      = errors.New("source and destination are the same")
	ErrNestedRoots   = errors.New("source and destination overlap")
)

// Mirrorer makes dst an exact reflection of src: copies what is missing or
// stale, deletes what src does not have, and carries metadata over so a
// second run is a no-op.
type Mirrorer struct {
	fs   fsys.FS
	src  string
	dst  string
	opts Options
}

// New validates the root pair. Overlapping or identical roots are
// configuration errors and are rejected before any I/O side effect.
func New(fs fsys.FS, src, dst string, opts Options) (*Mirrorer, error) {
	absSrc, err := filepath.Abs(src)
	if err != nil {
		return nil, fmt.Errorf("invalid src path: %w", err)
	}

	absDst, err := filepath.Abs(dst)
	if err != nil {
		return nil, fmt.Errorf("invalid dst path: %w", err)
	}

	if !fs.Exists(absSrc) {
		return nil, fmt.Errorf("%w: %s", ErrSourceMissing, absSrc)
	}

	if !fs.IsDir(absSrc) {
		return nil, fmt.Errorf("%w: %s", ErrSourceNotDir, absSrc)
	}

	if absSrc == absDst {
		return nil, ErrSameRoot
	}

	if isPathInside(absDst, absSrc) || isPathInside(absSrc, absDst) {
		return nil, ErrNestedRoots
	}

	return &Mirrorer{
		fs:   fs,
		src:  absSrc,
		dst:  absDst,
		opts: opts,
	}, nil
}

func (m *Mirrorer) Source() string      { return m.src }
func (m *Mirrorer) Destination() string { return m.dst }

// Run performs one full pass: scan both trees, delete extraneous destination
// paths deepest-first, copy or update in lexical order, then fix up directory
// metadata last so child operations cannot desynchronize directory mtimes.
func (m *Mirrorer) Run() (Summary, error) {
	var sum Summary

	if !m.fs.Exists(m.dst) {
		if m.opts.DryRun {
			logger.Log.Info("would create destination directory",
				zap.String("path", m.dst))
		} else {
			if err := m.fs.MkdirAll(m.dst, 0755); err != nil {
				return sum, fmt.Errorf("failed to create destination: %w", err)
			}
			logger.Log.Info("created destination directory",
				zap.String("path", m.dst))
		}
	}

	srcPaths, err := Scan(m.fs, m.src, m.opts.FollowSymlinks)
	if err != nil {
		return sum, fmt.Errorf("failed to scan source: %w", err)
	}

	dstPaths := make(PathSet)
	if m.fs.Exists(m.dst) {
		dstPaths, err = Scan(m.fs, m.dst, false)
		if err != nil {
			return sum, fmt.Errorf("failed to scan destination: %w", err)
		}
	}

	srcPaths = FilterExcluded(srcPaths, m.opts.Excludes)

	m.deletePass(Diff(srcPaths, dstPaths), &sum)
	dirs := m.copyPass(srcPaths, &sum)

	if !m.opts.DryRun {
		for _, d := range dirs {
			m.applyDirMetadata(d.src, d.dst)
		}

		// The root last, for the same reason as every other directory.
		if m.fs.Exists(m.dst) {
			m.applyDirMetadata(m.src, m.dst)
		}
	}

	return sum, nil
}

// deletePass removes destination paths with no source counterpart, deepest
// first. Directories are only removed when already empty; removal is never
// recursive, which bounds deletions to exactly the excess-path set.
func (m *Mirrorer) deletePass(toDelete PathSet, sum *Summary) {
	for _, rel := range deleteOrder(toDelete) {
		dst := filepath.Join(m.dst, filepath.FromSlash(rel))

		if !m.fs.Exists(dst) && !m.fs.IsSymlink(dst) {
			continue
		}

		isDir := m.fs.IsDir(dst) && !m.fs.IsSymlink(dst)

		if m.opts.DryRun {
			kind := "file"
			if isDir {
				kind = "directory"
			}
			logger.Log.Info("would delete",
				zap.String("type", kind),
				zap.String("path", rel))
			sum.DeletedItems++
			continue
		}

		if isDir {
			// Non-empty means it still holds synced content; skip.
			if err := m.fs.Rmdir(dst); err != nil {
				continue
			}
			logger.Log.Info("deleted directory", zap.String("path", rel))
			sum.DeletedItems++
			continue
		}

		if err := m.fs.Remove(dst); err != nil {
			logger.Log.Error("failed to delete",
				zap.String("path", rel),
				zap.Error(err))
			continue
		}

		logger.Log.Info("deleted file", zap.String("path", rel))
		sum.DeletedItems++
	}
}

type dirPair struct {
	src string
	dst string
}

// copyPass visits the filtered source paths in lexical order, creating
// directories and copying files and symlinks whose counterpart is missing or
// stale. Directory metadata is deferred; the returned pairs feed the fixup
// pass.
func (m *Mirrorer) copyPass(srcPaths PathSet, sum *Summary) []dirPair {
	var dirs []dirPair

	for _, rel := range copyOrder(srcPaths) {
		src := filepath.Join(m.src, filepath.FromSlash(rel))
		dst := filepath.Join(m.dst, filepath.FromSlash(rel))

		if m.fs.IsDir(src) && !m.fs.IsSymlink(src) {
			if !m.fs.Exists(dst) {
				if m.opts.DryRun {
					logger.Log.Info("would create directory", zap.String("path", rel))
					sum.CreatedDirs++
				} else if err := m.fs.MkdirAll(dst, 0755); err != nil {
					logger.Log.Error("failed to create directory",
						zap.String("path", rel),
						zap.Error(err))
				} else {
					logger.Log.Info("created directory", zap.String("path", rel))
					sum.CreatedDirs++
				}
			}

			if !m.opts.DryRun && m.fs.Exists(dst) {
				dirs = append(dirs, dirPair{src: src, dst: dst})
			}
			continue
		}

		if !ShouldCopy(m.fs, src, dst, m.opts.TimeTolerance) {
			continue
		}

		if m.opts.DryRun {
			action := "update"
			if !m.fs.Exists(dst) {
				action = "create"
			}
			kind := "file"
			if m.fs.IsSymlink(src) {
				kind = "symlink"
			}
			logger.Log.Info("would "+action,
				zap.String("type", kind),
				zap.String("path", rel))
			sum.CopiedFiles++
			continue
		}

		if err := m.copyEntry(src, dst); err != nil {
			logger.Log.Error("failed to copy",
				zap.String("path", rel),
				zap.Error(err))
			sum.FailedCopies++
			continue
		}

		logger.Log.Info("copied", zap.String("path", rel))
		sum.CopiedFiles++
	}

	return dirs
}

// copyEntry replicates one file or symlink. Symlinks are recreated with the
// raw target string, never resolved. Timestamp and permission failures after
// a successful content copy are tolerated; not every filesystem supports
// setting them.
func (m *Mirrorer) copyEntry(src, dst string) error {
	parent := filepath.Dir(dst)
	if !m.fs.Exists(parent) {
		if err := m.fs.MkdirAll(parent, 0755); err != nil {
			return fmt.Errorf("failed to create parent dir: %w", err)
		}
	}

	if m.fs.IsSymlink(src) {
		if m.fs.Exists(dst) || m.fs.IsSymlink(dst) {
			if err := m.fs.Remove(dst); err != nil {
				return fmt.Errorf("failed to remove existing dst: %w", err)
			}
		}

		target, err := m.fs.Readlink(src)
		if err != nil {
			return fmt.Errorf("failed to read link: %w", err)
		}

		if err := m.fs.Symlink(target, dst); err != nil {
			return fmt.Errorf("failed to create link: %w", err)
		}

		return nil
	}

	if err := m.fs.CopyFile(src, dst); err != nil {
		return err
	}

	info, err := m.fs.Stat(src)
	if err != nil {
		return fmt.Errorf("failed to stat src: %w", err)
	}

	_ = m.fs.Chtimes(dst, info.AccessTime, info.ModTime)
	_ = m.fs.Chmod(dst, info.Mode.Perm())

	return nil
}

func (m *Mirrorer) applyDirMetadata(src, dst string) {
	info, err := m.fs.Stat(src)
	if err != nil {
		return
	}

	_ = m.fs.Chmod(dst, info.Mode.Perm())
	_ = m.fs.Chtimes(dst, info.AccessTime, info.ModTime)
}

func isPathInside(child, parent string) bool {
	rel, err := filepath.Rel(parent, child)
	if err != nil {
		return false
	}

	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

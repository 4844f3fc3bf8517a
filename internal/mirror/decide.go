package mirror

import (
	"mirro/internal/fsys"
	"mirro/internal/logger"
	"time"

	"go.uber.org/zap"
)

// ShouldCopy decides from size and mtime alone whether src must be copied
// over dst. Symlinks are never followed here: a destination symlink always
// forces the copy path, and comparison uses lstat on both sides. A failed
// stat means copy, the safe answer under uncertainty.
func ShouldCopy(fs fsys.FS, src, dst string, tolerance time.Duration) bool {
	if !fs.Exists(dst) {
		return true
	}

	if fs.IsSymlink(dst) {
		return true
	}

	srcInfo, err := fs.Lstat(src)
	if err != nil {
		logger.Log.Warn("could not stat for comparison, assuming copy is needed",
			zap.String("path", src),
			zap.Error(err))
		return true
	}

	dstInfo, err := fs.Lstat(dst)
	if err != nil {
		logger.Log.Warn("could not stat for comparison, assuming copy is needed",
			zap.String("path", dst),
			zap.Error(err))
		return true
	}

	if srcInfo.Size != dstInfo.Size {
		return true
	}

	diff := srcInfo.ModTime.Sub(dstInfo.ModTime)
	if diff < 0 {
		diff = -diff
	}

	return diff > tolerance
}

package fsys

import (
	"fmt"
	"io"
	"os"
	"time"
)

// Info is the stat surface the reconciler works with. AccessTime falls back
// to ModTime on platforms where the kernel does not expose it.
type Info struct {
	Size       int64
	Mode       os.FileMode
	ModTime    time.Time
	AccessTime time.Time
}

// FS is the filesystem capability the reconciler drives. Lstat never follows
// symlinks; Stat, Exists and IsDir do.
type FS interface {
	Exists(path string) bool
	IsDir(path string) bool
	IsSymlink(path string) bool
	Lstat(path string) (Info, error)
	Stat(path string) (Info, error)
	Readlink(path string) (string, error)
	ReadDir(path string) ([]os.DirEntry, error)
	MkdirAll(path string, mode os.FileMode) error
	Rmdir(path string) error
	Remove(path string) error
	Symlink(target, linkPath string) error
	CopyFile(src, dst string) error
	Chtimes(path string, atime, mtime time.Time) error
	Chmod(path string, mode os.FileMode) error
}

type OS struct{}

func NewOS() *OS {
	return &OS{}
}

func (o *OS) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (o *OS) IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func (o *OS) IsSymlink(path string) bool {
	info, err := os.Lstat(path)
	return err == nil && info.Mode()&os.ModeSymlink != 0
}

func (o *OS) Lstat(path string) (Info, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return Info{}, err
	}

	return toInfo(info), nil
}

func (o *OS) Stat(path string) (Info, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Info{}, err
	}

	return toInfo(info), nil
}

func (o *OS) Readlink(path string) (string, error) {
	return os.Readlink(path)
}

func (o *OS) ReadDir(path string) ([]os.DirEntry, error) {
	return os.ReadDir(path)
}

func (o *OS) MkdirAll(path string, mode os.FileMode) error {
	return os.MkdirAll(path, mode)
}

// Rmdir fails on a non-empty directory; it is never recursive.
func (o *OS) Rmdir(path string) error {
	return os.Remove(path)
}

func (o *OS) Remove(path string) error {
	return os.Remove(path)
}

func (o *OS) Symlink(target, linkPath string) error {
	return os.Symlink(target, linkPath)
}

// CopyFile copies content into a temp file next to dst and renames it into
// place, then carries over the source's mode and timestamps.
func (o *OS) CopyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open src: %w", err)
	}

	defer func(srcFile *os.File) {
		_ = srcFile.Close()
	}(srcFile)

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat src: %w", err)
	}

	tmpPath := dst + ".mirro.tmp"
	dstFile, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, srcInfo.Mode().Perm())
	if err != nil {
		return fmt.Errorf("failed to open dst: %w", err)
	}

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		_ = dstFile.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to copy: %w", err)
	}

	if err := dstFile.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to close dst: %w", err)
	}

	// OpenFile perms go through the umask, so set them explicitly.
	if err := os.Chmod(tmpPath, srcInfo.Mode().Perm()); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to chmod: %w", err)
	}

	if err := os.Rename(tmpPath, dst); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename tmp: %w", err)
	}

	full := toInfo(srcInfo)
	if err := os.Chtimes(dst, full.AccessTime, full.ModTime); err != nil {
		return fmt.Errorf("failed to set times: %w", err)
	}

	return nil
}

func (o *OS) Chtimes(path string, atime, mtime time.Time) error {
	return os.Chtimes(path, atime, mtime)
}

func (o *OS) Chmod(path string, mode os.FileMode) error {
	return os.Chmod(path, mode)
}

func toInfo(info os.FileInfo) Info {
	return Info{
		Size:       info.Size(),
		Mode:       info.Mode(),
		ModTime:    info.ModTime(),
		AccessTime: accessTime(info),
	}
}

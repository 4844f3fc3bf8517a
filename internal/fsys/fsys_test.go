package fsys

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyFile_ContentAndMetadata(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	dst := filepath.Join(dir, "dst.txt")

	require.NoError(t, os.WriteFile(src, []byte("hello world"), 0640))
	past := time.Now().Add(-time.Hour).Truncate(time.Second)
	require.NoError(t, os.Chtimes(src, past, past))

	fs := NewOS()
	require.NoError(t, fs.CopyFile(src, dst))

	content, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello world"), content)

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0640), info.Mode().Perm())
	assert.Equal(t, past.Unix(), info.ModTime().Unix())

	// No temp file left behind.
	assert.NoFileExists(t, dst+".mirro.tmp")
}

func TestCopyFile_OverwritesExisting(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	dst := filepath.Join(dir, "dst.txt")

	require.NoError(t, os.WriteFile(src, []byte("new"), 0644))
	require.NoError(t, os.WriteFile(dst, []byte("previous content"), 0644))

	require.NoError(t, NewOS().CopyFile(src, dst))

	content, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), content)
}

func TestCopyFile_MissingSource(t *testing.T) {
	dir := t.TempDir()
	err := NewOS().CopyFile(filepath.Join(dir, "nope"), filepath.Join(dir, "dst"))
	assert.Error(t, err)
}

func TestRmdir_RefusesNonEmpty(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.MkdirAll(sub, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "f.txt"), []byte("x"), 0644))

	fs := NewOS()
	assert.Error(t, fs.Rmdir(sub))
	assert.DirExists(t, sub)

	require.NoError(t, os.Remove(filepath.Join(sub, "f.txt")))
	assert.NoError(t, fs.Rmdir(sub))
}

func TestLstatDoesNotFollowSymlinks(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target.txt")
	link := filepath.Join(dir, "link")

	require.NoError(t, os.WriteFile(target, []byte("0123456789"), 0644))
	require.NoError(t, os.Symlink("target.txt", link))

	fs := NewOS()

	lstat, err := fs.Lstat(link)
	require.NoError(t, err)
	assert.NotZero(t, lstat.Mode&os.ModeSymlink)

	stat, err := fs.Stat(link)
	require.NoError(t, err)
	assert.Equal(t, int64(10), stat.Size)
	assert.Zero(t, stat.Mode&os.ModeSymlink)
}

func TestSymlinkReadlinkRoundTrip(t *testing.T) {
	dir := t.TempDir()
	link := filepath.Join(dir, "link")

	fs := NewOS()
	require.NoError(t, fs.Symlink("../raw/target", link))

	assert.True(t, fs.IsSymlink(link))
	assert.False(t, fs.Exists(link)) // dangling

	target, err := fs.Readlink(link)
	require.NoError(t, err)
	assert.Equal(t, "../raw/target", target)
}

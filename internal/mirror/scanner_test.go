package mirror

import (
	"mirro/internal/fsys"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScan_BasicTree(t *testing.T) {
	dir := t.TempDir()

	// dir/
	//   docs/
	//     readme.txt
	//   empty/
	//   photo.jpg
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "docs"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "empty"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "docs", "readme.txt"), []byte("hello"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "photo.jpg"), []byte("fake-jpg"), 0644))

	paths, err := Scan(fsys.NewOS(), dir, false)
	require.NoError(t, err)

	assert.Len(t, paths, 4)
	assert.True(t, paths.Has("docs"))
	assert.True(t, paths.Has("docs/readme.txt"))
	assert.True(t, paths.Has("empty"))
	assert.True(t, paths.Has("photo.jpg"))
}

func TestScan_RootItselfExcluded(t *testing.T) {
	dir := t.TempDir()

	paths, err := Scan(fsys.NewOS(), dir, false)
	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestScan_SymlinkedDirNotDescended(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "real"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "real", "inner.txt"), []byte("x"), 0644))
	require.NoError(t, os.Symlink(filepath.Join(dir, "real"), filepath.Join(dir, "link")))

	paths, err := Scan(fsys.NewOS(), dir, false)
	require.NoError(t, err)

	// The link is listed as an entry but its contents are not.
	assert.True(t, paths.Has("link"))
	assert.False(t, paths.Has("link/inner.txt"))
	assert.True(t, paths.Has("real/inner.txt"))
}

func TestScan_FollowSymlinkedDirs(t *testing.T) {
	srcDir := t.TempDir()
	otherDir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(otherDir, "outside.txt"), []byte("x"), 0644))
	require.NoError(t, os.Symlink(otherDir, filepath.Join(srcDir, "link")))

	paths, err := Scan(fsys.NewOS(), srcDir, true)
	require.NoError(t, err)

	assert.True(t, paths.Has("link"))
	assert.True(t, paths.Has("link/outside.txt"))
}

func TestScan_BrokenSymlinkListed(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, os.Symlink("does/not/exist", filepath.Join(dir, "dangling")))

	paths, err := Scan(fsys.NewOS(), dir, false)
	require.NoError(t, err)
	assert.True(t, paths.Has("dangling"))
}

func TestScan_MissingRoot(t *testing.T) {
	_, err := Scan(fsys.NewOS(), filepath.Join(t.TempDir(), "nope"), false)
	assert.Error(t, err)
}

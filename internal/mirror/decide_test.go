package mirror

import (
	"mirro/internal/fsys"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFileWithTime(t *testing.T, path string, content []byte, mtime time.Time) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, content, 0644))
	require.NoError(t, os.Chtimes(path, mtime, mtime))
}

func TestShouldCopy_MissingDestination(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	require.NoError(t, os.WriteFile(src, []byte("x"), 0644))

	assert.True(t, ShouldCopy(fsys.NewOS(), src, filepath.Join(dir, "missing.txt"), DefaultTimeTolerance))
}

func TestShouldCopy_IdenticalWithinTolerance(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	dst := filepath.Join(dir, "dst.txt")

	now := time.Now()
	writeFileWithTime(t, src, []byte("same content"), now)
	writeFileWithTime(t, dst, []byte("same content"), now.Add(1*time.Second))

	assert.False(t, ShouldCopy(fsys.NewOS(), src, dst, DefaultTimeTolerance))
}

func TestShouldCopy_SizeDiffersByOneByte(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	dst := filepath.Join(dir, "dst.txt")

	now := time.Now()
	writeFileWithTime(t, src, []byte("12345"), now)
	writeFileWithTime(t, dst, []byte("1234"), now)

	assert.True(t, ShouldCopy(fsys.NewOS(), src, dst, DefaultTimeTolerance))
}

func TestShouldCopy_MtimeBeyondTolerance(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	dst := filepath.Join(dir, "dst.txt")

	now := time.Now()
	writeFileWithTime(t, src, []byte("same"), now)
	writeFileWithTime(t, dst, []byte("same"), now.Add(-3*time.Second))

	assert.True(t, ShouldCopy(fsys.NewOS(), src, dst, DefaultTimeTolerance))
}

func TestShouldCopy_ToleranceIsSymmetric(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	dst := filepath.Join(dir, "dst.txt")

	now := time.Now()
	writeFileWithTime(t, src, []byte("same"), now.Add(-3*time.Second))
	writeFileWithTime(t, dst, []byte("same"), now)

	assert.True(t, ShouldCopy(fsys.NewOS(), src, dst, DefaultTimeTolerance))
}

func TestShouldCopy_DestinationSymlinkForcesCopy(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	target := filepath.Join(dir, "target.txt")
	dst := filepath.Join(dir, "dst.txt")

	require.NoError(t, os.WriteFile(src, []byte("x"), 0644))
	require.NoError(t, os.WriteFile(target, []byte("x"), 0644))
	require.NoError(t, os.Symlink(target, dst))

	assert.True(t, ShouldCopy(fsys.NewOS(), src, dst, DefaultTimeTolerance))
}

package mirror

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func set(paths ...string) PathSet {
	s := make(PathSet, len(paths))
	for _, p := range paths {
		s[p] = struct{}{}
	}
	return s
}

func TestFilterExcluded_Substring(t *testing.T) {
	paths := set("src/main.go", ".git", ".git/config", "docs/git-notes.txt")

	filtered := FilterExcluded(paths, []string{".git"})

	assert.True(t, filtered.Has("src/main.go"))
	assert.False(t, filtered.Has(".git"))
	assert.False(t, filtered.Has(".git/config"))
	// Plain substring matching, anywhere in the rendered path.
	assert.True(t, filtered.Has("docs/git-notes.txt"))
}

func TestFilterExcluded_CaseSensitive(t *testing.T) {
	paths := set("Thumbs.db", "thumbs.db")

	filtered := FilterExcluded(paths, []string{"Thumbs.db"})

	assert.False(t, filtered.Has("Thumbs.db"))
	assert.True(t, filtered.Has("thumbs.db"))
}

func TestFilterExcluded_NoPatterns(t *testing.T) {
	paths := set("a", "b/c")
	assert.Equal(t, paths, FilterExcluded(paths, nil))
}

func TestDiff_SetDifference(t *testing.T) {
	src := set("a", "a/kept.txt")
	dst := set("a", "a/kept.txt", "a/extra.txt", "old")

	extra := Diff(src, dst)

	assert.Len(t, extra, 2)
	assert.True(t, extra.Has("a/extra.txt"))
	assert.True(t, extra.Has("old"))
}

func TestDiff_EmptyDestination(t *testing.T) {
	assert.Empty(t, Diff(set("a"), set()))
}

func TestDeleteOrder_DeepestFirst(t *testing.T) {
	order := deleteOrder(set("a", "a/b", "a/b/c.txt", "z.txt"))

	assert.Equal(t, []string{"a/b/c.txt", "a/b", "z.txt", "a"}, order)
}

func TestDeleteOrder_TieBreakReverseLexical(t *testing.T) {
	order := deleteOrder(set("a/x", "a/y", "b/x"))

	assert.Equal(t, []string{"b/x", "a/y", "a/x"}, order)
}

func TestCopyOrder_ParentsBeforeChildren(t *testing.T) {
	order := copyOrder(set("a/b/c.txt", "a", "a/b", "a.txt"))

	assert.Equal(t, []string{"a", "a.txt", "a/b", "a/b/c.txt"}, order)
}

func TestDepth(t *testing.T) {
	assert.Equal(t, 1, depth("a"))
	assert.Equal(t, 2, depth("a/b"))
	assert.Equal(t, 3, depth("a/b/c.txt"))
}

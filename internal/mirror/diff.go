package mirror

import (
	"slices"
	"strings"
)

// FilterExcluded drops every path whose rendered form contains any of the
// patterns. Matching is plain substring, case-sensitive.
func FilterExcluded(paths PathSet, patterns []string) PathSet {
	if len(patterns) == 0 {
		return paths
	}

	filtered := make(PathSet, len(paths))
	for p := range paths {
		if !excluded(p, patterns) {
			filtered[p] = struct{}{}
		}
	}

	return filtered
}

func excluded(path string, patterns []string) bool {
	for _, pattern := range patterns {
		if strings.Contains(path, pattern) {
			return true
		}
	}

	return false
}

// Diff returns the paths present in dst but absent from src.
func Diff(src, dst PathSet) PathSet {
	extra := make(PathSet)
	for p := range dst {
		if !src.Has(p) {
			extra[p] = struct{}{}
		}
	}

	return extra
}

func depth(rel string) int {
	return strings.Count(rel, "/") + 1
}

// deleteOrder sorts deepest paths first so files go before their parent
// directories; equal depths break by reverse lexical order for determinism.
func deleteOrder(paths PathSet) []string {
	out := make([]string, 0, len(paths))
	for p := range paths {
		out = append(out, p)
	}

	slices.SortFunc(out, func(a, b string) int {
		if d := depth(b) - depth(a); d != 0 {
			return d
		}
		return strings.Compare(b, a)
	})

	return out
}

// copyOrder is plain lexical order; directory entries carry no trailing
// separator, so a parent always sorts at or before its children.
func copyOrder(paths PathSet) []string {
	out := make([]string, 0, len(paths))
	for p := range paths {
		out = append(out, p)
	}

	slices.Sort(out)
	return out
}

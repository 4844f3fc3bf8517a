package mirror

import "time"

// DefaultTimeTolerance absorbs the 2-second mtime granularity of FAT-style
// filesystems.
const DefaultTimeTolerance = 2 * time.Second

type Options struct {
	DryRun         bool
	FollowSymlinks bool
	Excludes       []string
	TimeTolerance  time.Duration
}

// Summary holds the counters of a single mirror pass. A nonzero FailedCopies
// is how a partially failed run reaches the caller; everything else is
// best-effort.
type Summary struct {
	CreatedDirs  int
	CopiedFiles  int
	DeletedItems int
	FailedCopies int
}

package daemon

import (
	"mirro/internal/mirror"
	"sync"
	"time"
)

// State tracks the live watch daemon: how many passes ran, what the last one
// did, and when.
type State struct {
	mu          sync.RWMutex
	src         string
	dst         string
	startedAt   time.Time
	runs        int
	partialRuns int
	lastRun     *time.Time
	lastSummary mirror.Summary
}

type Snapshot struct {
	Src          string     `json:"src"`
	Dst          string     `json:"dst"`
	StartedAt    time.Time  `json:"started_at"`
	Runs         int        `json:"runs"`
	PartialRuns  int        `json:"partial_runs"`
	LastRun      *time.Time `json:"last_run,omitempty"`
	CreatedDirs  int        `json:"created_dirs"`
	CopiedFiles  int        `json:"copied_files"`
	DeletedItems int        `json:"deleted_items"`
	FailedCopies int        `json:"failed_copies"`
}

func NewState(src, dst string) *State {
	return &State{
		src:       src,
		dst:       dst,
		startedAt: time.Now(),
	}
}

func (s *State) RecordRun(sum mirror.Summary) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	s.lastRun = &now
	s.lastSummary = sum
	s.runs++
	if sum.FailedCopies > 0 {
		s.partialRuns++
	}
}

func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Snapshot{
		Src:          s.src,
		Dst:          s.dst,
		StartedAt:    s.startedAt,
		Runs:         s.runs,
		PartialRuns:  s.partialRuns,
		LastRun:      s.lastRun,
		CreatedDirs:  s.lastSummary.CreatedDirs,
		CopiedFiles:  s.lastSummary.CopiedFiles,
		DeletedItems: s.lastSummary.DeletedItems,
		FailedCopies: s.lastSummary.FailedCopies,
	}
}

package model

import (
	"time"

	"gorm.io/gorm"
)

type RunStatus string

const (
	RunStatusSuccess RunStatus = "SUCCESS"
	RunStatusPartial RunStatus = "PARTIAL"
	RunStatusDryRun  RunStatus = "DRY_RUN"
)

type Run struct {
	gorm.Model
	SrcPath      string    `gorm:"not null"`
	DstPath      string    `gorm:"not null"`
	Status       RunStatus `gorm:"not null"`
	CreatedDirs  int
	CopiedFiles  int
	DeletedItems int
	FailedCopies int
	DurationMs   int64
	StartedAt    time.Time `gorm:"not null"`
}

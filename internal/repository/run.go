package repository

import (
	"mirro/internal/db"
	"mirro/internal/model"
)

type RunRepository struct{}

func NewRunRepository() *RunRepository {
	return &RunRepository{}
}

func (r *RunRepository) Save(run *model.Run) error {
	return db.DB.Create(run).Error
}

func (r *RunRepository) GetRecent(limit int) ([]model.Run, error) {
	var runs []model.Run
	result := db.DB.
		Order("started_at desc").
		Limit(limit).
		Find(&runs)

	return runs, result.Error
}

type Stats struct {
	Total   int64
	Clean   int64
	Partial int64
}

func (r *RunRepository) GetStats() (Stats, error) {
	var stats Stats
	if err := db.DB.Model(&model.Run{}).Count(&stats.Total).Error; err != nil {
		return stats, err
	}

	if err := db.DB.Model(&model.Run{}).
		Where("status = ?", model.RunStatusSuccess).
		Count(&stats.Clean).Error; err != nil {
		return stats, err
	}

	if err := db.DB.Model(&model.Run{}).
		Where("status = ?", model.RunStatusPartial).
		Count(&stats.Partial).Error; err != nil {
		return stats, err
	}

	return stats, nil
}

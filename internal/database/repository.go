package database

import (
	"context"

	"gorm.io/gorm"
)

type ScenarioRunRepository struct {
	db *gorm.DB
}

func NewScenarioRunRepository(db *gorm.DB) *ScenarioRunRepository {
	return &ScenarioRunRepository{db: db}
}

func (r *ScenarioRunRepository) Create(ctx context.Context, run *ScenarioRun) error {
	return r.db.WithContext(ctx).Create(run).Error
}

func (r *ScenarioRunRepository) ListByRun(ctx context.Context, runID string) ([]ScenarioRun, error) {
	var runs []ScenarioRun
	if err := r.db.WithContext(ctx).Where("run_id = ?", runID).Order("id ASC").Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}

// ListFailed возвращает последние упавшие сценарии, новые первыми.
func (r *ScenarioRunRepository) ListFailed(ctx context.Context, limit int) ([]ScenarioRun, error) {
	var runs []ScenarioRun
	q := r.db.WithContext(ctx).Where("status = ?", StatusFailed).Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}

// Package database хранит историю прогонов сценариев.
package database

import "time"

// Статусы сценария, как их отдает godog.
const (
	StatusPassed    = "passed"
	StatusFailed    = "failed"
	StatusSkipped   = "skipped"
	StatusUndefined = "undefined"
	StatusPending   = "pending"
)

// ScenarioRun представляет результат одного выполнения сценария.
type ScenarioRun struct {
	ID             uint      `gorm:"primaryKey"`
	RunID          string    `gorm:"type:varchar(36);index;not null"` // uuid прогона
	Feature        string    `gorm:"type:text"`
	Scenario       string    `gorm:"type:text;not null"`
	Browser        string    `gorm:"type:varchar(16)"`
	Status         string    `gorm:"type:varchar(16);index;not null"`
	Error          string    `gorm:"type:text"`
	ScreenshotPath string    `gorm:"type:text"`
	StartedAt      time.Time `gorm:"not null"`
	DurationMs     int64
	CreatedAt      time.Time `gorm:"autoCreateTime"`
}

func (r ScenarioRun) Failed() bool {
	return r.Status == StatusFailed
}

func (r ScenarioRun) Duration() time.Duration {
	return time.Duration(r.DurationMs) * time.Millisecond
}

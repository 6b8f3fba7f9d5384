package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// PlanPhase is a named, optionally dated sub-interval of a plan's timeline.
// Dates are bare calendar dates; time-of-day is never meaningful.
type PlanPhase struct {
	ID           uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	PlanID       uuid.UUID         `gorm:"type:uuid;not null;index" json:"plan_id"`
	Name         string            `gorm:"column:name;not null" json:"name"`
	StartDate    *time.Time        `gorm:"column:start_date;type:date" json:"start_date,omitempty"`
	EndDate      *time.Time        `gorm:"column:end_date;type:date" json:"end_date,omitempty"`
	Color        string            `gorm:"column:color" json:"color,omitempty"`
	MetricValues datatypes.JSONMap `gorm:"column:metric_values;type:jsonb" json:"metric_values,omitempty"`
	Seq          int               `gorm:"column:seq;not null;default:0" json:"seq"`
	CreatedAt    time.Time         `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time         `gorm:"not null" json:"updated_at"`
}

func (PlanPhase) TableName() string { return "plan_phase" }

package domain

import (
	"time"

	"github.com/google/uuid"
)

// PlanRCA is a root-cause-analysis note recorded against one of a plan's
// reschedules. Removed together with the plan.
type PlanRCA struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	PlanID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"plan_id"`
	RescheduleID *uuid.UUID `gorm:"type:uuid;column:reschedule_id;index" json:"reschedule_id,omitempty"`
	Summary      string     `gorm:"column:summary;not null" json:"summary"`
	Detail       *string    `gorm:"column:detail" json:"detail,omitempty"`
	AuthorID     *uuid.UUID `gorm:"type:uuid;column:author_id" json:"author_id,omitempty"`
	CreatedAt    time.Time  `gorm:"not null" json:"created_at"`
}

func (PlanRCA) TableName() string { return "plan_rca" }

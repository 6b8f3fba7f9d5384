package domain

import (
	"time"

	"github.com/google/uuid"
)

// PlanMilestone is the flat projection of milestone-type references kept for
// fast calendar rendering. The milestone synchronizer regenerates the whole
// set; rows are never edited individually once references exist.
type PlanMilestone struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	PlanID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"plan_id"`
	Name        string     `gorm:"column:name;not null" json:"name"`
	Description string     `gorm:"column:description" json:"description,omitempty"`
	Date        time.Time  `gorm:"column:date;type:date;not null;index" json:"date"`
	PhaseID     *uuid.UUID `gorm:"type:uuid;column:phase_id;index" json:"phase_id,omitempty"`
	Color       string     `gorm:"column:color" json:"color,omitempty"`
	CreatedAt   time.Time  `gorm:"not null" json:"created_at"`
}

func (PlanMilestone) TableName() string { return "plan_milestone" }

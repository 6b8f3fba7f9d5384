package domain

import (
	"time"

	"github.com/google/uuid"
)

// Reference content types. Link and document entries require a url.
const (
	ReferenceTypeLink      = "link"
	ReferenceTypeDocument  = "document"
	ReferenceTypeNote      = "note"
	ReferenceTypeComment   = "comment"
	ReferenceTypeFile      = "file"
	ReferenceTypeMilestone = "milestone"
)

// Reference attachment levels.
const (
	ReferenceLevelPlan   = "plan"
	ReferenceLevelPeriod = "period"
	ReferenceLevelDay    = "day"
)

// PlanReference is a heterogeneous note/link/file/comment/milestone entry
// attached to a plan at one of three levels: plan-wide, a day within a
// period, or a calendar day plus phase.
type PlanReference struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	PlanID         uuid.UUID       `gorm:"type:uuid;not null;index" json:"plan_id"`
	Type           string          `gorm:"column:type;not null;index" json:"type"`
	Title          string          `gorm:"column:title;not null" json:"title"`
	URL            string          `gorm:"column:url" json:"url,omitempty"`
	Description    string          `gorm:"column:description" json:"description,omitempty"`
	LevelID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"level_id"`
	Level          *ReferenceLevel `gorm:"foreignKey:LevelID;references:ID" json:"level,omitempty"`
	PeriodDay      *int            `gorm:"column:period_day" json:"period_day,omitempty"`
	CalendarDate   *time.Time      `gorm:"column:calendar_date;type:date" json:"calendar_date,omitempty"`
	PhaseID        *uuid.UUID      `gorm:"type:uuid;column:phase_id;index" json:"phase_id,omitempty"`
	Date           *time.Time      `gorm:"column:date;type:date" json:"date,omitempty"`
	MilestoneColor string          `gorm:"column:milestone_color" json:"milestone_color,omitempty"`
	CreatedAt      time.Time       `gorm:"not null" json:"created_at"`
}

func (PlanReference) TableName() string { return "plan_reference" }

// ReferenceLevel is the persisted discriminator row for a reference's
// attachment level ("plan", "period", "day").
type ReferenceLevel struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name string    `gorm:"column:name;not null;uniqueIndex" json:"name"`
}

func (ReferenceLevel) TableName() string { return "reference_level" }

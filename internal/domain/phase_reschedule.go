package domain

import (
	"time"

	"github.com/google/uuid"
)

// PhaseReschedule is an append-only audit record of a phase's date range
// changing. Only its type and owner may be annotated after creation.
type PhaseReschedule struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	PlanPhaseID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"plan_phase_id"`
	RescheduleTypeID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"reschedule_type_id"`
	RescheduleType    *RescheduleType `gorm:"foreignKey:RescheduleTypeID;references:ID" json:"reschedule_type,omitempty"`
	OwnerID           *uuid.UUID      `gorm:"type:uuid;column:owner_id;index" json:"owner_id,omitempty"`
	OriginalStartDate *time.Time      `gorm:"column:original_start_date;type:date" json:"original_start_date,omitempty"`
	OriginalEndDate   *time.Time      `gorm:"column:original_end_date;type:date" json:"original_end_date,omitempty"`
	NewStartDate      *time.Time      `gorm:"column:new_start_date;type:date" json:"new_start_date,omitempty"`
	NewEndDate        *time.Time      `gorm:"column:new_end_date;type:date" json:"new_end_date,omitempty"`
	CreatedAt         time.Time       `gorm:"not null;index" json:"created_at"`
}

func (PhaseReschedule) TableName() string { return "phase_reschedule" }

// RescheduleType classifies why a phase moved. The "Default" row is created
// lazily the first time a reschedule is derived without an explicit type.
type RescheduleType struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"column:name;not null;uniqueIndex" json:"name"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (RescheduleType) TableName() string { return "reschedule_type" }

const DefaultRescheduleTypeName = "Default"

package domain

import (
	"time"

	"github.com/google/uuid"
)

// PlanComponent records the plan's current target ("final") version for one
// product component. The list is replaced wholesale on every plan update.
type PlanComponent struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PlanID        uuid.UUID `gorm:"type:uuid;not null;index" json:"plan_id"`
	ComponentID   uuid.UUID `gorm:"type:uuid;not null;index" json:"component_id"`
	TargetVersion string    `gorm:"column:target_version;not null" json:"target_version"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
}

func (PlanComponent) TableName() string { return "plan_component" }

// PlanComponentVersion is the append-only ledger of a plan's evolving target
// version for a component. Rows are only ever inserted.
type PlanComponentVersion struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PlanID      uuid.UUID `gorm:"type:uuid;not null;index" json:"plan_id"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	ComponentID uuid.UUID `gorm:"type:uuid;not null;index" json:"component_id"`
	OldVersion  string    `gorm:"column:old_version;not null" json:"old_version"`
	NewVersion  string    `gorm:"column:new_version;not null" json:"new_version"`
	CreatedAt   time.Time `gorm:"not null;index" json:"created_at"`
}

func (PlanComponentVersion) TableName() string { return "plan_component_version" }

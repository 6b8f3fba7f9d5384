package domain

import (
	"time"

	"github.com/google/uuid"
)

type PlanTask struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	PlanID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"plan_id"`
	Name      string     `gorm:"column:name;not null" json:"name"`
	Status    string     `gorm:"column:status;not null;default:'open';index" json:"status"`
	OwnerID   *uuid.UUID `gorm:"type:uuid;column:owner_id;index" json:"owner_id,omitempty"`
	DueDate   *time.Time `gorm:"column:due_date;type:date" json:"due_date,omitempty"`
	CreatedAt time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time  `gorm:"not null" json:"updated_at"`
}

func (PlanTask) TableName() string { return "plan_task" }

package domain

import (
	"time"

	"github.com/google/uuid"
)

// Owner is a person who can own plans or approve reschedules. Only the
// display name is ever needed by this service's output.
type Owner struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"column:name;not null" json:"name"`
	Email     string    `gorm:"column:email" json:"email,omitempty"`
	Role      string    `gorm:"column:role" json:"role,omitempty"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (Owner) TableName() string { return "owner" }

type Team struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"column:name;not null;uniqueIndex" json:"name"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (Team) TableName() string { return "team" }

// Feature statuses. Deleting a plan completes the features it referenced.
const (
	FeatureStatusPlanned    = "planned"
	FeatureStatusInProgress = "in_progress"
	FeatureStatusCompleted  = "completed"
)

type Feature struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"column:name;not null" json:"name"`
	Status    string    `gorm:"column:status;not null;default:'planned';index" json:"status"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Feature) TableName() string { return "feature" }

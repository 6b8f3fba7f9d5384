package domain

import (
	"time"

	"github.com/google/uuid"
)

// Product is the master record a plan targets. UpdatedAt is its own
// optimistic-concurrency token, independent of the plan's so a product edit
// and a plan edit can proceed concurrently unless they touch the same
// component.
type Product struct {
	ID          uuid.UUID           `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string              `gorm:"column:name;not null" json:"name"`
	NameKey     string              `gorm:"column:name_key;not null;uniqueIndex" json:"-"`
	Description string              `gorm:"column:description" json:"description,omitempty"`
	OwnerID     *uuid.UUID          `gorm:"type:uuid;column:owner_id;index" json:"owner_id,omitempty"`
	Components  []*ProductComponent `gorm:"constraint:OnDelete:CASCADE;foreignKey:ProductID;references:ID" json:"components,omitempty"`
	CreatedAt   time.Time           `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time           `gorm:"not null;index" json:"updated_at"`
}

func (Product) TableName() string { return "product" }

// ProductComponent holds the authoritative current/previous version of one
// component. Owned by the products subsystem; the reconciliation engine reads
// it and, in the two-entity flow, advances it.
type ProductComponent struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID       uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Name            string    `gorm:"column:name;not null" json:"name"`
	CurrentVersion  string    `gorm:"column:current_version;not null;default:''" json:"current_version"`
	PreviousVersion string    `gorm:"column:previous_version;not null;default:''" json:"previous_version"`
	CreatedAt       time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time `gorm:"not null" json:"updated_at"`
}

func (ProductComponent) TableName() string { return "product_component" }

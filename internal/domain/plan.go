package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Plan is the root aggregate for one release's schedule, product, and metadata.
// UpdatedAt doubles as the optimistic-concurrency token for plan edits.
type Plan struct {
	ID           uuid.UUID               `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string                  `gorm:"column:name;not null" json:"name"`
	NameKey      string                  `gorm:"column:name_key;not null;uniqueIndex" json:"-"`
	Status       string                  `gorm:"column:status;not null;default:'draft';index" json:"status"`
	StartDate    *time.Time              `gorm:"column:start_date;type:date" json:"start_date,omitempty"`
	EndDate      *time.Time              `gorm:"column:end_date;type:date" json:"end_date,omitempty"`
	ProductID    *uuid.UUID              `gorm:"type:uuid;column:product_id;index" json:"product_id,omitempty"`
	Product      *Product                `gorm:"foreignKey:ProductID;references:ID" json:"product,omitempty"`
	OwnerID      *uuid.UUID              `gorm:"type:uuid;column:owner_id;index" json:"owner_id,omitempty"`
	ITOwnerID    *uuid.UUID              `gorm:"type:uuid;column:it_owner_id;index" json:"it_owner_id,omitempty"`
	FeatureIDs   datatypes.JSON          `gorm:"column:feature_ids;type:jsonb" json:"feature_ids,omitempty"`
	CalendarIDs  datatypes.JSON          `gorm:"column:calendar_ids;type:jsonb" json:"calendar_ids,omitempty"`
	IndicatorIDs datatypes.JSON          `gorm:"column:indicator_ids;type:jsonb" json:"indicator_ids,omitempty"`
	TeamIDs      datatypes.JSON          `gorm:"column:team_ids;type:jsonb" json:"team_ids,omitempty"`
	Phases       []*PlanPhase            `gorm:"constraint:OnDelete:CASCADE;foreignKey:PlanID;references:ID" json:"phases,omitempty"`
	Tasks        []*PlanTask             `gorm:"constraint:OnDelete:CASCADE;foreignKey:PlanID;references:ID" json:"tasks,omitempty"`
	Milestones   []*PlanMilestone        `gorm:"constraint:OnDelete:CASCADE;foreignKey:PlanID;references:ID" json:"milestones,omitempty"`
	References   []*PlanReference        `gorm:"constraint:OnDelete:CASCADE;foreignKey:PlanID;references:ID" json:"references,omitempty"`
	Components   []*PlanComponent        `gorm:"constraint:OnDelete:CASCADE;foreignKey:PlanID;references:ID" json:"components,omitempty"`
	History      []*PlanComponentVersion `gorm:"constraint:OnDelete:CASCADE;foreignKey:PlanID;references:ID" json:"-"`
	CreatedAt    time.Time               `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time               `gorm:"not null;index" json:"updated_at"`
}

func (Plan) TableName() string { return "plan" }

// NormalizePlanName collapses interior whitespace and lowercases, producing
// the key used for case-insensitive uniqueness.
func NormalizePlanName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

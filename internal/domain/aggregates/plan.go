package aggregates

import (
	"context"
	"time"

	"github.com/google/uuid"

	types "github.com/planvane/planvane-backend/internal/domain"
)

var PlanAggregateContract = Contract{
	Name:             "Plans.PlanAggregate",
	WriteTxOwnership: WriteTxOwnedByAggregate,
	ReadPolicy:       ReadPolicyInvariantScoped,
	Notes:            "Owns plan update reconciliation: phase diffing, reschedule audit, component version history, milestone sync, all in one atomic unit of work.",
}

// PlanAggregate owns the plan update/reschedule reconciliation invariants.
//
// Write method failures return *aggregates.Error with codes:
// CodeValidation, CodeNotFound, CodeConflict, CodeInvariantViolation,
// CodeRetryable, CodeInternal.
type PlanAggregate interface {
	Aggregate

	// UpdatePlan applies a full desired state to a plan inside one
	// transaction, deriving reschedule audit rows, component version history
	// and the milestone projection as it goes.
	UpdatePlan(ctx context.Context, in UpdatePlanInput) (UpdatePlanResult, error)

	// UpdatePlanWithProduct is the two-entity variant: the same plan update
	// plus advancing the product's authoritative component versions, each
	// under its own optimistic-concurrency token.
	UpdatePlanWithProduct(ctx context.Context, in UpdatePlanWithProductInput) (UpdatePlanResult, error)

	// DeletePlan removes the plan and everything it owns in one transaction,
	// completing any features the plan referenced first.
	DeletePlan(ctx context.Context, in DeletePlanInput) (DeletePlanResult, error)

	// AnnotateReschedule is the one mutation path for an existing reschedule,
	// restricted to its type and owner fields.
	AnnotateReschedule(ctx context.Context, in AnnotateRescheduleInput) (*types.PhaseReschedule, error)
}

// PhaseInput is one client-submitted phase. An empty, absent, or
// client-placeholder ID marks the phase as new.
type PhaseInput struct {
	ID           string
	Name         string
	StartDate    string
	EndDate      string
	Color        string
	MetricValues map[string]string
	Seq          *int
}

type ComponentInput struct {
	ComponentID   uuid.UUID
	TargetVersion string
}

// ReferenceInput carries one submitted reference. Level may be left empty,
// in which case it is inferred once at the boundary from which anchor fields
// are populated.
type ReferenceInput struct {
	Type           string
	Title          string
	URL            string
	Description    string
	Level          string
	PeriodDay      *int
	CalendarDate   string
	PhaseID        string
	Date           string
	MilestoneColor string
}

type MilestoneInput struct {
	Name        string
	Description string
	Date        string
	PhaseID     string
	Color       string
}

// UpdatePlanInput is the full desired state of a plan. Nil slice pointers
// mean "not submitted": the corresponding collection is left untouched.
type UpdatePlanInput struct {
	PlanID            uuid.UUID
	ExpectedUpdatedAt *time.Time

	Name      string
	Status    string
	StartDate string
	EndDate   string
	ProductID *uuid.UUID
	OwnerID   *uuid.UUID
	ITOwnerID *uuid.UUID

	FeatureIDs   []uuid.UUID
	CalendarIDs  []uuid.UUID
	IndicatorIDs []uuid.UUID
	TeamIDs      []uuid.UUID

	Phases     []PhaseInput
	Components *[]ComponentInput
	References *[]ReferenceInput
	Milestones *[]MilestoneInput

	RescheduleTypeID  *uuid.UUID
	RescheduleOwnerID *uuid.UUID
}

type UpdatePlanWithProductInput struct {
	UpdatePlanInput

	ProductExpectedUpdatedAt *time.Time
	AdvanceProductVersions   bool
}

type UpdatePlanResult struct {
	Plan               *types.Plan
	ReschedulesCreated int
	HistoryRowsCreated int
	MilestonesSynced   int
	Warnings           []string
}

type DeletePlanInput struct {
	PlanID uuid.UUID
}

type DeletePlanResult struct {
	PhasesDeleted     int
	FeaturesCompleted int
}

type AnnotateRescheduleInput struct {
	RescheduleID uuid.UUID
	TypeID       *uuid.UUID
	OwnerID      *uuid.UUID
}

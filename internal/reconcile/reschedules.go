package reconcile

import (
	"time"

	"github.com/google/uuid"

	types "github.com/planvane/planvane-backend/internal/domain"
	domainagg "github.com/planvane/planvane-backend/internal/domain/aggregates"
)

// RescheduleChange captures the before/after dates of one matched phase
// whose normalized (start,end) pair moved.
type RescheduleChange struct {
	PhaseID       uuid.UUID
	OriginalStart *time.Time
	OriginalEnd   *time.Time
	NewStart      *time.Time
	NewEnd        *time.Time
}

// DetectRescheduleChange compares a persisted phase with its submitted state
// on bare calendar dates. Absence on one side and presence on the other
// counts as a change. Returns nil when the pair is unchanged.
func DetectRescheduleChange(existing *types.PlanPhase, submitted domainagg.PhaseInput) (*RescheduleChange, error) {
	newStart, err := ParseDate(submitted.StartDate)
	if err != nil {
		return nil, err
	}
	newEnd, err := ParseDate(submitted.EndDate)
	if err != nil {
		return nil, err
	}
	if SameCalendarDate(existing.StartDate, newStart) && SameCalendarDate(existing.EndDate, newEnd) {
		return nil, nil
	}
	return &RescheduleChange{
		PhaseID:       existing.ID,
		OriginalStart: existing.StartDate,
		OriginalEnd:   existing.EndDate,
		NewStart:      newStart,
		NewEnd:        newEnd,
	}, nil
}

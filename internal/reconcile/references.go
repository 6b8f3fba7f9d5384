package reconcile

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	types "github.com/planvane/planvane-backend/internal/domain"
	domainagg "github.com/planvane/planvane-backend/internal/domain/aggregates"
)

// ReferenceAnchor is the closed variant a submitted reference attaches to,
// decided once at the boundary instead of re-derived from field presence.
type ReferenceAnchor struct {
	Level        string
	PeriodDay    *int
	CalendarDate *time.Time
	PhaseID      *uuid.UUID
}

var knownReferenceTypes = map[string]bool{
	types.ReferenceTypeLink:      true,
	types.ReferenceTypeDocument:  true,
	types.ReferenceTypeNote:      true,
	types.ReferenceTypeComment:   true,
	types.ReferenceTypeFile:      true,
	types.ReferenceTypeMilestone: true,
}

// ValidateReference checks a submitted reference's content-type invariants:
// the type must be known, a title is required, and link/document entries
// need a non-empty url.
func ValidateReference(in domainagg.ReferenceInput) error {
	const op = "plan.references.validate"

	refType := strings.ToLower(strings.TrimSpace(in.Type))
	if !knownReferenceTypes[refType] {
		return domainagg.NewError(domainagg.CodeValidation, op,
			fmt.Sprintf("unknown reference type %q", in.Type), nil)
	}
	if strings.TrimSpace(in.Title) == "" {
		return domainagg.NewError(domainagg.CodeValidation, op,
			fmt.Sprintf("%s reference has no title", refType), nil)
	}
	if (refType == types.ReferenceTypeLink || refType == types.ReferenceTypeDocument) &&
		strings.TrimSpace(in.URL) == "" {
		return domainagg.NewError(domainagg.CodeValidation, op,
			fmt.Sprintf("%s reference %q requires a url", refType, in.Title), nil)
	}
	return nil
}

// ResolveReferenceAnchor decides the reference's attachment level. An
// explicit level wins; otherwise the level is inferred from which anchor
// fields are populated: calendar date or phase means day, a period day means
// period, and nothing means plan-wide.
func ResolveReferenceAnchor(in domainagg.ReferenceInput) (ReferenceAnchor, error) {
	const op = "plan.references.anchor"

	calendarDate, err := ParseDate(in.CalendarDate)
	if err != nil {
		return ReferenceAnchor{}, err
	}
	var phaseID *uuid.UUID
	if trimmed := strings.TrimSpace(in.PhaseID); trimmed != "" {
		id, parseErr := uuid.Parse(trimmed)
		if parseErr != nil {
			return ReferenceAnchor{}, domainagg.NewError(domainagg.CodeValidation, op,
				fmt.Sprintf("reference %q has malformed phase id %q", in.Title, in.PhaseID), nil)
		}
		phaseID = &id
	}

	level := strings.ToLower(strings.TrimSpace(in.Level))
	if level == "" {
		switch {
		case calendarDate != nil || phaseID != nil:
			level = types.ReferenceLevelDay
		case in.PeriodDay != nil:
			level = types.ReferenceLevelPeriod
		default:
			level = types.ReferenceLevelPlan
		}
	}

	switch level {
	case types.ReferenceLevelPlan:
		return ReferenceAnchor{Level: level}, nil
	case types.ReferenceLevelPeriod:
		if in.PeriodDay == nil {
			return ReferenceAnchor{}, domainagg.NewError(domainagg.CodeValidation, op,
				fmt.Sprintf("period reference %q requires a period day", in.Title), nil)
		}
		return ReferenceAnchor{Level: level, PeriodDay: in.PeriodDay}, nil
	case types.ReferenceLevelDay:
		return ReferenceAnchor{Level: level, CalendarDate: calendarDate, PhaseID: phaseID}, nil
	default:
		return ReferenceAnchor{}, domainagg.NewError(domainagg.CodeValidation, op,
			fmt.Sprintf("unknown reference level %q", in.Level), nil)
	}
}

package reconcile

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	types "github.com/planvane/planvane-backend/internal/domain"
	domainagg "github.com/planvane/planvane-backend/internal/domain/aggregates"
)

// MilestoneSpec is one derived milestone, not yet bound to a plan.
type MilestoneSpec struct {
	Name        string
	Description string
	Date        time.Time
	PhaseID     *uuid.UUID
	Color       string
}

// DeriveMilestones computes the plan's milestone set from a submission.
//
// Milestone-type references are the single source of truth: when at least one
// is present, the explicit milestones payload is ignored entirely. Duplicate
// reference-derived milestones by (phase, date) are dropped with a warning.
// When no milestone-type reference exists, the explicit list is used as-is
// (date and name required, phase id syntactically valid if present).
func DeriveMilestones(refs []domainagg.ReferenceInput, explicit []domainagg.MilestoneInput) ([]MilestoneSpec, []string, error) {
	const op = "plan.milestones.derive"

	if HasMilestoneReferences(refs) {
		var fromRefs []MilestoneSpec
		var warnings []string
		seen := map[string]bool{}
		for _, ref := range refs {
			if !strings.EqualFold(strings.TrimSpace(ref.Type), types.ReferenceTypeMilestone) {
				continue
			}
			raw := ref.CalendarDate
			if strings.TrimSpace(raw) == "" {
				raw = ref.Date
			}
			date, err := ParseDate(raw)
			if err != nil {
				return nil, nil, err
			}
			if date == nil {
				continue
			}

			var phaseID *uuid.UUID
			phaseKey := ""
			if trimmed := strings.TrimSpace(ref.PhaseID); trimmed != "" {
				if id, err := uuid.Parse(trimmed); err == nil {
					phaseID = &id
					phaseKey = id.String()
				}
			}

			key := phaseKey + "|" + FormatDate(date)
			if seen[key] {
				warnings = append(warnings,
					fmt.Sprintf("duplicate milestone for phase %q on %s, dropping", phaseKey, FormatDate(date)))
				continue
			}
			seen[key] = true
			fromRefs = append(fromRefs, MilestoneSpec{
				Name:        ref.Title,
				Description: ref.Description,
				Date:        *date,
				PhaseID:     phaseID,
				Color:       ref.MilestoneColor,
			})
		}
		return fromRefs, warnings, nil
	}

	var warnings []string
	var out []MilestoneSpec
	for i, in := range explicit {
		if strings.TrimSpace(in.Name) == "" {
			return nil, nil, domainagg.NewError(domainagg.CodeValidation, op,
				fmt.Sprintf("milestone at position %d has no name", i+1), nil)
		}
		date, err := ParseDate(in.Date)
		if err != nil {
			return nil, nil, err
		}
		if date == nil {
			return nil, nil, domainagg.NewError(domainagg.CodeValidation, op,
				fmt.Sprintf("milestone %q has no date", in.Name), nil)
		}
		var phaseID *uuid.UUID
		if trimmed := strings.TrimSpace(in.PhaseID); trimmed != "" {
			id, err := uuid.Parse(trimmed)
			if err != nil {
				return nil, nil, domainagg.NewError(domainagg.CodeValidation, op,
					fmt.Sprintf("milestone %q has malformed phase id %q", in.Name, in.PhaseID), nil)
			}
			phaseID = &id
		}
		out = append(out, MilestoneSpec{
			Name:        in.Name,
			Description: in.Description,
			Date:        *date,
			PhaseID:     phaseID,
			Color:       in.Color,
		})
	}
	return out, warnings, nil
}

// HasMilestoneReferences reports whether any submitted reference is of
// milestone type and carries a usable date.
func HasMilestoneReferences(refs []domainagg.ReferenceInput) bool {
	for _, ref := range refs {
		if !strings.EqualFold(strings.TrimSpace(ref.Type), types.ReferenceTypeMilestone) {
			continue
		}
		if strings.TrimSpace(ref.CalendarDate) != "" || strings.TrimSpace(ref.Date) != "" {
			return true
		}
	}
	return false
}

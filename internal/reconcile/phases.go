package reconcile

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	types "github.com/planvane/planvane-backend/internal/domain"
	domainagg "github.com/planvane/planvane-backend/internal/domain/aggregates"
)

// MatchedPhase pairs a persisted phase with the submitted state that matched
// it by id.
type MatchedPhase struct {
	Existing  *types.PlanPhase
	Submitted domainagg.PhaseInput
	Seq       int
}

// NewPhase is a submitted phase with no persisted counterpart.
type NewPhase struct {
	Submitted domainagg.PhaseInput
	Seq       int
}

// PhaseDiff classifies a submitted phase list against the persisted set.
// The three lists are disjoint.
type PhaseDiff struct {
	Matched  []MatchedPhase
	Inserts  []NewPhase
	Removals []*types.PlanPhase
}

// IsPlaceholderPhaseID reports whether a submitted id should be treated as
// absent. Clients send locally generated ids for rows that were never
// persisted; anything that is not a real UUID counts.
func IsPlaceholderPhaseID(raw string) bool {
	id := strings.TrimSpace(raw)
	if id == "" {
		return true
	}
	lower := strings.ToLower(id)
	for _, prefix := range []string{"new-", "tmp-", "temp-", "local-"} {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	if _, err := uuid.Parse(id); err != nil {
		return true
	}
	return false
}

// DiffPhases validates the submitted phase list and splits it into matched
// pairs, inserts and removals. Validation failures abort before any output
// is used.
func DiffPhases(existing []*types.PlanPhase, submitted []domainagg.PhaseInput) (PhaseDiff, error) {
	const op = "plan.phases.diff"

	byID := make(map[uuid.UUID]*types.PlanPhase, len(existing))
	for _, p := range existing {
		byID[p.ID] = p
	}

	var diff PhaseDiff
	seen := make(map[uuid.UUID]bool, len(submitted))
	for i, in := range submitted {
		if strings.TrimSpace(in.Name) == "" {
			return PhaseDiff{}, domainagg.NewError(domainagg.CodeValidation, op,
				fmt.Sprintf("phase at position %d has no name", i+1), nil)
		}
		if _, err := NormalizeDateString(in.StartDate); err != nil {
			return PhaseDiff{}, err
		}
		if _, err := NormalizeDateString(in.EndDate); err != nil {
			return PhaseDiff{}, err
		}

		seq := i + 1
		if in.Seq != nil {
			seq = *in.Seq
		}

		if IsPlaceholderPhaseID(in.ID) {
			diff.Inserts = append(diff.Inserts, NewPhase{Submitted: in, Seq: seq})
			continue
		}
		id := uuid.MustParse(strings.TrimSpace(in.ID))
		old, ok := byID[id]
		if !ok {
			// A well-formed UUID the server never issued: the row was neither
			// persisted nor placeholder-tagged, so treat it as new.
			diff.Inserts = append(diff.Inserts, NewPhase{Submitted: in, Seq: seq})
			continue
		}
		seen[id] = true
		diff.Matched = append(diff.Matched, MatchedPhase{Existing: old, Submitted: in, Seq: seq})
	}

	for _, p := range existing {
		if !seen[p.ID] {
			diff.Removals = append(diff.Removals, p)
		}
	}
	return diff, nil
}

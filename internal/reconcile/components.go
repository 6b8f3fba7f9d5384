package reconcile

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	types "github.com/planvane/planvane-backend/internal/domain"
	domainagg "github.com/planvane/planvane-backend/internal/domain/aggregates"
)

// ComponentHistoryEntry is one derived version-history row, not yet bound to
// a plan or timestamp.
type ComponentHistoryEntry struct {
	ComponentID uuid.UUID
	OldVersion  string
	NewVersion  string
}

// DeriveComponentHistory validates the version-increase invariant for every
// submitted component and returns the history rows to append.
//
// A component missing from the product is skipped with a warning (optional
// relation). A submitted target that is not strictly greater than the
// product's current version fails the whole derivation, unless the plan
// already recorded a lower target for that component and the new target
// exceeds it (continued in-flight increase).
func DeriveComponentHistory(
	previousTargets map[uuid.UUID]string,
	submitted []domainagg.ComponentInput,
	productComponents map[uuid.UUID]*types.ProductComponent,
) ([]ComponentHistoryEntry, []string, error) {
	const op = "plan.components.derive"

	var entries []ComponentHistoryEntry
	var warnings []string
	for _, in := range submitted {
		target := strings.TrimSpace(in.TargetVersion)
		if target == "" {
			return nil, nil, domainagg.NewError(domainagg.CodeValidation, op,
				fmt.Sprintf("component %s has no target version", in.ComponentID), nil)
		}

		pc, ok := productComponents[in.ComponentID]
		if !ok {
			warnings = append(warnings,
				fmt.Sprintf("component %s not found on product, skipping", in.ComponentID))
			continue
		}

		prev, hadPrev := previousTargets[in.ComponentID]
		comparison := CompareVersions(target, pc.CurrentVersion)
		continuedIncrease := hadPrev && CompareVersions(target, prev) > 0
		if comparison <= 0 && !continuedIncrease {
			return nil, nil, domainagg.NewError(domainagg.CodeInvariantViolation, op,
				fmt.Sprintf("component %q: target version %s must exceed current version %s",
					pc.Name, target, pc.CurrentVersion), nil)
		}

		if hadPrev && CompareVersions(target, prev) == 0 {
			continue
		}

		old := prev
		if !hadPrev {
			old = pc.CurrentVersion
		}
		if strings.TrimSpace(old) == "" {
			old = target
		}
		entries = append(entries, ComponentHistoryEntry{
			ComponentID: in.ComponentID,
			OldVersion:  old,
			NewVersion:  target,
		})
	}
	return entries, warnings, nil
}

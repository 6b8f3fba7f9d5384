package reconcile

import (
	"testing"

	"github.com/google/uuid"

	domainagg "github.com/planvane/planvane-backend/internal/domain/aggregates"
)

func TestDeriveMilestonesReferencesSuppressExplicitList(t *testing.T) {
	refs := []domainagg.ReferenceInput{
		{Type: "milestone", Title: "Go-Live", Date: "2024-03-01"},
		{Type: "link", Title: "runbook", URL: "https://example.com"},
	}
	explicit := []domainagg.MilestoneInput{
		{Name: "Manual entry", Date: "2024-04-01"},
	}

	specs, warnings, err := DeriveMilestones(refs, explicit)
	if err != nil {
		t.Fatalf("DeriveMilestones: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("warnings: %v", warnings)
	}
	if len(specs) != 1 {
		t.Fatalf("specs: want=1 got=%d", len(specs))
	}
	if specs[0].Name != "Go-Live" || FormatDate(&specs[0].Date) != "2024-03-01" {
		t.Fatalf("spec: %+v", specs[0])
	}
}

func TestHasMilestoneReferences(t *testing.T) {
	cases := []struct {
		name string
		refs []domainagg.ReferenceInput
		want bool
	}{
		{"dated milestone ref", []domainagg.ReferenceInput{{Type: "milestone", Date: "2024-03-01"}}, true},
		{"calendar-dated milestone ref", []domainagg.ReferenceInput{{Type: "Milestone", CalendarDate: "2024-03-01"}}, true},
		{"milestone ref without a date", []domainagg.ReferenceInput{{Type: "milestone", Title: "dateless"}}, false},
		{"only non-milestone refs", []domainagg.ReferenceInput{{Type: "link", Date: "2024-03-01"}}, false},
		{"no refs", nil, false},
	}
	for _, tc := range cases {
		if got := HasMilestoneReferences(tc.refs); got != tc.want {
			t.Fatalf("%s: want=%v got=%v", tc.name, tc.want, got)
		}
	}
}

func TestDeriveMilestonesDatelessReferenceDoesNotSuppress(t *testing.T) {
	refs := []domainagg.ReferenceInput{
		{Type: "milestone", Title: "dateless"},
	}
	explicit := []domainagg.MilestoneInput{
		{Name: "Manual entry", Date: "2024-04-01"},
	}

	specs, _, err := DeriveMilestones(refs, explicit)
	if err != nil {
		t.Fatalf("DeriveMilestones: %v", err)
	}
	if len(specs) != 1 || specs[0].Name != "Manual entry" {
		t.Fatalf("explicit list should win when no milestone ref carries a date: %+v", specs)
	}
}

func TestDeriveMilestonesDeduplicatesByPhaseAndDate(t *testing.T) {
	phaseID := uuid.New().String()
	refs := []domainagg.ReferenceInput{
		{Type: "milestone", Title: "first", Date: "2024-03-01", PhaseID: phaseID},
		{Type: "milestone", Title: "dup", Date: "2024-03-01", PhaseID: phaseID},
		{Type: "milestone", Title: "other day", Date: "2024-03-02", PhaseID: phaseID},
		{Type: "milestone", Title: "no phase", Date: "2024-03-01"},
	}

	specs, warnings, err := DeriveMilestones(refs, nil)
	if err != nil {
		t.Fatalf("DeriveMilestones: %v", err)
	}
	if len(specs) != 3 {
		t.Fatalf("specs: want=3 got=%d", len(specs))
	}
	if len(warnings) != 1 {
		t.Fatalf("warnings: want=1 got=%v", warnings)
	}
	if specs[0].Name != "first" {
		t.Fatalf("first duplicate wins: got=%q", specs[0].Name)
	}
}

func TestDeriveMilestonesExplicitListUsedWhenNoMilestoneRefs(t *testing.T) {
	refs := []domainagg.ReferenceInput{
		{Type: "note", Title: "just a note"},
	}
	explicit := []domainagg.MilestoneInput{
		{Name: "Cutover", Date: "2024-05-01", PhaseID: uuid.New().String()},
	}
	specs, _, err := DeriveMilestones(refs, explicit)
	if err != nil {
		t.Fatalf("DeriveMilestones: %v", err)
	}
	if len(specs) != 1 || specs[0].Name != "Cutover" || specs[0].PhaseID == nil {
		t.Fatalf("specs: %+v", specs)
	}
}

func TestDeriveMilestonesExplicitValidation(t *testing.T) {
	if _, _, err := DeriveMilestones(nil, []domainagg.MilestoneInput{{Date: "2024-05-01"}}); err == nil {
		t.Fatalf("missing name should fail")
	}
	if _, _, err := DeriveMilestones(nil, []domainagg.MilestoneInput{{Name: "x"}}); err == nil {
		t.Fatalf("missing date should fail")
	}
	if _, _, err := DeriveMilestones(nil, []domainagg.MilestoneInput{{Name: "x", Date: "2024-05-01", PhaseID: "nope"}}); err == nil {
		t.Fatalf("malformed phase id should fail")
	}
}

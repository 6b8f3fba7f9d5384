package reconcile

import (
	"testing"
	"time"

	"github.com/google/uuid"

	types "github.com/planvane/planvane-backend/internal/domain"
	domainagg "github.com/planvane/planvane-backend/internal/domain/aggregates"
)

func datePtr(t *testing.T, s string) *time.Time {
	t.Helper()
	d, err := ParseDate(s)
	if err != nil {
		t.Fatalf("ParseDate(%q): %v", s, err)
	}
	return d
}

func TestIsPlaceholderPhaseID(t *testing.T) {
	cases := map[string]bool{
		"":        true,
		"  ":      true,
		"new-3":   true,
		"tmp-abc": true,
		"17":      true,
		uuid.New().String():        false,
		" " + uuid.New().String(): false,
	}
	for in, want := range cases {
		if got := IsPlaceholderPhaseID(in); got != want {
			t.Fatalf("IsPlaceholderPhaseID(%q): want=%v got=%v", in, want, got)
		}
	}
}

func TestDiffPhasesClassifiesMatchedNewRemoved(t *testing.T) {
	kept := &types.PlanPhase{ID: uuid.New(), Name: "Build", StartDate: datePtr(t, "2024-01-01")}
	dropped := &types.PlanPhase{ID: uuid.New(), Name: "QA"}
	existing := []*types.PlanPhase{kept, dropped}

	submitted := []domainagg.PhaseInput{
		{ID: kept.ID.String(), Name: "Build", StartDate: "2024-01-05"},
		{ID: "new-1", Name: "Rollout", StartDate: "2024-02-01"},
	}

	diff, err := DiffPhases(existing, submitted)
	if err != nil {
		t.Fatalf("DiffPhases: %v", err)
	}
	if len(diff.Matched) != 1 || diff.Matched[0].Existing.ID != kept.ID {
		t.Fatalf("matched: %+v", diff.Matched)
	}
	if len(diff.Inserts) != 1 || diff.Inserts[0].Submitted.Name != "Rollout" {
		t.Fatalf("inserts: %+v", diff.Inserts)
	}
	if len(diff.Removals) != 1 || diff.Removals[0].ID != dropped.ID {
		t.Fatalf("removals: %+v", diff.Removals)
	}
}

func TestDiffPhasesSequenceDefaultsToPosition(t *testing.T) {
	seq := 7
	submitted := []domainagg.PhaseInput{
		{Name: "A"},
		{Name: "B", Seq: &seq},
		{Name: "C"},
	}
	diff, err := DiffPhases(nil, submitted)
	if err != nil {
		t.Fatalf("DiffPhases: %v", err)
	}
	if len(diff.Inserts) != 3 {
		t.Fatalf("inserts: want=3 got=%d", len(diff.Inserts))
	}
	if diff.Inserts[0].Seq != 1 || diff.Inserts[1].Seq != 7 || diff.Inserts[2].Seq != 3 {
		t.Fatalf("seqs: got=%d,%d,%d", diff.Inserts[0].Seq, diff.Inserts[1].Seq, diff.Inserts[2].Seq)
	}
}

func TestDiffPhasesRejectsMissingName(t *testing.T) {
	_, err := DiffPhases(nil, []domainagg.PhaseInput{{Name: "  "}})
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if !domainagg.IsCode(err, domainagg.CodeValidation) {
		t.Fatalf("want validation code, got %v", err)
	}
}

func TestDiffPhasesRejectsMalformedDate(t *testing.T) {
	_, err := DiffPhases(nil, []domainagg.PhaseInput{{Name: "A", EndDate: "bogus"}})
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if !domainagg.IsCode(err, domainagg.CodeValidation) {
		t.Fatalf("want validation code, got %v", err)
	}
}

func TestDetectRescheduleChange(t *testing.T) {
	phase := &types.PlanPhase{
		ID:        uuid.New(),
		Name:      "Build",
		StartDate: datePtr(t, "2024-01-01"),
		EndDate:   datePtr(t, "2024-01-31"),
	}

	// Same dates in a noisier format: no change.
	change, err := DetectRescheduleChange(phase, domainagg.PhaseInput{
		Name: "Build", StartDate: "2024-01-01T00:00:00Z", EndDate: "2024-01-31",
	})
	if err != nil {
		t.Fatalf("DetectRescheduleChange: %v", err)
	}
	if change != nil {
		t.Fatalf("unchanged dates produced a change: %+v", change)
	}

	// Moved start: one change carrying the full before/after picture.
	change, err = DetectRescheduleChange(phase, domainagg.PhaseInput{
		Name: "Build", StartDate: "2024-01-05", EndDate: "2024-01-31",
	})
	if err != nil {
		t.Fatalf("DetectRescheduleChange: %v", err)
	}
	if change == nil {
		t.Fatalf("expected a change")
	}
	if FormatDate(change.OriginalStart) != "2024-01-01" || FormatDate(change.NewStart) != "2024-01-05" {
		t.Fatalf("start: %q -> %q", FormatDate(change.OriginalStart), FormatDate(change.NewStart))
	}
	if FormatDate(change.OriginalEnd) != "2024-01-31" || FormatDate(change.NewEnd) != "2024-01-31" {
		t.Fatalf("end: %q -> %q", FormatDate(change.OriginalEnd), FormatDate(change.NewEnd))
	}

	// End date cleared: absence on one side counts as a difference.
	change, err = DetectRescheduleChange(phase, domainagg.PhaseInput{
		Name: "Build", StartDate: "2024-01-01",
	})
	if err != nil {
		t.Fatalf("DetectRescheduleChange: %v", err)
	}
	if change == nil || change.NewEnd != nil {
		t.Fatalf("cleared end date should register as change: %+v", change)
	}
}

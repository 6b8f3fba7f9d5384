package reconcile

import (
	"testing"

	"github.com/google/uuid"

	types "github.com/planvane/planvane-backend/internal/domain"
	domainagg "github.com/planvane/planvane-backend/internal/domain/aggregates"
)

func TestValidateReferenceLinkRequiresURL(t *testing.T) {
	err := ValidateReference(domainagg.ReferenceInput{Type: "link", Title: "docs"})
	if err == nil {
		t.Fatalf("link without url should fail")
	}
	if !domainagg.IsCode(err, domainagg.CodeValidation) {
		t.Fatalf("want validation code, got %v", err)
	}

	if err := ValidateReference(domainagg.ReferenceInput{Type: "note", Title: "n"}); err != nil {
		t.Fatalf("note without url should pass: %v", err)
	}
	if err := ValidateReference(domainagg.ReferenceInput{Type: "customtype", Title: "n"}); err == nil {
		t.Fatalf("unknown type should fail")
	}
}

func TestResolveReferenceAnchorInfersLevel(t *testing.T) {
	day := 3
	cases := []struct {
		name string
		in   domainagg.ReferenceInput
		want string
	}{
		{"plain", domainagg.ReferenceInput{Type: "note", Title: "n"}, types.ReferenceLevelPlan},
		{"period day set", domainagg.ReferenceInput{Type: "note", Title: "n", PeriodDay: &day}, types.ReferenceLevelPeriod},
		{"calendar date set", domainagg.ReferenceInput{Type: "note", Title: "n", CalendarDate: "2024-01-01"}, types.ReferenceLevelDay},
		{"phase set", domainagg.ReferenceInput{Type: "note", Title: "n", PhaseID: uuid.New().String()}, types.ReferenceLevelDay},
	}
	for _, tc := range cases {
		anchor, err := ResolveReferenceAnchor(tc.in)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if anchor.Level != tc.want {
			t.Fatalf("%s: want=%q got=%q", tc.name, tc.want, anchor.Level)
		}
	}
}

func TestResolveReferenceAnchorExplicitLevelWins(t *testing.T) {
	day := 2
	anchor, err := ResolveReferenceAnchor(domainagg.ReferenceInput{
		Type: "note", Title: "n", Level: "period", PeriodDay: &day, CalendarDate: "2024-01-01",
	})
	if err != nil {
		t.Fatalf("ResolveReferenceAnchor: %v", err)
	}
	if anchor.Level != types.ReferenceLevelPeriod || anchor.PeriodDay == nil {
		t.Fatalf("anchor: %+v", anchor)
	}
}

func TestResolveReferenceAnchorRejectsBadInput(t *testing.T) {
	if _, err := ResolveReferenceAnchor(domainagg.ReferenceInput{Type: "note", Title: "n", Level: "galaxy"}); err == nil {
		t.Fatalf("unknown level should fail")
	}
	if _, err := ResolveReferenceAnchor(domainagg.ReferenceInput{Type: "note", Title: "n", Level: "period"}); err == nil {
		t.Fatalf("period level without day should fail")
	}
	if _, err := ResolveReferenceAnchor(domainagg.ReferenceInput{Type: "note", Title: "n", PhaseID: "not-a-uuid"}); err == nil {
		t.Fatalf("malformed phase id should fail")
	}
}

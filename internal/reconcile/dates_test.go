package reconcile

import (
	"testing"
	"time"

	domainagg "github.com/planvane/planvane-backend/internal/domain/aggregates"
)

func TestNormalizeDateStringStripsTimeSuffix(t *testing.T) {
	got, err := NormalizeDateString("2024-01-05T00:00:00.000Z")
	if err != nil {
		t.Fatalf("NormalizeDateString: %v", err)
	}
	if got != "2024-01-05" {
		t.Fatalf("want=2024-01-05 got=%q", got)
	}

	got, err = NormalizeDateString("2024-01-05 13:45:00")
	if err != nil {
		t.Fatalf("NormalizeDateString with space: %v", err)
	}
	if got != "2024-01-05" {
		t.Fatalf("want=2024-01-05 got=%q", got)
	}
}

func TestNormalizeDateStringEmptyStaysEmpty(t *testing.T) {
	got, err := NormalizeDateString("  ")
	if err != nil {
		t.Fatalf("NormalizeDateString: %v", err)
	}
	if got != "" {
		t.Fatalf("want empty got=%q", got)
	}
}

func TestNormalizeDateStringRejectsNonISO(t *testing.T) {
	_, err := NormalizeDateString("05/01/2024")
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if !domainagg.IsCode(err, domainagg.CodeValidation) {
		t.Fatalf("want validation code, got %v", err)
	}
}

func TestSameCalendarDateIgnoresTimeAndZone(t *testing.T) {
	loc := time.FixedZone("plus2", 2*3600)
	a := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	b := time.Date(2024, 3, 1, 23, 59, 0, 0, loc)
	if !SameCalendarDate(&a, &b) {
		t.Fatalf("same calendar day should match")
	}
	c := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
	if SameCalendarDate(&a, &c) {
		t.Fatalf("different days should not match")
	}
	if !SameCalendarDate(nil, nil) {
		t.Fatalf("nil/nil should match")
	}
	if SameCalendarDate(&a, nil) {
		t.Fatalf("value/nil should not match")
	}
}

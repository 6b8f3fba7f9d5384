package aggregates

import (
	"errors"
	"testing"
	"time"

	domainagg "github.com/planvane/planvane-backend/internal/domain/aggregates"
)

func TestRequireTokenFreshNilTokenSkipsCheck(t *testing.T) {
	if err := RequireTokenFresh("plan", time.Now(), nil); err != nil {
		t.Fatalf("nil token should pass: %v", err)
	}
}

func TestRequireTokenFreshWithinTolerance(t *testing.T) {
	current := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for _, skew := range []time.Duration{0, 500 * time.Millisecond, TokenSkewTolerance, -TokenSkewTolerance} {
		expected := current.Add(skew)
		if err := RequireTokenFresh("plan", current, &expected); err != nil {
			t.Fatalf("skew %v should pass: %v", skew, err)
		}
	}
}

func TestRequireTokenFreshBeyondTolerance(t *testing.T) {
	current := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	expected := current.Add(-TokenSkewTolerance - time.Millisecond)
	err := RequireTokenFresh("plan", current, &expected)
	if err == nil {
		t.Fatalf("expected conflict")
	}
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("want ErrConflict, got %v", err)
	}
}

func TestRequireCASSuccess(t *testing.T) {
	if err := RequireCASSuccess(true, "unused"); err != nil {
		t.Fatalf("ok should pass: %v", err)
	}
	err := RequireCASSuccess(false, "plan changed during update")
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("want ErrConflict, got %v", err)
	}
	mapped := MapError("test.op", err)
	if !domainagg.IsCode(mapped, domainagg.CodeConflict) {
		t.Fatalf("mapped code: want=%s got=%s", domainagg.CodeConflict, domainagg.CodeOf(mapped))
	}
}

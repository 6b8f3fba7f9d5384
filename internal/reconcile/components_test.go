package reconcile

import (
	"testing"

	"github.com/google/uuid"

	types "github.com/planvane/planvane-backend/internal/domain"
	domainagg "github.com/planvane/planvane-backend/internal/domain/aggregates"
)

func TestDeriveComponentHistoryEqualVersionFails(t *testing.T) {
	compID := uuid.New()
	product := map[uuid.UUID]*types.ProductComponent{
		compID: {ID: compID, Name: "core", CurrentVersion: "1.0.0.0"},
	}
	_, _, err := DeriveComponentHistory(nil,
		[]domainagg.ComponentInput{{ComponentID: compID, TargetVersion: "1.0.0.0"}},
		product)
	if err == nil {
		t.Fatalf("expected invariant failure")
	}
	if !domainagg.IsCode(err, domainagg.CodeInvariantViolation) {
		t.Fatalf("want invariant code, got %v", err)
	}
}

func TestDeriveComponentHistoryContinuedIncrease(t *testing.T) {
	compID := uuid.New()
	product := map[uuid.UUID]*types.ProductComponent{
		compID: {ID: compID, Name: "core", CurrentVersion: "1.0.0.0"},
	}
	previous := map[uuid.UUID]string{compID: "1.2.0.0"}

	entries, warnings, err := DeriveComponentHistory(previous,
		[]domainagg.ComponentInput{{ComponentID: compID, TargetVersion: "1.3.0.0"}},
		product)
	if err != nil {
		t.Fatalf("DeriveComponentHistory: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("warnings: %v", warnings)
	}
	if len(entries) != 1 {
		t.Fatalf("entries: want=1 got=%d", len(entries))
	}
	if entries[0].OldVersion != "1.2.0.0" || entries[0].NewVersion != "1.3.0.0" {
		t.Fatalf("entry: %+v", entries[0])
	}
}

func TestDeriveComponentHistoryUnknownComponentSkipsWithWarning(t *testing.T) {
	known := uuid.New()
	product := map[uuid.UUID]*types.ProductComponent{
		known: {ID: known, Name: "core", CurrentVersion: "1.0"},
	}
	entries, warnings, err := DeriveComponentHistory(nil,
		[]domainagg.ComponentInput{
			{ComponentID: uuid.New(), TargetVersion: "2.0"},
			{ComponentID: known, TargetVersion: "1.1"},
		},
		product)
	if err != nil {
		t.Fatalf("DeriveComponentHistory: %v", err)
	}
	if len(warnings) != 1 {
		t.Fatalf("warnings: want=1 got=%v", warnings)
	}
	if len(entries) != 1 || entries[0].ComponentID != known {
		t.Fatalf("entries: %+v", entries)
	}
	// No prior target: old version falls back to the product's current.
	if entries[0].OldVersion != "1.0" {
		t.Fatalf("old version: want=1.0 got=%q", entries[0].OldVersion)
	}
}

func TestDeriveComponentHistoryUnchangedTargetEmitsNothing(t *testing.T) {
	compID := uuid.New()
	product := map[uuid.UUID]*types.ProductComponent{
		compID: {ID: compID, Name: "core", CurrentVersion: "1.0"},
	}
	previous := map[uuid.UUID]string{compID: "1.5"}

	entries, _, err := DeriveComponentHistory(previous,
		[]domainagg.ComponentInput{{ComponentID: compID, TargetVersion: "1.5"}},
		product)
	if err != nil {
		t.Fatalf("DeriveComponentHistory: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("unchanged target should emit no rows: %+v", entries)
	}
}

func TestDeriveComponentHistoryEmptyProductCurrentFallsBackToTarget(t *testing.T) {
	compID := uuid.New()
	product := map[uuid.UUID]*types.ProductComponent{
		compID: {ID: compID, Name: "core", CurrentVersion: ""},
	}
	entries, _, err := DeriveComponentHistory(nil,
		[]domainagg.ComponentInput{{ComponentID: compID, TargetVersion: "0.1"}},
		product)
	if err != nil {
		t.Fatalf("DeriveComponentHistory: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("entries: want=1 got=%d", len(entries))
	}
	// Never persist an empty old version.
	if entries[0].OldVersion != "0.1" {
		t.Fatalf("old version: want=0.1 got=%q", entries[0].OldVersion)
	}
}

package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"

	dataagg "github.com/planvane/planvane-backend/internal/data/aggregates"
	"github.com/planvane/planvane-backend/internal/data/repos/plans"
	"github.com/planvane/planvane-backend/internal/data/repos/products"
	repostest "github.com/planvane/planvane-backend/internal/data/repos/testutil"
	domainagg "github.com/planvane/planvane-backend/internal/domain/aggregates"
	"github.com/planvane/planvane-backend/internal/pkg/dbctx"
	"github.com/planvane/planvane-backend/internal/platform/apierr"
)

func newIntegrationPlanService(t *testing.T) (PlanService, dbctx.Context) {
	t.Helper()
	db := repostest.DB(t)
	tx := repostest.Tx(t, db)
	log := repostest.Logger(t)

	planRepo := plans.NewPlanRepo(tx, log)
	phaseRepo := plans.NewPhaseRepo(tx, log)
	reschedRepo := plans.NewRescheduleRepo(tx, log)
	historyRepo := plans.NewPlanComponentVersionRepo(tx, log)
	productRepo := products.NewProductRepo(tx, log)

	planAggregate := dataagg.NewPlanAggregate(dataagg.PlanAggregateDeps{
		Base: dataagg.BaseDeps{
			DB:     tx,
			Log:    log,
			Runner: dataagg.NewGormTxRunner(tx),
		},
		Plans:       planRepo,
		Phases:      phaseRepo,
		Reschedules: reschedRepo,
		History:     historyRepo,
		Products:    productRepo,
	})

	svc := NewPlanService(tx, log, planAggregate, planRepo, phaseRepo, reschedRepo, historyRepo, productRepo, nil)
	return svc, dbctx.Context{Ctx: context.Background(), Tx: tx}
}

func TestCreatePlanPersistsPlanAndPhases(t *testing.T) {
	svc, dbc := newIntegrationPlanService(t)

	seq0, seq1 := 0, 1
	plan, err := svc.CreatePlan(dbc.Ctx, CreatePlanInput{
		Name:      "FY27 Q1 Release",
		StartDate: "2027-01-04",
		EndDate:   "2027-03-26",
		Phases: []domainagg.PhaseInput{
			{Name: "Build", StartDate: "2027-01-04", EndDate: "2027-02-12", Seq: &seq0},
			{Name: "Stabilize", StartDate: "2027-02-15", EndDate: "2027-03-26", Seq: &seq1},
		},
	})
	if err != nil {
		t.Fatalf("CreatePlan: %v", err)
	}
	if plan.Status != "draft" {
		t.Fatalf("expected default draft status, got %q", plan.Status)
	}

	loaded, err := svc.GetPlan(dbc.Ctx, plan.ID)
	if err != nil {
		t.Fatalf("GetPlan: %v", err)
	}
	if len(loaded.Plan.Phases) != 2 {
		t.Fatalf("expected 2 phases, got %d", len(loaded.Plan.Phases))
	}
	if loaded.Plan.Phases[0].Name != "Build" {
		t.Fatalf("phases not ordered by seq: %q first", loaded.Plan.Phases[0].Name)
	}
}

func TestCreatePlanRejectsDuplicateName(t *testing.T) {
	svc, dbc := newIntegrationPlanService(t)

	if _, err := svc.CreatePlan(dbc.Ctx, CreatePlanInput{Name: "Summer Launch"}); err != nil {
		t.Fatalf("CreatePlan: %v", err)
	}

	// name_key comparison is case and whitespace insensitive
	_, err := svc.CreatePlan(dbc.Ctx, CreatePlanInput{Name: "  summer   LAUNCH "})
	var ae *apierr.Error
	if !errors.As(err, &ae) {
		t.Fatalf("expected apierr, got %v", err)
	}
	if ae.Status != http.StatusConflict || ae.Code != "plan_name_taken" {
		t.Fatalf("unexpected error: status=%d code=%s", ae.Status, ae.Code)
	}
}

func TestCreatePlanChecksProductExists(t *testing.T) {
	svc, dbc := newIntegrationPlanService(t)

	known := repostest.SeedProduct(t, dbc.Ctx, dbc.Tx, "Known Product")
	if _, err := svc.CreatePlan(dbc.Ctx, CreatePlanInput{Name: "Targeted", ProductID: &known.ID}); err != nil {
		t.Fatalf("CreatePlan with existing product: %v", err)
	}

	missing := uuid.New()
	_, err := svc.CreatePlan(dbc.Ctx, CreatePlanInput{Name: "Orphaned", ProductID: &missing})
	var ae *apierr.Error
	if !errors.As(err, &ae) {
		t.Fatalf("expected apierr, got %v", err)
	}
	if ae.Status != http.StatusBadRequest || ae.Code != "product_not_found" {
		t.Fatalf("unexpected error: status=%d code=%s", ae.Status, ae.Code)
	}
}

func TestCreatePlanRejectsBadDate(t *testing.T) {
	svc, dbc := newIntegrationPlanService(t)

	_, err := svc.CreatePlan(dbc.Ctx, CreatePlanInput{Name: "Bad Dates", StartDate: "01/04/2027"})
	var ae *apierr.Error
	if !errors.As(err, &ae) {
		t.Fatalf("expected apierr, got %v", err)
	}
	if ae.Status != http.StatusBadRequest || ae.Code != "invalid_start_date" {
		t.Fatalf("unexpected error: status=%d code=%s", ae.Status, ae.Code)
	}
}

package services

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/planvane/planvane-backend/internal/data/repos/plans"
	"github.com/planvane/planvane-backend/internal/data/repos/products"
	types "github.com/planvane/planvane-backend/internal/domain"
	domainagg "github.com/planvane/planvane-backend/internal/domain/aggregates"
	"github.com/planvane/planvane-backend/internal/pkg/dbctx"
	"github.com/planvane/planvane-backend/internal/pkg/logger"
	"github.com/planvane/planvane-backend/internal/platform/apierr"
)

type fakePlanAggregate struct {
	updateResult domainagg.UpdatePlanResult
	updateErr    error
	deleteResult domainagg.DeletePlanResult
	deleteErr    error
	annotated    *types.PhaseReschedule
	annotateErr  error

	lastUpdate domainagg.UpdatePlanInput
}

func (f *fakePlanAggregate) Contract() domainagg.Contract { return domainagg.PlanAggregateContract }

func (f *fakePlanAggregate) UpdatePlan(_ context.Context, in domainagg.UpdatePlanInput) (domainagg.UpdatePlanResult, error) {
	f.lastUpdate = in
	return f.updateResult, f.updateErr
}

func (f *fakePlanAggregate) UpdatePlanWithProduct(_ context.Context, in domainagg.UpdatePlanWithProductInput) (domainagg.UpdatePlanResult, error) {
	f.lastUpdate = in.UpdatePlanInput
	return f.updateResult, f.updateErr
}

func (f *fakePlanAggregate) DeletePlan(context.Context, domainagg.DeletePlanInput) (domainagg.DeletePlanResult, error) {
	return f.deleteResult, f.deleteErr
}

func (f *fakePlanAggregate) AnnotateReschedule(context.Context, domainagg.AnnotateRescheduleInput) (*types.PhaseReschedule, error) {
	return f.annotated, f.annotateErr
}

type fakePlanRepo struct {
	plans.PlanRepo
	byID map[uuid.UUID]*types.Plan
}

func (f *fakePlanRepo) GetByID(_ dbctx.Context, id uuid.UUID) (*types.Plan, error) {
	return f.byID[id], nil
}

func (f *fakePlanRepo) GetByIDBare(_ dbctx.Context, id uuid.UUID) (*types.Plan, error) {
	return f.byID[id], nil
}

type fakeRescheduleRepo struct {
	plans.RescheduleRepo
	byPlan map[uuid.UUID][]*types.PhaseReschedule
}

func (f *fakeRescheduleRepo) ListByPlan(_ dbctx.Context, planID uuid.UUID) ([]*types.PhaseReschedule, error) {
	return f.byPlan[planID], nil
}

type fakeProductRepo struct {
	products.ProductRepo
	byID map[uuid.UUID]*types.Product
}

func (f *fakeProductRepo) GetByID(_ dbctx.Context, id uuid.UUID) (*types.Product, error) {
	return f.byID[id], nil
}

type memoryPlanViewCache struct {
	views       map[uuid.UUID]*PlanView
	sets        int
	invalidated []uuid.UUID
}

func newMemoryPlanViewCache() *memoryPlanViewCache {
	return &memoryPlanViewCache{views: map[uuid.UUID]*PlanView{}}
}

func (c *memoryPlanViewCache) Get(_ context.Context, planID uuid.UUID) (*PlanView, bool) {
	v, ok := c.views[planID]
	return v, ok
}

func (c *memoryPlanViewCache) Set(_ context.Context, planID uuid.UUID, view *PlanView) {
	c.sets++
	c.views[planID] = view
}

func (c *memoryPlanViewCache) Invalidate(_ context.Context, planID uuid.UUID) {
	c.invalidated = append(c.invalidated, planID)
	delete(c.views, planID)
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return log
}

func newTestPlanService(t *testing.T, agg domainagg.PlanAggregate, planRepo plans.PlanRepo, reschedRepo plans.RescheduleRepo, productRepo products.ProductRepo, cache PlanViewCache) PlanService {
	t.Helper()
	return NewPlanService(nil, testLogger(t), agg, planRepo, nil, reschedRepo, nil, productRepo, cache)
}

func TestGetPlanCacheHitSkipsDatabase(t *testing.T) {
	planID := uuid.New()
	cache := newMemoryPlanViewCache()
	cached := &PlanView{Plan: &types.Plan{ID: planID, Name: "Cached"}}
	cache.views[planID] = cached

	// nil repos would panic if the cache were bypassed
	svc := newTestPlanService(t, &fakePlanAggregate{}, nil, nil, nil, cache)

	view, err := svc.GetPlan(context.Background(), planID)
	if err != nil {
		t.Fatalf("GetPlan: %v", err)
	}
	if view != cached {
		t.Fatalf("expected cached view back")
	}
}

func TestGetPlanAssemblesAndCachesView(t *testing.T) {
	planID := uuid.New()
	productID := uuid.New()
	plan := &types.Plan{ID: planID, Name: "Release 9", ProductID: &productID}
	product := &types.Product{ID: productID, Name: "Vane"}
	reschedules := []*types.PhaseReschedule{{ID: uuid.New(), PlanPhaseID: uuid.New()}}

	cache := newMemoryPlanViewCache()
	svc := newTestPlanService(t,
		&fakePlanAggregate{},
		&fakePlanRepo{byID: map[uuid.UUID]*types.Plan{planID: plan}},
		&fakeRescheduleRepo{byPlan: map[uuid.UUID][]*types.PhaseReschedule{planID: reschedules}},
		&fakeProductRepo{byID: map[uuid.UUID]*types.Product{productID: product}},
		cache,
	)

	view, err := svc.GetPlan(context.Background(), planID)
	if err != nil {
		t.Fatalf("GetPlan: %v", err)
	}
	if view.Plan != plan || view.Product != product {
		t.Fatalf("view not assembled from repos")
	}
	if len(view.Reschedules) != 1 {
		t.Fatalf("expected 1 reschedule, got %d", len(view.Reschedules))
	}
	if cache.sets != 1 {
		t.Fatalf("expected view to be cached once, got %d sets", cache.sets)
	}
}

func TestGetPlanNotFound(t *testing.T) {
	svc := newTestPlanService(t,
		&fakePlanAggregate{},
		&fakePlanRepo{byID: map[uuid.UUID]*types.Plan{}},
		&fakeRescheduleRepo{},
		&fakeProductRepo{},
		nil,
	)

	_, err := svc.GetPlan(context.Background(), uuid.New())
	var ae *apierr.Error
	if !errors.As(err, &ae) {
		t.Fatalf("expected apierr, got %v", err)
	}
	if ae.Status != http.StatusNotFound || ae.Code != "plan_not_found" {
		t.Fatalf("unexpected error: status=%d code=%s", ae.Status, ae.Code)
	}
}

func TestUpdatePlanMapsAggregateConflict(t *testing.T) {
	agg := &fakePlanAggregate{
		updateErr: domainagg.NewError(domainagg.CodeConflict, "Plans.Plan.Update", "plan was modified by another request", nil),
	}
	svc := newTestPlanService(t, agg, nil, nil, nil, nil)

	stale := time.Now().Add(-time.Hour)
	_, err := svc.UpdatePlan(context.Background(), domainagg.UpdatePlanInput{
		PlanID:            uuid.New(),
		ExpectedUpdatedAt: &stale,
	})
	var ae *apierr.Error
	if !errors.As(err, &ae) {
		t.Fatalf("expected apierr, got %v", err)
	}
	if ae.Status != http.StatusConflict || ae.Code != string(domainagg.CodeConflict) {
		t.Fatalf("unexpected mapping: status=%d code=%s", ae.Status, ae.Code)
	}
}

func TestUpdatePlanMapsInvariantViolation(t *testing.T) {
	agg := &fakePlanAggregate{
		updateErr: domainagg.NewError(domainagg.CodeInvariantViolation, "Plans.Plan.Update", "target version must increase", nil),
	}
	svc := newTestPlanService(t, agg, nil, nil, nil, nil)

	_, err := svc.UpdatePlan(context.Background(), domainagg.UpdatePlanInput{PlanID: uuid.New()})
	var ae *apierr.Error
	if !errors.As(err, &ae) {
		t.Fatalf("expected apierr, got %v", err)
	}
	if ae.Status != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", ae.Status)
	}
}

func TestUpdatePlanInvalidatesCache(t *testing.T) {
	planID := uuid.New()
	cache := newMemoryPlanViewCache()
	cache.views[planID] = &PlanView{Plan: &types.Plan{ID: planID}}

	agg := &fakePlanAggregate{
		updateResult: domainagg.UpdatePlanResult{
			Plan:               &types.Plan{ID: planID, Name: "After"},
			ReschedulesCreated: 2,
		},
	}
	svc := newTestPlanService(t, agg, nil, nil, nil, cache)

	view, err := svc.UpdatePlan(context.Background(), domainagg.UpdatePlanInput{PlanID: planID})
	if err != nil {
		t.Fatalf("UpdatePlan: %v", err)
	}
	if view.ReschedulesCreated != 2 {
		t.Fatalf("expected counters surfaced, got %+v", view)
	}
	if len(cache.invalidated) != 1 || cache.invalidated[0] != planID {
		t.Fatalf("expected cache invalidation for %s, got %v", planID, cache.invalidated)
	}
	if _, ok := cache.views[planID]; ok {
		t.Fatalf("stale view still cached")
	}
}

func TestDeletePlanInvalidatesCache(t *testing.T) {
	planID := uuid.New()
	cache := newMemoryPlanViewCache()
	cache.views[planID] = &PlanView{Plan: &types.Plan{ID: planID}}

	agg := &fakePlanAggregate{
		deleteResult: domainagg.DeletePlanResult{PhasesDeleted: 3, FeaturesCompleted: 1},
	}
	svc := newTestPlanService(t, agg, nil, nil, nil, cache)

	out, err := svc.DeletePlan(context.Background(), planID)
	if err != nil {
		t.Fatalf("DeletePlan: %v", err)
	}
	if out.PhasesDeleted != 3 || out.FeaturesCompleted != 1 {
		t.Fatalf("unexpected delete result: %+v", out)
	}
	if len(cache.invalidated) != 1 {
		t.Fatalf("expected cache invalidation, got %v", cache.invalidated)
	}
}

func TestAnnotateRescheduleMapsValidation(t *testing.T) {
	agg := &fakePlanAggregate{
		annotateErr: domainagg.NewError(domainagg.CodeValidation, "Plans.Reschedule.Annotate", "nothing to annotate", nil),
	}
	svc := newTestPlanService(t, agg, nil, nil, nil, nil)

	_, err := svc.AnnotateReschedule(context.Background(), domainagg.AnnotateRescheduleInput{RescheduleID: uuid.New()})
	var ae *apierr.Error
	if !errors.As(err, &ae) {
		t.Fatalf("expected apierr, got %v", err)
	}
	if ae.Status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", ae.Status)
	}
}

package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	dataagg "github.com/planvane/planvane-backend/internal/data/aggregates"
	"github.com/planvane/planvane-backend/internal/data/repos/plans"
	"github.com/planvane/planvane-backend/internal/data/repos/products"
	types "github.com/planvane/planvane-backend/internal/domain"
	domainagg "github.com/planvane/planvane-backend/internal/domain/aggregates"
	"github.com/planvane/planvane-backend/internal/observability"
	"github.com/planvane/planvane-backend/internal/pkg/dbctx"
	"github.com/planvane/planvane-backend/internal/pkg/logger"
	"github.com/planvane/planvane-backend/internal/platform/apierr"
	"github.com/planvane/planvane-backend/internal/reconcile"
)

// PlanView is the rendered read model for one plan: the plan with everything
// it owns eager-loaded, plus its reschedule audit trail and target product.
type PlanView struct {
	Plan        *types.Plan              `json:"plan"`
	Product     *types.Product           `json:"product,omitempty"`
	Reschedules []*types.PhaseReschedule `json:"reschedules"`
}

// UpdatedPlanView is what a write returns: the reloaded plan plus counters
// describing what the reconciliation derived.
type UpdatedPlanView struct {
	Plan               *types.Plan `json:"plan"`
	ReschedulesCreated int         `json:"reschedules_created"`
	HistoryRowsCreated int         `json:"history_rows_created"`
	MilestonesSynced   int         `json:"milestones_synced"`
	Warnings           []string    `json:"warnings,omitempty"`
}

type CreatePlanInput struct {
	Name      string
	Status    string
	StartDate string
	EndDate   string
	ProductID *uuid.UUID
	OwnerID   *uuid.UUID
	ITOwnerID *uuid.UUID
	Phases    []domainagg.PhaseInput
}

type PlanService interface {
	CreatePlan(ctx context.Context, in CreatePlanInput) (*types.Plan, error)
	GetPlan(ctx context.Context, id uuid.UUID) (*PlanView, error)
	ListPlans(ctx context.Context) ([]*types.Plan, error)
	UpdatePlan(ctx context.Context, in domainagg.UpdatePlanInput) (*UpdatedPlanView, error)
	UpdatePlanWithProduct(ctx context.Context, in domainagg.UpdatePlanWithProductInput) (*UpdatedPlanView, error)
	DeletePlan(ctx context.Context, id uuid.UUID) (domainagg.DeletePlanResult, error)
	ListPlanReschedules(ctx context.Context, planID uuid.UUID) ([]*types.PhaseReschedule, error)
	ListPhaseReschedules(ctx context.Context, phaseID uuid.UUID) ([]*types.PhaseReschedule, error)
	AnnotateReschedule(ctx context.Context, in domainagg.AnnotateRescheduleInput) (*types.PhaseReschedule, error)
	ListComponentHistory(ctx context.Context, planID uuid.UUID) ([]*types.PlanComponentVersion, error)
}

type planService struct {
	db          *gorm.DB
	log         *logger.Logger
	runner      dataagg.TxRunner
	aggregate   domainagg.PlanAggregate
	planRepo    plans.PlanRepo
	phaseRepo   plans.PhaseRepo
	reschedRepo plans.RescheduleRepo
	historyRepo plans.PlanComponentVersionRepo
	productRepo products.ProductRepo
	cache       PlanViewCache
}

func NewPlanService(
	db *gorm.DB,
	baseLog *logger.Logger,
	aggregate domainagg.PlanAggregate,
	planRepo plans.PlanRepo,
	phaseRepo plans.PhaseRepo,
	reschedRepo plans.RescheduleRepo,
	historyRepo plans.PlanComponentVersionRepo,
	productRepo products.ProductRepo,
	cache PlanViewCache,
) PlanService {
	return &planService{
		db:          db,
		log:         baseLog.With("service", "PlanService"),
		runner:      dataagg.NewGormTxRunner(db),
		aggregate:   aggregate,
		planRepo:    planRepo,
		phaseRepo:   phaseRepo,
		reschedRepo: reschedRepo,
		historyRepo: historyRepo,
		productRepo: productRepo,
		cache:       cache,
	}
}

func (s *planService) CreatePlan(ctx context.Context, in CreatePlanInput) (*types.Plan, error) {
	if in.Name == "" {
		return nil, apierr.New(http.StatusBadRequest, "missing_name", fmt.Errorf("plan name is required"))
	}
	status := in.Status
	if status == "" {
		status = "draft"
	}
	startDate, err := reconcile.ParseDate(in.StartDate)
	if err != nil {
		return nil, apierr.New(http.StatusBadRequest, "invalid_start_date", err)
	}
	endDate, err := reconcile.ParseDate(in.EndDate)
	if err != nil {
		return nil, apierr.New(http.StatusBadRequest, "invalid_end_date", err)
	}

	plan := &types.Plan{
		ID:        uuid.New(),
		Name:      in.Name,
		NameKey:   types.NormalizePlanName(in.Name),
		Status:    status,
		StartDate: startDate,
		EndDate:   endDate,
		ProductID: in.ProductID,
		OwnerID:   in.OwnerID,
		ITOwnerID: in.ITOwnerID,
	}

	err = s.runner.InTx(ctx, func(dbc dbctx.Context) error {
		existing, err := s.planRepo.GetByNameKey(dbc, plan.NameKey)
		if err != nil {
			return err
		}
		if existing != nil {
			return apierr.New(http.StatusConflict, "plan_name_taken", fmt.Errorf("a plan named %q already exists", in.Name))
		}
		if in.ProductID != nil {
			product, err := s.productRepo.GetByIDBare(dbc, *in.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return apierr.New(http.StatusBadRequest, "product_not_found", fmt.Errorf("product %s does not exist", *in.ProductID))
			}
		}
		if _, err := s.planRepo.Create(dbc, plan); err != nil {
			return err
		}
		phases, err := buildInitialPhases(plan.ID, in.Phases)
		if err != nil {
			return err
		}
		_, err = s.phaseRepo.Create(dbc, phases)
		return err
	})
	if err != nil {
		s.log.Error("CreatePlan failed", "error", err, "name", in.Name)
		return nil, apiError("create_plan_failed", dataagg.MapError("Plans.Plan.Create", err))
	}
	return plan, nil
}

func buildInitialPhases(planID uuid.UUID, inputs []domainagg.PhaseInput) ([]*types.PlanPhase, error) {
	phases := make([]*types.PlanPhase, 0, len(inputs))
	for i, in := range inputs {
		if in.Name == "" {
			return nil, apierr.New(http.StatusBadRequest, "missing_phase_name", fmt.Errorf("phase %d has no name", i))
		}
		start, err := reconcile.ParseDate(in.StartDate)
		if err != nil {
			return nil, apierr.New(http.StatusBadRequest, "invalid_phase_date", err)
		}
		end, err := reconcile.ParseDate(in.EndDate)
		if err != nil {
			return nil, apierr.New(http.StatusBadRequest, "invalid_phase_date", err)
		}
		seq := i
		if in.Seq != nil {
			seq = *in.Seq
		}
		phase := &types.PlanPhase{
			ID:        uuid.New(),
			PlanID:    planID,
			Name:      in.Name,
			StartDate: start,
			EndDate:   end,
			Color:     in.Color,
			Seq:       seq,
		}
		if len(in.MetricValues) > 0 {
			mv := datatypes.JSONMap{}
			for k, v := range in.MetricValues {
				mv[k] = v
			}
			phase.MetricValues = mv
		}
		phases = append(phases, phase)
	}
	return phases, nil
}

// GetPlan assembles the plan view, read-through cached. The reschedule trail
// and product load run in parallel once the plan row is in hand.
func (s *planService) GetPlan(ctx context.Context, id uuid.UUID) (*PlanView, error) {
	if s.cache != nil {
		if view, ok := s.cache.Get(ctx, id); ok {
			return view, nil
		}
	}

	plan, err := s.planRepo.GetByID(dbctx.Context{Ctx: ctx}, id)
	if err != nil {
		return nil, apiError("load_plan_failed", err)
	}
	if plan == nil {
		return nil, apierr.New(http.StatusNotFound, "plan_not_found", fmt.Errorf("plan %s not found", id))
	}

	view := &PlanView{Plan: plan}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		reschedules, err := s.reschedRepo.ListByPlan(dbctx.Context{Ctx: gctx}, id)
		if err != nil {
			return err
		}
		view.Reschedules = reschedules
		return nil
	})
	if plan.ProductID != nil {
		productID := *plan.ProductID
		g.Go(func() error {
			product, err := s.productRepo.GetByID(dbctx.Context{Ctx: gctx}, productID)
			if err != nil {
				return err
			}
			view.Product = product
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, apiError("load_plan_failed", err)
	}

	if s.cache != nil {
		s.cache.Set(ctx, id, view)
	}
	return view, nil
}

func (s *planService) ListPlans(ctx context.Context) ([]*types.Plan, error) {
	out, err := s.planRepo.List(dbctx.Context{Ctx: ctx})
	if err != nil {
		return nil, apiError("list_plans_failed", err)
	}
	return out, nil
}

func (s *planService) UpdatePlan(ctx context.Context, in domainagg.UpdatePlanInput) (*UpdatedPlanView, error) {
	out, err := s.aggregate.UpdatePlan(ctx, in)
	if err != nil {
		return nil, apiError("update_plan_failed", err)
	}
	s.afterPlanWrite(ctx, in.PlanID, out)
	return updatedView(out), nil
}

func (s *planService) UpdatePlanWithProduct(ctx context.Context, in domainagg.UpdatePlanWithProductInput) (*UpdatedPlanView, error) {
	out, err := s.aggregate.UpdatePlanWithProduct(ctx, in)
	if err != nil {
		return nil, apiError("update_plan_failed", err)
	}
	s.afterPlanWrite(ctx, in.PlanID, out)
	return updatedView(out), nil
}

func (s *planService) afterPlanWrite(ctx context.Context, planID uuid.UUID, out domainagg.UpdatePlanResult) {
	observability.Current().ObservePlanReconcile(
		out.ReschedulesCreated,
		out.HistoryRowsCreated,
		out.MilestonesSynced,
		len(out.Warnings),
	)
	for _, w := range out.Warnings {
		s.log.Warn("plan update warning", "plan_id", planID, "warning", w)
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, planID)
	}
}

func updatedView(out domainagg.UpdatePlanResult) *UpdatedPlanView {
	return &UpdatedPlanView{
		Plan:               out.Plan,
		ReschedulesCreated: out.ReschedulesCreated,
		HistoryRowsCreated: out.HistoryRowsCreated,
		MilestonesSynced:   out.MilestonesSynced,
		Warnings:           out.Warnings,
	}
}

func (s *planService) DeletePlan(ctx context.Context, id uuid.UUID) (domainagg.DeletePlanResult, error) {
	out, err := s.aggregate.DeletePlan(ctx, domainagg.DeletePlanInput{PlanID: id})
	if err != nil {
		return out, apiError("delete_plan_failed", err)
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, id)
	}
	return out, nil
}

func (s *planService) ListPlanReschedules(ctx context.Context, planID uuid.UUID) ([]*types.PhaseReschedule, error) {
	plan, err := s.planRepo.GetByIDBare(dbctx.Context{Ctx: ctx}, planID)
	if err != nil {
		return nil, apiError("list_reschedules_failed", err)
	}
	if plan == nil {
		return nil, apierr.New(http.StatusNotFound, "plan_not_found", fmt.Errorf("plan %s not found", planID))
	}
	out, err := s.reschedRepo.ListByPlan(dbctx.Context{Ctx: ctx}, planID)
	if err != nil {
		return nil, apiError("list_reschedules_failed", err)
	}
	return out, nil
}

func (s *planService) ListPhaseReschedules(ctx context.Context, phaseID uuid.UUID) ([]*types.PhaseReschedule, error) {
	out, err := s.reschedRepo.ListByPhase(dbctx.Context{Ctx: ctx}, phaseID)
	if err != nil {
		return nil, apiError("list_reschedules_failed", err)
	}
	return out, nil
}

func (s *planService) AnnotateReschedule(ctx context.Context, in domainagg.AnnotateRescheduleInput) (*types.PhaseReschedule, error) {
	out, err := s.aggregate.AnnotateReschedule(ctx, in)
	if err != nil {
		return nil, apiError("annotate_reschedule_failed", err)
	}
	return out, nil
}

func (s *planService) ListComponentHistory(ctx context.Context, planID uuid.UUID) ([]*types.PlanComponentVersion, error) {
	plan, err := s.planRepo.GetByIDBare(dbctx.Context{Ctx: ctx}, planID)
	if err != nil {
		return nil, apiError("list_component_history_failed", err)
	}
	if plan == nil {
		return nil, apierr.New(http.StatusNotFound, "plan_not_found", fmt.Errorf("plan %s not found", planID))
	}
	out, err := s.historyRepo.ListByPlan(dbctx.Context{Ctx: ctx}, planID)
	if err != nil {
		return nil, apiError("list_component_history_failed", err)
	}
	return out, nil
}

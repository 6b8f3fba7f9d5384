package aggregates

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/planvane/planvane-backend/internal/data/repos/catalog"
	"github.com/planvane/planvane-backend/internal/data/repos/plans"
	"github.com/planvane/planvane-backend/internal/data/repos/products"
	types "github.com/planvane/planvane-backend/internal/domain"
	domainagg "github.com/planvane/planvane-backend/internal/domain/aggregates"
	"github.com/planvane/planvane-backend/internal/pkg/dbctx"
	"github.com/planvane/planvane-backend/internal/reconcile"
)

type PlanAggregateDeps struct {
	Base BaseDeps

	Plans             plans.PlanRepo
	Phases            plans.PhaseRepo
	Reschedules       plans.RescheduleRepo
	RescheduleTypes   plans.RescheduleTypeRepo
	References        plans.ReferenceRepo
	Milestones        plans.MilestoneRepo
	Tasks             plans.TaskRepo
	RCAs              plans.RCARepo
	PlanComponents    plans.PlanComponentRepo
	History           plans.PlanComponentVersionRepo
	Products          products.ProductRepo
	ProductComponents products.ComponentRepo
	Features          catalog.FeatureRepo
	ReferenceLevels   catalog.ReferenceLevelRepo
}

type planAggregate struct {
	deps PlanAggregateDeps
}

func NewPlanAggregate(deps PlanAggregateDeps) domainagg.PlanAggregate {
	deps.Base = deps.Base.withDefaults()
	return &planAggregate{deps: deps}
}

func (a *planAggregate) Contract() domainagg.Contract {
	return domainagg.PlanAggregateContract
}

// planTxState carries intermediate results across the phases of one plan
// update transaction, so the two-entity variant can extend the same flow.
type planTxState struct {
	plan           *types.Plan
	productID      *uuid.UUID
	historyEntries []reconcile.ComponentHistoryEntry
	now            time.Time
}

func (a *planAggregate) UpdatePlan(ctx context.Context, in domainagg.UpdatePlanInput) (domainagg.UpdatePlanResult, error) {
	const op = "Plans.Plan.Update"
	var out domainagg.UpdatePlanResult
	if in.PlanID == uuid.Nil {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing plan_id", nil)
	}
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		_, err := a.applyPlanUpdate(dbc, op, in, &out)
		return err
	})
	return out, err
}

func (a *planAggregate) UpdatePlanWithProduct(ctx context.Context, in domainagg.UpdatePlanWithProductInput) (domainagg.UpdatePlanResult, error) {
	const op = "Plans.Plan.UpdateWithProduct"
	var out domainagg.UpdatePlanResult
	if in.PlanID == uuid.Nil {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing plan_id", nil)
	}
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		state, err := a.applyPlanUpdate(dbc, op, in.UpdatePlanInput, &out)
		if err != nil {
			return err
		}
		if !in.AdvanceProductVersions {
			return nil
		}
		if state.productID == nil {
			return domainagg.NewError(domainagg.CodeValidation, op, "plan has no product to advance", nil)
		}
		product, err := a.deps.Products.GetByIDBare(dbc, *state.productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domainagg.NewError(domainagg.CodeNotFound, op,
				fmt.Sprintf("product not found: %s", state.productID.String()), nil)
		}
		if err := RequireTokenFresh("product", product.UpdatedAt, in.ProductExpectedUpdatedAt); err != nil {
			return err
		}
		for _, entry := range state.historyEntries {
			pc, err := a.deps.ProductComponents.GetByID(dbc, entry.ComponentID)
			if err != nil {
				return err
			}
			if pc == nil {
				continue
			}
			if err := a.deps.ProductComponents.UpdateFields(dbc, pc.ID, map[string]any{
				"previous_version": pc.CurrentVersion,
				"current_version":  entry.NewVersion,
				"updated_at":       state.now,
			}); err != nil {
				return err
			}
		}
		ok, err := a.deps.Base.TokenGuard.UpdateByToken(dbc, "product", product.ID, product.UpdatedAt, map[string]any{
			"updated_at": state.now,
		})
		if err != nil {
			return err
		}
		return RequireCASSuccess(ok, "product changed during update")
	})
	return out, err
}

// applyPlanUpdate runs the full reconciliation inside an open transaction:
// token gate, phase diff, reschedule audit, component history, reference
// replacement, milestone sync, then the guarded scalar write.
func (a *planAggregate) applyPlanUpdate(dbc dbctx.Context, op string, in domainagg.UpdatePlanInput, out *domainagg.UpdatePlanResult) (*planTxState, error) {
	plan, err := a.deps.Plans.GetByIDBare(dbc, in.PlanID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, domainagg.NewError(domainagg.CodeNotFound, op,
			fmt.Sprintf("plan not found: %s", in.PlanID.String()), nil)
	}
	if err := RequireTokenFresh("plan", plan.UpdatedAt, in.ExpectedUpdatedAt); err != nil {
		return nil, err
	}

	state := &planTxState{plan: plan, now: time.Now().UTC()}
	state.productID = plan.ProductID
	if in.ProductID != nil {
		state.productID = in.ProductID
	}

	if err := a.reconcilePhases(dbc, in, out, state); err != nil {
		return nil, err
	}
	if in.Components != nil {
		if err := a.reconcileComponents(dbc, op, *in.Components, out, state); err != nil {
			return nil, err
		}
	}
	if err := a.reconcileReferencesAndMilestones(dbc, in, out, state); err != nil {
		return nil, err
	}

	updates, err := a.planScalarUpdates(in, state.now)
	if err != nil {
		return nil, err
	}
	ok, err := a.deps.Base.TokenGuard.UpdateByToken(dbc, "plan", plan.ID, plan.UpdatedAt, updates)
	if err != nil {
		return nil, err
	}
	if err := RequireCASSuccess(ok, "plan changed during update"); err != nil {
		return nil, err
	}

	fresh, err := a.deps.Plans.GetByID(dbc, plan.ID)
	if err != nil {
		return nil, err
	}
	out.Plan = fresh
	return state, nil
}

func (a *planAggregate) reconcilePhases(dbc dbctx.Context, in domainagg.UpdatePlanInput, out *domainagg.UpdatePlanResult, state *planTxState) error {
	existing, err := a.deps.Phases.ListByPlan(dbc, state.plan.ID)
	if err != nil {
		return err
	}
	diff, err := reconcile.DiffPhases(existing, in.Phases)
	if err != nil {
		return err
	}

	// Reschedule changes are detected against the pre-mutation rows.
	var changes []*reconcile.RescheduleChange
	for _, m := range diff.Matched {
		change, err := reconcile.DetectRescheduleChange(m.Existing, m.Submitted)
		if err != nil {
			return err
		}
		if change != nil {
			changes = append(changes, change)
		}
	}

	if len(diff.Removals) > 0 {
		removalIDs := make([]uuid.UUID, 0, len(diff.Removals))
		for _, p := range diff.Removals {
			removalIDs = append(removalIDs, p.ID)
		}
		if err := a.deps.Reschedules.DeleteByPhaseIDs(dbc, removalIDs); err != nil {
			return err
		}
		if err := a.deps.Phases.DeleteByIDs(dbc, removalIDs); err != nil {
			return err
		}
	}

	for _, m := range diff.Matched {
		start, err := reconcile.ParseDate(m.Submitted.StartDate)
		if err != nil {
			return err
		}
		end, err := reconcile.ParseDate(m.Submitted.EndDate)
		if err != nil {
			return err
		}
		if err := a.deps.Phases.UpdateFields(dbc, m.Existing.ID, map[string]interface{}{
			"name":          m.Submitted.Name,
			"start_date":    start,
			"end_date":      end,
			"color":         m.Submitted.Color,
			"metric_values": metricValuesJSON(m.Submitted.MetricValues),
			"seq":           m.Seq,
			"updated_at":    state.now,
		}); err != nil {
			return err
		}
	}

	if len(diff.Inserts) > 0 {
		rows := make([]*types.PlanPhase, 0, len(diff.Inserts))
		for _, ins := range diff.Inserts {
			start, err := reconcile.ParseDate(ins.Submitted.StartDate)
			if err != nil {
				return err
			}
			end, err := reconcile.ParseDate(ins.Submitted.EndDate)
			if err != nil {
				return err
			}
			rows = append(rows, &types.PlanPhase{
				ID:           uuid.New(),
				PlanID:       state.plan.ID,
				Name:         ins.Submitted.Name,
				StartDate:    start,
				EndDate:      end,
				Color:        ins.Submitted.Color,
				MetricValues: metricValuesJSON(ins.Submitted.MetricValues),
				Seq:          ins.Seq,
				CreatedAt:    state.now,
				UpdatedAt:    state.now,
			})
		}
		if _, err := a.deps.Phases.Create(dbc, rows); err != nil {
			return err
		}
	}

	if len(changes) == 0 {
		return nil
	}
	typeID, err := a.resolveRescheduleType(dbc, in.RescheduleTypeID)
	if err != nil {
		return err
	}
	ownerID := in.RescheduleOwnerID
	if ownerID == nil {
		ownerID = state.plan.ITOwnerID
	}
	rows := make([]*types.PhaseReschedule, 0, len(changes))
	for _, c := range changes {
		rows = append(rows, &types.PhaseReschedule{
			ID:                uuid.New(),
			PlanPhaseID:       c.PhaseID,
			RescheduleTypeID:  typeID,
			OwnerID:           ownerID,
			OriginalStartDate: c.OriginalStart,
			OriginalEndDate:   c.OriginalEnd,
			NewStartDate:      c.NewStart,
			NewEndDate:        c.NewEnd,
			CreatedAt:         state.now,
		})
	}
	if _, err := a.deps.Reschedules.Create(dbc, rows); err != nil {
		return err
	}
	out.ReschedulesCreated = len(rows)
	return nil
}

// resolveRescheduleType uses the caller's explicit type when given, otherwise
// lazily creates the "Default" row. The get-or-create is idempotent inside a
// transaction; a concurrent insert surfaces as a unique violation and the
// loser re-reads.
func (a *planAggregate) resolveRescheduleType(dbc dbctx.Context, explicit *uuid.UUID) (uuid.UUID, error) {
	if explicit != nil && *explicit != uuid.Nil {
		return *explicit, nil
	}
	rt, err := a.deps.RescheduleTypes.GetByName(dbc, types.DefaultRescheduleTypeName)
	if err != nil {
		return uuid.Nil, err
	}
	if rt != nil {
		return rt.ID, nil
	}
	created, err := a.deps.RescheduleTypes.Create(dbc, &types.RescheduleType{
		ID:   uuid.New(),
		Name: types.DefaultRescheduleTypeName,
	})
	if err != nil {
		rt, getErr := a.deps.RescheduleTypes.GetByName(dbc, types.DefaultRescheduleTypeName)
		if getErr == nil && rt != nil {
			return rt.ID, nil
		}
		return uuid.Nil, err
	}
	return created.ID, nil
}

func (a *planAggregate) reconcileComponents(dbc dbctx.Context, op string, submitted []domainagg.ComponentInput, out *domainagg.UpdatePlanResult, state *planTxState) error {
	if state.productID == nil {
		if len(submitted) == 0 {
			return nil
		}
		return domainagg.NewError(domainagg.CodeValidation, op,
			"component target versions require the plan to have a product", nil)
	}

	previous, err := a.deps.PlanComponents.ListByPlan(dbc, state.plan.ID)
	if err != nil {
		return err
	}
	prevTargets := make(map[uuid.UUID]string, len(previous))
	for _, pc := range previous {
		prevTargets[pc.ComponentID] = pc.TargetVersion
	}

	productComponents, err := a.deps.ProductComponents.ListByProduct(dbc, *state.productID)
	if err != nil {
		return err
	}
	byID := make(map[uuid.UUID]*types.ProductComponent, len(productComponents))
	for _, pc := range productComponents {
		byID[pc.ID] = pc
	}

	entries, warnings, err := reconcile.DeriveComponentHistory(prevTargets, submitted, byID)
	if err != nil {
		return err
	}
	out.Warnings = append(out.Warnings, warnings...)
	state.historyEntries = entries

	if err := a.deps.PlanComponents.DeleteByPlan(dbc, state.plan.ID); err != nil {
		return err
	}
	rows := make([]*types.PlanComponent, 0, len(submitted))
	for _, in := range submitted {
		if _, ok := byID[in.ComponentID]; !ok {
			continue
		}
		rows = append(rows, &types.PlanComponent{
			ID:            uuid.New(),
			PlanID:        state.plan.ID,
			ComponentID:   in.ComponentID,
			TargetVersion: strings.TrimSpace(in.TargetVersion),
			CreatedAt:     state.now,
		})
	}
	if _, err := a.deps.PlanComponents.Create(dbc, rows); err != nil {
		return err
	}

	if len(entries) > 0 {
		ledger := make([]*types.PlanComponentVersion, 0, len(entries))
		for _, e := range entries {
			ledger = append(ledger, &types.PlanComponentVersion{
				ID:          uuid.New(),
				PlanID:      state.plan.ID,
				ProductID:   *state.productID,
				ComponentID: e.ComponentID,
				OldVersion:  e.OldVersion,
				NewVersion:  e.NewVersion,
				CreatedAt:   state.now,
			})
		}
		if _, err := a.deps.History.Create(dbc, ledger); err != nil {
			return err
		}
		out.HistoryRowsCreated = len(ledger)
	}
	return nil
}

func (a *planAggregate) reconcileReferencesAndMilestones(dbc dbctx.Context, in domainagg.UpdatePlanInput, out *domainagg.UpdatePlanResult, state *planTxState) error {
	var refInputs []domainagg.ReferenceInput
	switch {
	case in.References != nil:
		refInputs = *in.References
	case in.Milestones != nil:
		// References were not submitted: the persisted milestone-type
		// references still outrank the explicit milestone payload.
		persisted, err := a.deps.References.ListByPlan(dbc, state.plan.ID)
		if err != nil {
			return err
		}
		refInputs = referenceInputsFromRows(persisted)
	default:
		return nil
	}

	if in.References != nil {
		rows := make([]*types.PlanReference, 0, len(refInputs))
		for _, ref := range refInputs {
			if err := reconcile.ValidateReference(ref); err != nil {
				return err
			}
			anchor, err := reconcile.ResolveReferenceAnchor(ref)
			if err != nil {
				return err
			}
			level, err := a.deps.ReferenceLevels.GetOrCreateByName(dbc, anchor.Level)
			if err != nil {
				return err
			}
			legacyDate, err := reconcile.ParseDate(ref.Date)
			if err != nil {
				return err
			}
			rows = append(rows, &types.PlanReference{
				ID:             uuid.New(),
				PlanID:         state.plan.ID,
				Type:           strings.ToLower(strings.TrimSpace(ref.Type)),
				Title:          ref.Title,
				URL:            ref.URL,
				Description:    ref.Description,
				LevelID:        level.ID,
				PeriodDay:      anchor.PeriodDay,
				CalendarDate:   anchor.CalendarDate,
				PhaseID:        anchor.PhaseID,
				Date:           legacyDate,
				MilestoneColor: ref.MilestoneColor,
				CreatedAt:      state.now,
			})
		}
		if err := a.deps.References.DeleteByPlan(dbc, state.plan.ID); err != nil {
			return err
		}
		if _, err := a.deps.References.Create(dbc, rows); err != nil {
			return err
		}
	}

	var explicit []domainagg.MilestoneInput
	if in.Milestones != nil {
		explicit = *in.Milestones
	}
	specs, warnings, err := reconcile.DeriveMilestones(refInputs, explicit)
	if err != nil {
		return err
	}
	out.Warnings = append(out.Warnings, warnings...)

	if err := a.deps.Milestones.DeleteByPlan(dbc, state.plan.ID); err != nil {
		return err
	}
	rows := make([]*types.PlanMilestone, 0, len(specs))
	for _, spec := range specs {
		rows = append(rows, &types.PlanMilestone{
			ID:          uuid.New(),
			PlanID:      state.plan.ID,
			Name:        spec.Name,
			Description: spec.Description,
			Date:        spec.Date,
			PhaseID:     spec.PhaseID,
			Color:       spec.Color,
			CreatedAt:   state.now,
		})
	}
	if _, err := a.deps.Milestones.Create(dbc, rows); err != nil {
		return err
	}
	out.MilestonesSynced = len(rows)
	return nil
}

func (a *planAggregate) planScalarUpdates(in domainagg.UpdatePlanInput, now time.Time) (map[string]any, error) {
	updates := map[string]any{"updated_at": now}
	if name := strings.TrimSpace(in.Name); name != "" {
		updates["name"] = name
		updates["name_key"] = types.NormalizePlanName(name)
	}
	if status := strings.TrimSpace(in.Status); status != "" {
		updates["status"] = status
	}
	start, err := reconcile.ParseDate(in.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := reconcile.ParseDate(in.EndDate)
	if err != nil {
		return nil, err
	}
	updates["start_date"] = start
	updates["end_date"] = end
	if in.ProductID != nil {
		updates["product_id"] = *in.ProductID
	}
	if in.OwnerID != nil {
		updates["owner_id"] = *in.OwnerID
	}
	if in.ITOwnerID != nil {
		updates["it_owner_id"] = *in.ITOwnerID
	}
	if in.FeatureIDs != nil {
		updates["feature_ids"] = uuidListJSON(in.FeatureIDs)
	}
	if in.CalendarIDs != nil {
		updates["calendar_ids"] = uuidListJSON(in.CalendarIDs)
	}
	if in.IndicatorIDs != nil {
		updates["indicator_ids"] = uuidListJSON(in.IndicatorIDs)
	}
	if in.TeamIDs != nil {
		updates["team_ids"] = uuidListJSON(in.TeamIDs)
	}
	return updates, nil
}

func (a *planAggregate) DeletePlan(ctx context.Context, in domainagg.DeletePlanInput) (domainagg.DeletePlanResult, error) {
	const op = "Plans.Plan.Delete"
	var out domainagg.DeletePlanResult
	if in.PlanID == uuid.Nil {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing plan_id", nil)
	}
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		plan, err := a.deps.Plans.GetByIDBare(dbc, in.PlanID)
		if err != nil {
			return err
		}
		if plan == nil {
			return domainagg.NewError(domainagg.CodeNotFound, op,
				fmt.Sprintf("plan not found: %s", in.PlanID.String()), nil)
		}

		featureIDs := parseUUIDList(plan.FeatureIDs)
		completed, err := a.deps.Features.SetStatusByIDs(dbc, featureIDs, types.FeatureStatusCompleted)
		if err != nil {
			return err
		}
		out.FeaturesCompleted = int(completed)

		phases, err := a.deps.Phases.ListByPlan(dbc, plan.ID)
		if err != nil {
			return err
		}
		if len(phases) > 0 {
			phaseIDs := make([]uuid.UUID, 0, len(phases))
			for _, p := range phases {
				phaseIDs = append(phaseIDs, p.ID)
			}
			if err := a.deps.Reschedules.DeleteByPhaseIDs(dbc, phaseIDs); err != nil {
				return err
			}
			if err := a.deps.Phases.DeleteByIDs(dbc, phaseIDs); err != nil {
				return err
			}
		}
		out.PhasesDeleted = len(phases)

		if err := a.deps.Milestones.DeleteByPlan(dbc, plan.ID); err != nil {
			return err
		}
		if err := a.deps.References.DeleteByPlan(dbc, plan.ID); err != nil {
			return err
		}
		if err := a.deps.Tasks.DeleteByPlan(dbc, plan.ID); err != nil {
			return err
		}
		if err := a.deps.RCAs.DeleteByPlan(dbc, plan.ID); err != nil {
			return err
		}
		if err := a.deps.PlanComponents.DeleteByPlan(dbc, plan.ID); err != nil {
			return err
		}
		if err := a.deps.History.DeleteByPlan(dbc, plan.ID); err != nil {
			return err
		}
		return a.deps.Plans.Delete(dbc, plan.ID)
	})
	return out, err
}

func (a *planAggregate) AnnotateReschedule(ctx context.Context, in domainagg.AnnotateRescheduleInput) (*types.PhaseReschedule, error) {
	const op = "Plans.Reschedule.Annotate"
	if in.RescheduleID == uuid.Nil {
		return nil, domainagg.NewError(domainagg.CodeValidation, op, "missing reschedule_id", nil)
	}
	if in.TypeID == nil && in.OwnerID == nil {
		return nil, domainagg.NewError(domainagg.CodeValidation, op, "nothing to annotate", nil)
	}
	var out *types.PhaseReschedule
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		rs, err := a.deps.Reschedules.GetByID(dbc, in.RescheduleID)
		if err != nil {
			return err
		}
		if rs == nil {
			return domainagg.NewError(domainagg.CodeNotFound, op,
				fmt.Sprintf("reschedule not found: %s", in.RescheduleID.String()), nil)
		}
		updates := map[string]interface{}{}
		if in.TypeID != nil {
			updates["reschedule_type_id"] = *in.TypeID
		}
		if in.OwnerID != nil {
			updates["owner_id"] = *in.OwnerID
		}
		if err := a.deps.Reschedules.UpdateFields(dbc, rs.ID, updates); err != nil {
			return err
		}
		out, err = a.deps.Reschedules.GetByID(dbc, rs.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func metricValuesJSON(values map[string]string) datatypes.JSONMap {
	if len(values) == 0 {
		return nil
	}
	out := make(datatypes.JSONMap, len(values))
	for k, v := range values {
		out[k] = v
	}
	return out
}

func uuidListJSON(ids []uuid.UUID) datatypes.JSON {
	raw, _ := json.Marshal(ids)
	return datatypes.JSON(raw)
}

func parseUUIDList(raw datatypes.JSON) []uuid.UUID {
	if len(raw) == 0 {
		return nil
	}
	var ids []uuid.UUID
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil
	}
	return ids
}

// referenceInputsFromRows converts persisted rows back into submission shape
// so milestone derivation can run off stored references.
func referenceInputsFromRows(rows []*types.PlanReference) []domainagg.ReferenceInput {
	out := make([]domainagg.ReferenceInput, 0, len(rows))
	for _, r := range rows {
		in := domainagg.ReferenceInput{
			Type:           r.Type,
			Title:          r.Title,
			URL:            r.URL,
			Description:    r.Description,
			PeriodDay:      r.PeriodDay,
			CalendarDate:   reconcile.FormatDate(r.CalendarDate),
			Date:           reconcile.FormatDate(r.Date),
			MilestoneColor: r.MilestoneColor,
		}
		if r.PhaseID != nil {
			in.PhaseID = r.PhaseID.String()
		}
		out = append(out, in)
	}
	return out
}

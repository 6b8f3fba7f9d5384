package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainagg "github.com/planvane/planvane-backend/internal/domain/aggregates"
	"github.com/planvane/planvane-backend/internal/http/response"
	"github.com/planvane/planvane-backend/internal/pkg/logger"
	"github.com/planvane/planvane-backend/internal/services"
)

type PlanHandler struct {
	log         *logger.Logger
	planService services.PlanService
}

func NewPlanHandler(log *logger.Logger, planService services.PlanService) *PlanHandler {
	return &PlanHandler{
		log:         log.With("handler", "PlanHandler"),
		planService: planService,
	}
}

type phasePayload struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	StartDate    string            `json:"start_date"`
	EndDate      string            `json:"end_date"`
	Color        string            `json:"color"`
	MetricValues map[string]string `json:"metric_values"`
	Seq          *int              `json:"seq"`
}

type componentPayload struct {
	ComponentID   uuid.UUID `json:"component_id"`
	TargetVersion string    `json:"target_version"`
}

type referencePayload struct {
	Type           string `json:"type"`
	Title          string `json:"title"`
	URL            string `json:"url"`
	Description    string `json:"description"`
	Level          string `json:"level"`
	PeriodDay      *int   `json:"period_day"`
	CalendarDate   string `json:"calendar_date"`
	PhaseID        string `json:"phase_id"`
	Date           string `json:"date"`
	MilestoneColor string `json:"milestone_color"`
}

type milestonePayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Date        string `json:"date"`
	PhaseID     string `json:"phase_id"`
	Color       string `json:"color"`
}

type createPlanRequest struct {
	Name      string         `json:"name"`
	Status    string         `json:"status"`
	StartDate string         `json:"start_date"`
	EndDate   string         `json:"end_date"`
	ProductID *uuid.UUID     `json:"product_id"`
	OwnerID   *uuid.UUID     `json:"owner_id"`
	ITOwnerID *uuid.UUID     `json:"it_owner_id"`
	Phases    []phasePayload `json:"phases"`
}

// updatePlanRequest is the full desired state of the plan. Pointer slices
// distinguish "collection omitted" from "collection emptied".
type updatePlanRequest struct {
	ExpectedUpdatedAt *time.Time `json:"expected_updated_at"`

	Name      string     `json:"name"`
	Status    string     `json:"status"`
	StartDate string     `json:"start_date"`
	EndDate   string     `json:"end_date"`
	ProductID *uuid.UUID `json:"product_id"`
	OwnerID   *uuid.UUID `json:"owner_id"`
	ITOwnerID *uuid.UUID `json:"it_owner_id"`

	FeatureIDs   []uuid.UUID `json:"feature_ids"`
	CalendarIDs  []uuid.UUID `json:"calendar_ids"`
	IndicatorIDs []uuid.UUID `json:"indicator_ids"`
	TeamIDs      []uuid.UUID `json:"team_ids"`

	Phases     []phasePayload      `json:"phases"`
	Components *[]componentPayload `json:"components"`
	References *[]referencePayload `json:"references"`
	Milestones *[]milestonePayload `json:"milestones"`

	RescheduleTypeID  *uuid.UUID `json:"reschedule_type_id"`
	RescheduleOwnerID *uuid.UUID `json:"reschedule_owner_id"`
}

type updatePlanWithProductRequest struct {
	updatePlanRequest

	ProductExpectedUpdatedAt *time.Time `json:"product_expected_updated_at"`
	AdvanceProductVersions   bool       `json:"advance_product_versions"`
}

func phaseInputs(payloads []phasePayload) []domainagg.PhaseInput {
	out := make([]domainagg.PhaseInput, 0, len(payloads))
	for _, p := range payloads {
		out = append(out, domainagg.PhaseInput{
			ID:           p.ID,
			Name:         p.Name,
			StartDate:    p.StartDate,
			EndDate:      p.EndDate,
			Color:        p.Color,
			MetricValues: p.MetricValues,
			Seq:          p.Seq,
		})
	}
	return out
}

func (req *updatePlanRequest) toInput(planID uuid.UUID) domainagg.UpdatePlanInput {
	in := domainagg.UpdatePlanInput{
		PlanID:            planID,
		ExpectedUpdatedAt: req.ExpectedUpdatedAt,
		Name:              req.Name,
		Status:            req.Status,
		StartDate:         req.StartDate,
		EndDate:           req.EndDate,
		ProductID:         req.ProductID,
		OwnerID:           req.OwnerID,
		ITOwnerID:         req.ITOwnerID,
		FeatureIDs:        req.FeatureIDs,
		CalendarIDs:       req.CalendarIDs,
		IndicatorIDs:      req.IndicatorIDs,
		TeamIDs:           req.TeamIDs,
		Phases:            phaseInputs(req.Phases),
		RescheduleTypeID:  req.RescheduleTypeID,
		RescheduleOwnerID: req.RescheduleOwnerID,
	}
	if req.Components != nil {
		components := make([]domainagg.ComponentInput, 0, len(*req.Components))
		for _, p := range *req.Components {
			components = append(components, domainagg.ComponentInput{
				ComponentID:   p.ComponentID,
				TargetVersion: p.TargetVersion,
			})
		}
		in.Components = &components
	}
	if req.References != nil {
		refs := make([]domainagg.ReferenceInput, 0, len(*req.References))
		for _, p := range *req.References {
			refs = append(refs, domainagg.ReferenceInput{
				Type:           p.Type,
				Title:          p.Title,
				URL:            p.URL,
				Description:    p.Description,
				Level:          p.Level,
				PeriodDay:      p.PeriodDay,
				CalendarDate:   p.CalendarDate,
				PhaseID:        p.PhaseID,
				Date:           p.Date,
				MilestoneColor: p.MilestoneColor,
			})
		}
		in.References = &refs
	}
	if req.Milestones != nil {
		milestones := make([]domainagg.MilestoneInput, 0, len(*req.Milestones))
		for _, p := range *req.Milestones {
			milestones = append(milestones, domainagg.MilestoneInput{
				Name:        p.Name,
				Description: p.Description,
				Date:        p.Date,
				PhaseID:     p.PhaseID,
				Color:       p.Color,
			})
		}
		in.Milestones = &milestones
	}
	return in
}

func (h *PlanHandler) CreatePlan(c *gin.Context) {
	var req createPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_payload", err)
		return
	}
	plan, err := h.planService.CreatePlan(c.Request.Context(), services.CreatePlanInput{
		Name:      req.Name,
		Status:    req.Status,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		ProductID: req.ProductID,
		OwnerID:   req.OwnerID,
		ITOwnerID: req.ITOwnerID,
		Phases:    phaseInputs(req.Phases),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"plan": plan})
}

func (h *PlanHandler) GetPlan(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	view, err := h.planService.GetPlan(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, view)
}

func (h *PlanHandler) ListPlans(c *gin.Context) {
	plansList, err := h.planService.ListPlans(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"plans": plansList})
}

func (h *PlanHandler) UpdatePlan(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req updatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_payload", err)
		return
	}
	view, err := h.planService.UpdatePlan(c.Request.Context(), req.toInput(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, view)
}

func (h *PlanHandler) UpdatePlanWithProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req updatePlanWithProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_payload", err)
		return
	}
	in := domainagg.UpdatePlanWithProductInput{
		UpdatePlanInput:          req.toInput(id),
		ProductExpectedUpdatedAt: req.ProductExpectedUpdatedAt,
		AdvanceProductVersions:   req.AdvanceProductVersions,
	}
	view, err := h.planService.UpdatePlanWithProduct(c.Request.Context(), in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, view)
}

func (h *PlanHandler) DeletePlan(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	out, err := h.planService.DeletePlan(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"phases_deleted":     out.PhasesDeleted,
		"features_completed": out.FeaturesCompleted,
	})
}

func (h *PlanHandler) ListPlanReschedules(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	reschedules, err := h.planService.ListPlanReschedules(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"reschedules": reschedules})
}

func (h *PlanHandler) ListPhaseReschedules(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	reschedules, err := h.planService.ListPhaseReschedules(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"reschedules": reschedules})
}

type annotateReschedulePayload struct {
	TypeID  *uuid.UUID `json:"type_id"`
	OwnerID *uuid.UUID `json:"owner_id"`
}

func (h *PlanHandler) AnnotateReschedule(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req annotateReschedulePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_payload", err)
		return
	}
	reschedule, err := h.planService.AnnotateReschedule(c.Request.Context(), domainagg.AnnotateRescheduleInput{
		RescheduleID: id,
		TypeID:       req.TypeID,
		OwnerID:      req.OwnerID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"reschedule": reschedule})
}

func (h *PlanHandler) ListComponentHistory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	history, err := h.planService.ListComponentHistory(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"history": history})
}

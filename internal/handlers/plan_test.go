package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/planvane/planvane-backend/internal/domain"
	domainagg "github.com/planvane/planvane-backend/internal/domain/aggregates"
	"github.com/planvane/planvane-backend/internal/http/response"
	"github.com/planvane/planvane-backend/internal/pkg/logger"
	"github.com/planvane/planvane-backend/internal/platform/apierr"
	"github.com/planvane/planvane-backend/internal/services"
)

type stubPlanService struct {
	services.PlanService

	updateView *services.UpdatedPlanView
	updateErr  error
	lastInput  domainagg.UpdatePlanInput
}

func (s *stubPlanService) UpdatePlan(_ context.Context, in domainagg.UpdatePlanInput) (*services.UpdatedPlanView, error) {
	s.lastInput = in
	return s.updateView, s.updateErr
}

func newPlanTestRouter(t *testing.T, svc services.PlanService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	h := NewPlanHandler(log, svc)
	r := gin.New()
	r.PUT("/api/plans/:id", h.UpdatePlan)
	return r
}

func TestUpdatePlanRejectsMalformedID(t *testing.T) {
	r := newPlanTestRouter(t, &stubPlanService{})

	req := httptest.NewRequest(http.MethodPut, "/api/plans/not-a-uuid", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	var envelope response.ErrorEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal error envelope: %v", err)
	}
	if envelope.Error.Code != "invalid_id" {
		t.Fatalf("expected invalid_id, got %q", envelope.Error.Code)
	}
}

func TestUpdatePlanOmittedCollectionsStayNil(t *testing.T) {
	stub := &stubPlanService{
		updateView: &services.UpdatedPlanView{Plan: &types.Plan{ID: uuid.New()}},
	}
	r := newPlanTestRouter(t, stub)

	body := `{"name":"Renamed","phases":[{"name":"Build","start_date":"2027-01-04","end_date":"2027-02-12"}]}`
	req := httptest.NewRequest(http.MethodPut, "/api/plans/"+uuid.NewString(), bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
	}
	in := stub.lastInput
	if in.Components != nil || in.References != nil || in.Milestones != nil {
		t.Fatalf("omitted collections should map to nil pointers: %+v", in)
	}
	if len(in.Phases) != 1 || in.Phases[0].Name != "Build" {
		t.Fatalf("phases not mapped: %+v", in.Phases)
	}
}

func TestUpdatePlanEmptyComponentListIsSubmitted(t *testing.T) {
	stub := &stubPlanService{
		updateView: &services.UpdatedPlanView{Plan: &types.Plan{ID: uuid.New()}},
	}
	r := newPlanTestRouter(t, stub)

	body := `{"components":[]}`
	req := httptest.NewRequest(http.MethodPut, "/api/plans/"+uuid.NewString(), bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if stub.lastInput.Components == nil {
		t.Fatalf("explicit empty list should be submitted, not omitted")
	}
	if len(*stub.lastInput.Components) != 0 {
		t.Fatalf("expected empty component list, got %+v", *stub.lastInput.Components)
	}
}

func TestUpdatePlanSurfacesServiceError(t *testing.T) {
	stub := &stubPlanService{
		updateErr: apierr.New(http.StatusConflict, "conflict", nil),
	}
	r := newPlanTestRouter(t, stub)

	req := httptest.NewRequest(http.MethodPut, "/api/plans/"+uuid.NewString(), bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
	var envelope response.ErrorEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal error envelope: %v", err)
	}
	if envelope.Error.Code != "conflict" {
		t.Fatalf("expected conflict code, got %q", envelope.Error.Code)
	}
}

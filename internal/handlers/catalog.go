package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/planvane/planvane-backend/internal/http/response"
	"github.com/planvane/planvane-backend/internal/pkg/logger"
	"github.com/planvane/planvane-backend/internal/services"
)

type CatalogHandler struct {
	log            *logger.Logger
	catalogService services.CatalogService
}

func NewCatalogHandler(log *logger.Logger, catalogService services.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		log:            log.With("handler", "CatalogHandler"),
		catalogService: catalogService,
	}
}

func (h *CatalogHandler) ListOwners(c *gin.Context) {
	owners, err := h.catalogService.ListOwners(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"owners": owners})
}

type createOwnerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (h *CatalogHandler) CreateOwner(c *gin.Context) {
	var req createOwnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_payload", err)
		return
	}
	owner, err := h.catalogService.CreateOwner(c.Request.Context(), req.Name, req.Email, req.Role)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"owner": owner})
}

func (h *CatalogHandler) ListTeams(c *gin.Context) {
	teams, err := h.catalogService.ListTeams(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"teams": teams})
}

type createNamedRequest struct {
	Name string `json:"name"`
}

func (h *CatalogHandler) CreateTeam(c *gin.Context) {
	var req createNamedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_payload", err)
		return
	}
	team, err := h.catalogService.CreateTeam(c.Request.Context(), req.Name)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"team": team})
}

func (h *CatalogHandler) ListFeatures(c *gin.Context) {
	features, err := h.catalogService.ListFeatures(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"features": features})
}

type createFeatureRequest struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

func (h *CatalogHandler) CreateFeature(c *gin.Context) {
	var req createFeatureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_payload", err)
		return
	}
	feature, err := h.catalogService.CreateFeature(c.Request.Context(), req.Name, req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"feature": feature})
}

func (h *CatalogHandler) ListRescheduleTypes(c *gin.Context) {
	rescheduleTypes, err := h.catalogService.ListRescheduleTypes(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"reschedule_types": rescheduleTypes})
}

func (h *CatalogHandler) CreateRescheduleType(c *gin.Context) {
	var req createNamedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_payload", err)
		return
	}
	rt, err := h.catalogService.CreateRescheduleType(c.Request.Context(), req.Name)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"reschedule_type": rt})
}

func (h *CatalogHandler) ListReferenceLevels(c *gin.Context) {
	levels, err := h.catalogService.ListReferenceLevels(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"reference_levels": levels})
}

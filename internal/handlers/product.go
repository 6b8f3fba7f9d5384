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

type ProductHandler struct {
	log            *logger.Logger
	productService services.ProductService
}

func NewProductHandler(log *logger.Logger, productService services.ProductService) *ProductHandler {
	return &ProductHandler{
		log:            log.With("handler", "ProductHandler"),
		productService: productService,
	}
}

type createComponentPayload struct {
	Name           string `json:"name"`
	CurrentVersion string `json:"current_version"`
}

type createProductRequest struct {
	Name        string                   `json:"name"`
	Description string                   `json:"description"`
	OwnerID     *uuid.UUID               `json:"owner_id"`
	Components  []createComponentPayload `json:"components"`
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_payload", err)
		return
	}
	in := services.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     req.OwnerID,
	}
	for _, comp := range req.Components {
		in.Components = append(in.Components, services.CreateComponentInput{
			Name:           comp.Name,
			CurrentVersion: comp.CurrentVersion,
		})
	}
	product, err := h.productService.CreateProduct(c.Request.Context(), in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"product": product})
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	product, err := h.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"product": product})
}

func (h *ProductHandler) ListProducts(c *gin.Context) {
	productsList, err := h.productService.ListProducts(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"products": productsList})
}

func (h *ProductHandler) ListComponents(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	components, err := h.productService.ListComponents(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"components": components})
}

func (h *ProductHandler) AddComponent(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req createComponentPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_payload", err)
		return
	}
	component, err := h.productService.AddComponent(c.Request.Context(), id, services.CreateComponentInput{
		Name:           req.Name,
		CurrentVersion: req.CurrentVersion,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"component": component})
}

type advanceComponentRequest struct {
	NewVersion        string     `json:"new_version"`
	ExpectedUpdatedAt *time.Time `json:"expected_updated_at"`
}

func (h *ProductHandler) AdvanceComponentVersion(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	componentID, ok := parseIDParam(c, "componentId")
	if !ok {
		return
	}
	var req advanceComponentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_payload", err)
		return
	}
	component, err := h.productService.AdvanceComponentVersion(c.Request.Context(), domainagg.AdvanceComponentVersionInput{
		ProductID:         productID,
		ComponentID:       componentID,
		NewVersion:        req.NewVersion,
		ExpectedUpdatedAt: req.ExpectedUpdatedAt,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"component": component})
}

package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/planvane/planvane-backend/internal/handlers"
	"github.com/planvane/planvane-backend/internal/http/middleware"
	"github.com/planvane/planvane-backend/internal/observability"
	"github.com/planvane/planvane-backend/internal/pkg/logger"
)

type RouterConfig struct {
	Log     *logger.Logger
	Metrics *observability.Metrics

	PlanHandler    *handlers.PlanHandler
	ProductHandler *handlers.ProductHandler
	CatalogHandler *handlers.CatalogHandler
	HealthHandler  *handlers.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware("planvane"))
	r.Use(middleware.AttachTraceContext())
	r.Use(middleware.CORS())
	r.Use(middleware.Metrics(cfg.Metrics))
	r.Use(middleware.RequestLogger(cfg.Log))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	// Prometheus exposition, gated by METRICS_ENABLED.
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapF(cfg.Metrics.WriteHTTP))
	}

	api := r.Group("/api")
	{
		if cfg.PlanHandler != nil {
			api.POST("/plans", cfg.PlanHandler.CreatePlan)
			api.GET("/plans", cfg.PlanHandler.ListPlans)
			api.GET("/plans/:id", cfg.PlanHandler.GetPlan)
			api.PUT("/plans/:id", cfg.PlanHandler.UpdatePlan)
			api.PUT("/plans/:id/with-product", cfg.PlanHandler.UpdatePlanWithProduct)
			api.DELETE("/plans/:id", cfg.PlanHandler.DeletePlan)
			api.GET("/plans/:id/reschedules", cfg.PlanHandler.ListPlanReschedules)
			api.GET("/plans/:id/component-history", cfg.PlanHandler.ListComponentHistory)
			api.GET("/phases/:id/reschedules", cfg.PlanHandler.ListPhaseReschedules)
			api.PATCH("/reschedules/:id", cfg.PlanHandler.AnnotateReschedule)
		}

		if cfg.ProductHandler != nil {
			api.POST("/products", cfg.ProductHandler.CreateProduct)
			api.GET("/products", cfg.ProductHandler.ListProducts)
			api.GET("/products/:id", cfg.ProductHandler.GetProduct)
			api.GET("/products/:id/components", cfg.ProductHandler.ListComponents)
			api.POST("/products/:id/components", cfg.ProductHandler.AddComponent)
			api.POST("/products/:id/components/:componentId/advance", cfg.ProductHandler.AdvanceComponentVersion)
		}

		if cfg.CatalogHandler != nil {
			api.GET("/owners", cfg.CatalogHandler.ListOwners)
			api.POST("/owners", cfg.CatalogHandler.CreateOwner)
			api.GET("/teams", cfg.CatalogHandler.ListTeams)
			api.POST("/teams", cfg.CatalogHandler.CreateTeam)
			api.GET("/features", cfg.CatalogHandler.ListFeatures)
			api.POST("/features", cfg.CatalogHandler.CreateFeature)
			api.GET("/reschedule-types", cfg.CatalogHandler.ListRescheduleTypes)
			api.POST("/reschedule-types", cfg.CatalogHandler.CreateRescheduleType)
			api.GET("/reference-levels", cfg.CatalogHandler.ListReferenceLevels)
		}
	}

	return r
}

package app

import (
	"github.com/planvane/planvane-backend/internal/handlers"
	"github.com/planvane/planvane-backend/internal/pkg/logger"
)

type Handlers struct {
	Plan    *handlers.PlanHandler
	Product *handlers.ProductHandler
	Catalog *handlers.CatalogHandler
	Health  *handlers.HealthHandler
}

func wireHandlers(log *logger.Logger, svcs Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Plan:    handlers.NewPlanHandler(log, svcs.Plan),
		Product: handlers.NewProductHandler(log, svcs.Product),
		Catalog: handlers.NewCatalogHandler(log, svcs.Catalog),
		Health:  handlers.NewHealthHandler(),
	}
}

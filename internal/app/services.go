package app

import (
	"gorm.io/gorm"

	dataagg "github.com/planvane/planvane-backend/internal/data/aggregates"
	domainagg "github.com/planvane/planvane-backend/internal/domain/aggregates"
	"github.com/planvane/planvane-backend/internal/observability"
	"github.com/planvane/planvane-backend/internal/pkg/logger"
	"github.com/planvane/planvane-backend/internal/services"
)

type Services struct {
	PlanAggregate    domainagg.PlanAggregate
	ProductAggregate domainagg.ProductAggregate

	Plan    services.PlanService
	Product services.ProductService
	Catalog services.CatalogService

	PlanViewCache services.PlanViewCache
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, repos Repos, clients Clients, metrics *observability.Metrics) Services {
	log.Info("Wiring services...")

	base := dataagg.BaseDeps{
		DB:    db,
		Log:   log,
		Hooks: dataagg.NewObservabilityHooks(metrics),
	}

	planAggregate := dataagg.NewPlanAggregate(dataagg.PlanAggregateDeps{
		Base: base,

		Plans:             repos.Plans,
		Phases:            repos.Phases,
		Reschedules:       repos.Reschedules,
		RescheduleTypes:   repos.RescheduleTypes,
		References:        repos.References,
		Milestones:        repos.Milestones,
		Tasks:             repos.Tasks,
		RCAs:              repos.RCAs,
		PlanComponents:    repos.PlanComponents,
		History:           repos.History,
		Products:          repos.Products,
		ProductComponents: repos.ProductComponents,
		Features:          repos.Features,
		ReferenceLevels:   repos.ReferenceLevels,
	})

	productAggregate := dataagg.NewProductAggregate(dataagg.ProductAggregateDeps{
		Base:       base,
		Products:   repos.Products,
		Components: repos.ProductComponents,
	})

	var cache services.PlanViewCache
	if clients.Redis != nil {
		cache = services.NewRedisPlanViewCache(log, clients.Redis, cfg.PlanViewCacheTTL)
	}

	planService := services.NewPlanService(
		db, log,
		planAggregate,
		repos.Plans,
		repos.Phases,
		repos.Reschedules,
		repos.History,
		repos.Products,
		cache,
	)
	productService := services.NewProductService(db, log, productAggregate, repos.Products, repos.ProductComponents)
	catalogService := services.NewCatalogService(db, log, repos.Owners, repos.Teams, repos.Features, repos.ReferenceLevels, repos.RescheduleTypes)

	return Services{
		PlanAggregate:    planAggregate,
		ProductAggregate: productAggregate,
		Plan:             planService,
		Product:          productService,
		Catalog:          catalogService,
		PlanViewCache:    cache,
	}
}

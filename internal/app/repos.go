package app

import (
	"gorm.io/gorm"

	"github.com/planvane/planvane-backend/internal/data/repos/catalog"
	"github.com/planvane/planvane-backend/internal/data/repos/plans"
	"github.com/planvane/planvane-backend/internal/data/repos/products"
	"github.com/planvane/planvane-backend/internal/pkg/logger"
)

type Repos struct {
	Plans           plans.PlanRepo
	Phases          plans.PhaseRepo
	Tasks           plans.TaskRepo
	RCAs            plans.RCARepo
	Reschedules     plans.RescheduleRepo
	RescheduleTypes plans.RescheduleTypeRepo
	References      plans.ReferenceRepo
	Milestones      plans.MilestoneRepo
	PlanComponents  plans.PlanComponentRepo
	History         plans.PlanComponentVersionRepo

	Products          products.ProductRepo
	ProductComponents products.ComponentRepo

	Owners          catalog.OwnerRepo
	Teams           catalog.TeamRepo
	Features        catalog.FeatureRepo
	ReferenceLevels catalog.ReferenceLevelRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Plans:           plans.NewPlanRepo(db, log),
		Phases:          plans.NewPhaseRepo(db, log),
		Tasks:           plans.NewTaskRepo(db, log),
		RCAs:            plans.NewRCARepo(db, log),
		Reschedules:     plans.NewRescheduleRepo(db, log),
		RescheduleTypes: plans.NewRescheduleTypeRepo(db, log),
		References:      plans.NewReferenceRepo(db, log),
		Milestones:      plans.NewMilestoneRepo(db, log),
		PlanComponents:  plans.NewPlanComponentRepo(db, log),
		History:         plans.NewPlanComponentVersionRepo(db, log),

		Products:          products.NewProductRepo(db, log),
		ProductComponents: products.NewComponentRepo(db, log),

		Owners:          catalog.NewOwnerRepo(db, log),
		Teams:           catalog.NewTeamRepo(db, log),
		Features:        catalog.NewFeatureRepo(db, log),
		ReferenceLevels: catalog.NewReferenceLevelRepo(db, log),
	}
}

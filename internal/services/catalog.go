package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dataagg "github.com/planvane/planvane-backend/internal/data/aggregates"
	"github.com/planvane/planvane-backend/internal/data/repos/catalog"
	"github.com/planvane/planvane-backend/internal/data/repos/plans"
	types "github.com/planvane/planvane-backend/internal/domain"
	"github.com/planvane/planvane-backend/internal/pkg/dbctx"
	"github.com/planvane/planvane-backend/internal/pkg/logger"
	"github.com/planvane/planvane-backend/internal/platform/apierr"
)

// CatalogService serves the small lookup tables referenced by plans:
// owners, teams, features, reschedule types and reference levels.
type CatalogService interface {
	ListOwners(ctx context.Context) ([]*types.Owner, error)
	CreateOwner(ctx context.Context, name, email, role string) (*types.Owner, error)
	ListTeams(ctx context.Context) ([]*types.Team, error)
	CreateTeam(ctx context.Context, name string) (*types.Team, error)
	ListFeatures(ctx context.Context) ([]*types.Feature, error)
	CreateFeature(ctx context.Context, name, status string) (*types.Feature, error)
	ListRescheduleTypes(ctx context.Context) ([]*types.RescheduleType, error)
	CreateRescheduleType(ctx context.Context, name string) (*types.RescheduleType, error)
	ListReferenceLevels(ctx context.Context) ([]*types.ReferenceLevel, error)
}

type catalogService struct {
	db           *gorm.DB
	log          *logger.Logger
	ownerRepo    catalog.OwnerRepo
	teamRepo     catalog.TeamRepo
	featureRepo  catalog.FeatureRepo
	levelRepo    catalog.ReferenceLevelRepo
	reschedTypes plans.RescheduleTypeRepo
}

func NewCatalogService(
	db *gorm.DB,
	baseLog *logger.Logger,
	ownerRepo catalog.OwnerRepo,
	teamRepo catalog.TeamRepo,
	featureRepo catalog.FeatureRepo,
	levelRepo catalog.ReferenceLevelRepo,
	reschedTypes plans.RescheduleTypeRepo,
) CatalogService {
	return &catalogService{
		db:           db,
		log:          baseLog.With("service", "CatalogService"),
		ownerRepo:    ownerRepo,
		teamRepo:     teamRepo,
		featureRepo:  featureRepo,
		levelRepo:    levelRepo,
		reschedTypes: reschedTypes,
	}
}

func (s *catalogService) ListOwners(ctx context.Context) ([]*types.Owner, error) {
	out, err := s.ownerRepo.List(dbctx.Context{Ctx: ctx})
	if err != nil {
		return nil, apiError("list_owners_failed", err)
	}
	return out, nil
}

func (s *catalogService) CreateOwner(ctx context.Context, name, email, role string) (*types.Owner, error) {
	if name == "" {
		return nil, apierr.New(http.StatusBadRequest, "missing_name", fmt.Errorf("owner name is required"))
	}
	owner := &types.Owner{ID: uuid.New(), Name: name, Email: email, Role: role}
	if _, err := s.ownerRepo.Create(dbctx.Context{Ctx: ctx}, owner); err != nil {
		s.log.Error("CreateOwner failed", "error", err, "name", name)
		return nil, apiError("create_owner_failed", dataagg.MapError("Catalog.Owner.Create", err))
	}
	return owner, nil
}

func (s *catalogService) ListTeams(ctx context.Context) ([]*types.Team, error) {
	out, err := s.teamRepo.List(dbctx.Context{Ctx: ctx})
	if err != nil {
		return nil, apiError("list_teams_failed", err)
	}
	return out, nil
}

func (s *catalogService) CreateTeam(ctx context.Context, name string) (*types.Team, error) {
	if name == "" {
		return nil, apierr.New(http.StatusBadRequest, "missing_name", fmt.Errorf("team name is required"))
	}
	team := &types.Team{ID: uuid.New(), Name: name}
	if _, err := s.teamRepo.Create(dbctx.Context{Ctx: ctx}, team); err != nil {
		s.log.Error("CreateTeam failed", "error", err, "name", name)
		return nil, apiError("create_team_failed", dataagg.MapError("Catalog.Team.Create", err))
	}
	return team, nil
}

func (s *catalogService) ListFeatures(ctx context.Context) ([]*types.Feature, error) {
	out, err := s.featureRepo.List(dbctx.Context{Ctx: ctx})
	if err != nil {
		return nil, apiError("list_features_failed", err)
	}
	return out, nil
}

func (s *catalogService) CreateFeature(ctx context.Context, name, status string) (*types.Feature, error) {
	if name == "" {
		return nil, apierr.New(http.StatusBadRequest, "missing_name", fmt.Errorf("feature name is required"))
	}
	if status == "" {
		status = types.FeatureStatusPlanned
	}
	switch status {
	case types.FeatureStatusPlanned, types.FeatureStatusInProgress, types.FeatureStatusCompleted:
	default:
		return nil, apierr.New(http.StatusBadRequest, "invalid_status", fmt.Errorf("unknown feature status %q", status))
	}
	feature := &types.Feature{ID: uuid.New(), Name: name, Status: status}
	if _, err := s.featureRepo.Create(dbctx.Context{Ctx: ctx}, feature); err != nil {
		s.log.Error("CreateFeature failed", "error", err, "name", name)
		return nil, apiError("create_feature_failed", dataagg.MapError("Catalog.Feature.Create", err))
	}
	return feature, nil
}

func (s *catalogService) ListRescheduleTypes(ctx context.Context) ([]*types.RescheduleType, error) {
	out, err := s.reschedTypes.List(dbctx.Context{Ctx: ctx})
	if err != nil {
		return nil, apiError("list_reschedule_types_failed", err)
	}
	return out, nil
}

func (s *catalogService) CreateRescheduleType(ctx context.Context, name string) (*types.RescheduleType, error) {
	if name == "" {
		return nil, apierr.New(http.StatusBadRequest, "missing_name", fmt.Errorf("reschedule type name is required"))
	}
	existing, err := s.reschedTypes.GetByName(dbctx.Context{Ctx: ctx}, name)
	if err != nil {
		return nil, apiError("create_reschedule_type_failed", err)
	}
	if existing != nil {
		return nil, apierr.New(http.StatusConflict, "reschedule_type_taken", fmt.Errorf("reschedule type %q already exists", name))
	}
	rt := &types.RescheduleType{ID: uuid.New(), Name: name}
	if _, err := s.reschedTypes.Create(dbctx.Context{Ctx: ctx}, rt); err != nil {
		s.log.Error("CreateRescheduleType failed", "error", err, "name", name)
		return nil, apiError("create_reschedule_type_failed", dataagg.MapError("Catalog.RescheduleType.Create", err))
	}
	return rt, nil
}

func (s *catalogService) ListReferenceLevels(ctx context.Context) ([]*types.ReferenceLevel, error) {
	out, err := s.levelRepo.List(dbctx.Context{Ctx: ctx})
	if err != nil {
		return nil, apiError("list_reference_levels_failed", err)
	}
	return out, nil
}

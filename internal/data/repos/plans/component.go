package plans

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/planvane/planvane-backend/internal/domain"
	"github.com/planvane/planvane-backend/internal/pkg/dbctx"
	"github.com/planvane/planvane-backend/internal/pkg/logger"
)

// PlanComponentRepo manages the plan's current target-version rows. The
// set is replaced wholesale on each submission; the append-only history
// lives in PlanComponentVersionRepo.
type PlanComponentRepo interface {
	Create(dbc dbctx.Context, components []*types.PlanComponent) ([]*types.PlanComponent, error)
	ListByPlan(dbc dbctx.Context, planID uuid.UUID) ([]*types.PlanComponent, error)
	DeleteByPlan(dbc dbctx.Context, planID uuid.UUID) error
}

type planComponentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPlanComponentRepo(db *gorm.DB, baseLog *logger.Logger) PlanComponentRepo {
	return &planComponentRepo{
		db:  db,
		log: baseLog.With("repo", "PlanComponentRepo"),
	}
}

func (r *planComponentRepo) handle(dbc dbctx.Context) *gorm.DB {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx)
}

func (r *planComponentRepo) Create(dbc dbctx.Context, components []*types.PlanComponent) ([]*types.PlanComponent, error) {
	if len(components) == 0 {
		return []*types.PlanComponent{}, nil
	}
	if err := r.handle(dbc).Create(&components).Error; err != nil {
		return nil, err
	}
	return components, nil
}

func (r *planComponentRepo) ListByPlan(dbc dbctx.Context, planID uuid.UUID) ([]*types.PlanComponent, error) {
	var out []*types.PlanComponent
	if err := r.handle(dbc).
		Where("plan_id = ?", planID).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *planComponentRepo) DeleteByPlan(dbc dbctx.Context, planID uuid.UUID) error {
	return r.handle(dbc).
		Where("plan_id = ?", planID).
		Delete(&types.PlanComponent{}).Error
}

// PlanComponentVersionRepo is the append-only version ledger. Rows are
// never updated or deleted outside of plan deletion cascades.
type PlanComponentVersionRepo interface {
	Create(dbc dbctx.Context, entries []*types.PlanComponentVersion) ([]*types.PlanComponentVersion, error)
	ListByPlan(dbc dbctx.Context, planID uuid.UUID) ([]*types.PlanComponentVersion, error)
	ListByComponent(dbc dbctx.Context, planID, componentID uuid.UUID) ([]*types.PlanComponentVersion, error)
	DeleteByPlan(dbc dbctx.Context, planID uuid.UUID) error
}

type planComponentVersionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPlanComponentVersionRepo(db *gorm.DB, baseLog *logger.Logger) PlanComponentVersionRepo {
	return &planComponentVersionRepo{
		db:  db,
		log: baseLog.With("repo", "PlanComponentVersionRepo"),
	}
}

func (r *planComponentVersionRepo) handle(dbc dbctx.Context) *gorm.DB {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx)
}

func (r *planComponentVersionRepo) Create(dbc dbctx.Context, entries []*types.PlanComponentVersion) ([]*types.PlanComponentVersion, error) {
	if len(entries) == 0 {
		return []*types.PlanComponentVersion{}, nil
	}
	if err := r.handle(dbc).Create(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *planComponentVersionRepo) ListByPlan(dbc dbctx.Context, planID uuid.UUID) ([]*types.PlanComponentVersion, error) {
	var out []*types.PlanComponentVersion
	if err := r.handle(dbc).
		Where("plan_id = ?", planID).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *planComponentVersionRepo) ListByComponent(dbc dbctx.Context, planID, componentID uuid.UUID) ([]*types.PlanComponentVersion, error) {
	var out []*types.PlanComponentVersion
	if err := r.handle(dbc).
		Where("plan_id = ? AND component_id = ?", planID, componentID).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *planComponentVersionRepo) DeleteByPlan(dbc dbctx.Context, planID uuid.UUID) error {
	return r.handle(dbc).
		Where("plan_id = ?", planID).
		Delete(&types.PlanComponentVersion{}).Error
}

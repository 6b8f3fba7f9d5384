package plans

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/planvane/planvane-backend/internal/domain"
	"github.com/planvane/planvane-backend/internal/pkg/dbctx"
	"github.com/planvane/planvane-backend/internal/pkg/logger"
)

type PhaseRepo interface {
	Create(dbc dbctx.Context, phases []*types.PlanPhase) ([]*types.PlanPhase, error)
	ListByPlan(dbc dbctx.Context, planID uuid.UUID) ([]*types.PlanPhase, error)
	GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.PlanPhase, error)
	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error
	DeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error
}

type phaseRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPhaseRepo(db *gorm.DB, baseLog *logger.Logger) PhaseRepo {
	return &phaseRepo{
		db:  db,
		log: baseLog.With("repo", "PhaseRepo"),
	}
}

func (r *phaseRepo) handle(dbc dbctx.Context) *gorm.DB {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx)
}

func (r *phaseRepo) Create(dbc dbctx.Context, phases []*types.PlanPhase) ([]*types.PlanPhase, error) {
	if len(phases) == 0 {
		return []*types.PlanPhase{}, nil
	}
	if err := r.handle(dbc).Create(&phases).Error; err != nil {
		return nil, err
	}
	return phases, nil
}

func (r *phaseRepo) ListByPlan(dbc dbctx.Context, planID uuid.UUID) ([]*types.PlanPhase, error) {
	var out []*types.PlanPhase
	if err := r.handle(dbc).
		Where("plan_id = ?", planID).
		Order("seq ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *phaseRepo) GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.PlanPhase, error) {
	var out []*types.PlanPhase
	if len(ids) == 0 {
		return out, nil
	}
	if err := r.handle(dbc).
		Where("id IN ?", ids).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *phaseRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	return r.handle(dbc).
		Model(&types.PlanPhase{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *phaseRepo) DeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.handle(dbc).
		Where("id IN ?", ids).
		Delete(&types.PlanPhase{}).Error
}

package plans

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/planvane/planvane-backend/internal/domain"
	"github.com/planvane/planvane-backend/internal/pkg/dbctx"
	"github.com/planvane/planvane-backend/internal/pkg/logger"
)

type RCARepo interface {
	Create(dbc dbctx.Context, rows []*types.PlanRCA) ([]*types.PlanRCA, error)
	ListByPlan(dbc dbctx.Context, planID uuid.UUID) ([]*types.PlanRCA, error)
	DeleteByPlan(dbc dbctx.Context, planID uuid.UUID) error
}

type rcaRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRCARepo(db *gorm.DB, baseLog *logger.Logger) RCARepo {
	return &rcaRepo{
		db:  db,
		log: baseLog.With("repo", "RCARepo"),
	}
}

func (r *rcaRepo) handle(dbc dbctx.Context) *gorm.DB {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx)
}

func (r *rcaRepo) Create(dbc dbctx.Context, rows []*types.PlanRCA) ([]*types.PlanRCA, error) {
	if len(rows) == 0 {
		return []*types.PlanRCA{}, nil
	}
	if err := r.handle(dbc).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *rcaRepo) ListByPlan(dbc dbctx.Context, planID uuid.UUID) ([]*types.PlanRCA, error) {
	var out []*types.PlanRCA
	if err := r.handle(dbc).
		Where("plan_id = ?", planID).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *rcaRepo) DeleteByPlan(dbc dbctx.Context, planID uuid.UUID) error {
	return r.handle(dbc).
		Where("plan_id = ?", planID).
		Delete(&types.PlanRCA{}).Error
}

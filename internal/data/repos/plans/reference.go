package plans

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/planvane/planvane-backend/internal/domain"
	"github.com/planvane/planvane-backend/internal/pkg/dbctx"
	"github.com/planvane/planvane-backend/internal/pkg/logger"
)

type ReferenceRepo interface {
	Create(dbc dbctx.Context, refs []*types.PlanReference) ([]*types.PlanReference, error)
	ListByPlan(dbc dbctx.Context, planID uuid.UUID) ([]*types.PlanReference, error)
	DeleteByPlan(dbc dbctx.Context, planID uuid.UUID) error
}

type referenceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewReferenceRepo(db *gorm.DB, baseLog *logger.Logger) ReferenceRepo {
	return &referenceRepo{
		db:  db,
		log: baseLog.With("repo", "ReferenceRepo"),
	}
}

func (r *referenceRepo) handle(dbc dbctx.Context) *gorm.DB {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx)
}

func (r *referenceRepo) Create(dbc dbctx.Context, refs []*types.PlanReference) ([]*types.PlanReference, error) {
	if len(refs) == 0 {
		return []*types.PlanReference{}, nil
	}
	if err := r.handle(dbc).Create(&refs).Error; err != nil {
		return nil, err
	}
	return refs, nil
}

func (r *referenceRepo) ListByPlan(dbc dbctx.Context, planID uuid.UUID) ([]*types.PlanReference, error) {
	var out []*types.PlanReference
	if err := r.handle(dbc).
		Where("plan_id = ?", planID).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *referenceRepo) DeleteByPlan(dbc dbctx.Context, planID uuid.UUID) error {
	return r.handle(dbc).
		Where("plan_id = ?", planID).
		Delete(&types.PlanReference{}).Error
}

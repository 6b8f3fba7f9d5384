package plans

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/planvane/planvane-backend/internal/domain"
	"github.com/planvane/planvane-backend/internal/pkg/dbctx"
	"github.com/planvane/planvane-backend/internal/pkg/logger"
)

type MilestoneRepo interface {
	Create(dbc dbctx.Context, milestones []*types.PlanMilestone) ([]*types.PlanMilestone, error)
	ListByPlan(dbc dbctx.Context, planID uuid.UUID) ([]*types.PlanMilestone, error)
	DeleteByPlan(dbc dbctx.Context, planID uuid.UUID) error
}

type milestoneRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMilestoneRepo(db *gorm.DB, baseLog *logger.Logger) MilestoneRepo {
	return &milestoneRepo{
		db:  db,
		log: baseLog.With("repo", "MilestoneRepo"),
	}
}

func (r *milestoneRepo) handle(dbc dbctx.Context) *gorm.DB {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx)
}

func (r *milestoneRepo) Create(dbc dbctx.Context, milestones []*types.PlanMilestone) ([]*types.PlanMilestone, error) {
	if len(milestones) == 0 {
		return []*types.PlanMilestone{}, nil
	}
	if err := r.handle(dbc).Create(&milestones).Error; err != nil {
		return nil, err
	}
	return milestones, nil
}

func (r *milestoneRepo) ListByPlan(dbc dbctx.Context, planID uuid.UUID) ([]*types.PlanMilestone, error) {
	var out []*types.PlanMilestone
	if err := r.handle(dbc).
		Where("plan_id = ?", planID).
		Order("date ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteByPlan hard-deletes the plan's milestone rows; the synchronizer
// regenerates the set wholesale.
func (r *milestoneRepo) DeleteByPlan(dbc dbctx.Context, planID uuid.UUID) error {
	return r.handle(dbc).
		Where("plan_id = ?", planID).
		Delete(&types.PlanMilestone{}).Error
}

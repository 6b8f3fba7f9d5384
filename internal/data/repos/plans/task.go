package plans

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/planvane/planvane-backend/internal/domain"
	"github.com/planvane/planvane-backend/internal/pkg/dbctx"
	"github.com/planvane/planvane-backend/internal/pkg/logger"
)

type TaskRepo interface {
	Create(dbc dbctx.Context, tasks []*types.PlanTask) ([]*types.PlanTask, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.PlanTask, error)
	ListByPlan(dbc dbctx.Context, planID uuid.UUID) ([]*types.PlanTask, error)
	UpdateFields(dbc dbctx.Context, id uuid.UUID, fields map[string]any) error
	Delete(dbc dbctx.Context, id uuid.UUID) error
	DeleteByPlan(dbc dbctx.Context, planID uuid.UUID) error
}

type taskRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTaskRepo(db *gorm.DB, baseLog *logger.Logger) TaskRepo {
	return &taskRepo{
		db:  db,
		log: baseLog.With("repo", "TaskRepo"),
	}
}

func (r *taskRepo) handle(dbc dbctx.Context) *gorm.DB {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx)
}

func (r *taskRepo) Create(dbc dbctx.Context, tasks []*types.PlanTask) ([]*types.PlanTask, error) {
	if len(tasks) == 0 {
		return []*types.PlanTask{}, nil
	}
	if err := r.handle(dbc).Create(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.PlanTask, error) {
	var task types.PlanTask
	err := r.handle(dbc).Where("id = ?", id).First(&task).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepo) ListByPlan(dbc dbctx.Context, planID uuid.UUID) ([]*types.PlanTask, error) {
	var out []*types.PlanTask
	if err := r.handle(dbc).
		Where("plan_id = ?", planID).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *taskRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, fields map[string]any) error {
	return r.handle(dbc).
		Model(&types.PlanTask{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *taskRepo) Delete(dbc dbctx.Context, id uuid.UUID) error {
	return r.handle(dbc).
		Where("id = ?", id).
		Delete(&types.PlanTask{}).Error
}

func (r *taskRepo) DeleteByPlan(dbc dbctx.Context, planID uuid.UUID) error {
	return r.handle(dbc).
		Where("plan_id = ?", planID).
		Delete(&types.PlanTask{}).Error
}

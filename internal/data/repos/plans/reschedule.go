package plans

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/planvane/planvane-backend/internal/domain"
	"github.com/planvane/planvane-backend/internal/pkg/dbctx"
	"github.com/planvane/planvane-backend/internal/pkg/logger"
)

type RescheduleRepo interface {
	Create(dbc dbctx.Context, reschedules []*types.PhaseReschedule) ([]*types.PhaseReschedule, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.PhaseReschedule, error)
	ListByPhase(dbc dbctx.Context, phaseID uuid.UUID) ([]*types.PhaseReschedule, error)
	ListByPlan(dbc dbctx.Context, planID uuid.UUID) ([]*types.PhaseReschedule, error)
	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error
	DeleteByPhaseIDs(dbc dbctx.Context, phaseIDs []uuid.UUID) error
}

type rescheduleRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRescheduleRepo(db *gorm.DB, baseLog *logger.Logger) RescheduleRepo {
	return &rescheduleRepo{
		db:  db,
		log: baseLog.With("repo", "RescheduleRepo"),
	}
}

func (r *rescheduleRepo) handle(dbc dbctx.Context) *gorm.DB {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx)
}

func (r *rescheduleRepo) Create(dbc dbctx.Context, reschedules []*types.PhaseReschedule) ([]*types.PhaseReschedule, error) {
	if len(reschedules) == 0 {
		return []*types.PhaseReschedule{}, nil
	}
	if err := r.handle(dbc).Create(&reschedules).Error; err != nil {
		return nil, err
	}
	return reschedules, nil
}

func (r *rescheduleRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.PhaseReschedule, error) {
	var out types.PhaseReschedule
	err := r.handle(dbc).
		Preload("RescheduleType").
		Where("id = ?", id).
		First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ListByPhase returns a phase's audit trail, newest first.
func (r *rescheduleRepo) ListByPhase(dbc dbctx.Context, phaseID uuid.UUID) ([]*types.PhaseReschedule, error) {
	var out []*types.PhaseReschedule
	if err := r.handle(dbc).
		Preload("RescheduleType").
		Where("plan_phase_id = ?", phaseID).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// ListByPlan spans every phase the plan owns, newest first.
func (r *rescheduleRepo) ListByPlan(dbc dbctx.Context, planID uuid.UUID) ([]*types.PhaseReschedule, error) {
	var out []*types.PhaseReschedule
	if err := r.handle(dbc).
		Preload("RescheduleType").
		Where("plan_phase_id IN (?)",
			r.handle(dbc).Model(&types.PlanPhase{}).Select("id").Where("plan_id = ?", planID)).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *rescheduleRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	return r.handle(dbc).
		Model(&types.PhaseReschedule{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *rescheduleRepo) DeleteByPhaseIDs(dbc dbctx.Context, phaseIDs []uuid.UUID) error {
	if len(phaseIDs) == 0 {
		return nil
	}
	return r.handle(dbc).
		Where("plan_phase_id IN ?", phaseIDs).
		Delete(&types.PhaseReschedule{}).Error
}

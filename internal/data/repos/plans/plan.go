package plans

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/planvane/planvane-backend/internal/domain"
	"github.com/planvane/planvane-backend/internal/pkg/dbctx"
	"github.com/planvane/planvane-backend/internal/pkg/logger"
)

type PlanRepo interface {
	Create(dbc dbctx.Context, plan *types.Plan) (*types.Plan, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Plan, error)
	GetByIDBare(dbc dbctx.Context, id uuid.UUID) (*types.Plan, error)
	GetByNameKey(dbc dbctx.Context, nameKey string) (*types.Plan, error)
	List(dbc dbctx.Context) ([]*types.Plan, error)
	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error
	Delete(dbc dbctx.Context, id uuid.UUID) error
}

type planRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPlanRepo(db *gorm.DB, baseLog *logger.Logger) PlanRepo {
	return &planRepo{
		db:  db,
		log: baseLog.With("repo", "PlanRepo"),
	}
}

func (r *planRepo) handle(dbc dbctx.Context) *gorm.DB {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx)
}

func (r *planRepo) Create(dbc dbctx.Context, plan *types.Plan) (*types.Plan, error) {
	if plan == nil {
		return nil, nil
	}
	if err := r.handle(dbc).Create(plan).Error; err != nil {
		return nil, err
	}
	return plan, nil
}

// GetByID loads the plan with everything it owns eager-loaded. Returns nil
// without error when the plan does not exist.
func (r *planRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Plan, error) {
	var plan types.Plan
	err := r.handle(dbc).
		Preload("Phases", func(db *gorm.DB) *gorm.DB { return db.Order("seq ASC") }).
		Preload("Tasks").
		Preload("Milestones").
		Preload("References").
		Preload("Components").
		Preload("Product").
		Where("id = ?", id).
		First(&plan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// GetByIDBare loads only the plan row, no associations.
func (r *planRepo) GetByIDBare(dbc dbctx.Context, id uuid.UUID) (*types.Plan, error) {
	var plan types.Plan
	err := r.handle(dbc).Where("id = ?", id).First(&plan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *planRepo) GetByNameKey(dbc dbctx.Context, nameKey string) (*types.Plan, error) {
	nameKey = strings.TrimSpace(nameKey)
	if nameKey == "" {
		return nil, nil
	}
	var plan types.Plan
	err := r.handle(dbc).Where("name_key = ?", nameKey).First(&plan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *planRepo) List(dbc dbctx.Context) ([]*types.Plan, error) {
	var out []*types.Plan
	if err := r.handle(dbc).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *planRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	return r.handle(dbc).
		Model(&types.Plan{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *planRepo) Delete(dbc dbctx.Context, id uuid.UUID) error {
	return r.handle(dbc).
		Where("id = ?", id).
		Delete(&types.Plan{}).Error
}

package plans

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	types "github.com/planvane/planvane-backend/internal/domain"
	"github.com/planvane/planvane-backend/internal/pkg/dbctx"
	"github.com/planvane/planvane-backend/internal/pkg/logger"
)

type RescheduleTypeRepo interface {
	GetByName(dbc dbctx.Context, name string) (*types.RescheduleType, error)
	Create(dbc dbctx.Context, rt *types.RescheduleType) (*types.RescheduleType, error)
	List(dbc dbctx.Context) ([]*types.RescheduleType, error)
}

type rescheduleTypeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRescheduleTypeRepo(db *gorm.DB, baseLog *logger.Logger) RescheduleTypeRepo {
	return &rescheduleTypeRepo{
		db:  db,
		log: baseLog.With("repo", "RescheduleTypeRepo"),
	}
}

func (r *rescheduleTypeRepo) handle(dbc dbctx.Context) *gorm.DB {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx)
}

func (r *rescheduleTypeRepo) GetByName(dbc dbctx.Context, name string) (*types.RescheduleType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}
	var out types.RescheduleType
	err := r.handle(dbc).Where("name = ?", name).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *rescheduleTypeRepo) Create(dbc dbctx.Context, rt *types.RescheduleType) (*types.RescheduleType, error) {
	if rt == nil {
		return nil, nil
	}
	if err := r.handle(dbc).Create(rt).Error; err != nil {
		return nil, err
	}
	return rt, nil
}

func (r *rescheduleTypeRepo) List(dbc dbctx.Context) ([]*types.RescheduleType, error) {
	var out []*types.RescheduleType
	if err := r.handle(dbc).Order("name ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

package products

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/planvane/planvane-backend/internal/domain"
	"github.com/planvane/planvane-backend/internal/pkg/dbctx"
	"github.com/planvane/planvane-backend/internal/pkg/logger"
)

type ComponentRepo interface {
	Create(dbc dbctx.Context, components []*types.ProductComponent) ([]*types.ProductComponent, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.ProductComponent, error)
	GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.ProductComponent, error)
	ListByProduct(dbc dbctx.Context, productID uuid.UUID) ([]*types.ProductComponent, error)
	UpdateFields(dbc dbctx.Context, id uuid.UUID, fields map[string]any) error
	Delete(dbc dbctx.Context, id uuid.UUID) error
}

type componentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewComponentRepo(db *gorm.DB, baseLog *logger.Logger) ComponentRepo {
	return &componentRepo{
		db:  db,
		log: baseLog.With("repo", "ComponentRepo"),
	}
}

func (r *componentRepo) handle(dbc dbctx.Context) *gorm.DB {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx)
}

func (r *componentRepo) Create(dbc dbctx.Context, components []*types.ProductComponent) ([]*types.ProductComponent, error) {
	if len(components) == 0 {
		return []*types.ProductComponent{}, nil
	}
	if err := r.handle(dbc).Create(&components).Error; err != nil {
		return nil, err
	}
	return components, nil
}

func (r *componentRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.ProductComponent, error) {
	var component types.ProductComponent
	err := r.handle(dbc).Where("id = ?", id).First(&component).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &component, nil
}

func (r *componentRepo) GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.ProductComponent, error) {
	if len(ids) == 0 {
		return []*types.ProductComponent{}, nil
	}
	var out []*types.ProductComponent
	if err := r.handle(dbc).
		Where("id IN ?", ids).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *componentRepo) ListByProduct(dbc dbctx.Context, productID uuid.UUID) ([]*types.ProductComponent, error) {
	var out []*types.ProductComponent
	if err := r.handle(dbc).
		Where("product_id = ?", productID).
		Order("name ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *componentRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, fields map[string]any) error {
	return r.handle(dbc).
		Model(&types.ProductComponent{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *componentRepo) Delete(dbc dbctx.Context, id uuid.UUID) error {
	return r.handle(dbc).
		Where("id = ?", id).
		Delete(&types.ProductComponent{}).Error
}

package products

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/planvane/planvane-backend/internal/domain"
	"github.com/planvane/planvane-backend/internal/pkg/dbctx"
	"github.com/planvane/planvane-backend/internal/pkg/logger"
)

type ProductRepo interface {
	Create(dbc dbctx.Context, product *types.Product) (*types.Product, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Product, error)
	GetByIDBare(dbc dbctx.Context, id uuid.UUID) (*types.Product, error)
	GetByNameKey(dbc dbctx.Context, nameKey string) (*types.Product, error)
	List(dbc dbctx.Context) ([]*types.Product, error)
	UpdateFields(dbc dbctx.Context, id uuid.UUID, fields map[string]any) error
	Delete(dbc dbctx.Context, id uuid.UUID) error
}

type productRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProductRepo(db *gorm.DB, baseLog *logger.Logger) ProductRepo {
	return &productRepo{
		db:  db,
		log: baseLog.With("repo", "ProductRepo"),
	}
}

func (r *productRepo) handle(dbc dbctx.Context) *gorm.DB {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx)
}

func (r *productRepo) Create(dbc dbctx.Context, product *types.Product) (*types.Product, error) {
	if err := r.handle(dbc).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

func (r *productRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Product, error) {
	var product types.Product
	err := r.handle(dbc).
		Preload("Components").
		Where("id = ?", id).
		First(&product).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// GetByIDBare skips association preloads; used by token guards that only need
// the product's updated_at.
func (r *productRepo) GetByIDBare(dbc dbctx.Context, id uuid.UUID) (*types.Product, error) {
	var product types.Product
	err := r.handle(dbc).Where("id = ?", id).First(&product).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) GetByNameKey(dbc dbctx.Context, nameKey string) (*types.Product, error) {
	var product types.Product
	err := r.handle(dbc).Where("name_key = ?", nameKey).First(&product).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) List(dbc dbctx.Context) ([]*types.Product, error) {
	var out []*types.Product
	if err := r.handle(dbc).
		Order("name ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *productRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, fields map[string]any) error {
	return r.handle(dbc).
		Model(&types.Product{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *productRepo) Delete(dbc dbctx.Context, id uuid.UUID) error {
	return r.handle(dbc).
		Where("id = ?", id).
		Delete(&types.Product{}).Error
}

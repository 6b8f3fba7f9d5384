package catalog

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/planvane/planvane-backend/internal/domain"
	"github.com/planvane/planvane-backend/internal/pkg/dbctx"
	"github.com/planvane/planvane-backend/internal/pkg/logger"
)

type OwnerRepo interface {
	Create(dbc dbctx.Context, owner *types.Owner) (*types.Owner, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Owner, error)
	GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Owner, error)
	List(dbc dbctx.Context) ([]*types.Owner, error)
}

type ownerRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewOwnerRepo(db *gorm.DB, baseLog *logger.Logger) OwnerRepo {
	return &ownerRepo{
		db:  db,
		log: baseLog.With("repo", "OwnerRepo"),
	}
}

func (r *ownerRepo) handle(dbc dbctx.Context) *gorm.DB {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx)
}

func (r *ownerRepo) Create(dbc dbctx.Context, owner *types.Owner) (*types.Owner, error) {
	if err := r.handle(dbc).Create(owner).Error; err != nil {
		return nil, err
	}
	return owner, nil
}

func (r *ownerRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Owner, error) {
	var owner types.Owner
	err := r.handle(dbc).Where("id = ?", id).First(&owner).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &owner, nil
}

func (r *ownerRepo) GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Owner, error) {
	if len(ids) == 0 {
		return []*types.Owner{}, nil
	}
	var out []*types.Owner
	if err := r.handle(dbc).
		Where("id IN ?", ids).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ownerRepo) List(dbc dbctx.Context) ([]*types.Owner, error) {
	var out []*types.Owner
	if err := r.handle(dbc).
		Order("name ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

package catalog

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/planvane/planvane-backend/internal/domain"
	"github.com/planvane/planvane-backend/internal/pkg/dbctx"
	"github.com/planvane/planvane-backend/internal/pkg/logger"
)

// ReferenceLevelRepo manages the small discriminator table for reference
// attachment levels. GetOrCreateByName keeps level resolution idempotent so
// writers inside a transaction never race on seed data.
type ReferenceLevelRepo interface {
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.ReferenceLevel, error)
	GetByName(dbc dbctx.Context, name string) (*types.ReferenceLevel, error)
	GetOrCreateByName(dbc dbctx.Context, name string) (*types.ReferenceLevel, error)
	List(dbc dbctx.Context) ([]*types.ReferenceLevel, error)
}

type referenceLevelRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewReferenceLevelRepo(db *gorm.DB, baseLog *logger.Logger) ReferenceLevelRepo {
	return &referenceLevelRepo{
		db:  db,
		log: baseLog.With("repo", "ReferenceLevelRepo"),
	}
}

func (r *referenceLevelRepo) handle(dbc dbctx.Context) *gorm.DB {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx)
}

func (r *referenceLevelRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.ReferenceLevel, error) {
	var level types.ReferenceLevel
	err := r.handle(dbc).Where("id = ?", id).First(&level).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &level, nil
}

func (r *referenceLevelRepo) GetByName(dbc dbctx.Context, name string) (*types.ReferenceLevel, error) {
	var level types.ReferenceLevel
	err := r.handle(dbc).Where("name = ?", name).First(&level).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &level, nil
}

func (r *referenceLevelRepo) GetOrCreateByName(dbc dbctx.Context, name string) (*types.ReferenceLevel, error) {
	existing, err := r.GetByName(dbc, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	level := &types.ReferenceLevel{ID: uuid.New(), Name: name}
	if err := r.handle(dbc).Create(level).Error; err != nil {
		return nil, err
	}
	return level, nil
}

func (r *referenceLevelRepo) List(dbc dbctx.Context) ([]*types.ReferenceLevel, error) {
	var out []*types.ReferenceLevel
	if err := r.handle(dbc).
		Order("name ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

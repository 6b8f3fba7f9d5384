package catalog

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/planvane/planvane-backend/internal/domain"
	"github.com/planvane/planvane-backend/internal/pkg/dbctx"
	"github.com/planvane/planvane-backend/internal/pkg/logger"
)

type FeatureRepo interface {
	Create(dbc dbctx.Context, feature *types.Feature) (*types.Feature, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Feature, error)
	GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Feature, error)
	List(dbc dbctx.Context) ([]*types.Feature, error)
	SetStatusByIDs(dbc dbctx.Context, ids []uuid.UUID, status string) (int64, error)
}

type featureRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFeatureRepo(db *gorm.DB, baseLog *logger.Logger) FeatureRepo {
	return &featureRepo{
		db:  db,
		log: baseLog.With("repo", "FeatureRepo"),
	}
}

func (r *featureRepo) handle(dbc dbctx.Context) *gorm.DB {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx)
}

func (r *featureRepo) Create(dbc dbctx.Context, feature *types.Feature) (*types.Feature, error) {
	if err := r.handle(dbc).Create(feature).Error; err != nil {
		return nil, err
	}
	return feature, nil
}

func (r *featureRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Feature, error) {
	var feature types.Feature
	err := r.handle(dbc).Where("id = ?", id).First(&feature).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &feature, nil
}

func (r *featureRepo) GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Feature, error) {
	if len(ids) == 0 {
		return []*types.Feature{}, nil
	}
	var out []*types.Feature
	if err := r.handle(dbc).
		Where("id IN ?", ids).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *featureRepo) List(dbc dbctx.Context) ([]*types.Feature, error) {
	var out []*types.Feature
	if err := r.handle(dbc).
		Order("name ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// SetStatusByIDs bulk-transitions features; missing ids are silently skipped
// and the returned count reflects only rows actually touched.
func (r *featureRepo) SetStatusByIDs(dbc dbctx.Context, ids []uuid.UUID, status string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.handle(dbc).
		Model(&types.Feature{}).
		Where("id IN ?", ids).
		Updates(map[string]any{"status": status})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

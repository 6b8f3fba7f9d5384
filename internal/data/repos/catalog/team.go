package catalog

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/planvane/planvane-backend/internal/domain"
	"github.com/planvane/planvane-backend/internal/pkg/dbctx"
	"github.com/planvane/planvane-backend/internal/pkg/logger"
)

type TeamRepo interface {
	Create(dbc dbctx.Context, team *types.Team) (*types.Team, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Team, error)
	GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Team, error)
	List(dbc dbctx.Context) ([]*types.Team, error)
}

type teamRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTeamRepo(db *gorm.DB, baseLog *logger.Logger) TeamRepo {
	return &teamRepo{
		db:  db,
		log: baseLog.With("repo", "TeamRepo"),
	}
}

func (r *teamRepo) handle(dbc dbctx.Context) *gorm.DB {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx)
}

func (r *teamRepo) Create(dbc dbctx.Context, team *types.Team) (*types.Team, error) {
	if err := r.handle(dbc).Create(team).Error; err != nil {
		return nil, err
	}
	return team, nil
}

func (r *teamRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Team, error) {
	var team types.Team
	err := r.handle(dbc).Where("id = ?", id).First(&team).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &team, nil
}

func (r *teamRepo) GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Team, error) {
	if len(ids) == 0 {
		return []*types.Team{}, nil
	}
	var out []*types.Team
	if err := r.handle(dbc).
		Where("id IN ?", ids).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *teamRepo) List(dbc dbctx.Context) ([]*types.Team, error) {
	var out []*types.Team
	if err := r.handle(dbc).
		Order("name ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/yungbote/staffing-graph-backend/internal/platform/logger"
	"github.com/yungbote/staffing-graph-backend/internal/types"
)

type IngestionRunRepo interface {
	Create(ctx context.Context, tx *gorm.DB, run *types.IngestionRun) error
	ListRecent(ctx context.Context, tx *gorm.DB, limit int) ([]*types.IngestionRun, error)
}

type ingestionRunRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewIngestionRunRepo(db *gorm.DB, baseLog *logger.Logger) IngestionRunRepo {
	repoLog := baseLog.With("repo", "IngestionRunRepo")
	return &ingestionRunRepo{db: db, log: repoLog}
}

func (r *ingestionRunRepo) Create(ctx context.Context, tx *gorm.DB, run *types.IngestionRun) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Create(run).Error
}

func (r *ingestionRunRepo) ListRecent(ctx context.Context, tx *gorm.DB, limit int) ([]*types.IngestionRun, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if limit <= 0 {
		limit = 50
	}
	var results []*types.IngestionRun
	if err := transaction.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

package repository

import (
	"context"

	"github.com/kpsunited/kps-admin-backend/internal/app/model"
	"github.com/kpsunited/kps-admin-backend/internal/storage"
	"github.com/kpsunited/kps-admin-backend/pkg/logger"
)

type QueryRepository interface {
	LoadQueries(ctx context.Context) ([]model.Query, error)
	SaveQueries(ctx context.Context, queries []model.Query) error
}

type queryRepository struct {
	backend storage.Backend
}

func NewQueryRepository(backend storage.Backend) QueryRepository {
	return &queryRepository{backend: backend}
}

func (r *queryRepository) LoadQueries(ctx context.Context) ([]model.Query, error) {
	var queries []model.Query
	if err := loadCollection(ctx, r.backend, KeyQueries, &queries); err != nil {
		logger.Error("Failed to load queries", err, map[string]interface{}{
			"key": KeyQueries,
		})
		return nil, err
	}
	return queries, nil
}

func (r *queryRepository) SaveQueries(ctx context.Context, queries []model.Query) error {
	if err := saveCollection(ctx, r.backend, KeyQueries, queries); err != nil {
		logger.Error("Failed to save queries", err, map[string]interface{}{
			"key":   KeyQueries,
			"count": len(queries),
		})
		return err
	}
	return nil
}

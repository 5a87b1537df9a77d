package repository

import (
	"context"

	"github.com/kpsunited/kps-admin-backend/internal/app/model"
	"github.com/kpsunited/kps-admin-backend/internal/storage"
	"github.com/kpsunited/kps-admin-backend/pkg/logger"
)

type PromotionRepository interface {
	LoadPromotions(ctx context.Context) ([]model.Promotion, error)
	SavePromotions(ctx context.Context, promos []model.Promotion) error
}

type promotionRepository struct {
	backend storage.Backend
}

func NewPromotionRepository(backend storage.Backend) PromotionRepository {
	return &promotionRepository{backend: backend}
}

func (r *promotionRepository) LoadPromotions(ctx context.Context) ([]model.Promotion, error) {
	var promos []model.Promotion
	if err := loadCollection(ctx, r.backend, KeyPromotions, &promos); err != nil {
		logger.Error("Failed to load promotions", err, map[string]interface{}{
			"key": KeyPromotions,
		})
		return nil, err
	}
	return promos, nil
}

func (r *promotionRepository) SavePromotions(ctx context.Context, promos []model.Promotion) error {
	if err := saveCollection(ctx, r.backend, KeyPromotions, promos); err != nil {
		logger.Error("Failed to save promotions", err, map[string]interface{}{
			"key":   KeyPromotions,
			"count": len(promos),
		})
		return err
	}
	return nil
}

package repository

import (
	"context"

	"github.com/kpsunited/kps-admin-backend/internal/app/model"
	"github.com/kpsunited/kps-admin-backend/internal/storage"
	"github.com/kpsunited/kps-admin-backend/pkg/logger"
)

// StoreRepository covers both the store collection and its owning member
// collection. The delete cascade spans the two, so they live behind one
// repository.
type StoreRepository interface {
	LoadStores(ctx context.Context) ([]model.Store, error)
	SaveStores(ctx context.Context, stores []model.Store) error
	LoadMembers(ctx context.Context) ([]model.Member, error)
	SaveMembers(ctx context.Context, members []model.Member) error
}

type storeRepository struct {
	backend storage.Backend
}

func NewStoreRepository(backend storage.Backend) StoreRepository {
	return &storeRepository{backend: backend}
}

func (r *storeRepository) LoadStores(ctx context.Context) ([]model.Store, error) {
	var stores []model.Store
	if err := loadCollection(ctx, r.backend, KeyStores, &stores); err != nil {
		logger.Error("Failed to load stores", err, map[string]interface{}{
			"key": KeyStores,
		})
		return nil, err
	}
	return stores, nil
}

func (r *storeRepository) SaveStores(ctx context.Context, stores []model.Store) error {
	if err := saveCollection(ctx, r.backend, KeyStores, stores); err != nil {
		logger.Error("Failed to save stores", err, map[string]interface{}{
			"key":   KeyStores,
			"count": len(stores),
		})
		return err
	}
	logger.Debug("Stores saved", map[string]interface{}{
		"count": len(stores),
	})
	return nil
}

func (r *storeRepository) LoadMembers(ctx context.Context) ([]model.Member, error) {
	var members []model.Member
	if err := loadCollection(ctx, r.backend, KeyMembers, &members); err != nil {
		logger.Error("Failed to load members", err, map[string]interface{}{
			"key": KeyMembers,
		})
		return nil, err
	}
	return members, nil
}

func (r *storeRepository) SaveMembers(ctx context.Context, members []model.Member) error {
	if err := saveCollection(ctx, r.backend, KeyMembers, members); err != nil {
		logger.Error("Failed to save members", err, map[string]interface{}{
			"key":   KeyMembers,
			"count": len(members),
		})
		return err
	}
	logger.Debug("Members saved", map[string]interface{}{
		"count": len(members),
	})
	return nil
}

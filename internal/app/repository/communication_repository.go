package repository

import (
	"context"

	"github.com/kpsunited/kps-admin-backend/internal/app/model"
	"github.com/kpsunited/kps-admin-backend/internal/storage"
	"github.com/kpsunited/kps-admin-backend/pkg/logger"
)

// CommunicationRepository persists the append-only vendor contact log.
type CommunicationRepository interface {
	LoadCommunications(ctx context.Context) ([]model.Communication, error)
	SaveCommunications(ctx context.Context, comms []model.Communication) error
}

type communicationRepository struct {
	backend storage.Backend
}

func NewCommunicationRepository(backend storage.Backend) CommunicationRepository {
	return &communicationRepository{backend: backend}
}

func (r *communicationRepository) LoadCommunications(ctx context.Context) ([]model.Communication, error) {
	var comms []model.Communication
	if err := loadCollection(ctx, r.backend, KeyCommunications, &comms); err != nil {
		logger.Error("Failed to load communications", err, map[string]interface{}{
			"key": KeyCommunications,
		})
		return nil, err
	}
	return comms, nil
}

func (r *communicationRepository) SaveCommunications(ctx context.Context, comms []model.Communication) error {
	if err := saveCollection(ctx, r.backend, KeyCommunications, comms); err != nil {
		logger.Error("Failed to save communications", err, map[string]interface{}{
			"key":   KeyCommunications,
			"count": len(comms),
		})
		return err
	}
	return nil
}

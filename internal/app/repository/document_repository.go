package repository

import (
	"context"

	"github.com/kpsunited/kps-admin-backend/internal/app/model"
	"github.com/kpsunited/kps-admin-backend/internal/storage"
	"github.com/kpsunited/kps-admin-backend/pkg/logger"
)

type DocumentRepository interface {
	LoadDocuments(ctx context.Context) ([]model.Document, error)
	SaveDocuments(ctx context.Context, docs []model.Document) error
}

type documentRepository struct {
	backend storage.Backend
}

func NewDocumentRepository(backend storage.Backend) DocumentRepository {
	return &documentRepository{backend: backend}
}

func (r *documentRepository) LoadDocuments(ctx context.Context) ([]model.Document, error) {
	var docs []model.Document
	if err := loadCollection(ctx, r.backend, KeyDocuments, &docs); err != nil {
		logger.Error("Failed to load documents", err, map[string]interface{}{
			"key": KeyDocuments,
		})
		return nil, err
	}
	return docs, nil
}

func (r *documentRepository) SaveDocuments(ctx context.Context, docs []model.Document) error {
	if err := saveCollection(ctx, r.backend, KeyDocuments, docs); err != nil {
		logger.Error("Failed to save documents", err, map[string]interface{}{
			"key":   KeyDocuments,
			"count": len(docs),
		})
		return err
	}
	return nil
}

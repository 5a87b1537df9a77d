package repository

import (
	"context"

	"github.com/kpsunited/kps-admin-backend/internal/app/model"
	"github.com/kpsunited/kps-admin-backend/internal/storage"
	"github.com/kpsunited/kps-admin-backend/pkg/logger"
)

// TermsRepository persists the terms-of-service singleton.
type TermsRepository interface {
	// LoadTerms returns nil when no terms were ever published.
	LoadTerms(ctx context.Context) (*model.Terms, error)
	SaveTerms(ctx context.Context, terms *model.Terms) error
}

type termsRepository struct {
	backend storage.Backend
}

func NewTermsRepository(backend storage.Backend) TermsRepository {
	return &termsRepository{backend: backend}
}

func (r *termsRepository) LoadTerms(ctx context.Context) (*model.Terms, error) {
	var terms *model.Terms
	if err := loadCollection(ctx, r.backend, KeyTerms, &terms); err != nil {
		logger.Error("Failed to load terms", err, map[string]interface{}{
			"key": KeyTerms,
		})
		return nil, err
	}
	return terms, nil
}

func (r *termsRepository) SaveTerms(ctx context.Context, terms *model.Terms) error {
	if err := saveCollection(ctx, r.backend, KeyTerms, terms); err != nil {
		logger.Error("Failed to save terms", err, map[string]interface{}{
			"key":     KeyTerms,
			"version": terms.Version,
		})
		return err
	}
	return nil
}

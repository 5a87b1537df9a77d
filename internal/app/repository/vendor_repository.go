package repository

import (
	"context"

	"github.com/kpsunited/kps-admin-backend/internal/app/model"
	"github.com/kpsunited/kps-admin-backend/internal/storage"
	"github.com/kpsunited/kps-admin-backend/pkg/logger"
)

type VendorRepository interface {
	LoadVendors(ctx context.Context) ([]model.Vendor, error)
	SaveVendors(ctx context.Context, vendors []model.Vendor) error
}

type vendorRepository struct {
	backend storage.Backend
}

func NewVendorRepository(backend storage.Backend) VendorRepository {
	return &vendorRepository{backend: backend}
}

func (r *vendorRepository) LoadVendors(ctx context.Context) ([]model.Vendor, error) {
	var vendors []model.Vendor
	if err := loadCollection(ctx, r.backend, KeyVendors, &vendors); err != nil {
		logger.Error("Failed to load vendors", err, map[string]interface{}{
			"key": KeyVendors,
		})
		return nil, err
	}
	return vendors, nil
}

func (r *vendorRepository) SaveVendors(ctx context.Context, vendors []model.Vendor) error {
	if err := saveCollection(ctx, r.backend, KeyVendors, vendors); err != nil {
		logger.Error("Failed to save vendors", err, map[string]interface{}{
			"key":   KeyVendors,
			"count": len(vendors),
		})
		return err
	}
	return nil
}

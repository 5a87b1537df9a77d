package service

import (
	"context"
	"strings"

	"github.com/kpsunited/kps-admin-backend/internal/app/model"
	"github.com/kpsunited/kps-admin-backend/internal/app/repository"
	"github.com/kpsunited/kps-admin-backend/internal/errors"
	"github.com/kpsunited/kps-admin-backend/pkg/logger"
	"github.com/kpsunited/kps-admin-backend/pkg/util"
)

type VendorService interface {
	ListVendors(ctx context.Context) ([]model.Vendor, error)
	// UpsertVendor creates the vendor when ID is zero, otherwise
	// replaces the existing record's fields.
	UpsertVendor(ctx context.Context, vendor model.Vendor) (*model.Vendor, error)
	// DeleteVendor is unconditional: no protected vendors, and no
	// cascade into store vendor lists, communications or promotion
	// snapshots. Those keep the stale name as historical record.
	DeleteVendor(ctx context.Context, id int64) error
}

type vendorService struct {
	vendorRepo repository.VendorRepository
	ids        util.IDGenerator
	notifier   ChangeNotifier
}

func NewVendorService(vendorRepo repository.VendorRepository, ids util.IDGenerator, notifier ChangeNotifier) VendorService {
	return &vendorService{
		vendorRepo: vendorRepo,
		ids:        ids,
		notifier:   notifier,
	}
}

func (s *vendorService) ListVendors(ctx context.Context) ([]model.Vendor, error) {
	return s.vendorRepo.LoadVendors(ctx)
}

func (s *vendorService) UpsertVendor(ctx context.Context, vendor model.Vendor) (*model.Vendor, error) {
	if strings.TrimSpace(vendor.Name) == "" {
		return nil, &errors.ValidationError{Field: "name", Reason: "must not be empty"}
	}

	vendors, err := s.vendorRepo.LoadVendors(ctx)
	if err != nil {
		return nil, err
	}

	if vendor.ID == 0 {
		vendor.ID = s.ids.NextID()
		vendors = append(vendors, vendor)
		if err := s.vendorRepo.SaveVendors(ctx, vendors); err != nil {
			return nil, err
		}
		logger.Info("Vendor created", map[string]interface{}{
			"vendor_id": vendor.ID,
			"name":      vendor.Name,
		})
		notify(s.notifier, "vendor", "created")
		return &vendor, nil
	}

	for i := range vendors {
		if vendors[i].ID == vendor.ID {
			vendors[i] = vendor
			if err := s.vendorRepo.SaveVendors(ctx, vendors); err != nil {
				return nil, err
			}
			logger.Info("Vendor updated", map[string]interface{}{
				"vendor_id": vendor.ID,
				"name":      vendor.Name,
			})
			notify(s.notifier, "vendor", "updated")
			return &vendor, nil
		}
	}
	return nil, &errors.NotFoundError{Resource: "vendor", ID: formatID(vendor.ID)}
}

func (s *vendorService) DeleteVendor(ctx context.Context, id int64) error {
	vendors, err := s.vendorRepo.LoadVendors(ctx)
	if err != nil {
		return err
	}

	kept := vendors[:0]
	for _, v := range vendors {
		if v.ID != id {
			kept = append(kept, v)
		}
	}
	if len(kept) == len(vendors) {
		return &errors.NotFoundError{Resource: "vendor", ID: formatID(id)}
	}

	if err := s.vendorRepo.SaveVendors(ctx, kept); err != nil {
		return err
	}
	logger.Info("Vendor deleted", map[string]interface{}{
		"vendor_id": id,
	})
	notify(s.notifier, "vendor", "deleted")
	return nil
}

package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/kpsunited/kps-admin-backend/internal/app/model"
	"github.com/kpsunited/kps-admin-backend/internal/app/repository"
	"github.com/kpsunited/kps-admin-backend/internal/errors"
	"github.com/kpsunited/kps-admin-backend/pkg/logger"
	"github.com/kpsunited/kps-admin-backend/pkg/util"
)

type CommunicationService interface {
	// ListCommunications returns the log newest first.
	ListCommunications(ctx context.Context) ([]model.Communication, error)
	// AppendCommunication snapshots the vendor name at write time. A
	// stale vendor id does not block the append: the log is historical
	// record and falls back to the unknown-vendor sentinel instead.
	AppendCommunication(ctx context.Context, vendorID int64, commType, message string) (*model.Communication, error)
}

type communicationService struct {
	commRepo   repository.CommunicationRepository
	vendorRepo repository.VendorRepository
	ids        util.IDGenerator
	notifier   ChangeNotifier
}

func NewCommunicationService(
	commRepo repository.CommunicationRepository,
	vendorRepo repository.VendorRepository,
	ids util.IDGenerator,
	notifier ChangeNotifier,
) CommunicationService {
	return &communicationService{
		commRepo:   commRepo,
		vendorRepo: vendorRepo,
		ids:        ids,
		notifier:   notifier,
	}
}

func (s *communicationService) ListCommunications(ctx context.Context) ([]model.Communication, error) {
	comms, err := s.commRepo.LoadCommunications(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(comms, func(i, j int) bool {
		return comms[i].Date.After(comms[j].Date)
	})
	return comms, nil
}

func (s *communicationService) AppendCommunication(ctx context.Context, vendorID int64, commType, message string) (*model.Communication, error) {
	if strings.TrimSpace(message) == "" {
		return nil, &errors.ValidationError{Field: "message", Reason: "must not be empty"}
	}

	vendorName := model.UnknownVendorName
	vendors, err := s.vendorRepo.LoadVendors(ctx)
	if err != nil {
		return nil, err
	}
	for _, v := range vendors {
		if v.ID == vendorID {
			vendorName = v.Name
			break
		}
	}
	if vendorName == model.UnknownVendorName {
		logger.Warn("Communication references unknown vendor", map[string]interface{}{
			"vendor_id": vendorID,
		})
	}

	comm := model.Communication{
		ID:         s.ids.NextID(),
		VendorID:   vendorID,
		VendorName: vendorName,
		Type:       commType,
		Message:    message,
		Date:       time.Now().UTC(),
	}

	comms, err := s.commRepo.LoadCommunications(ctx)
	if err != nil {
		return nil, err
	}
	comms = append(comms, comm)
	if err := s.commRepo.SaveCommunications(ctx, comms); err != nil {
		return nil, err
	}

	logger.Info("Communication logged", map[string]interface{}{
		"vendor_id":   vendorID,
		"vendor_name": vendorName,
		"type":        commType,
	})
	notify(s.notifier, "communication", "created")
	return &comm, nil
}

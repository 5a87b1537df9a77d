package service

import (
	"context"
	"strings"

	"github.com/kpsunited/kps-admin-backend/internal/app/model"
	"github.com/kpsunited/kps-admin-backend/internal/app/repository"
	"github.com/kpsunited/kps-admin-backend/internal/errors"
	"github.com/kpsunited/kps-admin-backend/pkg/logger"
)

// DeleteStoreResult reports what a store deletion removed so the caller
// can message appropriately.
type DeleteStoreResult struct {
	StoreID       string `json:"storeId"`
	MemberID      string `json:"memberId"`
	MemberRemoved bool   `json:"memberRemoved"`
}

type StoreService interface {
	ListStores(ctx context.Context) ([]model.Store, error)
	ListMembers(ctx context.Context) ([]model.Member, error)
	// NormalizeMemberIDs rewrites legacy member ids lacking the "-"
	// separator to "<id>-1" in both collections. Idempotent; persists
	// only when something changed. Returns the number of repaired
	// records.
	NormalizeMemberIDs(ctx context.Context) (int, error)
	UpsertStore(ctx context.Context, store model.Store) ([]model.Store, error)
	DeleteStore(ctx context.Context, storeID string) (*DeleteStoreResult, error)
	FilterStores(ctx context.Context, term string) ([]model.Store, error)
	FilterByTownAndVendors(ctx context.Context, town string, vendorNames []string) ([]model.Store, error)
}

type storeService struct {
	storeRepo repository.StoreRepository
	notifier  ChangeNotifier
}

func NewStoreService(storeRepo repository.StoreRepository, notifier ChangeNotifier) StoreService {
	return &storeService{
		storeRepo: storeRepo,
		notifier:  notifier,
	}
}

func (s *storeService) ListStores(ctx context.Context) ([]model.Store, error) {
	// Legacy ids must be repaired before any display read.
	if _, err := s.NormalizeMemberIDs(ctx); err != nil {
		return nil, err
	}
	return s.storeRepo.LoadStores(ctx)
}

func (s *storeService) ListMembers(ctx context.Context) ([]model.Member, error) {
	if _, err := s.NormalizeMemberIDs(ctx); err != nil {
		return nil, err
	}
	return s.storeRepo.LoadMembers(ctx)
}

func (s *storeService) NormalizeMemberIDs(ctx context.Context) (int, error) {
	members, err := s.storeRepo.LoadMembers(ctx)
	if err != nil {
		return 0, err
	}
	stores, err := s.storeRepo.LoadStores(ctx)
	if err != nil {
		return 0, err
	}

	repaired := 0
	membersChanged := false
	for i := range members {
		if fixed, ok := normalizeMemberID(members[i].MemberID); ok {
			members[i].MemberID = fixed
			membersChanged = true
			repaired++
		}
	}

	storesChanged := false
	for i := range stores {
		if fixed, ok := normalizeMemberID(stores[i].MemberID); ok {
			stores[i].MemberID = fixed
			storesChanged = true
			repaired++
		}
	}

	if membersChanged {
		if err := s.storeRepo.SaveMembers(ctx, members); err != nil {
			return 0, err
		}
	}
	if storesChanged {
		if err := s.storeRepo.SaveStores(ctx, stores); err != nil {
			return 0, err
		}
	}

	if repaired > 0 {
		logger.Info("Repaired legacy member IDs", map[string]interface{}{
			"repaired": repaired,
		})
	}
	return repaired, nil
}

func normalizeMemberID(id string) (string, bool) {
	if id == "" || strings.Contains(id, "-") {
		return id, false
	}
	return id + "-1", true
}

func (s *storeService) UpsertStore(ctx context.Context, store model.Store) ([]model.Store, error) {
	if strings.TrimSpace(store.ID) == "" {
		return nil, &errors.ValidationError{Field: "id", Reason: "must not be empty"}
	}

	stores, err := s.storeRepo.LoadStores(ctx)
	if err != nil {
		return nil, err
	}

	updated := false
	for i := range stores {
		if stores[i].ID == store.ID {
			// Only the admin-editable fields are replaced; the rest of
			// the record belongs to the store owner.
			stores[i].Status = store.Status
			stores[i].MemberID = store.MemberID
			stores[i].Vendors = store.Vendors
			updated = true
			break
		}
	}
	if !updated {
		stores = append(stores, store)
	}

	if err := s.storeRepo.SaveStores(ctx, stores); err != nil {
		return nil, err
	}

	action := "created"
	if updated {
		action = "updated"
	}
	logger.Info("Store upserted", map[string]interface{}{
		"store_id": store.ID,
		"action":   action,
	})
	notify(s.notifier, "store", action)
	return stores, nil
}

func (s *storeService) DeleteStore(ctx context.Context, storeID string) (*DeleteStoreResult, error) {
	if storeID == model.ProtectedStoreID {
		logger.Warn("Refused to delete protected store", map[string]interface{}{
			"store_id": storeID,
		})
		return nil, &errors.ProtectedRecordError{Resource: "store", ID: storeID}
	}

	stores, err := s.storeRepo.LoadStores(ctx)
	if err != nil {
		return nil, err
	}

	index := -1
	for i := range stores {
		if stores[i].ID == storeID {
			index = i
			break
		}
	}
	if index == -1 {
		return nil, &errors.NotFoundError{Resource: "store", ID: storeID}
	}

	memberID := stores[index].MemberID
	stores = append(stores[:index], stores[index+1:]...)
	if err := s.storeRepo.SaveStores(ctx, stores); err != nil {
		return nil, err
	}

	result := &DeleteStoreResult{StoreID: storeID, MemberID: memberID}

	// A member cannot remain with zero stores: deleting the last store
	// cascades into the member record.
	remaining := 0
	for i := range stores {
		if stores[i].MemberID == memberID {
			remaining++
		}
	}
	if remaining == 0 && memberID != "" {
		members, err := s.storeRepo.LoadMembers(ctx)
		if err != nil {
			return nil, err
		}
		kept := members[:0]
		for _, m := range members {
			if m.MemberID != memberID {
				kept = append(kept, m)
			}
		}
		if len(kept) < len(members) {
			if err := s.storeRepo.SaveMembers(ctx, kept); err != nil {
				return nil, err
			}
			result.MemberRemoved = true
		}
	}

	logger.Info("Store deleted", map[string]interface{}{
		"store_id":       storeID,
		"member_id":      memberID,
		"member_removed": result.MemberRemoved,
	})
	notify(s.notifier, "store", "deleted")
	return result, nil
}

func (s *storeService) FilterStores(ctx context.Context, term string) ([]model.Store, error) {
	stores, err := s.ListStores(ctx)
	if err != nil {
		return nil, err
	}
	if term == "" {
		return stores, nil
	}

	lowered := strings.ToLower(term)
	var matched []model.Store
	for _, store := range stores {
		if strings.Contains(strings.ToLower(store.Name), lowered) ||
			strings.Contains(strings.ToLower(store.BusinessEmail), lowered) ||
			strings.Contains(store.BusinessPhone, term) {
			matched = append(matched, store)
		}
	}
	return matched, nil
}

func (s *storeService) FilterByTownAndVendors(ctx context.Context, town string, vendorNames []string) ([]model.Store, error) {
	stores, err := s.ListStores(ctx)
	if err != nil {
		return nil, err
	}

	var matched []model.Store
	for _, store := range stores {
		if town != "" && store.City != town {
			continue
		}
		// Vendor filter is OR-semantics; an empty selection means no
		// vendor filter at all.
		if len(vendorNames) > 0 {
			hasVendor := false
			for _, name := range vendorNames {
				if store.HasVendor(name) {
					hasVendor = true
					break
				}
			}
			if !hasVendor {
				continue
			}
		}
		matched = append(matched, store)
	}
	return matched, nil
}

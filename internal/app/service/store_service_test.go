package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kpsunited/kps-admin-backend/internal/app/model"
	"github.com/kpsunited/kps-admin-backend/internal/app/repository"
	"github.com/kpsunited/kps-admin-backend/internal/errors"
	"github.com/kpsunited/kps-admin-backend/internal/storage"
)

func setupStoreServiceTest(t *testing.T) (StoreService, repository.StoreRepository) {
	t.Helper()

	backend := storage.NewMemoryBackend(0)
	storeRepo := repository.NewStoreRepository(backend)
	storeService := NewStoreService(storeRepo, nil)
	return storeService, storeRepo
}

func seedStores(t *testing.T, repo repository.StoreRepository, stores []model.Store, members []model.Member) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, repo.SaveStores(ctx, stores))
	require.NoError(t, repo.SaveMembers(ctx, members))
}

func TestStoreService_NormalizeMemberIDs(t *testing.T) {
	storeService, storeRepo := setupStoreServiceTest(t)
	ctx := context.Background()

	seedStores(t, storeRepo,
		[]model.Store{
			{ID: "42-1", MemberID: "42", Name: "Legacy Store"},
			{ID: "50-1", MemberID: "50-1", Name: "Modern Store"},
		},
		[]model.Member{
			{MemberID: "42", Name: "Legacy Member"},
			{MemberID: "50-1", Name: "Modern Member"},
		},
	)

	repaired, err := storeService.NormalizeMemberIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, repaired) // one member record, one store record

	stores, err := storeRepo.LoadStores(ctx)
	require.NoError(t, err)
	assert.Equal(t, "42-1", stores[0].MemberID)
	assert.Equal(t, "50-1", stores[1].MemberID)

	members, err := storeRepo.LoadMembers(ctx)
	require.NoError(t, err)
	assert.Equal(t, "42-1", members[0].MemberID)

	// Second pass finds nothing to repair
	repaired, err = storeService.NormalizeMemberIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, repaired)
}

func TestStoreService_ListStores_RepairsBeforeRead(t *testing.T) {
	storeService, storeRepo := setupStoreServiceTest(t)
	ctx := context.Background()

	seedStores(t, storeRepo,
		[]model.Store{{ID: "42-1", MemberID: "42", Name: "Legacy Store"}},
		nil,
	)

	stores, err := storeService.ListStores(ctx)
	require.NoError(t, err)
	require.Len(t, stores, 1)
	assert.Equal(t, "42-1", stores[0].MemberID)
}

func TestStoreService_UpsertStore(t *testing.T) {
	storeService, storeRepo := setupStoreServiceTest(t)
	ctx := context.Background()

	seedStores(t, storeRepo,
		[]model.Store{{
			ID:       "10-1",
			MemberID: "10-1",
			Name:     "Corner Shop",
			City:     "Springfield",
			Status:   model.StatusPending,
		}},
		nil,
	)

	// Update replaces only the admin-editable fields
	stores, err := storeService.UpsertStore(ctx, model.Store{
		ID:       "10-1",
		MemberID: "10-1",
		Name:     "Renamed By Accident",
		Status:   model.StatusActive,
		Vendors:  []string{"Pepsi"},
	})
	require.NoError(t, err)
	require.Len(t, stores, 1)
	assert.Equal(t, model.StatusActive, stores[0].Status)
	assert.Equal(t, []string{"Pepsi"}, stores[0].Vendors)
	assert.Equal(t, "Corner Shop", stores[0].Name)
	assert.Equal(t, "Springfield", stores[0].City)

	// Unknown id appends
	stores, err = storeService.UpsertStore(ctx, model.Store{ID: "11-1", Name: "New Store"})
	require.NoError(t, err)
	assert.Len(t, stores, 2)

	// Empty id is rejected
	_, err = storeService.UpsertStore(ctx, model.Store{ID: "  "})
	var validation *errors.ValidationError
	assert.ErrorAs(t, err, &validation)
}

func TestStoreService_DeleteStore_CascadesLastStore(t *testing.T) {
	storeService, storeRepo := setupStoreServiceTest(t)
	ctx := context.Background()

	seedStores(t, storeRepo,
		[]model.Store{
			{ID: "42-1", MemberID: "42-1", Name: "Store A"},
			{ID: "42-2", MemberID: "42-1", Name: "Store B"},
		},
		[]model.Member{{MemberID: "42-1", Name: "Owner"}},
	)

	// First deletion leaves the member in place
	result, err := storeService.DeleteStore(ctx, "42-1")
	require.NoError(t, err)
	assert.False(t, result.MemberRemoved)

	members, err := storeRepo.LoadMembers(ctx)
	require.NoError(t, err)
	assert.Len(t, members, 1)

	// Deleting the last store cascades into the member record
	result, err = storeService.DeleteStore(ctx, "42-2")
	require.NoError(t, err)
	assert.True(t, result.MemberRemoved)

	members, err = storeRepo.LoadMembers(ctx)
	require.NoError(t, err)
	assert.Len(t, members, 0)
}

func TestStoreService_DeleteStore_ProtectedRecord(t *testing.T) {
	storeService, storeRepo := setupStoreServiceTest(t)
	ctx := context.Background()

	seedStores(t, storeRepo,
		[]model.Store{{ID: model.ProtectedStoreID, MemberID: "1000-1", Name: "Demo"}},
		[]model.Member{{MemberID: "1000-1"}},
	)

	_, err := storeService.DeleteStore(ctx, model.ProtectedStoreID)
	var protected *errors.ProtectedRecordError
	require.ErrorAs(t, err, &protected)

	// Nothing was removed
	stores, err := storeRepo.LoadStores(ctx)
	require.NoError(t, err)
	assert.Len(t, stores, 1)
}

func TestStoreService_DeleteStore_NotFound(t *testing.T) {
	storeService, _ := setupStoreServiceTest(t)

	_, err := storeService.DeleteStore(context.Background(), "99-1")
	var notFound *errors.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestStoreService_FilterStores(t *testing.T) {
	storeService, storeRepo := setupStoreServiceTest(t)
	ctx := context.Background()

	seedStores(t, storeRepo,
		[]model.Store{
			{ID: "1-1", MemberID: "1-1", Name: "Green Grocer", BusinessEmail: "green@example.com", BusinessPhone: "555-0101"},
			{ID: "2-1", MemberID: "2-1", Name: "Blue Bakery", BusinessEmail: "blue@example.com", BusinessPhone: "555-0202"},
		},
		nil,
	)

	// Name match is case-insensitive
	matched, err := storeService.FilterStores(ctx, "GREEN")
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, "1-1", matched[0].ID)

	// Phone match is raw substring
	matched, err = storeService.FilterStores(ctx, "0202")
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, "2-1", matched[0].ID)

	// Empty term returns everything
	matched, err = storeService.FilterStores(ctx, "")
	require.NoError(t, err)
	assert.Len(t, matched, 2)
}

func TestStoreService_FilterByTownAndVendors(t *testing.T) {
	storeService, storeRepo := setupStoreServiceTest(t)
	ctx := context.Background()

	seedStores(t, storeRepo,
		[]model.Store{
			{ID: "1-1", MemberID: "1-1", City: "Springfield", Vendors: []string{"Pepsi"}},
			{ID: "2-1", MemberID: "2-1", City: "Springfield", Vendors: []string{"Coke"}},
			{ID: "3-1", MemberID: "3-1", City: "Shelbyville", Vendors: []string{"Pepsi", "Coke"}},
		},
		nil,
	)

	// Town only
	matched, err := storeService.FilterByTownAndVendors(ctx, "Springfield", nil)
	require.NoError(t, err)
	assert.Len(t, matched, 2)

	// Vendor filter is OR-semantics
	matched, err = storeService.FilterByTownAndVendors(ctx, "", []string{"Pepsi", "Coke"})
	require.NoError(t, err)
	assert.Len(t, matched, 3)

	// Town and vendor combined
	matched, err = storeService.FilterByTownAndVendors(ctx, "Springfield", []string{"Pepsi"})
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, "1-1", matched[0].ID)

	// Empty selection means no vendor filter
	matched, err = storeService.FilterByTownAndVendors(ctx, "", []string{})
	require.NoError(t, err)
	assert.Len(t, matched, 3)
}

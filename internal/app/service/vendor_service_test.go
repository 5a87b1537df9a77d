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
	"github.com/kpsunited/kps-admin-backend/pkg/util"
)

func setupVendorServiceTest(t *testing.T) (VendorService, CommunicationService, repository.VendorRepository) {
	t.Helper()

	backend := storage.NewMemoryBackend(0)
	vendorRepo := repository.NewVendorRepository(backend)
	commRepo := repository.NewCommunicationRepository(backend)
	ids := util.NewIDGenerator()

	vendorService := NewVendorService(vendorRepo, ids, nil)
	commService := NewCommunicationService(commRepo, vendorRepo, ids, nil)
	return vendorService, commService, vendorRepo
}

func TestVendorService_UpsertVendor_Create(t *testing.T) {
	vendorService, _, _ := setupVendorServiceTest(t)
	ctx := context.Background()

	vendor, err := vendorService.UpsertVendor(ctx, model.Vendor{Name: "Pepsi"})
	require.NoError(t, err)
	assert.NotZero(t, vendor.ID)
	assert.Equal(t, "Pepsi", vendor.Name)

	vendors, err := vendorService.ListVendors(ctx)
	require.NoError(t, err)
	assert.Len(t, vendors, 1)
}

func TestVendorService_UpsertVendor_Update(t *testing.T) {
	vendorService, _, _ := setupVendorServiceTest(t)
	ctx := context.Background()

	created, err := vendorService.UpsertVendor(ctx, model.Vendor{Name: "Pepsi"})
	require.NoError(t, err)

	updated, err := vendorService.UpsertVendor(ctx, model.Vendor{
		ID:          created.ID,
		Name:        "PepsiCo",
		ContactName: "Sales Desk",
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "PepsiCo", updated.Name)

	vendors, err := vendorService.ListVendors(ctx)
	require.NoError(t, err)
	require.Len(t, vendors, 1)
	assert.Equal(t, "PepsiCo", vendors[0].Name)
}

func TestVendorService_UpsertVendor_Validation(t *testing.T) {
	vendorService, _, _ := setupVendorServiceTest(t)

	_, err := vendorService.UpsertVendor(context.Background(), model.Vendor{Name: "   "})
	var validation *errors.ValidationError
	assert.ErrorAs(t, err, &validation)

	_, err = vendorService.UpsertVendor(context.Background(), model.Vendor{ID: 999, Name: "Ghost"})
	var notFound *errors.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestVendorService_DeleteVendor(t *testing.T) {
	vendorService, _, _ := setupVendorServiceTest(t)
	ctx := context.Background()

	created, err := vendorService.UpsertVendor(ctx, model.Vendor{Name: "Coke"})
	require.NoError(t, err)

	require.NoError(t, vendorService.DeleteVendor(ctx, created.ID))

	vendors, err := vendorService.ListVendors(ctx)
	require.NoError(t, err)
	assert.Len(t, vendors, 0)

	var notFound *errors.NotFoundError
	assert.ErrorAs(t, vendorService.DeleteVendor(ctx, created.ID), &notFound)
}

func TestVendorService_DeleteVendor_NoCascade(t *testing.T) {
	vendorService, commService, _ := setupVendorServiceTest(t)
	ctx := context.Background()

	created, err := vendorService.UpsertVendor(ctx, model.Vendor{Name: "Coke"})
	require.NoError(t, err)

	comm, err := commService.AppendCommunication(ctx, created.ID, "email", "Quarterly pricing")
	require.NoError(t, err)
	assert.Equal(t, "Coke", comm.VendorName)

	require.NoError(t, vendorService.DeleteVendor(ctx, created.ID))

	// The logged communication keeps the stale snapshot
	comms, err := commService.ListCommunications(ctx)
	require.NoError(t, err)
	require.Len(t, comms, 1)
	assert.Equal(t, "Coke", comms[0].VendorName)
}

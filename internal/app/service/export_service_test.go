package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/kpsunited/kps-admin-backend/internal/app/model"
	"github.com/kpsunited/kps-admin-backend/internal/app/repository"
	"github.com/kpsunited/kps-admin-backend/internal/storage"
)

func setupExportServiceTest(t *testing.T) ExportService {
	t.Helper()

	backend := storage.NewMemoryBackend(0)
	storeRepo := repository.NewStoreRepository(backend)
	require.NoError(t, storeRepo.SaveStores(context.Background(), []model.Store{
		{
			ID:            "1-1",
			MemberID:      "1-1",
			Name:          "Green Grocer",
			BusinessPhone: "555-0101",
			BusinessEmail: "green@example.com",
			City:          "Springfield",
			Status:        model.StatusActive,
			Vendors:       []string{"Pepsi", "Coke"},
		},
		{
			ID:            "2-1",
			MemberID:      "2-1",
			Name:          "Blue Bakery",
			BusinessPhone: "555-0202",
			City:          "Shelbyville",
			Vendors:       []string{"Coke"},
		},
	}))

	storeService := NewStoreService(storeRepo, nil)
	return NewExportService(storeService, nil)
}

func TestExportService_StoresCSV(t *testing.T) {
	exportService := setupExportServiceTest(t)

	data, err := exportService.StoresCSV(context.Background())
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"Member ID", "Store ID", "Store Name", "Status", "Store Phone", "Store Email"}, records[0])
	assert.Equal(t, []string{"1-1", "1-1", "Green Grocer", "Active", "555-0101", "green@example.com"}, records[1])
	// Absent status exports as Pending
	assert.Equal(t, "Pending", records[2][3])
}

func TestExportService_StoresJSON(t *testing.T) {
	exportService := setupExportServiceTest(t)

	data, err := exportService.StoresJSON(context.Background())
	require.NoError(t, err)

	var rows []StoreExportRow
	require.NoError(t, json.Unmarshal(data, &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "Green Grocer", rows[0].StoreName)
	assert.Equal(t, "Active", rows[0].Status)
	assert.Equal(t, "Pending", rows[1].Status)
}

func TestExportService_EmailList(t *testing.T) {
	exportService := setupExportServiceTest(t)

	// Only stores with an email contribute; the count covers all stores
	emails, total, err := exportService.EmailList(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "green@example.com", emails)
	assert.Equal(t, 2, total)
}

func TestExportService_ReportCSV(t *testing.T) {
	exportService := setupExportServiceTest(t)

	data, err := exportService.ReportCSV(context.Background(), "", nil)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"Store Name", "City", "Vendors", "Phone", "Email"}, records[0])
	assert.Equal(t, "Pepsi; Coke", records[1][2])

	// Filtered by town
	data, err = exportService.ReportCSV(context.Background(), "Shelbyville", nil)
	require.NoError(t, err)
	records, err = csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Blue Bakery", records[1][0])
}

func TestExportService_ReportXLSX(t *testing.T) {
	exportService := setupExportServiceTest(t)

	data, err := exportService.ReportXLSX(context.Background(), "", []string{"Pepsi"})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Report")
	require.NoError(t, err)
	require.Len(t, rows, 2) // header plus the single Pepsi store
	assert.Equal(t, "Store Name", rows[0][0])
	assert.Equal(t, "Green Grocer", rows[1][0])
	assert.Equal(t, "Pepsi; Coke", rows[1][2])
}

func TestExportService_ArchiveReport_Unconfigured(t *testing.T) {
	exportService := setupExportServiceTest(t)

	_, err := exportService.ArchiveReport(context.Background(), "report.csv", "text/csv", []byte("a,b"))
	assert.Error(t, err)
}

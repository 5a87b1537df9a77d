package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/kpsunited/kps-admin-backend/internal/app/model"
	"github.com/kpsunited/kps-admin-backend/internal/storage"
	"github.com/kpsunited/kps-admin-backend/pkg/logger"
)

// StoreExportRow is the sanitized store projection used by the CSV and
// JSON downloads.
type StoreExportRow struct {
	MemberID  string `json:"memberId"`
	StoreID   string `json:"storeId"`
	StoreName string `json:"storeName"`
	Status    string `json:"status"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
}

type ExportService interface {
	StoresCSV(ctx context.Context) ([]byte, error)
	StoresJSON(ctx context.Context) ([]byte, error)
	// EmailList returns the comma-joined business emails and the number
	// of stores they came from.
	EmailList(ctx context.Context) (string, int, error)
	ReportCSV(ctx context.Context, town string, vendorNames []string) ([]byte, error)
	ReportXLSX(ctx context.Context, town string, vendorNames []string) ([]byte, error)
	// ArchiveReport uploads a generated export to the configured S3
	// bucket and returns its URL.
	ArchiveReport(ctx context.Context, filename, contentType string, data []byte) (string, error)
}

type exportService struct {
	storeService StoreService
	archive      *storage.ReportArchive
}

// NewExportService creates the export service. archive may be nil when
// no S3 bucket is configured.
func NewExportService(storeService StoreService, archive *storage.ReportArchive) ExportService {
	return &exportService{
		storeService: storeService,
		archive:      archive,
	}
}

func (s *exportService) StoresCSV(ctx context.Context) ([]byte, error) {
	stores, err := s.storeService.ListStores(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"Member ID", "Store ID", "Store Name", "Status", "Store Phone", "Store Email"}); err != nil {
		return nil, err
	}
	for _, store := range stores {
		record := []string{
			store.MemberID,
			store.ID,
			store.Name,
			string(store.EffectiveStatus()),
			store.BusinessPhone,
			store.BusinessEmail,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *exportService) StoresJSON(ctx context.Context) ([]byte, error) {
	stores, err := s.storeService.ListStores(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]StoreExportRow, 0, len(stores))
	for _, store := range stores {
		rows = append(rows, StoreExportRow{
			MemberID:  store.MemberID,
			StoreID:   store.ID,
			StoreName: store.Name,
			Status:    string(store.EffectiveStatus()),
			Phone:     store.BusinessPhone,
			Email:     store.BusinessEmail,
		})
	}
	return json.MarshalIndent(rows, "", "  ")
}

func (s *exportService) EmailList(ctx context.Context) (string, int, error) {
	stores, err := s.storeService.ListStores(ctx)
	if err != nil {
		return "", 0, err
	}

	var emails []string
	for _, store := range stores {
		if store.BusinessEmail != "" {
			emails = append(emails, store.BusinessEmail)
		}
	}
	return strings.Join(emails, ", "), len(stores), nil
}

func (s *exportService) ReportCSV(ctx context.Context, town string, vendorNames []string) ([]byte, error) {
	stores, err := s.storeService.FilterByTownAndVendors(ctx, town, vendorNames)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"Store Name", "City", "Vendors", "Phone", "Email"}); err != nil {
		return nil, err
	}
	for _, store := range stores {
		if err := w.Write(reportRow(store)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *exportService) ReportXLSX(ctx context.Context, town string, vendorNames []string) ([]byte, error) {
	stores, err := s.storeService.FilterByTownAndVendors(ctx, town, vendorNames)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			logger.Warn("Failed to close workbook", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()

	const sheet = "Report"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(sheet, "A1", &[]interface{}{"Store Name", "City", "Vendors", "Phone", "Email"}); err != nil {
		return nil, err
	}
	for i, store := range stores {
		row := reportRow(store)
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &[]interface{}{row[0], row[1], row[2], row[3], row[4]}); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *exportService) ArchiveReport(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	if s.archive == nil {
		return "", fmt.Errorf("report archive is not configured")
	}
	url, err := s.archive.Upload(ctx, filename, contentType, data)
	if err != nil {
		return "", err
	}
	logger.Info("Report archived", map[string]interface{}{
		"filename": filename,
		"url":      url,
	})
	return url, nil
}

func reportRow(store model.Store) []string {
	return []string{
		store.Name,
		store.City,
		strings.Join(store.Vendors, "; "),
		store.BusinessPhone,
		store.BusinessEmail,
	}
}

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/kpsunited/kps-admin-backend/config"
	"github.com/kpsunited/kps-admin-backend/internal/app/model"
	"github.com/kpsunited/kps-admin-backend/internal/app/repository"
	"github.com/kpsunited/kps-admin-backend/internal/storage"
)

// Seeds the demo dataset: the protected static store, its member and
// the two default vendors. An optional XLSX path imports additional
// stores from a workbook.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if cfg.Storage.Backend != "file" {
		log.Fatalf("Seeding supports the file backend only, got %q", cfg.Storage.Backend)
	}

	backend, err := storage.NewFileBackend(cfg.Storage.FilePath, cfg.Storage.QuotaBytes)
	if err != nil {
		log.Fatal("Failed to open storage file:", err)
	}
	defer backend.Close()

	ctx := context.Background()
	storeRepo := repository.NewStoreRepository(backend)
	vendorRepo := repository.NewVendorRepository(backend)

	stores := []model.Store{
		{
			ID:            model.ProtectedStoreID,
			MemberID:      "1000-1",
			Name:          "KPS Demo Store",
			BusinessType:  "Grocery",
			BusinessPhone: "555-0100",
			BusinessEmail: "demo@kpsunited.com",
			City:          "Springfield",
			Status:        model.StatusActive,
			Vendors:       []string{"Pepsi", "Coke"},
		},
	}
	members := []model.Member{
		{
			MemberID: "1000-1",
			Name:     "Demo Member",
			Email:    "demo@kpsunited.com",
			Phone:    "555-0100",
		},
	}
	vendors := []model.Vendor{
		{ID: 1, Name: "Pepsi"},
		{ID: 2, Name: "Coke"},
	}

	if len(os.Args) > 1 {
		imported, err := readStoresFromXLSX(os.Args[1])
		if err != nil {
			log.Fatal("Failed to read XLSX:", err)
		}
		fmt.Printf("Importing %d stores from %s\n", len(imported), os.Args[1])
		stores = append(stores, imported...)
	}

	if err := storeRepo.SaveStores(ctx, stores); err != nil {
		log.Fatal("Failed to seed stores:", err)
	}
	if err := storeRepo.SaveMembers(ctx, members); err != nil {
		log.Fatal("Failed to seed members:", err)
	}
	if err := vendorRepo.SaveVendors(ctx, vendors); err != nil {
		log.Fatal("Failed to seed vendors:", err)
	}

	fmt.Printf("Seeded %d stores, %d members, %d vendors into %s\n",
		len(stores), len(members), len(vendors), cfg.Storage.FilePath)
}

// readStoresFromXLSX expects columns: Store ID, Member ID, Name, City,
// Phone, Email, Vendors (semicolon separated). The first row is the
// header.
func readStoresFromXLSX(filePath string) ([]model.Store, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	var stores []model.Store
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		if len(row) < 3 || strings.TrimSpace(row[0]) == "" {
			continue
		}

		store := model.Store{
			ID:       strings.TrimSpace(row[0]),
			MemberID: strings.TrimSpace(row[1]),
			Name:     strings.TrimSpace(row[2]),
			Status:   model.StatusPending,
		}
		if len(row) > 3 {
			store.City = strings.TrimSpace(row[3])
		}
		if len(row) > 4 {
			store.BusinessPhone = strings.TrimSpace(row[4])
		}
		if len(row) > 5 {
			store.BusinessEmail = strings.TrimSpace(row[5])
		}
		if len(row) > 6 && strings.TrimSpace(row[6]) != "" {
			for _, v := range strings.Split(row[6], ";") {
				if name := strings.TrimSpace(v); name != "" {
					store.Vendors = append(store.Vendors, name)
				}
			}
		}
		stores = append(stores, store)
	}
	return stores, nil
}

package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kpsunited/kps-admin-backend/internal/errors"
	"github.com/kpsunited/kps-admin-backend/internal/storage"
)

// Persisted key space. Each key holds one JSON-encoded collection or
// singleton; the names predate this service and are shared with the
// console frontend.
const (
	KeyStores         = "userStores"
	KeyMembers        = "storeUsers"
	KeyVendors        = "adminVendors"
	KeyQueries        = "storeQueries"
	KeyCommunications = "vendorComm"
	KeyDocuments      = "adminDocs"
	KeyPromotions     = "adminPromos"
	KeyTerms          = "appTerms"
	KeySession        = "currentUser"
	KeyAdminFlag      = "adminLoggedIn"
)

// loadCollection unmarshals the collection under key into out. An absent
// key leaves out untouched (empty collection). Unparseable stored JSON
// surfaces as MalformedStateError: silently recovering to an empty
// collection here once masked data loss, because the next save would
// overwrite the real data.
func loadCollection(ctx context.Context, backend storage.Backend, key string, out any) error {
	raw, ok, err := backend.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", key, err)
	}
	if !ok {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &errors.MalformedStateError{Key: key, Err: err}
	}
	return nil
}

// saveCollection writes the whole collection back under key. Quota
// failures from the backend propagate as QuotaExceededError.
func saveCollection(ctx context.Context, backend storage.Backend, key string, in any) error {
	raw, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return backend.Set(ctx, key, raw)
}

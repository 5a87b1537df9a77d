package model

// StoreStatus is the lifecycle state of a directory store.
type StoreStatus string

const (
	StatusActive    StoreStatus = "Active"
	StatusSuspended StoreStatus = "Suspended"
	StatusPending   StoreStatus = "Pending"
)

// ProtectedStoreID is the demo fixture record that can never be deleted.
const ProtectedStoreID = "1000-1"

// Store is one directory entry. Field names follow the persisted JSON
// shape, which predates this service.
type Store struct {
	ID            string      `json:"id"`
	MemberID      string      `json:"memberId"`
	Name          string      `json:"name"`
	BusinessType  string      `json:"businessType,omitempty"`
	BusinessPhone string      `json:"businessPhone,omitempty"`
	BusinessEmail string      `json:"businessEmail,omitempty"`
	City          string      `json:"city,omitempty"`
	Status        StoreStatus `json:"status,omitempty"`
	Vendors       []string    `json:"vendors,omitempty"`
}

// EffectiveStatus treats an absent status as Pending, matching how
// legacy records were rendered.
func (s *Store) EffectiveStatus() StoreStatus {
	if s.Status == "" {
		return StatusPending
	}
	return s.Status
}

// HasVendor reports whether the store carries the named vendor.
func (s *Store) HasVendor(name string) bool {
	for _, v := range s.Vendors {
		if v == name {
			return true
		}
	}
	return false
}

// Member is an account holder owning zero or more stores via
// Store.MemberID. A member with zero stores is removed as part of the
// last store's deletion.
type Member struct {
	MemberID string `json:"memberId"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

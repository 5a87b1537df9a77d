package model

import "time"

// Vendor is a supplier stores can be linked to by name. Deleting a
// vendor never cascades: store vendor lists, communication history and
// promotion snapshots keep the stale name on purpose.
type Vendor struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Pricing      string `json:"pricing,omitempty"`
	ContactName  string `json:"contactName,omitempty"`
	ContactEmail string `json:"contactEmail,omitempty"`
	ContactPhone string `json:"contactPhone,omitempty"`
}

// UnknownVendorName is the snapshot fallback when a communication
// references a vendor id that no longer resolves.
const UnknownVendorName = "Unknown Vendor"

// Communication is one append-only log entry of contact with a vendor.
// VendorName is a snapshot taken at write time and never updated.
type Communication struct {
	ID         int64     `json:"id"`
	VendorID   int64     `json:"vendorId"`
	VendorName string    `json:"vendorName"`
	Type       string    `json:"type"`
	Message    string    `json:"message"`
	Date       time.Time `json:"date"`
}

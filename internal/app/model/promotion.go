package model

import "time"

// Promotion is a vendor campaign. Vendor holds the vendor name as a
// snapshot, not a reference.
type Promotion struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Vendor      string    `json:"vendor"`
	Image       string    `json:"image,omitempty"` // base64-encoded payload
	Date        time.Time `json:"date"`
}

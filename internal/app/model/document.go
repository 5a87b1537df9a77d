package model

import "time"

// Document is an uploaded file kept inline in the key-value store as a
// base64 payload. Size is capped before persistence because the whole
// key space shares one small quota.
type Document struct {
	ID   int64     `json:"id"`
	Name string    `json:"name"`
	Type string    `json:"type"` // MIME type
	Data string    `json:"data"` // base64-encoded payload
	Date time.Time `json:"date"`
}

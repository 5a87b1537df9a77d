package model

import "time"

// Terms is the singleton terms-of-service document. Version is a decimal
// string ("1.0", "1.1", ...) that only ever increases by 0.1 per publish.
type Terms struct {
	Version string    `json:"version"`
	Text    string    `json:"text"`
	Date    time.Time `json:"date"`
}

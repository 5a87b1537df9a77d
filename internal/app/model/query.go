package model

import "time"

// QueryStatus tracks whether a store query has been answered.
type QueryStatus string

const (
	QueryOpen    QueryStatus = "Open"
	QueryReplied QueryStatus = "Replied"
)

// Query is a support message submitted by a store.
type Query struct {
	ID        int64       `json:"id"`
	StoreName string      `json:"storeName"`
	Subject   string      `json:"subject"`
	Message   string      `json:"message"`
	Status    QueryStatus `json:"status"`
	Date      time.Time   `json:"date"`
	Reply     string      `json:"reply,omitempty"`
	ReplyDate *time.Time  `json:"replyDate,omitempty"`
}

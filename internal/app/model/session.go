package model

import "time"

// Session is the persisted currentUser record. LoginTime is epoch
// milliseconds; the session is valid for a fixed window from that
// instant.
type Session struct {
	Name      string `json:"name,omitempty"`
	Email     string `json:"email,omitempty"`
	LoginTime int64  `json:"loginTime"`
}

// LoggedInAt returns LoginTime as a time.Time.
func (s *Session) LoggedInAt() time.Time {
	return time.UnixMilli(s.LoginTime)
}

// Age returns how long ago the session was created.
func (s *Session) Age(now time.Time) time.Duration {
	return now.Sub(s.LoggedInAt())
}

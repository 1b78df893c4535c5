package domain

import "time"

// Session is a server side login session. The browser only holds a signed
// reference to it; deleting the row signs the browser out.
type Session struct {
	ID        string // ULID
	Username  string
	UserAgent string
	IPAddress string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session is no longer valid at now.
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

package notification

import "time"

// Notification is a persisted per-user notification. The row exists
// independently of whether a live connection received the push.
type Notification struct {
	ID        int64
	UserID    int64
	Message   string
	IsRead    bool
	CreatedAt time.Time
}

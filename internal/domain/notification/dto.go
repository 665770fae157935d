package notification

import "time"

// ============= Response DTOs =============

// NotificationResponse represents a notification in API responses and in the
// push payload written to live connections.
type NotificationResponse struct {
	ID        int64     `json:"id"`
	User      int64     `json:"user"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// DeleteReadResponse reports how many read notifications were removed
type DeleteReadResponse struct {
	Deleted int64 `json:"deleted"`
}

// NewNotificationResponse maps an entity to its wire representation
func NewNotificationResponse(n *Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		User:      n.UserID,
		Message:   n.Message,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}

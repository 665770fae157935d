package notification

import "context"

// Service defines the notification service interface
type Service interface {
	// Notify persists the notification row, then pushes the wire payload to
	// the recipient's live connections. Delivery is best-effort: no backing
	// registry and no open connection are both non-errors.
	Notify(ctx context.Context, userID int64, message string) (*Notification, error)

	List(ctx context.Context, userID int64) ([]NotificationResponse, error)
	MarkAsRead(ctx context.Context, userID int64, id int64) error
	DeleteRead(ctx context.Context, userID int64) (int64, error)
}

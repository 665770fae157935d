package notification

import "context"

// Repository defines the notification repository interface
type Repository interface {
	Create(ctx context.Context, n *Notification) (*Notification, error)
	GetByUserID(ctx context.Context, userID int64) ([]*Notification, error)
	MarkAsRead(ctx context.Context, id int64, userID int64) error
	DeleteRead(ctx context.Context, userID int64) (int64, error)
}

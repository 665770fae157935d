package postgresql

import (
	"context"
	"fmt"

	"github.com/worklog-hq/timesheet-backend-go/internal/domain/notification"
	"github.com/worklog-hq/timesheet-backend-go/internal/pkg/database"
)

type notificationRepository struct {
	db *database.DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *database.DB) notification.Repository {
	return &notificationRepository{db: db}
}

// Create inserts a notification row and returns it with id and timestamp
func (r *notificationRepository) Create(ctx context.Context, n *notification.Notification) (*notification.Notification, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO notifications (user_id, message, is_read)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query, n.UserID, n.Message, n.IsRead).Scan(&n.ID, &n.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	return n, nil
}

// GetByUserID retrieves a user's notifications, newest first
func (r *notificationRepository) GetByUserID(ctx context.Context, userID int64) ([]*notification.Notification, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, message, is_read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*notification.Notification
	for rows.Next() {
		var n notification.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Message, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, &n)
	}

	return notifications, rows.Err()
}

// MarkAsRead marks one notification as read, scoped to its owner
func (r *notificationRepository) MarkAsRead(ctx context.Context, id int64, userID int64) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE notifications SET is_read = true WHERE id = $1 AND user_id = $2`

	tag, err := q.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return notification.ErrNotificationNotFound
	}

	return nil
}

// DeleteRead removes all of a user's read notifications and reports the count
func (r *notificationRepository) DeleteRead(ctx context.Context, userID int64) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM notifications WHERE user_id = $1 AND is_read = true`

	tag, err := q.Exec(ctx, query, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete read notifications: %w", err)
	}

	return tag.RowsAffected(), nil
}

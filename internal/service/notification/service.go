package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/worklog-hq/timesheet-backend-go/internal/domain/notification"
	"github.com/worklog-hq/timesheet-backend-go/internal/pkg/hub"
)

type NotificationServiceImpl struct {
	notification.Repository
	// hub may be nil when the process runs without a delivery transport;
	// rows are still persisted, pushes are skipped.
	hub    *hub.Hub
	logger *slog.Logger
}

// NewNotificationService creates a new notification service
func NewNotificationService(repo notification.Repository, h *hub.Hub, logger *slog.Logger) notification.Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &NotificationServiceImpl{Repository: repo, hub: h, logger: logger}
}

// Notify implements notification.Service.
func (s *NotificationServiceImpl) Notify(ctx context.Context, userID int64, message string) (*notification.Notification, error) {
	n := &notification.Notification{
		UserID:  userID,
		Message: message,
	}

	created, err := s.Repository.Create(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("failed to persist notification: %w", err)
	}

	s.push(created)
	return created, nil
}

// push fans the wire payload out to the recipient's live connections. It
// never returns an error: delivery is best-effort and the row already exists.
func (s *NotificationServiceImpl) push(n *notification.Notification) {
	if s.hub == nil {
		return
	}

	payload, err := json.Marshal(notification.NewNotificationResponse(n))
	if err != nil {
		s.logger.Error("failed to serialize notification payload",
			"notification_id", n.ID, "error", err)
		return
	}

	s.hub.Send(hub.UserGroup(n.UserID), payload)
}

// List implements notification.Service.
func (s *NotificationServiceImpl) List(ctx context.Context, userID int64) ([]notification.NotificationResponse, error) {
	rows, err := s.Repository.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]notification.NotificationResponse, 0, len(rows))
	for _, n := range rows {
		responses = append(responses, notification.NewNotificationResponse(n))
	}

	return responses, nil
}

// MarkAsRead implements notification.Service.
func (s *NotificationServiceImpl) MarkAsRead(ctx context.Context, userID int64, id int64) error {
	return s.Repository.MarkAsRead(ctx, id, userID)
}

// DeleteRead implements notification.Service.
func (s *NotificationServiceImpl) DeleteRead(ctx context.Context, userID int64) (int64, error) {
	return s.Repository.DeleteRead(ctx, userID)
}

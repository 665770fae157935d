package message

import (
	"context"
	"log/slog"

	"github.com/worklog-hq/timesheet-backend-go/internal/domain/message"
	"github.com/worklog-hq/timesheet-backend-go/internal/domain/notification"
	"github.com/worklog-hq/timesheet-backend-go/internal/domain/user"
	"github.com/worklog-hq/timesheet-backend-go/internal/pkg/telegram"
	"github.com/worklog-hq/timesheet-backend-go/internal/pkg/validator"
)

type MessageServiceImpl struct {
	userRepository      user.Repository
	notificationService notification.Service
	relay               telegram.Service
	logger              *slog.Logger
}

// NewMessageService creates a new message relay service
func NewMessageService(
	userRepo user.Repository,
	notificationService notification.Service,
	relay telegram.Service,
	logger *slog.Logger,
) message.Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &MessageServiceImpl{
		userRepository:      userRepo,
		notificationService: notificationService,
		relay:               relay,
		logger:              logger,
	}
}

// Send implements message.Service. Every recipient is attempted; failures
// are collected and reported back, never aborting the rest of the batch.
func (s *MessageServiceImpl) Send(ctx context.Context, req message.SendMessagesRequest) (*message.SendMessagesResponse, error) {
	if validator.IsEmpty(req.Message) {
		return nil, message.ErrEmptyMessage
	}
	if len(req.Users) == 0 {
		return nil, message.ErrNoRecipients
	}

	recipients, err := s.userRepository.GetByIDs(ctx, req.Users)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]*user.User, len(recipients))
	for _, u := range recipients {
		byID[u.ID] = u
	}

	resp := &message.SendMessagesResponse{
		FailedUsers: []message.FailedRecipient{},
	}

	for _, id := range req.Users {
		recipient, ok := byID[id]
		if !ok {
			resp.FailedUsers = append(resp.FailedUsers, message.FailedRecipient{
				UserID: id, Reason: user.ErrUserNotFound.Error(),
			})
			continue
		}
		if !recipient.HasContactChannel() {
			resp.FailedUsers = append(resp.FailedUsers, message.FailedRecipient{
				UserID: id, Reason: message.ErrNoContactChannel.Error(),
			})
			continue
		}

		if err := s.relay.SendMessage(ctx, recipient.ChatID, req.Message); err != nil {
			s.logger.Warn("failed to relay message", "user_id", id, "error", err)
			resp.FailedUsers = append(resp.FailedUsers, message.FailedRecipient{
				UserID: id, Reason: err.Error(),
			})
			continue
		}

		// The in-app copy mirrors the relayed text. A persistence failure
		// here does not undo the delivered message; it just logs.
		if _, err := s.notificationService.Notify(ctx, id, req.Message); err != nil {
			s.logger.Error("failed to record relayed message", "user_id", id, "error", err)
		}

		resp.Sent++
	}

	if resp.Sent == 0 {
		return resp, message.ErrAllRecipientsFail
	}
	return resp, nil
}

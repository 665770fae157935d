package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/worklog-hq/timesheet-backend-go/internal/domain/notification"
	"github.com/worklog-hq/timesheet-backend-go/internal/handler/http/response"
)

// NotificationHandler defines the notification handler interface
type NotificationHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	MarkAsRead(w http.ResponseWriter, r *http.Request)
	DeleteRead(w http.ResponseWriter, r *http.Request)
}

type notificationHandlerImpl struct {
	notificationService notification.Service
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notificationService notification.Service) NotificationHandler {
	return &notificationHandlerImpl{notificationService: notificationService}
}

// List handles GET /api/v1/notifications
func (h *notificationHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	notifications, err := h.notificationService.List(r.Context(), getUserIDFromContext(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, notifications)
}

// MarkAsRead handles PATCH /api/v1/notifications/{id}/read
func (h *notificationHandlerImpl) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Notification id must be numeric", nil)
		return
	}

	if err := h.notificationService.MarkAsRead(r.Context(), getUserIDFromContext(r), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Notification marked as read", nil)
}

// DeleteRead handles DELETE /api/v1/notifications/read
func (h *notificationHandlerImpl) DeleteRead(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.notificationService.DeleteRead(r.Context(), getUserIDFromContext(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Read notifications deleted", notification.DeleteReadResponse{Deleted: deleted})
}

package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/worklog-hq/timesheet-backend-go/internal/domain/message"
	"github.com/worklog-hq/timesheet-backend-go/internal/handler/http/response"
)

// MessageHandler defines the message relay handler interface
type MessageHandler interface {
	Send(w http.ResponseWriter, r *http.Request)
}

type messageHandlerImpl struct {
	messageService message.Service
}

// NewMessageHandler creates a new message handler
func NewMessageHandler(messageService message.Service) MessageHandler {
	return &messageHandlerImpl{messageService: messageService}
}

// Send handles POST /api/v1/messages. A batch where only some recipients
// could be reached answers 207 with the failed list; a fully failed batch
// is a bad request.
func (h *messageHandlerImpl) Send(w http.ResponseWriter, r *http.Request) {
	var req message.SendMessagesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.messageService.Send(r.Context(), req)
	if err != nil {
		if errors.Is(err, message.ErrAllRecipientsFail) {
			response.BadRequest(w, "Message could not be delivered to any recipient", nil)
			return
		}
		response.HandleError(w, err)
		return
	}

	if len(result.FailedUsers) > 0 {
		response.MultiStatus(w, "Message delivered to some recipients", result)
		return
	}

	response.SuccessWithMessage(w, "Message delivered", result)
}

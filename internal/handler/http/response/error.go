package response

import (
	"errors"
	"net/http"

	"github.com/worklog-hq/timesheet-backend-go/internal/domain/message"
	"github.com/worklog-hq/timesheet-backend-go/internal/domain/notification"
	"github.com/worklog-hq/timesheet-backend-go/internal/domain/timesheet"
	"github.com/worklog-hq/timesheet-backend-go/internal/domain/user"
	"github.com/worklog-hq/timesheet-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUsernameExists):
		Conflict(w, "Username already taken")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrInvalidRoleKind):
		BadRequest(w, "Invalid role kind", nil)
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")

	// Timesheet domain errors
	case errors.Is(err, timesheet.ErrTimesheetNotFound):
		NotFound(w, "Timesheet not found")
	case errors.Is(err, timesheet.ErrNotTimesheetOwner):
		Forbidden(w, "Timesheet does not belong to user")
	case errors.Is(err, timesheet.ErrInvalidReviewAction):
		BadRequest(w, "Review action must be approve or reject", nil)
	case errors.Is(err, timesheet.ErrNoTimesheetsSelected):
		BadRequest(w, "No timesheets selected", nil)
	case errors.Is(err, timesheet.ErrMixedReviewCohort):
		BadRequest(w, "Timesheets must belong to one user and one date", nil)
	case errors.Is(err, timesheet.ErrTimesheetNotEditable):
		Conflict(w, "Timesheet can no longer be edited")

	// Notification domain errors
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")

	// Message relay errors
	case errors.Is(err, message.ErrEmptyMessage):
		BadRequest(w, "Message must not be empty", nil)
	case errors.Is(err, message.ErrNoRecipients):
		BadRequest(w, "At least one recipient is required", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}

package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/jwtauth/v5"
	"github.com/worklog-hq/timesheet-backend-go/internal/domain/timesheet"
	"github.com/worklog-hq/timesheet-backend-go/internal/handler/http/response"
	"github.com/worklog-hq/timesheet-backend-go/internal/pkg/validator"
)

// TimesheetHandler defines the timesheet handler interface
type TimesheetHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	ListByDate(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	BulkDelete(w http.ResponseWriter, r *http.Request)
	Submit(w http.ResponseWriter, r *http.Request)
	PendingReview(w http.ResponseWriter, r *http.Request)
	Review(w http.ResponseWriter, r *http.Request)
	Approved(w http.ResponseWriter, r *http.Request)
}

type timesheetHandlerImpl struct {
	timesheetService timesheet.Service
}

// NewTimesheetHandler creates a new timesheet handler
func NewTimesheetHandler(timesheetService timesheet.Service) TimesheetHandler {
	return &timesheetHandlerImpl{timesheetService: timesheetService}
}

// getUserIDFromContext extracts the numeric user_id claim from the verified token
func getUserIDFromContext(r *http.Request) int64 {
	_, claims, _ := jwtauth.FromContext(r.Context())
	switch id := claims["user_id"].(type) {
	case float64:
		return int64(id)
	case int64:
		return id
	case json.Number:
		n, _ := id.Int64()
		return n
	}
	return 0
}

// Create handles POST /api/v1/timesheets
func (h *timesheetHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req timesheet.CreateTimesheetsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	created, err := h.timesheetService.Create(r.Context(), getUserIDFromContext(r), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Timesheets created successfully", created)
}

// ListByDate handles GET /api/v1/timesheets?date=YYYY-MM-DD
func (h *timesheetHandlerImpl) ListByDate(w http.ResponseWriter, r *http.Request) {
	date, ok := validator.IsValidDate(r.URL.Query().Get("date"))
	if !ok {
		response.BadRequest(w, "Query parameter date must be a valid date (YYYY-MM-DD)", nil)
		return
	}

	timesheets, err := h.timesheetService.ListByDate(r.Context(), getUserIDFromContext(r), date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, timesheets)
}

// Update handles PUT /api/v1/timesheets
func (h *timesheetHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req timesheet.UpdateTimesheetsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	updated, err := h.timesheetService.Update(r.Context(), getUserIDFromContext(r), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Timesheets updated successfully", updated)
}

// BulkDelete handles POST /api/v1/timesheets/bulk-delete
func (h *timesheetHandlerImpl) BulkDelete(w http.ResponseWriter, r *http.Request) {
	var req timesheet.DeleteTimesheetsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	deleted, err := h.timesheetService.Delete(r.Context(), getUserIDFromContext(r), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Timesheets deleted successfully", map[string]int64{"deleted": deleted})
}

// Submit handles POST /api/v1/timesheets/submit
func (h *timesheetHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	var req timesheet.SubmitTimesheetsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.timesheetService.Submit(r.Context(), getUserIDFromContext(r), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Timesheets submitted for review", result)
}

// PendingReview handles GET /api/v1/timesheets/pending-review
func (h *timesheetHandlerImpl) PendingReview(w http.ResponseWriter, r *http.Request) {
	groups, err := h.timesheetService.ListPendingReview(r.Context(), getUserIDFromContext(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, groups)
}

// Review handles POST /api/v1/timesheets/review
func (h *timesheetHandlerImpl) Review(w http.ResponseWriter, r *http.Request) {
	var req timesheet.ReviewTimesheetsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.timesheetService.Review(r.Context(), getUserIDFromContext(r), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Timesheets reviewed successfully", result)
}

// Approved handles GET /api/v1/timesheets/approved
func (h *timesheetHandlerImpl) Approved(w http.ResponseWriter, r *http.Request) {
	var filter timesheet.ApprovedFilter

	if raw := r.URL.Query().Get("user"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.BadRequest(w, "Query parameter user must be numeric", nil)
			return
		}
		filter.UserID = &id
	}
	if raw := r.URL.Query().Get("date"); raw != "" {
		date, ok := validator.IsValidDate(raw)
		if !ok {
			response.BadRequest(w, "Query parameter date must be a valid date (YYYY-MM-DD)", nil)
			return
		}
		filter.Date = &date
	}
	if raw := r.URL.Query().Get("month"); raw != "" {
		month, ok := validator.IsValidMonth(raw)
		if !ok {
			response.BadRequest(w, "Query parameter month must be a valid month (YYYY-MM)", nil)
			return
		}
		filter.Month = &month
	}

	timesheets, err := h.timesheetService.ListApproved(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, timesheets)
}

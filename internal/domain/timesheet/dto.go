package timesheet

import "time"

// ============= Request DTOs =============

// CreateTimesheetEntry is one entry in a bulk create request
type CreateTimesheetEntry struct {
	Date        string  `json:"date"`
	Task        string  `json:"task"`
	Description string  `json:"description"`
	Hours       float64 `json:"hours"`
	SubmittedTo *int64  `json:"submitted_to"`
}

// CreateTimesheetsRequest represents a bulk create request
type CreateTimesheetsRequest struct {
	Timesheets []CreateTimesheetEntry `json:"timesheets"`
}

// UpdateTimesheetEntry is one entry in a bulk edit request
type UpdateTimesheetEntry struct {
	ID          int64   `json:"id"`
	Task        string  `json:"task"`
	Description string  `json:"description"`
	Hours       float64 `json:"hours"`
	SubmittedTo *int64  `json:"submitted_to"`
}

// UpdateTimesheetsRequest represents a bulk edit request
type UpdateTimesheetsRequest struct {
	Timesheets []UpdateTimesheetEntry `json:"timesheets"`
}

// DeleteTimesheetsRequest represents a bulk delete request
type DeleteTimesheetsRequest struct {
	IDs []int64 `json:"ids"`
}

// SubmitTimesheetsRequest represents a submit request
type SubmitTimesheetsRequest struct {
	TimesheetIDs []int64 `json:"timesheet_ids"`
}

// ReviewTimesheetsRequest represents a review request
type ReviewTimesheetsRequest struct {
	TimesheetIDs []int64 `json:"timesheet_ids"`
	Action       string  `json:"action"`
	Feedback     string  `json:"feedback"`
}

// ApprovedFilter carries the optional filters for the approved listing
type ApprovedFilter struct {
	UserID *int64
	Date   *time.Time
	Month  *time.Time
}

// ============= Response DTOs =============

// TimesheetResponse represents a timesheet in API responses
type TimesheetResponse struct {
	ID          int64      `json:"id"`
	Date        string     `json:"date"`
	Task        string     `json:"task"`
	Description string     `json:"description"`
	Hours       float64    `json:"hours"`
	CreatedBy   int64      `json:"created_by"`
	SubmittedTo *int64     `json:"submitted_to"`
	Status      Status     `json:"status"`
	SubmittedAt *time.Time `json:"submitted_at"`
	ApprovedAt  *time.Time `json:"approved_at"`
	RejectedAt  *time.Time `json:"rejected_at"`
	// Feedback is the rejection feedback joined from the review row. Only
	// populated for Rejected entries.
	Feedback string `json:"feedback,omitempty"`
}

// SubmitTimesheetsResponse reports the outcome of a submit call
type SubmitTimesheetsResponse struct {
	Submitted []int64 `json:"submitted"`
	Skipped   []int64 `json:"skipped"`
}

// ReviewTimesheetsResponse reports the outcome of a review call
type ReviewTimesheetsResponse struct {
	TimesheetIDs []int64 `json:"timesheet_ids"`
	Status       Status  `json:"status"`
}

// PendingReviewGroup is one owner's pending entries for one date
type PendingReviewGroup struct {
	Date       string              `json:"date"`
	UserID     int64               `json:"user_id"`
	Username   string              `json:"username"`
	Timesheets []TimesheetResponse `json:"timesheets"`
}

// NewTimesheetResponse maps an entity to its API representation
func NewTimesheetResponse(t *Timesheet) TimesheetResponse {
	return TimesheetResponse{
		ID:          t.ID,
		Date:        t.Date.Format("2006-01-02"),
		Task:        t.Task,
		Description: t.Description,
		Hours:       t.Hours,
		CreatedBy:   t.CreatedBy,
		SubmittedTo: t.SubmittedTo,
		Status:      t.Status,
		SubmittedAt: t.SubmittedAt,
		ApprovedAt:  t.ApprovedAt,
		RejectedAt:  t.RejectedAt,
	}
}

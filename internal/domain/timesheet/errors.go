package timesheet

import "errors"

var (
	ErrTimesheetNotFound     = errors.New("timesheet not found")
	ErrNotTimesheetOwner     = errors.New("timesheet does not belong to user")
	ErrInvalidReviewAction   = errors.New("review action must be approve or reject")
	ErrNoTimesheetsSelected  = errors.New("no timesheets selected")
	ErrMixedReviewCohort     = errors.New("timesheets must belong to one user and one date")
	ErrTimesheetNotEditable  = errors.New("timesheet can no longer be edited")
	ErrInvalidTimesheetInput = errors.New("invalid timesheet input")
)

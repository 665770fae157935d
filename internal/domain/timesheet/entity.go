package timesheet

import "time"

// Status is the review lifecycle state of a timesheet.
type Status string

const (
	StatusDraft     Status = "Draft"
	StatusSubmitted Status = "Submitted"
	StatusApproved  Status = "Approved"
	StatusRejected  Status = "Rejected"
)

// Review actions accepted by the review operation.
const (
	ActionApprove = "approve"
	ActionReject  = "reject"
)

// StatusForAction maps a review action to the resulting status.
func StatusForAction(action string) (Status, bool) {
	switch action {
	case ActionApprove:
		return StatusApproved, true
	case ActionReject:
		return StatusRejected, true
	default:
		return "", false
	}
}

type Timesheet struct {
	ID          int64
	Date        time.Time
	Task        string
	Description string
	Hours       float64
	CreatedBy   int64
	// SubmittedTo is the reviewer the entry was routed to. Nil means the
	// entry was never submitted to anyone and stays out of review queues.
	SubmittedTo *int64
	Status      Status
	SubmittedAt *time.Time
	ApprovedAt  *time.Time
	RejectedAt  *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Review is the per-user per-date review record. At most one exists for a
// given (ReviewedUser, ReviewDate) pair; a later review overwrites it.
type Review struct {
	ID           int64
	ReviewedUser int64
	ReviewDate   time.Time
	Action       string
	Feedback     string
	ReviewedBy   *int64
	ReviewedAt   time.Time
}

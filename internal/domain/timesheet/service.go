package timesheet

import (
	"context"
	"time"
)

// Service defines the timesheet workflow interface
type Service interface {
	// Owner CRUD
	Create(ctx context.Context, ownerID int64, req CreateTimesheetsRequest) ([]TimesheetResponse, error)
	ListByDate(ctx context.Context, ownerID int64, date time.Time) ([]TimesheetResponse, error)
	Update(ctx context.Context, ownerID int64, req UpdateTimesheetsRequest) ([]TimesheetResponse, error)
	Delete(ctx context.Context, ownerID int64, req DeleteTimesheetsRequest) (int64, error)

	// Submit routes the caller's draft entries to their reviewers. Entries
	// with no reviewer are skipped, not failed. Each distinct reviewer whose
	// entries changed status is notified exactly once per call.
	Submit(ctx context.Context, ownerID int64, req SubmitTimesheetsRequest) (*SubmitTimesheetsResponse, error)

	// Review applies approve or reject to one cohort (same owner, same date)
	// atomically, upserts the single review record for that cohort, and
	// notifies the owner once.
	Review(ctx context.Context, reviewerID int64, req ReviewTimesheetsRequest) (*ReviewTimesheetsResponse, error)

	// Reviewer listings
	ListPendingReview(ctx context.Context, reviewerID int64) ([]PendingReviewGroup, error)
	ListApproved(ctx context.Context, filter ApprovedFilter) ([]TimesheetResponse, error)
}

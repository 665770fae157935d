package timesheet

import (
	"context"
	"time"
)

// Repository defines the timesheet repository interface
type Repository interface {
	CreateBatch(ctx context.Context, timesheets []*Timesheet) ([]*Timesheet, error)
	GetByID(ctx context.Context, id int64) (*Timesheet, error)
	GetByIDs(ctx context.Context, ids []int64) ([]*Timesheet, error)
	GetByOwnerAndDate(ctx context.Context, ownerID int64, date time.Time) ([]*Timesheet, error)
	GetPendingByReviewer(ctx context.Context, reviewerID int64) ([]*Timesheet, error)
	GetApproved(ctx context.Context, filter ApprovedFilter) ([]*Timesheet, error)
	Update(ctx context.Context, t *Timesheet) error
	DeleteBatch(ctx context.Context, ids []int64, ownerID int64) (int64, error)

	// MarkSubmitted stamps status and submitted_at on the given rows.
	MarkSubmitted(ctx context.Context, ids []int64, submittedAt time.Time) error
	// MarkReviewed stamps the terminal status and its timestamp on the given
	// rows, clearing the opposite timestamp.
	MarkReviewed(ctx context.Context, ids []int64, status Status, reviewedAt time.Time) error
}

// ReviewRepository defines the review record repository interface
type ReviewRepository interface {
	// Upsert inserts or overwrites the single review row keyed by
	// (reviewed_user, review_date).
	Upsert(ctx context.Context, review *Review) (*Review, error)
	GetByUserAndDate(ctx context.Context, userID int64, date time.Time) (*Review, error)
	GetByUserAndDates(ctx context.Context, userID int64, dates []time.Time) ([]*Review, error)
}

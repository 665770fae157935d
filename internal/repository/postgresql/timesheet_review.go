package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/worklog-hq/timesheet-backend-go/internal/domain/timesheet"
	"github.com/worklog-hq/timesheet-backend-go/internal/pkg/database"
)

type timesheetReviewRepository struct {
	db *database.DB
}

// NewTimesheetReviewRepository creates a new review record repository
func NewTimesheetReviewRepository(db *database.DB) timesheet.ReviewRepository {
	return &timesheetReviewRepository{db: db}
}

const reviewColumns = `id, reviewed_user, review_date, action, feedback, reviewed_by, reviewed_at`

func scanReview(row pgx.Row) (*timesheet.Review, error) {
	var rv timesheet.Review
	err := row.Scan(
		&rv.ID,
		&rv.ReviewedUser,
		&rv.ReviewDate,
		&rv.Action,
		&rv.Feedback,
		&rv.ReviewedBy,
		&rv.ReviewedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rv, nil
}

// Upsert inserts or overwrites the single review row for a cohort. The
// unique constraint on (reviewed_user, review_date) makes a second review
// last-write-wins instead of appending history.
func (r *timesheetReviewRepository) Upsert(ctx context.Context, review *timesheet.Review) (*timesheet.Review, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		INSERT INTO timesheet_reviews (reviewed_user, review_date, action, feedback, reviewed_by, reviewed_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (reviewed_user, review_date)
		DO UPDATE SET action = EXCLUDED.action,
		              feedback = EXCLUDED.feedback,
		              reviewed_by = EXCLUDED.reviewed_by,
		              reviewed_at = EXCLUDED.reviewed_at
		RETURNING %s
	`, reviewColumns)

	upserted, err := scanReview(q.QueryRow(ctx, query,
		review.ReviewedUser,
		review.ReviewDate,
		review.Action,
		review.Feedback,
		review.ReviewedBy,
		review.ReviewedAt,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert review: %w", err)
	}

	return upserted, nil
}

// GetByUserAndDate retrieves the review record for one cohort, nil if none
func (r *timesheetReviewRepository) GetByUserAndDate(ctx context.Context, userID int64, date time.Time) (*timesheet.Review, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s FROM timesheet_reviews
		WHERE reviewed_user = $1 AND review_date = $2
	`, reviewColumns)

	rv, err := scanReview(q.QueryRow(ctx, query, userID, date))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}

	return rv, nil
}

// GetByUserAndDates retrieves review records for several dates at once
func (r *timesheetReviewRepository) GetByUserAndDates(ctx context.Context, userID int64, dates []time.Time) ([]*timesheet.Review, error) {
	if len(dates) == 0 {
		return nil, nil
	}

	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s FROM timesheet_reviews
		WHERE reviewed_user = $1 AND review_date = ANY($2)
	`, reviewColumns)

	rows, err := q.Query(ctx, query, userID, dates)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	var reviews []*timesheet.Review
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, rv)
	}

	return reviews, rows.Err()
}

package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/worklog-hq/timesheet-backend-go/internal/domain/timesheet"
	"github.com/worklog-hq/timesheet-backend-go/internal/pkg/database"
)

type timesheetRepository struct {
	db *database.DB
}

// NewTimesheetRepository creates a new timesheet repository
func NewTimesheetRepository(db *database.DB) timesheet.Repository {
	return &timesheetRepository{db: db}
}

const timesheetColumns = `
	id, date, task, description, hours, created_by, submitted_to, status,
	submitted_at, approved_at, rejected_at, created_at, updated_at
`

func scanTimesheet(row pgx.Row) (*timesheet.Timesheet, error) {
	var t timesheet.Timesheet
	var status string

	err := row.Scan(
		&t.ID,
		&t.Date,
		&t.Task,
		&t.Description,
		&t.Hours,
		&t.CreatedBy,
		&t.SubmittedTo,
		&status,
		&t.SubmittedAt,
		&t.ApprovedAt,
		&t.RejectedAt,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.Status = timesheet.Status(status)
	return &t, nil
}

func (r *timesheetRepository) queryTimesheets(ctx context.Context, query string, args ...interface{}) ([]*timesheet.Timesheet, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query timesheets: %w", err)
	}
	defer rows.Close()

	var timesheets []*timesheet.Timesheet
	for rows.Next() {
		t, err := scanTimesheet(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan timesheet: %w", err)
		}
		timesheets = append(timesheets, t)
	}

	return timesheets, rows.Err()
}

// CreateBatch inserts multiple timesheets and returns them with generated ids
func (r *timesheetRepository) CreateBatch(ctx context.Context, timesheets []*timesheet.Timesheet) ([]*timesheet.Timesheet, error) {
	if len(timesheets) == 0 {
		return nil, nil
	}

	q := GetQuerier(ctx, r.db)

	valueStrings := make([]string, 0, len(timesheets))
	valueArgs := make([]interface{}, 0, len(timesheets)*7)

	for i, t := range timesheets {
		base := i * 7
		valueStrings = append(valueStrings, fmt.Sprintf(
			"($%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7,
		))
		valueArgs = append(valueArgs,
			t.Date,
			t.Task,
			t.Description,
			t.Hours,
			t.CreatedBy,
			t.SubmittedTo,
			string(t.Status),
		)
	}

	query := fmt.Sprintf(`
		INSERT INTO timesheets (date, task, description, hours, created_by, submitted_to, status)
		VALUES %s
		RETURNING %s
	`, strings.Join(valueStrings, ", "), timesheetColumns)

	rows, err := q.Query(ctx, query, valueArgs...)
	if err != nil {
		return nil, fmt.Errorf("failed to batch create timesheets: %w", err)
	}
	defer rows.Close()

	var created []*timesheet.Timesheet
	for rows.Next() {
		t, err := scanTimesheet(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan timesheet: %w", err)
		}
		created = append(created, t)
	}

	return created, rows.Err()
}

// GetByID retrieves a timesheet by id
func (r *timesheetRepository) GetByID(ctx context.Context, id int64) (*timesheet.Timesheet, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM timesheets WHERE id = $1`, timesheetColumns)

	t, err := scanTimesheet(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, timesheet.ErrTimesheetNotFound
		}
		return nil, fmt.Errorf("failed to get timesheet: %w", err)
	}

	return t, nil
}

// GetByIDs retrieves multiple timesheets. The caller is responsible for
// checking that every requested id came back.
func (r *timesheetRepository) GetByIDs(ctx context.Context, ids []int64) ([]*timesheet.Timesheet, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := fmt.Sprintf(`
		SELECT %s FROM timesheets
		WHERE id = ANY($1)
		ORDER BY id
	`, timesheetColumns)

	return r.queryTimesheets(ctx, query, ids)
}

// GetByOwnerAndDate lists one owner's entries for a day
func (r *timesheetRepository) GetByOwnerAndDate(ctx context.Context, ownerID int64, date time.Time) ([]*timesheet.Timesheet, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM timesheets
		WHERE created_by = $1 AND date = $2
		ORDER BY id
	`, timesheetColumns)

	return r.queryTimesheets(ctx, query, ownerID, date)
}

// GetPendingByReviewer lists submitted entries routed to a reviewer
func (r *timesheetRepository) GetPendingByReviewer(ctx context.Context, reviewerID int64) ([]*timesheet.Timesheet, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM timesheets
		WHERE submitted_to = $1 AND status = $2
		ORDER BY date DESC, created_by, id
	`, timesheetColumns)

	return r.queryTimesheets(ctx, query, reviewerID, string(timesheet.StatusSubmitted))
}

// GetApproved lists approved entries matching the optional filters
func (r *timesheetRepository) GetApproved(ctx context.Context, filter timesheet.ApprovedFilter) ([]*timesheet.Timesheet, error) {
	conditions := []string{"status = $1"}
	args := []interface{}{string(timesheet.StatusApproved)}

	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		conditions = append(conditions, fmt.Sprintf("created_by = $%d", len(args)))
	}
	if filter.Date != nil {
		args = append(args, *filter.Date)
		conditions = append(conditions, fmt.Sprintf("date = $%d", len(args)))
	}
	if filter.Month != nil {
		args = append(args, *filter.Month)
		conditions = append(conditions, fmt.Sprintf("date_trunc('month', date) = date_trunc('month', $%d::date)", len(args)))
	}

	query := fmt.Sprintf(`
		SELECT %s FROM timesheets
		WHERE %s
		ORDER BY date DESC, created_by, id
	`, timesheetColumns, strings.Join(conditions, " AND "))

	return r.queryTimesheets(ctx, query, args...)
}

// Update rewrites the editable fields of a single timesheet
func (r *timesheetRepository) Update(ctx context.Context, t *timesheet.Timesheet) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE timesheets
		SET task = $1, description = $2, hours = $3, submitted_to = $4, updated_at = now()
		WHERE id = $5
	`

	tag, err := q.Exec(ctx, query, t.Task, t.Description, t.Hours, t.SubmittedTo, t.ID)
	if err != nil {
		return fmt.Errorf("failed to update timesheet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return timesheet.ErrTimesheetNotFound
	}

	return nil
}

// DeleteBatch removes the owner's rows among ids and reports how many
func (r *timesheetRepository) DeleteBatch(ctx context.Context, ids []int64, ownerID int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM timesheets WHERE id = ANY($1) AND created_by = $2`

	tag, err := q.Exec(ctx, query, ids, ownerID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete timesheets: %w", err)
	}

	return tag.RowsAffected(), nil
}

// MarkSubmitted stamps the submitted state on the given rows
func (r *timesheetRepository) MarkSubmitted(ctx context.Context, ids []int64, submittedAt time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE timesheets
		SET status = $1, submitted_at = $2, updated_at = now()
		WHERE id = ANY($3)
	`

	_, err := q.Exec(ctx, query, string(timesheet.StatusSubmitted), submittedAt, ids)
	if err != nil {
		return fmt.Errorf("failed to mark timesheets submitted: %w", err)
	}

	return nil
}

// MarkReviewed stamps the terminal state on the given rows. The opposite
// timestamp is cleared so approved_at/rejected_at never coexist.
func (r *timesheetRepository) MarkReviewed(ctx context.Context, ids []int64, status timesheet.Status, reviewedAt time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	q := GetQuerier(ctx, r.db)

	var query string
	switch status {
	case timesheet.StatusApproved:
		query = `
			UPDATE timesheets
			SET status = $1, approved_at = $2, rejected_at = NULL, updated_at = now()
			WHERE id = ANY($3)
		`
	case timesheet.StatusRejected:
		query = `
			UPDATE timesheets
			SET status = $1, rejected_at = $2, approved_at = NULL, updated_at = now()
			WHERE id = ANY($3)
		`
	default:
		return fmt.Errorf("status %q is not a review outcome", status)
	}

	_, err := q.Exec(ctx, query, string(status), reviewedAt, ids)
	if err != nil {
		return fmt.Errorf("failed to mark timesheets reviewed: %w", err)
	}

	return nil
}

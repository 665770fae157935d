package timesheet

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/worklog-hq/timesheet-backend-go/internal/domain/notification"
	"github.com/worklog-hq/timesheet-backend-go/internal/domain/timesheet"
	"github.com/worklog-hq/timesheet-backend-go/internal/domain/user"
	"github.com/worklog-hq/timesheet-backend-go/internal/pkg/database"
	"github.com/worklog-hq/timesheet-backend-go/internal/pkg/telegram"
	"github.com/worklog-hq/timesheet-backend-go/internal/pkg/validator"
	"github.com/worklog-hq/timesheet-backend-go/internal/repository/postgresql"
)

type TimesheetServiceImpl struct {
	db *database.DB
	timesheet.Repository
	timesheet.ReviewRepository
	userRepository      user.Repository
	notificationService notification.Service
	relay               telegram.Service
	logger              *slog.Logger
}

// NewTimesheetService creates a new timesheet service
func NewTimesheetService(
	db *database.DB,
	repo timesheet.Repository,
	reviewRepo timesheet.ReviewRepository,
	userRepo user.Repository,
	notificationService notification.Service,
	relay telegram.Service,
	logger *slog.Logger,
) timesheet.Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &TimesheetServiceImpl{
		db:                  db,
		Repository:          repo,
		ReviewRepository:    reviewRepo,
		userRepository:      userRepo,
		notificationService: notificationService,
		relay:               relay,
		logger:              logger,
	}
}

// Create implements timesheet.Service.
func (s *TimesheetServiceImpl) Create(ctx context.Context, ownerID int64, req timesheet.CreateTimesheetsRequest) ([]timesheet.TimesheetResponse, error) {
	if len(req.Timesheets) == 0 {
		return nil, timesheet.ErrNoTimesheetsSelected
	}

	entities := make([]*timesheet.Timesheet, 0, len(req.Timesheets))
	for i, entry := range req.Timesheets {
		date, ok := validator.IsValidDate(entry.Date)
		if !ok {
			return nil, validator.ValidationErrors{{
				Field:   fmt.Sprintf("timesheets[%d].date", i),
				Message: "must be a valid date (YYYY-MM-DD)",
			}}
		}
		if validator.IsEmpty(entry.Task) {
			return nil, validator.ValidationErrors{{
				Field:   fmt.Sprintf("timesheets[%d].task", i),
				Message: "is required",
			}}
		}
		if entry.Hours <= 0 {
			return nil, validator.ValidationErrors{{
				Field:   fmt.Sprintf("timesheets[%d].hours", i),
				Message: "must be greater than zero",
			}}
		}

		entities = append(entities, &timesheet.Timesheet{
			Date:        date,
			Task:        entry.Task,
			Description: entry.Description,
			Hours:       entry.Hours,
			CreatedBy:   ownerID,
			SubmittedTo: entry.SubmittedTo,
			Status:      timesheet.StatusDraft,
		})
	}

	created, err := s.Repository.CreateBatch(ctx, entities)
	if err != nil {
		return nil, err
	}

	responses := make([]timesheet.TimesheetResponse, 0, len(created))
	for _, t := range created {
		responses = append(responses, timesheet.NewTimesheetResponse(t))
	}
	return responses, nil
}

// ListByDate implements timesheet.Service. Rejected entries carry the
// rejection feedback joined from the cohort's review record.
func (s *TimesheetServiceImpl) ListByDate(ctx context.Context, ownerID int64, date time.Time) ([]timesheet.TimesheetResponse, error) {
	rows, err := s.Repository.GetByOwnerAndDate(ctx, ownerID, date)
	if err != nil {
		return nil, err
	}

	var feedback string
	for _, t := range rows {
		if t.Status == timesheet.StatusRejected {
			review, err := s.ReviewRepository.GetByUserAndDate(ctx, ownerID, date)
			if err != nil {
				return nil, err
			}
			if review != nil {
				feedback = review.Feedback
			}
			break
		}
	}

	responses := make([]timesheet.TimesheetResponse, 0, len(rows))
	for _, t := range rows {
		resp := timesheet.NewTimesheetResponse(t)
		if t.Status == timesheet.StatusRejected {
			resp.Feedback = feedback
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

// Update implements timesheet.Service. Only the caller's Draft and Rejected
// entries can be edited; submitted and approved rows are locked.
func (s *TimesheetServiceImpl) Update(ctx context.Context, ownerID int64, req timesheet.UpdateTimesheetsRequest) ([]timesheet.TimesheetResponse, error) {
	if len(req.Timesheets) == 0 {
		return nil, timesheet.ErrNoTimesheetsSelected
	}

	ids := make([]int64, 0, len(req.Timesheets))
	for _, entry := range req.Timesheets {
		ids = append(ids, entry.ID)
	}

	existing, err := s.Repository.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]*timesheet.Timesheet, len(existing))
	for _, t := range existing {
		byID[t.ID] = t
	}

	for _, entry := range req.Timesheets {
		t, ok := byID[entry.ID]
		if !ok {
			return nil, timesheet.ErrTimesheetNotFound
		}
		if t.CreatedBy != ownerID {
			return nil, timesheet.ErrNotTimesheetOwner
		}
		if t.Status == timesheet.StatusSubmitted || t.Status == timesheet.StatusApproved {
			return nil, timesheet.ErrTimesheetNotEditable
		}
	}

	var updated []timesheet.TimesheetResponse
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		for _, entry := range req.Timesheets {
			t := byID[entry.ID]
			t.Task = entry.Task
			t.Description = entry.Description
			t.Hours = entry.Hours
			t.SubmittedTo = entry.SubmittedTo

			if err := s.Repository.Update(txCtx, t); err != nil {
				return err
			}
			updated = append(updated, timesheet.NewTimesheetResponse(t))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Delete implements timesheet.Service.
func (s *TimesheetServiceImpl) Delete(ctx context.Context, ownerID int64, req timesheet.DeleteTimesheetsRequest) (int64, error) {
	if len(req.IDs) == 0 {
		return 0, timesheet.ErrNoTimesheetsSelected
	}
	return s.Repository.DeleteBatch(ctx, req.IDs, ownerID)
}

// Submit implements timesheet.Service.
//
// Entries without a reviewer stay Draft and are reported as skipped, never
// failed. Entries already in a terminal state are skipped too: there is no
// reopen path. Each distinct reviewer is notified at most once per call, and
// only when at least one of their entries actually changed status.
func (s *TimesheetServiceImpl) Submit(ctx context.Context, ownerID int64, req timesheet.SubmitTimesheetsRequest) (*timesheet.SubmitTimesheetsResponse, error) {
	if len(req.TimesheetIDs) == 0 {
		return nil, timesheet.ErrNoTimesheetsSelected
	}

	rows, err := s.Repository.GetByIDs(ctx, req.TimesheetIDs)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]*timesheet.Timesheet, len(rows))
	for _, t := range rows {
		byID[t.ID] = t
	}
	for _, id := range req.TimesheetIDs {
		t, ok := byID[id]
		if !ok {
			return nil, timesheet.ErrTimesheetNotFound
		}
		if t.CreatedBy != ownerID {
			return nil, timesheet.ErrNotTimesheetOwner
		}
	}

	resp := &timesheet.SubmitTimesheetsResponse{}
	submitIDs := make([]int64, 0, len(rows))
	// reviewer id -> whether any of their entries left Draft in this call
	reviewerChanged := make(map[int64]bool)
	// reviewer id -> date of their first touched entry, for the message
	reviewerDate := make(map[int64]time.Time)

	for _, id := range req.TimesheetIDs {
		t := byID[id]
		switch {
		case t.SubmittedTo == nil:
			resp.Skipped = append(resp.Skipped, id)
		case t.Status == timesheet.StatusApproved || t.Status == timesheet.StatusRejected:
			resp.Skipped = append(resp.Skipped, id)
		default:
			submitIDs = append(submitIDs, id)
			reviewer := *t.SubmittedTo
			if t.Status == timesheet.StatusDraft {
				reviewerChanged[reviewer] = true
			} else if _, seen := reviewerChanged[reviewer]; !seen {
				reviewerChanged[reviewer] = false
			}
			if _, seen := reviewerDate[reviewer]; !seen {
				reviewerDate[reviewer] = t.Date
			}
		}
	}

	if len(submitIDs) > 0 {
		if err := s.Repository.MarkSubmitted(ctx, submitIDs, time.Now()); err != nil {
			return nil, err
		}
		resp.Submitted = submitIDs
	}

	if len(reviewerChanged) > 0 {
		owner, err := s.userRepository.GetByID(ctx, ownerID)
		if err != nil {
			return nil, err
		}

		reviewerIDs := make([]int64, 0, len(reviewerChanged))
		for id := range reviewerChanged {
			reviewerIDs = append(reviewerIDs, id)
		}
		reviewers, err := s.userRepository.GetByIDs(ctx, reviewerIDs)
		if err != nil {
			return nil, err
		}

		for _, reviewer := range reviewers {
			if !reviewerChanged[reviewer.ID] {
				continue
			}
			msg := fmt.Sprintf("%s submitted timesheets for %s.",
				owner.Username, reviewerDate[reviewer.ID].Format("2006-01-02"))
			s.notify(ctx, reviewer, msg)
		}
	}

	return resp, nil
}

// Review implements timesheet.Service.
//
// All referenced entries must exist and form one cohort: same owner, same
// date. The status update and the review upsert commit atomically; the
// owner is notified once after commit.
func (s *TimesheetServiceImpl) Review(ctx context.Context, reviewerID int64, req timesheet.ReviewTimesheetsRequest) (*timesheet.ReviewTimesheetsResponse, error) {
	status, ok := timesheet.StatusForAction(req.Action)
	if !ok {
		return nil, timesheet.ErrInvalidReviewAction
	}
	if len(req.TimesheetIDs) == 0 {
		return nil, timesheet.ErrNoTimesheetsSelected
	}

	rows, err := s.Repository.GetByIDs(ctx, req.TimesheetIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]*timesheet.Timesheet, len(rows))
	for _, t := range rows {
		byID[t.ID] = t
	}
	for _, id := range req.TimesheetIDs {
		if _, ok := byID[id]; !ok {
			return nil, timesheet.ErrTimesheetNotFound
		}
	}

	cohortOwner := rows[0].CreatedBy
	cohortDate := rows[0].Date
	for _, t := range rows[1:] {
		if t.CreatedBy != cohortOwner || !t.Date.Equal(cohortDate) {
			return nil, timesheet.ErrMixedReviewCohort
		}
	}

	now := time.Now()
	feedback := ""
	if req.Action == timesheet.ActionReject {
		feedback = req.Feedback
	}

	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := s.Repository.MarkReviewed(txCtx, req.TimesheetIDs, status, now); err != nil {
			return err
		}

		review := &timesheet.Review{
			ReviewedUser: cohortOwner,
			ReviewDate:   cohortDate,
			Action:       req.Action,
			Feedback:     feedback,
			ReviewedBy:   &reviewerID,
			ReviewedAt:   now,
		}
		_, err := s.ReviewRepository.Upsert(txCtx, review)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.notifyReviewOutcome(ctx, reviewerID, cohortOwner, cohortDate, req.Action, feedback)

	return &timesheet.ReviewTimesheetsResponse{
		TimesheetIDs: req.TimesheetIDs,
		Status:       status,
	}, nil
}

// notifyReviewOutcome sends the single per-call owner notification. Failures
// here never unwind the committed review.
func (s *TimesheetServiceImpl) notifyReviewOutcome(ctx context.Context, reviewerID, ownerID int64, date time.Time, action, feedback string) {
	owner, err := s.userRepository.GetByID(ctx, ownerID)
	if err != nil {
		s.logger.Error("failed to load timesheet owner for notification",
			"user_id", ownerID, "error", err)
		return
	}

	reviewerName := fmt.Sprintf("user %d", reviewerID)
	if reviewer, err := s.userRepository.GetByID(ctx, reviewerID); err == nil {
		reviewerName = reviewer.Username
	}

	var msg string
	if action == timesheet.ActionApprove {
		msg = fmt.Sprintf("Your timesheets for %s have been approved by %s.",
			date.Format("2006-01-02"), reviewerName)
	} else {
		msg = fmt.Sprintf("Your timesheets for %s were rejected by %s.\nFeedback: %s",
			date.Format("2006-01-02"), reviewerName, feedback)
	}

	s.notify(ctx, owner, msg)
}

// notify creates the notification row, pushes it to live connections and
// relays it to the recipient's contact channel. A recipient without a
// contact channel gets nothing; the workflow outcome stands either way.
func (s *TimesheetServiceImpl) notify(ctx context.Context, recipient *user.User, msg string) {
	if !recipient.HasContactChannel() {
		return
	}

	if _, err := s.notificationService.Notify(ctx, recipient.ID, msg); err != nil {
		s.logger.Error("failed to create notification",
			"user_id", recipient.ID, "error", err)
		return
	}

	if s.relay == nil {
		return
	}
	if err := s.relay.SendMessage(ctx, recipient.ChatID, msg); err != nil {
		s.logger.Warn("failed to relay notification",
			"user_id", recipient.ID, "error", err)
	}
}

// ListPendingReview implements timesheet.Service.
func (s *TimesheetServiceImpl) ListPendingReview(ctx context.Context, reviewerID int64) ([]timesheet.PendingReviewGroup, error) {
	rows, err := s.Repository.GetPendingByReviewer(ctx, reviewerID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []timesheet.PendingReviewGroup{}, nil
	}

	ownerIDs := make([]int64, 0)
	seen := make(map[int64]struct{})
	for _, t := range rows {
		if _, ok := seen[t.CreatedBy]; !ok {
			seen[t.CreatedBy] = struct{}{}
			ownerIDs = append(ownerIDs, t.CreatedBy)
		}
	}

	owners, err := s.userRepository.GetByIDs(ctx, ownerIDs)
	if err != nil {
		return nil, err
	}
	usernames := make(map[int64]string, len(owners))
	for _, u := range owners {
		usernames[u.ID] = u.Username
	}

	// Group by date then owner, preserving the repository's ordering
	var groups []timesheet.PendingReviewGroup
	index := make(map[string]int)
	for _, t := range rows {
		key := t.Date.Format("2006-01-02") + "/" + fmt.Sprint(t.CreatedBy)
		i, ok := index[key]
		if !ok {
			groups = append(groups, timesheet.PendingReviewGroup{
				Date:     t.Date.Format("2006-01-02"),
				UserID:   t.CreatedBy,
				Username: usernames[t.CreatedBy],
			})
			i = len(groups) - 1
			index[key] = i
		}
		groups[i].Timesheets = append(groups[i].Timesheets, timesheet.NewTimesheetResponse(t))
	}

	return groups, nil
}

// ListApproved implements timesheet.Service.
func (s *TimesheetServiceImpl) ListApproved(ctx context.Context, filter timesheet.ApprovedFilter) ([]timesheet.TimesheetResponse, error) {
	rows, err := s.Repository.GetApproved(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]timesheet.TimesheetResponse, 0, len(rows))
	for _, t := range rows {
		responses = append(responses, timesheet.NewTimesheetResponse(t))
	}
	return responses, nil
}

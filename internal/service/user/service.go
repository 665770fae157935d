package user

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/worklog-hq/timesheet-backend-go/internal/domain/user"
	"github.com/worklog-hq/timesheet-backend-go/internal/pkg/database"
	"github.com/worklog-hq/timesheet-backend-go/internal/pkg/validator"
	"github.com/worklog-hq/timesheet-backend-go/internal/repository/postgresql"
)

type UserServiceImpl struct {
	db *database.DB
	user.Repository
}

// NewUserService creates a new user service
func NewUserService(db *database.DB, repo user.Repository) user.Service {
	return &UserServiceImpl{db: db, Repository: repo}
}

func validRoleKind(kind user.RoleKind) bool {
	switch kind {
	case user.RoleAdmin, user.RoleTeamLeader, user.RoleMember, user.RoleNone:
		return true
	}
	return false
}

// Create implements user.Service. The user row and its role record are
// written in one transaction; there is no deferred role creation.
func (s *UserServiceImpl) Create(ctx context.Context, req user.CreateUserRequest) (*user.User, error) {
	var errs validator.ValidationErrors
	if validator.IsEmpty(req.Username) {
		errs = append(errs, validator.ValidationError{Field: "username", Message: "is required"})
	}
	if !validator.IsValidEmail(req.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "is not a valid email address"})
	}
	if len(errs) > 0 {
		return nil, errs
	}

	if req.Role == "" {
		req.Role = user.RoleNone
	}
	if !validRoleKind(req.Role) {
		return nil, user.ErrInvalidRoleKind
	}

	u := &user.User{
		Username:  req.Username,
		Email:     req.Email,
		Firstname: req.Firstname,
		Lastname:  req.Lastname,
		ChatID:    req.ChatID,
	}

	err := postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		created, err := s.Repository.Create(txCtx, u)
		if err != nil {
			return err
		}

		role := &user.Role{
			UserID: created.ID,
			Kind:   req.Role,
			Extra:  req.RoleExtra,
		}
		if _, err := s.Repository.CreateRole(txCtx, role); err != nil {
			return err
		}

		created.Role = *role
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return u, nil
}

// GetByID implements user.Service.
func (s *UserServiceImpl) GetByID(ctx context.Context, id int64) (*user.User, error) {
	return s.Repository.GetByID(ctx, id)
}

package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/worklog-hq/timesheet-backend-go/internal/domain/user"
	"github.com/worklog-hq/timesheet-backend-go/internal/pkg/database"
)

type userRepository struct {
	db *database.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) user.Repository {
	return &userRepository{db: db}
}

// Create inserts a user row and returns it with the generated id
func (r *userRepository) Create(ctx context.Context, u *user.User) (*user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO users (username, email, firstname, lastname, chat_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		u.Username,
		u.Email,
		u.Firstname,
		u.Lastname,
		u.ChatID,
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return u, nil
}

// CreateRole inserts the role record for a user
func (r *userRepository) CreateRole(ctx context.Context, role *user.Role) (*user.Role, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO roles (user_id, kind, extra)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`

	err := q.QueryRow(ctx, query, role.UserID, string(role.Kind), role.Extra).Scan(&role.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create role: %w", err)
	}

	return role, nil
}

const userSelectColumns = `
	u.id, u.username, u.email, u.firstname, u.lastname, u.chat_id, u.created_at,
	COALESCE(r.kind, 'none'), COALESCE(r.extra, ''), COALESCE(r.created_at, u.created_at)
`

func scanUser(row pgx.Row) (*user.User, error) {
	var u user.User
	var kind string

	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.Firstname,
		&u.Lastname,
		&u.ChatID,
		&u.CreatedAt,
		&kind,
		&u.Role.Extra,
		&u.Role.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	u.Role.UserID = u.ID
	u.Role.Kind = user.RoleKind(kind)
	return &u, nil
}

// GetByID retrieves a user with its role record
func (r *userRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM users u
		LEFT JOIN roles r ON r.user_id = u.id
		WHERE u.id = $1
	`, userSelectColumns)

	u, err := scanUser(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return u, nil
}

// GetByIDs retrieves multiple users with their role records. Missing ids are
// simply absent from the result, not an error.
func (r *userRepository) GetByIDs(ctx context.Context, ids []int64) ([]*user.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM users u
		LEFT JOIN roles r ON r.user_id = u.id
		WHERE u.id = ANY($1)
		ORDER BY u.id
	`, userSelectColumns)

	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []*user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}

	return users, rows.Err()
}

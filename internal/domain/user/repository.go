package user

import "context"

// Repository defines the user persistence interface
type Repository interface {
	Create(ctx context.Context, u *User) (*User, error)
	CreateRole(ctx context.Context, role *Role) (*Role, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByIDs(ctx context.Context, ids []int64) ([]*User, error)
}

// Service defines user management operations.
type Service interface {
	// Create persists the user and its role record in one transaction and
	// returns both; the role is assigned exactly once, here.
	Create(ctx context.Context, req CreateUserRequest) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
}

// CreateUserRequest carries the fields for user creation.
type CreateUserRequest struct {
	Username  string   `json:"username"`
	Email     string   `json:"email"`
	Firstname string   `json:"firstname"`
	Lastname  string   `json:"lastname"`
	ChatID    string   `json:"chat_id"`
	Role      RoleKind `json:"role"`
	RoleExtra string   `json:"role_extra"`
}

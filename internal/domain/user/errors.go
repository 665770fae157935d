package user

import "errors"

var (
	ErrUserNotFound           = errors.New("user not found")
	ErrUsernameExists         = errors.New("username already taken")
	ErrEmailExists            = errors.New("email already registered")
	ErrInvalidRoleKind        = errors.New("invalid role kind")
	ErrAdminPrivilegeRequired = errors.New("admin privilege required")
)

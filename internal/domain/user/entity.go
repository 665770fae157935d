package user

import "time"

// RoleKind is the tagged variant a user is assigned exactly once, at
// creation time. There is no dynamic role probing after that.
type RoleKind string

const (
	RoleAdmin      RoleKind = "admin"       // Can review submitted timesheets
	RoleTeamLeader RoleKind = "team_leader" // Leads a team, submits like a member
	RoleMember     RoleKind = "member"      // Regular member
	RoleNone       RoleKind = "none"        // No role record
)

// Role is the role record created alongside a user.
type Role struct {
	UserID    int64
	Kind      RoleKind
	Extra     string
	CreatedAt time.Time
}

type User struct {
	ID        int64
	Username  string
	Email     string
	Firstname string
	Lastname  string
	// ChatID is the outbound relay address. Empty means the user cannot be
	// reached over the relay and workflow notifications for them are
	// suppressed, never failed.
	ChatID    string
	CreatedAt time.Time

	// Joined role record
	Role Role
}

// FullName returns the display name for outbound messages.
func (u *User) FullName() string {
	if u.Firstname == "" && u.Lastname == "" {
		return u.Username
	}
	if u.Lastname == "" {
		return u.Firstname
	}
	return u.Firstname + " " + u.Lastname
}

// HasContactChannel reports whether the user can receive relay messages.
func (u *User) HasContactChannel() bool {
	return u.ChatID != ""
}

// IsAdmin checks if the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role.Kind == RoleAdmin
}

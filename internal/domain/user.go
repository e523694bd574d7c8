package domain

import (
	"time"

	"github.com/google/uuid"
)

// Roles a user can hold. Only admins and staff members may reply to or be
// assigned quotes; customers never have accounts in this system.
const (
	RoleAdmin = "admin"
	RoleStaff = "staff-member"
)

// User is a dashboard account (admin or staff member).
// Authentication is handled upstream; this service only reads the directory
// to resolve reply senders and assignees.
type User struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// Name returns the display name used in reply threads and emails.
func (u User) Name() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// CanReply reports whether the user's role permits replying to quotes.
func (u User) CanReply() bool {
	return u.Role == RoleAdmin || u.Role == RoleStaff
}

package domain

import "time"

// Admin models a content administrator. Role is populated when the admin is
// loaded together with its role; a nil Role means no role is assigned.
type Admin struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	FirstName    *string
	LastName     *string
	IsActive     bool
	RoleID       *int64
	Role         *Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

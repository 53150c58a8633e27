package domain

import "time"

// User is the domain model for student accounts.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	FirstName    *string
	LastName     *string
	Phone        *string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FullName joins the optional name parts for display.
func (u *User) FullName() string {
	first := deref(u.FirstName)
	last := deref(u.LastName)
	switch {
	case first != "" && last != "":
		return first + " " + last
	case first != "":
		return first
	default:
		return last
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

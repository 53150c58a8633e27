package domain

import (
	"strings"
	"time"
)

// Role groups permissions granted to admins. Names are unique; the
// permissions slice is a set with no duplicates.
type Role struct {
	ID          int64
	Name        string
	Description *string
	Permissions []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasPermission reports whether the role grants the named permission.
func (r *Role) HasPermission(name string) bool {
	if r == nil {
		return false
	}
	for _, p := range r.Permissions {
		if p == name {
			return true
		}
	}
	return false
}

// NormalizePermissions trims whitespace, drops empty entries and removes
// duplicates while preserving first-occurrence order.
func NormalizePermissions(perms []string) []string {
	out := make([]string, 0, len(perms))
	seen := make(map[string]struct{}, len(perms))
	for _, p := range perms {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

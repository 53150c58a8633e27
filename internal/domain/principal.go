package domain

// PrincipalType differentiates user and admin tokens.
type PrincipalType string

const (
	PrincipalTypeUser  PrincipalType = "user"
	PrincipalTypeAdmin PrincipalType = "admin"
)

// UserPrincipal is the sanitized view of an authenticated user. It never
// carries the password hash; optional profile fields default to empty.
type UserPrincipal struct {
	ID        int64
	Username  string
	Email     string
	FirstName string
	LastName  string
	Phone     string
	IsActive  bool
}

// NewUserPrincipal builds the sanitized view from a stored user.
func NewUserPrincipal(u *User) *UserPrincipal {
	return &UserPrincipal{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: deref(u.FirstName),
		LastName:  deref(u.LastName),
		Phone:     deref(u.Phone),
		IsActive:  u.IsActive,
	}
}

// AdminPrincipal is the sanitized view of an authenticated admin, including
// the eagerly loaded role. Role is nil for admins without one.
type AdminPrincipal struct {
	ID        int64
	Username  string
	Email     string
	FirstName string
	LastName  string
	IsActive  bool
	Role      *Role
}

// NewAdminPrincipal builds the sanitized view from a stored admin.
func NewAdminPrincipal(a *Admin) *AdminPrincipal {
	return &AdminPrincipal{
		ID:        a.ID,
		Username:  a.Username,
		Email:     a.Email,
		FirstName: deref(a.FirstName),
		LastName:  deref(a.LastName),
		IsActive:  a.IsActive,
		Role:      a.Role,
	}
}

// Permissions flattens the role's permission set. Admins without a role have
// no permissions.
func (p *AdminPrincipal) Permissions() []string {
	if p == nil || p.Role == nil {
		return []string{}
	}
	return p.Role.Permissions
}

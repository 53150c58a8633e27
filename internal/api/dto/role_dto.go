package dto

import "time"

// CreateRoleRequest payload.
type CreateRoleRequest struct {
	Name        string   `json:"name" validate:"required,max=100"`
	Description *string  `json:"description"`
	Permissions []string `json:"permissions"`
}

// UpdateRoleRequest payload; nil fields are left unchanged.
type UpdateRoleRequest struct {
	Name        *string   `json:"name" validate:"omitempty,max=100"`
	Description *string   `json:"description"`
	Permissions *[]string `json:"permissions"`
}

// RoleResponse full role view.
type RoleResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Permissions []string  `json:"permissions"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateAdminRequest payload for new admin accounts.
type CreateAdminRequest struct {
	Username  string  `json:"username" validate:"required,min=3,max=50"`
	Email     string  `json:"email" validate:"required,email"`
	Password  string  `json:"password" validate:"required,min=8"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	RoleID    *int64  `json:"role_id"`
}

// AssignRoleRequest payload; a null role_id detaches the current role.
type AssignRoleRequest struct {
	RoleID *int64 `json:"role_id"`
}

package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/campus-union/cms-service/internal/domain"
	"github.com/campus-union/cms-service/internal/repository"
	apperrors "github.com/campus-union/cms-service/pkg/util"
)

// RoleService manages admin roles and their permission sets.
type RoleService struct {
	roles repository.RoleRepository
}

// NewRoleService builds the service.
func NewRoleService(roles repository.RoleRepository) *RoleService {
	return &RoleService{roles: roles}
}

// CreateRoleInput carries the fields for a new role.
type CreateRoleInput struct {
	Name        string
	Description *string
	Permissions []string
}

// UpdateRoleInput carries optional updates; nil fields are unchanged.
type UpdateRoleInput struct {
	Name        *string
	Description *string
	Permissions *[]string
}

// Create adds a role. Names are unique; permissions are deduplicated.
func (s *RoleService) Create(ctx context.Context, input CreateRoleInput) (*domain.Role, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("role name is required", nil)
	}

	if _, err := s.roles.GetByName(ctx, name); err == nil {
		return nil, apperrors.NewConflict("role name already exists", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	role := &domain.Role{
		Name:        name,
		Description: input.Description,
		Permissions: domain.NormalizePermissions(input.Permissions),
	}
	if err := s.roles.Create(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

// Update applies partial changes to a role.
func (s *RoleService) Update(ctx context.Context, id int64, input UpdateRoleInput) (*domain.Role, error) {
	role, err := s.roles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("role", nil)
		}
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperrors.NewValidationError("role name is required", nil)
		}
		if name != role.Name {
			if _, err := s.roles.GetByName(ctx, name); err == nil {
				return nil, apperrors.NewConflict("role name already exists", nil)
			} else if !errors.Is(err, pgx.ErrNoRows) {
				return nil, err
			}
			role.Name = name
		}
	}
	if input.Description != nil {
		role.Description = input.Description
	}
	if input.Permissions != nil {
		role.Permissions = domain.NormalizePermissions(*input.Permissions)
	}

	if err := s.roles.Update(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

// Get fetches a role by id.
func (s *RoleService) Get(ctx context.Context, id int64) (*domain.Role, error) {
	role, err := s.roles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("role", nil)
		}
		return nil, err
	}
	return role, nil
}

// List returns all roles ordered by name.
func (s *RoleService) List(ctx context.Context) ([]domain.Role, error) {
	return s.roles.List(ctx)
}

// Delete removes a role. Admins referencing it fall back to no role.
func (s *RoleService) Delete(ctx context.Context, id int64) error {
	if err := s.roles.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("role", nil)
		}
		return err
	}
	return nil
}

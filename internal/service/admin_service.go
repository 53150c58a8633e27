package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/campus-union/cms-service/internal/auth"
	"github.com/campus-union/cms-service/internal/domain"
	"github.com/campus-union/cms-service/internal/repository"
	apperrors "github.com/campus-union/cms-service/pkg/util"
)

// AdminService manages admin accounts and role assignment.
type AdminService struct {
	admins     repository.AdminRepository
	roles      repository.RoleRepository
	bcryptCost int
}

// NewAdminService builds the service.
func NewAdminService(admins repository.AdminRepository, roles repository.RoleRepository, bcryptCost int) *AdminService {
	return &AdminService{admins: admins, roles: roles, bcryptCost: bcryptCost}
}

// CreateAdminInput carries the fields for a new admin account.
type CreateAdminInput struct {
	Username  string
	Email     string
	Password  string
	FirstName *string
	LastName  *string
	RoleID    *int64
}

// Create adds an admin account, optionally with an initial role.
func (s *AdminService) Create(ctx context.Context, input CreateAdminInput) (*domain.Admin, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if _, err := s.admins.GetByUsernameWithRole(ctx, username); err == nil {
		return nil, apperrors.NewConflict("username already taken", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if _, err := s.admins.GetByIdentifierWithRole(ctx, email); err == nil {
		return nil, apperrors.NewConflict("email already registered", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	if input.RoleID != nil {
		if _, err := s.roles.GetByID(ctx, *input.RoleID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewNotFound("role", nil)
			}
			return nil, err
		}
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	admin := &domain.Admin{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		IsActive:     true,
		RoleID:       input.RoleID,
	}
	if err := s.admins.Create(ctx, admin); err != nil {
		return nil, err
	}
	return s.admins.GetByIDWithRole(ctx, admin.ID)
}

// List returns admin accounts with their roles joined.
func (s *AdminService) List(ctx context.Context, limit, offset int) ([]domain.Admin, error) {
	return s.admins.List(ctx, limit, offset)
}

// Get fetches one admin with its role.
func (s *AdminService) Get(ctx context.Context, id int64) (*domain.Admin, error) {
	admin, err := s.admins.GetByIDWithRole(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("admin", nil)
		}
		return nil, err
	}
	return admin, nil
}

// AssignRole sets or clears an admin's role. A nil roleID detaches the
// current role.
func (s *AdminService) AssignRole(ctx context.Context, adminID int64, roleID *int64) (*domain.Admin, error) {
	if roleID != nil {
		if _, err := s.roles.GetByID(ctx, *roleID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewNotFound("role", nil)
			}
			return nil, err
		}
	}

	if err := s.admins.SetRole(ctx, adminID, roleID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("admin", nil)
		}
		return nil, err
	}
	return s.admins.GetByIDWithRole(ctx, adminID)
}

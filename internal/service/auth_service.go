package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/campus-union/cms-service/internal/auth"
	"github.com/campus-union/cms-service/internal/config"
	"github.com/campus-union/cms-service/internal/domain"
	"github.com/campus-union/cms-service/internal/repository"
	apperrors "github.com/campus-union/cms-service/pkg/util"
)

// AuthService coordinates registration and login flows.
type AuthService struct {
	users      repository.UserRepository
	admins     repository.AdminRepository
	tokens     *auth.TokenManager
	bcryptCost int
	logger     *zap.Logger
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	UserRepo  repository.UserRepository
	AdminRepo repository.AdminRepository
	Tokens    *auth.TokenManager
	Logger    *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		admins:     deps.AdminRepo,
		tokens:     deps.Tokens,
		bcryptCost: cfg.Auth.BcryptCost,
		logger:     deps.Logger,
	}
}

// RegisterUserInput carries the fields for a new student account.
type RegisterUserInput struct {
	Username  string
	Email     string
	Password  string
	FirstName *string
	LastName  *string
	Phone     *string
}

// RegisterUser creates a new student account and signs it in.
func (s *AuthService) RegisterUser(ctx context.Context, input RegisterUserInput) (*domain.User, string, time.Time, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return nil, "", time.Time{}, apperrors.NewConflict("username already taken", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, "", time.Time{}, err
	}
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, "", time.Time{}, apperrors.NewConflict("email already registered", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, "", time.Time{}, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Phone:        input.Phone,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.tokens.Issue(user.Username, domain.PrincipalTypeUser, time.Now())
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// LoginUser authenticates a student by username or email. Unknown
// identifiers and wrong passwords fail identically so the response does
// not reveal which accounts exist.
func (s *AuthService) LoginUser(ctx context.Context, identifier, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByIdentifier(ctx, strings.TrimSpace(identifier))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewUnauthenticated("invalid credentials")
		}
		return nil, "", time.Time{}, err
	}
	if !auth.VerifyPassword(password, user.PasswordHash) {
		return nil, "", time.Time{}, apperrors.NewUnauthenticated("invalid credentials")
	}

	token, exp, err := s.tokens.Issue(user.Username, domain.PrincipalTypeUser, time.Now())
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// LoginAdmin authenticates an admin by username or email. Credentials
// are checked before the active flag so a probe cannot distinguish a
// disabled account from a wrong password without knowing the password.
func (s *AuthService) LoginAdmin(ctx context.Context, identifier, password string) (*domain.Admin, string, time.Time, error) {
	admin, err := s.admins.GetByIdentifierWithRole(ctx, strings.TrimSpace(identifier))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewUnauthenticated("invalid credentials")
		}
		return nil, "", time.Time{}, err
	}
	if !auth.VerifyPassword(password, admin.PasswordHash) {
		return nil, "", time.Time{}, apperrors.NewUnauthenticated("invalid credentials")
	}
	if !admin.IsActive {
		return nil, "", time.Time{}, apperrors.NewForbidden("admin account is inactive")
	}
	if admin.Role == nil {
		s.logger.Warn("admin has no role assigned", zap.String("username", admin.Username))
	}

	token, exp, err := s.tokens.Issue(admin.Username, domain.PrincipalTypeAdmin, time.Now())
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return admin, token, exp, nil
}

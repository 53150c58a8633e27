package auth

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/campus-union/cms-service/internal/domain"
	"github.com/campus-union/cms-service/internal/repository"
	apperrors "github.com/campus-union/cms-service/pkg/util"
)

// Resolver turns bearer tokens into principals. Outward failures are
// deliberately uniform; the specific reason is only logged.
type Resolver struct {
	tokens *TokenManager
	users  repository.UserRepository
	admins repository.AdminRepository
	logger *zap.Logger
}

// NewResolver constructs a resolver.
func NewResolver(tokens *TokenManager, users repository.UserRepository, admins repository.AdminRepository, logger *zap.Logger) *Resolver {
	return &Resolver{tokens: tokens, users: users, admins: admins, logger: logger}
}

// ResolveUser verifies a user token and loads the matching account.
// Inactive users still resolve; deactivation gates admin access, not
// student access.
func (r *Resolver) ResolveUser(ctx context.Context, token string, now time.Time) (*domain.UserPrincipal, error) {
	claims, err := r.tokens.Verify(token, now)
	if err != nil {
		r.logger.Debug("user token rejected", zap.Error(err))
		return nil, apperrors.NewUnauthenticated("could not validate credentials")
	}
	if claims.PrincipalType != domain.PrincipalTypeUser {
		r.logger.Debug("user token rejected", zap.Error(ErrTokenWrongType))
		return nil, apperrors.NewUnauthenticated("could not validate credentials")
	}

	user, err := r.users.GetByUsername(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug("user token subject not found", zap.String("username", claims.Subject))
			return nil, apperrors.NewUnauthenticated("could not validate credentials")
		}
		return nil, apperrors.MapError(err)
	}
	return domain.NewUserPrincipal(user), nil
}

// ResolveAdmin verifies an admin token and loads the matching account
// with its role. Inactive admins are rejected with a forbidden error; an
// admin without a role resolves with empty permissions.
func (r *Resolver) ResolveAdmin(ctx context.Context, token string, now time.Time) (*domain.AdminPrincipal, error) {
	claims, err := r.tokens.Verify(token, now)
	if err != nil {
		r.logger.Debug("admin token rejected", zap.Error(err))
		return nil, apperrors.NewUnauthenticated("could not validate admin credentials")
	}
	if claims.PrincipalType != domain.PrincipalTypeAdmin {
		r.logger.Debug("admin token rejected", zap.Error(ErrTokenWrongType))
		return nil, apperrors.NewUnauthenticated("could not validate admin credentials")
	}

	admin, err := r.admins.GetByUsernameWithRole(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug("admin token subject not found", zap.String("username", claims.Subject))
			return nil, apperrors.NewUnauthenticated("could not validate admin credentials")
		}
		return nil, apperrors.MapError(err)
	}
	if !admin.IsActive {
		return nil, apperrors.NewForbidden("admin account is inactive")
	}
	if admin.Role == nil {
		r.logger.Warn("admin has no role assigned", zap.String("username", admin.Username))
	}
	return domain.NewAdminPrincipal(admin), nil
}

package auth

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/campus-union/cms-service/internal/domain"
	apperrors "github.com/campus-union/cms-service/pkg/util"
)

const (
	userKey  = "auth_user"
	adminKey = "auth_admin"
)

// Middleware guards routes behind bearer token authentication.
type Middleware struct {
	resolver *Resolver
}

// NewMiddleware constructs middleware around a resolver.
func NewMiddleware(resolver *Resolver) *Middleware {
	return &Middleware{resolver: resolver}
}

// RequireUser authenticates a student token and stores the principal in
// request locals.
func (m *Middleware) RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := bearerToken(c)
		if err != nil {
			return err
		}
		principal, err := m.resolver.ResolveUser(c.Context(), token, time.Now())
		if err != nil {
			return err
		}
		c.Locals(userKey, principal)
		return c.Next()
	}
}

// RequireAdmin authenticates an admin token and stores the principal in
// request locals.
func (m *Middleware) RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := bearerToken(c)
		if err != nil {
			return err
		}
		principal, err := m.resolver.ResolveAdmin(c.Context(), token, time.Now())
		if err != nil {
			return err
		}
		c.Locals(adminKey, principal)
		return c.Next()
	}
}

func bearerToken(c *fiber.Ctx) (string, error) {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return "", apperrors.NewUnauthenticated("missing authorization header")
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", apperrors.NewUnauthenticated("invalid authorization header")
	}
	return parts[1], nil
}

// UserFromContext retrieves the authenticated user principal.
func UserFromContext(c *fiber.Ctx) (*domain.UserPrincipal, bool) {
	val := c.Locals(userKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*domain.UserPrincipal)
	return principal, ok
}

// AdminFromContext retrieves the authenticated admin principal.
func AdminFromContext(c *fiber.Ctx) (*domain.AdminPrincipal, bool) {
	val := c.Locals(adminKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*domain.AdminPrincipal)
	return principal, ok
}

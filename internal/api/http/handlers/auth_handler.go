package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campus-union/cms-service/internal/api/dto"
	"github.com/campus-union/cms-service/internal/auth"
	"github.com/campus-union/cms-service/internal/domain"
	"github.com/campus-union/cms-service/internal/service"
	apperrors "github.com/campus-union/cms-service/pkg/util"
)

// AuthHandler exposes registration, login and identity endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Register handles POST /auth/users/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.UserRegisterRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	user, token, exp, err := h.auth.RegisterUser(c.Context(), service.RegisterUserInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"user": userResponse(user),
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// LoginUser handles POST /auth/users/login.
func (h *AuthHandler) LoginUser(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	user, token, exp, err := h.auth.LoginUser(c.Context(), req.Identifier, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user": userResponse(user),
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// LoginAdmin handles POST /auth/admin/login.
func (h *AuthHandler) LoginAdmin(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	admin, token, exp, err := h.auth.LoginAdmin(c.Context(), req.Identifier, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"admin": adminResponse(admin),
			"auth":  dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// MeUser handles GET /auth/users/me.
func (h *AuthHandler) MeUser(c *fiber.Ctx) error {
	principal, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("could not validate credentials")
	}
	return c.JSON(fiber.Map{"data": userPrincipalResponse(principal)})
}

// MeAdmin handles GET /auth/admin/me.
func (h *AuthHandler) MeAdmin(c *fiber.Ctx) error {
	principal, ok := auth.AdminFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("could not validate admin credentials")
	}
	return c.JSON(fiber.Map{"data": adminPrincipalResponse(principal)})
}

func userResponse(user *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Phone:     user.Phone,
		IsActive:  user.IsActive,
	}
}

func adminResponse(admin *domain.Admin) dto.AdminResponse {
	resp := dto.AdminResponse{
		ID:        admin.ID,
		Username:  admin.Username,
		Email:     admin.Email,
		FirstName: admin.FirstName,
		LastName:  admin.LastName,
		IsActive:  admin.IsActive,
	}
	if admin.Role != nil {
		role := roleResponse(admin.Role)
		resp.Role = &role
	}
	return resp
}

func userPrincipalResponse(principal *domain.UserPrincipal) fiber.Map {
	return fiber.Map{
		"id":         principal.ID,
		"username":   principal.Username,
		"email":      principal.Email,
		"first_name": principal.FirstName,
		"last_name":  principal.LastName,
		"phone":      principal.Phone,
		"is_active":  principal.IsActive,
	}
}

func adminPrincipalResponse(principal *domain.AdminPrincipal) fiber.Map {
	resp := fiber.Map{
		"id":          principal.ID,
		"username":    principal.Username,
		"email":       principal.Email,
		"first_name":  principal.FirstName,
		"last_name":   principal.LastName,
		"is_active":   principal.IsActive,
		"permissions": principal.Permissions(),
	}
	if principal.Role != nil {
		role := roleResponse(principal.Role)
		resp["role"] = role
	}
	return resp
}

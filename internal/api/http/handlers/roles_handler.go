package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campus-union/cms-service/internal/api/dto"
	"github.com/campus-union/cms-service/internal/domain"
	"github.com/campus-union/cms-service/internal/service"
)

// RolesHandler manages admin role endpoints.
type RolesHandler struct {
	roles *service.RoleService
}

// NewRolesHandler constructs handler.
func NewRolesHandler(roleService *service.RoleService) *RolesHandler {
	return &RolesHandler{roles: roleService}
}

// Create handles POST /admin/roles.
func (h *RolesHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateRoleRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	role, err := h.roles.Create(c.Context(), service.CreateRoleInput{
		Name:        req.Name,
		Description: req.Description,
		Permissions: req.Permissions,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": roleResponse(role)})
}

// Update handles PUT /admin/roles/:id.
func (h *RolesHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateRoleRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	role, err := h.roles.Update(c.Context(), id, service.UpdateRoleInput{
		Name:        req.Name,
		Description: req.Description,
		Permissions: req.Permissions,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": roleResponse(role)})
}

// Get handles GET /admin/roles/:id.
func (h *RolesHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	role, err := h.roles.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": roleResponse(role)})
}

// List handles GET /admin/roles.
func (h *RolesHandler) List(c *fiber.Ctx) error {
	roles, err := h.roles.List(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.RoleResponse, 0, len(roles))
	for i := range roles {
		items = append(items, roleResponse(&roles[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Delete handles DELETE /admin/roles/:id.
func (h *RolesHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.roles.Delete(c.Context(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func roleResponse(role *domain.Role) dto.RoleResponse {
	permissions := role.Permissions
	if permissions == nil {
		permissions = []string{}
	}
	return dto.RoleResponse{
		ID:          role.ID,
		Name:        role.Name,
		Description: role.Description,
		Permissions: permissions,
		CreatedAt:   role.CreatedAt,
		UpdatedAt:   role.UpdatedAt,
	}
}

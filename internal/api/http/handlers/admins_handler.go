package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campus-union/cms-service/internal/api/dto"
	"github.com/campus-union/cms-service/internal/service"
)

// AdminsHandler manages admin account endpoints.
type AdminsHandler struct {
	admins *service.AdminService
}

// NewAdminsHandler constructs handler.
func NewAdminsHandler(adminService *service.AdminService) *AdminsHandler {
	return &AdminsHandler{admins: adminService}
}

// Create handles POST /admin/admins.
func (h *AdminsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateAdminRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	admin, err := h.admins.Create(c.Context(), service.CreateAdminInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		RoleID:    req.RoleID,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": adminResponse(admin)})
}

// List handles GET /admin/admins.
func (h *AdminsHandler) List(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)
	admins, err := h.admins.List(c.Context(), limit, offset)
	if err != nil {
		return err
	}
	items := make([]dto.AdminResponse, 0, len(admins))
	for i := range admins {
		items = append(items, adminResponse(&admins[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get handles GET /admin/admins/:id.
func (h *AdminsHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	admin, err := h.admins.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": adminResponse(admin)})
}

// AssignRole handles PUT /admin/admins/:id/role.
func (h *AdminsHandler) AssignRole(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.AssignRoleRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	admin, err := h.admins.AssignRole(c.Context(), id, req.RoleID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": adminResponse(admin)})
}

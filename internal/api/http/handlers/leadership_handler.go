package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campus-union/cms-service/internal/api/dto"
	"github.com/campus-union/cms-service/internal/domain"
	"github.com/campus-union/cms-service/internal/repository"
	"github.com/campus-union/cms-service/internal/service"
)

// LeadershipHandler manages leadership roster endpoints.
type LeadershipHandler struct {
	leadership *service.LeadershipService
}

// NewLeadershipHandler constructs handler.
func NewLeadershipHandler(leadershipService *service.LeadershipService) *LeadershipHandler {
	return &LeadershipHandler{leadership: leadershipService}
}

// Create handles POST /admin/leadership.
func (h *LeadershipHandler) Create(c *fiber.Ctx) error {
	image, err := readImage(c, "image")
	if err != nil {
		return err
	}

	leader, err := h.leadership.Create(c.Context(), service.CreateLeaderInput{
		Name:          c.FormValue("name"),
		Bio:           formPtr(c, "bio"),
		YearOfService: c.FormValue("year_of_service"),
		Campus:        c.FormValue("campus"),
		Category:      c.FormValue("category"),
		PositionTitle: c.FormValue("position_title"),
		SchoolName:    formPtr(c, "school_name"),
		HallName:      formPtr(c, "hall_name"),
		DisplayOrder:  parseInt(c.FormValue("display_order"), 0),
		Image:         image,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": leaderResponse(leader)})
}

// Update handles PUT /admin/leadership/:id.
func (h *LeadershipHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	image, err := readImage(c, "image")
	if err != nil {
		return err
	}

	input := service.UpdateLeaderInput{
		Name:          formPtr(c, "name"),
		Bio:           formPtr(c, "bio"),
		YearOfService: formPtr(c, "year_of_service"),
		Campus:        formPtr(c, "campus"),
		Category:      formPtr(c, "category"),
		PositionTitle: formPtr(c, "position_title"),
		SchoolName:    formPtr(c, "school_name"),
		HallName:      formPtr(c, "hall_name"),
		Image:         image,
		RemoveImage:   c.FormValue("remove_image") == "true",
	}
	if raw := formPtr(c, "display_order"); raw != nil {
		order := parseInt(*raw, 0)
		input.DisplayOrder = &order
	}

	leader, err := h.leadership.Update(c.Context(), id, input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": leaderResponse(leader)})
}

// Delete handles DELETE /admin/leadership/:id.
func (h *LeadershipHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.leadership.Delete(c.Context(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Get handles GET /leadership/:id.
func (h *LeadershipHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	leader, err := h.leadership.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": leaderResponse(leader)})
}

// List handles GET /leadership with optional campus, category and year
// filters.
func (h *LeadershipHandler) List(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)
	leaders, err := h.leadership.List(c.Context(), service.ListLeadersInput{
		Campus:   queryPtr(c, "campus"),
		Category: queryPtr(c, "category"),
		Year:     queryPtr(c, "year"),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		return err
	}
	items := make([]dto.LeaderResponse, 0, len(leaders))
	for i := range leaders {
		items = append(items, leaderResponse(&leaders[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Structure handles GET /leadership/structure, the grouped roster for
// the public site.
func (h *LeadershipHandler) Structure(c *fiber.Ctx) error {
	groups, err := h.leadership.Structure(c.Context(), queryPtr(c, "year"))
	if err != nil {
		return err
	}

	out := make([]dto.CampusStructureResponse, 0, len(groups))
	for _, group := range groups {
		campusGroup := dto.CampusStructureResponse{
			Campus: string(group.Campus),
			Label:  domain.EnumLabel(string(group.Campus)),
		}
		for _, category := range group.Categories {
			categoryGroup := dto.CategoryGroupResponse{
				Category: string(category.Category),
				Label:    domain.EnumLabel(string(category.Category)),
				Leaders:  make([]dto.LeaderResponse, 0, len(category.Leaders)),
			}
			for i := range category.Leaders {
				categoryGroup.Leaders = append(categoryGroup.Leaders, leaderResponse(&category.Leaders[i]))
			}
			campusGroup.Categories = append(campusGroup.Categories, categoryGroup)
		}
		out = append(out, campusGroup)
	}
	return c.JSON(fiber.Map{"data": out})
}

// Years handles GET /leadership/years.
func (h *LeadershipHandler) Years(c *fiber.Ctx) error {
	years, err := h.leadership.Years(c.Context())
	if err != nil {
		return err
	}
	if years == nil {
		years = []string{}
	}
	return c.JSON(fiber.Map{"data": years})
}

// Enums handles GET /leadership/enums, listing the selectable campus
// and category values with display labels.
func (h *LeadershipHandler) Enums(c *fiber.Ctx) error {
	campuses := make([]dto.EnumValue, 0, len(domain.CampusValues()))
	for _, campus := range domain.CampusValues() {
		campuses = append(campuses, dto.EnumValue{Value: string(campus), Label: domain.EnumLabel(string(campus))})
	}
	categories := make([]dto.EnumValue, 0, len(domain.LeaderCategoryValues()))
	for _, category := range domain.LeaderCategoryValues() {
		categories = append(categories, dto.EnumValue{Value: string(category), Label: domain.EnumLabel(string(category))})
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"campuses":   campuses,
		"categories": categories,
	}})
}

// Reorder handles PUT /admin/leadership/reorder.
func (h *LeadershipHandler) Reorder(c *fiber.Ctx) error {
	var req dto.ReorderRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	updates := make([]repository.DisplayOrderUpdate, 0, len(req.Items))
	for _, item := range req.Items {
		updates = append(updates, repository.DisplayOrderUpdate{ID: item.ID, DisplayOrder: item.DisplayOrder})
	}
	if err := h.leadership.Reorder(c.Context(), updates); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"updated": len(updates)}})
}

func leaderResponse(leader *domain.Leader) dto.LeaderResponse {
	return dto.LeaderResponse{
		ID:            leader.ID,
		Name:          leader.Name,
		Bio:           leader.Bio,
		YearOfService: leader.YearOfService,
		Campus:        string(leader.Campus),
		Category:      string(leader.Category),
		PositionTitle: leader.PositionTitle,
		SchoolName:    leader.SchoolName,
		HallName:      leader.HallName,
		DisplayOrder:  leader.DisplayOrder,
		ImageURL:      leader.ImageURL,
		CreatedAt:     leader.CreatedAt,
		UpdatedAt:     leader.UpdatedAt,
	}
}

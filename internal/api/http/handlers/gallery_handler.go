package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campus-union/cms-service/internal/api/dto"
	"github.com/campus-union/cms-service/internal/domain"
	"github.com/campus-union/cms-service/internal/repository"
	"github.com/campus-union/cms-service/internal/service"
)

// GalleryHandler manages photo gallery endpoints.
type GalleryHandler struct {
	gallery *service.GalleryService
}

// NewGalleryHandler constructs handler.
func NewGalleryHandler(galleryService *service.GalleryService) *GalleryHandler {
	return &GalleryHandler{gallery: galleryService}
}

// Create handles POST /admin/gallery. The image file is mandatory.
func (h *GalleryHandler) Create(c *fiber.Ctx) error {
	image, err := readImage(c, "image")
	if err != nil {
		return err
	}

	item, err := h.gallery.Create(c.Context(), service.CreateGalleryItemInput{
		Title:        c.FormValue("title"),
		Description:  formPtr(c, "description"),
		Category:     c.FormValue("category"),
		Year:         formPtr(c, "year"),
		DisplayOrder: parseInt(c.FormValue("display_order"), 0),
		Image:        image,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": galleryItemResponse(item)})
}

// Update handles PUT /admin/gallery/:id. Sending a new image replaces
// the current one; the image itself cannot be removed.
func (h *GalleryHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	image, err := readImage(c, "image")
	if err != nil {
		return err
	}

	input := service.UpdateGalleryItemInput{
		Title:       formPtr(c, "title"),
		Description: formPtr(c, "description"),
		Category:    formPtr(c, "category"),
		Year:        formPtr(c, "year"),
		Image:       image,
	}
	if raw := formPtr(c, "display_order"); raw != nil {
		order := parseInt(*raw, 0)
		input.DisplayOrder = &order
	}

	item, err := h.gallery.Update(c.Context(), id, input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": galleryItemResponse(item)})
}

// Delete handles DELETE /admin/gallery/:id.
func (h *GalleryHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.gallery.Delete(c.Context(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Get handles GET /gallery/:id.
func (h *GalleryHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	item, err := h.gallery.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": galleryItemResponse(item)})
}

// List handles GET /gallery with optional category and year filters.
func (h *GalleryHandler) List(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)
	items, err := h.gallery.List(c.Context(), service.ListGalleryInput{
		Category: queryPtr(c, "category"),
		Year:     queryPtr(c, "year"),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		return err
	}
	out := make([]dto.GalleryItemResponse, 0, len(items))
	for i := range items {
		out = append(out, galleryItemResponse(&items[i]))
	}
	return c.JSON(fiber.Map{"data": out})
}

// ByCategory handles GET /gallery/by-category, the grouped public view.
func (h *GalleryHandler) ByCategory(c *fiber.Ctx) error {
	groups, err := h.gallery.ByCategory(c.Context(), queryPtr(c, "year"))
	if err != nil {
		return err
	}

	out := make([]dto.GalleryCategoryGroupResponse, 0, len(groups))
	for _, group := range groups {
		categoryGroup := dto.GalleryCategoryGroupResponse{
			Category: string(group.Category),
			Label:    domain.EnumLabel(string(group.Category)),
			Items:    make([]dto.GalleryItemResponse, 0, len(group.Items)),
		}
		for i := range group.Items {
			categoryGroup.Items = append(categoryGroup.Items, galleryItemResponse(&group.Items[i]))
		}
		out = append(out, categoryGroup)
	}
	return c.JSON(fiber.Map{"data": out})
}

// Categories handles GET /gallery/categories, listing the selectable
// category values with display labels.
func (h *GalleryHandler) Categories(c *fiber.Ctx) error {
	categories := make([]dto.EnumValue, 0, len(domain.GalleryCategoryValues()))
	for _, category := range domain.GalleryCategoryValues() {
		categories = append(categories, dto.EnumValue{Value: string(category), Label: domain.EnumLabel(string(category))})
	}
	return c.JSON(fiber.Map{"data": categories})
}

// Years handles GET /gallery/years.
func (h *GalleryHandler) Years(c *fiber.Ctx) error {
	years, err := h.gallery.Years(c.Context())
	if err != nil {
		return err
	}
	if years == nil {
		years = []string{}
	}
	return c.JSON(fiber.Map{"data": years})
}

// Summary handles GET /admin/gallery/summary.
func (h *GalleryHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.gallery.Summary(c.Context())
	if err != nil {
		return err
	}

	byCategory := make(map[string]int, len(summary.ByCategory))
	for category, count := range summary.ByCategory {
		byCategory[string(category)] = count
	}
	years := summary.Years
	if years == nil {
		years = []string{}
	}
	return c.JSON(fiber.Map{"data": dto.GallerySummaryResponse{
		Total:      summary.Total,
		ByCategory: byCategory,
		Years:      years,
	}})
}

// Reorder handles PUT /admin/gallery/reorder.
func (h *GalleryHandler) Reorder(c *fiber.Ctx) error {
	var req dto.ReorderRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	updates := make([]repository.DisplayOrderUpdate, 0, len(req.Items))
	for _, item := range req.Items {
		updates = append(updates, repository.DisplayOrderUpdate{ID: item.ID, DisplayOrder: item.DisplayOrder})
	}
	if err := h.gallery.Reorder(c.Context(), updates); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"updated": len(updates)}})
}

func galleryItemResponse(item *domain.GalleryItem) dto.GalleryItemResponse {
	return dto.GalleryItemResponse{
		ID:           item.ID,
		Title:        item.Title,
		Description:  item.Description,
		Category:     string(item.Category),
		Year:         item.Year,
		DisplayOrder: item.DisplayOrder,
		ImageURL:     item.ImageURL,
		CreatedAt:    item.CreatedAt,
		UpdatedAt:    item.UpdatedAt,
	}
}

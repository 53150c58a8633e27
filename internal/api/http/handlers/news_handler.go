package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campus-union/cms-service/internal/api/dto"
	"github.com/campus-union/cms-service/internal/auth"
	"github.com/campus-union/cms-service/internal/domain"
	"github.com/campus-union/cms-service/internal/repository"
	"github.com/campus-union/cms-service/internal/service"
	apperrors "github.com/campus-union/cms-service/pkg/util"
)

// NewsHandler manages article endpoints. Create and Update consume
// multipart forms so an image can ride along with the fields.
type NewsHandler struct {
	news *service.NewsService
}

// NewNewsHandler constructs handler.
func NewNewsHandler(newsService *service.NewsService) *NewsHandler {
	return &NewsHandler{news: newsService}
}

// Create handles POST /admin/news.
func (h *NewsHandler) Create(c *fiber.Ctx) error {
	admin, ok := auth.AdminFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("could not validate admin credentials")
	}

	image, err := readImage(c, "image")
	if err != nil {
		return err
	}

	article, err := h.news.Create(c.Context(), admin, service.CreateNewsInput{
		Title:       c.FormValue("title"),
		Content:     c.FormValue("content"),
		PublishedAt: parseTime(c.FormValue("published_at")),
		Image:       image,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": newsResponse(article)})
}

// Update handles PUT /admin/news/:id. Absent form fields are left
// unchanged; remove_image=true drops the current image.
func (h *NewsHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	image, err := readImage(c, "image")
	if err != nil {
		return err
	}

	input := service.UpdateNewsInput{
		Title:       formPtr(c, "title"),
		Content:     formPtr(c, "content"),
		Image:       image,
		RemoveImage: c.FormValue("remove_image") == "true",
	}
	if raw := formPtr(c, "published_at"); raw != nil {
		input.PublishedAt = parseTime(*raw)
	}

	article, err := h.news.Update(c.Context(), id, input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": newsResponse(article)})
}

// Delete handles DELETE /admin/news/:id.
func (h *NewsHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.news.Delete(c.Context(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// List handles GET /news for the public site, served through the cache.
func (h *NewsHandler) List(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)
	items, total, err := h.news.ListPublic(c.Context(), limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": newsListResponse(c, items, total)})
}

// ListAdmin handles GET /admin/news with the same shape as the public
// listing but bypassing the cache.
func (h *NewsHandler) ListAdmin(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)
	items, total, err := h.news.List(c.Context(), repository.NewsFilter{Limit: limit, Offset: offset})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": newsListResponse(c, items, total)})
}

// ListMine handles GET /admin/news/my, restricted to the caller's own
// articles.
func (h *NewsHandler) ListMine(c *fiber.Ctx) error {
	admin, ok := auth.AdminFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("could not validate admin credentials")
	}

	limit, offset := parsePagination(c)
	items, total, err := h.news.ListMine(c.Context(), admin.ID, limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": newsListResponse(c, items, total)})
}

// Get handles GET /news/:id.
func (h *NewsHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	article, err := h.news.GetByID(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": newsResponse(article)})
}

// GetBySlug handles GET /news/slug/:slug.
func (h *NewsHandler) GetBySlug(c *fiber.Ctx) error {
	article, err := h.news.GetBySlug(c.Context(), c.Params("slug"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": newsResponse(article)})
}

func newsResponse(article *domain.NewsArticle) dto.NewsResponse {
	return dto.NewsResponse{
		ID:          article.ID,
		Title:       article.Title,
		Slug:        article.Slug,
		Content:     article.Content,
		ImageURL:    article.ImageURL,
		PublishedAt: article.PublishedAt,
		CreatedBy:   article.CreatedBy,
		CreatedAt:   article.CreatedAt,
		UpdatedAt:   article.UpdatedAt,
	}
}

func newsListResponse(c *fiber.Ctx, articles []domain.NewsArticle, total int) dto.NewsListResponse {
	items := make([]dto.NewsResponse, 0, len(articles))
	for i := range articles {
		items = append(items, newsResponse(&articles[i]))
	}
	return dto.NewsListResponse{
		Items:    items,
		Total:    total,
		Page:     parseInt(c.Query("page"), 1),
		PageSize: parseInt(c.Query("page_size"), 20),
	}
}

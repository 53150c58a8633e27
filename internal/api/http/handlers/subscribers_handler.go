package handlers

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/campus-union/cms-service/internal/api/dto"
	"github.com/campus-union/cms-service/internal/domain"
	"github.com/campus-union/cms-service/internal/service"
)

// SubscribersHandler manages newsletter subscription endpoints.
type SubscribersHandler struct {
	subscribers *service.SubscriberService
}

// NewSubscribersHandler constructs handler.
func NewSubscribersHandler(subscriberService *service.SubscriberService) *SubscribersHandler {
	return &SubscribersHandler{subscribers: subscriberService}
}

// Subscribe handles POST /subscribers/subscribe.
func (h *SubscribersHandler) Subscribe(c *fiber.Ctx) error {
	var req dto.SubscribeRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	sub, reactivated, err := h.subscribers.Subscribe(c.Context(), req.Email)
	if err != nil {
		return err
	}

	message := "subscribed to the newsletter"
	if reactivated {
		message = "subscription reactivated"
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": fiber.Map{
		"subscriber": subscriberResponse(sub),
		"message":    message,
	}})
}

// Unsubscribe handles POST /subscribers/unsubscribe/:email. Repeating
// the call for an already inactive address still succeeds.
func (h *SubscribersHandler) Unsubscribe(c *fiber.Ctx) error {
	email := c.Params("email")
	if decoded, err := url.PathUnescape(email); err == nil {
		email = decoded
	}

	if err := h.subscribers.Unsubscribe(c.Context(), email); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"message": "unsubscribed from the newsletter"}})
}

// List handles GET /admin/subscribers with an optional active_only
// filter.
func (h *SubscribersHandler) List(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)
	activeOnly := c.Query("active_only") == "true"

	subs, err := h.subscribers.List(c.Context(), activeOnly, limit, offset)
	if err != nil {
		return err
	}
	items := make([]dto.SubscriberResponse, 0, len(subs))
	for i := range subs {
		items = append(items, subscriberResponse(&subs[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get handles GET /admin/subscribers/:id.
func (h *SubscribersHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	sub, err := h.subscribers.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": subscriberResponse(sub)})
}

// Search handles GET /admin/subscribers/search/:email.
func (h *SubscribersHandler) Search(c *fiber.Ctx) error {
	email := c.Params("email")
	if decoded, err := url.PathUnescape(email); err == nil {
		email = decoded
	}

	sub, err := h.subscribers.GetByEmail(c.Context(), email)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": subscriberResponse(sub)})
}

// SetActive handles PUT /admin/subscribers/:id.
func (h *SubscribersHandler) SetActive(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.SetSubscriberActiveRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	sub, err := h.subscribers.SetActive(c.Context(), id, *req.IsActive)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": subscriberResponse(sub)})
}

// Delete handles DELETE /admin/subscribers/:id.
func (h *SubscribersHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.subscribers.Delete(c.Context(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Stats handles GET /admin/subscribers/stats.
func (h *SubscribersHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.subscribers.Stats(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.SubscriberStatsResponse{
		Total:        stats.Total,
		Active:       stats.Active,
		Unsubscribed: stats.Unsubscribed,
	}})
}

func subscriberResponse(sub *domain.Subscriber) dto.SubscriberResponse {
	return dto.SubscriberResponse{
		ID:             sub.ID,
		Email:          sub.Email,
		IsActive:       sub.IsActive,
		SubscribedAt:   sub.SubscribedAt,
		UnsubscribedAt: sub.UnsubscribedAt,
	}
}

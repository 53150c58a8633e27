package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/campus-union/cms-service/internal/api/dto"
	"github.com/campus-union/cms-service/internal/auth"
	"github.com/campus-union/cms-service/internal/domain"
	"github.com/campus-union/cms-service/internal/service"
	apperrors "github.com/campus-union/cms-service/pkg/util"
)

// EventsHandler manages event and registration endpoints.
type EventsHandler struct {
	events *service.EventService
}

// NewEventsHandler constructs handler.
func NewEventsHandler(eventService *service.EventService) *EventsHandler {
	return &EventsHandler{events: eventService}
}

// Create handles POST /admin/events.
func (h *EventsHandler) Create(c *fiber.Ctx) error {
	admin, ok := auth.AdminFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("could not validate admin credentials")
	}

	image, err := readImage(c, "image")
	if err != nil {
		return err
	}

	var startsAt time.Time
	if t := parseTime(c.FormValue("starts_at")); t != nil {
		startsAt = *t
	}

	event, err := h.events.Create(c.Context(), admin, service.CreateEventInput{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Venue:       c.FormValue("venue"),
		StartsAt:    startsAt,
		EndsAt:      parseTime(c.FormValue("ends_at")),
		Capacity:    parseInt(c.FormValue("capacity"), 0),
		Image:       image,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": eventResponse(event)})
}

// Update handles PUT /admin/events/:id.
func (h *EventsHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	image, err := readImage(c, "image")
	if err != nil {
		return err
	}

	input := service.UpdateEventInput{
		Title:       formPtr(c, "title"),
		Description: formPtr(c, "description"),
		Venue:       formPtr(c, "venue"),
		Image:       image,
		RemoveImage: c.FormValue("remove_image") == "true",
	}
	if raw := formPtr(c, "starts_at"); raw != nil {
		input.StartsAt = parseTime(*raw)
	}
	if raw := formPtr(c, "ends_at"); raw != nil {
		input.EndsAt = parseTime(*raw)
	}
	if raw := formPtr(c, "capacity"); raw != nil {
		capacity := parseInt(*raw, 0)
		input.Capacity = &capacity
	}

	event, err := h.events.Update(c.Context(), id, input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": eventResponse(event)})
}

// Delete handles DELETE /admin/events/:id.
func (h *EventsHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.events.Delete(c.Context(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Get handles GET /events/:id.
func (h *EventsHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	event, err := h.events.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": eventResponse(event)})
}

// GetBySlug handles GET /events/slug/:slug.
func (h *EventsHandler) GetBySlug(c *fiber.Ctx) error {
	event, err := h.events.GetBySlug(c.Context(), c.Params("slug"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": eventResponse(event)})
}

// List handles GET /events, newest first.
func (h *EventsHandler) List(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)
	events, err := h.events.List(c.Context(), limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": eventListResponse(events)})
}

// ListUpcoming handles GET /events/upcoming, soonest first, served
// through the cache.
func (h *EventsHandler) ListUpcoming(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)
	events, err := h.events.ListUpcoming(c.Context(), limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": eventListResponse(events)})
}

// Register handles POST /events/:id/register for the logged-in student.
func (h *EventsHandler) Register(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("could not validate credentials")
	}
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	reg, err := h.events.Register(c.Context(), user, id)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": registrationResponse(reg)})
}

// CancelRegistration handles DELETE /events/:id/register.
func (h *EventsHandler) CancelRegistration(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("could not validate credentials")
	}
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.events.CancelRegistration(c.Context(), user, id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListRegistrations handles GET /admin/events/:id/registrations.
func (h *EventsHandler) ListRegistrations(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	regs, counts, err := h.events.ListRegistrations(c.Context(), id)
	if err != nil {
		return err
	}

	items := make([]dto.RegistrationResponse, 0, len(regs))
	for i := range regs {
		items = append(items, registrationResponse(&regs[i]))
	}
	return c.JSON(fiber.Map{"data": dto.EventRegistrationsResponse{
		Items:      items,
		Confirmed:  counts.Confirmed,
		Waitlisted: counts.Waitlisted,
		Cancelled:  counts.Cancelled,
	}})
}

func eventResponse(event *domain.Event) dto.EventResponse {
	return dto.EventResponse{
		ID:          event.ID,
		Title:       event.Title,
		Slug:        event.Slug,
		Description: event.Description,
		Venue:       event.Venue,
		StartsAt:    event.StartsAt,
		EndsAt:      event.EndsAt,
		Capacity:    event.Capacity,
		ImageURL:    event.ImageURL,
		CreatedBy:   event.CreatedBy,
		CreatedAt:   event.CreatedAt,
		UpdatedAt:   event.UpdatedAt,
	}
}

func eventListResponse(events []domain.Event) []dto.EventResponse {
	items := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		items = append(items, eventResponse(&events[i]))
	}
	return items
}

func registrationResponse(reg *domain.Registration) dto.RegistrationResponse {
	return dto.RegistrationResponse{
		ID:        reg.ID,
		EventID:   reg.EventID,
		UserID:    reg.UserID,
		Status:    string(reg.Status),
		CreatedAt: reg.CreatedAt,
		UpdatedAt: reg.UpdatedAt,
	}
}

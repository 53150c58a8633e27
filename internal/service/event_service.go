package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/campus-union/cms-service/internal/cache"
	"github.com/campus-union/cms-service/internal/domain"
	"github.com/campus-union/cms-service/internal/events"
	"github.com/campus-union/cms-service/internal/repository"
	"github.com/campus-union/cms-service/internal/storage"
	apperrors "github.com/campus-union/cms-service/pkg/util"
)

const (
	maxEventImageBytes = 5 << 20
	eventImagePrefix   = "events/images"
)

// EventService manages union events and student registrations.
type EventService struct {
	events        repository.EventRepository
	registrations repository.RegistrationRepository
	dispatcher    events.Dispatcher
	store         storage.ObjectStore
	cache         *cache.Cache
	logger        *zap.Logger
}

// EventDependencies encapsulates requirements for the event service.
type EventDependencies struct {
	EventRepo        repository.EventRepository
	RegistrationRepo repository.RegistrationRepository
	Dispatcher       events.Dispatcher
	Store            storage.ObjectStore
	Cache            *cache.Cache
	Logger           *zap.Logger
}

// NewEventService builds the service.
func NewEventService(deps EventDependencies) *EventService {
	return &EventService{
		events:        deps.EventRepo,
		registrations: deps.RegistrationRepo,
		dispatcher:    deps.Dispatcher,
		store:         deps.Store,
		cache:         deps.Cache,
		logger:        deps.Logger,
	}
}

// CreateEventInput carries the fields for a new event. Capacity zero
// means unlimited seats.
type CreateEventInput struct {
	Title       string
	Description string
	Venue       string
	StartsAt    time.Time
	EndsAt      *time.Time
	Capacity    int
	Image       *UploadInput
}

// UpdateEventInput carries optional updates; nil fields are unchanged.
type UpdateEventInput struct {
	Title       *string
	Description *string
	Venue       *string
	StartsAt    *time.Time
	EndsAt      *time.Time
	Capacity    *int
	Image       *UploadInput
	RemoveImage bool
}

// Create validates and stores a new event.
func (s *EventService) Create(ctx context.Context, admin *domain.AdminPrincipal, input CreateEventInput) (*domain.Event, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperrors.NewValidationError("title is required", nil)
	}
	if input.StartsAt.IsZero() {
		return nil, apperrors.NewValidationError("starts_at is required", nil)
	}
	if input.EndsAt != nil && !input.EndsAt.After(input.StartsAt) {
		return nil, apperrors.NewValidationError("ends_at must be after starts_at", nil)
	}
	if input.Capacity < 0 {
		return nil, apperrors.NewValidationError("capacity must not be negative", nil)
	}
	if input.Image != nil {
		if err := validateImageUpload(input.Image, maxEventImageBytes); err != nil {
			return nil, err
		}
	}

	slug, err := s.uniqueSlug(ctx, title, 0)
	if err != nil {
		return nil, err
	}

	var imageURL *string
	if input.Image != nil {
		key := storage.NewKey(eventImagePrefix, input.Image.Filename)
		url, err := s.store.Put(ctx, key, input.Image.ContentType, input.Image.Data)
		if err != nil {
			return nil, err
		}
		imageURL = &url
	}

	event := &domain.Event{
		Title:       title,
		Slug:        slug,
		Description: strings.TrimSpace(input.Description),
		Venue:       strings.TrimSpace(input.Venue),
		StartsAt:    input.StartsAt,
		EndsAt:      input.EndsAt,
		Capacity:    input.Capacity,
		ImageURL:    imageURL,
		CreatedBy:   admin.ID,
	}
	if err := s.events.Create(ctx, event); err != nil {
		if imageURL != nil {
			if delErr := s.store.Delete(ctx, *imageURL); delErr != nil {
				s.logger.Warn("orphaned event image not removed", zap.String("url", *imageURL), zap.Error(delErr))
			}
		}
		return nil, err
	}

	s.bumpCache(ctx)
	return event, nil
}

// Update applies partial changes. A title change regenerates the slug.
func (s *EventService) Update(ctx context.Context, id int64, input UpdateEventInput) (*domain.Event, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("event", nil)
		}
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, apperrors.NewValidationError("title is required", nil)
		}
		if title != event.Title {
			slug, err := s.uniqueSlug(ctx, title, event.ID)
			if err != nil {
				return nil, err
			}
			event.Title = title
			event.Slug = slug
		}
	}
	if input.Description != nil {
		event.Description = strings.TrimSpace(*input.Description)
	}
	if input.Venue != nil {
		event.Venue = strings.TrimSpace(*input.Venue)
	}
	if input.StartsAt != nil {
		event.StartsAt = *input.StartsAt
	}
	if input.EndsAt != nil {
		event.EndsAt = input.EndsAt
	}
	if input.Capacity != nil {
		if *input.Capacity < 0 {
			return nil, apperrors.NewValidationError("capacity must not be negative", nil)
		}
		event.Capacity = *input.Capacity
	}
	if event.EndsAt != nil && !event.EndsAt.After(event.StartsAt) {
		return nil, apperrors.NewValidationError("ends_at must be after starts_at", nil)
	}

	oldImageURL := event.ImageURL
	var newImageURL *string
	switch {
	case input.Image != nil:
		if err := validateImageUpload(input.Image, maxEventImageBytes); err != nil {
			return nil, err
		}
		key := storage.NewKey(eventImagePrefix, input.Image.Filename)
		url, err := s.store.Put(ctx, key, input.Image.ContentType, input.Image.Data)
		if err != nil {
			return nil, err
		}
		newImageURL = &url
		event.ImageURL = newImageURL
	case input.RemoveImage && event.ImageURL != nil:
		event.ImageURL = nil
	}

	if err := s.events.Update(ctx, event); err != nil {
		if newImageURL != nil {
			if delErr := s.store.Delete(ctx, *newImageURL); delErr != nil {
				s.logger.Warn("orphaned event image not removed", zap.String("url", *newImageURL), zap.Error(delErr))
			}
		}
		return nil, err
	}

	if oldImageURL != nil && (newImageURL != nil || input.RemoveImage) {
		if err := s.store.Delete(ctx, *oldImageURL); err != nil {
			s.logger.Warn("replaced event image not removed", zap.String("url", *oldImageURL), zap.Error(err))
		}
	}

	s.bumpCache(ctx)
	return event, nil
}

// Delete removes an event and its stored image. Registrations go with
// it through the foreign key cascade.
func (s *EventService) Delete(ctx context.Context, id int64) error {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("event", nil)
		}
		return err
	}

	if err := s.events.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("event", nil)
		}
		return err
	}

	if event.ImageURL != nil {
		if err := s.store.Delete(ctx, *event.ImageURL); err != nil {
			s.logger.Warn("deleted event image not removed", zap.String("url", *event.ImageURL), zap.Error(err))
		}
	}

	s.bumpCache(ctx)
	return nil
}

// Get fetches one event.
func (s *EventService) Get(ctx context.Context, id int64) (*domain.Event, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("event", nil)
		}
		return nil, err
	}
	return event, nil
}

// GetBySlug fetches one event by its public slug.
func (s *EventService) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	event, err := s.events.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("event", nil)
		}
		return nil, err
	}
	return event, nil
}

// List returns events newest first.
func (s *EventService) List(ctx context.Context, limit, offset int) ([]domain.Event, error) {
	return s.events.List(ctx, limit, offset)
}

type eventsPage struct {
	Items []domain.Event `json:"items"`
}

// ListUpcoming serves future events through the cache, soonest first.
func (s *EventService) ListUpcoming(ctx context.Context, limit, offset int) ([]domain.Event, error) {
	key, err := s.cache.BuildKey(ctx, cache.KeyEventsUpcoming(limit, offset)...)
	if err != nil {
		s.logger.Warn("cache unavailable for upcoming events", zap.Error(err))
		return s.events.ListUpcoming(ctx, time.Now(), limit, offset)
	}

	var page eventsPage
	err = s.cache.FetchJSON(ctx, key, &page, func(ctx context.Context) (interface{}, error) {
		items, err := s.events.ListUpcoming(ctx, time.Now(), limit, offset)
		if err != nil {
			return nil, err
		}
		return eventsPage{Items: items}, nil
	})
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}

// Register signs a student up for an event. A full event places the
// registration on the waitlist instead of rejecting it. Re-registering
// after cancelling reactivates the original row.
func (s *EventService) Register(ctx context.Context, user *domain.UserPrincipal, eventID int64) (*domain.Registration, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("event", nil)
		}
		return nil, err
	}

	existing, err := s.registrations.GetByEventAndUser(ctx, eventID, user.ID)
	if err == nil {
		if existing.Status != domain.RegistrationStatusCancelled {
			return nil, apperrors.NewConflict("already registered for this event", nil)
		}
		status, err := s.placementStatus(ctx, event)
		if err != nil {
			return nil, err
		}
		existing.Status = status
		if err := s.registrations.Update(ctx, existing); err != nil {
			return nil, err
		}
		s.publishRegistrationEvent(ctx, event, user, status)
		return existing, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	status, err := s.placementStatus(ctx, event)
	if err != nil {
		return nil, err
	}
	reg := &domain.Registration{
		EventID: eventID,
		UserID:  user.ID,
		Status:  status,
	}
	if err := s.registrations.Create(ctx, reg); err != nil {
		return nil, err
	}

	s.publishRegistrationEvent(ctx, event, user, status)
	return reg, nil
}

// CancelRegistration withdraws a student from an event. Cancelled and
// unknown registrations both report not found.
func (s *EventService) CancelRegistration(ctx context.Context, user *domain.UserPrincipal, eventID int64) error {
	reg, err := s.registrations.GetByEventAndUser(ctx, eventID, user.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("registration", nil)
		}
		return err
	}
	if reg.Status == domain.RegistrationStatusCancelled {
		return apperrors.NewNotFound("registration", nil)
	}

	reg.Status = domain.RegistrationStatusCancelled
	return s.registrations.Update(ctx, reg)
}

// RegistrationCounts tallies registrations per status for one event.
type RegistrationCounts struct {
	Confirmed  int `json:"confirmed"`
	Waitlisted int `json:"waitlisted"`
	Cancelled  int `json:"cancelled"`
}

// ListRegistrations returns an event's registrations with per-status
// counts for the admin view.
func (s *EventService) ListRegistrations(ctx context.Context, eventID int64) ([]domain.Registration, *RegistrationCounts, error) {
	if _, err := s.events.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NewNotFound("event", nil)
		}
		return nil, nil, err
	}

	regs, err := s.registrations.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, nil, err
	}

	counts := &RegistrationCounts{}
	for _, reg := range regs {
		switch reg.Status {
		case domain.RegistrationStatusConfirmed:
			counts.Confirmed++
		case domain.RegistrationStatusWaitlisted:
			counts.Waitlisted++
		case domain.RegistrationStatusCancelled:
			counts.Cancelled++
		}
	}
	return regs, counts, nil
}

// placementStatus decides whether a new registration is confirmed or
// waitlisted based on remaining capacity.
func (s *EventService) placementStatus(ctx context.Context, event *domain.Event) (domain.RegistrationStatus, error) {
	if event.Capacity <= 0 {
		return domain.RegistrationStatusConfirmed, nil
	}
	confirmed, err := s.registrations.CountByEventAndStatus(ctx, event.ID, domain.RegistrationStatusConfirmed)
	if err != nil {
		return "", err
	}
	if confirmed >= event.Capacity {
		return domain.RegistrationStatusWaitlisted, nil
	}
	return domain.RegistrationStatusConfirmed, nil
}

func (s *EventService) uniqueSlug(ctx context.Context, title string, excludeID int64) (string, error) {
	base := domain.Slugify(title)
	if base == "" {
		base = "event"
	}

	candidate := base
	for counter := 1; ; counter++ {
		exists, err := s.events.SlugExists(ctx, candidate, excludeID)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, counter)
	}
}

func (s *EventService) publishRegistrationEvent(ctx context.Context, event *domain.Event, user *domain.UserPrincipal, status domain.RegistrationStatus) {
	err := s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventRegistrationConfirmed,
		Timestamp: time.Now(),
		Payload: events.RegistrationPayload{
			EventID:    event.ID,
			EventTitle: event.Title,
			UserEmail:  user.Email,
			Status:     status,
		},
	})
	if err != nil {
		s.logger.Warn("registration event handler failed", zap.Int64("event_id", event.ID), zap.Error(err))
	}
}

func (s *EventService) bumpCache(ctx context.Context) {
	if err := s.cache.Bump(ctx); err != nil {
		s.logger.Warn("cache bump failed", zap.Error(err))
	}
}

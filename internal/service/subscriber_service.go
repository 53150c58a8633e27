package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/campus-union/cms-service/internal/domain"
	"github.com/campus-union/cms-service/internal/repository"
	apperrors "github.com/campus-union/cms-service/pkg/util"
)

// SubscriberService manages newsletter subscriptions. Emails are
// normalized to lowercase so the same address cannot subscribe twice
// with different casing.
type SubscriberService struct {
	subscribers repository.SubscriberRepository
}

// NewSubscriberService builds the service.
func NewSubscriberService(subscribers repository.SubscriberRepository) *SubscriberService {
	return &SubscriberService{subscribers: subscribers}
}

// Subscribe adds an email to the newsletter. A previously unsubscribed
// address is reactivated in place; reactivated reports which path was
// taken so the handler can phrase its response.
func (s *SubscriberService) Subscribe(ctx context.Context, email string) (sub *domain.Subscriber, reactivated bool, err error) {
	email = strings.ToLower(strings.TrimSpace(email))

	existing, err := s.subscribers.GetByEmail(ctx, email)
	if err == nil {
		if existing.IsActive {
			return nil, false, apperrors.NewConflict("email already subscribed", nil)
		}
		existing.IsActive = true
		existing.SubscribedAt = time.Now()
		existing.UnsubscribedAt = nil
		if err := s.subscribers.Update(ctx, existing); err != nil {
			return nil, false, err
		}
		return existing, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, err
	}

	sub = &domain.Subscriber{
		Email:        email,
		IsActive:     true,
		SubscribedAt: time.Now(),
	}
	if err := s.subscribers.Create(ctx, sub); err != nil {
		return nil, false, err
	}
	return sub, false, nil
}

// Unsubscribe deactivates an address. Unsubscribing an already inactive
// address succeeds quietly so the link in an old email keeps working.
func (s *SubscriberService) Unsubscribe(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	sub, err := s.subscribers.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("subscriber", nil)
		}
		return err
	}
	if !sub.IsActive {
		return nil
	}

	now := time.Now()
	sub.IsActive = false
	sub.UnsubscribedAt = &now
	return s.subscribers.Update(ctx, sub)
}

// Get fetches one subscriber by id.
func (s *SubscriberService) Get(ctx context.Context, id int64) (*domain.Subscriber, error) {
	sub, err := s.subscribers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("subscriber", nil)
		}
		return nil, err
	}
	return sub, nil
}

// GetByEmail fetches one subscriber by address.
func (s *SubscriberService) GetByEmail(ctx context.Context, email string) (*domain.Subscriber, error) {
	sub, err := s.subscribers.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("subscriber", nil)
		}
		return nil, err
	}
	return sub, nil
}

// List returns subscribers newest first for the admin view.
func (s *SubscriberService) List(ctx context.Context, activeOnly bool, limit, offset int) ([]domain.Subscriber, error) {
	return s.subscribers.List(ctx, activeOnly, limit, offset)
}

// SetActive flips a subscription from the admin side. Deactivating
// stamps the unsubscribe time; reactivating clears it and keeps the
// original subscription time.
func (s *SubscriberService) SetActive(ctx context.Context, id int64, active bool) (*domain.Subscriber, error) {
	sub, err := s.subscribers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("subscriber", nil)
		}
		return nil, err
	}
	if sub.IsActive == active {
		return sub, nil
	}

	sub.IsActive = active
	if active {
		sub.UnsubscribedAt = nil
	} else {
		now := time.Now()
		sub.UnsubscribedAt = &now
	}
	if err := s.subscribers.Update(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// Delete removes a subscriber entirely.
func (s *SubscriberService) Delete(ctx context.Context, id int64) error {
	if err := s.subscribers.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("subscriber", nil)
		}
		return err
	}
	return nil
}

// Stats reports subscriber totals for the admin dashboard.
func (s *SubscriberService) Stats(ctx context.Context) (*repository.SubscriberStats, error) {
	return s.subscribers.Stats(ctx)
}

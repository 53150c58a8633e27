package dto

import "time"

// SubscribeRequest payload for the public subscribe endpoint.
type SubscribeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// SubscriberResponse full subscriber view.
type SubscriberResponse struct {
	ID             int64      `json:"id"`
	Email          string     `json:"email"`
	IsActive       bool       `json:"is_active"`
	SubscribedAt   time.Time  `json:"subscribed_at"`
	UnsubscribedAt *time.Time `json:"unsubscribed_at"`
}

// SetSubscriberActiveRequest payload for the admin toggle.
type SetSubscriberActiveRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

// SubscriberStatsResponse totals for the admin dashboard.
type SubscriberStatsResponse struct {
	Total        int `json:"total"`
	Active       int `json:"active"`
	Unsubscribed int `json:"unsubscribed"`
}

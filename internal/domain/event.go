package domain

import "time"

// Event is a union event students can register for. Capacity zero means
// unlimited seats.
type Event struct {
	ID          int64
	Title       string
	Slug        string
	Description string
	Venue       string
	StartsAt    time.Time
	EndsAt      *time.Time
	Capacity    int
	ImageURL    *string
	CreatedBy   int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

package dto

import "time"

// EventResponse full event view.
type EventResponse struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Description string     `json:"description"`
	Venue       string     `json:"venue"`
	StartsAt    time.Time  `json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at"`
	Capacity    int        `json:"capacity"`
	ImageURL    *string    `json:"image_url"`
	CreatedBy   int64      `json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// RegistrationResponse one student's signup for an event.
type RegistrationResponse struct {
	ID        int64     `json:"id"`
	EventID   int64     `json:"event_id"`
	UserID    int64     `json:"user_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EventRegistrationsResponse admin view of an event's signups.
type EventRegistrationsResponse struct {
	Items      []RegistrationResponse `json:"items"`
	Confirmed  int                    `json:"confirmed"`
	Waitlisted int                    `json:"waitlisted"`
	Cancelled  int                    `json:"cancelled"`
}

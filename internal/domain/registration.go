package domain

import "time"

// RegistrationStatus tracks the lifecycle of an event registration.
type RegistrationStatus string

const (
	RegistrationStatusConfirmed  RegistrationStatus = "CONFIRMED"
	RegistrationStatusWaitlisted RegistrationStatus = "WAITLISTED"
	RegistrationStatusCancelled  RegistrationStatus = "CANCELLED"
)

// Registration links a user to an event. One row per (event, user) pair;
// cancelling keeps the row so a later re-register reactivates it.
type Registration struct {
	ID        int64
	EventID   int64
	UserID    int64
	Status    RegistrationStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

package domain

import "time"

// Subscriber is a newsletter recipient. Emails are stored lowercase.
// Unsubscribing flips IsActive and stamps UnsubscribedAt; re-subscribing
// reactivates the same row with a fresh SubscribedAt.
type Subscriber struct {
	ID             int64
	Email          string
	IsActive       bool
	SubscribedAt   time.Time
	UnsubscribedAt *time.Time
}

package events

import (
	"time"

	"github.com/campus-union/cms-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventNewsPublished         EventType = "news_published"
	EventNewsUpdated           EventType = "news_updated"
	EventRegistrationConfirmed EventType = "event_registration_confirmed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// NewsPayload payload for article lifecycle events.
type NewsPayload struct {
	ArticleID int64  `json:"article_id"`
	Title     string `json:"title"`
	Slug      string `json:"slug"`
}

// RegistrationPayload payload for event signup notifications.
type RegistrationPayload struct {
	EventID    int64                     `json:"event_id"`
	EventTitle string                    `json:"event_title"`
	UserEmail  string                    `json:"user_email"`
	Status     domain.RegistrationStatus `json:"status"`
}

package domain

import "time"

// NewsArticle is the aggregate for published news. Slug is unique across all
// articles; PublishedAt is stored truncated to the minute.
type NewsArticle struct {
	ID          int64
	Title       string
	Slug        string
	Content     string
	ImageURL    *string
	PublishedAt time.Time
	CreatedBy   int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

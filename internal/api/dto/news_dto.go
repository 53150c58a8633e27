package dto

import "time"

// NewsResponse full article view.
type NewsResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Content     string    `json:"content"`
	ImageURL    *string   `json:"image_url"`
	PublishedAt time.Time `json:"published_at"`
	CreatedBy   int64     `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewsListResponse paged article listing.
type NewsListResponse struct {
	Items    []NewsResponse `json:"items"`
	Total    int            `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}

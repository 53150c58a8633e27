package dto

import "time"

// GalleryItemResponse full gallery item view.
type GalleryItemResponse struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Description  *string   `json:"description"`
	Category     string    `json:"category"`
	Year         *string   `json:"year"`
	DisplayOrder int       `json:"display_order"`
	ImageURL     string    `json:"image_url"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// GalleryCategoryGroupResponse collects one category's items for the
// grouped public view.
type GalleryCategoryGroupResponse struct {
	Category string                `json:"category"`
	Label    string                `json:"label"`
	Items    []GalleryItemResponse `json:"items"`
}

// GallerySummaryResponse aggregates totals for the admin dashboard.
type GallerySummaryResponse struct {
	Total      int            `json:"total"`
	ByCategory map[string]int `json:"by_category"`
	Years      []string       `json:"years"`
}

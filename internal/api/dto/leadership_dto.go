package dto

import "time"

// LeaderResponse full leadership entry view.
type LeaderResponse struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Bio           *string   `json:"bio"`
	YearOfService string    `json:"year_of_service"`
	Campus        string    `json:"campus"`
	Category      string    `json:"category"`
	PositionTitle string    `json:"position_title"`
	SchoolName    *string   `json:"school_name"`
	HallName      *string   `json:"hall_name"`
	DisplayOrder  int       `json:"display_order"`
	ImageURL      *string   `json:"image_url"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CategoryGroupResponse groups the leaders of one category.
type CategoryGroupResponse struct {
	Category string           `json:"category"`
	Label    string           `json:"label"`
	Leaders  []LeaderResponse `json:"leaders"`
}

// CampusStructureResponse groups the category groups of one campus.
type CampusStructureResponse struct {
	Campus     string                  `json:"campus"`
	Label      string                  `json:"label"`
	Categories []CategoryGroupResponse `json:"categories"`
}

// ReorderItem pairs an entity id with its new display position.
type ReorderItem struct {
	ID           int64 `json:"id" validate:"required,gt=0"`
	DisplayOrder int   `json:"display_order" validate:"required,gt=0"`
}

// ReorderRequest payload for batch reordering.
type ReorderRequest struct {
	Items []ReorderItem `json:"items" validate:"required,min=1,dive"`
}

// EnumValue is one selectable option with its display label.
type EnumValue struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

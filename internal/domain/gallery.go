package domain

import (
	"fmt"
	"strings"
	"time"
)

// GalleryCategory enumerates the thematic buckets gallery items live in.
type GalleryCategory string

const (
	GalleryCategoryEvents    GalleryCategory = "EVENTS"
	GalleryCategorySports    GalleryCategory = "SPORTS"
	GalleryCategoryCulture   GalleryCategory = "CULTURE"
	GalleryCategoryAcademics GalleryCategory = "ACADEMICS"
	GalleryCategoryCommunity GalleryCategory = "COMMUNITY"
)

// GalleryCategoryValues lists all categories in display order.
func GalleryCategoryValues() []GalleryCategory {
	return []GalleryCategory{
		GalleryCategoryEvents,
		GalleryCategorySports,
		GalleryCategoryCulture,
		GalleryCategoryAcademics,
		GalleryCategoryCommunity,
	}
}

// ParseGalleryCategory uppercases raw input and matches it against known
// categories.
func ParseGalleryCategory(raw string) (GalleryCategory, error) {
	switch c := GalleryCategory(strings.ToUpper(strings.TrimSpace(raw))); c {
	case GalleryCategoryEvents, GalleryCategorySports, GalleryCategoryCulture, GalleryCategoryAcademics, GalleryCategoryCommunity:
		return c, nil
	default:
		return "", fmt.Errorf("invalid category value %q", raw)
	}
}

// GalleryItem is a single photo in the public gallery. Year is free-form
// text ("2024", "2023/2024") so it stays a string end to end.
type GalleryItem struct {
	ID           int64
	Title        string
	Description  *string
	Category     GalleryCategory
	Year         *string
	DisplayOrder int
	ImageURL     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

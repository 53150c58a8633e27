package domain

import (
	"fmt"
	"strings"
	"time"
)

// Campus enumerates union campuses.
type Campus string

const (
	CampusMain    Campus = "MAIN"
	CampusKaren   Campus = "KAREN"
	CampusCBD     Campus = "CBD"
	CampusNakuru  Campus = "NAKURU"
	CampusMombasa Campus = "MOMBASA"
)

// CampusValues lists all campuses in display order.
func CampusValues() []Campus {
	return []Campus{CampusMain, CampusKaren, CampusCBD, CampusNakuru, CampusMombasa}
}

// ParseCampus uppercases raw input and matches it against known campuses.
func ParseCampus(raw string) (Campus, error) {
	switch c := Campus(strings.ToUpper(strings.TrimSpace(raw))); c {
	case CampusMain, CampusKaren, CampusCBD, CampusNakuru, CampusMombasa:
		return c, nil
	default:
		return "", fmt.Errorf("invalid campus value %q", raw)
	}
}

// LeaderCategory enumerates leadership groupings within a campus.
type LeaderCategory string

const (
	LeaderCategoryExecutive  LeaderCategory = "EXECUTIVE"
	LeaderCategorySchoolReps LeaderCategory = "SCHOOL_REPS"
	LeaderCategoryHallReps   LeaderCategory = "HALL_REPS"
	LeaderCategoryCommittee  LeaderCategory = "COMMITTEE"
)

// LeaderCategoryValues lists all categories in display order.
func LeaderCategoryValues() []LeaderCategory {
	return []LeaderCategory{
		LeaderCategoryExecutive,
		LeaderCategorySchoolReps,
		LeaderCategoryHallReps,
		LeaderCategoryCommittee,
	}
}

// ParseLeaderCategory uppercases raw input and matches it against known
// categories.
func ParseLeaderCategory(raw string) (LeaderCategory, error) {
	switch c := LeaderCategory(strings.ToUpper(strings.TrimSpace(raw))); c {
	case LeaderCategoryExecutive, LeaderCategorySchoolReps, LeaderCategoryHallReps, LeaderCategoryCommittee:
		return c, nil
	default:
		return "", fmt.Errorf("invalid category value %q", raw)
	}
}

// EnumLabel renders an enum value as a human readable label
// ("SCHOOL_REPS" -> "School Reps").
func EnumLabel(value string) string {
	words := strings.Split(strings.ToLower(strings.ReplaceAll(value, "_", " ")), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// Leader models one member of the union leadership.
type Leader struct {
	ID            int64
	Name          string
	Bio           *string
	YearOfService string
	Campus        Campus
	Category      LeaderCategory
	PositionTitle string
	SchoolName    *string
	HallName      *string
	DisplayOrder  int
	ImageURL      *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/campus-union/cms-service/internal/cache"
	"github.com/campus-union/cms-service/internal/domain"
	"github.com/campus-union/cms-service/internal/repository"
	"github.com/campus-union/cms-service/internal/storage"
	apperrors "github.com/campus-union/cms-service/pkg/util"
)

const (
	maxLeaderImageBytes = 5 << 20
	leaderImagePrefix   = "leadership/images"
)

// LeadershipService manages the public leadership roster.
type LeadershipService struct {
	leaders repository.LeadershipRepository
	store   storage.ObjectStore
	cache   *cache.Cache
	logger  *zap.Logger
}

// LeadershipDependencies encapsulates requirements for the service.
type LeadershipDependencies struct {
	LeaderRepo repository.LeadershipRepository
	Store      storage.ObjectStore
	Cache      *cache.Cache
	Logger     *zap.Logger
}

// NewLeadershipService builds the service.
func NewLeadershipService(deps LeadershipDependencies) *LeadershipService {
	return &LeadershipService{
		leaders: deps.LeaderRepo,
		store:   deps.Store,
		cache:   deps.Cache,
		logger:  deps.Logger,
	}
}

// CreateLeaderInput carries the fields for a new leadership entry.
// Campus and Category arrive as raw strings and are validated against
// the known enum values.
type CreateLeaderInput struct {
	Name          string
	Bio           *string
	YearOfService string
	Campus        string
	Category      string
	PositionTitle string
	SchoolName    *string
	HallName      *string
	DisplayOrder  int
	Image         *UploadInput
}

// UpdateLeaderInput carries optional updates; nil fields are unchanged.
type UpdateLeaderInput struct {
	Name          *string
	Bio           *string
	YearOfService *string
	Campus        *string
	Category      *string
	PositionTitle *string
	SchoolName    *string
	HallName      *string
	DisplayOrder  *int
	Image         *UploadInput
	RemoveImage   bool
}

// Create validates and stores a leadership entry. A zero display order
// places the entry at the end of its campus and category group.
func (s *LeadershipService) Create(ctx context.Context, input CreateLeaderInput) (*domain.Leader, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("name is required", nil)
	}
	campus, err := domain.ParseCampus(input.Campus)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error(), nil)
	}
	category, err := domain.ParseLeaderCategory(input.Category)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error(), nil)
	}
	if input.Image != nil {
		if err := validateImageUpload(input.Image, maxLeaderImageBytes); err != nil {
			return nil, err
		}
	}

	displayOrder := input.DisplayOrder
	if displayOrder <= 0 {
		count, err := s.leaders.CountByGroup(ctx, campus, category)
		if err != nil {
			return nil, err
		}
		displayOrder = count + 1
	}

	var imageURL *string
	if input.Image != nil {
		key := storage.NewKey(leaderImagePrefix, input.Image.Filename)
		url, err := s.store.Put(ctx, key, input.Image.ContentType, input.Image.Data)
		if err != nil {
			return nil, err
		}
		imageURL = &url
	}

	leader := &domain.Leader{
		Name:          name,
		Bio:           input.Bio,
		YearOfService: strings.TrimSpace(input.YearOfService),
		Campus:        campus,
		Category:      category,
		PositionTitle: strings.TrimSpace(input.PositionTitle),
		SchoolName:    input.SchoolName,
		HallName:      input.HallName,
		DisplayOrder:  displayOrder,
		ImageURL:      imageURL,
	}
	if err := s.leaders.Create(ctx, leader); err != nil {
		if imageURL != nil {
			if delErr := s.store.Delete(ctx, *imageURL); delErr != nil {
				s.logger.Warn("orphaned leader image not removed", zap.String("url", *imageURL), zap.Error(delErr))
			}
		}
		return nil, err
	}

	s.bumpCache(ctx)
	return leader, nil
}

// Update applies partial changes to a leadership entry.
func (s *LeadershipService) Update(ctx context.Context, id int64, input UpdateLeaderInput) (*domain.Leader, error) {
	leader, err := s.leaders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("leader", nil)
		}
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperrors.NewValidationError("name is required", nil)
		}
		leader.Name = name
	}
	if input.Bio != nil {
		leader.Bio = input.Bio
	}
	if input.YearOfService != nil {
		leader.YearOfService = strings.TrimSpace(*input.YearOfService)
	}
	if input.Campus != nil {
		campus, err := domain.ParseCampus(*input.Campus)
		if err != nil {
			return nil, apperrors.NewValidationError(err.Error(), nil)
		}
		leader.Campus = campus
	}
	if input.Category != nil {
		category, err := domain.ParseLeaderCategory(*input.Category)
		if err != nil {
			return nil, apperrors.NewValidationError(err.Error(), nil)
		}
		leader.Category = category
	}
	if input.PositionTitle != nil {
		leader.PositionTitle = strings.TrimSpace(*input.PositionTitle)
	}
	if input.SchoolName != nil {
		leader.SchoolName = input.SchoolName
	}
	if input.HallName != nil {
		leader.HallName = input.HallName
	}
	if input.DisplayOrder != nil && *input.DisplayOrder > 0 {
		leader.DisplayOrder = *input.DisplayOrder
	}

	oldImageURL := leader.ImageURL
	var newImageURL *string
	switch {
	case input.Image != nil:
		if err := validateImageUpload(input.Image, maxLeaderImageBytes); err != nil {
			return nil, err
		}
		key := storage.NewKey(leaderImagePrefix, input.Image.Filename)
		url, err := s.store.Put(ctx, key, input.Image.ContentType, input.Image.Data)
		if err != nil {
			return nil, err
		}
		newImageURL = &url
		leader.ImageURL = newImageURL
	case input.RemoveImage && leader.ImageURL != nil:
		leader.ImageURL = nil
	}

	if err := s.leaders.Update(ctx, leader); err != nil {
		if newImageURL != nil {
			if delErr := s.store.Delete(ctx, *newImageURL); delErr != nil {
				s.logger.Warn("orphaned leader image not removed", zap.String("url", *newImageURL), zap.Error(delErr))
			}
		}
		return nil, err
	}

	if oldImageURL != nil && (newImageURL != nil || input.RemoveImage) {
		if err := s.store.Delete(ctx, *oldImageURL); err != nil {
			s.logger.Warn("replaced leader image not removed", zap.String("url", *oldImageURL), zap.Error(err))
		}
	}

	s.bumpCache(ctx)
	return leader, nil
}

// Delete removes a leadership entry and its stored image.
func (s *LeadershipService) Delete(ctx context.Context, id int64) error {
	leader, err := s.leaders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("leader", nil)
		}
		return err
	}

	if err := s.leaders.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("leader", nil)
		}
		return err
	}

	if leader.ImageURL != nil {
		if err := s.store.Delete(ctx, *leader.ImageURL); err != nil {
			s.logger.Warn("deleted leader image not removed", zap.String("url", *leader.ImageURL), zap.Error(err))
		}
	}

	s.bumpCache(ctx)
	return nil
}

// Get fetches one leadership entry.
func (s *LeadershipService) Get(ctx context.Context, id int64) (*domain.Leader, error) {
	leader, err := s.leaders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("leader", nil)
		}
		return nil, err
	}
	return leader, nil
}

// ListLeadersInput narrows the flat listing. Raw enum strings are
// validated when present.
type ListLeadersInput struct {
	Campus   *string
	Category *string
	Year     *string
	Limit    int
	Offset   int
}

// List returns leadership entries matching the filter.
func (s *LeadershipService) List(ctx context.Context, input ListLeadersInput) ([]domain.Leader, error) {
	filter := repository.LeaderFilter{Year: input.Year, Limit: input.Limit, Offset: input.Offset}
	if input.Campus != nil {
		campus, err := domain.ParseCampus(*input.Campus)
		if err != nil {
			return nil, apperrors.NewValidationError(err.Error(), nil)
		}
		filter.Campus = &campus
	}
	if input.Category != nil {
		category, err := domain.ParseLeaderCategory(*input.Category)
		if err != nil {
			return nil, apperrors.NewValidationError(err.Error(), nil)
		}
		filter.Category = &category
	}
	return s.leaders.List(ctx, filter)
}

// Reorder applies a batch of display order changes.
func (s *LeadershipService) Reorder(ctx context.Context, updates []repository.DisplayOrderUpdate) error {
	if len(updates) == 0 {
		return apperrors.NewValidationError("no reorder items given", nil)
	}
	if err := s.leaders.UpdateDisplayOrders(ctx, updates); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("leader", nil)
		}
		return err
	}
	s.bumpCache(ctx)
	return nil
}

// CategoryGroup collects the leaders of one category within a campus.
type CategoryGroup struct {
	Category domain.LeaderCategory `json:"category"`
	Leaders  []domain.Leader       `json:"leaders"`
}

// CampusGroup collects the category groups of one campus.
type CampusGroup struct {
	Campus     domain.Campus   `json:"campus"`
	Categories []CategoryGroup `json:"categories"`
}

// Structure returns the full roster grouped campus by campus and
// category by category, in enum display order. The result is cached.
func (s *LeadershipService) Structure(ctx context.Context, year *string) ([]CampusGroup, error) {
	key, err := s.cache.BuildKey(ctx, cache.KeyLeadershipStructure(year)...)
	if err != nil {
		s.logger.Warn("cache unavailable for leadership structure", zap.Error(err))
		return s.buildStructure(ctx, year)
	}

	var groups []CampusGroup
	err = s.cache.FetchJSON(ctx, key, &groups, func(ctx context.Context) (interface{}, error) {
		return s.buildStructure(ctx, year)
	})
	if err != nil {
		return nil, err
	}
	return groups, nil
}

func (s *LeadershipService) buildStructure(ctx context.Context, year *string) ([]CampusGroup, error) {
	leaders, err := s.leaders.List(ctx, repository.LeaderFilter{Year: year})
	if err != nil {
		return nil, err
	}

	byGroup := make(map[domain.Campus]map[domain.LeaderCategory][]domain.Leader)
	for _, leader := range leaders {
		if byGroup[leader.Campus] == nil {
			byGroup[leader.Campus] = make(map[domain.LeaderCategory][]domain.Leader)
		}
		byGroup[leader.Campus][leader.Category] = append(byGroup[leader.Campus][leader.Category], leader)
	}

	var groups []CampusGroup
	for _, campus := range domain.CampusValues() {
		categories := byGroup[campus]
		if len(categories) == 0 {
			continue
		}
		group := CampusGroup{Campus: campus}
		for _, category := range domain.LeaderCategoryValues() {
			members := categories[category]
			if len(members) == 0 {
				continue
			}
			group.Categories = append(group.Categories, CategoryGroup{Category: category, Leaders: members})
		}
		groups = append(groups, group)
	}
	return groups, nil
}

// Years lists the distinct years of service, newest first.
func (s *LeadershipService) Years(ctx context.Context) ([]string, error) {
	return s.leaders.DistinctYears(ctx)
}

func (s *LeadershipService) bumpCache(ctx context.Context) {
	if err := s.cache.Bump(ctx); err != nil {
		s.logger.Warn("cache bump failed", zap.Error(err))
	}
}

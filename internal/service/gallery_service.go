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
	maxGalleryImageBytes = 10 << 20
	galleryImagePrefix   = "gallery/images"
)

// GalleryService manages the public photo gallery.
type GalleryService struct {
	gallery repository.GalleryRepository
	store   storage.ObjectStore
	cache   *cache.Cache
	logger  *zap.Logger
}

// GalleryDependencies encapsulates requirements for the service.
type GalleryDependencies struct {
	GalleryRepo repository.GalleryRepository
	Store       storage.ObjectStore
	Cache       *cache.Cache
	Logger      *zap.Logger
}

// NewGalleryService builds the service.
func NewGalleryService(deps GalleryDependencies) *GalleryService {
	return &GalleryService{
		gallery: deps.GalleryRepo,
		store:   deps.Store,
		cache:   deps.Cache,
		logger:  deps.Logger,
	}
}

// CreateGalleryItemInput carries the fields for a new gallery item. The
// image is mandatory; an item without a photo has nothing to show.
type CreateGalleryItemInput struct {
	Title        string
	Description  *string
	Category     string
	Year         *string
	DisplayOrder int
	Image        *UploadInput
}

// UpdateGalleryItemInput carries optional updates; nil fields are
// unchanged.
type UpdateGalleryItemInput struct {
	Title        *string
	Description  *string
	Category     *string
	Year         *string
	DisplayOrder *int
	Image        *UploadInput
}

// Create validates and stores a gallery item. A zero display order
// places the item at the end of its category.
func (s *GalleryService) Create(ctx context.Context, input CreateGalleryItemInput) (*domain.GalleryItem, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperrors.NewValidationError("title is required", nil)
	}
	category, err := domain.ParseGalleryCategory(input.Category)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error(), nil)
	}
	if input.Image == nil {
		return nil, apperrors.NewValidationError("image is required", nil)
	}
	if err := validateImageUpload(input.Image, maxGalleryImageBytes); err != nil {
		return nil, err
	}

	displayOrder := input.DisplayOrder
	if displayOrder <= 0 {
		count, err := s.gallery.CountInCategory(ctx, category)
		if err != nil {
			return nil, err
		}
		displayOrder = count + 1
	}

	key := storage.NewKey(galleryImagePrefix, input.Image.Filename)
	imageURL, err := s.store.Put(ctx, key, input.Image.ContentType, input.Image.Data)
	if err != nil {
		return nil, err
	}

	item := &domain.GalleryItem{
		Title:        title,
		Description:  input.Description,
		Category:     category,
		Year:         input.Year,
		DisplayOrder: displayOrder,
		ImageURL:     imageURL,
	}
	if err := s.gallery.Create(ctx, item); err != nil {
		if delErr := s.store.Delete(ctx, imageURL); delErr != nil {
			s.logger.Warn("orphaned gallery image not removed", zap.String("url", imageURL), zap.Error(delErr))
		}
		return nil, err
	}

	s.bumpCache(ctx)
	return item, nil
}

// Update applies partial changes to a gallery item.
func (s *GalleryService) Update(ctx context.Context, id int64, input UpdateGalleryItemInput) (*domain.GalleryItem, error) {
	item, err := s.gallery.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("gallery item", nil)
		}
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, apperrors.NewValidationError("title is required", nil)
		}
		item.Title = title
	}
	if input.Description != nil {
		item.Description = input.Description
	}
	if input.Category != nil {
		category, err := domain.ParseGalleryCategory(*input.Category)
		if err != nil {
			return nil, apperrors.NewValidationError(err.Error(), nil)
		}
		item.Category = category
	}
	if input.Year != nil {
		item.Year = input.Year
	}
	if input.DisplayOrder != nil && *input.DisplayOrder > 0 {
		item.DisplayOrder = *input.DisplayOrder
	}

	oldImageURL := item.ImageURL
	var replaced bool
	if input.Image != nil {
		if err := validateImageUpload(input.Image, maxGalleryImageBytes); err != nil {
			return nil, err
		}
		key := storage.NewKey(galleryImagePrefix, input.Image.Filename)
		url, err := s.store.Put(ctx, key, input.Image.ContentType, input.Image.Data)
		if err != nil {
			return nil, err
		}
		item.ImageURL = url
		replaced = true
	}

	if err := s.gallery.Update(ctx, item); err != nil {
		if replaced {
			if delErr := s.store.Delete(ctx, item.ImageURL); delErr != nil {
				s.logger.Warn("orphaned gallery image not removed", zap.String("url", item.ImageURL), zap.Error(delErr))
			}
		}
		return nil, err
	}

	if replaced {
		if err := s.store.Delete(ctx, oldImageURL); err != nil {
			s.logger.Warn("replaced gallery image not removed", zap.String("url", oldImageURL), zap.Error(err))
		}
	}

	s.bumpCache(ctx)
	return item, nil
}

// Delete removes a gallery item and its stored image.
func (s *GalleryService) Delete(ctx context.Context, id int64) error {
	item, err := s.gallery.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("gallery item", nil)
		}
		return err
	}

	if err := s.gallery.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("gallery item", nil)
		}
		return err
	}

	if err := s.store.Delete(ctx, item.ImageURL); err != nil {
		s.logger.Warn("deleted gallery image not removed", zap.String("url", item.ImageURL), zap.Error(err))
	}

	s.bumpCache(ctx)
	return nil
}

// Get fetches one gallery item.
func (s *GalleryService) Get(ctx context.Context, id int64) (*domain.GalleryItem, error) {
	item, err := s.gallery.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("gallery item", nil)
		}
		return nil, err
	}
	return item, nil
}

// ListGalleryInput narrows the flat listing.
type ListGalleryInput struct {
	Category *string
	Year     *string
	Limit    int
	Offset   int
}

// List returns gallery items matching the filter, ordered for display.
func (s *GalleryService) List(ctx context.Context, input ListGalleryInput) ([]domain.GalleryItem, error) {
	filter := repository.GalleryFilter{Year: input.Year, Limit: input.Limit, Offset: input.Offset}
	if input.Category != nil {
		category, err := domain.ParseGalleryCategory(*input.Category)
		if err != nil {
			return nil, apperrors.NewValidationError(err.Error(), nil)
		}
		filter.Category = &category
	}
	return s.gallery.List(ctx, filter)
}

// GalleryCategoryGroup collects the items of one category.
type GalleryCategoryGroup struct {
	Category domain.GalleryCategory `json:"category"`
	Items    []domain.GalleryItem   `json:"items"`
}

// ByCategory returns all items grouped per category in enum display
// order, optionally narrowed to one year. The result is cached.
func (s *GalleryService) ByCategory(ctx context.Context, year *string) ([]GalleryCategoryGroup, error) {
	key, err := s.cache.BuildKey(ctx, cache.KeyGalleryByCategory(year)...)
	if err != nil {
		s.logger.Warn("cache unavailable for gallery grouping", zap.Error(err))
		return s.buildByCategory(ctx, year)
	}

	var groups []GalleryCategoryGroup
	err = s.cache.FetchJSON(ctx, key, &groups, func(ctx context.Context) (interface{}, error) {
		return s.buildByCategory(ctx, year)
	})
	if err != nil {
		return nil, err
	}
	return groups, nil
}

func (s *GalleryService) buildByCategory(ctx context.Context, year *string) ([]GalleryCategoryGroup, error) {
	items, err := s.gallery.ListByCategory(ctx, year)
	if err != nil {
		return nil, err
	}

	byCategory := make(map[domain.GalleryCategory][]domain.GalleryItem)
	for _, item := range items {
		byCategory[item.Category] = append(byCategory[item.Category], item)
	}

	var groups []GalleryCategoryGroup
	for _, category := range domain.GalleryCategoryValues() {
		members := byCategory[category]
		if len(members) == 0 {
			continue
		}
		groups = append(groups, GalleryCategoryGroup{Category: category, Items: members})
	}
	return groups, nil
}

// GallerySummary aggregates totals for the admin dashboard.
type GallerySummary struct {
	Total      int                            `json:"total"`
	ByCategory map[domain.GalleryCategory]int `json:"by_category"`
	Years      []string                       `json:"years"`
}

// Summary reports item counts per category and the known years.
func (s *GalleryService) Summary(ctx context.Context) (*GallerySummary, error) {
	counts, err := s.gallery.CountByCategory(ctx)
	if err != nil {
		return nil, err
	}
	years, err := s.gallery.DistinctYears(ctx)
	if err != nil {
		return nil, err
	}

	total := 0
	for _, count := range counts {
		total += count
	}
	return &GallerySummary{Total: total, ByCategory: counts, Years: years}, nil
}

// Reorder applies a batch of display order changes.
func (s *GalleryService) Reorder(ctx context.Context, updates []repository.DisplayOrderUpdate) error {
	if len(updates) == 0 {
		return apperrors.NewValidationError("no reorder items given", nil)
	}
	if err := s.gallery.UpdateDisplayOrders(ctx, updates); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("gallery item", nil)
		}
		return err
	}
	s.bumpCache(ctx)
	return nil
}

// Years lists the distinct years present in the gallery, newest first.
func (s *GalleryService) Years(ctx context.Context) ([]string, error) {
	return s.gallery.DistinctYears(ctx)
}

func (s *GalleryService) bumpCache(ctx context.Context) {
	if err := s.cache.Bump(ctx); err != nil {
		s.logger.Warn("cache bump failed", zap.Error(err))
	}
}

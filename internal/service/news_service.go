package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/campus-union/cms-service/internal/cache"
	"github.com/campus-union/cms-service/internal/domain"
	"github.com/campus-union/cms-service/internal/events"
	"github.com/campus-union/cms-service/internal/repository"
	"github.com/campus-union/cms-service/internal/storage"
	apperrors "github.com/campus-union/cms-service/pkg/util"
)

const (
	maxNewsImageBytes = 5 << 20
	newsImagePrefix   = "news/images"

	minNewsTitleLen   = 10
	maxNewsTitleLen   = 255
	minNewsContentLen = 50
)

// NewsService manages articles: validation, slug assignment, image
// storage and the publish notifications.
type NewsService struct {
	news       repository.NewsRepository
	store      storage.ObjectStore
	dispatcher events.Dispatcher
	cache      *cache.Cache
	logger     *zap.Logger
}

// NewsDependencies encapsulates requirements for the news service.
type NewsDependencies struct {
	NewsRepo   repository.NewsRepository
	Store      storage.ObjectStore
	Dispatcher events.Dispatcher
	Cache      *cache.Cache
	Logger     *zap.Logger
}

// NewNewsService builds the service.
func NewNewsService(deps NewsDependencies) *NewsService {
	return &NewsService{
		news:       deps.NewsRepo,
		store:      deps.Store,
		dispatcher: deps.Dispatcher,
		cache:      deps.Cache,
		logger:     deps.Logger,
	}
}

// CreateNewsInput carries the fields for a new article.
type CreateNewsInput struct {
	Title       string
	Content     string
	PublishedAt *time.Time
	Image       *UploadInput
}

// UpdateNewsInput carries optional updates; nil fields are unchanged.
// RemoveImage drops the current image without uploading a new one.
type UpdateNewsInput struct {
	Title       *string
	Content     *string
	PublishedAt *time.Time
	Image       *UploadInput
	RemoveImage bool
}

// Create validates and stores a new article. The image is uploaded
// before the row is inserted; if the insert fails the blob is removed
// again so the store does not accumulate orphans.
func (s *NewsService) Create(ctx context.Context, admin *domain.AdminPrincipal, input CreateNewsInput) (*domain.NewsArticle, error) {
	title := strings.TrimSpace(input.Title)
	content := strings.TrimSpace(input.Content)
	if err := validateNewsTitle(title); err != nil {
		return nil, err
	}
	if err := validateNewsContent(content); err != nil {
		return nil, err
	}
	if input.Image != nil {
		if err := validateImageUpload(input.Image, maxNewsImageBytes); err != nil {
			return nil, err
		}
	}

	slug, err := s.uniqueSlug(ctx, title, 0)
	if err != nil {
		return nil, err
	}

	publishedAt := time.Now()
	if input.PublishedAt != nil {
		publishedAt = *input.PublishedAt
	}
	publishedAt = publishedAt.Truncate(time.Minute)

	var imageURL *string
	if input.Image != nil {
		key := storage.NewKey(newsImagePrefix, input.Image.Filename)
		url, err := s.store.Put(ctx, key, input.Image.ContentType, input.Image.Data)
		if err != nil {
			return nil, err
		}
		imageURL = &url
	}

	article := &domain.NewsArticle{
		Title:       title,
		Slug:        slug,
		Content:     content,
		ImageURL:    imageURL,
		PublishedAt: publishedAt,
		CreatedBy:   admin.ID,
	}
	if err := s.news.Create(ctx, article); err != nil {
		if imageURL != nil {
			if delErr := s.store.Delete(ctx, *imageURL); delErr != nil {
				s.logger.Warn("orphaned article image not removed", zap.String("url", *imageURL), zap.Error(delErr))
			}
		}
		return nil, err
	}

	s.publishNewsEvent(ctx, events.EventNewsPublished, article)
	s.bumpCache(ctx)
	return article, nil
}

// Update applies partial changes. A title change regenerates the slug.
// Replacing the image uploads the new blob first and removes the old
// one only after the row update succeeds.
func (s *NewsService) Update(ctx context.Context, id int64, input UpdateNewsInput) (*domain.NewsArticle, error) {
	article, err := s.news.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("article", nil)
		}
		return nil, err
	}

	changed := false
	material := false

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if err := validateNewsTitle(title); err != nil {
			return nil, err
		}
		if title != article.Title {
			slug, err := s.uniqueSlug(ctx, title, article.ID)
			if err != nil {
				return nil, err
			}
			article.Title = title
			article.Slug = slug
			changed = true
			material = true
		}
	}
	if input.Content != nil {
		content := strings.TrimSpace(*input.Content)
		if err := validateNewsContent(content); err != nil {
			return nil, err
		}
		if content != article.Content {
			article.Content = content
			changed = true
			material = true
		}
	}
	if input.PublishedAt != nil {
		publishedAt := input.PublishedAt.Truncate(time.Minute)
		if !publishedAt.Equal(article.PublishedAt) {
			article.PublishedAt = publishedAt
			changed = true
		}
	}

	oldImageURL := article.ImageURL
	var newImageURL *string
	switch {
	case input.Image != nil:
		if err := validateImageUpload(input.Image, maxNewsImageBytes); err != nil {
			return nil, err
		}
		key := storage.NewKey(newsImagePrefix, input.Image.Filename)
		url, err := s.store.Put(ctx, key, input.Image.ContentType, input.Image.Data)
		if err != nil {
			return nil, err
		}
		newImageURL = &url
		article.ImageURL = newImageURL
		changed = true
		material = true
	case input.RemoveImage && article.ImageURL != nil:
		article.ImageURL = nil
		changed = true
		material = true
	}

	if !changed {
		return article, nil
	}

	if err := s.news.Update(ctx, article); err != nil {
		if newImageURL != nil {
			if delErr := s.store.Delete(ctx, *newImageURL); delErr != nil {
				s.logger.Warn("orphaned article image not removed", zap.String("url", *newImageURL), zap.Error(delErr))
			}
		}
		return nil, err
	}

	if oldImageURL != nil && (newImageURL != nil || input.RemoveImage) {
		if err := s.store.Delete(ctx, *oldImageURL); err != nil {
			s.logger.Warn("replaced article image not removed", zap.String("url", *oldImageURL), zap.Error(err))
		}
	}

	if material {
		s.publishNewsEvent(ctx, events.EventNewsUpdated, article)
	}
	s.bumpCache(ctx)
	return article, nil
}

// Delete removes an article and its stored image.
func (s *NewsService) Delete(ctx context.Context, id int64) error {
	article, err := s.news.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("article", nil)
		}
		return err
	}

	if err := s.news.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("article", nil)
		}
		return err
	}

	if article.ImageURL != nil {
		if err := s.store.Delete(ctx, *article.ImageURL); err != nil {
			s.logger.Warn("deleted article image not removed", zap.String("url", *article.ImageURL), zap.Error(err))
		}
	}

	s.bumpCache(ctx)
	return nil
}

// GetByID fetches one article.
func (s *NewsService) GetByID(ctx context.Context, id int64) (*domain.NewsArticle, error) {
	article, err := s.news.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("article", nil)
		}
		return nil, err
	}
	return article, nil
}

// GetBySlug fetches one article by its public slug.
func (s *NewsService) GetBySlug(ctx context.Context, slug string) (*domain.NewsArticle, error) {
	article, err := s.news.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("article", nil)
		}
		return nil, err
	}
	return article, nil
}

// List returns a page of articles with the unpaged total.
func (s *NewsService) List(ctx context.Context, filter repository.NewsFilter) ([]domain.NewsArticle, int, error) {
	items, err := s.news.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.news.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// ListMine returns articles created by one admin.
func (s *NewsService) ListMine(ctx context.Context, adminID int64, limit, offset int) ([]domain.NewsArticle, int, error) {
	return s.List(ctx, repository.NewsFilter{CreatedBy: &adminID, Limit: limit, Offset: offset})
}

type newsPage struct {
	Items []domain.NewsArticle `json:"items"`
	Total int                  `json:"total"`
}

// ListPublic serves the public listing through the cache.
func (s *NewsService) ListPublic(ctx context.Context, limit, offset int) ([]domain.NewsArticle, int, error) {
	key, err := s.cache.BuildKey(ctx, cache.KeyNewsList(limit, offset)...)
	if err != nil {
		s.logger.Warn("cache unavailable for news listing", zap.Error(err))
		return s.List(ctx, repository.NewsFilter{Limit: limit, Offset: offset})
	}

	var page newsPage
	err = s.cache.FetchJSON(ctx, key, &page, func(ctx context.Context) (interface{}, error) {
		items, total, err := s.List(ctx, repository.NewsFilter{Limit: limit, Offset: offset})
		if err != nil {
			return nil, err
		}
		return newsPage{Items: items, Total: total}, nil
	})
	if err != nil {
		return nil, 0, err
	}
	return page.Items, page.Total, nil
}

// uniqueSlug derives a slug from the title, probing base, base-1,
// base-2 and so on until a free one is found. excludeID lets updates
// keep their own slug.
func (s *NewsService) uniqueSlug(ctx context.Context, title string, excludeID int64) (string, error) {
	base := domain.Slugify(title)
	if base == "" {
		base = "article"
	}

	candidate := base
	for counter := 1; ; counter++ {
		exists, err := s.news.SlugExists(ctx, candidate, excludeID)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, counter)
	}
}

func (s *NewsService) publishNewsEvent(ctx context.Context, eventType events.EventType, article *domain.NewsArticle) {
	err := s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Payload: events.NewsPayload{
			ArticleID: article.ID,
			Title:     article.Title,
			Slug:      article.Slug,
		},
	})
	if err != nil {
		s.logger.Warn("news event handler failed", zap.String("type", string(eventType)), zap.Error(err))
	}
}

func (s *NewsService) bumpCache(ctx context.Context) {
	if err := s.cache.Bump(ctx); err != nil {
		s.logger.Warn("cache bump failed", zap.Error(err))
	}
}

func validateNewsTitle(title string) error {
	n := utf8.RuneCountInString(title)
	if n < minNewsTitleLen || n > maxNewsTitleLen {
		return apperrors.NewValidationError(
			fmt.Sprintf("title must be between %d and %d characters", minNewsTitleLen, maxNewsTitleLen), nil)
	}
	return nil
}

func validateNewsContent(content string) error {
	if utf8.RuneCountInString(content) < minNewsContentLen {
		return apperrors.NewValidationError(
			fmt.Sprintf("content must be at least %d characters", minNewsContentLen), nil)
	}
	return nil
}

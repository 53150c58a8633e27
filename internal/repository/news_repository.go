package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campus-union/cms-service/internal/domain"
)

// NewsFilter captures list parameters for news articles.
type NewsFilter struct {
	CreatedBy *int64
	Limit     int
	Offset    int
}

// NewsRepository defines persistence access for news articles.
type NewsRepository interface {
	Create(ctx context.Context, article *domain.NewsArticle) error
	Update(ctx context.Context, article *domain.NewsArticle) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.NewsArticle, error)
	GetBySlug(ctx context.Context, slug string) (*domain.NewsArticle, error)
	SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error)
	List(ctx context.Context, filter NewsFilter) ([]domain.NewsArticle, error)
	Count(ctx context.Context, filter NewsFilter) (int, error)
}

type newsRepository struct {
	pool *pgxpool.Pool
}

// NewNewsRepository returns a Postgres-backed implementation.
func NewNewsRepository(pool *pgxpool.Pool) NewsRepository {
	return &newsRepository{pool: pool}
}

const newsColumns = `id, title, slug, content, image_url, published_at, created_by, created_at, updated_at`

func (r *newsRepository) Create(ctx context.Context, article *domain.NewsArticle) error {
	const query = `
        INSERT INTO news_articles (title, slug, content, image_url, published_at, created_by)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		article.Title,
		article.Slug,
		article.Content,
		article.ImageURL,
		article.PublishedAt,
		article.CreatedBy,
	).Scan(&article.ID, &article.CreatedAt, &article.UpdatedAt)
}

func (r *newsRepository) Update(ctx context.Context, article *domain.NewsArticle) error {
	const query = `
        UPDATE news_articles SET title=$1, slug=$2, content=$3, image_url=$4, published_at=$5, updated_at=NOW()
        WHERE id=$6`

	cmd, err := r.pool.Exec(ctx, query,
		article.Title,
		article.Slug,
		article.Content,
		article.ImageURL,
		article.PublishedAt,
		article.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *newsRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM news_articles WHERE id=$1`

	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *newsRepository) GetByID(ctx context.Context, id int64) (*domain.NewsArticle, error) {
	const query = `SELECT ` + newsColumns + ` FROM news_articles WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *newsRepository) GetBySlug(ctx context.Context, slug string) (*domain.NewsArticle, error) {
	const query = `SELECT ` + newsColumns + ` FROM news_articles WHERE slug=$1`
	return r.fetchSingle(ctx, query, slug)
}

// SlugExists reports whether another article already uses the slug.
// excludeID lets updates ignore the article being edited.
func (r *newsRepository) SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM news_articles WHERE slug=$1 AND id<>$2)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, slug, excludeID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *newsRepository) List(ctx context.Context, filter NewsFilter) ([]domain.NewsArticle, error) {
	base := `SELECT ` + newsColumns + ` FROM news_articles`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.CreatedBy != nil {
		args = append(args, *filter.CreatedBy)
		clauses = append(clauses, fmt.Sprintf("created_by=$%d", len(args)))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY published_at DESC LIMIT %d OFFSET %d`,
		base, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanNewsArticles(rows)
}

func (r *newsRepository) Count(ctx context.Context, filter NewsFilter) (int, error) {
	base := `SELECT COUNT(*) FROM news_articles`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.CreatedBy != nil {
		args = append(args, *filter.CreatedBy)
		clauses = append(clauses, fmt.Sprintf("created_by=$%d", len(args)))
	}

	query := fmt.Sprintf(`%s WHERE %s`, base, strings.Join(clauses, " AND "))

	var count int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *newsRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.NewsArticle, error) {
	var article domain.NewsArticle
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&article.ID,
		&article.Title,
		&article.Slug,
		&article.Content,
		&article.ImageURL,
		&article.PublishedAt,
		&article.CreatedBy,
		&article.CreatedAt,
		&article.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &article, nil
}

func scanNewsArticles(rows pgx.Rows) ([]domain.NewsArticle, error) {
	var result []domain.NewsArticle
	for rows.Next() {
		var article domain.NewsArticle
		if err := rows.Scan(
			&article.ID,
			&article.Title,
			&article.Slug,
			&article.Content,
			&article.ImageURL,
			&article.PublishedAt,
			&article.CreatedBy,
			&article.CreatedAt,
			&article.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, article)
	}
	return result, rows.Err()
}

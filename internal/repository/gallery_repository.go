package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campus-union/cms-service/internal/domain"
)

// GalleryFilter captures list parameters for gallery items.
type GalleryFilter struct {
	Category *domain.GalleryCategory
	Year     *string
	Limit    int
	Offset   int
}

// GalleryRepository defines persistence access for gallery items.
type GalleryRepository interface {
	Create(ctx context.Context, item *domain.GalleryItem) error
	Update(ctx context.Context, item *domain.GalleryItem) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.GalleryItem, error)
	List(ctx context.Context, filter GalleryFilter) ([]domain.GalleryItem, error)
	ListByCategory(ctx context.Context, year *string) ([]domain.GalleryItem, error)
	CountInCategory(ctx context.Context, category domain.GalleryCategory) (int, error)
	CountByCategory(ctx context.Context) (map[domain.GalleryCategory]int, error)
	DistinctYears(ctx context.Context) ([]string, error)
	UpdateDisplayOrders(ctx context.Context, updates []DisplayOrderUpdate) error
}

type galleryRepository struct {
	pool *pgxpool.Pool
}

// NewGalleryRepository returns a Postgres-backed implementation.
func NewGalleryRepository(pool *pgxpool.Pool) GalleryRepository {
	return &galleryRepository{pool: pool}
}

const galleryColumns = `id, title, description, category, year, display_order, image_url, created_at, updated_at`

func (r *galleryRepository) Create(ctx context.Context, item *domain.GalleryItem) error {
	const query = `
        INSERT INTO gallery_items (title, description, category, year, display_order, image_url)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		item.Title,
		item.Description,
		item.Category,
		item.Year,
		item.DisplayOrder,
		item.ImageURL,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
}

func (r *galleryRepository) Update(ctx context.Context, item *domain.GalleryItem) error {
	const query = `
        UPDATE gallery_items SET title=$1, description=$2, category=$3, year=$4, display_order=$5, image_url=$6, updated_at=NOW()
        WHERE id=$7`

	cmd, err := r.pool.Exec(ctx, query,
		item.Title,
		item.Description,
		item.Category,
		item.Year,
		item.DisplayOrder,
		item.ImageURL,
		item.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *galleryRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM gallery_items WHERE id=$1`

	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *galleryRepository) GetByID(ctx context.Context, id int64) (*domain.GalleryItem, error) {
	const query = `SELECT ` + galleryColumns + ` FROM gallery_items WHERE id=$1`

	var item domain.GalleryItem
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&item.ID,
		&item.Title,
		&item.Description,
		&item.Category,
		&item.Year,
		&item.DisplayOrder,
		&item.ImageURL,
		&item.CreatedAt,
		&item.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *galleryRepository) List(ctx context.Context, filter GalleryFilter) ([]domain.GalleryItem, error) {
	base := `SELECT ` + galleryColumns + ` FROM gallery_items`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Category != nil {
		args = append(args, *filter.Category)
		clauses = append(clauses, fmt.Sprintf("category=$%d", len(args)))
	}
	if filter.Year != nil {
		args = append(args, *filter.Year)
		clauses = append(clauses, fmt.Sprintf("year=$%d", len(args)))
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY display_order, created_at DESC`,
		base, strings.Join(clauses, " AND "))
	if filter.Limit > 0 {
		offset := filter.Offset
		if offset < 0 {
			offset = 0
		}
		query = fmt.Sprintf("%s LIMIT %d OFFSET %d", query, filter.Limit, offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanGalleryItems(rows)
}

// ListByCategory returns all items ordered for the grouped public view.
func (r *galleryRepository) ListByCategory(ctx context.Context, year *string) ([]domain.GalleryItem, error) {
	base := `SELECT ` + galleryColumns + ` FROM gallery_items`
	clauses := []string{"1=1"}
	args := []any{}

	if year != nil {
		args = append(args, *year)
		clauses = append(clauses, fmt.Sprintf("year=$%d", len(args)))
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY category, display_order`,
		base, strings.Join(clauses, " AND "))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanGalleryItems(rows)
}

func (r *galleryRepository) CountInCategory(ctx context.Context, category domain.GalleryCategory) (int, error) {
	const query = `SELECT COUNT(*) FROM gallery_items WHERE category=$1`

	var count int
	if err := r.pool.QueryRow(ctx, query, category).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *galleryRepository) CountByCategory(ctx context.Context) (map[domain.GalleryCategory]int, error) {
	const query = `SELECT category, COUNT(*) FROM gallery_items GROUP BY category`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.GalleryCategory]int)
	for rows.Next() {
		var category domain.GalleryCategory
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			return nil, err
		}
		counts[category] = count
	}
	return counts, rows.Err()
}

func (r *galleryRepository) DistinctYears(ctx context.Context) ([]string, error) {
	const query = `SELECT DISTINCT year FROM gallery_items WHERE year IS NOT NULL ORDER BY year DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var years []string
	for rows.Next() {
		var year string
		if err := rows.Scan(&year); err != nil {
			return nil, err
		}
		years = append(years, year)
	}
	return years, rows.Err()
}

// UpdateDisplayOrders applies a batch of ordering changes in one
// transaction. An unknown id rolls the whole batch back.
func (r *galleryRepository) UpdateDisplayOrders(ctx context.Context, updates []DisplayOrderUpdate) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	const query = `UPDATE gallery_items SET display_order=$1, updated_at=NOW() WHERE id=$2`
	for _, update := range updates {
		cmd, err := tx.Exec(ctx, query, update.DisplayOrder, update.ID)
		if err != nil {
			return err
		}
		if cmd.RowsAffected() == 0 {
			return pgx.ErrNoRows
		}
	}
	return tx.Commit(ctx)
}

func scanGalleryItems(rows pgx.Rows) ([]domain.GalleryItem, error) {
	var result []domain.GalleryItem
	for rows.Next() {
		var item domain.GalleryItem
		if err := rows.Scan(
			&item.ID,
			&item.Title,
			&item.Description,
			&item.Category,
			&item.Year,
			&item.DisplayOrder,
			&item.ImageURL,
			&item.CreatedAt,
			&item.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, rows.Err()
}

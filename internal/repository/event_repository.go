package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campus-union/cms-service/internal/domain"
)

// EventRepository defines persistence access for union events.
type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) error
	Update(ctx context.Context, event *domain.Event) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Event, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Event, error)
	SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error)
	List(ctx context.Context, limit, offset int) ([]domain.Event, error)
	ListUpcoming(ctx context.Context, now time.Time, limit, offset int) ([]domain.Event, error)
}

type eventRepository struct {
	pool *pgxpool.Pool
}

// NewEventRepository returns a Postgres-backed implementation.
func NewEventRepository(pool *pgxpool.Pool) EventRepository {
	return &eventRepository{pool: pool}
}

const eventColumns = `id, title, slug, description, venue, starts_at, ends_at, capacity, image_url, created_by, created_at, updated_at`

func (r *eventRepository) Create(ctx context.Context, event *domain.Event) error {
	const query = `
        INSERT INTO events (title, slug, description, venue, starts_at, ends_at, capacity, image_url, created_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		event.Title,
		event.Slug,
		event.Description,
		event.Venue,
		event.StartsAt,
		event.EndsAt,
		event.Capacity,
		event.ImageURL,
		event.CreatedBy,
	).Scan(&event.ID, &event.CreatedAt, &event.UpdatedAt)
}

func (r *eventRepository) Update(ctx context.Context, event *domain.Event) error {
	const query = `
        UPDATE events SET title=$1, slug=$2, description=$3, venue=$4, starts_at=$5, ends_at=$6, capacity=$7, image_url=$8, updated_at=NOW()
        WHERE id=$9`

	cmd, err := r.pool.Exec(ctx, query,
		event.Title,
		event.Slug,
		event.Description,
		event.Venue,
		event.StartsAt,
		event.EndsAt,
		event.Capacity,
		event.ImageURL,
		event.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *eventRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM events WHERE id=$1`

	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	const query = `SELECT ` + eventColumns + ` FROM events WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *eventRepository) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	const query = `SELECT ` + eventColumns + ` FROM events WHERE slug=$1`
	return r.fetchSingle(ctx, query, slug)
}

// SlugExists reports whether another event already uses the slug.
// excludeID lets updates ignore the event being edited.
func (r *eventRepository) SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM events WHERE slug=$1 AND id<>$2)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, slug, excludeID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *eventRepository) List(ctx context.Context, limit, offset int) ([]domain.Event, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	const query = `SELECT ` + eventColumns + ` FROM events ORDER BY starts_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEvents(rows)
}

// ListUpcoming returns events that have not started yet, soonest first.
func (r *eventRepository) ListUpcoming(ctx context.Context, now time.Time, limit, offset int) ([]domain.Event, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	const query = `SELECT ` + eventColumns + ` FROM events WHERE starts_at >= $1 ORDER BY starts_at LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, now, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEvents(rows)
}

func (r *eventRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Event, error) {
	var event domain.Event
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&event.ID,
		&event.Title,
		&event.Slug,
		&event.Description,
		&event.Venue,
		&event.StartsAt,
		&event.EndsAt,
		&event.Capacity,
		&event.ImageURL,
		&event.CreatedBy,
		&event.CreatedAt,
		&event.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &event, nil
}

func scanEvents(rows pgx.Rows) ([]domain.Event, error) {
	var result []domain.Event
	for rows.Next() {
		var event domain.Event
		if err := rows.Scan(
			&event.ID,
			&event.Title,
			&event.Slug,
			&event.Description,
			&event.Venue,
			&event.StartsAt,
			&event.EndsAt,
			&event.Capacity,
			&event.ImageURL,
			&event.CreatedBy,
			&event.CreatedAt,
			&event.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, event)
	}
	return result, rows.Err()
}

package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campus-union/cms-service/internal/domain"
)

// SubscriberStats aggregates subscriber counts for the admin dashboard.
type SubscriberStats struct {
	Total        int
	Active       int
	Unsubscribed int
}

// SubscriberRepository defines persistence access for newsletter
// subscribers.
type SubscriberRepository interface {
	Create(ctx context.Context, sub *domain.Subscriber) error
	Update(ctx context.Context, sub *domain.Subscriber) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Subscriber, error)
	GetByEmail(ctx context.Context, email string) (*domain.Subscriber, error)
	List(ctx context.Context, activeOnly bool, limit, offset int) ([]domain.Subscriber, error)
	ListActive(ctx context.Context) ([]domain.Subscriber, error)
	Stats(ctx context.Context) (*SubscriberStats, error)
}

type subscriberRepository struct {
	pool *pgxpool.Pool
}

// NewSubscriberRepository returns a Postgres-backed implementation.
func NewSubscriberRepository(pool *pgxpool.Pool) SubscriberRepository {
	return &subscriberRepository{pool: pool}
}

const subscriberColumns = `id, email, is_active, subscribed_at, unsubscribed_at`

func (r *subscriberRepository) Create(ctx context.Context, sub *domain.Subscriber) error {
	const query = `
        INSERT INTO subscribers (email, is_active, subscribed_at, unsubscribed_at)
        VALUES ($1, $2, $3, $4)
        RETURNING id`

	return r.pool.QueryRow(ctx, query,
		sub.Email,
		sub.IsActive,
		sub.SubscribedAt,
		sub.UnsubscribedAt,
	).Scan(&sub.ID)
}

func (r *subscriberRepository) Update(ctx context.Context, sub *domain.Subscriber) error {
	const query = `
        UPDATE subscribers SET email=$1, is_active=$2, subscribed_at=$3, unsubscribed_at=$4
        WHERE id=$5`

	cmd, err := r.pool.Exec(ctx, query,
		sub.Email,
		sub.IsActive,
		sub.SubscribedAt,
		sub.UnsubscribedAt,
		sub.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *subscriberRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM subscribers WHERE id=$1`

	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *subscriberRepository) GetByID(ctx context.Context, id int64) (*domain.Subscriber, error) {
	const query = `SELECT ` + subscriberColumns + ` FROM subscribers WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *subscriberRepository) GetByEmail(ctx context.Context, email string) (*domain.Subscriber, error) {
	const query = `SELECT ` + subscriberColumns + ` FROM subscribers WHERE email=$1`
	return r.fetchSingle(ctx, query, email)
}

func (r *subscriberRepository) List(ctx context.Context, activeOnly bool, limit, offset int) ([]domain.Subscriber, error) {
	base := `SELECT ` + subscriberColumns + ` FROM subscribers`
	clauses := []string{"1=1"}

	if activeOnly {
		clauses = append(clauses, "is_active=true")
	}

	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY subscribed_at DESC LIMIT %d OFFSET %d`,
		base, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSubscribers(rows)
}

func (r *subscriberRepository) ListActive(ctx context.Context) ([]domain.Subscriber, error) {
	const query = `SELECT ` + subscriberColumns + ` FROM subscribers WHERE is_active=true ORDER BY subscribed_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSubscribers(rows)
}

func (r *subscriberRepository) Stats(ctx context.Context) (*SubscriberStats, error) {
	const query = `SELECT COUNT(*), COUNT(*) FILTER (WHERE is_active) FROM subscribers`

	var stats SubscriberStats
	if err := r.pool.QueryRow(ctx, query).Scan(&stats.Total, &stats.Active); err != nil {
		return nil, err
	}
	stats.Unsubscribed = stats.Total - stats.Active
	return &stats, nil
}

func (r *subscriberRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Subscriber, error) {
	var sub domain.Subscriber
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&sub.ID,
		&sub.Email,
		&sub.IsActive,
		&sub.SubscribedAt,
		&sub.UnsubscribedAt,
	); err != nil {
		return nil, err
	}
	return &sub, nil
}

func scanSubscribers(rows pgx.Rows) ([]domain.Subscriber, error) {
	var result []domain.Subscriber
	for rows.Next() {
		var sub domain.Subscriber
		if err := rows.Scan(
			&sub.ID,
			&sub.Email,
			&sub.IsActive,
			&sub.SubscribedAt,
			&sub.UnsubscribedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, sub)
	}
	return result, rows.Err()
}

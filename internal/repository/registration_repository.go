package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campus-union/cms-service/internal/domain"
)

// RegistrationRepository defines persistence access for event
// registrations.
type RegistrationRepository interface {
	Create(ctx context.Context, reg *domain.Registration) error
	Update(ctx context.Context, reg *domain.Registration) error
	GetByEventAndUser(ctx context.Context, eventID, userID int64) (*domain.Registration, error)
	ListByEvent(ctx context.Context, eventID int64) ([]domain.Registration, error)
	CountByEventAndStatus(ctx context.Context, eventID int64, status domain.RegistrationStatus) (int, error)
}

type registrationRepository struct {
	pool *pgxpool.Pool
}

// NewRegistrationRepository returns a Postgres-backed implementation.
func NewRegistrationRepository(pool *pgxpool.Pool) RegistrationRepository {
	return &registrationRepository{pool: pool}
}

const registrationColumns = `id, event_id, user_id, status, created_at, updated_at`

func (r *registrationRepository) Create(ctx context.Context, reg *domain.Registration) error {
	const query = `
        INSERT INTO event_registrations (event_id, user_id, status)
        VALUES ($1, $2, $3)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		reg.EventID,
		reg.UserID,
		reg.Status,
	).Scan(&reg.ID, &reg.CreatedAt, &reg.UpdatedAt)
}

func (r *registrationRepository) Update(ctx context.Context, reg *domain.Registration) error {
	const query = `
        UPDATE event_registrations SET status=$1, updated_at=NOW()
        WHERE id=$2`

	cmd, err := r.pool.Exec(ctx, query, reg.Status, reg.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *registrationRepository) GetByEventAndUser(ctx context.Context, eventID, userID int64) (*domain.Registration, error) {
	const query = `SELECT ` + registrationColumns + ` FROM event_registrations WHERE event_id=$1 AND user_id=$2`

	var reg domain.Registration
	if err := r.pool.QueryRow(ctx, query, eventID, userID).Scan(
		&reg.ID,
		&reg.EventID,
		&reg.UserID,
		&reg.Status,
		&reg.CreatedAt,
		&reg.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &reg, nil
}

func (r *registrationRepository) ListByEvent(ctx context.Context, eventID int64) ([]domain.Registration, error) {
	const query = `SELECT ` + registrationColumns + ` FROM event_registrations WHERE event_id=$1 ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Registration
	for rows.Next() {
		var reg domain.Registration
		if err := rows.Scan(
			&reg.ID,
			&reg.EventID,
			&reg.UserID,
			&reg.Status,
			&reg.CreatedAt,
			&reg.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, reg)
	}
	return result, rows.Err()
}

func (r *registrationRepository) CountByEventAndStatus(ctx context.Context, eventID int64, status domain.RegistrationStatus) (int, error) {
	const query = `SELECT COUNT(*) FROM event_registrations WHERE event_id=$1 AND status=$2`

	var count int
	if err := r.pool.QueryRow(ctx, query, eventID, status).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

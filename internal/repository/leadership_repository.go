package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campus-union/cms-service/internal/domain"
)

// LeaderFilter captures list parameters for leadership entries.
type LeaderFilter struct {
	Campus   *domain.Campus
	Category *domain.LeaderCategory
	Year     *string
	Limit    int
	Offset   int
}

// DisplayOrderUpdate pairs an entity id with its new position.
type DisplayOrderUpdate struct {
	ID           int64
	DisplayOrder int
}

// LeadershipRepository defines persistence access for leadership entries.
type LeadershipRepository interface {
	Create(ctx context.Context, leader *domain.Leader) error
	Update(ctx context.Context, leader *domain.Leader) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Leader, error)
	List(ctx context.Context, filter LeaderFilter) ([]domain.Leader, error)
	CountByGroup(ctx context.Context, campus domain.Campus, category domain.LeaderCategory) (int, error)
	UpdateDisplayOrders(ctx context.Context, updates []DisplayOrderUpdate) error
	DistinctYears(ctx context.Context) ([]string, error)
}

type leadershipRepository struct {
	pool *pgxpool.Pool
}

// NewLeadershipRepository returns a Postgres-backed implementation.
func NewLeadershipRepository(pool *pgxpool.Pool) LeadershipRepository {
	return &leadershipRepository{pool: pool}
}

const leaderColumns = `id, name, bio, year_of_service, campus, category, position_title, school_name, hall_name, display_order, image_url, created_at, updated_at`

func (r *leadershipRepository) Create(ctx context.Context, leader *domain.Leader) error {
	const query = `
        INSERT INTO leaders (name, bio, year_of_service, campus, category, position_title, school_name, hall_name, display_order, image_url)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		leader.Name,
		leader.Bio,
		leader.YearOfService,
		leader.Campus,
		leader.Category,
		leader.PositionTitle,
		leader.SchoolName,
		leader.HallName,
		leader.DisplayOrder,
		leader.ImageURL,
	).Scan(&leader.ID, &leader.CreatedAt, &leader.UpdatedAt)
}

func (r *leadershipRepository) Update(ctx context.Context, leader *domain.Leader) error {
	const query = `
        UPDATE leaders SET name=$1, bio=$2, year_of_service=$3, campus=$4, category=$5, position_title=$6,
            school_name=$7, hall_name=$8, display_order=$9, image_url=$10, updated_at=NOW()
        WHERE id=$11`

	cmd, err := r.pool.Exec(ctx, query,
		leader.Name,
		leader.Bio,
		leader.YearOfService,
		leader.Campus,
		leader.Category,
		leader.PositionTitle,
		leader.SchoolName,
		leader.HallName,
		leader.DisplayOrder,
		leader.ImageURL,
		leader.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *leadershipRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM leaders WHERE id=$1`

	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *leadershipRepository) GetByID(ctx context.Context, id int64) (*domain.Leader, error) {
	const query = `SELECT ` + leaderColumns + ` FROM leaders WHERE id=$1`

	var leader domain.Leader
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&leader.ID,
		&leader.Name,
		&leader.Bio,
		&leader.YearOfService,
		&leader.Campus,
		&leader.Category,
		&leader.PositionTitle,
		&leader.SchoolName,
		&leader.HallName,
		&leader.DisplayOrder,
		&leader.ImageURL,
		&leader.CreatedAt,
		&leader.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &leader, nil
}

func (r *leadershipRepository) List(ctx context.Context, filter LeaderFilter) ([]domain.Leader, error) {
	base := `SELECT ` + leaderColumns + ` FROM leaders`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Campus != nil {
		args = append(args, *filter.Campus)
		clauses = append(clauses, fmt.Sprintf("campus=$%d", len(args)))
	}
	if filter.Category != nil {
		args = append(args, *filter.Category)
		clauses = append(clauses, fmt.Sprintf("category=$%d", len(args)))
	}
	if filter.Year != nil {
		args = append(args, *filter.Year)
		clauses = append(clauses, fmt.Sprintf("year_of_service=$%d", len(args)))
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY campus, category, display_order`,
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
	return scanLeaders(rows)
}

func (r *leadershipRepository) CountByGroup(ctx context.Context, campus domain.Campus, category domain.LeaderCategory) (int, error) {
	const query = `SELECT COUNT(*) FROM leaders WHERE campus=$1 AND category=$2`

	var count int
	if err := r.pool.QueryRow(ctx, query, campus, category).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// UpdateDisplayOrders applies a batch of ordering changes in one
// transaction. An unknown id rolls the whole batch back.
func (r *leadershipRepository) UpdateDisplayOrders(ctx context.Context, updates []DisplayOrderUpdate) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	const query = `UPDATE leaders SET display_order=$1, updated_at=NOW() WHERE id=$2`
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

func (r *leadershipRepository) DistinctYears(ctx context.Context) ([]string, error) {
	const query = `SELECT DISTINCT year_of_service FROM leaders ORDER BY year_of_service DESC`

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

func scanLeaders(rows pgx.Rows) ([]domain.Leader, error) {
	var result []domain.Leader
	for rows.Next() {
		var leader domain.Leader
		if err := rows.Scan(
			&leader.ID,
			&leader.Name,
			&leader.Bio,
			&leader.YearOfService,
			&leader.Campus,
			&leader.Category,
			&leader.PositionTitle,
			&leader.SchoolName,
			&leader.HallName,
			&leader.DisplayOrder,
			&leader.ImageURL,
			&leader.CreatedAt,
			&leader.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, leader)
	}
	return result, rows.Err()
}

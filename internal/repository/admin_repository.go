package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campus-union/cms-service/internal/domain"
)

// AdminRepository defines persistence access for admin accounts. The
// WithRole variants eagerly join the assigned role so authorization
// never needs a second round trip.
type AdminRepository interface {
	Create(ctx context.Context, admin *domain.Admin) error
	Update(ctx context.Context, admin *domain.Admin) error
	List(ctx context.Context, limit, offset int) ([]domain.Admin, error)
	GetByIDWithRole(ctx context.Context, id int64) (*domain.Admin, error)
	GetByUsernameWithRole(ctx context.Context, username string) (*domain.Admin, error)
	GetByIdentifierWithRole(ctx context.Context, identifier string) (*domain.Admin, error)
	SetRole(ctx context.Context, adminID int64, roleID *int64) error
}

type adminRepository struct {
	pool *pgxpool.Pool
}

// NewAdminRepository returns a Postgres-backed implementation.
func NewAdminRepository(pool *pgxpool.Pool) AdminRepository {
	return &adminRepository{pool: pool}
}

const adminJoinQuery = `
        SELECT a.id, a.username, a.email, a.password_hash, a.first_name, a.last_name, a.is_active, a.role_id, a.created_at, a.updated_at,
               r.id, r.name, r.description, r.permissions, r.created_at, r.updated_at
        FROM admins a
        LEFT JOIN roles r ON r.id = a.role_id`

func (r *adminRepository) Create(ctx context.Context, admin *domain.Admin) error {
	const query = `
        INSERT INTO admins (username, email, password_hash, first_name, last_name, is_active, role_id)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		admin.Username,
		admin.Email,
		admin.PasswordHash,
		admin.FirstName,
		admin.LastName,
		admin.IsActive,
		admin.RoleID,
	).Scan(&admin.ID, &admin.CreatedAt, &admin.UpdatedAt)
}

func (r *adminRepository) Update(ctx context.Context, admin *domain.Admin) error {
	const query = `
        UPDATE admins SET email=$1, password_hash=$2, first_name=$3, last_name=$4, is_active=$5, role_id=$6, updated_at=NOW()
        WHERE id=$7`

	cmd, err := r.pool.Exec(ctx, query,
		admin.Email,
		admin.PasswordHash,
		admin.FirstName,
		admin.LastName,
		admin.IsActive,
		admin.RoleID,
		admin.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *adminRepository) List(ctx context.Context, limit, offset int) ([]domain.Admin, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	const query = adminJoinQuery + `
        ORDER BY a.id LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Admin
	for rows.Next() {
		admin, err := scanAdminWithRole(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *admin)
	}
	return result, rows.Err()
}

func (r *adminRepository) GetByIDWithRole(ctx context.Context, id int64) (*domain.Admin, error) {
	const query = adminJoinQuery + ` WHERE a.id=$1`
	return scanAdminWithRole(r.pool.QueryRow(ctx, query, id))
}

func (r *adminRepository) GetByUsernameWithRole(ctx context.Context, username string) (*domain.Admin, error) {
	const query = adminJoinQuery + ` WHERE a.username=$1`
	return scanAdminWithRole(r.pool.QueryRow(ctx, query, username))
}

// GetByIdentifierWithRole looks up an admin by username or email so
// login can accept either.
func (r *adminRepository) GetByIdentifierWithRole(ctx context.Context, identifier string) (*domain.Admin, error) {
	const query = adminJoinQuery + ` WHERE a.username=$1 OR a.email=$1`
	return scanAdminWithRole(r.pool.QueryRow(ctx, query, identifier))
}

func (r *adminRepository) SetRole(ctx context.Context, adminID int64, roleID *int64) error {
	const query = `UPDATE admins SET role_id=$1, updated_at=NOW() WHERE id=$2`

	cmd, err := r.pool.Exec(ctx, query, roleID, adminID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// scanAdminWithRole reads the admin plus joined role columns. The role
// side is nullable, so its columns scan into pointers and the Role is
// only materialized when the join matched.
func scanAdminWithRole(row pgx.Row) (*domain.Admin, error) {
	var admin domain.Admin
	var (
		roleID          *int64
		roleName        *string
		roleDescription *string
		rolePermissions []string
		roleCreatedAt   *time.Time
		roleUpdatedAt   *time.Time
	)
	if err := row.Scan(
		&admin.ID,
		&admin.Username,
		&admin.Email,
		&admin.PasswordHash,
		&admin.FirstName,
		&admin.LastName,
		&admin.IsActive,
		&admin.RoleID,
		&admin.CreatedAt,
		&admin.UpdatedAt,
		&roleID,
		&roleName,
		&roleDescription,
		&rolePermissions,
		&roleCreatedAt,
		&roleUpdatedAt,
	); err != nil {
		return nil, err
	}
	if roleID != nil {
		admin.Role = &domain.Role{
			ID:          *roleID,
			Name:        *roleName,
			Description: roleDescription,
			Permissions: rolePermissions,
			CreatedAt:   *roleCreatedAt,
			UpdatedAt:   *roleUpdatedAt,
		}
	}
	return &admin, nil
}

package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campushelp/helpdesk/internal/domain"
	"github.com/campushelp/helpdesk/pkg/errorutil"
)

// StaffRepository stores IT staff accounts.
type StaffRepository interface {
	Create(ctx context.Context, staff *domain.StaffAccount) error
	GetByUsername(ctx context.Context, username string) (*domain.StaffAccount, error)
	Count(ctx context.Context) (int, error)
}

type staffRepository struct {
	pool *pgxpool.Pool
}

// NewStaffRepository builds repository.
func NewStaffRepository(pool *pgxpool.Pool) StaffRepository {
	return &staffRepository{pool: pool}
}

func (r *staffRepository) Create(ctx context.Context, staff *domain.StaffAccount) error {
	const query = `
        INSERT INTO staff_accounts (username, email, password_hash)
        VALUES ($1,$2,$3)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		staff.Username,
		staff.Email,
		staff.PasswordHash,
	).Scan(&staff.ID, &staff.CreatedAt)
}

func (r *staffRepository) GetByUsername(ctx context.Context, username string) (*domain.StaffAccount, error) {
	const query = `
        SELECT id, username, email, password_hash, created_at
        FROM staff_accounts WHERE username=$1`
	var staff domain.StaffAccount
	if err := r.pool.QueryRow(ctx, query, username).Scan(
		&staff.ID,
		&staff.Username,
		&staff.Email,
		&staff.PasswordHash,
		&staff.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorutil.NewNotFound("staff account", map[string]any{"username": username})
		}
		return nil, err
	}
	return &staff, nil
}

func (r *staffRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM staff_accounts`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

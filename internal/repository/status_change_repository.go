package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campushelp/helpdesk/internal/domain"
)

// StatusChangeRepository stores the status audit trail.
type StatusChangeRepository interface {
	Create(ctx context.Context, change *domain.StatusChange) error
	ListByTicket(ctx context.Context, ticketID string) ([]domain.StatusChange, error)
}

type statusChangeRepository struct {
	pool *pgxpool.Pool
}

// NewStatusChangeRepository builds repository.
func NewStatusChangeRepository(pool *pgxpool.Pool) StatusChangeRepository {
	return &statusChangeRepository{pool: pool}
}

func (r *statusChangeRepository) Create(ctx context.Context, change *domain.StatusChange) error {
	const query = `
        INSERT INTO ticket_status_changes (ticket_id, old_status, new_status, changed_by)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		change.TicketID,
		change.OldStatus,
		change.NewStatus,
		change.ChangedBy,
	).Scan(&change.ID, &change.CreatedAt)
}

func (r *statusChangeRepository) ListByTicket(ctx context.Context, ticketID string) ([]domain.StatusChange, error) {
	const query = `
        SELECT id, ticket_id, old_status, new_status, changed_by, created_at
        FROM ticket_status_changes WHERE ticket_id=$1 ORDER BY created_at ASC, id ASC`
	rows, err := r.pool.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.StatusChange
	for rows.Next() {
		var change domain.StatusChange
		if err := rows.Scan(
			&change.ID,
			&change.TicketID,
			&change.OldStatus,
			&change.NewStatus,
			&change.ChangedBy,
			&change.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, change)
	}
	return result, rows.Err()
}

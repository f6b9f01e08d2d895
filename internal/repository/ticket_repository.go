package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campushelp/helpdesk/internal/domain"
	"github.com/campushelp/helpdesk/pkg/errorutil"
)

// TicketSort enumerates dashboard sort orders.
type TicketSort string

const (
	TicketSortCreatedAt TicketSort = "created_at"
	TicketSortStatus    TicketSort = "status"
	TicketSortLocation  TicketSort = "location"
)

// TicketFilter captures dashboard listing parameters.
type TicketFilter struct {
	Status *domain.TicketStatus
	Sort   TicketSort
	Limit  int
	Offset int
}

// StatusUpdate is the result of an atomic status transition.
type StatusUpdate struct {
	Ticket    *domain.Ticket
	OldStatus domain.TicketStatus
}

// TicketRepository encapsulates ticket persistence. UpdateStatus must
// execute as a single atomic read-modify-write so concurrent transitions on
// the same ticket never lose an update.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	GetByReference(ctx context.Context, reference string) (*domain.Ticket, error)
	UpdateStatus(ctx context.Context, id string, newStatus domain.TicketStatus) (*StatusUpdate, error)
	ListWithFilter(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error)
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

const ticketColumns = `id, reference, submitter_name, submitter_email, location, description,
               remote_access_authorized, status, created_at, updated_at, closed_at`

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (reference, submitter_name, submitter_email, location, description, remote_access_authorized, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		ticket.Reference,
		ticket.SubmitterName,
		ticket.SubmitterEmail,
		ticket.Location,
		ticket.Description,
		ticket.RemoteAccessAuthorized,
		ticket.Status,
	).Scan(&ticket.ID, &ticket.CreatedAt, &ticket.UpdatedAt)
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *ticketRepository) GetByReference(ctx context.Context, reference string) (*domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE reference=$1`
	return r.fetchSingle(ctx, query, reference)
}

// UpdateStatus changes the ticket status in one transaction, taking a row
// lock so the prior status read and the write cannot interleave with a
// concurrent transition. Closing stamps closed_at; leaving CLOSED clears it.
func (r *ticketRepository) UpdateStatus(ctx context.Context, id string, newStatus domain.TicketStatus) (*StatusUpdate, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	var oldStatus domain.TicketStatus
	if err := tx.QueryRow(ctx,
		`SELECT status FROM tickets WHERE id=$1 FOR UPDATE`, id,
	).Scan(&oldStatus); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorutil.NewNotFound("ticket", map[string]any{"id": id})
		}
		return nil, err
	}

	const update = `
        UPDATE tickets SET status=$2, updated_at=NOW(),
            closed_at=CASE WHEN $2='CLOSED' THEN NOW() ELSE NULL END
        WHERE id=$1
        RETURNING ` + ticketColumns
	ticket, err := scanTicket(tx.QueryRow(ctx, update, id, newStatus))
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &StatusUpdate{Ticket: ticket, OldStatus: oldStatus}, nil
}

func (r *ticketRepository) ListWithFilter(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}

	var order string
	switch filter.Sort {
	case TicketSortStatus:
		order = "status, created_at DESC"
	case TicketSortLocation:
		order = "location, created_at DESC"
	default:
		order = "created_at DESC"
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`SELECT %s FROM tickets WHERE %s ORDER BY %s LIMIT %d OFFSET %d`,
		ticketColumns, strings.Join(clauses, " AND "), order, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func (r *ticketRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Ticket, error) {
	ticket, err := scanTicket(r.pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorutil.NewNotFound("ticket", map[string]any{"id": fmt.Sprint(arg)})
		}
		return nil, err
	}
	return ticket, nil
}

func scanTicket(row pgx.Row) (*domain.Ticket, error) {
	var ticket domain.Ticket
	if err := row.Scan(
		&ticket.ID,
		&ticket.Reference,
		&ticket.SubmitterName,
		&ticket.SubmitterEmail,
		&ticket.Location,
		&ticket.Description,
		&ticket.RemoteAccessAuthorized,
		&ticket.Status,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
		&ticket.ClosedAt,
	); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *ticket)
	}
	return result, rows.Err()
}

// Package repotest provides in-memory repository implementations for
// service and handler tests. The fakes serialize access with a mutex the
// same way the SQL store serializes with row locks, so concurrency
// properties can be exercised without a database.
package repotest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/campushelp/helpdesk/internal/domain"
	"github.com/campushelp/helpdesk/internal/repository"
	"github.com/campushelp/helpdesk/pkg/errorutil"
)

// TicketRepo is an in-memory repository.TicketRepository.
type TicketRepo struct {
	mu      sync.Mutex
	tickets map[string]*domain.Ticket
}

// NewTicketRepo builds an empty fake.
func NewTicketRepo() *TicketRepo {
	return &TicketRepo{tickets: make(map[string]*domain.Ticket)}
}

func (r *TicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	ticket.ID = uuid.NewString()
	ticket.CreatedAt = now
	ticket.UpdatedAt = now
	clone := *ticket
	r.tickets[ticket.ID] = &clone
	return nil
}

func (r *TicketRepo) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ticket, ok := r.tickets[id]
	if !ok {
		return nil, errorutil.NewNotFound("ticket", map[string]any{"id": id})
	}
	clone := *ticket
	return &clone, nil
}

func (r *TicketRepo) GetByReference(_ context.Context, reference string) (*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ticket := range r.tickets {
		if ticket.Reference == reference {
			clone := *ticket
			return &clone, nil
		}
	}
	return nil, errorutil.NewNotFound("ticket", map[string]any{"reference": reference})
}

func (r *TicketRepo) UpdateStatus(_ context.Context, id string, newStatus domain.TicketStatus) (*repository.StatusUpdate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ticket, ok := r.tickets[id]
	if !ok {
		return nil, errorutil.NewNotFound("ticket", map[string]any{"id": id})
	}
	oldStatus := ticket.Status
	ticket.Status = newStatus
	ticket.UpdatedAt = time.Now()
	if newStatus == domain.TicketStatusClosed {
		now := time.Now()
		ticket.ClosedAt = &now
	} else {
		ticket.ClosedAt = nil
	}
	clone := *ticket
	return &repository.StatusUpdate{Ticket: &clone, OldStatus: oldStatus}, nil
}

func (r *TicketRepo) ListWithFilter(_ context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Ticket
	for _, ticket := range r.tickets {
		if filter.Status != nil && ticket.Status != *filter.Status {
			continue
		}
		result = append(result, *ticket)
	}
	switch filter.Sort {
	case repository.TicketSortStatus:
		sort.Slice(result, func(i, j int) bool { return result[i].Status < result[j].Status })
	case repository.TicketSortLocation:
		sort.Slice(result, func(i, j int) bool { return result[i].Location < result[j].Location })
	default:
		sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	}
	return result, nil
}

// NoteRepo is an in-memory repository.NoteRepository.
type NoteRepo struct {
	mu    sync.Mutex
	notes map[string][]domain.Note
}

// NewNoteRepo builds an empty fake.
func NewNoteRepo() *NoteRepo {
	return &NoteRepo{notes: make(map[string][]domain.Note)}
}

func (r *NoteRepo) Create(_ context.Context, note *domain.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	note.ID = uuid.NewString()
	note.CreatedAt = time.Now()
	r.notes[note.TicketID] = append(r.notes[note.TicketID], *note)
	return nil
}

func (r *NoteRepo) ListByTicket(_ context.Context, ticketID string) ([]domain.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Note{}, r.notes[ticketID]...), nil
}

// StatusChangeRepo is an in-memory repository.StatusChangeRepository.
type StatusChangeRepo struct {
	mu      sync.Mutex
	changes map[string][]domain.StatusChange
}

// NewStatusChangeRepo builds an empty fake.
func NewStatusChangeRepo() *StatusChangeRepo {
	return &StatusChangeRepo{changes: make(map[string][]domain.StatusChange)}
}

func (r *StatusChangeRepo) Create(_ context.Context, change *domain.StatusChange) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	change.ID = uuid.NewString()
	change.CreatedAt = time.Now()
	r.changes[change.TicketID] = append(r.changes[change.TicketID], *change)
	return nil
}

func (r *StatusChangeRepo) ListByTicket(_ context.Context, ticketID string) ([]domain.StatusChange, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.StatusChange{}, r.changes[ticketID]...), nil
}

// StaffRepo is an in-memory repository.StaffRepository.
type StaffRepo struct {
	mu       sync.Mutex
	accounts map[string]*domain.StaffAccount
}

// NewStaffRepo builds an empty fake.
func NewStaffRepo() *StaffRepo {
	return &StaffRepo{accounts: make(map[string]*domain.StaffAccount)}
}

func (r *StaffRepo) Create(_ context.Context, staff *domain.StaffAccount) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	staff.ID = uuid.NewString()
	staff.CreatedAt = time.Now()
	clone := *staff
	r.accounts[staff.Username] = &clone
	return nil
}

func (r *StaffRepo) GetByUsername(_ context.Context, username string) (*domain.StaffAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	staff, ok := r.accounts[username]
	if !ok {
		return nil, errorutil.NewNotFound("staff account", map[string]any{"username": username})
	}
	clone := *staff
	return &clone, nil
}

func (r *StaffRepo) Count(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.accounts), nil
}

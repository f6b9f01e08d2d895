package service

import (
	"context"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/campushelp/helpdesk/internal/domain"
	"github.com/campushelp/helpdesk/internal/events"
	"github.com/campushelp/helpdesk/internal/repository"
	"github.com/campushelp/helpdesk/pkg/errorutil"
)

// Minimum problem description length accepted at intake.
const minDescriptionLength = 10

// TicketService is the single authority for ticket lifecycle operations:
// what transitions are legal, who may perform them, and which events they
// emit. It trusts the staff identity handed in by the session gate and does
// no authentication of its own.
type TicketService struct {
	tickets    repository.TicketRepository
	notes      repository.NoteRepository
	changes    repository.StatusChangeRepository
	dispatcher events.Dispatcher
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	TicketRepo       repository.TicketRepository
	NoteRepo         repository.NoteRepository
	StatusChangeRepo repository.StatusChangeRepository
	Dispatcher       events.Dispatcher
}

// TicketCreateInput describes a public ticket submission.
type TicketCreateInput struct {
	SubmitterName          string
	SubmitterEmail         string
	Location               string
	Description            string
	RemoteAccessAuthorized bool
}

// TicketDetail is a ticket with its notes and status history.
type TicketDetail struct {
	Ticket  *domain.Ticket
	Notes   []domain.Note
	History []domain.StatusChange
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		notes:      deps.NoteRepo,
		changes:    deps.StatusChangeRepo,
		dispatcher: deps.Dispatcher,
	}
}

// Create validates a submission and opens a ticket in status NEW. On
// success it publishes a creation event, which drives the submitter
// confirmation and the staff alert.
func (s *TicketService) Create(ctx context.Context, input TicketCreateInput) (*domain.Ticket, error) {
	name := strings.TrimSpace(input.SubmitterName)
	email := strings.TrimSpace(input.SubmitterEmail)
	location := strings.TrimSpace(input.Location)
	description := strings.TrimSpace(input.Description)

	if name == "" {
		return nil, errorutil.NewValidationError("submitter name required", nil)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, errorutil.NewValidationError("invalid submitter email", map[string]any{"email": input.SubmitterEmail})
	}
	if location == "" {
		return nil, errorutil.NewValidationError("location required", nil)
	}
	if utf8.RuneCountInString(description) < minDescriptionLength {
		return nil, errorutil.NewValidationError("description must be at least 10 characters", nil)
	}

	ticket := &domain.Ticket{
		Reference:              generateReference(),
		SubmitterName:          name,
		SubmitterEmail:         email,
		Location:               location,
		Description:            description,
		RemoteAccessAuthorized: input.RemoteAccessAuthorized,
		Status:                 domain.TicketStatusNew,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:   events.EventTicketCreated,
		Ticket: *ticket,
	})
	return ticket, nil
}

// Transition applies a staff-initiated status change. Any enum status may
// follow any other; closed tickets can be reopened. The repository performs
// the change as one atomic read-modify-write, and a status-update event is
// published only when the status actually changed.
func (s *TicketService) Transition(ctx context.Context, ticketID string, newStatus domain.TicketStatus, actor *domain.StaffIdentity) (*domain.Ticket, error) {
	if err := requireStaff(actor); err != nil {
		return nil, err
	}
	if _, err := domain.ParseTicketStatus(string(newStatus)); err != nil {
		return nil, errorutil.NewValidationError("invalid ticket status", map[string]any{"status": string(newStatus)})
	}

	update, err := s.tickets.UpdateStatus(ctx, ticketID, newStatus)
	if err != nil {
		return nil, err
	}
	if update.OldStatus == newStatus {
		return update.Ticket, nil
	}

	change := &domain.StatusChange{
		TicketID:  ticketID,
		OldStatus: update.OldStatus,
		NewStatus: newStatus,
		ChangedBy: actor.Username,
	}
	if err := s.changes.Create(ctx, change); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:   events.EventTicketStatusChanged,
		Ticket: *update.Ticket,
		Actor:  actor.Username,
		Payload: events.StatusChangedPayload{
			OldStatus: update.OldStatus,
			NewStatus: newStatus,
		},
	})
	return update.Ticket, nil
}

// AddNote appends a staff note to a ticket. Notes are accepted in every
// status, including CLOSED, and never trigger a notification.
func (s *TicketService) AddNote(ctx context.Context, ticketID string, actor *domain.StaffIdentity, text string) (*domain.Note, error) {
	if err := requireStaff(actor); err != nil {
		return nil, err
	}
	body := strings.TrimSpace(text)
	if body == "" {
		return nil, errorutil.NewValidationError("note text required", nil)
	}

	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	note := &domain.Note{
		TicketID: ticket.ID,
		Author:   actor.Username,
		Body:     body,
	}
	if err := s.notes.Create(ctx, note); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:   events.EventTicketNoteAdded,
		Ticket: *ticket,
		Actor:  actor.Username,
		Payload: events.NoteAddedPayload{
			NoteID:      note.ID,
			Author:      note.Author,
			BodyPreview: bodyPreview(note.Body, 120),
		},
	})
	return note, nil
}

// List returns tickets for the staff dashboard.
func (s *TicketService) List(ctx context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	return s.tickets.ListWithFilter(ctx, filter)
}

// GetDetail loads a ticket with its notes and status history.
func (s *TicketService) GetDetail(ctx context.Context, ticketID string) (*TicketDetail, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	notes, err := s.notes.ListByTicket(ctx, ticket.ID)
	if err != nil {
		return nil, err
	}
	history, err := s.changes.ListByTicket(ctx, ticket.ID)
	if err != nil {
		return nil, err
	}
	return &TicketDetail{Ticket: ticket, Notes: notes, History: history}, nil
}

// GetByReference resolves the public reference key so submitters can check
// their ticket status without an account.
func (s *TicketService) GetByReference(ctx context.Context, reference string) (*domain.Ticket, error) {
	return s.tickets.GetByReference(ctx, strings.TrimSpace(reference))
}

// RemoteAccessInfo returns the hand-off details for a ticket that
// authorized remote access. Tickets without authorization are rejected with
// a conflict; the flag is set once at submission and never granted later.
func (s *TicketService) RemoteAccessInfo(ctx context.Context, ticketID string, actor *domain.StaffIdentity) (*domain.Ticket, error) {
	if err := requireStaff(actor); err != nil {
		return nil, err
	}
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !ticket.RemoteAccessAuthorized {
		return nil, errorutil.NewConflict("remote access was not authorized for this ticket", map[string]any{"id": ticket.ID})
	}
	return ticket, nil
}

func requireStaff(actor *domain.StaffIdentity) error {
	if actor == nil || strings.TrimSpace(actor.Username) == "" {
		return errorutil.NewUnauthorized("staff identity required")
	}
	return nil
}

func generateReference() string {
	return "HD-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func bodyPreview(body string, max int) string {
	body = strings.TrimSpace(body)
	if len(body) <= max {
		return body
	}
	if max <= 3 {
		return body[:max]
	}
	return body[:max-3] + "..."
}

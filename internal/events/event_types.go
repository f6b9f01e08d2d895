package events

import (
	"time"

	"github.com/campushelp/helpdesk/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated       EventType = "ticket_created"
	EventTicketStatusChanged EventType = "ticket_status_changed"
	EventTicketNoteAdded     EventType = "ticket_note_added"
)

// Event represents a domain event emitted by services. The ticket snapshot
// is captured after the mutation has been persisted, so subscribers never
// observe unsaved state.
type Event struct {
	ID        string        `json:"id"`
	Type      EventType     `json:"type"`
	Ticket    domain.Ticket `json:"ticket"`
	Actor     string        `json:"actor,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
	Payload   interface{}   `json:"payload,omitempty"`
}

// StatusChangedPayload payload.
type StatusChangedPayload struct {
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
}

// NoteAddedPayload payload.
type NoteAddedPayload struct {
	NoteID      string `json:"note_id"`
	Author      string `json:"author"`
	BodyPreview string `json:"body_preview"`
}

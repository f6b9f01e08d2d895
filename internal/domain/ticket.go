package domain

import (
	"fmt"
	"time"
)

// TicketStatus enumerates lifecycle states for helpdesk tickets.
type TicketStatus string

const (
	TicketStatusNew        TicketStatus = "NEW"
	TicketStatusInProgress TicketStatus = "IN_PROGRESS"
	TicketStatusOnHold     TicketStatus = "ON_HOLD"
	TicketStatusClosed     TicketStatus = "CLOSED"
)

// ParseTicketStatus validates a raw status value against the enum.
func ParseTicketStatus(raw string) (TicketStatus, error) {
	switch TicketStatus(raw) {
	case TicketStatusNew, TicketStatusInProgress, TicketStatusOnHold, TicketStatusClosed:
		return TicketStatus(raw), nil
	}
	return "", fmt.Errorf("unknown ticket status %q", raw)
}

// Display returns the human-readable form used in notifications.
func (s TicketStatus) Display() string {
	switch s {
	case TicketStatusNew:
		return "New"
	case TicketStatusInProgress:
		return "In Progress"
	case TicketStatusOnHold:
		return "On Hold"
	case TicketStatusClosed:
		return "Closed"
	}
	return string(s)
}

// Ticket is the aggregate for helpdesk requests. Submitter identity,
// location and the remote-access flag are fixed at creation; only status
// changes afterwards, and only through staff-initiated transitions.
type Ticket struct {
	ID                     string
	Reference              string
	SubmitterName          string
	SubmitterEmail         string
	Location               string
	Description            string
	RemoteAccessAuthorized bool
	Status                 TicketStatus
	CreatedAt              time.Time
	UpdatedAt              time.Time
	ClosedAt               *time.Time
}

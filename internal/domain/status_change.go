package domain

import "time"

// StatusChange is an immutable audit trail entry recording a staff-initiated
// status transition.
type StatusChange struct {
	ID        string
	TicketID  string
	OldStatus TicketStatus
	NewStatus TicketStatus
	ChangedBy string
	CreatedAt time.Time
}

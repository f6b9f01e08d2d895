package domain

import "time"

// Note is a staff-authored annotation on a ticket. Notes are append-only;
// there is no edit or delete path once a note is written.
type Note struct {
	ID        string
	TicketID  string
	Author    string
	Body      string
	CreatedAt time.Time
}

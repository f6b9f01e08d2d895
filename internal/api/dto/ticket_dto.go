package dto

import (
	"time"

	"github.com/campushelp/helpdesk/internal/domain"
)

// SubmitTicketRequest is the public intake payload.
type SubmitTicketRequest struct {
	Name                   string `json:"name"`
	Email                  string `json:"email"`
	Location               string `json:"location"`
	Description            string `json:"description"`
	RemoteAccessAuthorized bool   `json:"remote_access_authorized"`
}

// UpdateStatusRequest changes a ticket's status.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// AddNoteRequest appends a staff note.
type AddNoteRequest struct {
	Text string `json:"text"`
}

// TicketSummary is the dashboard row shape.
type TicketSummary struct {
	ID                     string              `json:"id"`
	Reference              string              `json:"reference"`
	SubmitterName          string              `json:"submitter_name"`
	Location               string              `json:"location"`
	Status                 domain.TicketStatus `json:"status"`
	RemoteAccessAuthorized bool                `json:"remote_access_authorized"`
	CreatedAt              time.Time           `json:"created_at"`
	UpdatedAt              time.Time           `json:"updated_at"`
}

// PublicTicketStatus is the submitter-facing status lookup shape. It omits
// staff notes and the audit trail.
type PublicTicketStatus struct {
	Reference string              `json:"reference"`
	Status    domain.TicketStatus `json:"status"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// NoteResponse is a single ticket note.
type NoteResponse struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// StatusChangeResponse is one audit trail entry.
type StatusChangeResponse struct {
	ID        string              `json:"id"`
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
	ChangedBy string              `json:"changed_by"`
	CreatedAt time.Time           `json:"created_at"`
}

// TicketDetailResponse is the staff ticket view.
type TicketDetailResponse struct {
	ID                     string                 `json:"id"`
	Reference              string                 `json:"reference"`
	SubmitterName          string                 `json:"submitter_name"`
	SubmitterEmail         string                 `json:"submitter_email"`
	Location               string                 `json:"location"`
	Description            string                 `json:"description"`
	RemoteAccessAuthorized bool                   `json:"remote_access_authorized"`
	Status                 domain.TicketStatus    `json:"status"`
	CreatedAt              time.Time              `json:"created_at"`
	UpdatedAt              time.Time              `json:"updated_at"`
	ClosedAt               *time.Time             `json:"closed_at,omitempty"`
	Notes                  []NoteResponse         `json:"notes"`
	History                []StatusChangeResponse `json:"history"`
}

// RemoteAccessResponse carries the manual hand-off details for a ticket
// whose submitter authorized remote access.
type RemoteAccessResponse struct {
	Reference      string `json:"reference"`
	SubmitterName  string `json:"submitter_name"`
	SubmitterEmail string `json:"submitter_email"`
	Location       string `json:"location"`
	Instructions   string `json:"instructions"`
}

package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campushelp/helpdesk/internal/api/dto"
	"github.com/campushelp/helpdesk/internal/auth"
	"github.com/campushelp/helpdesk/internal/domain"
	"github.com/campushelp/helpdesk/internal/repository"
	"github.com/campushelp/helpdesk/internal/service"
	"github.com/campushelp/helpdesk/pkg/errorutil"
)

// StaffTicketsHandler serves the authenticated dashboard: listing, detail,
// status transitions, notes and the remote-access hand-off view.
type StaffTicketsHandler struct {
	service *service.TicketService
}

// NewStaffTicketsHandler constructs handler.
func NewStaffTicketsHandler(ticketService *service.TicketService) *StaffTicketsHandler {
	return &StaffTicketsHandler{service: ticketService}
}

// List GET /staff/tickets.
func (h *StaffTicketsHandler) List(c *fiber.Ctx) error {
	if _, ok := auth.StaffFromContext(c); !ok {
		return errorutil.NewUnauthorized("staff session required")
	}

	filter := repository.TicketFilter{
		Sort:   repository.TicketSort(c.Query("sort", string(repository.TicketSortCreatedAt))),
		Limit:  c.QueryInt("limit", 50),
		Offset: c.QueryInt("offset", 0),
	}
	if raw := c.Query("status"); raw != "" && raw != "all" {
		status, err := domain.ParseTicketStatus(raw)
		if err != nil {
			return errorutil.NewValidationError("invalid status filter", map[string]any{"status": raw})
		}
		filter.Status = &status
	}

	tickets, err := h.service.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.TicketSummary, 0, len(tickets))
	for i := range tickets {
		items = append(items, ticketSummary(&tickets[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /staff/tickets/:id.
func (h *StaffTicketsHandler) Get(c *fiber.Ctx) error {
	if _, ok := auth.StaffFromContext(c); !ok {
		return errorutil.NewUnauthorized("staff session required")
	}
	detail, err := h.service.GetDetail(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketDetail(detail)})
}

// UpdateStatus PATCH /staff/tickets/:id/status.
func (h *StaffTicketsHandler) UpdateStatus(c *fiber.Ctx) error {
	staff, ok := auth.StaffFromContext(c)
	if !ok {
		return errorutil.NewUnauthorized("staff session required")
	}
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return errorutil.NewValidationError("invalid payload", nil)
	}

	ticket, err := h.service.Transition(c.UserContext(), c.Params("id"), domain.TicketStatus(req.Status), staff)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketSummary(ticket)})
}

// AddNote POST /staff/tickets/:id/notes.
func (h *StaffTicketsHandler) AddNote(c *fiber.Ctx) error {
	staff, ok := auth.StaffFromContext(c)
	if !ok {
		return errorutil.NewUnauthorized("staff session required")
	}
	var req dto.AddNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return errorutil.NewValidationError("invalid payload", nil)
	}

	note, err := h.service.AddNote(c.UserContext(), c.Params("id"), staff, req.Text)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": noteResponse(note)})
}

// RemoteAccess GET /staff/tickets/:id/remote-access. The hand-off is a
// manual workflow; this endpoint only surfaces the contact details for
// tickets whose submitter authorized it.
func (h *StaffTicketsHandler) RemoteAccess(c *fiber.Ctx) error {
	staff, ok := auth.StaffFromContext(c)
	if !ok {
		return errorutil.NewUnauthorized("staff session required")
	}
	ticket, err := h.service.RemoteAccessInfo(c.UserContext(), c.Params("id"), staff)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.RemoteAccessResponse{
		Reference:      ticket.Reference,
		SubmitterName:  ticket.SubmitterName,
		SubmitterEmail: ticket.SubmitterEmail,
		Location:       ticket.Location,
		Instructions:   "Contact the submitter and arrange a remote session with the desktop tool of your site.",
	}})
}

func ticketDetail(detail *service.TicketDetail) dto.TicketDetailResponse {
	ticket := detail.Ticket
	notes := make([]dto.NoteResponse, 0, len(detail.Notes))
	for i := range detail.Notes {
		notes = append(notes, noteResponse(&detail.Notes[i]))
	}
	history := make([]dto.StatusChangeResponse, 0, len(detail.History))
	for _, entry := range detail.History {
		history = append(history, dto.StatusChangeResponse{
			ID:        entry.ID,
			OldStatus: entry.OldStatus,
			NewStatus: entry.NewStatus,
			ChangedBy: entry.ChangedBy,
			CreatedAt: entry.CreatedAt,
		})
	}
	return dto.TicketDetailResponse{
		ID:                     ticket.ID,
		Reference:              ticket.Reference,
		SubmitterName:          ticket.SubmitterName,
		SubmitterEmail:         ticket.SubmitterEmail,
		Location:               ticket.Location,
		Description:            ticket.Description,
		RemoteAccessAuthorized: ticket.RemoteAccessAuthorized,
		Status:                 ticket.Status,
		CreatedAt:              ticket.CreatedAt,
		UpdatedAt:              ticket.UpdatedAt,
		ClosedAt:               ticket.ClosedAt,
		Notes:                  notes,
		History:                history,
	}
}

func noteResponse(note *domain.Note) dto.NoteResponse {
	return dto.NoteResponse{
		ID:        note.ID,
		Author:    note.Author,
		Body:      note.Body,
		CreatedAt: note.CreatedAt,
	}
}

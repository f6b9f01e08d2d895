package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campushelp/helpdesk/internal/api/dto"
	"github.com/campushelp/helpdesk/internal/domain"
	"github.com/campushelp/helpdesk/internal/service"
	"github.com/campushelp/helpdesk/pkg/errorutil"
)

// TicketsHandler serves the public intake surface: submitting a ticket and
// checking its status by reference. No authentication required.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// Submit POST /tickets.
func (h *TicketsHandler) Submit(c *fiber.Ctx) error {
	var req dto.SubmitTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return errorutil.NewValidationError("invalid payload", nil)
	}

	ticket, err := h.service.Create(c.UserContext(), service.TicketCreateInput{
		SubmitterName:          req.Name,
		SubmitterEmail:         req.Email,
		Location:               req.Location,
		Description:            req.Description,
		RemoteAccessAuthorized: req.RemoteAccessAuthorized,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": ticketSummary(ticket)})
}

// Status GET /tickets/:reference. Submitter-facing lookup; exposes only the
// reference, status and timestamps.
func (h *TicketsHandler) Status(c *fiber.Ctx) error {
	ticket, err := h.service.GetByReference(c.UserContext(), c.Params("reference"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.PublicTicketStatus{
		Reference: ticket.Reference,
		Status:    ticket.Status,
		CreatedAt: ticket.CreatedAt,
		UpdatedAt: ticket.UpdatedAt,
	}})
}

func ticketSummary(ticket *domain.Ticket) dto.TicketSummary {
	return dto.TicketSummary{
		ID:                     ticket.ID,
		Reference:              ticket.Reference,
		SubmitterName:          ticket.SubmitterName,
		Location:               ticket.Location,
		Status:                 ticket.Status,
		RemoteAccessAuthorized: ticket.RemoteAccessAuthorized,
		CreatedAt:              ticket.CreatedAt,
		UpdatedAt:              ticket.UpdatedAt,
	}
}

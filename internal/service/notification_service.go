package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/campushelp/helpdesk/internal/config"
	"github.com/campushelp/helpdesk/internal/domain"
	"github.com/campushelp/helpdesk/internal/events"
	"github.com/campushelp/helpdesk/internal/mail"
)

// NotificationKind identifies one of the three outbound message templates.
type NotificationKind string

const (
	KindSubmissionConfirmation NotificationKind = "submission_confirmation"
	KindStaffAlert             NotificationKind = "staff_alert"
	KindStatusUpdate           NotificationKind = "status_update"
)

// Notification is a render request: a kind plus the ticket snapshot it
// describes. OldStatus is only meaningful for status updates.
type Notification struct {
	Kind      NotificationKind
	Ticket    domain.Ticket
	OldStatus domain.TicketStatus
}

// DeliveryResult reports the outcome of one delivery attempt. Delivery is
// best-effort: a false Success is logged and observed but never propagated
// to the ticket mutation that triggered it.
type DeliveryResult struct {
	Kind      NotificationKind
	Recipient string
	Success   bool
	Reason    string
}

// NotificationService renders and sends ticket lifecycle notifications.
type NotificationService struct {
	dispatcher events.Dispatcher
	mailer     mail.Mailer
	logger     *zap.Logger
	cfg        config.MailConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, mailer mail.Mailer, logger *zap.Logger, cfg config.MailConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		mailer:     mailer,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to lifecycle events. Note additions publish
// an event for observability but send no mail.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventTicketCreated, n.handleTicketCreated)
	n.dispatcher.Subscribe(events.EventTicketStatusChanged, n.handleTicketStatusChanged)
	n.dispatcher.Subscribe(events.EventTicketNoteAdded, n.handleTicketNoteAdded)
}

// Notify renders the message for the given kind and attempts delivery,
// returning the result. It never returns an error; a broken mail relay must
// not block helpdesk operations.
func (n *NotificationService) Notify(ctx context.Context, notification Notification) DeliveryResult {
	msg := n.render(notification)
	result := DeliveryResult{Kind: notification.Kind, Recipient: msg.To, Success: true}

	if err := n.mailer.Send(ctx, msg); err != nil {
		result.Success = false
		result.Reason = err.Error()
		n.logger.Warn("notification delivery failed",
			zap.String("kind", string(notification.Kind)),
			zap.String("ticket", notification.Ticket.Reference),
			zap.String("recipient", msg.To),
			zap.Error(err),
		)
		return result
	}

	n.logger.Info("notification sent",
		zap.String("kind", string(notification.Kind)),
		zap.String("ticket", notification.Ticket.Reference),
		zap.String("recipient", msg.To),
	)
	return result
}

func (n *NotificationService) handleTicketCreated(ctx context.Context, event events.Event) error {
	n.Notify(ctx, Notification{Kind: KindSubmissionConfirmation, Ticket: event.Ticket})
	n.Notify(ctx, Notification{Kind: KindStaffAlert, Ticket: event.Ticket})
	return nil
}

func (n *NotificationService) handleTicketStatusChanged(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.StatusChangedPayload)
	if !ok {
		n.logger.Warn("unexpected status change payload", zap.String("ticket", event.Ticket.Reference))
		return nil
	}
	n.Notify(ctx, Notification{
		Kind:      KindStatusUpdate,
		Ticket:    event.Ticket,
		OldStatus: payload.OldStatus,
	})
	return nil
}

func (n *NotificationService) handleTicketNoteAdded(_ context.Context, event events.Event) error {
	n.logger.Debug("note added", zap.String("ticket", event.Ticket.Reference), zap.String("actor", event.Actor))
	return nil
}

func (n *NotificationService) render(notification Notification) mail.Message {
	ticket := notification.Ticket
	switch notification.Kind {
	case KindStaffAlert:
		return mail.Message{
			To:      n.cfg.StaffInbox,
			Subject: fmt.Sprintf("New IT Ticket %s - %s", ticket.Reference, ticket.Location),
			TextBody: fmt.Sprintf(
				"A new helpdesk ticket was submitted.\n\nTicket: %s\nFrom: %s <%s>\nLocation: %s\nRemote access authorized: %t\n\n%s\n",
				ticket.Reference, ticket.SubmitterName, ticket.SubmitterEmail, ticket.Location,
				ticket.RemoteAccessAuthorized, ticket.Description),
			HTMLBody: fmt.Sprintf(
				"<html><body><h2>New IT Ticket %s</h2><p><b>From:</b> %s &lt;%s&gt;<br><b>Location:</b> %s<br><b>Remote access authorized:</b> %t</p><p>%s</p></body></html>",
				ticket.Reference, ticket.SubmitterName, ticket.SubmitterEmail, ticket.Location,
				ticket.RemoteAccessAuthorized, ticket.Description),
		}
	case KindStatusUpdate:
		return mail.Message{
			To:      ticket.SubmitterEmail,
			Subject: fmt.Sprintf("IT Ticket %s Status Update", ticket.Reference),
			TextBody: fmt.Sprintf(
				"Hello %s,\n\nThe status of your ticket %s changed from %s to %s.\n\nSchool IT Helpdesk\n",
				ticket.SubmitterName, ticket.Reference,
				notification.OldStatus.Display(), ticket.Status.Display()),
			HTMLBody: fmt.Sprintf(
				"<html><body><h2>Ticket %s Status Update</h2><p>Hello %s,</p><p>The status of your ticket changed from <b>%s</b> to <b>%s</b>.</p><p>School IT Helpdesk</p></body></html>",
				ticket.Reference, ticket.SubmitterName,
				notification.OldStatus.Display(), ticket.Status.Display()),
		}
	default: // KindSubmissionConfirmation
		return mail.Message{
			To:      ticket.SubmitterEmail,
			Subject: fmt.Sprintf("IT Ticket %s Submitted Successfully", ticket.Reference),
			TextBody: fmt.Sprintf(
				"Hello %s,\n\nYour helpdesk ticket %s has been received and is now in status %s.\nLocation: %s\n\nWe will contact you at %s.\n\nSchool IT Helpdesk\n",
				ticket.SubmitterName, ticket.Reference, ticket.Status.Display(),
				ticket.Location, ticket.SubmitterEmail),
			HTMLBody: fmt.Sprintf(
				"<html><body><h2>Ticket %s Received</h2><p>Hello %s,</p><p>Your helpdesk ticket has been received and is now in status <b>%s</b>.</p><p><b>Location:</b> %s</p><p>School IT Helpdesk</p></body></html>",
				ticket.Reference, ticket.SubmitterName, ticket.Status.Display(), ticket.Location),
		}
	}
}

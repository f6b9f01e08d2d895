package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campushelp/helpdesk/internal/config"
	"github.com/campushelp/helpdesk/internal/domain"
	"github.com/campushelp/helpdesk/internal/events"
)

func notifyTicket() domain.Ticket {
	return domain.Ticket{
		ID:             "t-1",
		Reference:      "HD-AB12CD34",
		SubmitterName:  "Dana Greer",
		SubmitterEmail: "dana@school.edu",
		Location:       "Room 204",
		Description:    "Projector flickers during lessons",
		Status:         domain.TicketStatusNew,
	}
}

func newNotificationService(mailer *recordingMailer) *NotificationService {
	return NewNotificationService(events.NewInMemoryDispatcher(), mailer, zap.NewNop(), config.MailConfig{
		FromAddress: "helpdesk@school.edu",
		StaffInbox:  "it@school.edu",
	})
}

func TestNotifyRecipients(t *testing.T) {
	tests := []struct {
		name          string
		kind          NotificationKind
		wantRecipient string
		wantInSubject string
	}{
		{
			name:          "submission confirmation goes to the submitter",
			kind:          KindSubmissionConfirmation,
			wantRecipient: "dana@school.edu",
			wantInSubject: "Submitted Successfully",
		},
		{
			name:          "staff alert goes to the IT inbox",
			kind:          KindStaffAlert,
			wantRecipient: "it@school.edu",
			wantInSubject: "New IT Ticket",
		},
		{
			name:          "status update goes to the submitter",
			kind:          KindStatusUpdate,
			wantRecipient: "dana@school.edu",
			wantInSubject: "Status Update",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mailer := &recordingMailer{}
			n := newNotificationService(mailer)

			result := n.Notify(context.Background(), Notification{
				Kind:      tt.kind,
				Ticket:    notifyTicket(),
				OldStatus: domain.TicketStatusNew,
			})

			assert.True(t, result.Success)
			assert.Equal(t, tt.kind, result.Kind)
			assert.Equal(t, tt.wantRecipient, result.Recipient)

			sent := mailer.sent()
			require.Len(t, sent, 1)
			assert.Contains(t, sent[0].Subject, tt.wantInSubject)
			assert.Contains(t, sent[0].Subject, "HD-AB12CD34")
			assert.NotEmpty(t, sent[0].TextBody)
			assert.NotEmpty(t, sent[0].HTMLBody)
		})
	}
}

func TestNotifyStatusUpdateMentionsBothStatuses(t *testing.T) {
	mailer := &recordingMailer{}
	n := newNotificationService(mailer)

	ticket := notifyTicket()
	ticket.Status = domain.TicketStatusInProgress
	n.Notify(context.Background(), Notification{
		Kind:      KindStatusUpdate,
		Ticket:    ticket,
		OldStatus: domain.TicketStatusNew,
	})

	sent := mailer.sent()
	require.Len(t, sent, 1)
	assert.Contains(t, sent[0].TextBody, "New")
	assert.Contains(t, sent[0].TextBody, "In Progress")
}

func TestNotifyFailsOpen(t *testing.T) {
	mailer := &recordingMailer{failWith: errors.New("connection refused")}
	n := newNotificationService(mailer)

	result := n.Notify(context.Background(), Notification{
		Kind:   KindSubmissionConfirmation,
		Ticket: notifyTicket(),
	})

	assert.False(t, result.Success)
	assert.Contains(t, result.Reason, "connection refused")
}

func TestHandlersTolerateBadPayload(t *testing.T) {
	mailer := &recordingMailer{}
	n := newNotificationService(mailer)

	err := n.handleTicketStatusChanged(context.Background(), events.Event{
		Type:    events.EventTicketStatusChanged,
		Ticket:  notifyTicket(),
		Payload: "not a status payload",
	})
	require.NoError(t, err)
	assert.Empty(t, mailer.sent())
}

package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushelp/helpdesk/internal/domain"
)

func TestDispatcherRoutesByType(t *testing.T) {
	d := NewInMemoryDispatcher()

	var created, changed int
	d.Subscribe(EventTicketCreated, func(context.Context, Event) error {
		created++
		return nil
	})
	d.Subscribe(EventTicketStatusChanged, func(context.Context, Event) error {
		changed++
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventTicketCreated}))
	require.NoError(t, d.Publish(context.Background(), Event{Type: EventTicketCreated}))
	require.NoError(t, d.Publish(context.Background(), Event{Type: EventTicketStatusChanged}))

	assert.Equal(t, 2, created)
	assert.Equal(t, 1, changed)
}

func TestDispatcherFailingHandlerDoesNotBlockOthers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var reached bool
	d.Subscribe(EventTicketCreated, func(context.Context, Event) error {
		return errors.New("handler blew up")
	})
	d.Subscribe(EventTicketCreated, func(context.Context, Event) error {
		reached = true
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventTicketCreated}))
	assert.True(t, reached)
}

func TestDispatcherDeliversSnapshot(t *testing.T) {
	d := NewInMemoryDispatcher()

	var got Event
	d.Subscribe(EventTicketStatusChanged, func(_ context.Context, event Event) error {
		got = event
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{
		Type:   EventTicketStatusChanged,
		Ticket: domain.Ticket{Reference: "HD-12AB34CD", Status: domain.TicketStatusOnHold},
		Payload: StatusChangedPayload{
			OldStatus: domain.TicketStatusNew,
			NewStatus: domain.TicketStatusOnHold,
		},
	}))

	assert.Equal(t, "HD-12AB34CD", got.Ticket.Reference)
	payload, ok := got.Payload.(StatusChangedPayload)
	require.True(t, ok)
	assert.Equal(t, domain.TicketStatusNew, payload.OldStatus)
}

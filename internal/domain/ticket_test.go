package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTicketStatus(t *testing.T) {
	tests := []struct {
		raw     string
		want    TicketStatus
		wantErr bool
	}{
		{raw: "NEW", want: TicketStatusNew},
		{raw: "IN_PROGRESS", want: TicketStatusInProgress},
		{raw: "ON_HOLD", want: TicketStatusOnHold},
		{raw: "CLOSED", want: TicketStatusClosed},
		{raw: "", wantErr: true},
		{raw: "new", wantErr: true},
		{raw: "RESOLVED", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseTicketStatus(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTicketStatusDisplay(t *testing.T) {
	assert.Equal(t, "New", TicketStatusNew.Display())
	assert.Equal(t, "In Progress", TicketStatusInProgress.Display())
	assert.Equal(t, "On Hold", TicketStatusOnHold.Display())
	assert.Equal(t, "Closed", TicketStatusClosed.Display())
}

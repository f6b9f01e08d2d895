// Package mail provides outbound notification transports. Any transport
// able to deliver a rendered message satisfies Mailer; delivery problems are
// reported to the caller, which treats them as non-fatal.
package mail

import (
	"context"

	"go.uber.org/zap"
)

// Message is a rendered notification ready for delivery.
type Message struct {
	To       string
	Subject  string
	HTMLBody string
	TextBody string
}

// Mailer delivers a single message.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// LogMailer writes messages to the log instead of sending them. Used when
// no SMTP relay is configured, and as the default in tests.
type LogMailer struct {
	logger *zap.Logger
}

// NewLogMailer builds the stub transport.
func NewLogMailer(logger *zap.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

// Send logs the message and reports success.
func (m *LogMailer) Send(_ context.Context, msg Message) error {
	m.logger.Info("mail (log-only transport)",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
	)
	return nil
}

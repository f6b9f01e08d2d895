package mail

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/campushelp/helpdesk/internal/config"
)

// SMTPMailer delivers messages over an SMTP relay.
type SMTPMailer struct {
	cfg    config.MailConfig
	dialer *gomail.Dialer
}

// NewSMTPMailer builds a mailer from config.
func NewSMTPMailer(cfg config.MailConfig) *SMTPMailer {
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	return &SMTPMailer{cfg: cfg, dialer: dialer}
}

// Send delivers one message, bounded by the configured send timeout. The
// dial-and-send runs in its own goroutine because the SMTP client does not
// take a context; on timeout the attempt is abandoned and reported failed.
func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	gm := gomail.NewMessage()
	gm.SetHeader("From", m.cfg.FromAddress)
	gm.SetHeader("To", msg.To)
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/plain", msg.TextBody)
	if msg.HTMLBody != "" {
		gm.AddAlternative("text/html", msg.HTMLBody)
	}

	sendCtx, cancel := context.WithTimeout(ctx, m.cfg.SendTimeout())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- m.dialer.DialAndSend(gm)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("smtp send: %w", err)
		}
		return nil
	case <-sendCtx.Done():
		return fmt.Errorf("smtp send: %w", sendCtx.Err())
	}
}

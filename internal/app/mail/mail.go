/*
Package mail delivers transactional email: temporary recovery passwords and
two-factor sign-in codes.

Delivery is a collaborator behind the Mailer interface. Production uses plain
SMTP; when no SMTP host is configured the log-only sender is used instead, which
keeps development environments working without a mail relay.
*/
package mail

import (
	"context"
	"fmt"
	"net/smtp"

	"pongarena/internal/pkg/logx"
)

// Mailer sends one message to one recipient. Failures are terminal per
// request; no retries are performed.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Config holds SMTP transport settings. An empty Host selects the log sender.
type Config struct {
	Host     string
	Port     int
	From     string
	Username string
	Password string
}

// NewMailer selects the concrete sender from configuration.
func NewMailer(cfg Config) Mailer {
	if cfg.Host == "" {
		return &logMailer{}
	}
	return &smtpMailer{cfg: cfg}
}

// smtpMailer sends mail through a plain SMTP relay.
type smtpMailer struct {
	cfg Config
}

func (m *smtpMailer) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n",
		m.cfg.From, to, subject, body)

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("smtp send failed: %w", err)
	}

	return nil
}

// logMailer writes the message to the log instead of sending it.
// Development only: codes and temporary passwords end up in plain text logs.
type logMailer struct{}

func (m *logMailer) Send(ctx context.Context, to, subject, body string) error {
	logx.Info("Mail delivery (log sender)", "to", to, "subject", subject, "body", body)
	return nil
}

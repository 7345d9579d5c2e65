package notification

import (
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	"github.com/netfibra/backoffice/internal"
)

// Mailer sends a plain-text message. Implementations must be safe for
// concurrent use; delivery is best effort and callers never block on it.
type Mailer interface {
	Send(to, subject, body string) error
}

type SMTPMailer struct {
	cfg internal.EmailConfig
}

func NewSMTPMailer(cfg internal.EmailConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) Send(to, subject, body string) error {
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	msg := strings.Join([]string{
		"From: " + m.cfg.From,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=utf-8",
		"",
		body,
	}, "\r\n")

	return smtp.SendMail(addr, auth, m.cfg.From, []string{to}, []byte(msg))
}

// NoopMailer is used when no SMTP host is configured; sends are logged and
// dropped.
type NoopMailer struct {
	logger *slog.Logger
}

func NewNoopMailer(logger *slog.Logger) *NoopMailer {
	return &NoopMailer{logger: logger}
}

func (m *NoopMailer) Send(to, subject, body string) error {
	m.logger.Debug("email sending disabled, dropping message", "to", to, "subject", subject)
	return nil
}

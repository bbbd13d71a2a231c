package mailer

import (
	"fmt"
	"net/smtp"

	"go.uber.org/zap"

	"mobilis/backend/config"
)

// Mailer sends a single HTML email. Implementations must be safe for
// concurrent use by the notification workers.
type Mailer interface {
	Send(to, subject, html string) error
}

// New picks the implementation from configuration: SMTP when a host is
// configured, otherwise a log-only mailer so development runs without a relay.
func New(cfg *config.MailConfig, logger *zap.Logger) Mailer {
	if cfg.SMTPHost == "" {
		logger.Warn("mail.smtp_host not configured, emails will only be logged")
		return &logMailer{logger: logger}
	}
	return &smtpMailer{cfg: cfg}
}

// ── SMTP delivery ──

type smtpMailer struct {
	cfg *config.MailConfig
}

func (m *smtpMailer) Send(to, subject, html string) error {
	addr := fmt.Sprintf("%s:%d", m.cfg.SMTPHost, m.cfg.SMTPPort)

	msg := "From: " + m.cfg.From + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: text/html; charset=\"UTF-8\"\r\n" +
		"\r\n" +
		html

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.SMTPHost)
	}

	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

// ── log-only delivery ──

type logMailer struct {
	logger *zap.Logger
}

func (m *logMailer) Send(to, subject, _ string) error {
	m.logger.Info("email (not sent, smtp disabled)",
		zap.String("to", to),
		zap.String("subject", subject),
	)
	return nil
}

package mail

import (
	"fmt"
	"log"
	"net/smtp"
	"techfix/internal/platform/config"
)

// Mailer is the outbound email contract. No core operation depends on
// delivery succeeding.
type Mailer interface {
	Send(to, subject, body string) error
}

// NewFromConfig returns the SMTP mailer when mail is enabled, otherwise a
// mailer that only logs.
func NewFromConfig() Mailer {
	cfg := config.AppConfig
	if !cfg.MailEnabled {
		return &logMailer{}
	}
	return &smtpMailer{
		addr:   fmt.Sprintf("%s:%d", cfg.MailHost, cfg.MailPort),
		host:   cfg.MailHost,
		from:   cfg.MailSender,
		auth:   smtp.PlainAuth("", cfg.MailUsername, cfg.MailPassword, cfg.MailHost),
		hasPwd: cfg.MailUsername != "",
	}
}

type logMailer struct{}

func (m *logMailer) Send(to, subject, body string) error {
	log.Printf("MAIL (disabled): to=%s subject=%q", to, subject)
	return nil
}

type smtpMailer struct {
	addr   string
	host   string
	from   string
	auth   smtp.Auth
	hasPwd bool
}

func (m *smtpMailer) Send(to, subject, body string) error {
	msg := []byte("From: " + m.from + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"\r\n" +
		body + "\r\n")

	var auth smtp.Auth
	if m.hasPwd {
		auth = m.auth
	}
	if err := smtp.SendMail(m.addr, auth, m.from, []string{to}, msg); err != nil {
		return fmt.Errorf("mail: send to %s: %w", to, err)
	}
	return nil
}

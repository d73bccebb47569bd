package notify

import (
	"fmt"
	"net/smtp"

	"github.com/rs/zerolog/log"
)

// Mailer is the outbound delivery boundary. Template rendering and SMTP
// details stay behind it.
type Mailer interface {
	Send(to, subject, body string) error
}

// SMTPMailer sends plain-text mail over authenticated SMTP.
type SMTPMailer struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

func (m *SMTPMailer) Send(to, subject, body string) error {
	addr := fmt.Sprintf("%s:%d", m.Host, m.Port)
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n", m.From, to, subject, body)

	var a smtp.Auth
	if m.User != "" {
		a = smtp.PlainAuth("", m.User, m.Pass, m.Host)
	}
	return smtp.SendMail(addr, a, m.From, []string{to}, []byte(msg))
}

// LogMailer is the fallback when SMTP is unconfigured. Used in development
// and tests.
type LogMailer struct{}

func (LogMailer) Send(to, subject, body string) error {
	log.Info().Str("to", to).Str("subject", subject).Msg("mail (log only)")
	return nil
}

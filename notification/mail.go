package notification

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/raykavin/signalert/core"
)

const (
	gmailSMTPAddress = "smtp.gmail.com"
	gmailSMTPPort    = 587
	gmailSubject     = "Signalert alert"
)

// Mail handles email notifications through Gmail's SMTP service
type Mail struct {
	auth              smtp.Auth
	smtpServerPort    int
	smtpServerAddress string
	to                []string
	from              string
}

// NewMail creates a new Mail instance from validated settings
func NewMail(settings core.GmailSettings) *Mail {
	return &Mail{
		from:              settings.Username,
		to:                settings.DestinationEmails,
		smtpServerPort:    gmailSMTPPort,
		smtpServerAddress: gmailSMTPAddress,
		auth: smtp.PlainAuth(
			"",
			settings.Username,
			settings.Password,
			gmailSMTPAddress,
		),
	}
}

// Name implements core.Notifier.
func (m *Mail) Name() string {
	return NameGmail
}

// Notify implements core.Notifier.
func (m *Mail) Notify(_ context.Context, text string) error {
	serverAddress := fmt.Sprintf("%s:%d", m.smtpServerAddress, m.smtpServerPort)

	message := fmt.Sprintf(
		"To: %s\r\nFrom: %s\r\nSubject: %s\r\n\r\n%s",
		strings.Join(m.to, ", "),
		m.from,
		gmailSubject,
		text,
	)

	err := smtp.SendMail(
		serverAddress,
		m.auth,
		m.from,
		m.to,
		[]byte(message),
	)
	if err != nil {
		return fmt.Errorf("gmail: send: %w", err)
	}

	return nil
}

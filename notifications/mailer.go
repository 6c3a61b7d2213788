// Package notifications delivers transactional email
package notifications

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	"github.com/druktrails/bhutan-tourism-api/config"
)

// Message is one outgoing email
type Message struct {
	ToEmail   string
	ToName    string
	Subject   string
	HTML      string
	PlainText string
}

// Mailer sends a message
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// New returns a SendGrid mailer when an API key is configured, otherwise a mailer
// that only logs
func New(conf *config.Config) Mailer {
	if conf.SendGridAPIKey == "" {
		zap.S().Warn("SENDGRID_API_KEY not set, emails will be logged and dropped")
		return NoopMailer{}
	}
	return NewSendGridMailer(conf.SendGridAPIKey, conf.MailFromName, conf.MailFromEmail)
}

// SendGridMailer sends through the SendGrid v3 API
type SendGridMailer struct {
	client    *sendgrid.Client
	fromName  string
	fromEmail string
}

// NewSendGridMailer creates a mailer sending as fromName <fromEmail>
func NewSendGridMailer(apiKey, fromName, fromEmail string) *SendGridMailer {
	return &SendGridMailer{
		client:    sendgrid.NewSendClient(apiKey),
		fromName:  fromName,
		fromEmail: fromEmail,
	}
}

// Send delivers msg, treating any 4xx/5xx response as an error
func (m *SendGridMailer) Send(ctx context.Context, msg Message) error {
	from := mail.NewEmail(m.fromName, m.fromEmail)
	to := mail.NewEmail(msg.ToName, msg.ToEmail)
	message := mail.NewSingleEmail(from, msg.Subject, to, msg.PlainText, msg.HTML)

	response, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		zap.S().Errorw("failed to send email", "error", err, "to", msg.ToEmail)
		return err
	}
	if response.StatusCode >= 400 {
		zap.S().Errorw("sendgrid returned error status", "status", response.StatusCode, "body", response.Body, "to", msg.ToEmail)
		return fmt.Errorf("sendgrid error: status %d", response.StatusCode)
	}
	zap.S().Infow("email sent successfully", "to", msg.ToEmail, "subject", msg.Subject)
	return nil
}

// NoopMailer drops every message after logging it
type NoopMailer struct{}

// Send logs msg and returns nil
func (NoopMailer) Send(ctx context.Context, msg Message) error {
	zap.S().Infow("email not sent, no mail provider configured", "to", msg.ToEmail, "subject", msg.Subject)
	return nil
}

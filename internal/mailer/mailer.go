// Package mailer wraps the email delivery provider.
package mailer

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Config holds delivery-provider settings. An empty APIKey means the
// provider is not configured, which is not an error condition.
type Config struct {
	APIKey      string
	FromName    string
	FromAddress string
}

// Attachment is an optional file attached to an email.
type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Email is one outbound message.
type Email struct {
	ToName     string
	ToAddress  string
	Subject    string
	Body       string
	Attachment *Attachment
}

// Sender delivers email through a provider.
type Sender interface {
	Configured() bool
	Send(ctx context.Context, msg Email) error
}

// SendGridSender delivers email via the SendGrid v3 API.
type SendGridSender struct {
	cfg    Config
	client *sendgrid.Client
}

// NewSendGridSender creates a sender from the given config.
func NewSendGridSender(cfg Config) *SendGridSender {
	return &SendGridSender{
		cfg:    cfg,
		client: sendgrid.NewSendClient(cfg.APIKey),
	}
}

// Configured reports whether a provider credential is present.
func (s *SendGridSender) Configured() bool {
	return s.cfg.APIKey != ""
}

// Send delivers a single message.
func (s *SendGridSender) Send(ctx context.Context, msg Email) error {
	from := mail.NewEmail(s.cfg.FromName, s.cfg.FromAddress)
	to := mail.NewEmail(msg.ToName, msg.ToAddress)
	message := mail.NewSingleEmail(from, msg.Subject, to, msg.Body, msg.Body)

	if msg.Attachment != nil {
		attachment := mail.NewAttachment()
		attachment.SetContent(base64.StdEncoding.EncodeToString(msg.Attachment.Content))
		attachment.SetType(msg.Attachment.ContentType)
		attachment.SetFilename(msg.Attachment.Filename)
		attachment.SetDisposition("attachment")
		message.AddAttachment(attachment)
	}

	resp, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("email provider rejected message: status %d", resp.StatusCode)
	}
	return nil
}

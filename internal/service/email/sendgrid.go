package email

import (
	"context"
	"fmt"
	"sort"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGridProvider implements the Provider interface using SendGrid
type SendGridProvider struct {
	from   Address
	client *sendgrid.Client
}

// NewSendGridProvider creates a new SendGrid provider
func NewSendGridProvider(apiKey string, from Address) *SendGridProvider {
	return &SendGridProvider{
		from:   from,
		client: sendgrid.NewSendClient(apiKey),
	}
}

// Send sends an email using SendGrid
func (p *SendGridProvider) Send(ctx context.Context, msg *Message) error {
	response, err := p.client.SendWithContext(ctx, p.build(msg))
	if err != nil {
		return fmt.Errorf("sendgrid error: %w", err)
	}

	// SendGrid returns 2xx for success
	if response.StatusCode >= 300 {
		return fmt.Errorf("sendgrid returned status %d: %s", response.StatusCode, response.Body)
	}

	return nil
}

func (p *SendGridProvider) build(msg *Message) *mail.SGMailV3 {
	from := msg.From
	if from.Email == "" {
		from = p.from
	}

	message := mail.NewV3Mail()
	message.SetFrom(mail.NewEmail(from.Name, from.Email))
	message.Subject = msg.Subject

	personalization := mail.NewPersonalization()
	personalization.AddTos(mail.NewEmail("", msg.To))
	message.AddPersonalizations(personalization)

	// text/plain must precede text/html.
	if msg.Text != "" {
		message.AddContent(mail.NewContent("text/plain", msg.Text))
	}
	if msg.HTML != "" {
		message.AddContent(mail.NewContent("text/html", msg.HTML))
	}

	if msg.ReplyTo != "" {
		message.SetReplyTo(mail.NewEmail("", msg.ReplyTo))
	}

	keys := make([]string, 0, len(msg.Headers))
	for k := range msg.Headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if msg.Headers[k] != "" {
			message.SetHeader(k, msg.Headers[k])
		}
	}

	if len(msg.Categories) > 0 {
		message.AddCategories(msg.Categories...)
	}
	return message
}

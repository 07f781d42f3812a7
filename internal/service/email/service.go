package email

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	texttemplate "text/template"
	"time"

	"go.uber.org/zap"

	"github.com/aniket045123/craftmyresume/internal/domain"
	"github.com/aniket045123/craftmyresume/internal/observability/telemetry"
	"github.com/aniket045123/craftmyresume/internal/ports"
	"github.com/aniket045123/craftmyresume/pkg/config"
)

var (
	ErrNotConfigured = errors.New("email provider not configured")
	ErrNoRecipient   = errors.New("missing recipient")
)

const gobreakerTimeout = 30 * time.Second

// Config holds email service configuration
type Config struct {
	// Provider type: "sendgrid", "smtp" or "none"
	Provider string

	From Address

	// Sender of lead notifications; falls back to From.
	LeadsFrom     Address
	LeadsNotifyTo string

	SendGridAPIKey string

	// SMTP configuration (for Mailhog or other SMTP servers)
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string

	BusinessName string
	Location     *time.Location
}

// DefaultConfig returns a default configuration for development (Mailhog)
func DefaultConfig() *Config {
	return &Config{
		Provider:     "smtp",
		From:         Address{Name: "CraftMyResume", Email: "noreply@craftmyresume.com"},
		SMTPHost:     "localhost",
		SMTPPort:     1025, // Mailhog default port
		BusinessName: "CraftMyResume",
		Location:     time.UTC,
	}
}

// ConfigFrom maps the notification section of the application config.
func ConfigFrom(cfg config.NotificationConfig, loc *time.Location) *Config {
	c := &Config{
		Provider:       cfg.Email.Provider,
		From:           Address{Name: cfg.Email.FromName, Email: cfg.Email.From},
		LeadsNotifyTo:  cfg.LeadsNotifyTo,
		SendGridAPIKey: cfg.Email.APIKey,
		SMTPHost:       cfg.Email.SMTPHost,
		SMTPPort:       cfg.Email.SMTPPort,
		SMTPUsername:   cfg.Email.SMTPUser,
		SMTPPassword:   cfg.Email.SMTPPass,
		BusinessName:   cfg.Email.FromName,
		Location:       loc,
	}
	if cfg.LeadsNotifyFrom != "" {
		if addr, err := ParseAddress(cfg.LeadsNotifyFrom); err == nil {
			c.LeadsFrom = addr
		}
	}
	if c.BusinessName == "" {
		c.BusinessName = "CraftMyResume"
	}
	return c
}

// Service renders the notification templates and hands them to the provider.
type Service struct {
	config   *Config
	provider Provider
	html     map[string]*template.Template
	text     map[string]*texttemplate.Template
	log      *zap.Logger
}

// NewService creates a new email service. Provider "none" yields a service
// whose sends fail with ErrNotConfigured.
func NewService(config *Config, log *zap.Logger) (*Service, error) {
	if config == nil {
		config = DefaultConfig()
	}

	var provider Provider
	switch config.Provider {
	case "sendgrid":
		if config.SendGridAPIKey == "" {
			return nil, fmt.Errorf("SendGrid API key is required")
		}
		provider = withBreaker("sendgrid", NewSendGridProvider(config.SendGridAPIKey, config.From), log)
	case "smtp":
		provider = withBreaker("smtp", NewSMTPProvider(
			config.SMTPHost,
			config.SMTPPort,
			config.SMTPUsername,
			config.SMTPPassword,
			config.From,
		), log)
	case "", "none":
		log.Warn("Email provider not configured; notifications will not be sent")
	default:
		return nil, fmt.Errorf("unknown email provider: %s", config.Provider)
	}

	return NewServiceWithProvider(config, provider, log), nil
}

func NewServiceWithProvider(config *Config, provider Provider, log *zap.Logger) *Service {
	if config.Location == nil {
		config.Location = time.UTC
	}
	s := &Service{
		config:   config,
		provider: provider,
		log:      log,
	}
	s.loadTemplates()
	return s
}

var _ ports.NotificationService = (*Service)(nil)

func (s *Service) loadTemplates() {
	s.html = map[string]*template.Template{
		"lead":          template.Must(template.New("lead").Parse(leadNotificationTemplate)),
		"new_request":   template.Must(template.New("new_request").Parse(newRequestTemplate)),
		"auto_response": template.Must(template.New("auto_response").Parse(autoResponseTemplate)),
	}
	s.text = map[string]*texttemplate.Template{
		"lead":          texttemplate.Must(texttemplate.New("lead").Parse(leadNotificationText)),
		"new_request":   texttemplate.Must(texttemplate.New("new_request").Parse(newRequestText)),
		"auto_response": texttemplate.Must(texttemplate.New("auto_response").Parse(autoResponseText)),
	}
}

func (s *Service) render(name string, data interface{}) (string, string, error) {
	var html, text bytes.Buffer
	if err := s.html[name].Execute(&html, data); err != nil {
		return "", "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}
	if err := s.text[name].Execute(&text, data); err != nil {
		return "", "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}
	return html.String(), text.String(), nil
}

func (s *Service) send(ctx context.Context, templateName string, msg *Message) error {
	if s.provider == nil {
		telemetry.NotificationEmailsTotal.WithLabelValues(templateName, "skipped").Inc()
		return ErrNotConfigured
	}

	s.log.Info("Sending email",
		zap.String("template", templateName),
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
	)

	if err := s.provider.Send(ctx, msg); err != nil {
		telemetry.NotificationEmailsTotal.WithLabelValues(templateName, "failed").Inc()
		s.log.Error("Failed to send email",
			zap.String("template", templateName),
			zap.String("to", msg.To),
			zap.Error(err),
		)
		return fmt.Errorf("failed to send email: %w", err)
	}

	telemetry.NotificationEmailsTotal.WithLabelValues(templateName, "sent").Inc()
	return nil
}

type row struct {
	Label string
	Value string
}

type leadView struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Plan      string
	Message   string
	Created   string
	Referrer  string
	Source    string
	IP        string
	UserAgent string
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// LeadSubject omits the plan when the lead has none.
func LeadSubject(lead *domain.Lead) string {
	name := lead.Name
	if name == "" {
		name = "Website"
	}
	if plan := domain.StringValue(lead.Plan); plan != "" {
		return fmt.Sprintf("New Lead — %s: %s", plan, name)
	}
	return "New Lead: " + name
}

// SendLeadNotification mails the configured leads inbox. Replies go to the lead.
func (s *Service) SendLeadNotification(ctx context.Context, lead *domain.Lead) error {
	if s.config.LeadsNotifyTo == "" {
		return ErrNoRecipient
	}

	view := leadView{
		ID:        dash(lead.ID),
		Name:      dash(lead.Name),
		Email:     dash(domain.StringValue(lead.Email)),
		Phone:     dash(domain.StringValue(lead.Phone)),
		Plan:      dash(domain.StringValue(lead.Plan)),
		Message:   dash(domain.StringValue(lead.Message)),
		Referrer:  dash(domain.StringValue(lead.Referrer)),
		Source:    dash(domain.StringValue(lead.Source)),
		IP:        dash(domain.StringValue(lead.IP)),
		UserAgent: dash(domain.StringValue(lead.UserAgent)),
		Created:   "-",
	}
	if !lead.CreatedAt.IsZero() {
		view.Created = lead.CreatedAt.In(s.config.Location).Format(time.RFC3339)
	}

	data := map[string]interface{}{
		"BusinessName": s.config.BusinessName,
		"Lead":         view,
		"Rows": []row{
			{"Name", view.Name}, {"Email", view.Email}, {"Phone", view.Phone},
			{"Plan", view.Plan}, {"Message", view.Message}, {"Created", view.Created},
			{"Referrer", view.Referrer}, {"Source", view.Source}, {"IP", view.IP},
			{"User-Agent", view.UserAgent}, {"Lead ID", view.ID},
		},
	}
	html, text, err := s.render("lead", data)
	if err != nil {
		return err
	}

	return s.send(ctx, "lead", &Message{
		From:       s.config.LeadsFrom,
		To:         s.config.LeadsNotifyTo,
		ReplyTo:    domain.StringValue(lead.Email),
		Subject:    LeadSubject(lead),
		HTML:       html,
		Text:       text,
		Headers:    map[string]string{"X-Entity-Ref-ID": lead.ID},
		Categories: []string{"craftmyresume", "lead"},
	})
}

// SendNewRequestNotification tells the operator about a new order.
func (s *Service) SendNewRequestNotification(ctx context.Context, to string, event *domain.IntakeEvent) error {
	if to == "" {
		return ErrNoRecipient
	}

	data := map[string]interface{}{
		"BusinessName": s.config.BusinessName,
		"Kind":         event.Kind.DisplayName(),
		"OrderID":      dash(event.OrderID),
		"Name":         dash(event.Name),
		"Email":        dash(event.Email),
		"Phone":        dash(event.Phone),
		"Submitted":    event.OccurredAt.In(s.config.Location).Format("02 Jan 2006 15:04 MST"),
	}
	html, text, err := s.render("new_request", data)
	if err != nil {
		return err
	}

	return s.send(ctx, "new_request", &Message{
		To:         to,
		ReplyTo:    event.Email,
		Subject:    fmt.Sprintf("New %s request %s from %s", event.Kind.DisplayName(), event.OrderID, dash(event.Name)),
		HTML:       html,
		Text:       text,
		Headers:    map[string]string{"X-Entity-Ref-ID": event.OrderID},
		Categories: []string{"craftmyresume", "request"},
	})
}

// SendAutoResponse acknowledges a customer's order with the configured message.
func (s *Service) SendAutoResponse(ctx context.Context, to, name, message string) error {
	if to == "" {
		return ErrNoRecipient
	}
	if name == "" {
		name = "there"
	}

	data := map[string]interface{}{
		"BusinessName": s.config.BusinessName,
		"Name":         name,
		"Message":      message,
	}
	html, text, err := s.render("auto_response", data)
	if err != nil {
		return err
	}

	return s.send(ctx, "auto_response", &Message{
		To:         to,
		Subject:    fmt.Sprintf("We received your request | %s", s.config.BusinessName),
		HTML:       html,
		Text:       text,
		Categories: []string{"craftmyresume", "auto_response"},
	})
}

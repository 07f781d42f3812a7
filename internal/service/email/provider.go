package email

import (
	"context"
	"errors"
	"fmt"
	"net/mail"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// Address is a mailbox with an optional display name.
type Address struct {
	Name  string
	Email string
}

func (a Address) String() string {
	if a.Name == "" {
		return a.Email
	}
	return (&mail.Address{Name: a.Name, Address: a.Email}).String()
}

// ParseAddress accepts "Name <user@host>" or a bare address.
func ParseAddress(s string) (Address, error) {
	parsed, err := mail.ParseAddress(s)
	if err != nil {
		return Address{}, err
	}
	return Address{Name: parsed.Name, Email: parsed.Address}, nil
}

// Message is one outgoing email. A zero From means the provider default.
type Message struct {
	From       Address
	To         string
	ReplyTo    string
	Subject    string
	HTML       string
	Text       string
	Headers    map[string]string
	Categories []string
}

// Provider defines the interface for email providers
type Provider interface {
	Send(ctx context.Context, msg *Message) error
}

// breakerProvider stops calling a provider that keeps failing.
type breakerProvider struct {
	next Provider
	cb   *gobreaker.CircuitBreaker
}

func withBreaker(name string, next Provider, log *zap.Logger) Provider {
	return &breakerProvider{
		next: next,
		cb: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        name,
			MaxRequests: 1,
			Timeout:     gobreakerTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				log.Warn("Email provider circuit changed",
					zap.String("provider", name),
					zap.String("from", from.String()),
					zap.String("to", to.String()),
				)
			},
		}),
	}
}

func (p *breakerProvider) Send(ctx context.Context, msg *Message) error {
	_, err := p.cb.Execute(func() (interface{}, error) {
		return nil, p.next.Send(ctx, msg)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("email provider unavailable: %w", err)
	}
	return err
}

package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/aniket045123/craftmyresume/internal/adapter/queue"
	"github.com/aniket045123/craftmyresume/internal/domain"
	"github.com/aniket045123/craftmyresume/internal/ports"
	"github.com/aniket045123/craftmyresume/internal/service/email"
)

// Broadcaster fans a message out to live admin clients.
type Broadcaster interface {
	Broadcast(message []byte)
}

// Worker consumes intake events: every event is relayed to the admin
// live feed, and new orders trigger the settings-driven emails.
type Worker struct {
	mq       queue.MessageQueue
	settings ports.SettingsService
	notifier ports.NotificationService
	feed     Broadcaster
	timeout  time.Duration
	log      *zap.Logger
}

func NewWorker(mq queue.MessageQueue, settings ports.SettingsService, notifier ports.NotificationService, feed Broadcaster, log *zap.Logger) *Worker {
	return &Worker{
		mq:       mq,
		settings: settings,
		notifier: notifier,
		feed:     feed,
		timeout:  15 * time.Second,
		log:      log,
	}
}

// Start subscribes to the intake subjects.
func (w *Worker) Start() error {
	if err := w.mq.Subscribe(domain.SubjectLeadCreated, w.handleLead); err != nil {
		return fmt.Errorf("subscribe %s: %w", domain.SubjectLeadCreated, err)
	}
	if err := w.mq.Subscribe(domain.SubjectRequestCreated, w.handleRequest); err != nil {
		return fmt.Errorf("subscribe %s: %w", domain.SubjectRequestCreated, err)
	}
	w.log.Info("Notification worker subscribed",
		zap.Strings("subjects", []string{domain.SubjectLeadCreated, domain.SubjectRequestCreated}),
	)
	return nil
}

func (w *Worker) handleLead(data []byte) error {
	if _, err := decode(data); err != nil {
		return err
	}
	w.relay(data)
	return nil
}

func (w *Worker) handleRequest(data []byte) error {
	event, err := decode(data)
	if err != nil {
		return err
	}
	w.relay(data)

	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()
	return w.notifyRequest(ctx, event)
}

func (w *Worker) notifyRequest(ctx context.Context, event *domain.IntakeEvent) error {
	settings, err := w.settings.Get(ctx)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	var errs []error
	if settings.EmailNotificationsEnabled && settings.NotificationEmail != "" {
		if err := w.notifier.SendNewRequestNotification(ctx, settings.NotificationEmail, event); err != nil && !skippable(err) {
			errs = append(errs, fmt.Errorf("new request notification: %w", err))
		}
	}
	if settings.AutoResponseEnabled && event.Email != "" {
		if err := w.notifier.SendAutoResponse(ctx, event.Email, event.Name, settings.AutoResponseMessage); err != nil && !skippable(err) {
			errs = append(errs, fmt.Errorf("auto response: %w", err))
		}
	}
	return errors.Join(errs...)
}

func (w *Worker) relay(data []byte) {
	if w.feed == nil {
		return
	}
	w.feed.Broadcast(data)
}

// skippable errors mean email is unconfigured, not that a send failed.
func skippable(err error) bool {
	return errors.Is(err, email.ErrNotConfigured) || errors.Is(err, email.ErrNoRecipient)
}

func decode(data []byte) (*domain.IntakeEvent, error) {
	var event domain.IntakeEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, fmt.Errorf("decode intake event: %w", err)
	}
	return &event, nil
}

package notification

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/aniket045123/craftmyresume/internal/adapter/queue"
	"github.com/aniket045123/craftmyresume/internal/domain"
	"github.com/aniket045123/craftmyresume/internal/mocks"
	"github.com/aniket045123/craftmyresume/internal/service/email"
)

func newTestLogger() *zap.Logger {
	logger, _ := zap.NewDevelopment()
	return logger
}

type recordingFeed struct {
	mu       sync.Mutex
	messages [][]byte
}

func (f *recordingFeed) Broadcast(message []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, message)
}

func (f *recordingFeed) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.messages)
}

func requestEvent(t *testing.T) []byte {
	t.Helper()
	data, err := json.Marshal(domain.IntakeEvent{
		Type:       domain.SubjectRequestCreated,
		Kind:       domain.RequestKindBuild,
		RecordID:   "BUILD-4",
		OrderID:    "BUILD-1741599000000",
		Name:       "Arjun",
		Email:      "arjun@example.com",
		OccurredAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	return data
}

func TestWorker_RequestCreatedSendsBothEmails(t *testing.T) {
	// Arrange
	mq := mocks.NewMockMessageQueue()
	feed := &recordingFeed{}
	var adminTo, autoTo, autoMessage string
	notifier := &mocks.MockNotificationService{
		SendNewRequestNotificationFunc: func(ctx context.Context, to string, event *domain.IntakeEvent) error {
			adminTo = to
			if event.OrderID != "BUILD-1741599000000" {
				t.Errorf("unexpected order id %q", event.OrderID)
			}
			return nil
		},
		SendAutoResponseFunc: func(ctx context.Context, to, name, message string) error {
			autoTo, autoMessage = to, message
			return nil
		},
	}
	w := NewWorker(mq, &mocks.MockSettingsService{}, notifier, feed, newTestLogger())
	if err := w.Start(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	// Act
	err := mq.Deliver(domain.SubjectRequestCreated, requestEvent(t))

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	defaults := domain.DefaultBusinessSettings()
	if adminTo != defaults.NotificationEmail {
		t.Errorf("expected admin email to %s, got %q", defaults.NotificationEmail, adminTo)
	}
	if autoTo != "arjun@example.com" || autoMessage != defaults.AutoResponseMessage {
		t.Errorf("unexpected auto response to=%q message=%q", autoTo, autoMessage)
	}
	if feed.count() != 1 {
		t.Errorf("expected 1 relayed message, got %d", feed.count())
	}
}

func TestWorker_RespectsDisabledSettings(t *testing.T) {
	mq := mocks.NewMockMessageQueue()
	settings := &mocks.MockSettingsService{
		GetFunc: func(ctx context.Context) (domain.BusinessSettings, error) {
			s := domain.DefaultBusinessSettings()
			s.EmailNotificationsEnabled = false
			s.AutoResponseEnabled = false
			return s, nil
		},
	}
	sent := 0
	notifier := &mocks.MockNotificationService{
		SendNewRequestNotificationFunc: func(ctx context.Context, to string, event *domain.IntakeEvent) error {
			sent++
			return nil
		},
		SendAutoResponseFunc: func(ctx context.Context, to, name, message string) error {
			sent++
			return nil
		},
	}
	w := NewWorker(mq, settings, notifier, nil, newTestLogger())
	if err := w.Start(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if err := mq.Deliver(domain.SubjectRequestCreated, requestEvent(t)); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if sent != 0 {
		t.Errorf("expected no emails, got %d", sent)
	}
}

func TestWorker_UnconfiguredEmailIsNotAnError(t *testing.T) {
	mq := mocks.NewMockMessageQueue()
	notifier := &mocks.MockNotificationService{
		SendNewRequestNotificationFunc: func(ctx context.Context, to string, event *domain.IntakeEvent) error {
			return email.ErrNotConfigured
		},
		SendAutoResponseFunc: func(ctx context.Context, to, name, message string) error {
			return email.ErrNotConfigured
		},
	}
	w := NewWorker(mq, &mocks.MockSettingsService{}, notifier, nil, newTestLogger())
	if err := w.Start(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if err := mq.Deliver(domain.SubjectRequestCreated, requestEvent(t)); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

func TestWorker_SendFailureIsReported(t *testing.T) {
	mq := mocks.NewMockMessageQueue()
	autoResponses := 0
	notifier := &mocks.MockNotificationService{
		SendNewRequestNotificationFunc: func(ctx context.Context, to string, event *domain.IntakeEvent) error {
			return errors.New("provider returned 500")
		},
		SendAutoResponseFunc: func(ctx context.Context, to, name, message string) error {
			autoResponses++
			return nil
		},
	}
	w := NewWorker(mq, &mocks.MockSettingsService{}, notifier, nil, newTestLogger())
	if err := w.Start(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if err := mq.Deliver(domain.SubjectRequestCreated, requestEvent(t)); err == nil {
		t.Error("expected error, got nil")
	}
	if autoResponses != 1 {
		t.Errorf("expected auto response despite admin failure, got %d", autoResponses)
	}
}

func TestWorker_SendFailureIsNotRedelivered(t *testing.T) {
	mq := queue.NewMemoryQueue(newTestLogger())
	adminSends, autoResponses := 0, 0
	notifier := &mocks.MockNotificationService{
		SendNewRequestNotificationFunc: func(ctx context.Context, to string, event *domain.IntakeEvent) error {
			adminSends++
			return errors.New("provider returned 500")
		},
		SendAutoResponseFunc: func(ctx context.Context, to, name, message string) error {
			autoResponses++
			return nil
		},
	}
	w := NewWorker(mq, &mocks.MockSettingsService{}, notifier, nil, newTestLogger())
	if err := w.Start(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if err := mq.Publish(domain.SubjectRequestCreated, requestEvent(t)); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if adminSends != 1 || autoResponses != 1 {
		t.Errorf("expected one attempt each, got admin=%d auto=%d", adminSends, autoResponses)
	}
}

func TestWorker_LeadEventsAreRelayedOnly(t *testing.T) {
	mq := mocks.NewMockMessageQueue()
	feed := &recordingFeed{}
	notifier := &mocks.MockNotificationService{
		SendAutoResponseFunc: func(ctx context.Context, to, name, message string) error {
			t.Error("lead events must not trigger auto responses")
			return nil
		},
	}
	w := NewWorker(mq, &mocks.MockSettingsService{}, notifier, feed, newTestLogger())
	if err := w.Start(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	data, _ := json.Marshal(domain.IntakeEvent{Type: domain.SubjectLeadCreated, RecordID: "lead-1", Name: "Ravi"})
	if err := mq.Deliver(domain.SubjectLeadCreated, data); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if feed.count() != 1 {
		t.Errorf("expected 1 relayed message, got %d", feed.count())
	}
}

func TestWorker_MalformedPayload(t *testing.T) {
	mq := mocks.NewMockMessageQueue()
	feed := &recordingFeed{}
	w := NewWorker(mq, &mocks.MockSettingsService{}, &mocks.MockNotificationService{}, feed, newTestLogger())
	if err := w.Start(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if err := mq.Deliver(domain.SubjectRequestCreated, []byte("{not json")); err == nil {
		t.Error("expected decode error, got nil")
	}
	if feed.count() != 0 {
		t.Errorf("malformed payloads must not be relayed")
	}
}

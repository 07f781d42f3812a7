package queue

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/aniket045123/craftmyresume/internal/observability/telemetry"
	"github.com/aniket045123/craftmyresume/pkg/config"
)

// MessageQueue defines the interface for a message queue adapter
type MessageQueue interface {
	Publish(subject string, data []byte) error
	Subscribe(subject string, handler func(data []byte) error) error
	Close() error
	Ping() error
}

// New picks the broker named by cfg.Provider. "none" (or empty) returns an
// in-process queue so intake events still reach local subscribers.
func New(cfg config.QueueConfig, log *zap.Logger) (MessageQueue, error) {
	switch cfg.Provider {
	case "nats":
		return NewNATSQueue(cfg.NATS, log)
	case "rabbitmq":
		return NewRabbitMQQueue(cfg.RabbitMQ, log)
	case "", "none", "memory":
		log.Info("Using in-process message queue")
		return NewMemoryQueue(log), nil
	default:
		return nil, fmt.Errorf("unknown queue provider %q", cfg.Provider)
	}
}

// MemoryQueue delivers messages synchronously to handlers registered in
// this process.
type MemoryQueue struct {
	mu       sync.RWMutex
	handlers map[string][]func([]byte) error
	closed   bool
	log      *zap.Logger
}

func NewMemoryQueue(log *zap.Logger) *MemoryQueue {
	return &MemoryQueue{
		handlers: make(map[string][]func([]byte) error),
		log:      log,
	}
}

func (q *MemoryQueue) Publish(subject string, data []byte) error {
	q.mu.RLock()
	if q.closed {
		q.mu.RUnlock()
		return fmt.Errorf("memory queue: closed")
	}
	handlers := append([]func([]byte) error(nil), q.handlers[subject]...)
	q.mu.RUnlock()

	telemetry.QueueMessagesTotal.WithLabelValues(subject, "out").Inc()
	for _, h := range handlers {
		telemetry.QueueMessagesTotal.WithLabelValues(subject, "in").Inc()
		if err := h(data); err != nil {
			q.log.Error("Error processing message", zap.String("subject", subject), zap.Error(err))
		}
	}
	return nil
}

func (q *MemoryQueue) Subscribe(subject string, handler func(data []byte) error) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return fmt.Errorf("memory queue: closed")
	}
	q.handlers[subject] = append(q.handlers[subject], handler)
	return nil
}

func (q *MemoryQueue) Ping() error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return fmt.Errorf("memory queue: closed")
	}
	return nil
}

func (q *MemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	q.handlers = make(map[string][]func([]byte) error)
	return nil
}

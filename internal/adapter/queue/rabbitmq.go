package queue

import (
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/aniket045123/craftmyresume/internal/observability/telemetry"
	"github.com/aniket045123/craftmyresume/pkg/config"
)

// RabbitMQQueue maps each subject to an exchange. Subscribers get an
// exclusive auto-delete queue, so with a fanout exchange every replica
// sees every event.
type RabbitMQQueue struct {
	conn         *amqp.Connection
	channel      *amqp.Channel
	url          string
	exchangeType string
	subs         map[string]func([]byte) error
	mu           sync.RWMutex
	log          *zap.Logger
}

// NewRabbitMQQueue creates a new RabbitMQ message queue adapter
func NewRabbitMQQueue(cfg config.RabbitMQConfig, log *zap.Logger) (MessageQueue, error) {
	url := cfg.URL
	exchangeType := cfg.ExchangeType
	if exchangeType == "" {
		exchangeType = amqp.ExchangeFanout
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open RabbitMQ channel: %w", err)
	}

	q := &RabbitMQQueue{
		conn:         conn,
		channel:      ch,
		url:          url,
		exchangeType: exchangeType,
		subs:         make(map[string]func([]byte) error),
		log:          log,
	}

	go q.monitorConnection()

	log.Info("Successfully connected to RabbitMQ", zap.String("url", url))
	return q, nil
}

func (q *RabbitMQQueue) Publish(subject string, data []byte) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.channel == nil {
		return fmt.Errorf("rabbitmq: channel not available")
	}

	err := q.channel.ExchangeDeclare(subject, q.exchangeType, true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("rabbitmq: declare exchange: %w", err)
	}

	err = q.channel.Publish(
		subject, subject, false, false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        data,
			Timestamp:   time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("rabbitmq: publish: %w", err)
	}

	telemetry.QueueMessagesTotal.WithLabelValues(subject, "out").Inc()
	return nil
}

func (q *RabbitMQQueue) Subscribe(subject string, handler func(data []byte) error) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.channel == nil {
		return fmt.Errorf("rabbitmq: channel not available")
	}
	if err := q.bind(q.channel, subject, handler); err != nil {
		return err
	}
	q.subs[subject] = handler

	q.log.Info("Subscribed to RabbitMQ exchange", zap.String("exchange", subject))
	return nil
}

func (q *RabbitMQQueue) bind(ch *amqp.Channel, subject string, handler func(data []byte) error) error {
	err := ch.ExchangeDeclare(subject, q.exchangeType, true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("rabbitmq: declare exchange: %w", err)
	}

	queue, err := ch.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		return fmt.Errorf("rabbitmq: declare queue: %w", err)
	}

	err = ch.QueueBind(queue.Name, subject, subject, false, nil)
	if err != nil {
		return fmt.Errorf("rabbitmq: bind queue: %w", err)
	}

	msgs, err := ch.Consume(queue.Name, "", true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("rabbitmq: consume: %w", err)
	}

	go func() {
		for msg := range msgs {
			telemetry.QueueMessagesTotal.WithLabelValues(subject, "in").Inc()
			if err := handler(msg.Body); err != nil {
				q.log.Error("Error processing RabbitMQ message",
					zap.String("exchange", subject),
					zap.Error(err),
				)
			}
		}
	}()
	return nil
}

func (q *RabbitMQQueue) Ping() error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.conn == nil || q.conn.IsClosed() {
		return fmt.Errorf("rabbitmq: connection closed")
	}
	return nil
}

func (q *RabbitMQQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.channel != nil {
		q.channel.Close()
	}
	if q.conn != nil {
		return q.conn.Close()
	}
	return nil
}

func (q *RabbitMQQueue) monitorConnection() {
	for {
		reason, ok := <-q.conn.NotifyClose(make(chan *amqp.Error))
		if !ok {
			return
		}
		q.log.Warn("RabbitMQ connection lost, reconnecting...", zap.String("reason", reason.Reason))

		for {
			time.Sleep(5 * time.Second)
			conn, err := amqp.Dial(q.url)
			if err != nil {
				q.log.Error("Failed to reconnect to RabbitMQ", zap.Error(err))
				continue
			}
			ch, err := conn.Channel()
			if err != nil {
				conn.Close()
				continue
			}

			q.mu.Lock()
			q.conn = conn
			q.channel = ch
			for subject, handler := range q.subs {
				if err := q.bind(ch, subject, handler); err != nil {
					q.log.Error("Failed to restore RabbitMQ subscription",
						zap.String("exchange", subject),
						zap.Error(err),
					)
				}
			}
			q.mu.Unlock()

			q.log.Info("Successfully reconnected to RabbitMQ")
			break
		}
	}
}

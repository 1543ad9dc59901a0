package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/streadway/amqp"

	"github.com/m0rven/STR-PropertyManager/pkg/metrics"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Publisher интерфейс публикации событий.
// Сервисы зависят от интерфейса: при выключенном AMQP подставляется NopPublisher.
type Publisher interface {
	Publish(ctx context.Context, eventType string, ownerID, entityID int64, payload interface{}) error
}

// AMQPPublisher публикует события в topic exchange RabbitMQ
type AMQPPublisher struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	metrics  *metrics.Metrics
	log      Logger
}

// NewAMQPPublisher подключается к RabbitMQ и объявляет exchange
func NewAMQPPublisher(url, exchange string, m *metrics.Metrics, log Logger) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("events: failed to connect to AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("events: failed to open channel: %w", err)
	}

	if err := channel.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("events: failed to declare exchange %s: %w", exchange, err)
	}

	return &AMQPPublisher{
		conn:     conn,
		channel:  channel,
		exchange: exchange,
		metrics:  m,
		log:      log,
	}, nil
}

// Publish публикует событие с routing key = тип события.
// Ошибка публикации логируется, но не валит бизнес-операцию:
// подписчики восстановят состояние полной перезагрузкой данных.
func (p *AMQPPublisher) Publish(ctx context.Context, eventType string, ownerID, entityID int64, payload interface{}) error {
	event := Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		OwnerID:    ownerID,
		EntityID:   entityID,
		OccurredAt: time.Now().UTC(),
	}

	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("events: failed to marshal payload: %w", err)
		}
		event.Payload = raw
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("events: failed to marshal event: %w", err)
	}

	p.mu.Lock()
	err = p.channel.Publish(p.exchange, eventType, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.ID,
		Timestamp:    event.OccurredAt,
		Body:         body,
	})
	p.mu.Unlock()

	if err != nil {
		p.observe(eventType, "error")
		p.log.Error("events: failed to publish %s for owner=%d: %v", eventType, ownerID, err)
		return fmt.Errorf("events: failed to publish %s: %w", eventType, err)
	}

	p.observe(eventType, "ok")
	return nil
}

// Close закрывает канал и соединение
func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.channel.Close(); err != nil {
		return err
	}
	return p.conn.Close()
}

func (p *AMQPPublisher) observe(routingKey, status string) {
	if p.metrics != nil {
		p.metrics.EventsPublishedTotal.WithLabelValues(routingKey, status).Inc()
	}
}

// NopPublisher заглушка публикации событий при выключенном AMQP
type NopPublisher struct{}

// Publish ничего не делает
func (NopPublisher) Publish(ctx context.Context, eventType string, ownerID, entityID int64, payload interface{}) error {
	return nil
}

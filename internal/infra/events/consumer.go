package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/streadway/amqp"
)

// Handler обработчик принятого события
type Handler func(ctx context.Context, event Event)

// Consumer подписчик на события изменений
type Consumer struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
	log     Logger
}

// NewConsumer подключается к RabbitMQ, объявляет очередь
// и привязывает её к exchange по маскам booking.* и chat.*
func NewConsumer(url, exchange, queue string, log Logger) (*Consumer, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("events: consumer failed to connect to AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("events: consumer failed to open channel: %w", err)
	}

	if err := channel.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("events: consumer failed to declare exchange %s: %w", exchange, err)
	}

	if _, err := channel.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("events: failed to declare queue %s: %w", queue, err)
	}

	for _, pattern := range []string{"booking.*", "chat.*"} {
		if err := channel.QueueBind(queue, pattern, exchange, false, nil); err != nil {
			channel.Close()
			conn.Close()
			return nil, fmt.Errorf("events: failed to bind queue %s to %s: %w", queue, pattern, err)
		}
	}

	return &Consumer{
		conn:    conn,
		channel: channel,
		queue:   queue,
		log:     log,
	}, nil
}

// Run принимает события и передает их обработчику до отмены контекста.
// Блокирующий вызов, запускается в отдельной горутине.
func (c *Consumer) Run(ctx context.Context, handler Handler) error {
	deliveries, err := c.channel.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("events: failed to start consuming from %s: %w", c.queue, err)
	}

	c.log.Info("events: consumer started, queue=%s", c.queue)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case delivery, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("events: delivery channel closed")
			}

			var event Event
			if err := json.Unmarshal(delivery.Body, &event); err != nil {
				// Нераспознанное сообщение не возвращаем в очередь
				c.log.Warn("events: failed to unmarshal event: %v", err)
				_ = delivery.Nack(false, false)
				continue
			}

			handler(ctx, event)
			_ = delivery.Ack(false)
		}
	}
}

// Close закрывает канал и соединение
func (c *Consumer) Close() error {
	if err := c.channel.Close(); err != nil {
		return err
	}
	return c.conn.Close()
}

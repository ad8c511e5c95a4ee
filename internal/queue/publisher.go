package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// defaultDialTimeout bounds the TCP connect and AMQP handshake when the
// caller's context carries no deadline.
const defaultDialTimeout = 2 * time.Second

// Publisher sends TicketsIssuedEvent messages to a durable RabbitMQ queue.
// A connection is dialled per message; bookings are rare enough that a
// pooled channel is not worth the reconnect bookkeeping.
type Publisher struct {
	url   string
	queue string
	log   *zap.Logger
}

// NewPublisher returns a Publisher for the given broker URL and queue.
func NewPublisher(url, queue string, log *zap.Logger) *Publisher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Publisher{url: url, queue: queue, log: log}
}

// PublishTicketsIssued marshals ev and publishes it as a persistent message
// through the default exchange.  Errors are logged and returned so the
// caller can choose to ignore them.
func (p *Publisher) PublishTicketsIssued(ctx context.Context, ev TicketsIssuedEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	timeout, err := dialTimeout(ctx)
	if err != nil {
		return err
	}
	conn, err := amqp.DialConfig(p.url, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      amqp.DefaultDial(timeout),
	})
	if err != nil {
		p.log.Warn("rabbitmq dial failed", zap.Error(err))
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.log.Warn("rabbitmq channel open failed", zap.Error(err))
		return err
	}
	defer func() { _ = ch.Close() }()

	// Durable so messages survive broker restarts.
	if _, err := declareQueue(ch, p.queue); err != nil {
		p.log.Warn("rabbitmq queue declare failed", zap.String("queue", p.queue), zap.Error(err))
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx,
		"",      // default exchange
		p.queue, // routing key = queue name
		false,   // mandatory
		false,   // immediate
		pub,
	); err != nil {
		p.log.Warn("rabbitmq publish failed", zap.String("queue", p.queue), zap.Error(err))
		return err
	}
	return nil
}

// dialTimeout returns the connect budget left in ctx, capped at
// defaultDialTimeout.
func dialTimeout(ctx context.Context) (time.Duration, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	timeout := defaultDialTimeout
	if dl, ok := ctx.Deadline(); ok {
		left := time.Until(dl)
		if left <= 0 {
			return 0, context.DeadlineExceeded
		}
		if left < timeout {
			timeout = left
		}
	}
	return timeout, nil
}

func declareQueue(ch *amqp.Channel, name string) (amqp.Queue, error) {
	return ch.QueueDeclare(
		name,  // name
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,   // args
	)
}

package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/festy23/fantasy_roster/pkg/retry"
)

// RabbitPublisher publishes events to a durable topic exchange.
type RabbitPublisher struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	logger   *zap.SugaredLogger
}

// NewRabbitPublisher dials the broker with retries and declares the exchange.
func NewRabbitPublisher(ctx context.Context, url, exchange string, logger *zap.SugaredLogger) (*RabbitPublisher, error) {
	cfg := retry.BrokerConfig()
	cfg.OnRetry = func(attempt int, err error, delay time.Duration) {
		logger.Warnw("failed to connect to RabbitMQ, retrying",
			"attempt", attempt,
			"max_attempts", cfg.MaxAttempts,
			"retry_in", delay,
			"error", err,
		)
	}

	conn, err := retry.DoWithResult(ctx, cfg, func() (*amqp.Connection, error) {
		return amqp.Dial(url)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ after retries: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		exchange,
		"topic",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	logger.Infow("connected to RabbitMQ", "exchange", exchange)

	return &RabbitPublisher{
		conn:     conn,
		channel:  ch,
		exchange: exchange,
		logger:   logger,
	}, nil
}

// Publish implements Publisher.
func (p *RabbitPublisher) Publish(ctx context.Context, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.channel.PublishWithContext(ctx,
		p.exchange,
		event.RoutingKey(),
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    event.EventID,
			Timestamp:    event.OccurredAt,
			Type:         string(event.Kind),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.logger.Debugw("published roster event", "event_id", event.EventID, "routing_key", event.RoutingKey())
	return nil
}

// Close implements Publisher.
func (p *RabbitPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

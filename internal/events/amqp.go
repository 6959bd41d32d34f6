package events

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 5 * time.Second

// AMQPPublisher publishes events to a durable topic exchange, routed by kind.
type AMQPPublisher struct {
	mu       sync.Mutex
	conn     *amqp091.Connection
	channel  *amqp091.Channel
	exchange string
	logger   *slog.Logger
}

var _ Publisher = (*AMQPPublisher)(nil)

// NewAMQPPublisher dials the broker, retrying with backoff up to attempts times,
// and declares the exchange.
func NewAMQPPublisher(ctx context.Context, url, exchange string, attempts int, logger *slog.Logger) (*AMQPPublisher, error) {
	conn, err := dialWithRetry(ctx, url, attempts, logger)
	if err != nil {
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	return &AMQPPublisher{conn: conn, channel: channel, exchange: exchange, logger: logger}, nil
}

func dialWithRetry(ctx context.Context, url string, attempts int, logger *slog.Logger) (*amqp091.Connection, error) {
	if attempts < 1 {
		attempts = 1
	}
	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		conn, err := amqp091.Dial(url)
		if err == nil {
			return conn, nil
		}
		lastErr = err
		if attempt == attempts-1 || !isConnectionError(err) {
			break
		}

		wait := exponentialBackoff(attempt)
		logger.Warn("AMQP dial failed, retrying", "attempt", attempt+1, "wait", wait, "error", err)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}
	return nil, fmt.Errorf("dial AMQP: %w", lastErr)
}

// exponentialBackoff doubles from one second, capped at 30s.
func exponentialBackoff(attempt int) time.Duration {
	if attempt >= 5 {
		return 30 * time.Second
	}
	return time.Duration(1<<attempt) * time.Second
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, s := range []string{"connection refused", "connection reset", "connection closed", "eof", "no such host", "i/o timeout"} {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}

// Publish sends the event as a persistent JSON message.
func (p *AMQPPublisher) Publish(ctx context.Context, event Event) error {
	body, err := event.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.channel.PublishWithContext(
		ctx,
		p.exchange,         // exchange
		string(event.Kind), // routing key
		false,              // mandatory
		false,              // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    event.OccurredAt,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish %s: %w", event.Kind, err)
	}

	p.logger.DebugContext(ctx, "Published event", "kind", event.Kind, "record_id", event.RecordID, "exchange", p.exchange)
	return nil
}

// Close closes the channel and the connection.
func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

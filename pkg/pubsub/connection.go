package pubsub

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

type ConnectionOptions struct {
	URL           string
	RetryAttempts int
	Delay         time.Duration
	Logger        *slog.Logger
}

const maxDialDelay = 60 * time.Second

// DialWithRetry connects to RabbitMQ with capped exponential backoff,
// honoring ctx so shutdown is not blocked behind an unreachable broker.
func DialWithRetry(ctx context.Context, cfg ConnectionOptions) (*amqp091.Connection, error) {
	var lastErr error

	delay := cfg.Delay
	if delay <= 0 {
		delay = time.Second
	}

	for attempt := 1; attempt <= cfg.RetryAttempts; attempt++ {
		conn, err := amqp091.Dial(cfg.URL)
		if err == nil {
			if attempt > 1 {
				cfg.Logger.Info("rabbit connected", slog.Int("attempt", attempt))
			}
			return conn, nil
		}
		lastErr = err

		cfg.Logger.Warn("rabbit dial failed",
			slog.Int("attempt", attempt),
			slog.Duration("sleep", delay),
			slog.Any("error", err),
		)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, fmt.Errorf("dial cancelled: %w", ctx.Err())
		case <-timer.C:
		}

		if delay *= 2; delay > maxDialDelay {
			delay = maxDialDelay
		}
	}

	return nil, fmt.Errorf("failed to connect to RabbitMQ after %d attempts: %w",
		cfg.RetryAttempts, lastErr)
}

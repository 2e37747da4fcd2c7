package pubsub

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/rabbitmq/amqp091-go"

	"github.com/roboricindustries/raycon-assign/pkg/metrics"
	"github.com/roboricindustries/raycon-assign/pkg/schemas/common"
	support "github.com/roboricindustries/raycon-assign/pkg/schemas/support/v1"
)

// ErrChannelClosed reports that the broker stopped the delivery stream;
// the host process decides whether to reconnect or exit.
var ErrChannelClosed = errors.New("delivery channel closed")

// HandlerFunc processes one decoded chat request. A non-nil error rejects
// the delivery without requeue.
type HandlerFunc func(ctx context.Context, req support.ChatRequestV1) error

// Consumer feeds chat requests from the durable work queue to a handler,
// one acknowledgement decision per delivery. Poison messages (body that
// does not decode or validate) are dropped rather than retried forever.
type Consumer struct {
	conn     *amqp091.Connection
	queue    string
	prefetch int
	handle   HandlerFunc
	log      *slog.Logger
}

func NewConsumer(conn *amqp091.Connection, queue string, prefetch int, handle HandlerFunc, logger *slog.Logger) *Consumer {
	if queue == "" {
		queue = RequestQueue
	}
	if prefetch <= 0 {
		prefetch = 1
	}
	return &Consumer{
		conn:     conn,
		queue:    queue,
		prefetch: prefetch,
		handle:   handle,
		log:      logger,
	}
}

// Run consumes until ctx is cancelled or the broker closes the stream.
// In-flight handler calls are not forcibly aborted; cancellation only
// stops new deliveries from being taken.
func (c *Consumer) Run(ctx context.Context) error {
	ch, err := c.conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	if err := ch.Qos(c.prefetch, 0, false); err != nil {
		return err
	}
	if _, err := ch.QueueDeclare(c.queue, true, false, false, false, nil); err != nil {
		return err
	}
	msgs, err := ch.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		return err
	}
	c.log.Info("consumer started", slog.String("queue", c.queue), slog.Int("prefetch", c.prefetch))

	for {
		select {
		case <-ctx.Done():
			c.log.Info("consumer stopped", slog.String("queue", c.queue))
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return ErrChannelClosed
			}
			c.dispatch(ctx, d)
		}
	}
}

func (c *Consumer) dispatch(ctx context.Context, d amqp091.Delivery) {
	var env common.Envelope[support.ChatRequestV1]
	if err := json.Unmarshal(d.Body, &env); err != nil {
		c.reject(d, "undecodable body", err)
		return
	}
	if err := env.Data.Validate(); err != nil {
		c.reject(d, "invalid chat request", err)
		return
	}

	c.log.Info("chat request received",
		slog.String("chat", env.Data.ChatID.String()),
		slog.String("message_id", d.MessageId))

	if err := c.handle(ctx, env.Data); err != nil {
		// A failure caused by run-loop cancellation is shutdown, not a
		// bad message: give the delivery back so it is retried after
		// restart instead of being dropped with the poison.
		if ctx.Err() != nil {
			c.log.Warn("delivery requeued, handler interrupted by shutdown",
				slog.String("message_id", d.MessageId),
				slog.Any("error", err))
			_ = d.Nack(false, true)
			return
		}
		c.reject(d, "handler failed", err)
		return
	}
	_ = d.Ack(false)
}

// reject drops the delivery without requeue so a bad message cannot loop
// through the queue forever. Dead-lettering is the broker's concern.
func (c *Consumer) reject(d amqp091.Delivery, reason string, err error) {
	metrics.MessagesRejected.Inc()
	c.log.Error("delivery rejected",
		slog.String("reason", reason),
		slog.String("message_id", d.MessageId),
		slog.Any("error", err))
	_ = d.Nack(false, false)
}

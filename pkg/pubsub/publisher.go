package pubsub

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"

	"github.com/roboricindustries/raycon-assign/pkg/schemas/common"
	support "github.com/roboricindustries/raycon-assign/pkg/schemas/support/v1"
)

// Publisher delivers assignment notices to per-agent destinations.
type Publisher interface {
	PublishAssignment(ctx context.Context, env common.Envelope[support.ChatAssignedV1]) error
	Close() error
}

type agentPublisher struct {
	conn *amqp091.Connection
	log  *slog.Logger

	mu       sync.Mutex
	declared map[uuid.UUID]struct{}
}

// NewPublisher declares the shared topic exchange once. Per-agent queues
// and bindings are declared lazily on first publish to that agent, so no
// pre-registration of agents is required.
func NewPublisher(conn *amqp091.Connection, logger *slog.Logger) (Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}
	defer ch.Close()
	if err := ch.ExchangeDeclare(ExchangeName, exchangeKind, true, false, false, false, nil); err != nil {
		return nil, err
	}
	return &agentPublisher{
		conn:     conn,
		log:      logger,
		declared: make(map[uuid.UUID]struct{}),
	}, nil
}

func (p *agentPublisher) PublishAssignment(ctx context.Context, env common.Envelope[support.ChatAssignedV1]) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	agentID := env.Data.AgentID
	if err := p.ensureAgentQueue(ch, agentID); err != nil {
		return err
	}

	body, err := json.Marshal(env)
	if err != nil {
		return err
	}

	msgID := env.Meta.ID
	if msgID == "" {
		msgID = uuid.NewString()
	}
	cid := env.Meta.CorrelationID
	if cid == "" {
		cid = msgID
	}

	key := AgentRoutingKey(agentID)
	err = ch.PublishWithContext(
		ctx, ExchangeName, key, false, false,
		amqp091.Publishing{
			ContentType:   "application/json",
			DeliveryMode:  amqp091.Persistent,
			MessageId:     msgID,
			CorrelationId: cid,
			Type:          env.Meta.Type,
			Timestamp:     time.Now(),
			Body:          body,
		},
	)
	if err == nil {
		p.log.Info("assignment notice published",
			slog.String("key", key),
			slog.String("chat", env.Data.ChatID.String()))
	}
	return err
}

// ensureAgentQueue declares and binds the agent's dedicated queue on the
// first notice to that agent for this connection's lifetime.
func (p *agentPublisher) ensureAgentQueue(ch *amqp091.Channel, agentID uuid.UUID) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.declared[agentID]; ok {
		return nil
	}
	queue := AgentQueueName(agentID)
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return err
	}
	if err := ch.QueueBind(queue, AgentRoutingKey(agentID), ExchangeName, false, nil); err != nil {
		return err
	}
	p.declared[agentID] = struct{}{}
	p.log.Info("agent queue declared", slog.String("queue", queue))
	return nil
}

func (p *agentPublisher) Close() error {
	return p.conn.Close()
}

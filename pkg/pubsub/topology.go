package pubsub

import "github.com/google/uuid"

const (
	// ExchangeName is the shared broadcast exchange assignment notices
	// ride on; pattern-matched routing delivers each notice to exactly
	// one agent's queue.
	ExchangeName = "chat.agent.exchange"
	exchangeKind = "topic"

	// RequestQueue is the durable work queue chat requests arrive on.
	RequestQueue = "chat_queue"
)

// AgentRoutingKey is the topic token that selects one agent's destination.
func AgentRoutingKey(agentID uuid.UUID) string {
	return "agent." + agentID.String()
}

// AgentQueueName is the durable queue dedicated to one agent.
func AgentQueueName(agentID uuid.UUID) string {
	return AgentRoutingKey(agentID) + ".queue"
}
